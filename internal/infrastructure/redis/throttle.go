package redis

import (
	"context"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"
)

// Throttle ventana fija por clave: como máximo max solicitudes cada window (implementa auth.Throttle).
type Throttle struct {
	client *goredis.Client
	prefix string
	max    int64
	window time.Duration
}

// NewClient abre el cliente a partir de REDIS_URL y verifica la conexión.
func NewClient(ctx context.Context, url string) (*goredis.Client, error) {
	opts, err := goredis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("redis: parse url: %w", err)
	}
	client := goredis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis: ping: %w", err)
	}
	return client, nil
}

// NewThrottle construye el limitador de magic links.
func NewThrottle(client *goredis.Client, max int, window time.Duration) *Throttle {
	return &Throttle{client: client, prefix: "magiclink:", max: int64(max), window: window}
}

// Allow incrementa el contador de la clave; la ventana empieza con la primera solicitud.
func (t *Throttle) Allow(ctx context.Context, key string) (bool, error) {
	k := t.prefix + key
	n, err := t.client.Incr(ctx, k).Result()
	if err != nil {
		return false, fmt.Errorf("redis: incr %s: %w", k, err)
	}
	if n == 1 {
		if err := t.client.Expire(ctx, k, t.window).Err(); err != nil {
			return false, fmt.Errorf("redis: expire %s: %w", k, err)
		}
	}
	return n <= t.max, nil
}
