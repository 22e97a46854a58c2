package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestThrottle(t *testing.T, max int) (*Throttle, *miniredis.Miniredis) {
	t.Helper()
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	client := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewThrottle(client, max, 15*time.Minute), mr
}

func TestAllow_BloqueaAlSuperarElMaximo(t *testing.T) {
	th, _ := newTestThrottle(t, 3)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		ok, err := th.Allow(ctx, "user@example.com")
		require.NoError(t, err)
		assert.True(t, ok, "solicitud %d", i+1)
	}
	ok, err := th.Allow(ctx, "user@example.com")
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = th.Allow(ctx, "otro@example.com")
	require.NoError(t, err)
	assert.True(t, ok, "el contador es por email")
}

func TestAllow_VentanaExpira(t *testing.T) {
	th, mr := newTestThrottle(t, 1)
	ctx := context.Background()

	ok, _ := th.Allow(ctx, "user@example.com")
	require.True(t, ok)
	assert.Equal(t, 15*time.Minute, mr.TTL("magiclink:user@example.com"))

	ok, _ = th.Allow(ctx, "user@example.com")
	require.False(t, ok)

	mr.FastForward(16 * time.Minute)
	ok, err := th.Allow(ctx, "user@example.com")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestAllow_RedisCaido(t *testing.T) {
	th, mr := newTestThrottle(t, 1)
	mr.Close()

	_, err := th.Allow(context.Background(), "user@example.com")
	assert.Error(t, err)
}

func TestNewClient_URLInvalida(t *testing.T) {
	_, err := NewClient(context.Background(), "no-es-una-url")
	assert.Error(t, err)
}
