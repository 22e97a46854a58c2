package repository

import (
	"context"
	"time"

	"github.com/jhoicas/Supermercado-api/internal/domain/entity"
)

// MagicLinkRepository persiste los tokens de login de un solo uso.
type MagicLinkRepository interface {
	Create(ctx context.Context, token *entity.MagicLinkToken) error
	// Consume marca el token como usado en una sola actualización condicional
	// (no usado, no expirado, mismo email). Devuelve false si no se consumió nada.
	Consume(ctx context.Context, email, tokenHash string, now time.Time) (bool, error)
	// DeleteStale elimina los tokens expirados o usados de un email.
	DeleteStale(ctx context.Context, email string, now time.Time) error
	// PurgeExpired elimina todos los tokens expirados o usados.
	PurgeExpired(ctx context.Context, now time.Time) (int64, error)
}
