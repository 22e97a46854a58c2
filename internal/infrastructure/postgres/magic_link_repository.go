package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/Supermercado-api/internal/domain/entity"
	"github.com/jhoicas/Supermercado-api/internal/domain/repository"
)

var _ repository.MagicLinkRepository = (*MagicLinkRepo)(nil)

// MagicLinkRepo tokens de login de un solo uso sobre PostgreSQL.
type MagicLinkRepo struct {
	q Querier
}

// NewMagicLinkRepository construye el adaptador.
func NewMagicLinkRepository(q Querier) *MagicLinkRepo {
	return &MagicLinkRepo{q: q}
}

func (r *MagicLinkRepo) Create(ctx context.Context, t *entity.MagicLinkToken) error {
	query := `
		INSERT INTO magic_link_tokens (id, email, token_hash, expires_at, created_at)
		VALUES ($1, $2, $3, $4, $5)`
	if _, err := r.q.Exec(ctx, query, t.ID, t.Email, t.TokenHash, t.ExpiresAt, t.CreatedAt); err != nil {
		return fmt.Errorf("insert magic link: %w", err)
	}
	return nil
}

// Consume es una sola sentencia condicional: de dos solicitudes concurrentes con el mismo
// token, solo una ve RowsAffected = 1.
func (r *MagicLinkRepo) Consume(ctx context.Context, email, tokenHash string, now time.Time) (bool, error) {
	cmd, err := r.q.Exec(ctx, `
		UPDATE magic_link_tokens SET used_at = $3
		 WHERE token_hash = $1
		   AND email      = $2
		   AND used_at IS NULL
		   AND expires_at > $3`,
		tokenHash, email, now,
	)
	if err != nil {
		return false, fmt.Errorf("consume magic link: %w", err)
	}
	return cmd.RowsAffected() == 1, nil
}

func (r *MagicLinkRepo) DeleteStale(ctx context.Context, email string, now time.Time) error {
	_, err := r.q.Exec(ctx,
		`DELETE FROM magic_link_tokens WHERE email = $1 AND (used_at IS NOT NULL OR expires_at <= $2)`,
		email, now,
	)
	if err != nil {
		return fmt.Errorf("delete stale magic links: %w", err)
	}
	return nil
}

func (r *MagicLinkRepo) PurgeExpired(ctx context.Context, now time.Time) (int64, error) {
	cmd, err := r.q.Exec(ctx,
		`DELETE FROM magic_link_tokens WHERE used_at IS NOT NULL OR expires_at <= $1`,
		now,
	)
	if err != nil {
		return 0, fmt.Errorf("purge magic links: %w", err)
	}
	return cmd.RowsAffected(), nil
}
