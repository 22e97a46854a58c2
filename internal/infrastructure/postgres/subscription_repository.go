package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/Supermercado-api/internal/domain/entity"
	"github.com/jhoicas/Supermercado-api/internal/domain/repository"
)

var _ repository.SubscriptionRepository = (*SubscriptionRepo)(nil)

// SubscriptionRepo suscripciones por supermercado.
type SubscriptionRepo struct {
	q Querier
}

// NewSubscriptionRepository construye el adaptador.
func NewSubscriptionRepository(q Querier) *SubscriptionRepo {
	return &SubscriptionRepo{q: q}
}

func (r *SubscriptionRepo) Create(ctx context.Context, s *entity.Subscription) error {
	query := `
		INSERT INTO subscriptions (id, company_id, plan, status, starts_at, expires_at, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(ctx, query,
		s.ID, s.CompanyID, s.Plan, s.Status, s.StartsAt, s.ExpiresAt, s.CreatedAt, s.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert subscription: %w", err)
	}
	return nil
}

// GetByCompany devuelve la suscripción más reciente del supermercado.
func (r *SubscriptionRepo) GetByCompany(ctx context.Context, companyID string) (*entity.Subscription, error) {
	query := `
		SELECT id, company_id, plan, status, starts_at, expires_at, created_at, updated_at
		FROM subscriptions WHERE company_id = $1 ORDER BY created_at DESC LIMIT 1`
	var s entity.Subscription
	err := r.q.QueryRow(ctx, query, companyID).Scan(
		&s.ID, &s.CompanyID, &s.Plan, &s.Status, &s.StartsAt, &s.ExpiresAt, &s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get subscription: %w", err)
	}
	return &s, nil
}
