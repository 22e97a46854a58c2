package repository

import (
	"context"

	"github.com/jhoicas/Supermercado-api/internal/domain/entity"
)

// SubscriptionRepository persistencia de la suscripción de cada supermercado.
type SubscriptionRepository interface {
	Create(ctx context.Context, s *entity.Subscription) error
	GetByCompany(ctx context.Context, companyID string) (*entity.Subscription, error)
}
