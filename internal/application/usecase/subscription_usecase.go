package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/Supermercado-api/internal/application/dto"
	"github.com/jhoicas/Supermercado-api/internal/domain/repository"
)

// SubscriptionService verifica si un supermercado puede operar.
// Es el único punto de la aplicación que conoce la lógica de vigencia de la suscripción.
type SubscriptionService struct {
	repo repository.SubscriptionRepository
	now  func() time.Time
}

// NewSubscriptionService construye el servicio.
func NewSubscriptionService(repo repository.SubscriptionRepository) *SubscriptionService {
	return &SubscriptionService{repo: repo, now: time.Now}
}

// IsActive informa si el supermercado tiene una suscripción vigente.
// Devuelve false (sin error) si no tiene suscripción; error solo ante fallos de infraestructura.
func (s *SubscriptionService) IsActive(ctx context.Context, companyID string) (bool, error) {
	if companyID == "" {
		return false, fmt.Errorf("subscription: companyID es obligatorio")
	}
	sub, err := s.repo.GetByCompany(ctx, companyID)
	if err != nil {
		return false, err
	}
	return sub.ActiveAt(s.now()), nil
}

// Get devuelve la suscripción del supermercado; nil si no tiene.
func (s *SubscriptionService) Get(ctx context.Context, companyID string) (*dto.SubscriptionResponse, error) {
	sub, err := s.repo.GetByCompany(ctx, companyID)
	if err != nil || sub == nil {
		return nil, err
	}
	return &dto.SubscriptionResponse{
		Plan:      sub.Plan,
		Status:    sub.Status,
		StartsAt:  sub.StartsAt,
		ExpiresAt: sub.ExpiresAt,
		Active:    sub.ActiveAt(s.now()),
	}, nil
}
