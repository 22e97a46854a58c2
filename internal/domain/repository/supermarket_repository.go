package repository

import (
	"context"

	"github.com/jhoicas/Supermercado-api/internal/domain/entity"
)

// SupermarketRepository define el puerto de persistencia para Supermarket (DIP).
// GetBy* devuelven (nil, nil) cuando no existe.
type SupermarketRepository interface {
	Create(ctx context.Context, s *entity.Supermarket) error
	GetByID(ctx context.Context, id string) (*entity.Supermarket, error)
	GetByTaxID(ctx context.Context, taxID string) (*entity.Supermarket, error)
	List(ctx context.Context, limit, offset int) ([]*entity.Supermarket, error)
}
