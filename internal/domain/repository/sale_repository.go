package repository

import (
	"context"

	"github.com/jhoicas/Supermercado-api/internal/domain/entity"
)

// SaleRepository persistencia de ventas (cabecera + líneas).
type SaleRepository interface {
	Create(ctx context.Context, sale *entity.Sale) error
	GetByID(ctx context.Context, id string) (*entity.Sale, error)
	ListByCompany(ctx context.Context, companyID string, limit, offset int) ([]*entity.Sale, error)
}
