package repository

import (
	"context"

	"github.com/jhoicas/Supermercado-api/internal/domain/entity"
)

// SupplierRepository persistencia de proveedores.
type SupplierRepository interface {
	Create(ctx context.Context, supplier *entity.Supplier) error
	GetByCompanyAndTaxID(ctx context.Context, companyID, taxID string) (*entity.Supplier, error)
	ListByCompany(ctx context.Context, companyID string, limit, offset int) ([]*entity.Supplier, error)
}
