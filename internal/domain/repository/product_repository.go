package repository

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Supermercado-api/internal/domain/entity"
)

// ProductRepository define el puerto de persistencia para Product (DIP).
type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	GetByID(ctx context.Context, id string) (*entity.Product, error)
	GetByCompanyAndSKU(ctx context.Context, companyID, sku string) (*entity.Product, error)
	Update(ctx context.Context, product *entity.Product) error
	// DecrementStock descuenta qty solo si hay stock suficiente; false si no se aplicó.
	DecrementStock(ctx context.Context, companyID, productID string, qty decimal.Decimal) (bool, error)
	ListByCompany(ctx context.Context, companyID string, limit, offset int) ([]*entity.Product, error)
	Delete(ctx context.Context, companyID, id string) error
}
