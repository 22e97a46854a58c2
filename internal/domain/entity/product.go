package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product producto vendido por el supermercado. Stock admite fracciones (venta por peso).
type Product struct {
	ID        string
	CompanyID string
	SKU       string // código único por empresa
	Barcode   string
	Name      string
	Price     decimal.Decimal
	Cost      decimal.Decimal
	Stock     decimal.Decimal
	CreatedAt time.Time
	UpdatedAt time.Time
}
