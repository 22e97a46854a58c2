package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateProductRequest entrada para crear un producto.
type CreateProductRequest struct {
	SKU     string          `json:"sku" validate:"required,min=1,max=64"`
	Barcode string          `json:"barcode" validate:"omitempty,max=64"`
	Name    string          `json:"name" validate:"required,min=1,max=200"`
	Price   decimal.Decimal `json:"price"`
	Cost    decimal.Decimal `json:"cost"`
	Stock   decimal.Decimal `json:"stock"`
}

// UpdateProductRequest campos opcionales para actualizar un producto.
type UpdateProductRequest struct {
	Barcode *string          `json:"barcode" validate:"omitempty,max=64"`
	Name    *string          `json:"name" validate:"omitempty,min=1,max=200"`
	Price   *decimal.Decimal `json:"price"`
	Cost    *decimal.Decimal `json:"cost"`
	Stock   *decimal.Decimal `json:"stock"`
}

// ProductResponse salida de un producto.
type ProductResponse struct {
	ID        string          `json:"id"`
	CompanyID string          `json:"company_id"`
	SKU       string          `json:"sku"`
	Barcode   string          `json:"barcode"`
	Name      string          `json:"name"`
	Price     decimal.Decimal `json:"price"`
	Cost      decimal.Decimal `json:"cost"`
	Stock     decimal.Decimal `json:"stock"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// ProductListResponse lista paginada de productos.
type ProductListResponse struct {
	Items []ProductResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}
