package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// SaleItemRequest línea de venta; el precio se toma del producto.
type SaleItemRequest struct {
	ProductID string          `json:"product_id" validate:"required,uuid"`
	Quantity  decimal.Decimal `json:"quantity"`
}

// CreateSaleRequest entrada para registrar una venta.
type CreateSaleRequest struct {
	ClientID      string            `json:"client_id" validate:"omitempty,uuid"`
	PaymentMethod string            `json:"payment_method" validate:"required,oneof=cash card pix credit"`
	Items         []SaleItemRequest `json:"items" validate:"required,min=1,dive"`
}

// SaleItemResponse línea de venta.
type SaleItemResponse struct {
	ProductID string          `json:"product_id"`
	Name      string          `json:"name"`
	Quantity  decimal.Decimal `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Subtotal  decimal.Decimal `json:"subtotal"`
}

// SaleResponse salida de una venta.
type SaleResponse struct {
	ID            string             `json:"id"`
	CompanyID     string             `json:"company_id"`
	UserID        string             `json:"user_id"`
	ClientID      string             `json:"client_id,omitempty"`
	PaymentMethod string             `json:"payment_method"`
	Total         decimal.Decimal    `json:"total"`
	Items         []SaleItemResponse `json:"items,omitempty"`
	CreatedAt     time.Time          `json:"created_at"`
}

// SaleListResponse lista paginada de ventas.
type SaleListResponse struct {
	Items []SaleResponse `json:"items"`
	Page  PageResponse   `json:"page"`
}
