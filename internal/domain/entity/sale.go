package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Medios de pago aceptados.
const (
	PaymentCash   = "cash"
	PaymentCard   = "card"
	PaymentPix    = "pix"
	PaymentCredit = "credit"
)

// Sale venta registrada en caja.
type Sale struct {
	ID            string
	CompanyID     string
	UserID        string
	ClientID      string // opcional
	PaymentMethod string
	Total         decimal.Decimal
	Items         []SaleItem
	CreatedAt     time.Time
}

// SaleItem línea de una venta; UnitPrice es el precio del producto al momento de vender.
type SaleItem struct {
	ID        string
	SaleID    string
	ProductID string
	Name      string
	Quantity  decimal.Decimal
	UnitPrice decimal.Decimal
	Subtotal  decimal.Decimal
}
