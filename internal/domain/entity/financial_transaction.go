package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de movimiento financiero.
const (
	TransactionIncome  = "income"
	TransactionExpense = "expense"

	CategorySale = "sale"
)

// FinancialTransaction ingreso o egreso del supermercado. Reference apunta a la venta que lo originó.
type FinancialTransaction struct {
	ID          string
	CompanyID   string
	Type        string
	Category    string
	Description string
	Amount      decimal.Decimal
	Reference   string
	OccurredAt  time.Time
	CreatedAt   time.Time
}
