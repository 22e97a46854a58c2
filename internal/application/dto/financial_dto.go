package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateTransactionRequest alta manual de ingreso/egreso.
type CreateTransactionRequest struct {
	Type        string          `json:"type" validate:"required,oneof=income expense"`
	Category    string          `json:"category" validate:"required,min=1,max=64"`
	Description string          `json:"description" validate:"omitempty,max=300"`
	Amount      decimal.Decimal `json:"amount"`
	OccurredAt  *time.Time      `json:"occurred_at"`
}

// TransactionResponse salida de un movimiento.
type TransactionResponse struct {
	ID          string          `json:"id"`
	Type        string          `json:"type"`
	Category    string          `json:"category"`
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
	Reference   string          `json:"reference,omitempty"`
	OccurredAt  time.Time       `json:"occurred_at"`
}

// TransactionListResponse movimientos del periodo con totales.
type TransactionListResponse struct {
	Items   []TransactionResponse `json:"items"`
	From    time.Time             `json:"from"`
	To      time.Time             `json:"to"`
	Income  decimal.Decimal       `json:"income"`
	Expense decimal.Decimal       `json:"expense"`
	Balance decimal.Decimal       `json:"balance"`
	Page    PageResponse          `json:"page"`
}
