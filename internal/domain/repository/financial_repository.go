package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Supermercado-api/internal/domain/entity"
)

// FinancialTransactionRepository persistencia de ingresos y egresos.
type FinancialTransactionRepository interface {
	Create(ctx context.Context, tx *entity.FinancialTransaction) error
	ListByCompany(ctx context.Context, companyID string, from, to time.Time, limit, offset int) ([]*entity.FinancialTransaction, error)
	// Totals suma ingresos y egresos del periodo [from, to).
	Totals(ctx context.Context, companyID string, from, to time.Time) (income, expense decimal.Decimal, err error)
}
