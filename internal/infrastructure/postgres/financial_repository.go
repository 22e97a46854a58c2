package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Supermercado-api/internal/domain/entity"
	"github.com/jhoicas/Supermercado-api/internal/domain/repository"
)

var _ repository.FinancialTransactionRepository = (*FinancialRepo)(nil)

// FinancialRepo movimientos financieros sobre PostgreSQL.
type FinancialRepo struct {
	q Querier
}

func NewFinancialRepository(q Querier) *FinancialRepo {
	return &FinancialRepo{q: q}
}

func (r *FinancialRepo) Create(ctx context.Context, t *entity.FinancialTransaction) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO financial_transactions (id, company_id, type, category, description, amount, reference, occurred_at, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		t.ID, t.CompanyID, t.Type, t.Category, t.Description, t.Amount, t.Reference, t.OccurredAt, t.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert financial transaction: %w", err)
	}
	return nil
}

func (r *FinancialRepo) ListByCompany(ctx context.Context, companyID string, from, to time.Time, limit, offset int) ([]*entity.FinancialTransaction, error) {
	rows, err := r.q.Query(ctx, `
		SELECT id, company_id, type, category, description, amount, reference, occurred_at, created_at
		FROM financial_transactions
		WHERE company_id = $1 AND occurred_at >= $2 AND occurred_at < $3
		ORDER BY occurred_at DESC LIMIT $4 OFFSET $5`,
		companyID, from, to, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list financial transactions: %w", err)
	}
	defer rows.Close()
	var list []*entity.FinancialTransaction
	for rows.Next() {
		var t entity.FinancialTransaction
		if err := rows.Scan(&t.ID, &t.CompanyID, &t.Type, &t.Category, &t.Description, &t.Amount,
			&t.Reference, &t.OccurredAt, &t.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan financial transaction: %w", err)
		}
		list = append(list, &t)
	}
	return list, rows.Err()
}

// Totals suma ingresos y egresos del periodo [from, to) en una sola consulta.
func (r *FinancialRepo) Totals(ctx context.Context, companyID string, from, to time.Time) (decimal.Decimal, decimal.Decimal, error) {
	var income, expense decimal.Decimal
	err := r.q.QueryRow(ctx, `
		SELECT COALESCE(SUM(amount) FILTER (WHERE type = 'income'), 0),
		       COALESCE(SUM(amount) FILTER (WHERE type = 'expense'), 0)
		FROM financial_transactions
		WHERE company_id = $1 AND occurred_at >= $2 AND occurred_at < $3`,
		companyID, from, to,
	).Scan(&income, &expense)
	if err != nil {
		return decimal.Zero, decimal.Zero, fmt.Errorf("financial totals: %w", err)
	}
	return income, expense, nil
}
