package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/Supermercado-api/internal/application/dto"
	"github.com/jhoicas/Supermercado-api/internal/domain"
	"github.com/jhoicas/Supermercado-api/internal/domain/entity"
	"github.com/jhoicas/Supermercado-api/internal/domain/repository"
)

// FinancialUseCase ingresos y egresos del supermercado.
type FinancialUseCase struct {
	repo repository.FinancialTransactionRepository
	now  func() time.Time
}

func NewFinancialUseCase(repo repository.FinancialTransactionRepository) *FinancialUseCase {
	return &FinancialUseCase{repo: repo, now: time.Now}
}

// Create registra un movimiento manual. El monto siempre es positivo; Type decide el signo.
func (uc *FinancialUseCase) Create(ctx context.Context, companyID string, in dto.CreateTransactionRequest) (*dto.TransactionResponse, error) {
	if !in.Amount.IsPositive() {
		return nil, fmt.Errorf("%w: el monto debe ser mayor a cero", domain.ErrValidation)
	}
	if in.Type != entity.TransactionIncome && in.Type != entity.TransactionExpense {
		return nil, fmt.Errorf("%w: tipo inválido", domain.ErrValidation)
	}
	now := uc.now()
	occurred := now
	if in.OccurredAt != nil {
		occurred = *in.OccurredAt
	}
	t := &entity.FinancialTransaction{
		ID:          uuid.New().String(),
		CompanyID:   companyID,
		Type:        in.Type,
		Category:    strings.TrimSpace(in.Category),
		Description: strings.TrimSpace(in.Description),
		Amount:      in.Amount,
		OccurredAt:  occurred,
		CreatedAt:   now,
	}
	if err := uc.repo.Create(ctx, t); err != nil {
		return nil, err
	}
	return toTransactionResponse(t), nil
}

// List devuelve los movimientos de [from, to) con totales del periodo completo.
// Sin fechas se usa el mes en curso.
func (uc *FinancialUseCase) List(ctx context.Context, companyID string, from, to time.Time, limit, offset int) (*dto.TransactionListResponse, error) {
	if from.IsZero() || to.IsZero() {
		now := uc.now()
		from = time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
		to = from.AddDate(0, 1, 0)
	}
	if !from.Before(to) {
		return nil, fmt.Errorf("%w: el periodo es vacío", domain.ErrValidation)
	}
	list, err := uc.repo.ListByCompany(ctx, companyID, from, to, limit, offset)
	if err != nil {
		return nil, err
	}
	income, expense, err := uc.repo.Totals(ctx, companyID, from, to)
	if err != nil {
		return nil, err
	}
	items := make([]dto.TransactionResponse, 0, len(list))
	for _, t := range list {
		items = append(items, *toTransactionResponse(t))
	}
	return &dto.TransactionListResponse{
		Items:   items,
		From:    from,
		To:      to,
		Income:  income,
		Expense: expense,
		Balance: income.Sub(expense),
		Page:    dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

func toTransactionResponse(t *entity.FinancialTransaction) *dto.TransactionResponse {
	return &dto.TransactionResponse{
		ID:          t.ID,
		Type:        t.Type,
		Category:    t.Category,
		Description: t.Description,
		Amount:      t.Amount,
		Reference:   t.Reference,
		OccurredAt:  t.OccurredAt,
	}
}
