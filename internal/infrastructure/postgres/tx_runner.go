package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/Supermercado-api/internal/application/auth"
	"github.com/jhoicas/Supermercado-api/internal/application/sales"
	"github.com/jhoicas/Supermercado-api/internal/domain/repository"
)

var (
	_ auth.TxRunner  = (*TxRunner)(nil)
	_ sales.TxRunner = (*TxRunner)(nil)
)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	db Beginner
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(db Beginner) *TxRunner {
	return &TxRunner{db: db}
}

// run abre la transacción, ejecuta fn con la tx y hace Commit o Rollback.
func (r *TxRunner) run(ctx context.Context, fn func(q Querier) error) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(tx); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// RunRegistration crea supermercado, administrador y suscripción en la misma transacción.
func (r *TxRunner) RunRegistration(ctx context.Context, fn func(
	markets repository.SupermarketRepository,
	users repository.UserRepository,
	subs repository.SubscriptionRepository,
) error) error {
	return r.run(ctx, func(q Querier) error {
		return fn(NewSupermarketRepository(q), NewUserRepository(q), NewSubscriptionRepository(q))
	})
}

// RunLogin consume el magic link y confirma al usuario en la misma transacción.
func (r *TxRunner) RunLogin(ctx context.Context, fn func(
	links repository.MagicLinkRepository,
	users repository.UserRepository,
) error) error {
	return r.run(ctx, func(q Querier) error {
		return fn(NewMagicLinkRepository(q), NewUserRepository(q))
	})
}

// RunSale descuenta stock, guarda la venta y su ingreso financiero en la misma transacción.
func (r *TxRunner) RunSale(ctx context.Context, fn func(
	products repository.ProductRepository,
	sales repository.SaleRepository,
	finance repository.FinancialTransactionRepository,
) error) error {
	return r.run(ctx, func(q Querier) error {
		return fn(NewProductRepository(q), NewSaleRepository(q), NewFinancialRepository(q))
	})
}
