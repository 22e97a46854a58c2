package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// Querier es lo que necesitan los repos: lo cumplen *pgxpool.Pool, pgx.Tx y el pool de pgxmock.
type Querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Beginner abre transacciones (pool real o mock).
type Beginner interface {
	Begin(ctx context.Context) (pgx.Tx, error)
}
