package postgres

import (
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/jhoicas/Supermercado-api/internal/domain"
)

// Nombres de las restricciones únicas (ver migrations/001_init.sql).
const (
	constraintSupermarketTaxID = "supermarkets_tax_id_key"
	constraintUserEmail        = "users_email_lower_key"
)

// isUniqueViolation verifica si un error es una violación de constraint único (23505).
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

// duplicateError traduce una violación única al error de dominio según la restricción.
func duplicateError(err error) error {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) || pgErr.Code != "23505" {
		return nil
	}
	switch pgErr.ConstraintName {
	case constraintSupermarketTaxID:
		return domain.ErrDuplicateTaxID
	case constraintUserEmail:
		return domain.ErrDuplicateEmail
	default:
		return domain.ErrDuplicate
	}
}

func isNoRows(err error) bool {
	return errors.Is(err, pgx.ErrNoRows)
}
