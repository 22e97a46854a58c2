package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/Supermercado-api/internal/domain/entity"
	"github.com/jhoicas/Supermercado-api/internal/domain/repository"
)

// Asegura que SupermarketRepo implementa repository.SupermarketRepository.
var _ repository.SupermarketRepository = (*SupermarketRepo)(nil)

const supermarketColumns = `id, name, legal_name, tax_id, email, phone, address, status, created_at, updated_at`

// SupermarketRepo implementación del puerto SupermarketRepository sobre PostgreSQL.
type SupermarketRepo struct {
	q Querier
}

// NewSupermarketRepository construye el adaptador de persistencia para supermercados. Pasar pool o tx.
func NewSupermarketRepository(q Querier) *SupermarketRepo {
	return &SupermarketRepo{q: q}
}

// Create persiste un nuevo supermercado. Un documento repetido devuelve domain.ErrDuplicateTaxID.
func (r *SupermarketRepo) Create(ctx context.Context, s *entity.Supermarket) error {
	query := `
		INSERT INTO supermarkets (` + supermarketColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(ctx, query,
		s.ID, s.Name, s.LegalName, s.TaxID, s.Email, s.Phone, s.Address, s.Status,
		s.CreatedAt, s.UpdatedAt,
	)
	if err != nil {
		if dup := duplicateError(err); dup != nil {
			return dup
		}
		return fmt.Errorf("insert supermarket: %w", err)
	}
	return nil
}

// GetByID obtiene un supermercado por ID.
func (r *SupermarketRepo) GetByID(ctx context.Context, id string) (*entity.Supermarket, error) {
	return r.getOne(ctx, `SELECT `+supermarketColumns+` FROM supermarkets WHERE id = $1`, id)
}

// GetByTaxID obtiene un supermercado por documento fiscal normalizado.
func (r *SupermarketRepo) GetByTaxID(ctx context.Context, taxID string) (*entity.Supermarket, error) {
	return r.getOne(ctx, `SELECT `+supermarketColumns+` FROM supermarkets WHERE tax_id = $1`, taxID)
}

func (r *SupermarketRepo) getOne(ctx context.Context, query string, arg string) (*entity.Supermarket, error) {
	var s entity.Supermarket
	err := r.q.QueryRow(ctx, query, arg).Scan(
		&s.ID, &s.Name, &s.LegalName, &s.TaxID, &s.Email, &s.Phone, &s.Address, &s.Status,
		&s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get supermarket: %w", err)
	}
	return &s, nil
}

// List devuelve supermercados con paginación.
func (r *SupermarketRepo) List(ctx context.Context, limit, offset int) ([]*entity.Supermarket, error) {
	query := `SELECT ` + supermarketColumns + ` FROM supermarkets ORDER BY created_at DESC LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list supermarkets: %w", err)
	}
	defer rows.Close()

	var list []*entity.Supermarket
	for rows.Next() {
		var s entity.Supermarket
		if err := rows.Scan(&s.ID, &s.Name, &s.LegalName, &s.TaxID, &s.Email, &s.Phone, &s.Address, &s.Status, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan supermarket: %w", err)
		}
		list = append(list, &s)
	}
	return list, rows.Err()
}
