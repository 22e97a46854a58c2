package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/Supermercado-api/internal/domain"
	"github.com/jhoicas/Supermercado-api/internal/domain/entity"
	"github.com/jhoicas/Supermercado-api/internal/domain/repository"
)

var _ repository.SupplierRepository = (*SupplierRepo)(nil)

const supplierColumns = `id, company_id, name, tax_id, email, phone, created_at, updated_at`

// SupplierRepo proveedores sobre PostgreSQL.
type SupplierRepo struct {
	q Querier
}

func NewSupplierRepository(q Querier) *SupplierRepo {
	return &SupplierRepo{q: q}
}

func (r *SupplierRepo) Create(ctx context.Context, s *entity.Supplier) error {
	query := `INSERT INTO suppliers (` + supplierColumns + `) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(ctx, query, s.ID, s.CompanyID, s.Name, s.TaxID, s.Email, s.Phone, s.CreatedAt, s.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert supplier: %w", err)
	}
	return nil
}

func (r *SupplierRepo) GetByCompanyAndTaxID(ctx context.Context, companyID, taxID string) (*entity.Supplier, error) {
	var s entity.Supplier
	err := r.q.QueryRow(ctx,
		`SELECT `+supplierColumns+` FROM suppliers WHERE company_id = $1 AND tax_id = $2`, companyID, taxID,
	).Scan(&s.ID, &s.CompanyID, &s.Name, &s.TaxID, &s.Email, &s.Phone, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get supplier: %w", err)
	}
	return &s, nil
}

func (r *SupplierRepo) ListByCompany(ctx context.Context, companyID string, limit, offset int) ([]*entity.Supplier, error) {
	query := `SELECT ` + supplierColumns + ` FROM suppliers WHERE company_id = $1 ORDER BY name LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(ctx, query, companyID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list suppliers: %w", err)
	}
	defer rows.Close()
	var list []*entity.Supplier
	for rows.Next() {
		var s entity.Supplier
		if err := rows.Scan(&s.ID, &s.CompanyID, &s.Name, &s.TaxID, &s.Email, &s.Phone, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan supplier: %w", err)
		}
		list = append(list, &s)
	}
	return list, rows.Err()
}
