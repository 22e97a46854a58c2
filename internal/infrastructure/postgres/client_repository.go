package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/Supermercado-api/internal/domain"
	"github.com/jhoicas/Supermercado-api/internal/domain/entity"
	"github.com/jhoicas/Supermercado-api/internal/domain/repository"
)

var _ repository.ClientRepository = (*ClientRepo)(nil)

const clientColumns = `id, company_id, name, document, email, phone, created_at, updated_at`

// ClientRepo clientes del supermercado sobre PostgreSQL.
type ClientRepo struct {
	q Querier
}

// NewClientRepository construye el adaptador.
func NewClientRepository(q Querier) *ClientRepo {
	return &ClientRepo{q: q}
}

func (r *ClientRepo) Create(ctx context.Context, c *entity.Client) error {
	query := `INSERT INTO clients (` + clientColumns + `) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(ctx, query, c.ID, c.CompanyID, c.Name, c.Document, c.Email, c.Phone, c.CreatedAt, c.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert client: %w", err)
	}
	return nil
}

func (r *ClientRepo) GetByID(ctx context.Context, id string) (*entity.Client, error) {
	return r.getOne(ctx, `SELECT `+clientColumns+` FROM clients WHERE id = $1`, id)
}

func (r *ClientRepo) GetByCompanyAndDocument(ctx context.Context, companyID, document string) (*entity.Client, error) {
	return r.getOne(ctx, `SELECT `+clientColumns+` FROM clients WHERE company_id = $1 AND document = $2`, companyID, document)
}

func (r *ClientRepo) getOne(ctx context.Context, query string, args ...any) (*entity.Client, error) {
	var c entity.Client
	err := r.q.QueryRow(ctx, query, args...).Scan(
		&c.ID, &c.CompanyID, &c.Name, &c.Document, &c.Email, &c.Phone, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get client: %w", err)
	}
	return &c, nil
}

func (r *ClientRepo) ListByCompany(ctx context.Context, companyID string, limit, offset int) ([]*entity.Client, error) {
	query := `SELECT ` + clientColumns + ` FROM clients WHERE company_id = $1 ORDER BY name LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(ctx, query, companyID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list clients: %w", err)
	}
	defer rows.Close()
	var list []*entity.Client
	for rows.Next() {
		var c entity.Client
		if err := rows.Scan(&c.ID, &c.CompanyID, &c.Name, &c.Document, &c.Email, &c.Phone, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan client: %w", err)
		}
		list = append(list, &c)
	}
	return list, rows.Err()
}
