package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/Supermercado-api/internal/domain/entity"
	"github.com/jhoicas/Supermercado-api/internal/domain/repository"
)

var _ repository.SaleRepository = (*SaleRepo)(nil)

// SaleRepo ventas (cabecera en sales, líneas en sale_items).
type SaleRepo struct {
	q Querier
}

// NewSaleRepository construye el adaptador. Create debe correr dentro de una tx (ver TxRunner.RunSale).
func NewSaleRepository(q Querier) *SaleRepo {
	return &SaleRepo{q: q}
}

// Create inserta la cabecera y todas sus líneas.
func (r *SaleRepo) Create(ctx context.Context, s *entity.Sale) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO sales (id, company_id, user_id, client_id, payment_method, total, created_at)
		VALUES ($1, $2, $3, NULLIF($4, '')::uuid, $5, $6, $7)`,
		s.ID, s.CompanyID, s.UserID, s.ClientID, s.PaymentMethod, s.Total, s.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert sale: %w", err)
	}
	for _, it := range s.Items {
		_, err := r.q.Exec(ctx, `
			INSERT INTO sale_items (id, sale_id, product_id, name, quantity, unit_price, subtotal)
			VALUES ($1, $2, $3, $4, $5, $6, $7)`,
			it.ID, s.ID, it.ProductID, it.Name, it.Quantity, it.UnitPrice, it.Subtotal,
		)
		if err != nil {
			return fmt.Errorf("insert sale item: %w", err)
		}
	}
	return nil
}

const saleColumns = `id, company_id, user_id, COALESCE(client_id::text, ''), payment_method, total, created_at`

// GetByID obtiene la venta con sus líneas.
func (r *SaleRepo) GetByID(ctx context.Context, id string) (*entity.Sale, error) {
	var s entity.Sale
	err := r.q.QueryRow(ctx, `SELECT `+saleColumns+` FROM sales WHERE id = $1`, id).Scan(
		&s.ID, &s.CompanyID, &s.UserID, &s.ClientID, &s.PaymentMethod, &s.Total, &s.CreatedAt,
	)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get sale: %w", err)
	}

	rows, err := r.q.Query(ctx, `
		SELECT id, sale_id, product_id, name, quantity, unit_price, subtotal
		FROM sale_items WHERE sale_id = $1 ORDER BY name`, id)
	if err != nil {
		return nil, fmt.Errorf("list sale items: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var it entity.SaleItem
		if err := rows.Scan(&it.ID, &it.SaleID, &it.ProductID, &it.Name, &it.Quantity, &it.UnitPrice, &it.Subtotal); err != nil {
			return nil, fmt.Errorf("scan sale item: %w", err)
		}
		s.Items = append(s.Items, it)
	}
	return &s, rows.Err()
}

// ListByCompany lista cabeceras de venta (sin líneas), más recientes primero.
func (r *SaleRepo) ListByCompany(ctx context.Context, companyID string, limit, offset int) ([]*entity.Sale, error) {
	rows, err := r.q.Query(ctx,
		`SELECT `+saleColumns+` FROM sales WHERE company_id = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3`,
		companyID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list sales: %w", err)
	}
	defer rows.Close()
	var list []*entity.Sale
	for rows.Next() {
		var s entity.Sale
		if err := rows.Scan(&s.ID, &s.CompanyID, &s.UserID, &s.ClientID, &s.PaymentMethod, &s.Total, &s.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan sale: %w", err)
		}
		list = append(list, &s)
	}
	return list, rows.Err()
}
