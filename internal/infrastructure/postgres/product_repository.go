package postgres

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Supermercado-api/internal/domain"
	"github.com/jhoicas/Supermercado-api/internal/domain/entity"
	"github.com/jhoicas/Supermercado-api/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

const productColumns = `id, company_id, sku, barcode, name, price, cost, stock, created_at, updated_at`

// ProductRepo implementación del puerto ProductRepository sobre PostgreSQL (usable con pool o tx).
type ProductRepo struct {
	q Querier
}

// NewProductRepository construye el adaptador de persistencia para productos. Pasar pool o tx (Querier).
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

// Create persiste un nuevo producto. SKU repetido en el supermercado => domain.ErrDuplicate.
func (r *ProductRepo) Create(ctx context.Context, p *entity.Product) error {
	query := `INSERT INTO products (` + productColumns + `) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(ctx, query,
		p.ID, p.CompanyID, p.SKU, p.Barcode, p.Name, p.Price, p.Cost, p.Stock, p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert product: %w", err)
	}
	return nil
}

// GetByID obtiene un producto por ID.
func (r *ProductRepo) GetByID(ctx context.Context, id string) (*entity.Product, error) {
	return r.getOne(ctx, `SELECT `+productColumns+` FROM products WHERE id = $1`, id)
}

// GetByCompanyAndSKU obtiene un producto por supermercado y SKU.
func (r *ProductRepo) GetByCompanyAndSKU(ctx context.Context, companyID, sku string) (*entity.Product, error) {
	return r.getOne(ctx, `SELECT `+productColumns+` FROM products WHERE company_id = $1 AND sku = $2`, companyID, sku)
}

func (r *ProductRepo) getOne(ctx context.Context, query string, args ...any) (*entity.Product, error) {
	p, err := scanProduct(r.q.QueryRow(ctx, query, args...))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get product: %w", err)
	}
	return p, nil
}

func scanProduct(row scanner) (*entity.Product, error) {
	var p entity.Product
	if err := row.Scan(&p.ID, &p.CompanyID, &p.SKU, &p.Barcode, &p.Name, &p.Price, &p.Cost, &p.Stock,
		&p.CreatedAt, &p.UpdatedAt); err != nil {
		return nil, err
	}
	return &p, nil
}

// Update actualiza datos comerciales y stock del producto dentro de su supermercado.
func (r *ProductRepo) Update(ctx context.Context, p *entity.Product) error {
	query := `
		UPDATE products SET sku = $3, barcode = $4, name = $5, price = $6, cost = $7, stock = $8, updated_at = $9
		WHERE id = $1 AND company_id = $2`
	cmd, err := r.q.Exec(ctx, query,
		p.ID, p.CompanyID, p.SKU, p.Barcode, p.Name, p.Price, p.Cost, p.Stock, p.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update product: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// DecrementStock descuenta qty solo si alcanza; la condición va en el WHERE para no vender de más
// con cajas concurrentes.
func (r *ProductRepo) DecrementStock(ctx context.Context, companyID, productID string, qty decimal.Decimal) (bool, error) {
	cmd, err := r.q.Exec(ctx, `
		UPDATE products SET stock = stock - $3, updated_at = now()
		 WHERE id = $2 AND company_id = $1 AND stock >= $3`,
		companyID, productID, qty,
	)
	if err != nil {
		return false, fmt.Errorf("decrement stock: %w", err)
	}
	return cmd.RowsAffected() == 1, nil
}

// ListByCompany lista productos por supermercado con paginación.
func (r *ProductRepo) ListByCompany(ctx context.Context, companyID string, limit, offset int) ([]*entity.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE company_id = $1 ORDER BY name LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(ctx, query, companyID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()
	var list []*entity.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		list = append(list, p)
	}
	return list, rows.Err()
}

// Delete elimina un producto del supermercado.
func (r *ProductRepo) Delete(ctx context.Context, companyID, id string) error {
	cmd, err := r.q.Exec(ctx, `DELETE FROM products WHERE id = $1 AND company_id = $2`, id, companyID)
	if err != nil {
		return fmt.Errorf("delete product: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
