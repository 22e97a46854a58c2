package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/Supermercado-api/internal/domain"
	"github.com/jhoicas/Supermercado-api/internal/domain/entity"
	"github.com/jhoicas/Supermercado-api/internal/domain/repository"
)

var _ repository.UserRepository = (*UserRepo)(nil)

// company_id es NULL para administradores globales; se lee como cadena vacía.
const userColumns = `id, COALESCE(company_id::text, ''), email, name, role, is_global_admin, confirmed, status, created_at, updated_at`

// UserRepo implementación del puerto UserRepository sobre PostgreSQL.
type UserRepo struct {
	q Querier
}

// NewUserRepository construye el adaptador de persistencia para usuarios. Pasar pool o tx.
func NewUserRepository(q Querier) *UserRepo {
	return &UserRepo{q: q}
}

// Create persiste un nuevo usuario. El índice único sobre lower(email) decide los duplicados.
func (r *UserRepo) Create(ctx context.Context, user *entity.User) error {
	query := `
		INSERT INTO users (id, company_id, email, name, role, is_global_admin, confirmed, status, created_at, updated_at)
		VALUES ($1, NULLIF($2, '')::uuid, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(ctx, query,
		user.ID, user.CompanyID, user.Email, user.Name, string(user.Role), user.IsGlobalAdmin,
		user.Confirmed, user.Status, user.CreatedAt, user.UpdatedAt,
	)
	if err != nil {
		if dup := duplicateError(err); dup != nil {
			return dup
		}
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

// GetByID obtiene un usuario por ID.
func (r *UserRepo) GetByID(ctx context.Context, id string) (*entity.User, error) {
	return r.getOne(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id)
}

// GetByEmail obtiene un usuario por email (cualquier supermercado).
func (r *UserRepo) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	return r.getOne(ctx, `SELECT `+userColumns+` FROM users WHERE lower(email) = lower($1) LIMIT 1`, email)
}

func (r *UserRepo) getOne(ctx context.Context, query, arg string) (*entity.User, error) {
	u, err := scanUser(r.q.QueryRow(ctx, query, arg))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get user: %w", err)
	}
	return u, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanUser(row scanner) (*entity.User, error) {
	var u entity.User
	var role string
	if err := row.Scan(&u.ID, &u.CompanyID, &u.Email, &u.Name, &role, &u.IsGlobalAdmin,
		&u.Confirmed, &u.Status, &u.CreatedAt, &u.UpdatedAt); err != nil {
		return nil, err
	}
	u.Role = entity.Role(role)
	return &u, nil
}

// ListByCompany lista usuarios por supermercado con paginación.
func (r *UserRepo) ListByCompany(ctx context.Context, companyID string, limit, offset int) ([]*entity.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE company_id = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(ctx, query, companyID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()
	var list []*entity.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("scan user: %w", err)
		}
		list = append(list, u)
	}
	return list, rows.Err()
}

// UpdateRole cambia el rol de un usuario del supermercado indicado.
func (r *UserRepo) UpdateRole(ctx context.Context, id, companyID string, role entity.Role) error {
	cmd, err := r.q.Exec(ctx,
		`UPDATE users SET role = $3, updated_at = now() WHERE id = $1 AND company_id = $2`,
		id, companyID, string(role),
	)
	if err != nil {
		return fmt.Errorf("update user role: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

// MarkConfirmed confirma al usuario solo si aún no lo estaba.
func (r *UserRepo) MarkConfirmed(ctx context.Context, id string) (bool, error) {
	cmd, err := r.q.Exec(ctx,
		`UPDATE users SET confirmed = true, updated_at = now() WHERE id = $1 AND confirmed = false`,
		id,
	)
	if err != nil {
		return false, fmt.Errorf("confirm user: %w", err)
	}
	return cmd.RowsAffected() == 1, nil
}
