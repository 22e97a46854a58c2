package repository

import (
	"context"

	"github.com/jhoicas/Supermercado-api/internal/domain/entity"
)

// UserRepository define el puerto de persistencia para User (DIP).
// El email se recibe ya normalizado; la unicidad la garantiza la base de datos.
type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	GetByID(ctx context.Context, id string) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	ListByCompany(ctx context.Context, companyID string, limit, offset int) ([]*entity.User, error)
	UpdateRole(ctx context.Context, id, companyID string, role entity.Role) error
	// MarkConfirmed confirma el usuario; devuelve false si ya estaba confirmado.
	MarkConfirmed(ctx context.Context, id string) (bool, error)
}
