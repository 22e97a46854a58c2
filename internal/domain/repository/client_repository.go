package repository

import (
	"context"

	"github.com/jhoicas/Supermercado-api/internal/domain/entity"
)

// ClientRepository persistencia de clientes.
type ClientRepository interface {
	Create(ctx context.Context, client *entity.Client) error
	GetByID(ctx context.Context, id string) (*entity.Client, error)
	GetByCompanyAndDocument(ctx context.Context, companyID, document string) (*entity.Client, error)
	ListByCompany(ctx context.Context, companyID string, limit, offset int) ([]*entity.Client, error)
}
