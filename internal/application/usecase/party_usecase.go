package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/Supermercado-api/internal/application/dto"
	"github.com/jhoicas/Supermercado-api/internal/domain"
	"github.com/jhoicas/Supermercado-api/internal/domain/entity"
	"github.com/jhoicas/Supermercado-api/internal/domain/repository"
	"github.com/jhoicas/Supermercado-api/pkg/normalize"
)

// ClientUseCase alta y consulta de clientes.
type ClientUseCase struct {
	repo repository.ClientRepository
}

func NewClientUseCase(repo repository.ClientRepository) *ClientUseCase {
	return &ClientUseCase{repo: repo}
}

// Create registra un cliente; el documento se guarda normalizado y es único por supermercado.
func (uc *ClientUseCase) Create(ctx context.Context, companyID string, in dto.CreateClientRequest) (*dto.ClientResponse, error) {
	doc := normalize.TaxID(in.Document)
	if doc == "" {
		return nil, domain.ErrValidation
	}
	existing, err := uc.repo.GetByCompanyAndDocument(ctx, companyID, doc)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicate
	}
	now := time.Now()
	c := &entity.Client{
		ID:        uuid.New().String(),
		CompanyID: companyID,
		Name:      strings.TrimSpace(in.Name),
		Document:  doc,
		Email:     normalize.Email(in.Email),
		Phone:     normalize.Digits(in.Phone),
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.repo.Create(ctx, c); err != nil {
		return nil, err
	}
	return toClientResponse(c), nil
}

func (uc *ClientUseCase) List(ctx context.Context, companyID string, limit, offset int) ([]dto.ClientResponse, error) {
	list, err := uc.repo.ListByCompany(ctx, companyID, limit, offset)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ClientResponse, 0, len(list))
	for _, c := range list {
		out = append(out, *toClientResponse(c))
	}
	return out, nil
}

func toClientResponse(c *entity.Client) *dto.ClientResponse {
	return &dto.ClientResponse{ID: c.ID, CompanyID: c.CompanyID, Name: c.Name, Document: c.Document, Email: c.Email, Phone: c.Phone}
}

// SupplierUseCase alta y consulta de proveedores.
type SupplierUseCase struct {
	repo repository.SupplierRepository
}

func NewSupplierUseCase(repo repository.SupplierRepository) *SupplierUseCase {
	return &SupplierUseCase{repo: repo}
}

// Create registra un proveedor; el documento fiscal es único por supermercado.
func (uc *SupplierUseCase) Create(ctx context.Context, companyID string, in dto.CreateSupplierRequest) (*dto.SupplierResponse, error) {
	taxID := normalize.TaxID(in.TaxID)
	if taxID == "" {
		return nil, domain.ErrValidation
	}
	existing, err := uc.repo.GetByCompanyAndTaxID(ctx, companyID, taxID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicate
	}
	now := time.Now()
	s := &entity.Supplier{
		ID:        uuid.New().String(),
		CompanyID: companyID,
		Name:      strings.TrimSpace(in.Name),
		TaxID:     taxID,
		Email:     normalize.Email(in.Email),
		Phone:     normalize.Digits(in.Phone),
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.repo.Create(ctx, s); err != nil {
		return nil, err
	}
	return toSupplierResponse(s), nil
}

func (uc *SupplierUseCase) List(ctx context.Context, companyID string, limit, offset int) ([]dto.SupplierResponse, error) {
	list, err := uc.repo.ListByCompany(ctx, companyID, limit, offset)
	if err != nil {
		return nil, err
	}
	out := make([]dto.SupplierResponse, 0, len(list))
	for _, s := range list {
		out = append(out, *toSupplierResponse(s))
	}
	return out, nil
}

func toSupplierResponse(s *entity.Supplier) *dto.SupplierResponse {
	return &dto.SupplierResponse{ID: s.ID, CompanyID: s.CompanyID, Name: s.Name, TaxID: s.TaxID, Email: s.Email, Phone: s.Phone}
}
