package usecase

import (
	"context"

	"github.com/jhoicas/Supermercado-api/internal/application/dto"
	"github.com/jhoicas/Supermercado-api/internal/domain/entity"
	"github.com/jhoicas/Supermercado-api/internal/domain/repository"
)

// SupermarketUseCase consultas sobre los tenants. El alta va por auth.Register.
type SupermarketUseCase struct {
	repo repository.SupermarketRepository
}

// NewSupermarketUseCase construye el caso de uso con el puerto de persistencia.
func NewSupermarketUseCase(repo repository.SupermarketRepository) *SupermarketUseCase {
	return &SupermarketUseCase{repo: repo}
}

// GetByID obtiene un supermercado por ID.
func (uc *SupermarketUseCase) GetByID(ctx context.Context, id string) (*dto.SupermarketResponse, error) {
	s, err := uc.repo.GetByID(ctx, id)
	if err != nil || s == nil {
		return nil, err
	}
	return toSupermarketResponse(s), nil
}

// List lista supermercados con paginación (solo administradores globales).
func (uc *SupermarketUseCase) List(ctx context.Context, limit, offset int) (*dto.SupermarketListResponse, error) {
	list, err := uc.repo.List(ctx, limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.SupermarketResponse, 0, len(list))
	for _, s := range list {
		items = append(items, *toSupermarketResponse(s))
	}
	return &dto.SupermarketListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

func toSupermarketResponse(s *entity.Supermarket) *dto.SupermarketResponse {
	return &dto.SupermarketResponse{
		ID:        s.ID,
		Name:      s.Name,
		LegalName: s.LegalName,
		TaxID:     s.TaxID,
		Email:     s.Email,
		Phone:     s.Phone,
		Address:   s.Address,
		Status:    s.Status,
		CreatedAt: s.CreatedAt,
		UpdatedAt: s.UpdatedAt,
	}
}
