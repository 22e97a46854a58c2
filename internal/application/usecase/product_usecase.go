package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/Supermercado-api/internal/application/dto"
	"github.com/jhoicas/Supermercado-api/internal/domain"
	"github.com/jhoicas/Supermercado-api/internal/domain/entity"
	"github.com/jhoicas/Supermercado-api/internal/domain/repository"
)

// ProductUseCase casos de uso CRUD para productos del supermercado.
type ProductUseCase struct {
	repo repository.ProductRepository
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(repo repository.ProductRepository) *ProductUseCase {
	return &ProductUseCase{repo: repo}
}

// Create crea un producto. SKU repetido dentro del supermercado => domain.ErrDuplicate.
func (uc *ProductUseCase) Create(ctx context.Context, companyID string, in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	if in.Price.IsNegative() || in.Cost.IsNegative() || in.Stock.IsNegative() {
		return nil, fmt.Errorf("%w: precio, costo y stock no pueden ser negativos", domain.ErrValidation)
	}
	sku := strings.TrimSpace(in.SKU)
	existing, err := uc.repo.GetByCompanyAndSKU(ctx, companyID, sku)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicate
	}
	now := time.Now()
	product := &entity.Product{
		ID:        uuid.New().String(),
		CompanyID: companyID,
		SKU:       sku,
		Barcode:   strings.TrimSpace(in.Barcode),
		Name:      strings.TrimSpace(in.Name),
		Price:     in.Price,
		Cost:      in.Cost,
		Stock:     in.Stock,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.repo.Create(ctx, product); err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// GetByID obtiene un producto del supermercado; nil si no existe o es de otro tenant.
func (uc *ProductUseCase) GetByID(ctx context.Context, companyID, id string) (*dto.ProductResponse, error) {
	product, err := uc.get(ctx, companyID, id)
	if err != nil || product == nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

func (uc *ProductUseCase) get(ctx context.Context, companyID, id string) (*entity.Product, error) {
	product, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil || product.CompanyID != companyID {
		return nil, nil
	}
	return product, nil
}

// Update aplica los campos presentes en la solicitud.
func (uc *ProductUseCase) Update(ctx context.Context, companyID, id string, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	product, err := uc.get(ctx, companyID, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, nil
	}
	if in.Barcode != nil {
		product.Barcode = strings.TrimSpace(*in.Barcode)
	}
	if in.Name != nil {
		product.Name = strings.TrimSpace(*in.Name)
	}
	if in.Price != nil {
		product.Price = *in.Price
	}
	if in.Cost != nil {
		product.Cost = *in.Cost
	}
	if in.Stock != nil {
		product.Stock = *in.Stock
	}
	if product.Price.IsNegative() || product.Cost.IsNegative() || product.Stock.IsNegative() {
		return nil, fmt.Errorf("%w: precio, costo y stock no pueden ser negativos", domain.ErrValidation)
	}
	product.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, product); err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// List lista productos por supermercado con paginación.
func (uc *ProductUseCase) List(ctx context.Context, companyID string, limit, offset int) (*dto.ProductListResponse, error) {
	list, err := uc.repo.ListByCompany(ctx, companyID, limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ProductResponse, 0, len(list))
	for _, p := range list {
		items = append(items, *toProductResponse(p))
	}
	return &dto.ProductListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

// Delete elimina un producto del supermercado.
func (uc *ProductUseCase) Delete(ctx context.Context, companyID, id string) error {
	return uc.repo.Delete(ctx, companyID, id)
}

func toProductResponse(p *entity.Product) *dto.ProductResponse {
	return &dto.ProductResponse{
		ID:        p.ID,
		CompanyID: p.CompanyID,
		SKU:       p.SKU,
		Barcode:   p.Barcode,
		Name:      p.Name,
		Price:     p.Price,
		Cost:      p.Cost,
		Stock:     p.Stock,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}
