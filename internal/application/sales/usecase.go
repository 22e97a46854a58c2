package sales

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Supermercado-api/internal/application/dto"
	"github.com/jhoicas/Supermercado-api/internal/domain"
	"github.com/jhoicas/Supermercado-api/internal/domain/entity"
	"github.com/jhoicas/Supermercado-api/internal/domain/repository"
	"github.com/jhoicas/Supermercado-api/pkg/logger"
)

// Deps dependencias del caso de uso de ventas.
type Deps struct {
	Products repository.ProductRepository
	Sales    repository.SaleRepository
	Clients  repository.ClientRepository
	Markets  repository.SupermarketRepository
	Tx       TxRunner
	Receipts ReceiptGenerator
	Log      *logger.Logger
}

// SalesUseCase registro de ventas en caja y emisión de comprobantes.
type SalesUseCase struct {
	products repository.ProductRepository
	sales    repository.SaleRepository
	clients  repository.ClientRepository
	markets  repository.SupermarketRepository
	tx       TxRunner
	receipts ReceiptGenerator
	log      *logger.Logger
	now      func() time.Time
}

// NewSalesUseCase construye el caso de uso.
func NewSalesUseCase(deps Deps) *SalesUseCase {
	log := deps.Log
	if log == nil {
		log = logger.Nop()
	}
	return &SalesUseCase{
		products: deps.Products,
		sales:    deps.Sales,
		clients:  deps.Clients,
		markets:  deps.Markets,
		tx:       deps.Tx,
		receipts: deps.Receipts,
		log:      log.Named("sales"),
		now:      time.Now,
	}
}

// Create registra la venta. El precio de cada línea es el del producto al momento de vender;
// líneas repetidas del mismo producto se suman en una.
func (uc *SalesUseCase) Create(ctx context.Context, companyID, userID string, in dto.CreateSaleRequest) (*dto.SaleResponse, error) {
	if len(in.Items) == 0 {
		return nil, fmt.Errorf("%w: la venta no tiene líneas", domain.ErrValidation)
	}
	if in.ClientID != "" {
		client, err := uc.clients.GetByID(ctx, in.ClientID)
		if err != nil {
			return nil, err
		}
		if client == nil || client.CompanyID != companyID {
			return nil, fmt.Errorf("%w: cliente", domain.ErrNotFound)
		}
	}

	now := uc.now()
	sale := &entity.Sale{
		ID:            uuid.New().String(),
		CompanyID:     companyID,
		UserID:        userID,
		ClientID:      in.ClientID,
		PaymentMethod: in.PaymentMethod,
		Total:         decimal.Zero,
		CreatedAt:     now,
	}

	index := map[string]int{}
	for _, it := range in.Items {
		if !it.Quantity.IsPositive() {
			return nil, fmt.Errorf("%w: cantidad debe ser mayor a cero", domain.ErrValidation)
		}
		if i, ok := index[it.ProductID]; ok {
			line := &sale.Items[i]
			line.Quantity = line.Quantity.Add(it.Quantity)
			line.Subtotal = line.UnitPrice.Mul(line.Quantity)
			continue
		}
		product, err := uc.products.GetByID(ctx, it.ProductID)
		if err != nil {
			return nil, err
		}
		if product == nil || product.CompanyID != companyID {
			return nil, fmt.Errorf("%w: producto %s", domain.ErrNotFound, it.ProductID)
		}
		index[it.ProductID] = len(sale.Items)
		sale.Items = append(sale.Items, entity.SaleItem{
			ID:        uuid.New().String(),
			SaleID:    sale.ID,
			ProductID: product.ID,
			Name:      product.Name,
			Quantity:  it.Quantity,
			UnitPrice: product.Price,
			Subtotal:  product.Price.Mul(it.Quantity),
		})
	}
	for _, line := range sale.Items {
		sale.Total = sale.Total.Add(line.Subtotal)
	}

	income := &entity.FinancialTransaction{
		ID:          uuid.New().String(),
		CompanyID:   companyID,
		Type:        entity.TransactionIncome,
		Category:    entity.CategorySale,
		Description: "Venta " + sale.ID[:8],
		Amount:      sale.Total,
		Reference:   sale.ID,
		OccurredAt:  now,
		CreatedAt:   now,
	}

	err := uc.tx.RunSale(ctx, func(products repository.ProductRepository, sales repository.SaleRepository, finance repository.FinancialTransactionRepository) error {
		for _, line := range sale.Items {
			ok, err := products.DecrementStock(ctx, companyID, line.ProductID, line.Quantity)
			if err != nil {
				return err
			}
			if !ok {
				return fmt.Errorf("%w: %s", domain.ErrInsufficientStock, line.Name)
			}
		}
		if err := sales.Create(ctx, sale); err != nil {
			return err
		}
		return finance.Create(ctx, income)
	})
	if err != nil {
		return nil, err
	}

	uc.log.Info().Str("company_id", companyID).Str("sale_id", sale.ID).Str("total", sale.Total.String()).Msg("venta registrada")
	return toSaleResponse(sale), nil
}

// Get obtiene una venta del supermercado; nil si no existe o es de otro tenant.
func (uc *SalesUseCase) Get(ctx context.Context, companyID, id string) (*dto.SaleResponse, error) {
	sale, err := uc.load(ctx, companyID, id)
	if err != nil || sale == nil {
		return nil, err
	}
	return toSaleResponse(sale), nil
}

func (uc *SalesUseCase) load(ctx context.Context, companyID, id string) (*entity.Sale, error) {
	sale, err := uc.sales.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if sale == nil || sale.CompanyID != companyID {
		return nil, nil
	}
	return sale, nil
}

// List lista ventas del supermercado con paginación.
func (uc *SalesUseCase) List(ctx context.Context, companyID string, limit, offset int) (*dto.SaleListResponse, error) {
	list, err := uc.sales.ListByCompany(ctx, companyID, limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.SaleResponse, 0, len(list))
	for _, s := range list {
		items = append(items, *toSaleResponse(s))
	}
	return &dto.SaleListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

// Receipt genera el PDF de la venta. domain.ErrNotFound si no pertenece al supermercado.
func (uc *SalesUseCase) Receipt(ctx context.Context, companyID, id string) ([]byte, error) {
	sale, err := uc.load(ctx, companyID, id)
	if err != nil {
		return nil, err
	}
	if sale == nil {
		return nil, domain.ErrNotFound
	}
	market, err := uc.markets.GetByID(ctx, companyID)
	if err != nil {
		return nil, err
	}
	if market == nil {
		return nil, domain.ErrNotFound
	}
	var client *entity.Client
	if sale.ClientID != "" {
		if client, err = uc.clients.GetByID(ctx, sale.ClientID); err != nil {
			return nil, err
		}
	}
	return uc.receipts.GenerateReceipt(ctx, sale, market, client)
}

func toSaleResponse(s *entity.Sale) *dto.SaleResponse {
	out := &dto.SaleResponse{
		ID:            s.ID,
		CompanyID:     s.CompanyID,
		UserID:        s.UserID,
		ClientID:      s.ClientID,
		PaymentMethod: s.PaymentMethod,
		Total:         s.Total,
		CreatedAt:     s.CreatedAt,
	}
	for _, it := range s.Items {
		out.Items = append(out.Items, dto.SaleItemResponse{
			ProductID: it.ProductID,
			Name:      it.Name,
			Quantity:  it.Quantity,
			UnitPrice: it.UnitPrice,
			Subtotal:  it.Subtotal,
		})
	}
	return out
}
