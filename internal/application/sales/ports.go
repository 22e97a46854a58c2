package sales

import (
	"context"

	"github.com/jhoicas/Supermercado-api/internal/domain/entity"
	"github.com/jhoicas/Supermercado-api/internal/domain/repository"
)

// TxRunner ejecuta fn en una transacción: descuento de stock, venta e ingreso financiero
// se confirman juntos o no se confirma ninguno.
type TxRunner interface {
	RunSale(ctx context.Context, fn func(
		products repository.ProductRepository,
		sales repository.SaleRepository,
		finance repository.FinancialTransactionRepository,
	) error) error
}

// ReceiptGenerator genera el comprobante PDF de una venta. client puede ser nil.
type ReceiptGenerator interface {
	GenerateReceipt(ctx context.Context, sale *entity.Sale, market *entity.Supermarket, client *entity.Client) ([]byte, error)
}
