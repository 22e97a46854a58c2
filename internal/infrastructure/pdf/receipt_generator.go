// Package pdf genera el comprobante de venta entregado en caja.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Nombre + Documento  │  N° Venta + Fecha            │
//	│  ─────────────────────────────────────────────────────────  │
//	│  SUPERMERCADO: Dirección / Tel / Email                       │
//	│  CLIENTE (opcional): Nombre + Documento                      │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Cant | Producto | P.Unit | Subtotal                  │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTAL + medio de pago                                       │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"strings"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Supermercado-api/internal/application/sales"
	"github.com/jhoicas/Supermercado-api/internal/domain/entity"
)

var _ sales.ReceiptGenerator = (*ReceiptGenerator)(nil)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 110, Blue: 60}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

var paymentLabels = map[string]string{
	entity.PaymentCash:   "Efectivo",
	entity.PaymentCard:   "Tarjeta",
	entity.PaymentPix:    "PIX",
	entity.PaymentCredit: "Crédito",
}

// ── Generator ─────────────────────────────────────────────────────────────────

// ReceiptGenerator implementa sales.ReceiptGenerator usando Maroto v2.
type ReceiptGenerator struct{}

// NewReceiptGenerator construye el generador.
func NewReceiptGenerator() *ReceiptGenerator { return &ReceiptGenerator{} }

// GenerateReceipt genera el PDF y devuelve sus bytes.
func (g *ReceiptGenerator) GenerateReceipt(
	_ context.Context,
	sale *entity.Sale,
	market *entity.Supermarket,
	client *entity.Client,
) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Comprobante de venta", true).
		WithAuthor(market.Name, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(sale, market))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(marketRow(market))
	if client != nil {
		m.AddRows(clientRow(client))
	}
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(tableHeaderRow())
	m.AddRows(itemRows(sale.Items)...)

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalRow(sale))
	m.AddRows(row.New(8).Add(col.New(12).Add(
		text.New("Documento sin valor fiscal. Gracias por su compra.", props.Text{
			Size: 7, Color: colorGray, Top: 3, Align: align.Center,
		}),
	)))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar comprobante: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

func headerRow(sale *entity.Sale, market *entity.Supermarket) core.Row {
	return row.New(18).Add(
		col.New(7).Add(
			text.New(market.Name, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New(nonEmpty(market.LegalName, market.Name)+"  |  "+market.TaxID, props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New("COMPROBANTE DE VENTA", props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right, Color: colorPrimary, Top: 1,
			}),
			text.New("N° "+strings.ToUpper(shortID(sale.ID)), props.Text{
				Style: fontstyle.Bold, Size: 12, Align: align.Right, Top: 7,
			}),
			text.New("Fecha: "+sale.CreatedAt.Format("02/01/2006 15:04"), props.Text{
				Size: 8, Align: align.Right, Top: 14, Color: colorGray,
			}),
		),
	)
}

func marketRow(market *entity.Supermarket) core.Row {
	return row.New(10).Add(
		col.New(12).Add(
			text.New(fmt.Sprintf("Dirección: %s   |   Tel: %s   |   Email: %s",
				nonEmpty(market.Address, "-"),
				nonEmpty(market.Phone, "-"),
				nonEmpty(market.Email, "-"),
			), props.Text{Size: 8, Top: 3, Color: colorGray}),
		),
	)
}

func clientRow(client *entity.Client) core.Row {
	return row.New(12).Add(
		col.New(12).Add(
			text.New("CLIENTE", props.Text{Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1}),
			text.New(client.Name+"  |  "+client.Document, props.Text{Size: 9, Top: 6}),
		),
	)
}

func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a, Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Cant.", 2, align.Center),
		h("Producto", 5, align.Left),
		h("Precio Unit.", 2, align.Right),
		h("Subtotal", 3, align.Right),
	)
}

func itemRows(items []entity.SaleItem) []core.Row {
	rows := make([]core.Row, 0, len(items))
	for _, it := range items {
		rows = append(rows, row.New(7).Add(
			col.New(2).Add(text.New(formatQuantity(it.Quantity), props.Text{Size: 8, Align: align.Center, Top: 1})),
			col.New(5).Add(text.New(it.Name, props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1})),
			col.New(2).Add(text.New(formatMoney(it.UnitPrice), props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
			col.New(3).Add(text.New(formatMoney(it.Subtotal), props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
		))
	}
	return rows
}

func totalRow(sale *entity.Sale) core.Row {
	payment := nonEmpty(paymentLabels[sale.PaymentMethod], sale.PaymentMethod)
	return row.New(16).Add(
		col.New(6).Add(text.New("Medio de pago: "+payment, props.Text{Size: 9, Top: 3, Color: colorGray})),
		col.New(3).Add(text.New("TOTAL:", props.Text{
			Style: fontstyle.Bold, Size: 11, Align: align.Right, Color: colorPrimary, Top: 2, Right: 2,
		})),
		col.New(3).Add(text.New(formatMoney(sale.Total), props.Text{
			Style: fontstyle.Bold, Size: 11, Align: align.Right, Color: colorPrimary, Top: 2, Right: 1,
		})),
	)
}

// ── helpers ───────────────────────────────────────────────────────────────────

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

// formatMoney usa separador de miles "." y decimal ",". Ej: 1234.5 -> "$ 1.234,50".
func formatMoney(d decimal.Decimal) string {
	s := d.Abs().StringFixed(2)
	intPart, frac := s[:len(s)-3], s[len(s)-2:]
	n := len(intPart)
	buf := make([]byte, 0, n+n/3)
	for i, c := range []byte(intPart) {
		if i > 0 && (n-i)%3 == 0 {
			buf = append(buf, '.')
		}
		buf = append(buf, c)
	}
	sign := ""
	if d.IsNegative() {
		sign = "-"
	}
	return "$ " + sign + string(buf) + "," + frac
}

// formatQuantity muestra enteros sin decimales y pesos con hasta 3.
func formatQuantity(q decimal.Decimal) string {
	if q.IsInteger() {
		return q.StringFixed(0)
	}
	return strings.Replace(q.StringFixed(3), ".", ",", 1)
}
