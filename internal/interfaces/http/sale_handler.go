package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Supermercado-api/internal/application/dto"
	"github.com/jhoicas/Supermercado-api/internal/application/sales"
	"github.com/jhoicas/Supermercado-api/pkg/logger"
	"github.com/jhoicas/Supermercado-api/pkg/validator"
)

// SaleHandler maneja las peticiones HTTP de ventas (área de vendas).
type SaleHandler struct {
	uc       *sales.SalesUseCase
	validate *validator.Validator
	log      *logger.Logger
}

// NewSaleHandler construye el handler.
func NewSaleHandler(uc *sales.SalesUseCase, v *validator.Validator, log *logger.Logger) *SaleHandler {
	return &SaleHandler{uc: uc, validate: v, log: log}
}

// Create godoc
// @Summary      Registrar venta
// @Description  Descuenta stock y registra el ingreso en una sola transacción.
// @Tags         sales
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateSaleRequest  true  "Ítems y forma de pago"
// @Success      201   {object}  dto.SaleResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/sales [post]
func (h *SaleHandler) Create(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return noCompany(c)
	}
	var in dto.CreateSaleRequest
	if err := bindJSON(c, h.validate, &in); err != nil {
		return writeError(c, h.log, err)
	}
	out, err := h.uc.Create(c.Context(), companyID, GetUserID(c), in)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List godoc
// @Summary      Listar ventas
// @Tags         sales
// @Security     Bearer
// @Produce      json
// @Param        limit   query  int  false  "Límite"  default(20)
// @Param        offset  query  int  false  "Offset"  default(0)
// @Success      200  {object}  dto.SaleListResponse
// @Router       /api/sales [get]
func (h *SaleHandler) List(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return noCompany(c)
	}
	page := pageFrom(c)
	out, err := h.uc.List(c.Context(), companyID, page.Limit, page.Offset)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}

// GetByID GET /api/sales/:id
func (h *SaleHandler) GetByID(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return noCompany(c)
	}
	out, err := h.uc.Get(c.Context(), companyID, c.Params("id"))
	if err != nil {
		return writeError(c, h.log, err)
	}
	if out == nil {
		return notFound(c, "venta")
	}
	return c.JSON(out)
}

// Receipt godoc
// @Summary      Comprobante PDF de la venta
// @Tags         sales
// @Security     Bearer
// @Produce      application/pdf
// @Param        id   path  string  true  "ID de la venta"
// @Success      200  {file}  binary
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/sales/{id}/receipt [get]
func (h *SaleHandler) Receipt(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return noCompany(c)
	}
	id := c.Params("id")
	pdf, err := h.uc.Receipt(c.Context(), companyID, id)
	if err != nil {
		return writeError(c, h.log, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `inline; filename="venta-`+id+`.pdf"`)
	return c.Send(pdf)
}
