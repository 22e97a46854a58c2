package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Supermercado-api/internal/application/dto"
	"github.com/jhoicas/Supermercado-api/internal/application/usecase"
	"github.com/jhoicas/Supermercado-api/pkg/logger"
	"github.com/jhoicas/Supermercado-api/pkg/validator"
)

// PartyHandler maneja clientes y proveedores del supermercado (área de cadastros).
type PartyHandler struct {
	clients   *usecase.ClientUseCase
	suppliers *usecase.SupplierUseCase
	validate  *validator.Validator
	log       *logger.Logger
}

// NewPartyHandler construye el handler.
func NewPartyHandler(clients *usecase.ClientUseCase, suppliers *usecase.SupplierUseCase, v *validator.Validator, log *logger.Logger) *PartyHandler {
	return &PartyHandler{clients: clients, suppliers: suppliers, validate: v, log: log}
}

// CreateClient godoc
// @Summary      Crear cliente
// @Tags         clients
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateClientRequest  true  "Datos del cliente"
// @Success      201   {object}  dto.ClientResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/clients [post]
func (h *PartyHandler) CreateClient(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return noCompany(c)
	}
	var in dto.CreateClientRequest
	if err := bindJSON(c, h.validate, &in); err != nil {
		return writeError(c, h.log, err)
	}
	out, err := h.clients.Create(c.Context(), companyID, in)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ListClients GET /api/clients?limit=20&offset=0
func (h *PartyHandler) ListClients(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return noCompany(c)
	}
	page := pageFrom(c)
	list, err := h.clients.List(c.Context(), companyID, page.Limit, page.Offset)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(list)
}

// CreateSupplier godoc
// @Summary      Crear proveedor
// @Tags         suppliers
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateSupplierRequest  true  "Datos del proveedor"
// @Success      201   {object}  dto.SupplierResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/suppliers [post]
func (h *PartyHandler) CreateSupplier(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return noCompany(c)
	}
	var in dto.CreateSupplierRequest
	if err := bindJSON(c, h.validate, &in); err != nil {
		return writeError(c, h.log, err)
	}
	out, err := h.suppliers.Create(c.Context(), companyID, in)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ListSuppliers GET /api/suppliers?limit=20&offset=0
func (h *PartyHandler) ListSuppliers(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return noCompany(c)
	}
	page := pageFrom(c)
	list, err := h.suppliers.List(c.Context(), companyID, page.Limit, page.Offset)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(list)
}
