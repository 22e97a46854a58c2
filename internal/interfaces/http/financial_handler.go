package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Supermercado-api/internal/application/dto"
	"github.com/jhoicas/Supermercado-api/internal/application/usecase"
	"github.com/jhoicas/Supermercado-api/pkg/logger"
	"github.com/jhoicas/Supermercado-api/pkg/validator"
)

const dateLayout = "2006-01-02"

// FinancialHandler maneja ingresos y egresos (área financeiro).
type FinancialHandler struct {
	uc       *usecase.FinancialUseCase
	validate *validator.Validator
	log      *logger.Logger
}

// NewFinancialHandler construye el handler.
func NewFinancialHandler(uc *usecase.FinancialUseCase, v *validator.Validator, log *logger.Logger) *FinancialHandler {
	return &FinancialHandler{uc: uc, validate: v, log: log}
}

// Create godoc
// @Summary      Registrar movimiento financiero
// @Tags         financial
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateTransactionRequest  true  "Ingreso o egreso"
// @Success      201   {object}  dto.TransactionResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/financial/transactions [post]
func (h *FinancialHandler) Create(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return noCompany(c)
	}
	var in dto.CreateTransactionRequest
	if err := bindJSON(c, h.validate, &in); err != nil {
		return writeError(c, h.log, err)
	}
	out, err := h.uc.Create(c.Context(), companyID, in)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List godoc
// @Summary      Movimientos del periodo con totales
// @Description  Sin from/to usa el mes en curso. Fechas en formato YYYY-MM-DD; to es inclusivo.
// @Tags         financial
// @Security     Bearer
// @Produce      json
// @Param        from    query  string  false  "Desde (YYYY-MM-DD)"
// @Param        to      query  string  false  "Hasta (YYYY-MM-DD)"
// @Param        limit   query  int     false  "Límite"  default(20)
// @Param        offset  query  int     false  "Offset"  default(0)
// @Success      200  {object}  dto.TransactionListResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/financial/transactions [get]
func (h *FinancialHandler) List(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return noCompany(c)
	}
	var from, to time.Time
	if s := c.Query("from"); s != "" {
		t, err := time.Parse(dateLayout, s)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "from debe tener formato YYYY-MM-DD"})
		}
		from = t
	}
	if s := c.Query("to"); s != "" {
		t, err := time.Parse(dateLayout, s)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "to debe tener formato YYYY-MM-DD"})
		}
		to = t.AddDate(0, 0, 1)
	}
	page := pageFrom(c)
	out, err := h.uc.List(c.Context(), companyID, from, to, page.Limit, page.Offset)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}
