package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Supermercado-api/internal/application/dto"
	"github.com/jhoicas/Supermercado-api/internal/domain"
	"github.com/jhoicas/Supermercado-api/pkg/logger"
	"github.com/jhoicas/Supermercado-api/pkg/validator"
)

var errInvalidBody = errors.New("cuerpo inválido")

// bindJSON parsea el cuerpo y lo valida con los tags `validate`.
func bindJSON(c *fiber.Ctx, v *validator.Validator, dst interface{}) error {
	if err := c.BodyParser(dst); err != nil {
		return errInvalidBody
	}
	return v.Struct(dst)
}

// pageFrom lee limit/offset de la query con los valores por defecto de dto.PageRequest.
func pageFrom(c *fiber.Ctx) dto.PageRequest {
	var p dto.PageRequest
	_ = c.QueryParser(&p)
	p.DefaultPage()
	return p
}

// writeError traduce errores de dominio a status + dto.ErrorResponse.
// Los errores no clasificados se registran y salen como 500 sin detalle interno.
func writeError(c *fiber.Ctx, log *logger.Logger, err error) error {
	if log == nil {
		log = logger.Nop()
	}
	var verr *validator.ValidationError
	switch {
	case errors.Is(err, errInvalidBody):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	case errors.As(err, &verr):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "datos inválidos", Fields: verr.Fields})
	case errors.Is(err, domain.ErrValidation):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	case errors.Is(err, domain.ErrInsufficientStock):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "INSUFFICIENT_STOCK", Message: err.Error()})
	case errors.Is(err, domain.ErrDuplicate):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "DUPLICATE", Message: err.Error()})
	case errors.Is(err, domain.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: err.Error()})
	case errors.Is(err, domain.ErrForbidden):
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: err.Error()})
	case errors.Is(err, domain.ErrUnauthorized):
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: err.Error()})
	}
	log.ForTenant(GetCompanyID(c), GetUserID(c)).Error().Err(err).
		Str("method", c.Method()).Str("path", c.Path()).Msg("error no controlado")
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: "error interno"})
}

func notFound(c *fiber.Ctx, what string) error {
	return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: what + " no encontrado"})
}
