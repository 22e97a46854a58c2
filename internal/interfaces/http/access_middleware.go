package http

import (
	"context"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Supermercado-api/internal/application/dto"
	"github.com/jhoicas/Supermercado-api/internal/domain/entity"
	"github.com/jhoicas/Supermercado-api/pkg/logger"
)

// subscriptionChecker lo implementa *usecase.SubscriptionService.
type subscriptionChecker interface {
	IsActive(ctx context.Context, companyID string) (bool, error)
}

// RequireArea autoriza el grupo de rutas según la tabla rol -> áreas.
// El administrador global pasa siempre. Debe usarse DESPUÉS de AuthMiddleware.
func RequireArea(area entity.Area) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if IsGlobalAdmin(c) {
			return c.Next()
		}
		if !entity.CanAccess(GetRole(c), area) {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
				Code:    "FORBIDDEN",
				Message: "el rol no tiene acceso al área '" + string(area) + "'",
			})
		}
		return c.Next()
	}
}

// RequireGlobalAdmin restringe la ruta a administradores globales.
func RequireGlobalAdmin() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if !IsGlobalAdmin(c) {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
				Code:    "FORBIDDEN",
				Message: "solo el administrador global puede acceder",
			})
		}
		return c.Next()
	}
}

// RequireActiveSubscription bloquea las operaciones del tenant cuando la suscripción venció.
//
// Comportamiento:
//   - admin global → pasa sin consultar.
//   - sin company_id en el token → 403.
//   - 503 si falla la consulta; 402 si la suscripción no está vigente.
func RequireActiveSubscription(checker subscriptionChecker, log *logger.Logger) fiber.Handler {
	if log == nil {
		log = logger.Nop()
	}
	log = log.Named("subscription")
	return func(c *fiber.Ctx) error {
		if IsGlobalAdmin(c) {
			return c.Next()
		}
		companyID := GetCompanyID(c)
		if companyID == "" {
			return noCompany(c)
		}

		active, err := checker.IsActive(c.Context(), companyID)
		if err != nil {
			log.Error().Err(err).Str("company_id", companyID).Msg("no se pudo verificar la suscripción")
			return c.Status(fiber.StatusServiceUnavailable).JSON(dto.ErrorResponse{
				Code:    "SUBSCRIPTION_CHECK_FAILED",
				Message: "no se pudo verificar la suscripción, intente más tarde",
			})
		}
		if !active {
			return c.Status(fiber.StatusPaymentRequired).JSON(dto.ErrorResponse{
				Code:    "SUBSCRIPTION_INACTIVE",
				Message: "la suscripción del supermercado no está vigente",
			})
		}
		return c.Next()
	}
}

func noCompany(c *fiber.Ctx) error {
	return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
		Code:    "NO_COMPANY",
		Message: "el token no está asociado a un supermercado",
	})
}
