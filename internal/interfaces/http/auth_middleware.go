package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Supermercado-api/internal/application/dto"
	"github.com/jhoicas/Supermercado-api/internal/application/usecase"
	"github.com/jhoicas/Supermercado-api/internal/domain/entity"
	"github.com/jhoicas/Supermercado-api/pkg/jwt"
	"github.com/jhoicas/Supermercado-api/pkg/logger"
)

// Locals keys que el AuthMiddleware deja en el contexto Fiber.
const (
	LocalUserID      = "user_id"
	LocalCompanyID   = "company_id"
	LocalEmail       = "email"
	LocalRole        = "role"
	LocalGlobalAdmin = "global_admin"
)

// TokenVerifier valida un access token; lo implementa *jwt.Issuer.
type TokenVerifier interface {
	Verify(token string) (*jwt.Claims, error)
}

// AuthMiddleware acepta el token en "Authorization: Bearer <token>" o en la cookie jwt_token
// y deja los claims en c.Locals. El header tiene prioridad sobre la cookie.
func AuthMiddleware(verifier TokenVerifier, log *logger.Logger) fiber.Handler {
	if log == nil {
		log = logger.Nop()
	}
	log = log.Named("auth_middleware")
	return func(c *fiber.Ctx) error {
		tokenString, errResp := extractToken(c)
		if errResp != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(errResp)
		}
		claims, err := verifier.Verify(tokenString)
		if err != nil {
			log.Warn().Err(err).Str("path", c.Path()).Msg("token rechazado")
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "token inválido o expirado"})
		}
		c.Locals(LocalUserID, claims.UserID())
		c.Locals(LocalCompanyID, claims.CompanyID)
		c.Locals(LocalEmail, claims.Email)
		c.Locals(LocalRole, claims.Role)
		c.Locals(LocalGlobalAdmin, claims.GlobalAdmin)
		return c.Next()
	}
}

func extractToken(c *fiber.Ctx) (string, *dto.ErrorResponse) {
	authHeader := c.Get(fiber.HeaderAuthorization)
	if authHeader == "" {
		if cookie := strings.TrimSpace(c.Cookies(jwt.CookieName)); cookie != "" {
			return cookie, nil
		}
		return "", &dto.ErrorResponse{Code: "MISSING_TOKEN", Message: "Authorization header o cookie jwt_token requerido"}
	}
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", &dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "formato: Bearer <token>"}
	}
	tokenString := strings.TrimSpace(parts[1])
	if tokenString == "" {
		return "", &dto.ErrorResponse{Code: "MISSING_TOKEN", Message: "token vacío"}
	}
	return tokenString, nil
}

func localString(c *fiber.Ctx, key string) string {
	s, _ := c.Locals(key).(string)
	return s
}

// GetUserID devuelve el UserID del contexto (después del middleware de auth).
func GetUserID(c *fiber.Ctx) string { return localString(c, LocalUserID) }

// GetCompanyID devuelve el CompanyID del contexto; vacío para un admin global sin supermercado.
func GetCompanyID(c *fiber.Ctx) string { return localString(c, LocalCompanyID) }

// GetEmail devuelve el email del token.
func GetEmail(c *fiber.Ctx) string { return localString(c, LocalEmail) }

// GetRole devuelve el rol del token.
func GetRole(c *fiber.Ctx) entity.Role { return entity.Role(localString(c, LocalRole)) }

// IsGlobalAdmin informa si el token pertenece a un administrador global.
func IsGlobalAdmin(c *fiber.Ctx) bool {
	v, _ := c.Locals(LocalGlobalAdmin).(bool)
	return v
}

func actorFrom(c *fiber.Ctx) usecase.Actor {
	return usecase.Actor{
		UserID:      GetUserID(c),
		CompanyID:   GetCompanyID(c),
		Role:        GetRole(c),
		GlobalAdmin: IsGlobalAdmin(c),
	}
}
