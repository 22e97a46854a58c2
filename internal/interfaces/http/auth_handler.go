package http

import (
	"context"
	"errors"
	"net/url"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Supermercado-api/internal/application/dto"
	"github.com/jhoicas/Supermercado-api/internal/domain"
	"github.com/jhoicas/Supermercado-api/internal/domain/entity"
	"github.com/jhoicas/Supermercado-api/pkg/logger"
	"github.com/jhoicas/Supermercado-api/pkg/validator"
)

// authService lo implementa *auth.AuthUseCase.
type authService interface {
	Register(ctx context.Context, in dto.RegisterRequest) error
	RequestLink(ctx context.Context, email string) error
	Exchange(ctx context.Context, email, token string) (string, error)
}

// AuthHandler maneja registro y login por magic link (público).
type AuthHandler struct {
	uc          authService
	validate    *validator.Validator
	frontendURL string
	log         *logger.Logger
}

// NewAuthHandler construye el handler de auth. frontendURL es la base de las redirecciones.
func NewAuthHandler(uc authService, v *validator.Validator, frontendURL string, log *logger.Logger) *AuthHandler {
	if log == nil {
		log = logger.Nop()
	}
	return &AuthHandler{
		uc:          uc,
		validate:    v,
		frontendURL: strings.TrimRight(frontendURL, "/"),
		log:         log.Named("auth_handler"),
	}
}

// Register godoc
// @Summary      Registrar supermercado y administrador
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RegisterRequest  true  "Supermercado + administrador"
// @Success      200   {object}  dto.Result
// @Failure      400   {object}  dto.Result
// @Failure      500   {object}  dto.Result
// @Router       /auth/register [post]
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var in dto.RegisterRequest
	if err := bindJSON(c, h.validate, &in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.Fail(failReason(err)))
	}
	if err := h.uc.Register(c.Context(), in); err != nil {
		var regErr *domain.RegistrationError
		switch {
		case errors.As(err, &regErr):
			h.log.Warn().Err(regErr.Cause).Msg("registro rechazado")
			return c.Status(fiber.StatusBadRequest).JSON(dto.Fail(regErr.Reason))
		case errors.Is(err, domain.ErrValidation):
			return c.Status(fiber.StatusBadRequest).JSON(dto.Fail("documento fiscal o email inválido"))
		}
		h.log.Error().Err(err).Msg("registro fallido")
		return c.Status(fiber.StatusInternalServerError).JSON(dto.Fail("no fue posible completar el registro"))
	}
	return c.JSON(dto.Ok())
}

// RequestMagicLink godoc
// @Summary      Solicitar enlace de acceso
// @Description  Responde éxito exista o no la cuenta.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.MagicLinkRequest  true  "email"
// @Success      200   {object}  dto.Result
// @Failure      400   {object}  dto.Result
// @Failure      429   {object}  dto.Result
// @Router       /auth/magic-link [post]
func (h *AuthHandler) RequestMagicLink(c *fiber.Ctx) error {
	var in dto.MagicLinkRequest
	if err := bindJSON(c, h.validate, &in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.Fail(failReason(err)))
	}
	if err := h.uc.RequestLink(c.Context(), in.Email); err != nil {
		if errors.Is(err, domain.ErrValidation) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.Fail("email inválido"))
		}
		h.log.Error().Err(err).Msg("solicitud de magic link fallida")
		return c.Status(fiber.StatusInternalServerError).JSON(dto.Fail("no fue posible procesar la solicitud"))
	}
	return c.JSON(dto.Ok())
}

// MagicLogin godoc
// @Summary      Consumir enlace de acceso
// @Description  Redirige al frontend con el access token o con error=auth_failed.
// @Tags         auth
// @Param        token  query  string  true  "token del enlace"
// @Param        email  query  string  true  "email del usuario"
// @Success      302
// @Failure      401  {object}  dto.Result
// @Router       /auth/magic-login [get]
func (h *AuthHandler) MagicLogin(c *fiber.Ctx) error {
	token := strings.TrimSpace(c.Query("token"))
	email := strings.TrimSpace(c.Query("email"))
	if token == "" || email == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.Fail("token y email son requeridos"))
	}
	access, err := h.uc.Exchange(c.Context(), email, token)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidOrExpiredToken) {
			h.log.Warn().Str("email", email).Msg("magic link inválido, usado o expirado")
		} else {
			h.log.Error().Err(err).Msg("canje de magic link fallido")
		}
		return c.Redirect(h.frontendURL+"/login?error=auth_failed", fiber.StatusFound)
	}
	return c.Redirect(h.frontendURL+"/auth/callback?jwt="+url.QueryEscape(access), fiber.StatusFound)
}

// Me godoc
// @Summary      Claims del token actual
// @Tags         auth
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.MeResponse
// @Failure      401  {object}  dto.ErrorResponse
// @Router       /auth/me [get]
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	areas := entity.AreasFor(GetRole(c))
	if IsGlobalAdmin(c) {
		areas = entity.Areas
	}
	names := make([]string, 0, len(areas))
	for _, a := range areas {
		names = append(names, string(a))
	}
	return c.JSON(dto.MeResponse{
		UserID:      GetUserID(c),
		Email:       GetEmail(c),
		Role:        string(GetRole(c)),
		GlobalAdmin: IsGlobalAdmin(c),
		CompanyID:   GetCompanyID(c),
		Areas:       names,
	})
}

func failReason(err error) string {
	var verr *validator.ValidationError
	if errors.As(err, &verr) {
		return verr.Error()
	}
	return "cuerpo inválido"
}
