package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Supermercado-api/internal/application/dto"
	"github.com/jhoicas/Supermercado-api/internal/application/usecase"
	"github.com/jhoicas/Supermercado-api/pkg/logger"
	"github.com/jhoicas/Supermercado-api/pkg/validator"
)

// ManagementHandler maneja el área de gestão: supermercado, usuarios y suscripción.
type ManagementHandler struct {
	markets  *usecase.SupermarketUseCase
	users    *usecase.UserUseCase
	subs     *usecase.SubscriptionService
	validate *validator.Validator
	log      *logger.Logger
}

// NewManagementHandler construye el handler.
func NewManagementHandler(
	markets *usecase.SupermarketUseCase,
	users *usecase.UserUseCase,
	subs *usecase.SubscriptionService,
	v *validator.Validator,
	log *logger.Logger,
) *ManagementHandler {
	return &ManagementHandler{markets: markets, users: users, subs: subs, validate: v, log: log}
}

// GetSupermarket godoc
// @Summary      Supermercado del token
// @Tags         management
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.SupermarketResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/supermarket [get]
func (h *ManagementHandler) GetSupermarket(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return noCompany(c)
	}
	out, err := h.markets.GetByID(c.Context(), companyID)
	if err != nil {
		return writeError(c, h.log, err)
	}
	if out == nil {
		return notFound(c, "supermercado")
	}
	return c.JSON(out)
}

// ListUsers godoc
// @Summary      Usuarios del supermercado
// @Tags         management
// @Security     Bearer
// @Produce      json
// @Param        limit   query  int  false  "Límite"  default(20)
// @Param        offset  query  int  false  "Offset"  default(0)
// @Success      200  {object}  dto.UserListResponse
// @Router       /api/users [get]
func (h *ManagementHandler) ListUsers(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return noCompany(c)
	}
	page := pageFrom(c)
	out, err := h.users.List(c.Context(), companyID, page.Limit, page.Offset)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}

// GetUser godoc
// @Summary      Usuario del supermercado por ID
// @Tags         management
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del usuario"
// @Success      200  {object}  dto.UserResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/users/{id} [get]
func (h *ManagementHandler) GetUser(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return noCompany(c)
	}
	out, err := h.users.GetByID(c.Context(), companyID, c.Params("id"))
	if err != nil {
		return writeError(c, h.log, err)
	}
	if out == nil {
		return notFound(c, "usuario")
	}
	return c.JSON(out)
}

// InviteUser godoc
// @Summary      Invitar usuario
// @Description  Crea el usuario no confirmado y le envía un enlace de acceso.
// @Tags         management
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.InviteUserRequest  true  "email, nombre y rol"
// @Success      201   {object}  dto.UserResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/users [post]
func (h *ManagementHandler) InviteUser(c *fiber.Ctx) error {
	if GetCompanyID(c) == "" {
		return noCompany(c)
	}
	var in dto.InviteUserRequest
	if err := bindJSON(c, h.validate, &in); err != nil {
		return writeError(c, h.log, err)
	}
	out, err := h.users.Invite(c.Context(), actorFrom(c), in)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// UpdateUserRole godoc
// @Summary      Cambiar rol de un usuario
// @Tags         management
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                 true  "ID del usuario"
// @Param        body  body  dto.UpdateRoleRequest  true  "Nuevo rol"
// @Success      200   {object}  dto.UserResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/users/{id}/role [patch]
func (h *ManagementHandler) UpdateUserRole(c *fiber.Ctx) error {
	if GetCompanyID(c) == "" {
		return noCompany(c)
	}
	var in dto.UpdateRoleRequest
	if err := bindJSON(c, h.validate, &in); err != nil {
		return writeError(c, h.log, err)
	}
	out, err := h.users.UpdateRole(c.Context(), actorFrom(c), c.Params("id"), in)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}

// GetSubscription godoc
// @Summary      Suscripción del supermercado
// @Tags         management
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.SubscriptionResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/subscription [get]
func (h *ManagementHandler) GetSubscription(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return noCompany(c)
	}
	out, err := h.subs.Get(c.Context(), companyID)
	if err != nil {
		return writeError(c, h.log, err)
	}
	if out == nil {
		return notFound(c, "suscripción")
	}
	return c.JSON(out)
}

// ListSupermarkets godoc
// @Summary      Listar todos los supermercados
// @Tags         admin
// @Security     Bearer
// @Produce      json
// @Param        limit   query  int  false  "Límite"  default(20)
// @Param        offset  query  int  false  "Offset"  default(0)
// @Success      200  {object}  dto.SupermarketListResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/admin/supermarkets [get]
func (h *ManagementHandler) ListSupermarkets(c *fiber.Ctx) error {
	page := pageFrom(c)
	out, err := h.markets.List(c.Context(), page.Limit, page.Offset)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}
