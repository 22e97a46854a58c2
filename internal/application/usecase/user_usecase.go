package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/Supermercado-api/internal/application/dto"
	"github.com/jhoicas/Supermercado-api/internal/domain"
	"github.com/jhoicas/Supermercado-api/internal/domain/entity"
	"github.com/jhoicas/Supermercado-api/internal/domain/repository"
	"github.com/jhoicas/Supermercado-api/pkg/logger"
	"github.com/jhoicas/Supermercado-api/pkg/normalize"
)

// Actor quien ejecuta la operación, tomado de los claims del token.
type Actor struct {
	UserID      string
	CompanyID   string
	Role        entity.Role
	GlobalAdmin bool
}

func errUnknownRole(r entity.Role) error {
	valid := make([]string, 0, len(entity.Roles))
	for _, known := range entity.Roles {
		valid = append(valid, string(known))
	}
	return fmt.Errorf("%w: rol desconocido %q (válidos: %s)", domain.ErrValidation, r, strings.Join(valid, ", "))
}

// canGrant informa si el actor puede asignar el rol: Administrator solo lo otorga otro administrador.
func (a Actor) canGrant(role entity.Role) bool {
	if role == entity.RoleAdministrator {
		return a.GlobalAdmin || a.Role == entity.RoleAdministrator
	}
	return true
}

// LinkSender envía un magic link (lo implementa *auth.AuthUseCase).
type LinkSender interface {
	RequestLink(ctx context.Context, email string) error
}

// UserUseCase gestión de usuarios dentro de un supermercado.
type UserUseCase struct {
	repo  repository.UserRepository
	links LinkSender
	log   *logger.Logger
}

// NewUserUseCase construye el caso de uso con el puerto de persistencia.
func NewUserUseCase(repo repository.UserRepository, links LinkSender, log *logger.Logger) *UserUseCase {
	if log == nil {
		log = logger.Nop()
	}
	return &UserUseCase{repo: repo, links: links, log: log.Named("users")}
}

// GetByID obtiene un usuario del supermercado; (nil, nil) si no existe o es de otro tenant.
func (uc *UserUseCase) GetByID(ctx context.Context, companyID, id string) (*dto.UserResponse, error) {
	user, err := uc.repo.GetByID(ctx, id)
	if err != nil || user == nil || user.CompanyID != companyID {
		return nil, err
	}
	return toUserResponse(user), nil
}

// List lista los usuarios del supermercado del actor.
func (uc *UserUseCase) List(ctx context.Context, companyID string, limit, offset int) (*dto.UserListResponse, error) {
	list, err := uc.repo.ListByCompany(ctx, companyID, limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.UserResponse, 0, len(list))
	for _, u := range list {
		items = append(items, *toUserResponse(u))
	}
	return &dto.UserListResponse{Items: items, Page: dto.PageResponse{Limit: limit, Offset: offset}}, nil
}

// Invite crea un usuario no confirmado en el supermercado del actor y le envía un magic link.
// Un fallo del envío no revierte el alta: el usuario puede pedir otro enlace desde el login.
func (uc *UserUseCase) Invite(ctx context.Context, actor Actor, in dto.InviteUserRequest) (*dto.UserResponse, error) {
	role := entity.Role(in.Role)
	if !role.Valid() {
		return nil, errUnknownRole(role)
	}
	if !actor.canGrant(role) {
		return nil, domain.ErrForbidden
	}
	if actor.CompanyID == "" {
		return nil, fmt.Errorf("%w: el actor no pertenece a un supermercado", domain.ErrValidation)
	}
	email := normalize.Email(in.Email)
	existing, err := uc.repo.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicateEmail
	}

	now := time.Now()
	user := &entity.User{
		ID:        uuid.New().String(),
		CompanyID: actor.CompanyID,
		Email:     email,
		Name:      strings.TrimSpace(in.Name),
		Role:      role,
		Status:    entity.UserActive,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.repo.Create(ctx, user); err != nil {
		return nil, err
	}
	if uc.links != nil {
		if err := uc.links.RequestLink(ctx, email); err != nil {
			uc.log.Warn().Err(err).Str("user_id", user.ID).Msg("usuario invitado sin enlace de acceso")
		}
	}
	uc.log.Info().Str("company_id", actor.CompanyID).Str("user_id", user.ID).Str("role", in.Role).Msg("usuario invitado")
	return toUserResponse(user), nil
}

// UpdateRole cambia el rol de un usuario del mismo supermercado. Nadie cambia su propio rol.
func (uc *UserUseCase) UpdateRole(ctx context.Context, actor Actor, userID string, in dto.UpdateRoleRequest) (*dto.UserResponse, error) {
	role := entity.Role(in.Role)
	if !role.Valid() {
		return nil, errUnknownRole(role)
	}
	if !actor.canGrant(role) || actor.UserID == userID {
		return nil, domain.ErrForbidden
	}
	target, err := uc.repo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if target == nil || target.CompanyID != actor.CompanyID {
		return nil, domain.ErrUserNotFound
	}
	// Quitar el rol de administrador también es exclusivo de administradores.
	if target.Role == entity.RoleAdministrator && !actor.canGrant(entity.RoleAdministrator) {
		return nil, domain.ErrForbidden
	}
	if err := uc.repo.UpdateRole(ctx, userID, actor.CompanyID, role); err != nil {
		return nil, err
	}
	target.Role = role
	uc.log.Info().Str("user_id", userID).Str("role", in.Role).Str("by", actor.UserID).Msg("rol actualizado")
	return toUserResponse(target), nil
}

func toUserResponse(u *entity.User) *dto.UserResponse {
	return &dto.UserResponse{
		ID:          u.ID,
		CompanyID:   u.CompanyID,
		Email:       u.Email,
		Name:        u.Name,
		Role:        string(u.Role),
		GlobalAdmin: u.IsGlobalAdmin,
		Confirmed:   u.Confirmed,
		Status:      u.Status,
		CreatedAt:   u.CreatedAt,
		UpdatedAt:   u.UpdatedAt,
	}
}
