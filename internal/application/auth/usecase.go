package auth

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/Supermercado-api/internal/application/dto"
	"github.com/jhoicas/Supermercado-api/internal/domain"
	"github.com/jhoicas/Supermercado-api/internal/domain/entity"
	"github.com/jhoicas/Supermercado-api/internal/domain/repository"
	"github.com/jhoicas/Supermercado-api/pkg/jwt"
	"github.com/jhoicas/Supermercado-api/pkg/logger"
	"github.com/jhoicas/Supermercado-api/pkg/normalize"
)

// Config parámetros del flujo de autenticación.
type Config struct {
	BackendURL string        // base del enlace enviado por correo
	LinkTTL    time.Duration // vigencia del magic link
	TrialDays  int           // suscripción de prueba creada en el registro
}

// Deps dependencias del caso de uso.
type Deps struct {
	Users    repository.UserRepository
	Markets  repository.SupermarketRepository
	Links    repository.MagicLinkRepository
	Tx       TxRunner
	Tokens   TokenIssuer
	Mailer   Mailer
	Throttle Throttle // opcional
	Log      *logger.Logger
}

// Option ajusta el caso de uso (reloj y generador de tokens en tests).
type Option func(*AuthUseCase)

// WithClock reemplaza time.Now.
func WithClock(now func() time.Time) Option {
	return func(uc *AuthUseCase) { uc.now = now }
}

// WithTokenSource reemplaza el generador aleatorio de tokens.
func WithTokenSource(gen func() (string, error)) Option {
	return func(uc *AuthUseCase) { uc.newToken = gen }
}

// AuthUseCase casos de uso de autenticación: registro de tenant y login por magic link.
type AuthUseCase struct {
	users    repository.UserRepository
	markets  repository.SupermarketRepository
	links    repository.MagicLinkRepository
	tx       TxRunner
	tokens   TokenIssuer
	mailer   Mailer
	throttle Throttle
	log      *logger.Logger
	cfg      Config
	now      func() time.Time
	newToken func() (string, error)
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(deps Deps, cfg Config, opts ...Option) *AuthUseCase {
	log := deps.Log
	if log == nil {
		log = logger.Nop()
	}
	uc := &AuthUseCase{
		users:    deps.Users,
		markets:  deps.Markets,
		links:    deps.Links,
		tx:       deps.Tx,
		tokens:   deps.Tokens,
		mailer:   deps.Mailer,
		throttle: deps.Throttle,
		log:      log.Named("auth"),
		cfg:      cfg,
		now:      time.Now,
		newToken: randomToken,
	}
	for _, opt := range opts {
		opt(uc)
	}
	return uc
}

// Register crea el supermercado y su primer administrador (no confirmado) en una sola transacción.
// Los duplicados se devuelven como *domain.RegistrationError (errors.Is ErrRegistrationFailed).
func (uc *AuthUseCase) Register(ctx context.Context, in dto.RegisterRequest) error {
	taxID := normalize.TaxID(in.TaxID)
	email := normalize.Email(in.AdminEmail)
	if taxID == "" || email == "" {
		return domain.ErrValidation
	}

	// Pre-chequeos rápidos; la autoridad son los índices únicos de la base.
	if existing, err := uc.markets.GetByTaxID(ctx, taxID); err != nil {
		return fmt.Errorf("registro: buscar documento: %w", err)
	} else if existing != nil {
		return registrationFailed(domain.ErrDuplicateTaxID)
	}
	if existing, err := uc.users.GetByEmail(ctx, email); err != nil {
		return fmt.Errorf("registro: buscar email: %w", err)
	} else if existing != nil {
		return registrationFailed(domain.ErrDuplicateEmail)
	}

	now := uc.now()
	market := &entity.Supermarket{
		ID:        uuid.New().String(),
		Name:      in.Name,
		LegalName: in.LegalName,
		TaxID:     taxID,
		Email:     email,
		Phone:     in.Phone,
		Address:   in.Address,
		Status:    entity.SupermarketActive,
		CreatedAt: now,
		UpdatedAt: now,
	}
	admin := &entity.User{
		ID:            uuid.New().String(),
		CompanyID:     market.ID,
		Email:         email,
		Name:          in.AdminName,
		Role:          entity.RoleAdministrator,
		IsGlobalAdmin: false,
		Confirmed:     false,
		Status:        entity.UserActive,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	sub := &entity.Subscription{
		ID:        uuid.New().String(),
		CompanyID: market.ID,
		Plan:      entity.PlanTrial,
		Status:    entity.SubscriptionTrial,
		StartsAt:  now,
		ExpiresAt: now.AddDate(0, 0, uc.cfg.TrialDays),
		CreatedAt: now,
		UpdatedAt: now,
	}

	err := uc.tx.RunRegistration(ctx, func(markets repository.SupermarketRepository, users repository.UserRepository, subs repository.SubscriptionRepository) error {
		if err := markets.Create(ctx, market); err != nil {
			return err
		}
		if err := users.Create(ctx, admin); err != nil {
			return err
		}
		return subs.Create(ctx, sub)
	})
	if err != nil {
		if errors.Is(err, domain.ErrDuplicateTaxID) || errors.Is(err, domain.ErrDuplicateEmail) {
			return registrationFailed(err)
		}
		return fmt.Errorf("registro: %w", err)
	}

	uc.log.Info().Str("company_id", market.ID).Str("user_id", admin.ID).Msg("supermercado registrado")
	return nil
}

func registrationFailed(cause error) error {
	reason := "no fue posible completar el registro"
	switch {
	case errors.Is(cause, domain.ErrDuplicateTaxID):
		reason = "ya existe un supermercado con ese documento fiscal"
	case errors.Is(cause, domain.ErrDuplicateEmail):
		reason = "ya existe un usuario con ese email"
	}
	return &domain.RegistrationError{Reason: reason, Cause: cause}
}

// RequestLink genera un magic link para el email y lo envía por correo.
// Devuelve nil tanto si el usuario existe como si no (no se revela la existencia de cuentas);
// solo los errores de validación o de infraestructura llegan al caller.
func (uc *AuthUseCase) RequestLink(ctx context.Context, rawEmail string) error {
	email := normalize.Email(rawEmail)
	if email == "" {
		return domain.ErrValidation
	}

	if uc.throttle != nil {
		allowed, err := uc.throttle.Allow(ctx, email)
		if err != nil {
			uc.log.Warn().Err(err).Msg("throttle de magic link no disponible")
		} else if !allowed {
			uc.log.Warn().Str("email", email).Msg("magic link: límite de solicitudes alcanzado")
			return nil
		}
	}

	user, err := uc.users.GetByEmail(ctx, email)
	if err != nil {
		return fmt.Errorf("magic link: buscar usuario: %w", err)
	}
	if user == nil {
		uc.log.Warn().Str("email", email).Err(domain.ErrUserNotFound).Msg("magic link solicitado para email inexistente")
		return nil
	}
	if user.Status != entity.UserActive {
		uc.log.Warn().Str("user_id", user.ID).Msg("magic link solicitado para usuario inactivo")
		return nil
	}

	token, err := uc.newToken()
	if err != nil {
		return fmt.Errorf("magic link: generar token: %w", err)
	}
	now := uc.now()
	if err := uc.links.DeleteStale(ctx, email, now); err != nil {
		uc.log.Warn().Err(err).Msg("magic link: limpiar tokens vencidos")
	}
	link := &entity.MagicLinkToken{
		ID:        uuid.New().String(),
		Email:     email,
		TokenHash: hashToken(token),
		ExpiresAt: now.Add(uc.cfg.LinkTTL),
		CreatedAt: now,
	}
	if err := uc.links.Create(ctx, link); err != nil {
		return fmt.Errorf("magic link: guardar token: %w", err)
	}

	body, err := renderMagicLink(magicLinkMail{
		Name:    user.Name,
		URL:     magicLinkURL(uc.cfg.BackendURL, email, token),
		Minutes: int(uc.cfg.LinkTTL / time.Minute),
	})
	if err != nil {
		return fmt.Errorf("magic link: plantilla: %w", err)
	}
	// Un fallo de envío no revierte el enlace emitido: se registra y se responde éxito degradado.
	if err := uc.mailer.Send(ctx, email, magicLinkSubject, body); err != nil {
		uc.log.Warn().Err(err).Str("user_id", user.ID).Msg("magic link emitido pero el correo no pudo enviarse")
		return nil
	}
	uc.log.Info().Str("user_id", user.ID).Msg("magic link enviado")
	return nil
}

// Exchange consume el token (una sola vez) y devuelve un access token con los claims actuales.
// Confirma al usuario en su primer login. Todo ocurre en una transacción: si falla la carga del
// usuario, la confirmación o la emisión, el consumo se revierte y el enlace sigue siendo válido.
func (uc *AuthUseCase) Exchange(ctx context.Context, rawEmail, token string) (string, error) {
	email := normalize.Email(rawEmail)
	if email == "" || token == "" {
		return "", domain.ErrInvalidOrExpiredToken
	}

	var access string
	err := uc.tx.RunLogin(ctx, func(links repository.MagicLinkRepository, users repository.UserRepository) error {
		consumed, err := links.Consume(ctx, email, hashToken(token), uc.now())
		if err != nil {
			return fmt.Errorf("magic link: consumir token: %w", err)
		}
		if !consumed {
			return domain.ErrInvalidOrExpiredToken
		}

		user, err := users.GetByEmail(ctx, email)
		if err != nil {
			return fmt.Errorf("magic link: cargar usuario: %w", err)
		}
		if user == nil || user.Status != entity.UserActive {
			return domain.ErrInvalidOrExpiredToken
		}

		if !user.Confirmed {
			if _, err := users.MarkConfirmed(ctx, user.ID); err != nil {
				return fmt.Errorf("magic link: confirmar usuario: %w", err)
			}
			uc.log.Info().Str("user_id", user.ID).Msg("usuario confirmado por primer login")
		}

		access, err = uc.tokens.Issue(jwt.Identity{
			UserID:      user.ID,
			Email:       user.Email,
			Role:        string(user.Role),
			GlobalAdmin: user.IsGlobalAdmin,
			CompanyID:   user.CompanyID,
		})
		if err != nil {
			return fmt.Errorf("magic link: emitir access token: %w", err)
		}
		return nil
	})
	if err != nil {
		return "", err
	}
	return access, nil
}

// PurgeExpired elimina tokens vencidos o usados; lo invoca el janitor del proceso.
func (uc *AuthUseCase) PurgeExpired(ctx context.Context) (int64, error) {
	return uc.links.PurgeExpired(ctx, uc.now())
}

func hashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}

func randomToken() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}
