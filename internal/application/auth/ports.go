package auth

import (
	"context"

	"github.com/jhoicas/Supermercado-api/internal/domain/repository"
	"github.com/jhoicas/Supermercado-api/pkg/jwt"
)

// RegistrationTxRunner ejecuta fn dentro de una transacción con repos atados a ella:
// o persisten supermercado, administrador y suscripción, o no persiste ninguno.
type RegistrationTxRunner interface {
	RunRegistration(ctx context.Context, fn func(
		markets repository.SupermarketRepository,
		users repository.UserRepository,
		subs repository.SubscriptionRepository,
	) error) error
}

// LoginTxRunner ejecuta fn en una transacción: consumir el token, confirmar al usuario y emitir
// el access token se confirman juntos o el enlace sigue disponible.
type LoginTxRunner interface {
	RunLogin(ctx context.Context, fn func(
		links repository.MagicLinkRepository,
		users repository.UserRepository,
	) error) error
}

// TxRunner agrupa las transacciones del flujo de auth (lo implementa *postgres.TxRunner).
type TxRunner interface {
	RegistrationTxRunner
	LoginTxRunner
}

// TokenIssuer emite access tokens (lo implementa *jwt.Issuer).
type TokenIssuer interface {
	Issue(id jwt.Identity) (string, error)
}

// Mailer envía correos; el envío real es un colaborador externo.
type Mailer interface {
	Send(ctx context.Context, to, subject, body string) error
}

// Throttle limita solicitudes de enlace por clave (email). Allow=false => no se envía nada.
type Throttle interface {
	Allow(ctx context.Context, key string) (bool, error)
}
