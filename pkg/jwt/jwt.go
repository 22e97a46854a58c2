package jwt

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// CookieName cookie donde el borde web guarda el access token.
const CookieName = "jwt_token"

// Errores de verificación. Nunca se exponen tal cual al cliente; sirven para el log.
var (
	ErrInvalidToken     = errors.New("jwt: token inválido")
	ErrExpired          = errors.New("jwt: token expirado")
	ErrIssuerMismatch   = errors.New("jwt: issuer no coincide")
	ErrAudienceMismatch = errors.New("jwt: audience no coincide")
)

// Claims incluye los claims estándar JWT más los campos propios de la aplicación.
// Role y GlobalAdmin permiten que el guard y el RBAC decidan sin consultar la DB.
type Claims struct {
	jwt.RegisteredClaims
	Email       string `json:"email"`
	Role        string `json:"role"`
	GlobalAdmin bool   `json:"global_admin"`
	CompanyID   string `json:"company_id,omitempty"`
}

// UserID devuelve el subject del token.
func (c *Claims) UserID() string { return c.Subject }

// Identity datos del usuario que se firman en el token.
type Identity struct {
	UserID      string
	Email       string
	Role        string
	GlobalAdmin bool
	CompanyID   string
}

// Config parámetros del emisor; la clave simétrica solo la conoce el backend (y el borde web para verificar).
type Config struct {
	Secret   string
	Issuer   string
	Audience string
	TTL      time.Duration
}

// Issuer firma y verifica access tokens (HS256). No guarda estado: es función pura de clave + claims.
type Issuer struct {
	cfg    Config
	parser *jwt.Parser
}

// NewIssuer construye el emisor. Falla si falta la clave, el issuer o el audience.
func NewIssuer(cfg Config) (*Issuer, error) {
	if cfg.Secret == "" {
		return nil, fmt.Errorf("jwt: secret vacío")
	}
	if cfg.Issuer == "" || cfg.Audience == "" {
		return nil, fmt.Errorf("jwt: issuer y audience son obligatorios")
	}
	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(cfg.Issuer),
		jwt.WithAudience(cfg.Audience),
		jwt.WithExpirationRequired(),
		jwt.WithLeeway(0),
	)
	return &Issuer{cfg: cfg, parser: parser}, nil
}

// Issue genera un token firmado con los claims de la identidad.
func (i *Issuer) Issue(id Identity) (string, error) {
	now := time.Now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    i.cfg.Issuer,
			Audience:  jwt.ClaimStrings{i.cfg.Audience},
			Subject:   id.UserID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(i.cfg.TTL)),
		},
		Email:       id.Email,
		Role:        id.Role,
		GlobalAdmin: id.GlobalAdmin,
		CompanyID:   id.CompanyID,
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(i.cfg.Secret))
	if err != nil {
		return "", fmt.Errorf("jwt: firmar token: %w", err)
	}
	return signed, nil
}

// Verify valida firma, estructura, issuer, audience y expiración (sin tolerancia de reloj).
func (i *Issuer) Verify(tokenString string) (*Claims, error) {
	token, err := i.parser.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("método de firma inesperado: %v", t.Header["alg"])
		}
		return []byte(i.cfg.Secret), nil
	})
	if err != nil {
		return nil, classify(err)
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

func classify(err error) error {
	switch {
	case errors.Is(err, jwt.ErrTokenSignatureInvalid),
		errors.Is(err, jwt.ErrTokenMalformed),
		errors.Is(err, jwt.ErrTokenUnverifiable):
		return fmt.Errorf("%w: %v", ErrInvalidToken, err)
	case errors.Is(err, jwt.ErrTokenExpired):
		return ErrExpired
	case errors.Is(err, jwt.ErrTokenInvalidIssuer):
		return ErrIssuerMismatch
	case errors.Is(err, jwt.ErrTokenInvalidAudience):
		return ErrAudienceMismatch
	default:
		return fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
}
