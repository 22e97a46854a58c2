package guard

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Supermercado-api/pkg/jwt"
)

// SessionTTL vigencia de la cookie con el access token.
const SessionTTL = 7 * 24 * time.Hour

var errMissingToken = errors.New("sin token")

var errAmbiguousPath = errors.New("path con codificación ambigua")

// SetSessionCookie guarda el access token en la cookie jwt_token.
func SetSessionCookie(c *fiber.Ctx, token string, secure bool) {
	c.Cookie(&fiber.Cookie{
		Name:     jwt.CookieName,
		Value:    token,
		Path:     "/",
		Expires:  time.Now().Add(SessionTTL),
		MaxAge:   int(SessionTTL / time.Second),
		Secure:   secure,
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteStrictMode,
	})
}

// ClearSessionCookie expira la cookie jwt_token.
func ClearSessionCookie(c *fiber.Ctx, secure bool) {
	c.Cookie(&fiber.Cookie{
		Name:     jwt.CookieName,
		Value:    "",
		Path:     "/",
		Expires:  time.Unix(0, 0),
		MaxAge:   -1,
		Secure:   secure,
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteStrictMode,
	})
}
