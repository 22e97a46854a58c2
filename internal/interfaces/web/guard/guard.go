// Package guard decide, por navegación, si el borde web sirve la página,
// redirige al login o redirige a la página de acceso denegado.
package guard

import (
	"net/url"
	pathpkg "path"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Supermercado-api/internal/domain/entity"
	"github.com/jhoicas/Supermercado-api/pkg/jwt"
	"github.com/jhoicas/Supermercado-api/pkg/logger"
)

// Rutas del frontend usadas en las redirecciones.
const (
	LoginPath     = "/login"
	ForbiddenPath = "/forbidden"
)

var publicPaths = map[string]struct{}{
	"/":              {},
	LoginPath:        {},
	"/register":      {},
	"/auth/callback": {},
	ForbiddenPath:    {},
	"/logout":        {},
}

var publicPrefixes = []string{"/assets/", "/favicon.ico"}

// Action resultado de la evaluación.
type Action int

const (
	Allow Action = iota
	RedirectLogin
	RedirectForbidden
)

func (a Action) String() string {
	switch a {
	case Allow:
		return "allow"
	case RedirectLogin:
		return "redirect_login"
	case RedirectForbidden:
		return "redirect_forbidden"
	default:
		return "unknown"
	}
}

// Decision acción a tomar y, si redirige, a dónde. ClearCookie indica token inválido o ausente.
type Decision struct {
	Action      Action
	Location    string
	ClearCookie bool
	Reason      error
}

// TokenVerifier valida el access token; lo implementa *jwt.Issuer.
type TokenVerifier interface {
	Verify(token string) (*jwt.Claims, error)
}

// Guard evalúa cada navegación contra la tabla rol -> prefijos de entity.
type Guard struct {
	verifier TokenVerifier
	log      *logger.Logger
}

// New construye el guard.
func New(verifier TokenVerifier, log *logger.Logger) *Guard {
	if log == nil {
		log = logger.Nop()
	}
	return &Guard{verifier: verifier, log: log.Named("route_guard")}
}

// IsPublic informa si la ruta se sirve sin token.
func IsPublic(p string) bool {
	if _, ok := publicPaths[p]; ok {
		return true
	}
	for _, prefix := range publicPrefixes {
		if strings.HasPrefix(p, prefix) {
			return true
		}
	}
	return false
}

// IsSecured informa si la ruta pertenece a alguna área protegida.
func IsSecured(p string) bool {
	for _, prefix := range entity.SecuredPrefixes() {
		if entity.HasPathPrefix(p, prefix) {
			return true
		}
	}
	return false
}

// Evaluate decide sobre la ruta solicitada y el token (vacío si no hay cookie). Es una función pura
// salvo por la verificación del token.
func (g *Guard) Evaluate(rawPath, token string) Decision {
	p, ok := cleanPath(rawPath)
	if !ok {
		return Decision{Action: RedirectForbidden, Location: ForbiddenPath, Reason: errAmbiguousPath}
	}
	if IsPublic(p) || !IsSecured(p) {
		return Decision{Action: Allow}
	}
	if token == "" {
		return Decision{Action: RedirectLogin, Location: loginLocation(p), ClearCookie: true, Reason: errMissingToken}
	}
	claims, err := g.verifier.Verify(token)
	if err != nil {
		return Decision{Action: RedirectLogin, Location: loginLocation(p), ClearCookie: true, Reason: err}
	}
	if claims.GlobalAdmin {
		return Decision{Action: Allow}
	}
	for _, prefix := range entity.PrefixesFor(entity.Role(claims.Role)) {
		if entity.HasPathPrefix(p, prefix) {
			return Decision{Action: Allow}
		}
	}
	return Decision{Action: RedirectForbidden, Location: ForbiddenPath}
}

// Middleware aplica Evaluate a cada petición GET/HEAD; los demás métodos pasan sin evaluar.
func (g *Guard) Middleware(secureCookie bool) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if c.Method() != fiber.MethodGet && c.Method() != fiber.MethodHead {
			return c.Next()
		}
		d := g.Evaluate(c.Path(), c.Cookies(jwt.CookieName))
		switch d.Action {
		case Allow:
			return c.Next()
		case RedirectLogin:
			if d.Reason != errMissingToken {
				g.log.Warn().Err(d.Reason).Str("path", c.Path()).Msg("token rechazado por el guard")
			}
		case RedirectForbidden:
			if d.Reason == errAmbiguousPath {
				g.log.Warn().Str("path", c.Path()).Msg("path con codificación ambigua")
				break
			}
			g.log.Debug().Str("path", c.Path()).Msg("ruta fuera de las áreas del rol")
		}
		if d.ClearCookie && c.Cookies(jwt.CookieName) != "" {
			ClearSessionCookie(c, secureCookie)
		}
		return c.Redirect(d.Location, fiber.StatusFound)
	}
}

// cleanPath decodifica el path una sola vez y resuelve "." y ".." para que "/%66inanceiro" y
// "/sales/../financeiro" se evalúen como "/financeiro". ok=false si el path es ambiguo:
// escape inválido, "/" codificada, barra invertida o un "%" que sobrevive a la decodificación.
func cleanPath(raw string) (string, bool) {
	if strings.Contains(strings.ToLower(raw), "%2f") {
		return "", false
	}
	p, err := url.PathUnescape(raw)
	if err != nil || strings.ContainsAny(p, "%\\") {
		return "", false
	}
	if p == "" {
		return "/", true
	}
	if !strings.HasPrefix(p, "/") {
		p = "/" + p
	}
	cleaned := pathpkg.Clean(p)
	if strings.HasSuffix(p, "/") && cleaned != "/" {
		cleaned += "/"
	}
	return cleaned, true
}

var queryUnsafe = strings.NewReplacer("&", "%26", "+", "%2B", "=", "%3D")

func loginLocation(p string) string {
	escaped := (&url.URL{Path: p}).EscapedPath()
	return LoginPath + "?redirect=" + queryUnsafe.Replace(escaped)
}
