// Package web es el borde del frontend: entrega la cookie de sesión tras el magic link,
// aplica el route guard y sirve el build estático del dashboard.
package web

import (
	"path/filepath"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/jhoicas/Supermercado-api/internal/interfaces/web/guard"
	"github.com/jhoicas/Supermercado-api/pkg/logger"
)

// Config opciones del borde web.
type Config struct {
	AppName      string
	StaticDir    string // build del frontend; debe contener index.html
	CookieSecure bool
}

// NewApp construye la aplicación Fiber del borde web.
func NewApp(cfg Config, verifier guard.TokenVerifier, log *logger.Logger) *fiber.App {
	if log == nil {
		log = logger.Nop()
	}
	log = log.Named("web")
	app := fiber.New(fiber.Config{AppName: cfg.AppName})
	app.Use(recover.New())

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.AppName})
	})

	// El backend redirige aquí con ?jwt=... tras consumir el magic link.
	app.Get("/auth/callback", func(c *fiber.Ctx) error {
		token := strings.TrimSpace(c.Query("jwt"))
		if token == "" {
			return c.Redirect(guard.LoginPath+"?error=auth_failed", fiber.StatusFound)
		}
		if _, err := verifier.Verify(token); err != nil {
			log.Warn().Err(err).Msg("callback con token inválido")
			return c.Redirect(guard.LoginPath+"?error=auth_failed", fiber.StatusFound)
		}
		guard.SetSessionCookie(c, token, cfg.CookieSecure)
		return c.Redirect("/", fiber.StatusFound)
	})

	app.Get("/logout", func(c *fiber.Ctx) error {
		guard.ClearSessionCookie(c, cfg.CookieSecure)
		return c.Redirect(guard.LoginPath, fiber.StatusFound)
	})

	app.Use(guard.New(verifier, log).Middleware(cfg.CookieSecure))

	app.Static("/", cfg.StaticDir, fiber.Static{Index: "index.html"})

	// SPA: cualquier ruta sin archivo estático recibe index.html y el router del cliente decide.
	index := filepath.Join(cfg.StaticDir, "index.html")
	app.Use(func(c *fiber.Ctx) error {
		if c.Method() != fiber.MethodGet && c.Method() != fiber.MethodHead {
			return fiber.ErrNotFound
		}
		if strings.HasPrefix(c.Path(), "/assets/") {
			return fiber.ErrNotFound
		}
		return c.SendFile(index)
	})
	return app
}
