package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jhoicas/Supermercado-api/internal/interfaces/web"
	"github.com/jhoicas/Supermercado-api/pkg/config"
	"github.com/jhoicas/Supermercado-api/pkg/jwt"
	"github.com/jhoicas/Supermercado-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:     cfg.App.Env,
		Level:   cfg.App.LogLevel,
		Service: "web",
	})
	if err := cfg.ValidateWeb(); err != nil {
		log.Fatal().Err(err).Msg("configuración incompleta")
	}

	// El borde web solo verifica: comparte secreto, issuer y audience con el API.
	verifier, err := jwt.NewIssuer(jwt.Config{
		Secret:   cfg.JWT.Secret,
		Issuer:   cfg.JWT.Issuer,
		Audience: cfg.JWT.Audience,
		TTL:      time.Duration(cfg.JWT.Expiration) * time.Minute,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("verificador JWT")
	}

	app := web.NewApp(web.Config{
		AppName:      cfg.App.Name + "-web",
		StaticDir:    cfg.Web.StaticDir,
		CookieSecure: cfg.Web.CookieSecure,
	}, verifier, log)

	log.Info().Str("addr", cfg.Web.Addr()).Str("static_dir", cfg.Web.StaticDir).Msg("iniciando borde web")

	go func() {
		if err := app.Listen(cfg.Web.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor web finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor web")
	}
	log.Info().Msg("borde web detenido")
}
