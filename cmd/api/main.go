package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"

	_ "github.com/jhoicas/Supermercado-api/docs"
	"github.com/jhoicas/Supermercado-api/internal/application/auth"
	"github.com/jhoicas/Supermercado-api/internal/application/sales"
	"github.com/jhoicas/Supermercado-api/internal/application/usecase"
	"github.com/jhoicas/Supermercado-api/internal/infrastructure/mail"
	infrapdf "github.com/jhoicas/Supermercado-api/internal/infrastructure/pdf"
	"github.com/jhoicas/Supermercado-api/internal/infrastructure/postgres"
	infraredis "github.com/jhoicas/Supermercado-api/internal/infrastructure/redis"
	httpRouter "github.com/jhoicas/Supermercado-api/internal/interfaces/http"
	"github.com/jhoicas/Supermercado-api/pkg/config"
	"github.com/jhoicas/Supermercado-api/pkg/jwt"
	"github.com/jhoicas/Supermercado-api/pkg/logger"
	"github.com/jhoicas/Supermercado-api/pkg/validator"
)

// janitorInterval cada cuánto se eliminan magic links vencidos o usados.
const janitorInterval = 10 * time.Minute

// @title           Supermercado API
// @version         1.0
// @description     Plataforma multi-tenant para supermercados: registro, login por magic link y operación diaria.
// @BasePath        /
// @securityDefinitions.apikey Bearer
// @in header
// @name Authorization
func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:     cfg.App.Env,
		Level:   cfg.App.LogLevel,
		Service: "api",
	})
	if err := cfg.ValidateAPI(); err != nil {
		log.Fatal().Err(err).Msg("configuración incompleta")
	}
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando API")

	ctx, stop := context.WithCancel(context.Background())
	defer stop()

	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	issuer, err := jwt.NewIssuer(jwt.Config{
		Secret:   cfg.JWT.Secret,
		Issuer:   cfg.JWT.Issuer,
		Audience: cfg.JWT.Audience,
		TTL:      time.Duration(cfg.JWT.Expiration) * time.Minute,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("emisor JWT")
	}

	// Throttle por email: opcional, solo si hay Redis configurado.
	var throttle auth.Throttle
	if cfg.Redis.URL != "" {
		rdb, err := infraredis.NewClient(ctx, cfg.Redis.URL)
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a Redis")
		}
		defer rdb.Close()
		throttle = infraredis.NewThrottle(rdb, cfg.MagicLink.MaxPerWindow, time.Duration(cfg.MagicLink.WindowMinutes)*time.Minute)
	} else {
		log.Warn().Msg("REDIS_URL vacío: magic link sin límite por email")
	}

	userRepo := postgres.NewUserRepository(pool)
	marketRepo := postgres.NewSupermarketRepository(pool)
	linkRepo := postgres.NewMagicLinkRepository(pool)
	subRepo := postgres.NewSubscriptionRepository(pool)
	productRepo := postgres.NewProductRepository(pool)
	clientRepo := postgres.NewClientRepository(pool)
	supplierRepo := postgres.NewSupplierRepository(pool)
	saleRepo := postgres.NewSaleRepository(pool)
	financialRepo := postgres.NewFinancialRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	authUC := auth.NewAuthUseCase(auth.Deps{
		Users:    userRepo,
		Markets:  marketRepo,
		Links:    linkRepo,
		Tx:       txRunner,
		Tokens:   issuer,
		Mailer:   mail.NewSMTPMailer(cfg.SMTP),
		Throttle: throttle,
		Log:      log,
	}, auth.Config{
		BackendURL: cfg.App.BackendURL,
		LinkTTL:    time.Duration(cfg.MagicLink.TTLMinutes) * time.Minute,
		TrialDays:  cfg.MagicLink.TrialDays,
	})
	salesUC := sales.NewSalesUseCase(sales.Deps{
		Products: productRepo,
		Sales:    saleRepo,
		Clients:  clientRepo,
		Markets:  marketRepo,
		Tx:       txRunner,
		Receipts: infrapdf.NewReceiptGenerator(),
		Log:      log,
	})

	go runJanitor(ctx, authUC, log)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.App.FrontendURL,
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowCredentials: true,
	}))

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Supermercado API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:          authUC,
		Verifier:        issuer,
		ProductUC:       usecase.NewProductUseCase(productRepo),
		ClientUC:        usecase.NewClientUseCase(clientRepo),
		SupplierUC:      usecase.NewSupplierUseCase(supplierRepo),
		SalesUC:         salesUC,
		FinancialUC:     usecase.NewFinancialUseCase(financialRepo),
		SupermarketUC:   usecase.NewSupermarketUseCase(marketRepo),
		UserUC:          usecase.NewUserUseCase(userRepo, authUC, log),
		SubscriptionSvc: usecase.NewSubscriptionService(subRepo),
		Validator:       validator.New(),
		FrontendURL:     cfg.App.FrontendURL,
		Log:             log,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")
	stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}

// runJanitor purga periódicamente los magic links vencidos hasta que ctx se cancela.
func runJanitor(ctx context.Context, uc *auth.AuthUseCase, log *logger.Logger) {
	ticker := time.NewTicker(janitorInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			n, err := uc.PurgeExpired(ctx)
			if err != nil {
				log.Warn().Err(err).Msg("janitor: purga de magic links")
				continue
			}
			if n > 0 {
				log.Info().Int64("purged", n).Msg("janitor: magic links eliminados")
			}
		}
	}
}
