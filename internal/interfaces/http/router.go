package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"

	"github.com/jhoicas/Supermercado-api/internal/application/dto"
	"github.com/jhoicas/Supermercado-api/internal/application/sales"
	"github.com/jhoicas/Supermercado-api/internal/application/usecase"
	"github.com/jhoicas/Supermercado-api/internal/domain/entity"
	"github.com/jhoicas/Supermercado-api/pkg/logger"
	"github.com/jhoicas/Supermercado-api/pkg/validator"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC          authService
	Verifier        TokenVerifier
	ProductUC       *usecase.ProductUseCase
	ClientUC        *usecase.ClientUseCase
	SupplierUC      *usecase.SupplierUseCase
	SalesUC         *sales.SalesUseCase
	FinancialUC     *usecase.FinancialUseCase
	SupermarketUC   *usecase.SupermarketUseCase
	UserUC          *usecase.UserUseCase
	SubscriptionSvc *usecase.SubscriptionService
	Validator       *validator.Validator
	FrontendURL     string
	MagicLinkPerIP  int // solicitudes de magic link por IP y minuto; 0 = 10
	Log             *logger.Logger
}

// Router registra las rutas públicas de auth y el API del tenant.
func Router(app *fiber.App, deps RouterDeps) {
	if deps.Validator == nil {
		deps.Validator = validator.New()
	}
	if deps.Log == nil {
		deps.Log = logger.Nop()
	}
	authMW := AuthMiddleware(deps.Verifier, deps.Log)

	// Auth (público salvo /me)
	authGroup := app.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC, deps.Validator, deps.FrontendURL, deps.Log)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/magic-link", magicLinkLimiter(deps.MagicLinkPerIP), authHandler.RequestMagicLink)
	authGroup.Get("/magic-login", authHandler.MagicLogin)
	authGroup.Get("/me", authMW, authHandler.Me)

	// Rutas protegidas (Bearer o cookie jwt_token)
	api := app.Group("/api", authMW)
	activeSub := RequireActiveSubscription(deps.SubscriptionSvc, deps.Log)

	// Cadastros
	productHandler := NewProductHandler(deps.ProductUC, deps.Validator, deps.Log)
	products := api.Group("/products", RequireArea(entity.AreaRegistrations), activeSub)
	products.Post("/", productHandler.Create)
	products.Get("/", productHandler.List)
	products.Get("/:id", productHandler.GetByID)
	products.Put("/:id", productHandler.Update)
	products.Delete("/:id", productHandler.Delete)

	partyHandler := NewPartyHandler(deps.ClientUC, deps.SupplierUC, deps.Validator, deps.Log)
	clients := api.Group("/clients", RequireArea(entity.AreaRegistrations), activeSub)
	clients.Post("/", partyHandler.CreateClient)
	clients.Get("/", partyHandler.ListClients)
	suppliers := api.Group("/suppliers", RequireArea(entity.AreaRegistrations), activeSub)
	suppliers.Post("/", partyHandler.CreateSupplier)
	suppliers.Get("/", partyHandler.ListSuppliers)

	// Vendas
	saleHandler := NewSaleHandler(deps.SalesUC, deps.Validator, deps.Log)
	salesGroup := api.Group("/sales", RequireArea(entity.AreaSales), activeSub)
	salesGroup.Post("/", saleHandler.Create)
	salesGroup.Get("/", saleHandler.List)
	salesGroup.Get("/:id", saleHandler.GetByID)
	salesGroup.Get("/:id/receipt", saleHandler.Receipt)

	// Financeiro
	financialHandler := NewFinancialHandler(deps.FinancialUC, deps.Validator, deps.Log)
	financial := api.Group("/financial", RequireArea(entity.AreaFinancial), activeSub)
	financial.Post("/transactions", financialHandler.Create)
	financial.Get("/transactions", financialHandler.List)

	// Gestão: accesible aun con la suscripción vencida para poder consultarla.
	mgmtHandler := NewManagementHandler(deps.SupermarketUC, deps.UserUC, deps.SubscriptionSvc, deps.Validator, deps.Log)
	api.Get("/supermarket", RequireArea(entity.AreaManagement), mgmtHandler.GetSupermarket)
	api.Get("/subscription", RequireArea(entity.AreaManagement), mgmtHandler.GetSubscription)
	users := api.Group("/users", RequireArea(entity.AreaManagement))
	users.Get("/", mgmtHandler.ListUsers)
	users.Get("/:id", mgmtHandler.GetUser)
	users.Post("/", mgmtHandler.InviteUser)
	users.Patch("/:id/role", mgmtHandler.UpdateUserRole)

	// Administración global
	admin := api.Group("/admin", RequireGlobalAdmin())
	admin.Get("/supermarkets", mgmtHandler.ListSupermarkets)
}

func magicLinkLimiter(max int) fiber.Handler {
	if max <= 0 {
		max = 10
	}
	return limiter.New(limiter.Config{
		Max:        max,
		Expiration: time.Minute,
		KeyGenerator: func(c *fiber.Ctx) string {
			return "magic-link:" + c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusTooManyRequests).JSON(dto.Fail("demasiadas solicitudes, intente más tarde"))
		},
	})
}
