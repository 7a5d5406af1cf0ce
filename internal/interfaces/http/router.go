package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/luanmenezes0/lift2/internal/application/auth"
	"github.com/luanmenezes0/lift2/internal/application/delivery"
	"github.com/luanmenezes0/lift2/internal/application/ledger"
	"github.com/luanmenezes0/lift2/internal/application/usecase"
	"github.com/luanmenezes0/lift2/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC         *auth.AuthUseCase
	ClientUC       *usecase.ClientUseCase
	BuildingSiteUC *usecase.BuildingSiteUseCase
	RentableUC     *usecase.RentableUseCase
	DeliveryUC     *delivery.UseCase
	LedgerUC       *ledger.UseCase
	PDFRenderer    ledger.ReportRenderer
	XLSXRenderer   ledger.ReportRenderer
	Clock          Clock
	JWTSecret      string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)
	authGroup.Get("/me", AuthMiddleware(deps.JWTSecret), authHandler.Me)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))
	anyRole := RequireRole(entity.RoleAdmin, entity.RoleOperador)
	adminOnly := RequireRole(entity.RoleAdmin)

	// Clients
	clients := protected.Group("/clients", anyRole)
	clientHandler := NewClientHandler(deps.ClientUC, deps.BuildingSiteUC)
	clients.Post("/", clientHandler.Create)
	clients.Get("/", clientHandler.List)
	clients.Get("/:id", clientHandler.GetByID)
	clients.Put("/:id", clientHandler.Update)
	clients.Delete("/:id", clientHandler.Delete)
	clients.Get("/:id/building-sites", clientHandler.BuildingSites)

	// Building sites, sus entregas y su libro
	sites := protected.Group("/building-sites", anyRole)
	siteHandler := NewBuildingSiteHandler(deps.BuildingSiteUC, deps.LedgerUC, deps.Clock)
	deliveryHandler := NewDeliveryHandler(deps.DeliveryUC, deps.Clock)
	ledgerHandler := NewLedgerHandler(deps.LedgerUC, deps.PDFRenderer, deps.XLSXRenderer, deps.Clock)
	sites.Post("/", siteHandler.Create)
	sites.Get("/", siteHandler.List)
	sites.Get("/:id", siteHandler.GetByID)
	sites.Put("/:id", siteHandler.Update)
	sites.Delete("/:id", siteHandler.Delete)
	sites.Post("/:id/deliveries", deliveryHandler.Register)
	sites.Get("/:id/deliveries", deliveryHandler.List)
	sites.Get("/:id/ledger", ledgerHandler.Get)
	sites.Get("/:id/ledger.pdf", ledgerHandler.PDF)
	sites.Get("/:id/ledger.xlsx", ledgerHandler.XLSX)

	deliveries := protected.Group("/deliveries", anyRole)
	deliveries.Delete("/:id", deliveryHandler.Delete)

	// Rentables: lectura y edición sin precio para todos; alta y baja solo admin.
	rentables := protected.Group("/rentables", anyRole)
	rentableHandler := NewRentableHandler(deps.RentableUC)
	rentables.Get("/", rentableHandler.List)
	rentables.Get("/:id", rentableHandler.GetByID)
	rentables.Put("/:id", rentableHandler.Update)
	rentables.Post("/", adminOnly, rentableHandler.Create)
	rentables.Delete("/:id", adminOnly, rentableHandler.Delete)
}
