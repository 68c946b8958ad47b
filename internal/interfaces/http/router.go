package http

import (
	"github.com/gofiber/fiber/v2"

	appanalytics "github.com/jhoicas/cantina-api/internal/application/analytics"
	"github.com/jhoicas/cantina-api/internal/application/auth"
	"github.com/jhoicas/cantina-api/internal/application/inventory"
	"github.com/jhoicas/cantina-api/internal/application/usecase"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC           *auth.AuthUseCase
	ProductUC        *usecase.ProductUseCase
	RegisterMovement *inventory.RegisterMovementUseCase
	Overview         *inventory.OverviewUseCase
	DashboardUC      *appanalytics.DashboardUseCase
	JWTSecret        string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público). El logout es descartar el token en el cliente.
	authHandler := NewAuthHandler(deps.AuthUC)
	api.Post("/auth/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	dashboardHandler := NewDashboardHandler(deps.DashboardUC)
	protected.Get("/dashboard", dashboardHandler.GetSummary)

	products := protected.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC)
	products.Get("/", productHandler.List)
	products.Post("/", productHandler.Create)
	products.Put("/:id", productHandler.Update)
	products.Delete("/:id", productHandler.Delete)

	invGroup := protected.Group("/inventory")
	inventoryHandler := NewInventoryHandler(deps.RegisterMovement, deps.Overview)
	invGroup.Get("/", inventoryHandler.Overview)
	invGroup.Post("/movements", inventoryHandler.RegisterMovement)
}
