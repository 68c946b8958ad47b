package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	appanalytics "github.com/jhoicas/cantina-api/internal/application/analytics"
	"github.com/jhoicas/cantina-api/internal/application/auth"
	"github.com/jhoicas/cantina-api/internal/application/inventory"
	"github.com/jhoicas/cantina-api/internal/application/usecase"
	"github.com/jhoicas/cantina-api/internal/infrastructure/datasource"
	"github.com/jhoicas/cantina-api/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/cantina-api/internal/interfaces/http"
	"github.com/jhoicas/cantina-api/pkg/config"
	"github.com/jhoicas/cantina-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	// Un solo intento contra PostgreSQL; si falla se sirve desde el script en memoria.
	src := datasource.New(datasource.Options{
		Connector: func(ctx context.Context) (datasource.Backend, error) {
			b, err := postgres.Connect(ctx, cfg.DB)
			if err != nil {
				return nil, err
			}
			return b, nil
		},
		ProbeTimeout: cfg.DB.ProbeTimeout,
		SeedPaths:    cfg.Fallback.SeedPaths,
	}, log.Component("datasource"))

	ctx := context.Background()
	src.Init(ctx)
	defer src.Close()

	employeeRepo := postgres.NewEmployeeRepository(src)
	productRepo := postgres.NewProductRepository(src)
	stockRepo := postgres.NewStockRepository(src)
	saleRepo := postgres.NewSaleRepository(src)

	authUC := auth.NewAuthUseCase(employeeRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})
	productUC := usecase.NewProductUseCase(productRepo, stockRepo)
	registerMovementUC := inventory.NewRegisterMovementUseCase(productRepo, stockRepo, saleRepo)
	overviewUC := inventory.NewOverviewUseCase(productRepo, saleRepo)
	dashboardUC := appanalytics.NewDashboardUseCase(productRepo, saleRepo)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Cantina Escolar API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":     "ok",
			"service":    cfg.App.Name,
			"datasource": src.Mode().String(),
		})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:           authUC,
		ProductUC:        productUC,
		RegisterMovement: registerMovementUC,
		Overview:         overviewUC,
		DashboardUC:      dashboardUC,
		JWTSecret:        cfg.JWT.Secret,
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

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
