package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/jhoicas/inventory-service/docs"
	"github.com/jhoicas/inventory-service/internal/application/inventory"
	"github.com/jhoicas/inventory-service/internal/domain/repository"
	"github.com/jhoicas/inventory-service/internal/infrastructure/memory"
	"github.com/jhoicas/inventory-service/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/inventory-service/internal/interfaces/http"
	"github.com/jhoicas/inventory-service/pkg/config"
	"github.com/jhoicas/inventory-service/pkg/logger"
	"github.com/jhoicas/inventory-service/pkg/tracing"
)

// @title        Inventory Service API
// @version      1.0.0
// @description  CRUD de registros de inventario con filtros y aumento de stock.
// @BasePath     /
func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.Log.Level,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("version", cfg.App.Version).
		Str("store", cfg.Store.Driver).
		Msg("iniciando aplicación")

	ctx := context.Background()

	tracer, shutdownTracing, err := tracing.Init(ctx, cfg.App, cfg.OTel)
	if err != nil {
		log.Fatal().Err(err).Msg("inicializar trazas")
	}
	log.Debug().
		Str("addr", cfg.HTTP.Addr()).
		Bool("otel", cfg.OTel.Enabled()).
		Str("swagger", cfg.Swagger.FilePath).
		Msg("configuración cargada")

	var (
		repo     repository.InventoryRepository
		txRunner inventory.TxRunner
	)
	switch cfg.Store.Driver {
	case config.StoreDriverMemory:
		store := memory.NewInventoryRepository()
		repo, txRunner = store, store
	default:
		pool, err := postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a PostgreSQL")
		}
		defer pool.Close()
		if err := postgres.EnsureSchema(ctx, pool); err != nil {
			log.Fatal().Err(err).Msg("crear esquema de inventario")
		}
		repo = postgres.NewInventoryRepository(pool)
		txRunner = postgres.NewTxRunner(pool)
	}

	inventoryUC := inventory.NewInventoryUseCase(repo, txRunner)

	app := httpRouter.NewApp(cfg.App.Name, log)

	httpRouter.Router(app, httpRouter.RouterDeps{
		InventoryUC: inventoryUC,
		Logger:      log,
		Tracer:      tracer,
		AppName:     cfg.App.Name,
		Version:     cfg.App.Version,
	})

	// Swagger UI en local: http://localhost:<port>/docs
	if _, err := os.Stat(cfg.Swagger.FilePath); err == nil {
		docs.SwaggerInfo.Version = cfg.App.Version
		app.Use(swagger.New(swagger.Config{
			BasePath: "/",
			FilePath: cfg.Swagger.FilePath,
			Path:     "docs",
			Title:    "Inventory Service API",
		}))
	} else {
		log.Warn().Str("file", cfg.Swagger.FilePath).Msg("swagger.json no encontrado, /docs deshabilitado")
	}

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
	if err := shutdownTracing(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado de trazas")
	}

	log.Info().Msg("aplicación detenida")
}
