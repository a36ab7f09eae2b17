package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/jhoicas/inventory-service/internal/application/inventory"
	"github.com/jhoicas/inventory-service/pkg/logger"
	"github.com/jhoicas/inventory-service/pkg/tracing"
	"go.opentelemetry.io/otel/trace"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	InventoryUC *inventory.InventoryUseCase
	Logger      *logger.Logger
	Tracer      trace.Tracer // opcional; nil = sin spans
	AppName     string
	Version     string
}

// NewApp crea la app Fiber con el ErrorHandler del servicio.
func NewApp(appName string, log *logger.Logger) *fiber.App {
	return fiber.New(fiber.Config{
		AppName:      appName,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
		ErrorHandler: ErrorHandler(log),
	})
}

// Router registra middlewares y rutas del servicio.
func Router(app *fiber.App, deps RouterDeps) {
	app.Use(RequestID())
	app.Use(RequestLogger(deps.Logger))
	if deps.Tracer != nil {
		app.Use(tracing.Middleware(deps.Tracer))
	}
	app.Use(recover.New())

	systemHandler := NewSystemHandler(deps.AppName, deps.Version, deps.InventoryUC, deps.Logger)
	app.Get("/", systemHandler.Index)
	app.Get("/health", systemHandler.Health)

	inv := app.Group("/inventory")
	inventoryHandler := NewInventoryHandler(deps.InventoryUC)
	inv.Post("/", RequireJSON(), inventoryHandler.Create)
	inv.Get("/", inventoryHandler.List)
	inv.Get("/:id", inventoryHandler.GetByID)
	inv.Put("/:id", RequireJSON(), inventoryHandler.Update)
	inv.Delete("/:id", inventoryHandler.Delete)
	inv.Put("/:id/increase", RequireJSON(), inventoryHandler.IncreaseStock)
}
