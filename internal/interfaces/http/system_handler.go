package http

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/inventory-service/internal/application/dto"
	"github.com/jhoicas/inventory-service/pkg/logger"
)

const healthTimeout = 2 * time.Second

// Pinger verifica la conectividad del almacén.
type Pinger interface {
	Ping(ctx context.Context) error
}

// SystemHandler índice del servicio y health check.
type SystemHandler struct {
	name    string
	version string
	store   Pinger
	log     *logger.Logger
}

// NewSystemHandler construye el handler.
func NewSystemHandler(name, version string, store Pinger, log *logger.Logger) *SystemHandler {
	return &SystemHandler{name: name, version: version, store: store, log: log}
}

// Index godoc
// @Summary      Índice del servicio
// @Description  paths apunta a la URL absoluta del listado de inventario.
// @Tags         system
// @Produce      json
// @Success      200  {object}  dto.IndexResponse
// @Router       / [get]
func (h *SystemHandler) Index(c *fiber.Ctx) error {
	return c.JSON(dto.IndexResponse{Name: h.name, Version: h.version, Paths: c.BaseURL() + "/inventory"})
}

// Health godoc
// @Summary      Estado del servicio y del almacén
// @Tags         system
// @Produce      json
// @Success      200  {object}  dto.HealthResponse
// @Failure      503  {object}  dto.HealthResponse
// @Router       /health [get]
func (h *SystemHandler) Health(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.UserContext(), healthTimeout)
	defer cancel()

	if err := h.store.Ping(ctx); err != nil {
		h.log.Critical().Err(err).Str("request_id", requestID(c)).Msg("health: almacén no disponible")
		return c.Status(fiber.StatusServiceUnavailable).JSON(dto.HealthResponse{
			Status: "unavailable", Service: h.name, Store: "down",
		})
	}
	return c.JSON(dto.HealthResponse{Status: "ok", Service: h.name, Store: "up"})
}
