package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/google/uuid"
	"github.com/jhoicas/inventory-service/internal/domain"
	"github.com/jhoicas/inventory-service/pkg/logger"
)

// RequestIDKey clave en c.Locals del id de request.
const RequestIDKey = "request_id"

// RequestID asigna un UUID por request (o respeta X-Request-ID entrante).
func RequestID() fiber.Handler {
	return requestid.New(requestid.Config{
		Header:     fiber.HeaderXRequestID,
		Generator:  uuid.NewString,
		ContextKey: RequestIDKey,
	})
}

func requestID(c *fiber.Ctx) string {
	if id, ok := c.Locals(RequestIDKey).(string); ok {
		return id
	}
	return ""
}

// RequestLogger registra cada request con method, path, status, latency y request_id.
// Resuelve el error con el ErrorHandler de la app para registrar el status final.
func RequestLogger(log *logger.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		if err := c.Next(); err != nil {
			if herr := c.App().ErrorHandler(c, err); herr != nil {
				_ = c.SendStatus(fiber.StatusInternalServerError)
			}
		}
		log.Info().
			Str("request_id", requestID(c)).
			Str("method", c.Method()).
			Str("path", c.Path()).
			Int("status", c.Response().StatusCode()).
			Dur("latency", time.Since(start)).
			Msg("request")
		return nil
	}
}

// RequireJSON rechaza con 415 los cuerpos que no declaran Content-Type application/json.
func RequireJSON() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if !c.Is("json") {
			return domain.ErrUnsupportedMediaType
		}
		return c.Next()
	}
}
