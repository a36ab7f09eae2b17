package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/utils"
	"github.com/jhoicas/inventory-service/internal/application/dto"
	"github.com/jhoicas/inventory-service/internal/domain"
	"github.com/jhoicas/inventory-service/pkg/logger"
	"github.com/rs/zerolog"
)

const internalErrorMessage = "error interno del servidor"

// ErrorHandler único punto de salida de errores: traduce errores de dominio y de Fiber
// a {status_code, error, message} y los registra con el nivel que corresponde.
func ErrorHandler(log *logger.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		status, message := classify(err)

		var ev *zerolog.Event
		switch {
		case status == fiber.StatusServiceUnavailable:
			ev = log.Critical()
		case status >= fiber.StatusInternalServerError:
			ev = log.Error()
		default:
			ev = log.Warn()
		}
		ev.Err(err).
			Str("request_id", requestID(c)).
			Str("method", c.Method()).
			Str("path", c.Path()).
			Int("status", status).
			Msg("request fallida")

		return c.Status(status).JSON(dto.ErrorResponse{
			StatusCode: status,
			Error:      utils.StatusMessage(status),
			Message:    message,
		})
	}
}

// classify devuelve el status HTTP y el mensaje visible para el cliente.
// Los 500 nunca exponen el texto del error interno.
func classify(err error) (int, string) {
	var ve *domain.ValidationError
	var fe *fiber.Error
	switch {
	case errors.As(err, &ve):
		return fiber.StatusBadRequest, ve.Error()
	case errors.Is(err, domain.ErrInvalidInput):
		return fiber.StatusBadRequest, err.Error()
	case errors.Is(err, domain.ErrNotFound):
		return fiber.StatusNotFound, "registro de inventario no encontrado"
	case errors.Is(err, domain.ErrUnsupportedMediaType):
		return fiber.StatusUnsupportedMediaType, domain.ErrUnsupportedMediaType.Error()
	case errors.Is(err, domain.ErrStoreUnavailable):
		return fiber.StatusServiceUnavailable, domain.ErrStoreUnavailable.Error()
	case errors.As(err, &fe):
		if fe.Code >= fiber.StatusInternalServerError {
			return fe.Code, internalErrorMessage
		}
		return fe.Code, fe.Message
	default:
		return fiber.StatusInternalServerError, internalErrorMessage
	}
}
