package http

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/jhoicas/inventory-service/internal/application/dto"
	"github.com/jhoicas/inventory-service/internal/domain"
	"github.com/jhoicas/inventory-service/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassify(t *testing.T) {
	cases := []struct {
		name   string
		err    error
		status int
	}{
		{"validación", domain.NewValidationError("quantity", "debe ser un entero"), fiber.StatusBadRequest},
		{"validación envuelta", fmt.Errorf("crear: %w", domain.NewValidationError("name", "es requerido")), fiber.StatusBadRequest},
		{"entrada inválida", domain.ErrInvalidInput, fiber.StatusBadRequest},
		{"no encontrado", domain.ErrNotFound, fiber.StatusNotFound},
		{"media type", domain.ErrUnsupportedMediaType, fiber.StatusUnsupportedMediaType},
		{"almacén", fmt.Errorf("list: %w", domain.ErrStoreUnavailable), fiber.StatusServiceUnavailable},
		{"fiber 405", fiber.ErrMethodNotAllowed, fiber.StatusMethodNotAllowed},
		{"desconocido", errors.New("boom"), fiber.StatusInternalServerError},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			status, msg := classify(tc.err)
			assert.Equal(t, tc.status, status)
			assert.NotEmpty(t, msg)
		})
	}

	_, msg := classify(errors.New("detalle interno"))
	assert.Equal(t, internalErrorMessage, msg)
}

func TestErrorHandler_PanicEs500YSeRegistra(t *testing.T) {
	var buf bytes.Buffer
	log := logger.New(logger.Config{Env: "production", Level: "warn", Output: &buf})

	app := NewApp("test", log)
	app.Use(recover.New())
	app.Get("/panic", func(c *fiber.Ctx) error {
		panic("explota")
	})

	resp, err := app.Test(httptest.NewRequest("GET", "/panic", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusInternalServerError, resp.StatusCode)

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var out dto.ErrorResponse
	require.NoError(t, json.Unmarshal(raw, &out))
	assert.Equal(t, internalErrorMessage, out.Message)
	assert.NotContains(t, string(raw), "explota")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "error", entry["level"])
	assert.EqualValues(t, 500, entry["status"])
}

func TestErrorHandler_StoreUnavailableEsCritico(t *testing.T) {
	var buf bytes.Buffer
	log := logger.New(logger.Config{Env: "production", Level: "info", Output: &buf})

	app := NewApp("test", log)
	app.Get("/down", func(c *fiber.Ctx) error {
		return fmt.Errorf("ping: %w", domain.ErrStoreUnavailable)
	})

	resp, err := app.Test(httptest.NewRequest("GET", "/down", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusServiceUnavailable, resp.StatusCode)

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "fatal", entry["level"])
}
