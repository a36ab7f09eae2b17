package logger

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodeLine(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()
	var m map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &m))
	return m
}

func TestNew_JSONOutputAndLevel(t *testing.T) {
	var buf bytes.Buffer
	l := New(Config{Env: "production", Level: "warn", Output: &buf})

	l.Info().Msg("no debe salir")
	assert.Zero(t, buf.Len())

	l.Warn().Str("field", "name").Msg("validación fallida")
	m := decodeLine(t, &buf)
	assert.Equal(t, "warn", m["level"])
	assert.Equal(t, "name", m["field"])
	assert.Equal(t, "validación fallida", m["message"])
}

func TestCritical_DoesNotExit(t *testing.T) {
	var buf bytes.Buffer
	l := New(Config{Env: "production", Level: "error", Output: &buf})

	l.Critical().Msg("almacén no disponible")
	m := decodeLine(t, &buf)
	assert.Equal(t, "fatal", m["level"])
	assert.Equal(t, "almacén no disponible", m["message"])
}

func TestNew_DebugLevel(t *testing.T) {
	var buf bytes.Buffer
	l := New(Config{Env: "production", Level: "debug", Output: &buf})

	l.Debug().Str("driver", "memory").Msg("almacén seleccionado")
	m := decodeLine(t, &buf)
	assert.Equal(t, "debug", m["level"])
	assert.Equal(t, "memory", m["driver"])

	buf.Reset()
	New(Config{Env: "production", Level: "desconocido", Output: &buf}).Debug().Msg("no debe salir")
	assert.Zero(t, buf.Len())
}

func TestNop_Discards(t *testing.T) {
	l := Nop()
	assert.NotPanics(t, func() {
		l.Error().Msg("descartado")
		l.Critical().Msg("descartado")
	})
}
