package inventory

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/jhoicas/inventory-service/internal/domain"
	"github.com/jhoicas/inventory-service/internal/domain/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// decode reproduce cómo el handler HTTP decodifica el cuerpo.
func decode(t *testing.T, body string) map[string]any {
	t.Helper()
	dec := json.NewDecoder(strings.NewReader(body))
	dec.UseNumber()
	var m map[string]any
	require.NoError(t, dec.Decode(&m))
	return m
}

func fieldOf(t *testing.T, err error) string {
	t.Helper()
	require.Error(t, err)
	require.True(t, errors.Is(err, domain.ErrInvalidInput), err.Error())
	var ve *domain.ValidationError
	require.True(t, errors.As(err, &ve))
	return ve.Field
}

func TestBuild_Valido(t *testing.T) {
	inv, err := Build(decode(t, `{"id":9,"name":"paper","quantity":100,"restock_level":50,"condition":"new"}`))
	require.NoError(t, err)
	assert.Zero(t, inv.ID)
	assert.Equal(t, "paper", inv.Name)
	assert.Equal(t, 100, inv.Quantity)
	assert.Equal(t, 50, inv.RestockLevel)
	assert.Equal(t, entity.ConditionNew, inv.Condition)
}

func TestBuild_AceptaEnterosNativos(t *testing.T) {
	inv, err := Build(map[string]any{"name": "pen", "quantity": 3, "restock_level": float64(2), "condition": "used"})
	require.NoError(t, err)
	assert.Equal(t, 3, inv.Quantity)
	assert.Equal(t, 2, inv.RestockLevel)
}

func TestBuild_Invalido(t *testing.T) {
	cases := []struct {
		body  string
		field string
	}{
		{`{"quantity":1,"restock_level":1,"condition":"new"}`, FieldName},
		{`{"name":"","quantity":1,"restock_level":1,"condition":"new"}`, FieldName},
		{`{"name":5,"quantity":1,"restock_level":1,"condition":"new"}`, FieldName},
		{`{"name":"` + strings.Repeat("n", MaxNameLength+1) + `","quantity":1,"restock_level":1,"condition":"new"}`, FieldName},
		{`{"name":"paper","restock_level":1,"condition":"new"}`, FieldQuantity},
		{`{"name":"paper","quantity":-1,"restock_level":1,"condition":"new"}`, FieldQuantity},
		{`{"name":"paper","quantity":"1","restock_level":1,"condition":"new"}`, FieldQuantity},
		{`{"name":"paper","quantity":true,"restock_level":1,"condition":"new"}`, FieldQuantity},
		{`{"name":"paper","quantity":2.5,"restock_level":1,"condition":"new"}`, FieldQuantity},
		{`{"name":"paper","quantity":99999999999,"restock_level":1,"condition":"new"}`, FieldQuantity},
		{`{"name":"paper","quantity":1,"restock_level":-2,"condition":"new"}`, FieldRestockLevel},
		{`{"name":"paper","quantity":1,"restock_level":1}`, FieldCondition},
		{`{"name":"paper","quantity":1,"restock_level":1,"condition":"NEW"}`, FieldCondition},
		{`{"name":"paper","quantity":1,"restock_level":1,"condition":3}`, FieldCondition},
	}
	for _, tc := range cases {
		_, err := Build(decode(t, tc.body))
		assert.Equal(t, tc.field, fieldOf(t, err), tc.body)
	}

	_, err := Build(nil)
	assert.Equal(t, "body", fieldOf(t, err))
}

func TestBuild_LimiteDeNombre(t *testing.T) {
	name := strings.Repeat("ñ", MaxNameLength)
	inv, err := Build(map[string]any{"name": name, "quantity": 0, "restock_level": 0, "condition": "unknown"})
	require.NoError(t, err)
	assert.Equal(t, name, inv.Name)
}

// Serializar lo construido reproduce todos los campos de entrada salvo id.
func TestBuild_SerializarReproduceEntrada(t *testing.T) {
	inputs := []map[string]any{
		{"name": "paper", "quantity": 100, "restock_level": 50, "condition": "new"},
		{"name": "pen", "quantity": 0, "restock_level": 0, "condition": "unknown"},
		{"name": "ink", "quantity": 2147483647, "restock_level": 7, "condition": "slightly_used"},
		{"name": "chair", "quantity": 3, "restock_level": 3, "condition": "used"},
	}
	for _, in := range inputs {
		inv, err := Build(in)
		require.NoError(t, err)
		out := map[string]any{
			"name":          inv.Name,
			"quantity":      inv.Quantity,
			"restock_level": inv.RestockLevel,
			"condition":     inv.Condition.String(),
		}
		assert.Equal(t, in, out)
	}
}

func TestStockDelta(t *testing.T) {
	n, err := StockDelta(decode(t, `{"add_stock":50}`))
	require.NoError(t, err)
	assert.Equal(t, 50, n)

	// El signo lo valida la entidad
	n, err = StockDelta(decode(t, `{"add_stock":-5}`))
	require.NoError(t, err)
	assert.Equal(t, -5, n)

	for _, body := range []string{`{}`, `{"add_stock":null}`, `{"add_stock":"5"}`, `{"add_stock":1.5}`} {
		_, err := StockDelta(decode(t, body))
		assert.Equal(t, FieldAddStock, fieldOf(t, err), body)
	}
	_, err = StockDelta(nil)
	assert.Equal(t, FieldAddStock, fieldOf(t, err))
}
