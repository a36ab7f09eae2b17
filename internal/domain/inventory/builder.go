// Package inventory contiene las reglas de construcción y validación de registros de
// inventario a partir de entradas sin tipo (JSON decodificado).
package inventory

import (
	"encoding/json"
	"errors"
	"math"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/jhoicas/inventory-service/internal/domain"
	"github.com/jhoicas/inventory-service/internal/domain/entity"
)

// MaxNameLength ancho de la columna name en el almacén.
const MaxNameLength = 63

// Campos admitidos en la entrada.
const (
	FieldName         = "name"
	FieldQuantity     = "quantity"
	FieldRestockLevel = "restock_level"
	FieldCondition    = "condition"
	FieldAddStock     = "add_stock"
)

// record reglas de rango y enumeración; los tipos ya se comprobaron al extraer.
type record struct {
	Name         string `json:"name" validate:"required,max=63"`
	Quantity     int    `json:"quantity" validate:"min=0,max=2147483647"`
	RestockLevel int    `json:"restock_level" validate:"min=0,max=2147483647"`
	Condition    string `json:"condition" validate:"required,oneof=new used slightly_used unknown"`
}

var validate = validator.New()

func init() {
	// Los errores de validator deben nombrar el campo como llega en el JSON.
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
}

// Build construye un Inventory (sin ID) a partir de datos sin tipo.
// Cualquier clave "id" en data se ignora: el ID lo asigna el almacén.
func Build(data map[string]any) (*entity.Inventory, error) {
	if data == nil {
		return nil, domain.NewValidationError("body", "el cuerpo de la petición no contiene datos")
	}
	name, err := stringField(data, FieldName)
	if err != nil {
		return nil, err
	}
	quantity, err := intField(data, FieldQuantity)
	if err != nil {
		return nil, err
	}
	restockLevel, err := intField(data, FieldRestockLevel)
	if err != nil {
		return nil, err
	}
	condition, err := stringField(data, FieldCondition)
	if err != nil {
		return nil, err
	}

	in := record{Name: name, Quantity: quantity, RestockLevel: restockLevel, Condition: condition}
	if err := validate.Struct(in); err != nil {
		return nil, translate(err)
	}
	return &entity.Inventory{
		Name:         in.Name,
		Quantity:     in.Quantity,
		RestockLevel: in.RestockLevel,
		Condition:    entity.Condition(in.Condition),
	}, nil
}

// StockDelta extrae add_stock del cuerpo de la acción increase. El signo lo valida la entidad.
func StockDelta(data map[string]any) (int, error) {
	if data == nil {
		return 0, domain.NewValidationError(FieldAddStock, "es requerido")
	}
	return intField(data, FieldAddStock)
}

func stringField(data map[string]any, key string) (string, error) {
	raw, ok := data[key]
	if !ok || raw == nil {
		return "", domain.NewValidationError(key, "es requerido")
	}
	s, ok := raw.(string)
	if !ok {
		return "", domain.NewValidationError(key, "debe ser un texto")
	}
	return s, nil
}

// intField acepta json.Number (decodificación con UseNumber) y enteros nativos.
// Textos, booleanos y números con parte decimal se rechazan.
func intField(data map[string]any, key string) (int, error) {
	raw, ok := data[key]
	if !ok || raw == nil {
		return 0, domain.NewValidationError(key, "es requerido")
	}
	var n int64
	switch v := raw.(type) {
	case json.Number:
		parsed, err := v.Int64()
		if err != nil {
			return 0, domain.NewValidationError(key, "debe ser un entero")
		}
		n = parsed
	case int:
		n = int64(v)
	case int32:
		n = int64(v)
	case int64:
		n = v
	case float64:
		if v != math.Trunc(v) || math.IsInf(v, 0) {
			return 0, domain.NewValidationError(key, "debe ser un entero")
		}
		n = int64(v)
	default:
		return 0, domain.NewValidationError(key, "debe ser un entero")
	}
	if n > math.MaxInt32 || n < math.MinInt32 {
		return 0, domain.NewValidationError(key, "fuera de rango")
	}
	return int(n), nil
}

func translate(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return domain.NewValidationError("body", "%v", err)
	}
	fe := verrs[0]
	switch fe.Tag() {
	case "required":
		return domain.NewValidationError(fe.Field(), "es requerido")
	case "min":
		return domain.NewValidationError(fe.Field(), "debe ser un entero >= %s", fe.Param())
	case "max":
		if fe.Field() == FieldName {
			return domain.NewValidationError(fe.Field(), "supera %s caracteres", fe.Param())
		}
		return domain.NewValidationError(fe.Field(), "fuera de rango")
	case "oneof":
		return domain.NewValidationError(fe.Field(), "debe ser uno de: %s", strings.ReplaceAll(fe.Param(), " ", ", "))
	default:
		return domain.NewValidationError(fe.Field(), "inválido (%s)", fe.Tag())
	}
}
