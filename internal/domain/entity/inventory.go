package entity

import (
	"math"
	"time"

	"github.com/jhoicas/inventory-service/internal/domain"
)

// Condition estado físico de un artículo del inventario. Solo admite los cuatro valores definidos.
type Condition string

const (
	ConditionNew          Condition = "new"
	ConditionUsed         Condition = "used"
	ConditionSlightlyUsed Condition = "slightly_used"
	ConditionUnknown      Condition = "unknown"
)

// Conditions devuelve los valores válidos en orden estable.
func Conditions() []Condition {
	return []Condition{ConditionNew, ConditionUsed, ConditionSlightlyUsed, ConditionUnknown}
}

// ParseCondition convierte el nombre recibido en una Condition. Distingue mayúsculas.
func ParseCondition(s string) (Condition, bool) {
	c := Condition(s)
	return c, c.IsValid()
}

func (c Condition) IsValid() bool {
	switch c {
	case ConditionNew, ConditionUsed, ConditionSlightlyUsed, ConditionUnknown:
		return true
	}
	return false
}

func (c Condition) String() string { return string(c) }

// Inventory representa un artículo del inventario con su nivel de reposición.
// ID lo asigna el almacén al crear (0 = aún no persistido) y no cambia después.
type Inventory struct {
	ID           int64
	Name         string
	Quantity     int
	RestockLevel int
	Condition    Condition
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// NeedsRestock indica si la cantidad está en o por debajo del nivel de reposición.
func (i *Inventory) NeedsRestock() bool {
	return i.Quantity <= i.RestockLevel
}

// IncreaseStock suma delta a Quantity. Un delta negativo o un resultado mayor que
// math.MaxInt32 no modifica el registro.
func (i *Inventory) IncreaseStock(delta int) error {
	if delta < 0 {
		return domain.NewValidationError("add_stock", "el valor [%d] es inválido, debe ser un entero >= 0", delta)
	}
	if delta > math.MaxInt32-i.Quantity {
		return domain.NewValidationError("add_stock", "fuera de rango")
	}
	i.Quantity += delta
	return nil
}
