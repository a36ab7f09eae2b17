package inventory

import (
	"context"

	"github.com/jhoicas/inventory-service/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción del almacén, pasando un repositorio
// atado a esa transacción. Si fn devuelve error se hace Rollback.
type TxRunner interface {
	Run(ctx context.Context, fn func(repo repository.InventoryRepository) error) error
}
