package repository

import (
	"context"

	"github.com/jhoicas/inventory-service/internal/domain/entity"
)

// InventoryRepository define el puerto de persistencia para Inventory (DIP).
// GetByID y GetForUpdate devuelven (nil, nil) si el registro no existe.
// Los fallos de conectividad se devuelven envueltos en domain.ErrStoreUnavailable.
type InventoryRepository interface {
	Create(ctx context.Context, inv *entity.Inventory) error
	GetByID(ctx context.Context, id int64) (*entity.Inventory, error)
	// GetForUpdate bloquea la fila hasta el fin de la transacción (SELECT FOR UPDATE).
	GetForUpdate(ctx context.Context, id int64) (*entity.Inventory, error)
	Update(ctx context.Context, inv *entity.Inventory) error
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context) ([]*entity.Inventory, error)
	ListByName(ctx context.Context, name string) ([]*entity.Inventory, error)
	ListByCondition(ctx context.Context, condition entity.Condition) ([]*entity.Inventory, error)
	ListNeedingRestock(ctx context.Context) ([]*entity.Inventory, error)
	Ping(ctx context.Context) error
}
