// Package memory implementa el almacén de inventario en memoria del proceso.
// Se usa en pruebas y con STORE_DRIVER=memory; los datos se pierden al reiniciar.
package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/jhoicas/inventory-service/internal/application/inventory"
	"github.com/jhoicas/inventory-service/internal/domain/entity"
	"github.com/jhoicas/inventory-service/internal/domain/repository"
)

var (
	_ repository.InventoryRepository = (*InventoryRepo)(nil)
	_ inventory.TxRunner             = (*InventoryRepo)(nil)
)

// InventoryRepo guarda copias de los registros; los IDs empiezan en 1 y nunca se reutilizan.
type InventoryRepo struct {
	mu     sync.RWMutex
	items  map[int64]entity.Inventory
	nextID int64

	// txMu serializa las transacciones (equivalente a SELECT FOR UPDATE sobre toda la tabla).
	txMu sync.Mutex
}

// NewInventoryRepository construye un almacén vacío.
func NewInventoryRepository() *InventoryRepo {
	return &InventoryRepo{items: make(map[int64]entity.Inventory), nextID: 1}
}

// Run ejecuta fn con este mismo repositorio. Los cambios ya aplicados no se deshacen si fn falla:
// los casos de uso validan antes de escribir.
func (r *InventoryRepo) Run(ctx context.Context, fn func(repo repository.InventoryRepository) error) error {
	r.txMu.Lock()
	defer r.txMu.Unlock()
	if err := ctx.Err(); err != nil {
		return err
	}
	return fn(r)
}

func (r *InventoryRepo) Create(_ context.Context, inv *entity.Inventory) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	inv.ID = r.nextID
	r.nextID++
	if inv.Condition == "" {
		inv.Condition = entity.ConditionUnknown
	}
	r.items[inv.ID] = *inv
	return nil
}

func (r *InventoryRepo) GetByID(_ context.Context, id int64) (*entity.Inventory, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	inv, ok := r.items[id]
	if !ok {
		return nil, nil
	}
	return &inv, nil
}

func (r *InventoryRepo) GetForUpdate(ctx context.Context, id int64) (*entity.Inventory, error) {
	return r.GetByID(ctx, id)
}

// Update reemplaza el registro si existe; si no existe no hace nada (igual que UPDATE sin filas).
func (r *InventoryRepo) Update(_ context.Context, inv *entity.Inventory) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[inv.ID]; !ok {
		return nil
	}
	r.items[inv.ID] = *inv
	return nil
}

func (r *InventoryRepo) Delete(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.items, id)
	return nil
}

func (r *InventoryRepo) List(_ context.Context) ([]*entity.Inventory, error) {
	return r.filter(func(*entity.Inventory) bool { return true }), nil
}

func (r *InventoryRepo) ListByName(_ context.Context, name string) ([]*entity.Inventory, error) {
	return r.filter(func(inv *entity.Inventory) bool { return inv.Name == name }), nil
}

func (r *InventoryRepo) ListByCondition(_ context.Context, condition entity.Condition) ([]*entity.Inventory, error) {
	return r.filter(func(inv *entity.Inventory) bool { return inv.Condition == condition }), nil
}

func (r *InventoryRepo) ListNeedingRestock(_ context.Context) ([]*entity.Inventory, error) {
	return r.filter((*entity.Inventory).NeedsRestock), nil
}

func (r *InventoryRepo) Ping(ctx context.Context) error {
	return ctx.Err()
}

// filter devuelve copias ordenadas por ID de los registros que cumplen keep.
func (r *InventoryRepo) filter(keep func(*entity.Inventory) bool) []*entity.Inventory {
	r.mu.RLock()
	defer r.mu.RUnlock()
	list := make([]*entity.Inventory, 0, len(r.items))
	for _, item := range r.items {
		inv := item
		if keep(&inv) {
			list = append(list, &inv)
		}
	}
	sort.Slice(list, func(i, j int) bool { return list[i].ID < list[j].ID })
	return list
}
