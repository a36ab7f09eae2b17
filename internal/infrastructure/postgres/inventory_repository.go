package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/inventory-service/internal/domain/entity"
	"github.com/jhoicas/inventory-service/internal/domain/repository"
)

var _ repository.InventoryRepository = (*InventoryRepo)(nil)

const inventoryColumns = `id, name, quantity, restock_level, condition, created_at, updated_at`

// InventoryRepo implementación del puerto InventoryRepository sobre PostgreSQL (usable con pool o tx).
type InventoryRepo struct {
	q Querier
}

// NewInventoryRepository construye el adaptador de persistencia para inventario. Pasar pool o tx (Querier).
func NewInventoryRepository(q Querier) *InventoryRepo {
	return &InventoryRepo{q: q}
}

// Create persiste un nuevo registro y asigna ID y timestamps devueltos por la base.
func (r *InventoryRepo) Create(ctx context.Context, inv *entity.Inventory) error {
	if inv.Condition == "" {
		inv.Condition = entity.ConditionUnknown
	}
	query := `
		INSERT INTO inventory (name, quantity, restock_level, condition, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at, updated_at`
	err := r.q.QueryRow(ctx, query,
		inv.Name, inv.Quantity, inv.RestockLevel, string(inv.Condition), inv.CreatedAt, inv.UpdatedAt,
	).Scan(&inv.ID, &inv.CreatedAt, &inv.UpdatedAt)
	if err != nil {
		return fmt.Errorf("insert inventory: %w", wrapStoreError(err))
	}
	return nil
}

// GetByID obtiene un registro por ID.
func (r *InventoryRepo) GetByID(ctx context.Context, id int64) (*entity.Inventory, error) {
	query := `SELECT ` + inventoryColumns + ` FROM inventory WHERE id = $1`
	inv, err := scanInventory(r.q.QueryRow(ctx, query, id))
	if err != nil {
		return nil, fmt.Errorf("get inventory: %w", wrapStoreError(err))
	}
	return inv, nil
}

// GetForUpdate obtiene el registro y bloquea la fila para update (SELECT FOR UPDATE).
func (r *InventoryRepo) GetForUpdate(ctx context.Context, id int64) (*entity.Inventory, error) {
	query := `SELECT ` + inventoryColumns + ` FROM inventory WHERE id = $1 FOR UPDATE`
	inv, err := scanInventory(r.q.QueryRow(ctx, query, id))
	if err != nil {
		return nil, fmt.Errorf("get inventory for update: %w", wrapStoreError(err))
	}
	return inv, nil
}

// Update reemplaza todos los campos editables de un registro existente.
func (r *InventoryRepo) Update(ctx context.Context, inv *entity.Inventory) error {
	query := `
		UPDATE inventory SET name = $2, quantity = $3, restock_level = $4, condition = $5, updated_at = $6
		WHERE id = $1`
	_, err := r.q.Exec(ctx, query,
		inv.ID, inv.Name, inv.Quantity, inv.RestockLevel, string(inv.Condition), inv.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update inventory: %w", wrapStoreError(err))
	}
	return nil
}

// Delete elimina un registro por ID. Cero filas afectadas no es error.
func (r *InventoryRepo) Delete(ctx context.Context, id int64) error {
	_, err := r.q.Exec(ctx, `DELETE FROM inventory WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete inventory: %w", wrapStoreError(err))
	}
	return nil
}

// List lista todos los registros ordenados por ID.
func (r *InventoryRepo) List(ctx context.Context) ([]*entity.Inventory, error) {
	return r.list(ctx, "list inventory",
		`SELECT `+inventoryColumns+` FROM inventory ORDER BY id`)
}

// ListByName coincidencia exacta (distingue mayúsculas).
func (r *InventoryRepo) ListByName(ctx context.Context, name string) ([]*entity.Inventory, error) {
	return r.list(ctx, "list inventory by name",
		`SELECT `+inventoryColumns+` FROM inventory WHERE name = $1 ORDER BY id`, name)
}

func (r *InventoryRepo) ListByCondition(ctx context.Context, condition entity.Condition) ([]*entity.Inventory, error) {
	return r.list(ctx, "list inventory by condition",
		`SELECT `+inventoryColumns+` FROM inventory WHERE condition = $1 ORDER BY id`, string(condition))
}

// ListNeedingRestock registros con quantity <= restock_level.
func (r *InventoryRepo) ListNeedingRestock(ctx context.Context) ([]*entity.Inventory, error) {
	return r.list(ctx, "list inventory needing restock",
		`SELECT `+inventoryColumns+` FROM inventory WHERE quantity <= restock_level ORDER BY id`)
}

// Ping verifica la conectividad ejecutando una consulta trivial.
func (r *InventoryRepo) Ping(ctx context.Context) error {
	var one int
	if err := r.q.QueryRow(ctx, `SELECT 1`).Scan(&one); err != nil {
		return fmt.Errorf("ping inventory store: %w", wrapStoreError(err))
	}
	return nil
}

func (r *InventoryRepo) list(ctx context.Context, op, query string, args ...any) ([]*entity.Inventory, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, wrapStoreError(err))
	}
	defer rows.Close()
	list := make([]*entity.Inventory, 0)
	for rows.Next() {
		var inv entity.Inventory
		var condition string
		if err := rows.Scan(&inv.ID, &inv.Name, &inv.Quantity, &inv.RestockLevel, &condition,
			&inv.CreatedAt, &inv.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan inventory: %w", err)
		}
		inv.Condition = entity.Condition(condition)
		list = append(list, &inv)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, wrapStoreError(err))
	}
	return list, nil
}

// scanInventory devuelve (nil, nil) si no hay filas.
func scanInventory(row pgx.Row) (*entity.Inventory, error) {
	var inv entity.Inventory
	var condition string
	err := row.Scan(&inv.ID, &inv.Name, &inv.Quantity, &inv.RestockLevel, &condition,
		&inv.CreatedAt, &inv.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	inv.Condition = entity.Condition(condition)
	return &inv, nil
}
