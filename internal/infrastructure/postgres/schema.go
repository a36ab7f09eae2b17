package postgres

import (
	"context"
	"fmt"
)

// schemaStatements DDL idempotente: se puede ejecutar en cada arranque.
// La identidad garantiza que un ID borrado nunca se reasigna.
var schemaStatements = []struct{ descr, sql string }{
	{"create table inventory", `
CREATE TABLE IF NOT EXISTS inventory (
    id            BIGINT GENERATED BY DEFAULT AS IDENTITY PRIMARY KEY,
    name          VARCHAR(63)  NOT NULL,
    quantity      INTEGER      NOT NULL CHECK (quantity >= 0),
    restock_level INTEGER      NOT NULL CHECK (restock_level >= 0),
    condition     VARCHAR(16)  NOT NULL DEFAULT 'unknown'
                  CHECK (condition IN ('new', 'used', 'slightly_used', 'unknown')),
    created_at    TIMESTAMPTZ  NOT NULL DEFAULT now(),
    updated_at    TIMESTAMPTZ  NOT NULL DEFAULT now()
)`},
	{"create index idx_inventory_name", `CREATE INDEX IF NOT EXISTS idx_inventory_name ON inventory (name)`},
	{"create index idx_inventory_condition", `CREATE INDEX IF NOT EXISTS idx_inventory_condition ON inventory (condition)`},
}

// EnsureSchema crea la tabla e índices de inventario si no existen.
func EnsureSchema(ctx context.Context, q Querier) error {
	for _, s := range schemaStatements {
		if _, err := q.Exec(ctx, s.sql); err != nil {
			return fmt.Errorf("schema %q: %w", s.descr, wrapStoreError(err))
		}
	}
	return nil
}
