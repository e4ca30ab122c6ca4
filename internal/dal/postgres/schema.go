package postgres

import (
	"context"
	"fmt"
)

// SchemaTables lists the tables the service reads and writes.
var SchemaTables = []string{"customers", "suppliers", "products", "orders", "orderitems"}

const tableExistsQuery = `SELECT to_regclass($1) IS NOT NULL`

// MissingTables returns the tables from names that do not exist in the search path.
func MissingTables(ctx context.Context, conn GenericConn, names ...string) ([]string, error) {
	missing := make([]string, 0)
	for _, name := range names {
		var exists bool
		if err := conn.QueryRow(ctx, tableExistsQuery, name).Scan(&exists); err != nil {
			return nil, fmt.Errorf("failed to check table %s: %w", name, err)
		}
		if !exists {
			missing = append(missing, name)
		}
	}

	return missing, nil
}
