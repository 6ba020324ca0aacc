package repo

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
)

// nextAvailableID allocates the smallest unused positive identifier in
// the given table, favoring reuse of low values freed by deletions over
// an ever-growing sequence. A single gap-finding statement does the
// work instead of a row-by-row probe: seed candidate 0, then take the
// smallest successor that is not already taken. It must run inside the
// transaction that inserts the row, so two writers cannot be handed the
// same value.
func nextAvailableID(ctx context.Context, tx *sqlx.Tx, table, column string) (int64, error) {
	// table and column are package constants, never user input.
	q := fmt.Sprintf(`
		SELECT MIN(candidate.id + 1)
		FROM (SELECT 0 AS id UNION SELECT %[2]s FROM %[1]s) AS candidate
		WHERE candidate.id + 1 NOT IN (SELECT %[2]s FROM %[1]s)`,
		table, column)

	var id int64
	if err := tx.QueryRowxContext(ctx, q).Scan(&id); err != nil {
		return 0, persistence(fmt.Sprintf("allocate %s id", table), err)
	}
	return id, nil
}
