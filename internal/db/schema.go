package db

import (
	"database/sql"
	"fmt"
)

// schema is the full database schema. Cart items (including every photo's
// edit parameters) are stored JSON-encoded in the items column; the
// files_copied flag is the hot-folder dispatch idempotency gate and is only
// flipped through a conditional update.
const schema = `
CREATE TABLE IF NOT EXISTS orders (
    id           TEXT PRIMARY KEY,
    client_name  TEXT NOT NULL,
    client_email TEXT,
    items        TEXT NOT NULL,
    status       TEXT NOT NULL DEFAULT 'pending'
                 CHECK (status IN ('pending', 'pending_payment', 'paid', 'validated', 'cancelled')),
    files_copied INTEGER NOT NULL DEFAULT 0,
    created_at   DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
    updated_at   DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_orders_status ON orders(status);
`

// EnsureSchema creates all tables and indexes if they do not exist.
func EnsureSchema(db *sql.DB) error {
	if _, err := db.Exec(schema); err != nil {
		return fmt.Errorf("creating schema: %w", err)
	}
	return nil
}
