// Package db opens and prepares the kiosk's embedded SQLite database.
// A kiosk is a single-host, single-process machine, so an embedded store
// with no external server is the right fit.
package db

import (
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"
)

// Open opens the kiosk database and configures pragmas.
//
// The pool is capped at one connection: SQLite allows one writer anyway,
// the kiosk's load is a handful of concurrent requests, and an in-memory
// database would otherwise be a different empty database per pooled
// connection.
func Open(path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening database %s: %w", path, err)
	}
	db.SetMaxOpenConns(1)

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=5000",
		"PRAGMA foreign_keys=ON",
		"PRAGMA synchronous=NORMAL",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			db.Close()
			return nil, fmt.Errorf("setting pragma %q: %w", p, err)
		}
	}

	return db, nil
}
