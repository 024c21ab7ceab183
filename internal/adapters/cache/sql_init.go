package cache

import (
	"database/sql"
	"errors"
	"fmt"
)

// InitSchema creates the Postgres lookup cache table. Run by cmd/dbtool
// before the server is pointed at a fresh database.
func InitSchema(db *sql.DB) error {
	if db == nil {
		return errors.New("init schema: DB is nil")
	}

	q := `
	CREATE TABLE IF NOT EXISTS plz_lookup_cache (
        plz TEXT PRIMARY KEY,
        status TEXT NOT NULL,
        lon DOUBLE PRECISION,
        lat DOUBLE PRECISION
    );
	`

	if _, err := db.Exec(q); err != nil {
		return fmt.Errorf("init schema: create plz_lookup_cache table: %w", err)
	}

	return nil
}
