package db

import (
	"database/sql"
	"fmt"
)

// migrations is an ordered list of SQL statements to run.
var migrations = []string{
	`CREATE TABLE IF NOT EXISTS listings (
		id         TEXT     PRIMARY KEY,
		borough    TEXT     NOT NULL DEFAULT '',
		host_id    TEXT     NOT NULL DEFAULT '',
		raw_json   TEXT     NOT NULL,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
		updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
	)`,
	`CREATE INDEX IF NOT EXISTS idx_listings_borough ON listings(borough)`,
	`CREATE INDEX IF NOT EXISTS idx_listings_host_id ON listings(host_id)`,
}

// migrate runs all migrations in order.
func migrate(db *sql.DB) error {
	for i, m := range migrations {
		if _, err := db.Exec(m); err != nil {
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}
