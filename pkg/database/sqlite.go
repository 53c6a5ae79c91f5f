package database

import (
	"context"
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"
)

// OpenSQLite opens (creating if needed) a SQLite database file.
// Use ":memory:" for a throwaway database.
func OpenSQLite(ctx context.Context, path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite: %w", err)
	}
	// A second connection to ":memory:" would see a different, empty database.
	db.SetMaxOpenConns(1)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping sqlite: %w", err)
	}
	return db, nil
}

// MigrateSQLite creates the catalog tables and indexes in a SQLite database
func MigrateSQLite(ctx context.Context, db *sql.DB) error {
	migrations := []string{
		CatalogSchema,
		`CREATE INDEX IF NOT EXISTS idx_catalog_items_position ON catalog_items(position);`,
		`CREATE INDEX IF NOT EXISTS idx_catalog_items_category ON catalog_items(category);`,
	}

	for _, migration := range migrations {
		if _, err := db.ExecContext(ctx, migration); err != nil {
			return fmt.Errorf("migration failed: %w\nQuery: %s", err, migration)
		}
	}
	return nil
}
