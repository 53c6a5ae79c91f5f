package database

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// CatalogSchema creates the catalog table. It is valid for both PostgreSQL and SQLite.
const CatalogSchema = `CREATE TABLE IF NOT EXISTS catalog_items (
	position INTEGER NOT NULL,
	id BIGINT PRIMARY KEY,
	name TEXT NOT NULL,
	item_type TEXT NOT NULL,
	category TEXT NOT NULL,
	trend TEXT NOT NULL,
	status TEXT NOT NULL DEFAULT '',
	base_value TEXT NOT NULL DEFAULT '',
	base_value_num DOUBLE PRECISION,
	rares TEXT NOT NULL DEFAULT '',
	rares_num DOUBLE PRECISION,
	mids TEXT NOT NULL DEFAULT '',
	mids_num DOUBLE PRECISION,
	image_url TEXT NOT NULL DEFAULT '',
	case_name TEXT NOT NULL DEFAULT '',
	recent_changes TEXT NOT NULL DEFAULT '',
	last_updated TEXT NOT NULL DEFAULT ''
);`

// DB wraps the PostgreSQL connection pool
type DB struct {
	Pool *pgxpool.Pool
}

// New creates a new database connection pool
func New(ctx context.Context, databaseURL string) (*DB, error) {
	config, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse database URL: %w", err)
	}

	// The catalog is read once at start-up, a small pool is plenty
	config.MaxConns = 4
	config.MinConns = 1

	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("failed to create connection pool: %w", err)
	}

	// Test connection
	if err := pool.Ping(ctx); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &DB{Pool: pool}, nil
}

// Close closes the database connection pool
func (db *DB) Close() {
	db.Pool.Close()
}

// Migrate creates the catalog tables and indexes
func (db *DB) Migrate(ctx context.Context) error {
	migrations := []string{
		CatalogSchema,
		`CREATE INDEX IF NOT EXISTS idx_catalog_items_position ON catalog_items(position);`,
		`CREATE INDEX IF NOT EXISTS idx_catalog_items_category ON catalog_items(category);`,
	}

	for _, migration := range migrations {
		if _, err := db.Pool.Exec(ctx, migration); err != nil {
			return fmt.Errorf("migration failed: %w\nQuery: %s", err, migration)
		}
	}
	return nil
}
