package catalog

import (
	"context"
	"fmt"

	"github.com/akagifreeez/trade-values/internal/config"
	"github.com/akagifreeez/trade-values/pkg/database"
)

// Sources understood by Load
const (
	SourceFile     = "file"
	SourcePostgres = "postgres"
	SourceSQLite   = "sqlite"
)

// Load reads the catalog from the source named in the configuration
func Load(ctx context.Context, cfg *config.Config) (*Catalog, error) {
	switch cfg.CatalogSource {
	case SourceFile, "":
		return LoadFile(cfg.CatalogPath)

	case SourcePostgres:
		db, err := database.New(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, err
		}
		defer db.Close()
		if err := db.Migrate(ctx); err != nil {
			return nil, err
		}
		return LoadPostgres(ctx, db)

	case SourceSQLite:
		db, err := database.OpenSQLite(ctx, cfg.SQLitePath)
		if err != nil {
			return nil, err
		}
		defer db.Close()
		if err := database.MigrateSQLite(ctx, db); err != nil {
			return nil, err
		}
		return LoadSQLite(ctx, db)
	}

	return nil, fmt.Errorf("unknown catalog source %q", cfg.CatalogSource)
}
