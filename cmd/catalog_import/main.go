package main

import (
	"context"
	"flag"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/akagifreeez/trade-values/internal/catalog"
	"github.com/akagifreeez/trade-values/internal/config"
	"github.com/akagifreeez/trade-values/pkg/database"
)

func main() {
	// Setup logger
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	in := flag.String("in", cfg.CatalogPath, "catalog document to import (.json, .yaml or .yml)")
	target := flag.String("target", catalog.SourceSQLite, "database to import into: postgres or sqlite")
	flag.Parse()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	start := time.Now()

	items, err := catalog.ReadFile(*in)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to read catalog")
	}
	// Reject duplicate ids before touching the database
	if _, err := catalog.New(items); err != nil {
		log.Fatal().Err(err).Msg("Invalid catalog")
	}

	switch *target {
	case catalog.SourcePostgres:
		db, err := database.New(ctx, cfg.DatabaseURL)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to connect to database")
		}
		defer db.Close()

		if err := db.Migrate(ctx); err != nil {
			log.Fatal().Err(err).Msg("Failed to run migrations")
		}
		if err := catalog.SavePostgres(ctx, db, items); err != nil {
			log.Fatal().Err(err).Msg("Import failed")
		}

	case catalog.SourceSQLite:
		db, err := database.OpenSQLite(ctx, cfg.SQLitePath)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to open sqlite database")
		}
		defer db.Close()

		if err := database.MigrateSQLite(ctx, db); err != nil {
			log.Fatal().Err(err).Msg("Failed to run migrations")
		}
		if err := catalog.SaveSQLite(ctx, db, items); err != nil {
			log.Fatal().Err(err).Msg("Import failed")
		}

	default:
		log.Fatal().Str("target", *target).Msg("Unknown import target")
	}

	log.Info().
		Str("target", *target).
		Int("count", len(items)).
		Dur("elapsed", time.Since(start)).
		Msg("Catalog imported")
}
