package catalog

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog/log"

	"github.com/akagifreeez/trade-values/internal/models"
	"github.com/akagifreeez/trade-values/pkg/database"
)

var itemColumns = []string{
	"id", "name", "item_type", "category", "trend", "status",
	"base_value", "base_value_num", "rares", "rares_num", "mids", "mids_num",
	"image_url", "case_name", "recent_changes", "last_updated",
}

var selectItems = "SELECT " + strings.Join(itemColumns, ", ") + " FROM catalog_items ORDER BY position ASC, id ASC"

// rows is the part of pgx.Rows and *sql.Rows the loaders need
type rows interface {
	Next() bool
	Scan(dest ...any) error
	Err() error
}

func scanItems(r rows) ([]models.Item, error) {
	var items []models.Item
	for r.Next() {
		var item models.Item
		var trend string
		if err := r.Scan(
			&item.ID, &item.Name, &item.Type, &item.Category, &trend, &item.Status,
			&item.BaseValue, &item.BaseValueNum, &item.Rares, &item.RaresNum, &item.Mids, &item.MidsNum,
			&item.ImageURL, &item.Case, &item.RecentChanges, &item.LastUpdated,
		); err != nil {
			return nil, fmt.Errorf("failed to scan item: %w", err)
		}
		item.Trend = models.Trend(trend)
		items = append(items, item)
	}
	if err := r.Err(); err != nil {
		return nil, fmt.Errorf("failed to read items: %w", err)
	}
	return items, nil
}

func itemArgs(position int, item models.Item) []any {
	return []any{
		position, item.ID, item.Name, item.Type, item.Category, string(item.Trend), item.Status,
		item.BaseValue, item.BaseValueNum, item.Rares, item.RaresNum, item.Mids, item.MidsNum,
		item.ImageURL, item.Case, item.RecentChanges, item.LastUpdated,
	}
}

func insertItem(placeholder func(n int) string) string {
	cols := append([]string{"position"}, itemColumns...)
	marks := make([]string, len(cols))
	for i := range cols {
		marks[i] = placeholder(i + 1)
	}
	return "INSERT INTO catalog_items (" + strings.Join(cols, ", ") + ") VALUES (" + strings.Join(marks, ", ") + ")"
}

// LoadPostgres reads the catalog from PostgreSQL
func LoadPostgres(ctx context.Context, db *database.DB) (*Catalog, error) {
	r, err := db.Pool.Query(ctx, selectItems)
	if err != nil {
		return nil, fmt.Errorf("failed to query catalog: %w", err)
	}
	defer r.Close()

	items, err := scanItems(r)
	if err != nil {
		return nil, err
	}
	log.Info().Str("source", "postgres").Int("count", len(items)).Msg("Loaded catalog")
	return New(items)
}

// SavePostgres replaces the stored catalog with items in a single transaction
func SavePostgres(ctx context.Context, db *database.DB, items []models.Item) error {
	tx, err := db.Pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, "DELETE FROM catalog_items"); err != nil {
		return fmt.Errorf("failed to clear catalog: %w", err)
	}

	query := insertItem(func(n int) string { return fmt.Sprintf("$%d", n) })
	batch := &pgx.Batch{}
	for i, item := range items {
		batch.Queue(query, itemArgs(i, item)...)
	}
	if err := tx.SendBatch(ctx, batch).Close(); err != nil {
		return fmt.Errorf("failed to insert items: %w", err)
	}

	return tx.Commit(ctx)
}

// LoadSQLite reads the catalog from a SQLite database
func LoadSQLite(ctx context.Context, db *sql.DB) (*Catalog, error) {
	r, err := db.QueryContext(ctx, selectItems)
	if err != nil {
		return nil, fmt.Errorf("failed to query catalog: %w", err)
	}
	defer r.Close()

	items, err := scanItems(r)
	if err != nil {
		return nil, err
	}
	log.Info().Str("source", "sqlite").Int("count", len(items)).Msg("Loaded catalog")
	return New(items)
}

// SaveSQLite replaces the stored catalog with items in a single transaction
func SaveSQLite(ctx context.Context, db *sql.DB, items []models.Item) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, "DELETE FROM catalog_items"); err != nil {
		return fmt.Errorf("failed to clear catalog: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, insertItem(func(int) string { return "?" }))
	if err != nil {
		return fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer stmt.Close()

	for i, item := range items {
		if _, err := stmt.ExecContext(ctx, itemArgs(i, item)...); err != nil {
			return fmt.Errorf("failed to insert item %d: %w", item.ID, err)
		}
	}

	return tx.Commit()
}
