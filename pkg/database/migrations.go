package database

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// CreateSupplementalIndexes creates indexes not expressed as plain schema
// migrations: a GIN index over test_runs.notes for full-text search on
// adapter diagnostic notes, and a GIN full-text index over prospects.name.
func CreateSupplementalIndexes(ctx context.Context, pool *pgxpool.Pool) error {
	_, err := pool.Exec(ctx,
		`CREATE INDEX IF NOT EXISTS idx_test_runs_notes_gin
		ON test_runs USING gin(to_tsvector('french', COALESCE(notes, '')))`)
	if err != nil {
		return fmt.Errorf("failed to create test_runs notes GIN index: %w", err)
	}

	_, err = pool.Exec(ctx,
		`CREATE INDEX IF NOT EXISTS idx_prospects_name_trgm
		ON prospects USING gin(to_tsvector('french', name))`)
	if err != nil {
		return fmt.Errorf("failed to create prospects name GIN index: %w", err)
	}

	return nil
}
