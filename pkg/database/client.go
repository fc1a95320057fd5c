// Package database provides the PostgreSQL connection pool and embedded
// schema migrations for the prospecting engine. This package talks to
// Postgres directly through jackc/pgx/v5's pgxpool rather than through a
// generated ORM client: an ent-style generator would need `go generate`
// to run, so the Repository Layer (pkg/repository) is built straight on
// pgxpool.Pool.
package database

import (
	stdsql "database/sql"
	"context"
	"embed"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/jackc/pgx/v5/stdlib" // registers the "pgx" database/sql driver, used only to drive migrations
)

//go:embed migrations
var migrationsFS embed.FS

// Client wraps a pgx connection pool.
type Client struct {
	Pool *pgxpool.Pool
}

// Close releases every pooled connection.
func (c *Client) Close() {
	c.Pool.Close()
}

// NewClient opens a pgxpool against cfg, applies pending embedded
// migrations, and creates the supplemental indexes not expressed as
// migrations (see CreateSupplementalIndexes).
func NewClient(ctx context.Context, cfg Config) (*Client, error) {
	if err := runMigrations(cfg); err != nil {
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	poolCfg, err := pgxpool.ParseConfig(cfg.DSN())
	if err != nil {
		return nil, fmt.Errorf("failed to parse pool config: %w", err)
	}
	poolCfg.MaxConns = int32(cfg.MaxOpenConns)
	poolCfg.MinConns = int32(cfg.MaxIdleConns)
	poolCfg.MaxConnLifetime = cfg.ConnMaxLifetime
	poolCfg.MaxConnIdleTime = cfg.ConnMaxIdleTime

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to open connection pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	if err := CreateSupplementalIndexes(ctx, pool); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to create supplemental indexes: %w", err)
	}

	return &Client{Pool: pool}, nil
}

// runMigrations applies every pending embedded migration using
// golang-migrate, driving it through database/sql + the pgx stdlib
// adapter (golang-migrate's postgres driver wants a *sql.DB, not a
// pgxpool.Pool; this connection is opened, used, and closed purely for
// that purpose).
func runMigrations(cfg Config) error {
	db, err := stdsql.Open("pgx", cfg.DSN())
	if err != nil {
		return fmt.Errorf("failed to open migration connection: %w", err)
	}
	defer db.Close()

	driver, err := postgres.WithInstance(db, &postgres.Config{})
	if err != nil {
		return fmt.Errorf("failed to create postgres driver: %w", err)
	}

	sourceDriver, err := iofs.New(migrationsFS, "migrations")
	if err != nil {
		return fmt.Errorf("failed to create migration source: %w", err)
	}
	defer sourceDriver.Close()

	m, err := migrate.NewWithInstance("iofs", sourceDriver, cfg.Database, driver)
	if err != nil {
		return fmt.Errorf("failed to create migrate instance: %w", err)
	}

	if err := m.Up(); err != nil && err != migrate.ErrNoChange {
		return fmt.Errorf("failed to apply migrations: %w", err)
	}
	return nil
}
