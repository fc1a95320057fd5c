package database

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

// newTestClient starts a disposable PostgreSQL container, applies the
// embedded migrations against it, and returns a connected Client.
func newTestClient(t *testing.T) *Client {
	ctx := context.Background()

	pgContainer, err := postgres.Run(ctx,
		"postgres:16-alpine",
		postgres.WithDatabase("test"),
		postgres.WithUsername("test"),
		postgres.WithPassword("test"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second)),
	)
	require.NoError(t, err)

	t.Cleanup(func() {
		if err := testcontainers.TerminateContainer(pgContainer); err != nil {
			t.Logf("failed to terminate container: %v", err)
		}
	})

	host, err := pgContainer.Host(ctx)
	require.NoError(t, err)
	port, err := pgContainer.MappedPort(ctx, "5432/tcp")
	require.NoError(t, err)

	cfg := Config{
		Host:            host,
		Port:            port.Int(),
		User:            "test",
		Password:        "test",
		Database:        "test",
		SSLMode:         "disable",
		MaxOpenConns:    10,
		MaxIdleConns:    5,
		ConnMaxLifetime: time.Hour,
		ConnMaxIdleTime: 15 * time.Minute,
	}

	client, err := NewClient(ctx, cfg)
	require.NoError(t, err)

	t.Cleanup(client.Close)

	return client
}

func TestDatabaseClient_ConnectionPool(t *testing.T) {
	client := newTestClient(t)
	ctx := context.Background()

	health, err := Health(ctx, client.Pool)
	require.NoError(t, err)
	assert.Equal(t, "healthy", health.Status)
	assert.Greater(t, health.MaxConns, int32(0))
}

func TestMigrationsCreateExpectedTables(t *testing.T) {
	client := newTestClient(t)
	ctx := context.Background()

	for _, table := range []string{"campaigns", "prospects", "test_runs"} {
		var exists bool
		err := client.Pool.QueryRow(ctx,
			`SELECT EXISTS (SELECT 1 FROM information_schema.tables WHERE table_name = $1)`,
			table,
		).Scan(&exists)
		require.NoError(t, err)
		assert.True(t, exists, "expected migrations to create table %q", table)
	}
}

func TestFullTextSearchOnTestRunNotes(t *testing.T) {
	client := newTestClient(t)
	ctx := context.Background()

	_, err := client.Pool.Exec(ctx,
		`INSERT INTO campaigns (id, profession, city) VALUES ('c1', 'couvreur', 'Lyon')`)
	require.NoError(t, err)
	_, err = client.Pool.Exec(ctx,
		`INSERT INTO prospects (id, campaign_id, name, city, profession, landing_token)
		VALUES ('p1', 'c1', 'Martin Couverture', 'Lyon', 'couvreur', 'tok123456789012345678901')`)
	require.NoError(t, err)
	_, err = client.Pool.Exec(ctx,
		`INSERT INTO test_runs (id, campaign_id, prospect_id, model, queries, raw_answers, mention_per_query, notes)
		VALUES ('r1', 'c1', 'p1', 'openai', '{}', '{}', '{}', 'Q3 erreur openai: délai dépassé')`)
	require.NoError(t, err)

	var matched string
	err = client.Pool.QueryRow(ctx,
		`SELECT id FROM test_runs WHERE to_tsvector('french', notes) @@ to_tsquery('french', 'dépassé')`,
	).Scan(&matched)
	require.NoError(t, err)
	assert.Equal(t, "r1", matched)
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{
			name: "valid config",
			cfg: Config{
				Host: "localhost", Port: 5432, User: "test", Password: "test",
				Database: "test", SSLMode: "disable", MaxOpenConns: 10, MaxIdleConns: 5,
			},
		},
		{
			name: "missing password",
			cfg: Config{
				Host: "localhost", Port: 5432, User: "test", Database: "test",
				MaxOpenConns: 10, MaxIdleConns: 5,
			},
			wantErr: true,
		},
		{
			name: "idle conns exceed max conns",
			cfg: Config{
				Host: "localhost", Port: 5432, User: "test", Password: "test",
				Database: "test", MaxOpenConns: 5, MaxIdleConns: 10,
			},
			wantErr: true,
		},
		{
			name: "zero max open conns",
			cfg: Config{
				Host: "localhost", Port: 5432, User: "test", Password: "test",
				Database: "test", MaxOpenConns: 0, MaxIdleConns: 0,
			},
			wantErr: true,
		},
		{
			name: "negative idle conns",
			cfg: Config{
				Host: "localhost", Port: 5432, User: "test", Password: "test",
				Database: "test", MaxOpenConns: 10, MaxIdleConns: -1,
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
