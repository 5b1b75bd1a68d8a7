//go:build integration

package app

import (
	"context"
	"database/sql"
	"testing"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/magabrotheeeer/lapsheet/internal/config"
	"github.com/magabrotheeeer/lapsheet/internal/lib/sl"
)

func getTestDSN(t *testing.T) string {
	ctx := context.Background()

	pgContainer, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("user"),
		postgres.WithPassword("password"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = pgContainer.Terminate(ctx)
	})

	dsn, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)
	return dsn
}

func TestMigrate_DoesNotNeedRedis(t *testing.T) {
	dsn := getTestDSN(t)
	cfg := &config.Config{
		StorageConnectionString: dsn,
		RedisConnection: config.RedisConnection{
			AddressRedis: "127.0.0.1:1",
			DialTimeout:  time.Second,
		},
	}

	require.NoError(t, Migrate(context.Background(), cfg, sl.Discard()))
	// повторный запуск не меняет схему и не считается ошибкой
	require.NoError(t, Migrate(context.Background(), cfg, sl.Discard()))

	db, err := sql.Open("pgx", dsn)
	require.NoError(t, err)
	defer db.Close()

	var exists bool
	err = db.QueryRow(`SELECT EXISTS (SELECT 1 FROM information_schema.tables WHERE table_name = 'users')`).Scan(&exists)
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestNew_FailsWhenRedisUnavailable(t *testing.T) {
	cfg := &config.Config{
		StorageConnectionString: getTestDSN(t),
		RedisConnection: config.RedisConnection{
			AddressRedis: "127.0.0.1:1",
			DialTimeout:  time.Second,
		},
	}

	_, err := New(context.Background(), cfg, sl.Discard())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "app.New")
}
