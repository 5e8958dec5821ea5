package migrations_test

import (
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/nikolayk812/cart-manager/internal/migrations"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
)

func TestUp(t *testing.T) {
	ctx := t.Context()

	container, err := postgres.Run(ctx, "postgres:17.6-alpine3.22",
		postgres.BasicWaitStrategies(),
	)
	require.NoError(t, err)
	testcontainers.CleanupContainer(t, container)

	connStr, err := container.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	version, err := migrations.Up(connStr)
	require.NoError(t, err)
	assert.Equal(t, uint(1), version)

	// second run has nothing to apply
	version, err = migrations.Up(connStr)
	require.NoError(t, err)
	assert.Equal(t, uint(1), version)

	conn, err := pgx.Connect(ctx, connStr)
	require.NoError(t, err)
	defer conn.Close(ctx)

	var tables int
	err = conn.QueryRow(ctx, `SELECT COUNT(*) FROM information_schema.tables
		WHERE table_schema = 'public' AND table_name IN ('carts', 'cart_items')`).Scan(&tables)
	require.NoError(t, err)
	assert.Equal(t, 2, tables)
}
