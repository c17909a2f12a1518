package database

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenAndMigrate_SQLite(t *testing.T) {
	ctx := context.Background()
	dsn := filepath.Join(t.TempDir(), "stockroom.db")

	db, err := OpenAndMigrate(ctx, DriverSQLite, dsn)
	require.NoError(t, err)
	defer db.Close()

	for _, table := range []string{"users", "password_resets", "products"} {
		var name string
		err := db.QueryRow(`SELECT name FROM sqlite_master WHERE type = 'table' AND name = $1`, table).Scan(&name)
		require.NoError(t, err, table)
		assert.Equal(t, table, name)
	}

	// running again is a no-op
	require.NoError(t, Migrate(ctx, db, DriverSQLite))
}

func TestOpen_UnsupportedDriver(t *testing.T) {
	_, err := Open("mysql", "whatever")
	assert.Error(t, err)

	assert.Error(t, Migrate(context.Background(), nil, "mysql"))
}
