package config

import (
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsPostgresURL(t *testing.T) {
	assert.True(t, IsPostgresURL("postgres://u:p@localhost:5432/db"))
	assert.True(t, IsPostgresURL("postgresql://u:p@localhost:5432/db?sslmode=disable"))
	assert.False(t, IsPostgresURL("inventory_session.db"))
	assert.False(t, IsPostgresURL(":memory:"))
}

func TestConnectDatabaseSQLiteMemory(t *testing.T) {
	db, err := ConnectDatabase(":memory:", slog.New(slog.NewTextHandler(io.Discard, nil)))
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	defer sqlDB.Close()

	assert.NoError(t, sqlDB.Ping())
}

func TestConnectDatabaseRequiresURL(t *testing.T) {
	_, err := ConnectDatabase("", slog.New(slog.NewTextHandler(io.Discard, nil)))
	assert.Error(t, err)
}
