package db

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConnectSQLiteAndMigrate(t *testing.T) {
	gdb, err := Connect(Config{Driver: "sqlite", Path: ":memory:"})
	require.NoError(t, err)
	require.NoError(t, Migrate(gdb))
	assert.True(t, gdb.Migrator().HasTable("assets"))
	assert.True(t, gdb.Migrator().HasTable("power_links"))
}

func TestConnectUnknownDriver(t *testing.T) {
	_, err := Connect(Config{Driver: "oracle"})
	assert.ErrorContains(t, err, "unsupported db driver")
}
