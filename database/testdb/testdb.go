// Package testdb opens a migrated in-memory sqlite database for tests.
package testdb

import (
	"context"
	"fmt"
	"promo_store_server/database"
	"promo_store_server/structs"
	"testing"

	"github.com/MonkyMars/gecho"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

// New returns a fresh, migrated database that is closed when the test ends.
func New(t testing.TB) *database.DB {
	t.Helper()

	cfg := &structs.DatabaseConfig{
		Driver: database.DriverSQLite,
		DSN:    fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString()),
	}

	db, err := database.Open(cfg, gecho.NewDefaultLogger())
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	require.NoError(t, database.Migrate(context.Background(), db))
	return db
}
