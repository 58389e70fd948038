package handler

import (
	"path/filepath"
	"testing"

	"github.com/jmoiron/sqlx"
	"github.com/southgate-leisure/feedback/internal/db"
	"github.com/stretchr/testify/require"
)

func testDB(t *testing.T) *sqlx.DB {
	t.Helper()

	database, err := db.Init("sqlite", filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.Close() })

	require.NoError(t, db.RunMigrations(database.DB, "sqlite"))

	return database
}
