// Package repotest provides migrated stores for tests.
package repotest

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"gallery-backend/internal/domains/gallery/repository"
	"gallery-backend/internal/infrastructure/database"
)

// DefaultCategoryID is the id of the "Uncategorized" row seeded by the
// migrations.
const DefaultCategoryID int64 = 1

// NewSQLiteStore returns a store on a fresh, migrated SQLite file under
// t.TempDir(). The store is closed when the test ends.
func NewSQLiteStore(t testing.TB) repository.Store {
	t.Helper()

	ctx := context.Background()
	db, err := database.OpenSQLite(ctx, filepath.Join(t.TempDir(), "gallery.db"))
	require.NoError(t, err)
	require.NoError(t, database.Migrate(ctx, db, database.DialectSQLite))

	store := repository.NewSQLiteRepository(db)
	t.Cleanup(func() { store.Close() })
	return store
}
