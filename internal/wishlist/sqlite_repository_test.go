package wishlist

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/fjod/go_inventory/internal/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupRepo(t *testing.T) *SQLiteRepository {
	database, err := db.Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { database.Close() })

	require.NoError(t, db.RunMigrations(database, "../../migrations"))
	return NewSQLiteRepository(database)
}

func TestAdd_And_List(t *testing.T) {
	repo := setupRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.Add(ctx, 1, 10))
	require.NoError(t, repo.Add(ctx, 1, 11))
	require.NoError(t, repo.Add(ctx, 2, 10))

	ids, err := repo.ListProductIDs(ctx, 1)
	require.NoError(t, err)
	assert.ElementsMatch(t, []int64{10, 11}, ids)
}

func TestAdd_Duplicate(t *testing.T) {
	repo := setupRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.Add(ctx, 1, 10))

	err := repo.Add(ctx, 1, 10)
	assert.ErrorIs(t, err, ErrAlreadyExists)

	// repeated adds converge to a single stored entry
	ids, err := repo.ListProductIDs(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, []int64{10}, ids)
}

func TestRemove(t *testing.T) {
	repo := setupRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.Add(ctx, 1, 10))
	require.NoError(t, repo.Remove(ctx, 1, 10))

	ids, err := repo.ListProductIDs(ctx, 1)
	require.NoError(t, err)
	assert.Empty(t, ids)

	assert.ErrorIs(t, repo.Remove(ctx, 1, 10), ErrNotInWishlist)
}
