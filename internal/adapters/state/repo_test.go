package state_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/delphine/shop/internal/adapters/state"
	"github.com/delphine/shop/internal/domain"
)

func testRepo(t *testing.T) *state.Repo {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "state.db")), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	repo := state.NewRepo(db)
	require.NoError(t, repo.Migrate())
	return repo
}

func TestRepoLoadMissingKey(t *testing.T) {
	repo := testRepo(t)

	_, err := repo.Load(context.Background(), "delphine-cart")

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestRepoSaveAndLoad(t *testing.T) {
	ctx := context.Background()
	repo := testRepo(t)

	require.NoError(t, repo.Save(ctx, "delphine-cart", []byte(`{"items":[]}`)))

	got, err := repo.Load(ctx, "delphine-cart")
	require.NoError(t, err)
	assert.JSONEq(t, `{"items":[]}`, string(got))
}

func TestRepoSaveOverwrites(t *testing.T) {
	ctx := context.Background()
	repo := testRepo(t)
	require.NoError(t, repo.Save(ctx, "delphine-wishlist", []byte(`["p1"]`)))

	require.NoError(t, repo.Save(ctx, "delphine-wishlist", []byte(`["p1","p2"]`)))

	got, err := repo.Load(ctx, "delphine-wishlist")
	require.NoError(t, err)
	assert.JSONEq(t, `["p1","p2"]`, string(got))
}

func TestRepoKeysAreIndependent(t *testing.T) {
	ctx := context.Background()
	repo := testRepo(t)
	require.NoError(t, repo.Save(ctx, "delphine-cart", []byte(`1`)))
	require.NoError(t, repo.Save(ctx, "delphine-orders", []byte(`2`)))

	cart, err := repo.Load(ctx, "delphine-cart")
	require.NoError(t, err)
	orders, err := repo.Load(ctx, "delphine-orders")
	require.NoError(t, err)

	assert.Equal(t, "1", string(cart))
	assert.Equal(t, "2", string(orders))
}
