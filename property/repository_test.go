package property

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/KOMKZ/property-catalog/database"
	"github.com/KOMKZ/property-catalog/logger"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRepo(t *testing.T) *GormRepository {
	cfg := database.Config{
		Driver: "sqlite",
		DSN:    filepath.Join(t.TempDir(), "catalog.db"),
	}
	db, err := database.Connect(cfg, logger.GetLogger("database"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.Close(db) })

	require.NoError(t, db.AutoMigrate(&Property{}))
	return NewGormRepository(db)
}

func TestGormRepository_CreateAndGet(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	p := &Property{
		Title:    "downtown loft",
		Price:    decimal.RequireFromString("425000.50"),
		Location: "Springfield",
	}
	require.NoError(t, repo.Create(ctx, p))
	require.NotZero(t, p.ID)

	got, err := repo.GetByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, "downtown loft", got.Title)
	assert.True(t, got.Price.Equal(p.Price))
}

func TestGormRepository_GetByID_NotFound(t *testing.T) {
	repo := newTestRepo(t)

	_, err := repo.GetByID(context.Background(), 12345)
	assert.ErrorIs(t, err, ErrPropertyNotFound)
}

func TestGormRepository_ListAllByNewest(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 3; i++ {
		p := &Property{
			Title:     "listing",
			CreatedAt: base.Add(time.Duration(i) * time.Hour),
		}
		require.NoError(t, repo.Create(ctx, p))
	}

	properties, err := repo.ListAllByNewest(ctx)
	require.NoError(t, err)
	require.Len(t, properties, 3)

	for i := 1; i < len(properties); i++ {
		assert.False(t, properties[i].CreatedAt.After(properties[i-1].CreatedAt),
			"results must be ordered newest first")
	}
}

func TestGormRepository_UpdateAndDelete(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	p := &Property{Title: "before"}
	require.NoError(t, repo.Create(ctx, p))

	p.Title = "after"
	require.NoError(t, repo.Update(ctx, p))

	got, err := repo.GetByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, "after", got.Title)

	require.NoError(t, repo.Delete(ctx, p.ID))
	_, err = repo.GetByID(ctx, p.ID)
	assert.ErrorIs(t, err, ErrPropertyNotFound)

	count, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(0), count)
}
