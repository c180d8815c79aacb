package database

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/KOMKZ/property-catalog/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type widget struct {
	ID   uint64 `gorm:"primaryKey"`
	Name string `gorm:"size:100"`
}

func newTestDB(t *testing.T) *gorm.DB {
	db, err := Connect(Config{
		Driver: "sqlite",
		DSN:    filepath.Join(t.TempDir(), "test.db"),
	}, logger.GetLogger("database"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = Close(db) })

	require.NoError(t, db.AutoMigrate(&widget{}))
	return db
}

func TestBaseRepository_CRUD(t *testing.T) {
	repo := NewBaseRepository[widget](newTestDB(t))
	ctx := context.Background()

	w := &widget{Name: "first"}
	require.NoError(t, repo.Create(ctx, w))
	require.NotZero(t, w.ID)

	got, err := repo.FindByID(ctx, w.ID)
	require.NoError(t, err)
	assert.Equal(t, "first", got.Name)

	got.Name = "renamed"
	require.NoError(t, repo.Update(ctx, got))

	all, err := repo.FindAll(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)
	assert.Equal(t, "renamed", all[0].Name)

	exists, err := repo.Exists(ctx, w.ID)
	require.NoError(t, err)
	assert.True(t, exists)

	count, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)

	require.NoError(t, repo.Delete(ctx, w.ID))
	_, err = repo.FindByID(ctx, w.ID)
	assert.ErrorIs(t, err, ErrRecordNotFound)
}

func TestConnect_NilLogger(t *testing.T) {
	_, err := Connect(Config{Driver: "sqlite", DSN: "x.db"}, nil)
	assert.ErrorContains(t, err, "logger cannot be nil")
}

func TestConnect_InvalidConfig(t *testing.T) {
	_, err := Connect(Config{}, logger.GetLogger("database"))
	assert.ErrorIs(t, err, ErrInvalidConfig)
}
