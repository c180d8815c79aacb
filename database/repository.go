package database

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
)

// BaseRepository generic Repository base
type BaseRepository[T any] struct {
	db *gorm.DB
}

// NewBaseRepository creates a Repository base
func NewBaseRepository[T any](db *gorm.DB) *BaseRepository[T] {
	return &BaseRepository[T]{db: db}
}

// DB returns the database handle
func (r *BaseRepository[T]) DB() *gorm.DB {
	return r.db
}

// Create inserts a record
func (r *BaseRepository[T]) Create(ctx context.Context, entity *T) error {
	if err := r.db.WithContext(ctx).Create(entity).Error; err != nil {
		return fmt.Errorf("create record failed: %w", err)
	}
	return nil
}

// FindByID queries by primary key
// Returns ErrRecordNotFound when no row matches
func (r *BaseRepository[T]) FindByID(ctx context.Context, id interface{}) (*T, error) {
	var entity T
	result := r.db.WithContext(ctx).First(&entity, id)
	if errors.Is(result.Error, gorm.ErrRecordNotFound) {
		return nil, ErrRecordNotFound
	}
	if result.Error != nil {
		return nil, fmt.Errorf("query record failed (id=%v): %w", id, result.Error)
	}
	return &entity, nil
}

// FindAll queries all records
func (r *BaseRepository[T]) FindAll(ctx context.Context) ([]T, error) {
	var entities []T
	if err := r.db.WithContext(ctx).Find(&entities).Error; err != nil {
		return nil, fmt.Errorf("query all records failed: %w", err)
	}
	return entities, nil
}

// Update saves a record
func (r *BaseRepository[T]) Update(ctx context.Context, entity *T) error {
	if err := r.db.WithContext(ctx).Save(entity).Error; err != nil {
		return fmt.Errorf("update record failed: %w", err)
	}
	return nil
}

// Delete removes a record by primary key
func (r *BaseRepository[T]) Delete(ctx context.Context, id interface{}) error {
	var entity T
	if err := r.db.WithContext(ctx).Delete(&entity, id).Error; err != nil {
		return fmt.Errorf("delete record failed (id=%v): %w", id, err)
	}
	return nil
}

// Exists checks whether a record exists
func (r *BaseRepository[T]) Exists(ctx context.Context, id interface{}) (bool, error) {
	var count int64
	var entity T
	if err := r.db.WithContext(ctx).Model(&entity).Where("id = ?", id).Count(&count).Error; err != nil {
		return false, fmt.Errorf("check record exists failed (id=%v): %w", id, err)
	}
	return count > 0, nil
}

// Count counts records
func (r *BaseRepository[T]) Count(ctx context.Context) (int64, error) {
	var count int64
	var entity T
	if err := r.db.WithContext(ctx).Model(&entity).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("count records failed: %w", err)
	}
	return count, nil
}

// Transaction runs fn inside a transaction
func (r *BaseRepository[T]) Transaction(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return r.db.WithContext(ctx).Transaction(fn)
}
