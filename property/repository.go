package property

import (
	"context"
	"errors"

	"github.com/KOMKZ/property-catalog/database"
	"gorm.io/gorm"
)

// Repository durable-store contract for property records.
// The cache layer depends on this interface so tests can substitute an
// in-memory fake.
type Repository interface {
	// ListAllByNewest returns all records ordered by creation time
	// descending (newest first)
	ListAllByNewest(ctx context.Context) ([]Property, error)

	// GetByID returns a record or ErrPropertyNotFound
	GetByID(ctx context.Context, id uint64) (*Property, error)

	// Create inserts a record.
	// Callers MUST invalidate the collection cache afterwards.
	Create(ctx context.Context, p *Property) error

	// Update saves a record.
	// Callers MUST invalidate the collection cache afterwards.
	Update(ctx context.Context, p *Property) error

	// Delete removes a record by id.
	// Callers MUST invalidate the collection cache afterwards.
	Delete(ctx context.Context, id uint64) error

	// Count counts all records
	Count(ctx context.Context) (int64, error)
}

// GormRepository gorm-backed Repository
type GormRepository struct {
	*database.BaseRepository[Property]
}

// NewGormRepository creates the gorm repository
func NewGormRepository(db *gorm.DB) *GormRepository {
	return &GormRepository{
		BaseRepository: database.NewBaseRepository[Property](db),
	}
}

// ListAllByNewest returns all records, newest first
func (r *GormRepository) ListAllByNewest(ctx context.Context) ([]Property, error) {
	var properties []Property
	err := r.DB().WithContext(ctx).
		Order("created_at DESC").
		Find(&properties).Error
	if err != nil {
		return nil, err
	}
	return properties, nil
}

// GetByID returns a record or ErrPropertyNotFound
func (r *GormRepository) GetByID(ctx context.Context, id uint64) (*Property, error) {
	p, err := r.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, database.ErrRecordNotFound) {
			return nil, ErrPropertyNotFound.WithData("id", id)
		}
		return nil, err
	}
	return p, nil
}

// Delete removes a record by id
func (r *GormRepository) Delete(ctx context.Context, id uint64) error {
	return r.BaseRepository.Delete(ctx, id)
}
