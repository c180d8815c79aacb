// Package property implements the catalog domain: the Property record,
// its durable-store repository, and the cache-aside read service.
package property

import (
	"time"

	"github.com/shopspring/decimal"
)

// Property a catalog record.
// Owned by the durable store; the cache layer only observes it.
// Price is a fixed-point decimal and serializes as a JSON string to avoid
// float rounding.
type Property struct {
	ID          uint64          `gorm:"primaryKey" json:"id"`
	Title       string          `gorm:"size:200;not null" json:"title"`
	Description string          `gorm:"type:text" json:"description"`
	Price       decimal.Decimal `gorm:"type:decimal(12,2)" json:"price"`
	Location    string          `gorm:"size:200" json:"location"`
	CreatedAt   time.Time       `json:"created_at"`
}

// TableName gorm table name
func (Property) TableName() string {
	return "properties"
}
