package model

import (
	"time"

	"github.com/google/uuid"
)

// StockModel is the GORM-specific struct for the 'stocks' table.
// One row per product; the quantity carries a CHECK so a raced decrement
// can never persist a negative value even outside the conditional update.
type StockModel struct {
	ProductID uuid.UUID `gorm:"type:uuid;primary_key"`
	Quantity  int       `gorm:"not null;check:quantity >= 0"`
	UpdatedAt time.Time
}

// TableName explicitly sets the table name for GORM.
func (StockModel) TableName() string {
	return "stocks"
}
