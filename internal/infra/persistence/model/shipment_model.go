package model

import (
	"time"

	"github.com/google/uuid"
)

// ShipmentModel is the GORM-specific struct for the 'shipments' table.
type ShipmentModel struct {
	ID              uuid.UUID  `gorm:"type:uuid;primary_key;default:uuid_generate_v4()"`
	OrderID         uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex"`
	ToUserAddress   bool       `gorm:"not null;default:false"`
	AddressID       *uuid.UUID `gorm:"type:uuid"`
	DeliveryAddress string     `gorm:"type:text;not null;default:''"`
	Status          string     `gorm:"type:varchar(100);not null"`
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// TableName explicitly sets the table name for GORM.
func (ShipmentModel) TableName() string {
	return "shipments"
}
