package model

import (
	"time"

	"github.com/google/uuid"
)

// OrderModel is the GORM-specific struct for the 'orders' table.
// PaymentReference carries a unique index: it is the idempotency key that
// prevents a replayed payment confirmation from creating a second order.
type OrderModel struct {
	ID               uuid.UUID  `gorm:"type:uuid;primary_key;default:uuid_generate_v4()"`
	UserID           *uuid.UUID `gorm:"type:uuid;index"`
	GuestName        string     `gorm:"type:varchar(255);not null;default:''"`
	PaymentReference string     `gorm:"type:varchar(255);not null;uniqueIndex"`
	TotalCents       int64      `gorm:"not null"`
	Status           string     `gorm:"type:varchar(100);not null"`
	Lines            []OrderLineModel `gorm:"foreignKey:OrderID"`
	CreatedAt        time.Time
	UpdatedAt        *time.Time
}

// TableName explicitly sets the table name for GORM.
func (OrderModel) TableName() string {
	return "orders"
}

// OrderLineModel is the GORM-specific struct for the 'order_lines' table.
type OrderLineModel struct {
	ID            uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()"`
	OrderID       uuid.UUID `gorm:"type:uuid;not null;index"`
	ProductID     uuid.UUID `gorm:"type:uuid;not null"`
	Quantity      int       `gorm:"not null;check:quantity > 0"`
	SubtotalCents int64     `gorm:"not null"`
}

// TableName explicitly sets the table name for GORM.
func (OrderLineModel) TableName() string {
	return "order_lines"
}
