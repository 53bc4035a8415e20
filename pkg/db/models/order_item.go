package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// OrderItem captures the immutable price snapshot of each purchased line.
// UnitPriceCents and OriginalPriceCents are frozen at order time and do not
// follow later catalog price changes.
type OrderItem struct {
	ID                 uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	OrderID            uuid.UUID `gorm:"column:order_id;type:uuid;not null;index"`
	ProductID          uuid.UUID `gorm:"column:product_id;type:uuid;not null"`
	Name               string    `gorm:"column:name;not null"`
	UnitPriceCents     int64     `gorm:"column:unit_price_cents;not null"`
	OriginalPriceCents int64     `gorm:"column:original_price_cents;not null"`
	Qty                int       `gorm:"column:qty;not null"`
	SubtotalCents      int64     `gorm:"column:subtotal_cents;not null"`
	CreatedAt          time.Time `gorm:"column:created_at;autoCreateTime"`
}

func (i *OrderItem) BeforeCreate(*gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}
