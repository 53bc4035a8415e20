package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/bazario/marketplace-backend/pkg/enums"
	"github.com/bazario/marketplace-backend/pkg/types"
)

// Order is the aggregate root for a customer purchase. Orders are never
// physically deleted; cancelled and returned orders stay as the audit trail.
type Order struct {
	ID             uuid.UUID            `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	OrderNumber    string               `gorm:"column:order_number;not null;uniqueIndex:ux_orders_order_number"`
	CustomerID     uuid.UUID            `gorm:"column:customer_id;type:uuid;not null;index"`
	Status         enums.OrderStatus    `gorm:"column:status;type:order_status;not null;default:'pending'"`
	DeliveryMethod enums.DeliveryMethod `gorm:"column:delivery_method;type:delivery_method;not null"`

	ShippingAddress types.Address `gorm:"column:shipping_address;type:jsonb;serializer:json"`

	SubtotalCents int64 `gorm:"column:subtotal_cents;not null"`
	ShippingCents int64 `gorm:"column:shipping_cents;not null;default:0"`
	TaxCents      int64 `gorm:"column:tax_cents;not null;default:0"`
	DiscountCents int64 `gorm:"column:discount_cents;not null;default:0"`
	TotalCents    int64 `gorm:"column:total_cents;not null"`

	PaymentMethod   enums.PaymentMethod `gorm:"column:payment_method;type:payment_method;not null"`
	PaymentStatus   enums.PaymentStatus `gorm:"column:payment_status;type:payment_status;not null;default:'unpaid'"`
	PaidAmountCents int64               `gorm:"column:paid_amount_cents;not null;default:0"`

	CancelReason *string    `gorm:"column:cancel_reason"`
	CancelledBy  *string    `gorm:"column:cancelled_by"`
	CancelledAt  *time.Time `gorm:"column:cancelled_at"`
	DeliveredAt  *time.Time `gorm:"column:delivered_at"`

	Items         []OrderItem          `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	StatusHistory []OrderStatusHistory `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`

	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

func (o *Order) BeforeCreate(*gorm.DB) error {
	if o.ID == uuid.Nil {
		o.ID = uuid.New()
	}
	return nil
}
