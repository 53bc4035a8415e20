package payloads

import (
	"time"

	"github.com/google/uuid"

	"github.com/bazario/marketplace-backend/pkg/enums"
)

// OrderCreatedEvent signals a newly placed order with its committed totals.
type OrderCreatedEvent struct {
	OrderID        uuid.UUID `json:"order_id"`
	OrderNumber    string    `json:"order_number"`
	CustomerID     uuid.UUID `json:"customer_id"`
	TotalCents     int64     `json:"total_cents"`
	ItemCount      int       `json:"item_count"`
	DeliveryMethod string    `json:"delivery_method"`
}

// OrderStatusChangedEvent is emitted on every lifecycle transition.
type OrderStatusChangedEvent struct {
	OrderID     uuid.UUID         `json:"order_id"`
	OrderNumber string            `json:"order_number"`
	CustomerID  uuid.UUID         `json:"customer_id"`
	FromStatus  enums.OrderStatus `json:"from_status"`
	ToStatus    enums.OrderStatus `json:"to_status"`
	Actor       string            `json:"actor"`
	ChangedAt   time.Time         `json:"changed_at"`
}

// OrderCancelledEvent is emitted when a pre-shipment order is cancelled
// and its stock restored.
type OrderCancelledEvent struct {
	OrderID     uuid.UUID `json:"order_id"`
	OrderNumber string    `json:"order_number"`
	CustomerID  uuid.UUID `json:"customer_id"`
	CancelledBy string    `json:"cancelled_by"`
	Reason      string    `json:"reason,omitempty"`
	CancelledAt time.Time `json:"cancelled_at"`
}

// PaymentUpdatedEvent reports a payment status change from the gateway.
type PaymentUpdatedEvent struct {
	OrderID         uuid.UUID           `json:"order_id"`
	OrderNumber     string              `json:"order_number"`
	PaymentStatus   enums.PaymentStatus `json:"payment_status"`
	PaidAmountCents int64               `json:"paid_amount_cents"`
	TransactionRef  string              `json:"transaction_ref,omitempty"`
}
