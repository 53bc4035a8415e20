package orders

import (
	"time"

	"github.com/google/uuid"

	"github.com/bazario/marketplace-backend/pkg/enums"
	"github.com/bazario/marketplace-backend/pkg/types"
)

// CreateOrderItemInput is one requested line at order placement.
type CreateOrderItemInput struct {
	ProductID uuid.UUID
	Qty       int
}

// CreateOrderInput carries everything needed to place an order.
type CreateOrderInput struct {
	CustomerID      uuid.UUID
	Items           []CreateOrderItemInput
	DeliveryMethod  enums.DeliveryMethod
	PaymentMethod   enums.PaymentMethod
	ShippingAddress types.Address
	DiscountCents   int64
	ActorRole       enums.ActorRole
}

// CancelOrderInput identifies the order to cancel and who is cancelling.
type CancelOrderInput struct {
	OrderID    uuid.UUID
	CustomerID uuid.UUID
	Reason     string
	ActorRole  enums.ActorRole
}

// UpdateStatusInput carries an admin lifecycle transition.
type UpdateStatusInput struct {
	OrderID   uuid.UUID
	ToStatus  enums.OrderStatus
	Note      *string
	ActorRole enums.ActorRole
}

// PaymentUpdateInput applies a gateway payment result to an order.
type PaymentUpdateInput struct {
	OrderNumber     string
	PaymentStatus   enums.PaymentStatus
	PaidAmountCents int64
	TransactionRef  string
}

// ListFilters describe the inputs supported by the customer order list.
type ListFilters struct {
	Status   *enums.OrderStatus
	DateFrom *time.Time
	DateTo   *time.Time
}

// OrderSummary is one row in the customer order list.
type OrderSummary struct {
	ID             uuid.UUID            `json:"id"`
	OrderNumber    string               `json:"order_number"`
	Status         enums.OrderStatus    `json:"status"`
	DeliveryMethod enums.DeliveryMethod `json:"delivery_method"`
	TotalCents     int64                `json:"total_cents"`
	TotalItems     int                  `json:"total_items"`
	PaymentStatus  enums.PaymentStatus  `json:"payment_status"`
	CreatedAt      time.Time            `json:"created_at"`
}

// OrderList wraps the paginated orders plus the next page cursor.
type OrderList struct {
	Orders     []OrderSummary `json:"orders"`
	NextCursor string         `json:"next_cursor,omitempty"`
}

// StatusHistoryEntry is one step in the order's public timeline.
type StatusHistoryEntry struct {
	Status    enums.OrderStatus `json:"status"`
	Actor     string            `json:"actor"`
	Note      *string           `json:"note,omitempty"`
	CreatedAt time.Time         `json:"created_at"`
}

// TrackingView is the public, PII-free view returned by order tracking.
type TrackingView struct {
	OrderNumber    string               `json:"order_number"`
	Status         enums.OrderStatus    `json:"status"`
	DeliveryMethod enums.DeliveryMethod `json:"delivery_method"`
	ItemCount      int                  `json:"item_count"`
	PlacedAt       time.Time            `json:"placed_at"`
	DeliveredAt    *time.Time           `json:"delivered_at,omitempty"`
	Timeline       []StatusHistoryEntry `json:"timeline"`
}
