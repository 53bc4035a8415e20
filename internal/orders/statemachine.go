package orders

import (
	"github.com/bazario/marketplace-backend/pkg/enums"
	pkgerrors "github.com/bazario/marketplace-backend/pkg/errors"
)

// transitions is the full lifecycle graph. Fulfillment moves strictly
// forward; cancellation is only possible before packing starts; returns
// only after delivery. Cancelled and returned are terminal.
var transitions = map[enums.OrderStatus][]enums.OrderStatus{
	enums.OrderStatusPending:        {enums.OrderStatusConfirmed, enums.OrderStatusCancelled},
	enums.OrderStatusConfirmed:      {enums.OrderStatusProcessing, enums.OrderStatusCancelled},
	enums.OrderStatusProcessing:     {enums.OrderStatusPacked, enums.OrderStatusCancelled},
	enums.OrderStatusPacked:         {enums.OrderStatusShipped},
	enums.OrderStatusShipped:        {enums.OrderStatusOutForDelivery},
	enums.OrderStatusOutForDelivery: {enums.OrderStatusDelivered},
	enums.OrderStatusDelivered:      {enums.OrderStatusReturned},
	enums.OrderStatusCancelled:      {},
	enums.OrderStatusReturned:       {},
}

// cancellableStatuses are the states an order can still be cancelled from.
var cancellableStatuses = []enums.OrderStatus{
	enums.OrderStatusPending,
	enums.OrderStatusConfirmed,
	enums.OrderStatusProcessing,
}

// CanTransition reports whether from -> to is a legal lifecycle edge.
func CanTransition(from, to enums.OrderStatus) bool {
	for _, allowed := range transitions[from] {
		if allowed == to {
			return true
		}
	}
	return false
}

// ValidateTransition returns a typed state-conflict error on illegal edges.
func ValidateTransition(from, to enums.OrderStatus) error {
	if !from.IsValid() || !to.IsValid() {
		return pkgerrors.New(pkgerrors.CodeValidation, "unknown order status")
	}
	if !CanTransition(from, to) {
		return pkgerrors.New(pkgerrors.CodeStateConflict, "illegal status transition").
			WithDetails(map[string]any{
				"from": from.String(),
				"to":   to.String(),
			})
	}
	return nil
}

// IsCancellable reports whether an order in the given status may still be
// cancelled.
func IsCancellable(status enums.OrderStatus) bool {
	for _, candidate := range cancellableStatuses {
		if candidate == status {
			return true
		}
	}
	return false
}
