package orders

import (
	"testing"

	"github.com/bazario/marketplace-backend/pkg/enums"
	pkgerrors "github.com/bazario/marketplace-backend/pkg/errors"
)

func TestCanTransitionForwardChain(t *testing.T) {
	t.Parallel()

	chain := []enums.OrderStatus{
		enums.OrderStatusPending,
		enums.OrderStatusConfirmed,
		enums.OrderStatusProcessing,
		enums.OrderStatusPacked,
		enums.OrderStatusShipped,
		enums.OrderStatusOutForDelivery,
		enums.OrderStatusDelivered,
	}
	for i := 0; i < len(chain)-1; i++ {
		if !CanTransition(chain[i], chain[i+1]) {
			t.Fatalf("expected %s -> %s to be allowed", chain[i], chain[i+1])
		}
	}
	// no skipping steps
	if CanTransition(enums.OrderStatusPending, enums.OrderStatusShipped) {
		t.Fatal("pending -> shipped must not be allowed")
	}
	// no moving backwards
	if CanTransition(enums.OrderStatusShipped, enums.OrderStatusPacked) {
		t.Fatal("shipped -> packed must not be allowed")
	}
}

func TestCanTransitionCancellation(t *testing.T) {
	t.Parallel()

	for _, status := range []enums.OrderStatus{
		enums.OrderStatusPending,
		enums.OrderStatusConfirmed,
		enums.OrderStatusProcessing,
	} {
		if !CanTransition(status, enums.OrderStatusCancelled) {
			t.Fatalf("expected %s -> cancelled to be allowed", status)
		}
		if !IsCancellable(status) {
			t.Fatalf("expected %s to be cancellable", status)
		}
	}
	for _, status := range []enums.OrderStatus{
		enums.OrderStatusPacked,
		enums.OrderStatusShipped,
		enums.OrderStatusOutForDelivery,
		enums.OrderStatusDelivered,
	} {
		if CanTransition(status, enums.OrderStatusCancelled) {
			t.Fatalf("%s -> cancelled must not be allowed", status)
		}
		if IsCancellable(status) {
			t.Fatalf("%s must not be cancellable", status)
		}
	}
}

func TestCanTransitionReturns(t *testing.T) {
	t.Parallel()

	if !CanTransition(enums.OrderStatusDelivered, enums.OrderStatusReturned) {
		t.Fatal("delivered -> returned must be allowed")
	}
	if CanTransition(enums.OrderStatusShipped, enums.OrderStatusReturned) {
		t.Fatal("shipped -> returned must not be allowed")
	}
}

func TestTerminalStatesHaveNoEdges(t *testing.T) {
	t.Parallel()

	all := []enums.OrderStatus{
		enums.OrderStatusPending,
		enums.OrderStatusConfirmed,
		enums.OrderStatusProcessing,
		enums.OrderStatusPacked,
		enums.OrderStatusShipped,
		enums.OrderStatusOutForDelivery,
		enums.OrderStatusDelivered,
		enums.OrderStatusCancelled,
		enums.OrderStatusReturned,
	}
	for _, terminal := range []enums.OrderStatus{enums.OrderStatusCancelled, enums.OrderStatusReturned} {
		for _, to := range all {
			if CanTransition(terminal, to) {
				t.Fatalf("%s -> %s must not be allowed", terminal, to)
			}
		}
	}
}

func TestValidateTransitionErrorCodes(t *testing.T) {
	t.Parallel()

	if err := ValidateTransition(enums.OrderStatusPending, enums.OrderStatusConfirmed); err != nil {
		t.Fatalf("legal transition rejected: %v", err)
	}

	err := ValidateTransition(enums.OrderStatusDelivered, enums.OrderStatusPending)
	if err == nil {
		t.Fatal("expected state conflict")
	}
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeStateConflict {
		t.Fatalf("expected state conflict code, got %v", err)
	}

	err = ValidateTransition(enums.OrderStatus("lost"), enums.OrderStatusPending)
	if err == nil {
		t.Fatal("expected validation error")
	}
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation code, got %v", err)
	}
}
