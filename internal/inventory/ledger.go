package inventory

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/multierr"
	"gorm.io/gorm"

	pkgerrors "github.com/bazario/marketplace-backend/pkg/errors"
)

// Reservation is the handle returned by a successful Reserve. Holding it is
// the only way to release or commit the reserved units. Each handle can be
// released at most once.
type Reservation struct {
	ProductID uuid.UUID
	Qty       int

	released bool
}

// Ledger owns all stock mutations. Every operation is a single conditional
// UPDATE, so each reservation is durable on its own and two concurrent
// buyers can never reserve the same last unit.
type Ledger struct {
	db *gorm.DB
}

// NewLedger binds the ledger to a database handle.
func NewLedger(db *gorm.DB) (*Ledger, error) {
	if db == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "database handle required")
	}
	return &Ledger{db: db}, nil
}

// WithTx returns a ledger bound to the given transaction. Used where a
// stock change must commit atomically with an order row change, such as
// restocking inside the cancellation transaction.
func (l *Ledger) WithTx(tx *gorm.DB) *Ledger {
	if tx == nil {
		return l
	}
	return &Ledger{db: tx}
}

// Reserve decrements stock if and only if enough units remain. The check
// and decrement happen in one statement; a zero-row update means another
// buyer got there first.
func (l *Ledger) Reserve(ctx context.Context, productID uuid.UUID, qty int) (*Reservation, error) {
	if productID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product id required")
	}
	if qty <= 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "reserve quantity must be positive")
	}

	res := l.db.WithContext(ctx).Exec(`
		UPDATE inventory_items
		SET stock_qty = stock_qty - ?,
			updated_at = CURRENT_TIMESTAMP
		WHERE product_id = ? AND stock_qty >= ?
	`, qty, productID, qty)
	if res.Error != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, res.Error, "reserve inventory")
	}
	if res.RowsAffected == 0 {
		available, err := l.StockQty(ctx, productID)
		if err != nil {
			return nil, err
		}
		return nil, pkgerrors.New(pkgerrors.CodeConflict, "insufficient stock").
			WithDetails(map[string]any{
				"product_id": productID.String(),
				"requested":  qty,
				"available":  available,
			})
	}
	return &Reservation{ProductID: productID, Qty: qty}, nil
}

// Release returns previously reserved units to stock. Used when a later
// step of order placement fails and the reservation must be undone.
func (l *Ledger) Release(ctx context.Context, reservation *Reservation) error {
	if reservation == nil || reservation.Qty <= 0 {
		return nil
	}
	if reservation.released {
		return pkgerrors.New(pkgerrors.CodeConflict, "reservation already released").
			WithDetails(map[string]any{"product_id": reservation.ProductID.String()})
	}

	res := l.db.WithContext(ctx).Exec(`
		UPDATE inventory_items
		SET stock_qty = stock_qty + ?,
			updated_at = CURRENT_TIMESTAMP
		WHERE product_id = ?
	`, reservation.Qty, reservation.ProductID)
	if res.Error != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, res.Error, "release inventory")
	}
	if res.RowsAffected == 0 {
		return pkgerrors.New(pkgerrors.CodeNotFound, "inventory item not found").
			WithDetails(map[string]any{"product_id": reservation.ProductID.String()})
	}
	reservation.released = true
	return nil
}

// ReleaseAll releases reservations in reverse acquisition order. Failures
// do not stop the sweep; they are aggregated so every releasable unit is
// returned before the caller sees the error.
func (l *Ledger) ReleaseAll(ctx context.Context, reservations []*Reservation) error {
	var err error
	for i := len(reservations) - 1; i >= 0; i-- {
		err = multierr.Append(err, l.Release(ctx, reservations[i]))
	}
	return err
}

// Commit finalizes a reservation by bumping the purchase counter. Stock was
// already decremented at reserve time.
func (l *Ledger) Commit(ctx context.Context, reservation *Reservation) error {
	if reservation == nil || reservation.Qty <= 0 {
		return nil
	}

	res := l.db.WithContext(ctx).Exec(`
		UPDATE inventory_items
		SET purchase_count = purchase_count + ?,
			updated_at = CURRENT_TIMESTAMP
		WHERE product_id = ?
	`, reservation.Qty, reservation.ProductID)
	if res.Error != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, res.Error, "commit reservation")
	}
	if res.RowsAffected == 0 {
		return pkgerrors.New(pkgerrors.CodeNotFound, "inventory item not found").
			WithDetails(map[string]any{"product_id": reservation.ProductID.String()})
	}
	return nil
}

// Restock returns sold units to stock and rolls back the purchase counter,
// clamped at zero. Run inside the cancellation transaction via WithTx so
// the stock change commits with the status change.
func (l *Ledger) Restock(ctx context.Context, productID uuid.UUID, qty int) error {
	if productID == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "product id required")
	}
	if qty <= 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "restock quantity must be positive")
	}

	res := l.db.WithContext(ctx).Exec(`
		UPDATE inventory_items
		SET stock_qty = stock_qty + ?,
			purchase_count = CASE WHEN purchase_count >= ? THEN purchase_count - ? ELSE 0 END,
			updated_at = CURRENT_TIMESTAMP
		WHERE product_id = ?
	`, qty, qty, qty, productID)
	if res.Error != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, res.Error, "restock inventory")
	}
	if res.RowsAffected == 0 {
		return pkgerrors.New(pkgerrors.CodeNotFound, "inventory item not found").
			WithDetails(map[string]any{"product_id": productID.String()})
	}
	return nil
}

// StockQty reads the current stock level. Reads are advisory; only the
// conditional updates above decide whether a sale can proceed.
func (l *Ledger) StockQty(ctx context.Context, productID uuid.UUID) (int, error) {
	var qty int
	err := l.db.WithContext(ctx).
		Raw(`SELECT stock_qty FROM inventory_items WHERE product_id = ?`, productID).
		Scan(&qty).Error
	if err != nil {
		return 0, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "read stock")
	}
	return qty, nil
}
