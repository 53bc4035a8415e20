package customers

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/bazario/marketplace-backend/pkg/db/models"
)

// Repository manages customer rows and the order aggregates maintained by
// the order engine.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	FindByID(ctx context.Context, id uuid.UUID) (*models.Customer, error)
	ApplyOrderPlaced(ctx context.Context, customerID uuid.UUID, totalCents int64) error
	ApplyOrderCancelled(ctx context.Context, customerID uuid.UUID, totalCents int64) error
}

type repository struct {
	db *gorm.DB
}

// NewRepository returns a customer repository bound to the database.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

func (r *repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Customer, error) {
	var customer models.Customer
	if err := r.db.WithContext(ctx).First(&customer, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &customer, nil
}

// ApplyOrderPlaced bumps the order aggregates when an order is created.
func (r *repository) ApplyOrderPlaced(ctx context.Context, customerID uuid.UUID, totalCents int64) error {
	return r.db.WithContext(ctx).Model(&models.Customer{}).
		Where("id = ?", customerID).
		Updates(map[string]any{
			"total_orders":      gorm.Expr("total_orders + 1"),
			"total_spent_cents": gorm.Expr("total_spent_cents + ?", totalCents),
		}).Error
}

// ApplyOrderCancelled rolls the aggregates back, clamped at zero.
func (r *repository) ApplyOrderCancelled(ctx context.Context, customerID uuid.UUID, totalCents int64) error {
	return r.db.WithContext(ctx).Model(&models.Customer{}).
		Where("id = ?", customerID).
		Updates(map[string]any{
			"total_orders":      gorm.Expr("CASE WHEN total_orders > 0 THEN total_orders - 1 ELSE 0 END"),
			"total_spent_cents": gorm.Expr("CASE WHEN total_spent_cents >= ? THEN total_spent_cents - ? ELSE 0 END", totalCents, totalCents),
		}).Error
}
