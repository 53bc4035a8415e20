package models

import (
	"time"

	"github.com/google/uuid"
)

// InventoryItem tracks the per-product stock and purchase counters. Both
// columns move only through inventory ledger statements; stock_qty never
// goes below zero and purchase_count never exceeds what was sold.
type InventoryItem struct {
	ProductID     uuid.UUID `gorm:"column:product_id;type:uuid;primaryKey"`
	StockQty      int       `gorm:"column:stock_qty;not null;default:0"`
	PurchaseCount int       `gorm:"column:purchase_count;not null;default:0"`
	UpdatedAt     time.Time `gorm:"column:updated_at;autoUpdateTime"`
}
