package models

import "time"

// Stock statuses derived from an inventory item's counters.
const (
	StockStatusInStock    = "in_stock"
	StockStatusLowStock   = "low_stock"
	StockStatusOutOfStock = "out_of_stock"
)

// Inventory adjustment modes accepted by InventoryService.Adjust.
const (
	AdjustModeAdd    = "add"
	AdjustModeRemove = "remove"
	AdjustModeSet    = "set"
)

// InventoryItem tracks per-product stock counters. CurrentStock and
// ReservedStock are the stored state; available stock and status are derived,
// never stored.
type InventoryItem struct {
	ProductID         string    `json:"product_id" gorm:"primaryKey;type:varchar(36)"`
	CurrentStock      int       `json:"current_stock" validate:"gte=0"`
	ReservedStock     int       `json:"reserved_stock" validate:"gte=0"`
	LowStockThreshold int       `json:"low_stock_threshold" validate:"gte=0"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

// Available returns the stock not held by unfulfilled orders, floored at 0.
func (i *InventoryItem) Available() int {
	if i.CurrentStock < i.ReservedStock {
		return 0
	}
	return i.CurrentStock - i.ReservedStock
}

// Status classifies the item: out_of_stock when nothing is on hand,
// low_stock when current stock is strictly below the threshold, in_stock
// otherwise. Current stock equal to the threshold counts as in_stock.
func (i *InventoryItem) Status() string {
	switch {
	case i.CurrentStock == 0:
		return StockStatusOutOfStock
	case i.CurrentStock < i.LowStockThreshold:
		return StockStatusLowStock
	default:
		return StockStatusInStock
	}
}
