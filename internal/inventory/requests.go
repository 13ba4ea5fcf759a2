package inventory

import "time"

// ItemCreateRequest is the payload for creating an inventory item. Unit cost
// comes in as major units and is converted to cents at the boundary.
type ItemCreateRequest struct {
	Name         string     `json:"name"`
	Category     string     `json:"category"`
	Quantity     float64    `json:"quantity"`
	Unit         string     `json:"unit"`
	ReorderLevel float64    `json:"reorder_level"`
	UnitCost     float64    `json:"unit_cost"`
	Supplier     string     `json:"supplier"`
	Location     string     `json:"location"`
	ExpiresAt    *time.Time `json:"expires_at"`
}

// ItemUpdateRequest is the payload for partial item updates.
type ItemUpdateRequest struct {
	Name         string     `json:"name"`
	Category     string     `json:"category"`
	Quantity     *float64   `json:"quantity"`
	Unit         string     `json:"unit"`
	ReorderLevel *float64   `json:"reorder_level"`
	UnitCost     *float64   `json:"unit_cost"`
	Supplier     *string    `json:"supplier"`
	Location     *string    `json:"location"`
	ExpiresAt    *time.Time `json:"expires_at"`
}

// StockAdjustRequest applies a signed delta to an item's quantity.
type StockAdjustRequest struct {
	Delta  float64 `json:"delta"`
	Reason string  `json:"reason"`
}
