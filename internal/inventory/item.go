package inventory

import (
	"time"

	"github.com/google/uuid"

	"github.com/brigadeclub/brigade/pkg/money"
)

type ItemID = uuid.UUID

// Item is a stocked ingredient or supply tracked by the kitchen.
type Item struct {
	ID           ItemID      `json:"id" bson:"_id"`
	Name         string      `json:"name" bson:"name"`
	Category     string      `json:"category" bson:"category"`
	Quantity     float64     `json:"quantity" bson:"quantity"`
	Unit         string      `json:"unit" bson:"unit"`
	ReorderLevel float64     `json:"reorder_level" bson:"reorder_level"`
	UnitCost     money.Money `json:"unit_cost" bson:"unit_cost"`
	Supplier     string      `json:"supplier,omitempty" bson:"supplier,omitempty"`
	Location     string      `json:"location,omitempty" bson:"location,omitempty"`
	ExpiresAt    *time.Time  `json:"expires_at,omitempty" bson:"expires_at,omitempty"`
	CreatedAt    time.Time   `json:"created_at" bson:"created_at"`
	UpdatedAt    time.Time   `json:"updated_at" bson:"updated_at"`
}

func NewItem() *Item {
	return &Item{
		ID: uuid.New(),
	}
}

func (i *Item) EnsureID() {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
}

func (i *Item) GetID() uuid.UUID {
	return i.ID
}

func (i *Item) SetID(id uuid.UUID) {
	i.ID = id
}

func (i *Item) ResourceType() string {
	return "inventory/item"
}

// IsLowStock reports whether the item is at or below its reorder level.
func (i *Item) IsLowStock() bool {
	return i.Quantity <= i.ReorderLevel
}

// ExpiresBefore reports whether the item expires strictly before the cutoff.
// Items without an expiration never match.
func (i *Item) ExpiresBefore(cutoff time.Time) bool {
	return i.ExpiresAt != nil && i.ExpiresAt.Before(cutoff)
}

// Adjust applies a signed quantity delta, clamping at zero.
func (i *Item) Adjust(delta float64) {
	i.Quantity += delta
	if i.Quantity < 0 {
		i.Quantity = 0
	}
}

func (i *Item) BeforeCreate() {
	i.EnsureID()
	now := time.Now()
	i.CreatedAt = now
	i.UpdatedAt = now
}

func (i *Item) BeforeUpdate() {
	i.UpdatedAt = time.Now()
}
