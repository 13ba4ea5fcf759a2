package orders

import (
	"time"

	"github.com/aquamarinepk/aqm"
	"github.com/google/uuid"

	"github.com/brigadeclub/brigade/pkg/enums/orderstatus"
	"github.com/brigadeclub/brigade/pkg/money"
)

type OrderID = uuid.UUID
type CustomerID = uuid.UUID
type StationID = uuid.UUID
type RecipeID = uuid.UUID

// Order is the aggregate root for the Orders domain.
type Order struct {
	ID          OrderID     `json:"id" bson:"_id"`
	CustomerID  CustomerID  `json:"customer_id" bson:"customer_id"`
	TableNumber string      `json:"table_number,omitempty" bson:"table_number,omitempty"`
	Items       []OrderItem `json:"items" bson:"items"`
	Status      string      `json:"status" bson:"status"`
	Priority    int         `json:"priority" bson:"priority"`
	StationID   *StationID  `json:"station_id,omitempty" bson:"station_id,omitempty"`
	Notes       string      `json:"notes,omitempty" bson:"notes,omitempty"`
	CreatedAt   time.Time   `json:"created_at" bson:"created_at"`
	UpdatedAt   time.Time   `json:"updated_at" bson:"updated_at"`
	ServedAt    *time.Time  `json:"served_at,omitempty" bson:"served_at,omitempty"`
}

type OrderItem struct {
	RecipeID  RecipeID    `json:"recipe_id" bson:"recipe_id"`
	Name      string      `json:"name" bson:"name"`
	Quantity  int         `json:"quantity" bson:"quantity"`
	UnitPrice money.Money `json:"unit_price" bson:"unit_price"`
	Notes     string      `json:"notes,omitempty" bson:"notes,omitempty"`
}

func (o *Order) GetID() uuid.UUID {
	return o.ID
}

func (o *Order) ResourceType() string {
	return "order"
}

func (o *Order) SetID(id uuid.UUID) {
	o.ID = id
}

// NewOrder creates a new Order with a generated ID.
func NewOrder() *Order {
	return &Order{
		ID:     aqm.GenerateNewID(),
		Status: orderstatus.Statuses.Pending.Code(),
		Items:  []OrderItem{},
	}
}

func (o *Order) EnsureID() {
	if o.ID == uuid.Nil {
		o.ID = aqm.GenerateNewID()
	}
}

func (o *Order) BeforeCreate() {
	o.EnsureID()
	o.CreatedAt = time.Now()
	o.UpdatedAt = time.Now()
}

func (o *Order) BeforeUpdate() {
	o.UpdatedAt = time.Now()
}

// Total sums item prices by quantity.
func (o *Order) Total() money.Money {
	var total money.Money
	for _, item := range o.Items {
		total = total.Add(item.UnitPrice.MulInt(int64(item.Quantity)))
	}
	return total
}

// SetStatus records a status change. Transitions are intentionally not
// guarded: any status can follow any other, the board owns the workflow.
func (o *Order) SetStatus(status string) {
	o.Status = status
	if status == orderstatus.Statuses.Served.Code() {
		now := time.Now()
		o.ServedAt = &now
	}
	o.UpdatedAt = time.Now()
}

// AssignStation points the order at a station. Pass nil to unassign.
func (o *Order) AssignStation(stationID *StationID) {
	o.StationID = stationID
	o.UpdatedAt = time.Now()
}

func (o *Order) IsOpen() bool {
	return o.Status != orderstatus.Statuses.Completed.Code() &&
		o.Status != orderstatus.Statuses.Cancelled.Code()
}
