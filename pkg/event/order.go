package event

import "time"

const (
	OrdersTopic              = "orders.status"
	EventOrderCreated        = "order.created"
	EventOrderStatusChanged  = "order.status_changed"
	EventOrderStationChanged = "order.station_changed"
)

// OrderEvent represents an order lifecycle event published to NATS.
// The kitchen board and analytics consumers rebuild their views from it.
type OrderEvent struct {
	EventType      string    `json:"event_type"`
	OccurredAt     time.Time `json:"occurred_at"`
	OrderID        string    `json:"order_id"`
	CustomerID     string    `json:"customer_id,omitempty"`
	Status         string    `json:"status"`
	PreviousStatus string    `json:"previous_status,omitempty"`
	Priority       int       `json:"priority,omitempty"`
	StationID      string    `json:"station_id,omitempty"`
	TableNumber    string    `json:"table_number,omitempty"`
}
