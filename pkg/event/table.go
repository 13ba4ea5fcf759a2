package event

import "time"

const (
	TablesTopic             = "tables.status"
	EventTableStatusChanged = "table.status_changed"
)

// TableStatusEvent captures the minimal information order-taking clients need
// to reason about a table's availability.
type TableStatusEvent struct {
	EventType      string    `json:"event_type"`
	OccurredAt     time.Time `json:"occurred_at"`
	TableID        string    `json:"table_id"`
	Number         string    `json:"number"`
	Status         string    `json:"status"`
	PreviousStatus string    `json:"previous_status,omitempty"`
	Section        string    `json:"section,omitempty"`
	ServerID       string    `json:"server_id,omitempty"`
}
