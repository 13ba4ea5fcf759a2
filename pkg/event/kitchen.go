package event

import "time"

const (
	StationsTopic              = "kitchen.stations"
	EventStationWorkloadChange = "kitchen.station.workload_changed"

	TimersTopic             = "kitchen.timers"
	EventTimerStatusChanged = "kitchen.timer.status_changed"
)

type StationWorkloadEvent struct {
	EventType  string    `json:"event_type"`
	OccurredAt time.Time `json:"occurred_at"`
	StationID  string    `json:"station_id"`
	Workload   int       `json:"workload"`
	Capacity   int       `json:"capacity"`
	AtCapacity bool      `json:"at_capacity"`
	OrderID    string    `json:"order_id,omitempty"`
}

type TimerEvent struct {
	EventType      string    `json:"event_type"`
	OccurredAt     time.Time `json:"occurred_at"`
	TimerID        string    `json:"timer_id"`
	StationID      string    `json:"station_id,omitempty"`
	Status         string    `json:"status"`
	PreviousStatus string    `json:"previous_status,omitempty"`
}
