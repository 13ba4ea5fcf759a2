package kitchen

import (
	"github.com/google/uuid"
)

type StationCreateRequest struct {
	Name     string `json:"name"`
	Type     string `json:"type"`
	Capacity int    `json:"capacity"`
}

type StationUpdateRequest struct {
	Name     string `json:"name,omitempty"`
	Type     string `json:"type,omitempty"`
	Capacity *int   `json:"capacity,omitempty"`
	Active   *bool  `json:"active,omitempty"`
}

type StationOrderRequest struct {
	OrderID uuid.UUID `json:"order_id"`
}

type StationStaffRequest struct {
	StaffID uuid.UUID `json:"staff_id"`
}

type TimerCreateRequest struct {
	Label       string     `json:"label"`
	Kind        string     `json:"kind,omitempty"`
	StationID   *uuid.UUID `json:"station_id,omitempty"`
	DurationSec int        `json:"duration_sec"`
}
