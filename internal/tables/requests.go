package tables

import (
	"time"

	"github.com/google/uuid"
)

// TableCreateRequest is the payload for creating a table.
type TableCreateRequest struct {
	Number   string `json:"number"`
	Capacity int    `json:"capacity"`
	Section  string `json:"section"`
}

// TableUpdateRequest is the payload for partial table updates.
type TableUpdateRequest struct {
	Number   string  `json:"number"`
	Capacity *int    `json:"capacity"`
	Section  *string `json:"section"`
	Status   string  `json:"status"`
}

// TableOpenRequest seats a party.
type TableOpenRequest struct {
	PartySize int        `json:"party_size"`
	ServerID  *uuid.UUID `json:"server_id"`
}

// TableReserveRequest holds a table for an upcoming party.
type TableReserveRequest struct {
	PartySize int `json:"party_size"`
}

// ReservationCreateRequest is the payload for creating a reservation.
type ReservationCreateRequest struct {
	TableID   *uuid.UUID `json:"table_id"`
	GuestName string     `json:"guest_name"`
	Phone     string     `json:"phone"`
	PartySize int        `json:"party_size"`
	At        time.Time  `json:"at"`
	Notes     string     `json:"notes"`
}

// ReservationUpdateRequest is the payload for partial reservation updates.
type ReservationUpdateRequest struct {
	TableID   *uuid.UUID `json:"table_id"`
	GuestName string     `json:"guest_name"`
	Phone     *string    `json:"phone"`
	PartySize *int       `json:"party_size"`
	At        *time.Time `json:"at"`
	Status    string     `json:"status"`
	Notes     *string    `json:"notes"`
}
