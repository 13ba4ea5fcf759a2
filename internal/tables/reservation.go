package tables

import (
	"time"

	"github.com/google/uuid"
)

type ReservationID = uuid.UUID

// Reservation statuses.
const (
	ReservationBooked    = "booked"
	ReservationSeated    = "seated"
	ReservationCancelled = "cancelled"
	ReservationNoShow    = "no_show"
)

// Reservation is a booking for a future party, optionally pinned to a table.
type Reservation struct {
	ID        ReservationID `json:"id" bson:"_id"`
	TableID   *uuid.UUID    `json:"table_id,omitempty" bson:"table_id,omitempty"`
	GuestName string        `json:"guest_name" bson:"guest_name"`
	Phone     string        `json:"phone,omitempty" bson:"phone,omitempty"`
	PartySize int           `json:"party_size" bson:"party_size"`
	At        time.Time     `json:"at" bson:"at"`
	Status    string        `json:"status" bson:"status"`
	Notes     string        `json:"notes,omitempty" bson:"notes,omitempty"`
	CreatedAt time.Time     `json:"created_at" bson:"created_at"`
	UpdatedAt time.Time     `json:"updated_at" bson:"updated_at"`
}

func NewReservation() *Reservation {
	return &Reservation{
		ID:     uuid.New(),
		Status: ReservationBooked,
	}
}

func (r *Reservation) EnsureID() {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
}

func (r *Reservation) GetID() uuid.UUID {
	return r.ID
}

func (r *Reservation) SetID(id uuid.UUID) {
	r.ID = id
}

func (r *Reservation) ResourceType() string {
	return "reservation"
}

func (r *Reservation) BeforeCreate() {
	r.EnsureID()
	now := time.Now()
	r.CreatedAt = now
	r.UpdatedAt = now
	if r.Status == "" {
		r.Status = ReservationBooked
	}
}

func (r *Reservation) BeforeUpdate() {
	r.UpdatedAt = time.Now()
}
