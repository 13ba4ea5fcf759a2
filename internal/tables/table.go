package tables

import (
	"time"

	"github.com/google/uuid"

	"github.com/brigadeclub/brigade/pkg/enums/tablestatus"
	"github.com/brigadeclub/brigade/pkg/fail"
)

type TableID = uuid.UUID

// Table is a seatable unit in the dining room. Number is unique across the
// floor; both store paths enforce it on create.
type Table struct {
	ID         TableID    `json:"id" bson:"_id"`
	Number     string     `json:"number" bson:"number"`
	Capacity   int        `json:"capacity" bson:"capacity"`
	Status     string     `json:"status" bson:"status"`
	Section    string     `json:"section,omitempty" bson:"section,omitempty"`
	ServerID   *uuid.UUID `json:"server_id,omitempty" bson:"server_id,omitempty"`
	PartySize  int        `json:"party_size,omitempty" bson:"party_size,omitempty"`
	OccupiedAt *time.Time `json:"occupied_at,omitempty" bson:"occupied_at,omitempty"`
	CreatedAt  time.Time  `json:"created_at" bson:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at" bson:"updated_at"`
}

func NewTable() *Table {
	return &Table{
		ID:     uuid.New(),
		Status: tablestatus.Statuses.Available.Code(),
	}
}

func (t *Table) EnsureID() {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
}

func (t *Table) GetID() uuid.UUID {
	return t.ID
}

func (t *Table) SetID(id uuid.UUID) {
	t.ID = id
}

func (t *Table) ResourceType() string {
	return "table"
}

// Open seats a party at the table. The party must fit; the same check runs
// regardless of which store backs the repo.
func (t *Table) Open(partySize int, serverID *uuid.UUID) error {
	if partySize <= 0 {
		return fail.New(fail.Validation, "party size must be positive")
	}
	if partySize > t.Capacity {
		return fail.Newf(fail.Validation, "party of %d exceeds table capacity %d", partySize, t.Capacity)
	}

	now := time.Now()
	t.Status = tablestatus.Statuses.Occupied.Code()
	t.PartySize = partySize
	t.ServerID = serverID
	t.OccupiedAt = &now
	return nil
}

// Close frees the table and sends it to cleaning.
func (t *Table) Close() {
	t.Status = tablestatus.Statuses.Cleaning.Code()
	t.PartySize = 0
	t.ServerID = nil
	t.OccupiedAt = nil
}

// Reserve holds the table for an upcoming party. Capacity is checked the
// same way Open checks it.
func (t *Table) Reserve(partySize int) error {
	if partySize <= 0 {
		return fail.New(fail.Validation, "party size must be positive")
	}
	if partySize > t.Capacity {
		return fail.Newf(fail.Validation, "party of %d exceeds table capacity %d", partySize, t.Capacity)
	}

	t.Status = tablestatus.Statuses.Reserved.Code()
	t.PartySize = partySize
	return nil
}

// MakeAvailable returns the table to the floor.
func (t *Table) MakeAvailable() {
	t.Status = tablestatus.Statuses.Available.Code()
	t.PartySize = 0
	t.ServerID = nil
	t.OccupiedAt = nil
}

func (t *Table) BeforeCreate() {
	t.EnsureID()
	now := time.Now()
	t.CreatedAt = now
	t.UpdatedAt = now
	if t.Status == "" {
		t.Status = tablestatus.Statuses.Available.Code()
	}
}

func (t *Table) BeforeUpdate() {
	t.UpdatedAt = time.Now()
}
