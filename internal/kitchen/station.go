package kitchen

import (
	"time"

	"github.com/aquamarinepk/aqm"
	"github.com/google/uuid"
)

type StationID = uuid.UUID
type OrderID = uuid.UUID
type StaffID = uuid.UUID

// Station is a production station on the kitchen line.
type Station struct {
	ID            StationID `json:"id" bson:"_id"`
	Name          string    `json:"name" bson:"name"`
	Type          string    `json:"type" bson:"type"`
	Capacity      int       `json:"capacity" bson:"capacity"`
	Workload      int       `json:"workload" bson:"workload"`
	AssignedStaff []StaffID `json:"assigned_staff" bson:"assigned_staff"`
	CurrentOrders []OrderID `json:"current_orders" bson:"current_orders"`
	Active        bool      `json:"active" bson:"active"`
	CreatedAt     time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt     time.Time `json:"updated_at" bson:"updated_at"`
}

func (s *Station) GetID() uuid.UUID {
	return s.ID
}

func (s *Station) ResourceType() string {
	return "station"
}

func (s *Station) SetID(id uuid.UUID) {
	s.ID = id
}

func NewStation() *Station {
	return &Station{
		ID:            aqm.GenerateNewID(),
		Active:        true,
		AssignedStaff: []StaffID{},
		CurrentOrders: []OrderID{},
	}
}

func (s *Station) EnsureID() {
	if s.ID == uuid.Nil {
		s.ID = aqm.GenerateNewID()
	}
}

func (s *Station) BeforeCreate() {
	s.EnsureID()
	s.CreatedAt = time.Now()
	s.UpdatedAt = time.Now()
}

func (s *Station) BeforeUpdate() {
	s.UpdatedAt = time.Now()
}

// AtCapacity reports whether the station's workload has reached its capacity.
// It is a queryable fact, not a constraint: AddOrder does not refuse work.
func (s *Station) AtCapacity() bool {
	return s.Workload >= s.Capacity
}

// AddOrder records an order on the station. Adding the same order twice is a
// no-op.
func (s *Station) AddOrder(orderID OrderID) {
	for _, id := range s.CurrentOrders {
		if id == orderID {
			return
		}
	}
	s.CurrentOrders = append(s.CurrentOrders, orderID)
	s.Workload = len(s.CurrentOrders)
	s.UpdatedAt = time.Now()
}

// RemoveOrder drops an order from the station. Unknown ids are a no-op.
func (s *Station) RemoveOrder(orderID OrderID) {
	for i, id := range s.CurrentOrders {
		if id == orderID {
			s.CurrentOrders = append(s.CurrentOrders[:i], s.CurrentOrders[i+1:]...)
			break
		}
	}
	s.Workload = len(s.CurrentOrders)
	s.UpdatedAt = time.Now()
}

func (s *Station) AssignStaff(staffID StaffID) {
	for _, id := range s.AssignedStaff {
		if id == staffID {
			return
		}
	}
	s.AssignedStaff = append(s.AssignedStaff, staffID)
	s.UpdatedAt = time.Now()
}

func (s *Station) UnassignStaff(staffID StaffID) {
	for i, id := range s.AssignedStaff {
		if id == staffID {
			s.AssignedStaff = append(s.AssignedStaff[:i], s.AssignedStaff[i+1:]...)
			break
		}
	}
	s.UpdatedAt = time.Now()
}
