package kitchen

import (
	"context"
	"testing"

	"github.com/google/uuid"

	"github.com/brigadeclub/brigade/pkg/enums/stationtype"
	"github.com/brigadeclub/brigade/pkg/fail"
)

func newTestStation() *Station {
	station := NewStation()
	station.Name = "Grill 1"
	station.Type = stationtype.Types.Grill.Code()
	station.Capacity = 2
	station.BeforeCreate()
	return station
}

func TestStationAtCapacity(t *testing.T) {
	station := newTestStation()

	if station.AtCapacity() {
		t.Error("empty station should not be at capacity")
	}

	station.AddOrder(uuid.New())
	station.AddOrder(uuid.New())
	if !station.AtCapacity() {
		t.Error("station with workload == capacity should be at capacity")
	}

	// capacity is queryable, not enforced: a third order still lands
	extra := uuid.New()
	station.AddOrder(extra)
	if station.Workload != 3 {
		t.Errorf("Workload = %d, want 3", station.Workload)
	}
	if !station.AtCapacity() {
		t.Error("overloaded station should report at capacity")
	}
}

func TestStationAddOrderIdempotent(t *testing.T) {
	station := newTestStation()
	orderID := uuid.New()

	station.AddOrder(orderID)
	station.AddOrder(orderID)

	if station.Workload != 1 || len(station.CurrentOrders) != 1 {
		t.Errorf("duplicate AddOrder changed workload: %d", station.Workload)
	}
}

func TestStationRemoveOrder(t *testing.T) {
	station := newTestStation()
	orderID := uuid.New()
	other := uuid.New()

	station.AddOrder(orderID)
	station.AddOrder(other)
	station.RemoveOrder(orderID)

	if station.Workload != 1 {
		t.Errorf("Workload = %d, want 1", station.Workload)
	}
	if station.CurrentOrders[0] != other {
		t.Error("wrong order removed")
	}

	// removing an unknown id is a no-op
	station.RemoveOrder(uuid.New())
	if station.Workload != 1 {
		t.Errorf("Workload = %d after removing unknown id, want 1", station.Workload)
	}
}

func TestStationStaffAssignment(t *testing.T) {
	station := newTestStation()
	staffID := uuid.New()

	station.AssignStaff(staffID)
	station.AssignStaff(staffID)
	if len(station.AssignedStaff) != 1 {
		t.Errorf("AssignedStaff = %d, want 1", len(station.AssignedStaff))
	}

	station.UnassignStaff(staffID)
	if len(station.AssignedStaff) != 0 {
		t.Errorf("AssignedStaff = %d after unassign, want 0", len(station.AssignedStaff))
	}
}

func TestFakeStationRepoContract(t *testing.T) {
	repo := NewFakeStationRepo()
	ctx := context.Background()

	station := newTestStation()
	if err := repo.Create(ctx, station); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	if err := repo.Create(ctx, station); !fail.Is(err, fail.Conflict) {
		t.Errorf("duplicate Create() kind = %v, want Conflict", fail.KindOf(err))
	}

	got, err := repo.Get(ctx, station.ID)
	if err != nil || got.Name != station.Name {
		t.Fatalf("Get() = %v, err %v", got, err)
	}

	byType, err := repo.ListByType(ctx, stationtype.Types.Grill.Code())
	if err != nil || len(byType) != 1 {
		t.Errorf("ListByType() = %d stations, want 1", len(byType))
	}
	empty, err := repo.ListByType(ctx, stationtype.Types.Pastry.Code())
	if err != nil || len(empty) != 0 {
		t.Errorf("ListByType() on empty type should return empty slice")
	}

	if err := repo.Delete(ctx, station.ID); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if _, err := repo.Get(ctx, station.ID); !fail.Is(err, fail.NotFound) {
		t.Errorf("Get() after Delete() kind = %v, want NotFound", fail.KindOf(err))
	}
	if err := repo.Save(ctx, station); !fail.Is(err, fail.NotFound) {
		t.Errorf("Save() on deleted kind = %v, want NotFound", fail.KindOf(err))
	}
}

// Workload updates are read-modify-write with no concurrency token; the last
// write wins and earlier increments can be lost. Accepted behavior.
func TestFakeStationRepoWorkloadLastWriteWins(t *testing.T) {
	repo := NewFakeStationRepo()
	ctx := context.Background()

	station := newTestStation()
	if err := repo.Create(ctx, station); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	first, _ := repo.Get(ctx, station.ID)
	second, _ := repo.Get(ctx, station.ID)

	first.AddOrder(uuid.New())
	second.AddOrder(uuid.New())

	if err := repo.Save(ctx, first); err != nil {
		t.Fatalf("Save(first) error = %v", err)
	}
	if err := repo.Save(ctx, second); err != nil {
		t.Fatalf("Save(second) error = %v", err)
	}

	got, _ := repo.Get(ctx, station.ID)
	if got.Workload != 1 {
		t.Errorf("Workload = %d; the second snapshot should have overwritten the first", got.Workload)
	}
}
