package orders

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/brigadeclub/brigade/pkg/enums/orderstatus"
	"github.com/brigadeclub/brigade/pkg/fail"
	"github.com/brigadeclub/brigade/pkg/money"
)

func newTestOrder() *Order {
	order := NewOrder()
	order.CustomerID = uuid.New()
	order.Items = []OrderItem{
		{RecipeID: uuid.New(), Name: "Burger", Quantity: 2, UnitPrice: money.FromCents(1250)},
	}
	order.BeforeCreate()
	return order
}

func TestFakeOrderRepoRoundTrip(t *testing.T) {
	repo := NewFakeOrderRepo()
	ctx := context.Background()

	order := newTestOrder()
	if err := repo.Create(ctx, order); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	got, err := repo.Get(ctx, order.ID)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if got.ID != order.ID || got.CustomerID != order.CustomerID {
		t.Errorf("Get() returned different order: %v", got.ID)
	}
	if len(got.Items) != 1 || got.Items[0].Quantity != 2 {
		t.Errorf("items did not round trip")
	}
}

func TestFakeOrderRepoCreateDuplicate(t *testing.T) {
	repo := NewFakeOrderRepo()
	ctx := context.Background()

	order := newTestOrder()
	if err := repo.Create(ctx, order); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	err := repo.Create(ctx, order)
	if !fail.Is(err, fail.Conflict) {
		t.Errorf("duplicate Create() kind = %v, want Conflict", fail.KindOf(err))
	}
}

func TestFakeOrderRepoGetMissing(t *testing.T) {
	repo := NewFakeOrderRepo()

	_, err := repo.Get(context.Background(), uuid.New())
	if !fail.Is(err, fail.NotFound) {
		t.Errorf("Get() kind = %v, want NotFound", fail.KindOf(err))
	}
}

func TestFakeOrderRepoDeleteThenGet(t *testing.T) {
	repo := NewFakeOrderRepo()
	ctx := context.Background()

	order := newTestOrder()
	if err := repo.Create(ctx, order); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	if err := repo.Delete(ctx, order.ID); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}

	_, err := repo.Get(ctx, order.ID)
	if !fail.Is(err, fail.NotFound) {
		t.Errorf("Get() after Delete() kind = %v, want NotFound", fail.KindOf(err))
	}

	if err := repo.Delete(ctx, order.ID); !fail.Is(err, fail.NotFound) {
		t.Errorf("second Delete() kind = %v, want NotFound", fail.KindOf(err))
	}
}

// Delete must prune the insertion sequence: re-creating the same id after a
// delete must not list the order twice, and create/delete cycles must not
// grow the sequence.
func TestFakeOrderRepoDeletePrunesSequence(t *testing.T) {
	repo := NewFakeOrderRepo()
	ctx := context.Background()

	order := newTestOrder()
	if err := repo.Create(ctx, order); err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if err := repo.Delete(ctx, order.ID); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if err := repo.Create(ctx, order); err != nil {
		t.Fatalf("re-Create() error = %v", err)
	}

	all, err := repo.List(ctx, OrderFilter{})
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(all) != 1 {
		t.Fatalf("List() returned %d orders, want 1", len(all))
	}

	for i := 0; i < 10; i++ {
		o := newTestOrder()
		if err := repo.Create(ctx, o); err != nil {
			t.Fatalf("Create() error = %v", err)
		}
		if err := repo.Delete(ctx, o.ID); err != nil {
			t.Fatalf("Delete() error = %v", err)
		}
	}

	repo.mu.RLock()
	seqLen := len(repo.sequence)
	repo.mu.RUnlock()
	if seqLen != 1 {
		t.Errorf("sequence length = %d, want 1", seqLen)
	}
}

func TestFakeOrderRepoSaveMissing(t *testing.T) {
	repo := NewFakeOrderRepo()

	order := newTestOrder()
	err := repo.Save(context.Background(), order)
	if !fail.Is(err, fail.NotFound) {
		t.Errorf("Save() kind = %v, want NotFound", fail.KindOf(err))
	}
}

func TestFakeOrderRepoListFilters(t *testing.T) {
	repo := NewFakeOrderRepo()
	ctx := context.Background()

	stationID := uuid.New()

	pending := newTestOrder()
	preparing := newTestOrder()
	preparing.SetStatus(orderstatus.Statuses.Preparing.Code())
	preparing.AssignStation(&stationID)
	for _, o := range []*Order{pending, preparing} {
		if err := repo.Create(ctx, o); err != nil {
			t.Fatalf("Create() error = %v", err)
		}
	}

	all, err := repo.List(ctx, OrderFilter{})
	if err != nil || len(all) != 2 {
		t.Fatalf("List() = %d orders, err %v; want 2", len(all), err)
	}
	// insertion order
	if all[0].ID != pending.ID {
		t.Errorf("List() not in insertion order")
	}

	byStatus, err := repo.ListByStatus(ctx, orderstatus.Statuses.Preparing.Code())
	if err != nil || len(byStatus) != 1 || byStatus[0].ID != preparing.ID {
		t.Errorf("ListByStatus() = %d orders, want the preparing one", len(byStatus))
	}

	byStation, err := repo.ListByStation(ctx, stationID)
	if err != nil || len(byStation) != 1 || byStation[0].ID != preparing.ID {
		t.Errorf("ListByStation() = %d orders, want the assigned one", len(byStation))
	}

	empty, err := repo.ListByStatus(ctx, orderstatus.Statuses.Cancelled.Code())
	if err != nil {
		t.Fatalf("ListByStatus() error = %v", err)
	}
	if empty == nil || len(empty) != 0 {
		t.Errorf("empty filter result should be an empty slice, not an error")
	}
}

// Two sequential saves on the same order leave whichever write landed last.
// There is no optimistic concurrency token; this is the accepted behavior.
func TestFakeOrderRepoLastWriteWins(t *testing.T) {
	repo := NewFakeOrderRepo()
	ctx := context.Background()

	order := newTestOrder()
	if err := repo.Create(ctx, order); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	first, _ := repo.Get(ctx, order.ID)
	second, _ := repo.Get(ctx, order.ID)

	first.Priority = 1
	second.Priority = 9

	if err := repo.Save(ctx, first); err != nil {
		t.Fatalf("Save(first) error = %v", err)
	}
	if err := repo.Save(ctx, second); err != nil {
		t.Fatalf("Save(second) error = %v", err)
	}

	got, _ := repo.Get(ctx, order.ID)
	if got.Priority != 9 {
		t.Errorf("Priority = %d, want last writer's 9", got.Priority)
	}
}

func TestFakeOrderRepoWatch(t *testing.T) {
	repo := NewFakeOrderRepo()
	repo.PollInterval = 10 * time.Millisecond
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	open := newTestOrder()
	done := newTestOrder()
	done.SetStatus(orderstatus.Statuses.Completed.Code())
	if err := repo.Create(ctx, open); err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if err := repo.Create(ctx, done); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	ch, err := repo.Watch(ctx)
	if err != nil {
		t.Fatalf("Watch() error = %v", err)
	}

	select {
	case snapshot := <-ch:
		if len(snapshot) != 1 || snapshot[0].ID != open.ID {
			t.Errorf("Watch() emitted %d orders, want only the open one", len(snapshot))
		}
	case <-time.After(time.Second):
		t.Fatal("Watch() did not emit within 1s")
	}

	cancel()
	// channel must close after cancellation
	for range ch {
	}
}

func TestOrderTotal(t *testing.T) {
	order := NewOrder()
	order.Items = []OrderItem{
		{RecipeID: uuid.New(), Name: "Burger", Quantity: 2, UnitPrice: money.FromCents(1250)},
		{RecipeID: uuid.New(), Name: "Fries", Quantity: 1, UnitPrice: money.FromCents(499)},
	}

	if got := order.Total().Cents; got != 2999 {
		t.Errorf("Total() = %d cents, want 2999", got)
	}
}
