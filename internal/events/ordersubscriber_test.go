package events

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/aquamarinepk/aqm"

	"github.com/brigadeclub/brigade/internal/tables"
	"github.com/brigadeclub/brigade/pkg/enums/tablestatus"
	"github.com/brigadeclub/brigade/pkg/event"
)

func newSubscriberFixture(t *testing.T) (*MockSubscriber, *MockPublisher, *tables.FakeTableRepo) {
	t.Helper()

	sub := &MockSubscriber{}
	pub := NewMockPublisher()
	repo := tables.NewFakeTableRepo()

	s := NewOrderStatusSubscriber(sub, repo, pub, aqm.NewNoopLogger())
	if err := s.Start(context.Background()); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	if sub.Topic != event.OrdersTopic {
		t.Fatalf("subscribed topic = %q, want %q", sub.Topic, event.OrdersTopic)
	}
	return sub, pub, repo
}

func seedOccupiedTable(t *testing.T, repo *tables.FakeTableRepo, number string) *tables.Table {
	t.Helper()

	table := tables.NewTable()
	table.Number = number
	table.Capacity = 4
	table.BeforeCreate()
	if err := table.Open(2, nil); err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	if err := repo.Create(context.Background(), table); err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	return table
}

func deliverOrderEvent(t *testing.T, sub *MockSubscriber, evt event.OrderEvent) {
	t.Helper()

	data, err := json.Marshal(evt)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	if err := sub.Handler(context.Background(), data); err != nil {
		t.Fatalf("handler error = %v", err)
	}
}

func TestOrderCompletionReleasesTable(t *testing.T) {
	sub, pub, repo := newSubscriberFixture(t)
	table := seedOccupiedTable(t, repo, "12")

	deliverOrderEvent(t, sub, event.OrderEvent{
		EventType:   event.EventOrderStatusChanged,
		OrderID:     "a2b6e5b7-8ac5-4a7c-9a3e-000000000001",
		Status:      "completed",
		TableNumber: "12",
	})

	updated, err := repo.Get(context.Background(), table.ID)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if updated.Status != tablestatus.Statuses.Cleaning.Code() {
		t.Errorf("table status = %q, want cleaning", updated.Status)
	}
	if updated.PartySize != 0 {
		t.Errorf("party size = %d, want 0", updated.PartySize)
	}

	if len(pub.PublishedEvents) != 1 {
		t.Fatalf("published %d events, want 1", len(pub.PublishedEvents))
	}
	published := pub.PublishedEvents[0]
	if published.Topic != event.TablesTopic {
		t.Errorf("published topic = %q, want %q", published.Topic, event.TablesTopic)
	}

	var statusEvt event.TableStatusEvent
	if err := json.Unmarshal(published.Data, &statusEvt); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if statusEvt.Status != tablestatus.Statuses.Cleaning.Code() {
		t.Errorf("event status = %q, want cleaning", statusEvt.Status)
	}
	if statusEvt.PreviousStatus != tablestatus.Statuses.Occupied.Code() {
		t.Errorf("event previous status = %q, want occupied", statusEvt.PreviousStatus)
	}
	if statusEvt.Number != "12" {
		t.Errorf("event number = %q, want 12", statusEvt.Number)
	}
}

func TestOrderCancellationReleasesTable(t *testing.T) {
	sub, _, repo := newSubscriberFixture(t)
	table := seedOccupiedTable(t, repo, "7")

	deliverOrderEvent(t, sub, event.OrderEvent{
		EventType:   event.EventOrderStatusChanged,
		OrderID:     "a2b6e5b7-8ac5-4a7c-9a3e-000000000002",
		Status:      "cancelled",
		TableNumber: "7",
	})

	updated, _ := repo.Get(context.Background(), table.ID)
	if updated.Status != tablestatus.Statuses.Cleaning.Code() {
		t.Errorf("table status = %q, want cleaning", updated.Status)
	}
}

func TestNonTerminalStatusLeavesTableAlone(t *testing.T) {
	sub, pub, repo := newSubscriberFixture(t)
	table := seedOccupiedTable(t, repo, "3")

	deliverOrderEvent(t, sub, event.OrderEvent{
		EventType:   event.EventOrderStatusChanged,
		OrderID:     "a2b6e5b7-8ac5-4a7c-9a3e-000000000003",
		Status:      "preparing",
		TableNumber: "3",
	})

	updated, _ := repo.Get(context.Background(), table.ID)
	if updated.Status != tablestatus.Statuses.Occupied.Code() {
		t.Errorf("table status = %q, want occupied", updated.Status)
	}
	if len(pub.PublishedEvents) != 0 {
		t.Errorf("published %d events, want 0", len(pub.PublishedEvents))
	}
}

func TestUnknownTableIsIgnored(t *testing.T) {
	sub, pub, _ := newSubscriberFixture(t)

	deliverOrderEvent(t, sub, event.OrderEvent{
		EventType:   event.EventOrderStatusChanged,
		OrderID:     "a2b6e5b7-8ac5-4a7c-9a3e-000000000004",
		Status:      "completed",
		TableNumber: "99",
	})

	if len(pub.PublishedEvents) != 0 {
		t.Errorf("published %d events, want 0", len(pub.PublishedEvents))
	}
}

func TestNonOccupiedTableIsNotReleased(t *testing.T) {
	sub, pub, repo := newSubscriberFixture(t)

	table := tables.NewTable()
	table.Number = "5"
	table.Capacity = 2
	table.BeforeCreate()
	if err := repo.Create(context.Background(), table); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	deliverOrderEvent(t, sub, event.OrderEvent{
		EventType:   event.EventOrderStatusChanged,
		OrderID:     "a2b6e5b7-8ac5-4a7c-9a3e-000000000005",
		Status:      "completed",
		TableNumber: "5",
	})

	updated, _ := repo.Get(context.Background(), table.ID)
	if updated.Status != tablestatus.Statuses.Available.Code() {
		t.Errorf("table status = %q, want available", updated.Status)
	}
	if len(pub.PublishedEvents) != 0 {
		t.Errorf("published %d events, want 0", len(pub.PublishedEvents))
	}
}

func TestOtherEventTypesAreIgnored(t *testing.T) {
	sub, pub, repo := newSubscriberFixture(t)
	table := seedOccupiedTable(t, repo, "8")

	deliverOrderEvent(t, sub, event.OrderEvent{
		EventType:   event.EventOrderCreated,
		OrderID:     "a2b6e5b7-8ac5-4a7c-9a3e-000000000006",
		Status:      "completed",
		TableNumber: "8",
	})

	updated, _ := repo.Get(context.Background(), table.ID)
	if updated.Status != tablestatus.Statuses.Occupied.Code() {
		t.Errorf("table status = %q, want occupied", updated.Status)
	}
	if len(pub.PublishedEvents) != 0 {
		t.Errorf("published %d events, want 0", len(pub.PublishedEvents))
	}
}

func TestMalformedPayloadIsSwallowed(t *testing.T) {
	sub, pub, _ := newSubscriberFixture(t)

	if err := sub.Handler(context.Background(), []byte("{not json")); err != nil {
		t.Fatalf("handler error = %v, want nil", err)
	}
	if len(pub.PublishedEvents) != 0 {
		t.Errorf("published %d events, want 0", len(pub.PublishedEvents))
	}
}
