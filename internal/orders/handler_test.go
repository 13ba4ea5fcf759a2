package orders

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/aquamarinepk/aqm"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/brigadeclub/brigade/pkg/enums/orderstatus"
	"github.com/brigadeclub/brigade/pkg/event"
)

func TestNewHandler(t *testing.T) {
	tests := []struct {
		name   string
		repo   OrderRepo
		logger aqm.Logger
	}{
		{"withAllDependencies", NewFakeOrderRepo(), aqm.NewNoopLogger()},
		{"withNilLogger", NewFakeOrderRepo(), nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewHandler(tt.repo, NewMockPublisher(), aqm.NewConfig(), tt.logger)
			if h == nil {
				t.Error("NewHandler() returned nil")
			}
		})
	}
}

func TestHandlerRegisterRoutes(t *testing.T) {
	h := NewHandler(NewFakeOrderRepo(), NewMockPublisher(), nil, aqm.NewNoopLogger())
	r := chi.NewRouter()

	// Should not panic
	h.RegisterRoutes(r)
}

func serveOrders(repo OrderRepo, publisher *MockPublisher) *chi.Mux {
	h := NewHandler(repo, publisher, aqm.NewConfig(), aqm.NewNoopLogger())
	r := chi.NewRouter()
	h.RegisterRoutes(r)
	return r
}

func TestHandlerCreateOrder(t *testing.T) {
	tests := []struct {
		name           string
		payload        string
		expectedStatus int
		expectedEvents int
	}{
		{
			name: "valid",
			payload: `{"customer_id":"` + uuid.New().String() + `","items":[{"recipe_id":"` +
				uuid.New().String() + `","name":"Burger","quantity":2,"price":12.5}]}`,
			expectedStatus: http.StatusCreated,
			expectedEvents: 1,
		},
		{
			name:           "missingCustomer",
			payload:        `{"items":[{"recipe_id":"` + uuid.New().String() + `","name":"Burger","quantity":1,"price":5}]}`,
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "noItems",
			payload:        `{"customer_id":"` + uuid.New().String() + `","items":[]}`,
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "invalidJSON",
			payload:        `{not json`,
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "emptyBody",
			payload:        ``,
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := NewFakeOrderRepo()
			publisher := NewMockPublisher()
			router := serveOrders(repo, publisher)

			req := httptest.NewRequest(http.MethodPost, "/orders", bytes.NewBufferString(tt.payload))
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			if w.Code != tt.expectedStatus {
				t.Errorf("status = %d, want %d", w.Code, tt.expectedStatus)
			}
			if len(publisher.PublishedEvents) != tt.expectedEvents {
				t.Errorf("published %d events, want %d", len(publisher.PublishedEvents), tt.expectedEvents)
			}
		})
	}
}

func TestHandlerGetOrder(t *testing.T) {
	repo := NewFakeOrderRepo()
	order := newTestOrder()
	if err := repo.Create(context.Background(), order); err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	router := serveOrders(repo, NewMockPublisher())

	tests := []struct {
		name           string
		path           string
		expectedStatus int
	}{
		{"found", "/orders/" + order.ID.String(), http.StatusOK},
		{"missing", "/orders/" + uuid.New().String(), http.StatusNotFound},
		{"invalidID", "/orders/not-a-uuid", http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, tt.path, nil)
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			if w.Code != tt.expectedStatus {
				t.Errorf("status = %d, want %d", w.Code, tt.expectedStatus)
			}
		})
	}
}

func TestHandlerUpdateOrderNotes(t *testing.T) {
	tests := []struct {
		name    string
		payload string
		want    string
	}{
		{"setNotes", `{"notes":"no onions"}`, "no onions"},
		{"clearNotes", `{"notes":""}`, ""},
		{"omittedNotesKept", `{"priority":3}`, "rush it"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := NewFakeOrderRepo()
			order := newTestOrder()
			order.Notes = "rush it"
			if err := repo.Create(context.Background(), order); err != nil {
				t.Fatalf("Create() error = %v", err)
			}
			router := serveOrders(repo, NewMockPublisher())

			req := httptest.NewRequest(http.MethodPatch, "/orders/"+order.ID.String(), bytes.NewBufferString(tt.payload))
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			if w.Code != http.StatusOK {
				t.Fatalf("status = %d, want 200", w.Code)
			}

			got, err := repo.Get(context.Background(), order.ID)
			if err != nil {
				t.Fatalf("Get() error = %v", err)
			}
			if got.Notes != tt.want {
				t.Errorf("notes = %q, want %q", got.Notes, tt.want)
			}
		})
	}
}

func TestHandlerUpdateStatusPublishesEvent(t *testing.T) {
	repo := NewFakeOrderRepo()
	order := newTestOrder()
	if err := repo.Create(context.Background(), order); err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	publisher := NewMockPublisher()
	router := serveOrders(repo, publisher)

	payload := `{"status":"` + orderstatus.Statuses.Preparing.Code() + `"}`
	req := httptest.NewRequest(http.MethodPatch, "/orders/"+order.ID.String()+"/status", bytes.NewBufferString(payload))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}

	if len(publisher.PublishedEvents) != 1 {
		t.Fatalf("published %d events, want 1", len(publisher.PublishedEvents))
	}

	var evt event.OrderEvent
	if err := json.Unmarshal(publisher.PublishedEvents[0].Data, &evt); err != nil {
		t.Fatalf("cannot unmarshal event: %v", err)
	}
	if evt.EventType != event.EventOrderStatusChanged {
		t.Errorf("event type = %s", evt.EventType)
	}
	if evt.Status != orderstatus.Statuses.Preparing.Code() || evt.PreviousStatus != orderstatus.Statuses.Pending.Code() {
		t.Errorf("event statuses = %s <- %s", evt.Status, evt.PreviousStatus)
	}

	got, _ := repo.Get(context.Background(), order.ID)
	if got.Status != orderstatus.Statuses.Preparing.Code() {
		t.Errorf("stored status = %s", got.Status)
	}
}

func TestHandlerUpdateStatusRejectsUnknown(t *testing.T) {
	repo := NewFakeOrderRepo()
	order := newTestOrder()
	if err := repo.Create(context.Background(), order); err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	router := serveOrders(repo, NewMockPublisher())

	req := httptest.NewRequest(http.MethodPatch, "/orders/"+order.ID.String()+"/status", bytes.NewBufferString(`{"status":"flambeed"}`))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", w.Code)
	}
}

func TestHandlerDeleteOrder(t *testing.T) {
	repo := NewFakeOrderRepo()
	order := newTestOrder()
	if err := repo.Create(context.Background(), order); err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	router := serveOrders(repo, NewMockPublisher())

	req := httptest.NewRequest(http.MethodDelete, "/orders/"+order.ID.String(), nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}

	req = httptest.NewRequest(http.MethodDelete, "/orders/"+order.ID.String(), nil)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	if w.Code != http.StatusNotFound {
		t.Errorf("second delete status = %d, want 404", w.Code)
	}
}
