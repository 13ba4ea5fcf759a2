package tables

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/aquamarinepk/aqm"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/brigadeclub/brigade/pkg/enums/tablestatus"
	"github.com/brigadeclub/brigade/pkg/event"
)

func serveTables(tables TableRepo, reservations ReservationRepo, publisher *MockPublisher) *chi.Mux {
	h := NewHandler(tables, reservations, publisher, aqm.NewConfig(), aqm.NewNoopLogger())
	r := chi.NewRouter()
	h.RegisterRoutes(r)
	return r
}

func TestHandlerCreateTable(t *testing.T) {
	tests := []struct {
		name           string
		payload        string
		expectedStatus int
	}{
		{"valid", `{"number":"T12","capacity":4,"section":"patio"}`, http.StatusCreated},
		{"missingNumber", `{"capacity":4}`, http.StatusBadRequest},
		{"zeroCapacity", `{"number":"T12","capacity":0}`, http.StatusBadRequest},
		{"emptyBody", ``, http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := serveTables(NewFakeTableRepo(), NewFakeReservationRepo(), NewMockPublisher())

			req := httptest.NewRequest(http.MethodPost, "/tables", bytes.NewBufferString(tt.payload))
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			if w.Code != tt.expectedStatus {
				t.Errorf("status = %d, want %d", w.Code, tt.expectedStatus)
			}
		})
	}
}

func TestHandlerCreateTableDuplicateNumber(t *testing.T) {
	router := serveTables(NewFakeTableRepo(), NewFakeReservationRepo(), NewMockPublisher())

	payload := `{"number":"T12","capacity":4}`
	for i, want := range []int{http.StatusCreated, http.StatusConflict} {
		req := httptest.NewRequest(http.MethodPost, "/tables", bytes.NewBufferString(payload))
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		if w.Code != want {
			t.Errorf("create %d status = %d, want %d", i, w.Code, want)
		}
	}
}

func TestHandlerOpenTablePublishesStatus(t *testing.T) {
	repo := NewFakeTableRepo()
	table := newTestTable()
	if err := repo.Create(context.Background(), table); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	publisher := NewMockPublisher()
	router := serveTables(repo, NewFakeReservationRepo(), publisher)

	payload := `{"party_size":3}`
	req := httptest.NewRequest(http.MethodPost, "/tables/"+table.ID.String()+"/open", bytes.NewBufferString(payload))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}

	if len(publisher.PublishedEvents) != 1 {
		t.Fatalf("published %d events, want 1", len(publisher.PublishedEvents))
	}
	if publisher.PublishedEvents[0].Topic != event.TablesTopic {
		t.Errorf("topic = %s", publisher.PublishedEvents[0].Topic)
	}

	var evt event.TableStatusEvent
	if err := json.Unmarshal(publisher.PublishedEvents[0].Data, &evt); err != nil {
		t.Fatalf("cannot unmarshal event: %v", err)
	}
	if evt.Status != tablestatus.Statuses.Occupied.Code() {
		t.Errorf("event status = %s", evt.Status)
	}
	if evt.PreviousStatus != tablestatus.Statuses.Available.Code() {
		t.Errorf("event previous status = %s", evt.PreviousStatus)
	}
}

func TestHandlerOpenTableOversizedParty(t *testing.T) {
	repo := NewFakeTableRepo()
	table := newTestTable()
	if err := repo.Create(context.Background(), table); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	publisher := NewMockPublisher()
	router := serveTables(repo, NewFakeReservationRepo(), publisher)

	payload := `{"party_size":9}`
	req := httptest.NewRequest(http.MethodPost, "/tables/"+table.ID.String()+"/open", bytes.NewBufferString(payload))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
	if len(publisher.PublishedEvents) != 0 {
		t.Error("rejected open should not publish")
	}

	got, _ := repo.Get(context.Background(), table.ID)
	if got.Status != tablestatus.Statuses.Available.Code() {
		t.Errorf("stored status = %s, want available", got.Status)
	}
}

func TestHandlerCreateReservation(t *testing.T) {
	repo := NewFakeTableRepo()
	table := newTestTable()
	if err := repo.Create(context.Background(), table); err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	router := serveTables(repo, NewFakeReservationRepo(), NewMockPublisher())

	at := time.Now().Add(24 * time.Hour).Format(time.RFC3339)

	tests := []struct {
		name           string
		payload        string
		expectedStatus int
	}{
		{"valid", `{"guest_name":"Ada","party_size":2,"at":"` + at + `"}`, http.StatusCreated},
		{"withTable", `{"guest_name":"Ada","party_size":4,"at":"` + at + `","table_id":"` + table.ID.String() + `"}`, http.StatusCreated},
		{"oversizedForTable", `{"guest_name":"Ada","party_size":6,"at":"` + at + `","table_id":"` + table.ID.String() + `"}`, http.StatusBadRequest},
		{"unknownTable", `{"guest_name":"Ada","party_size":2,"at":"` + at + `","table_id":"` + uuid.New().String() + `"}`, http.StatusNotFound},
		{"missingGuest", `{"party_size":2,"at":"` + at + `"}`, http.StatusBadRequest},
		{"missingTime", `{"guest_name":"Ada","party_size":2}`, http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/reservations", bytes.NewBufferString(tt.payload))
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			if w.Code != tt.expectedStatus {
				t.Errorf("status = %d, want %d", w.Code, tt.expectedStatus)
			}
		})
	}
}

func TestHandlerUpdateReservationStatus(t *testing.T) {
	reservations := NewFakeReservationRepo()
	reservation := NewReservation()
	reservation.GuestName = "Ada"
	reservation.PartySize = 2
	reservation.At = time.Now().Add(24 * time.Hour)
	reservation.BeforeCreate()
	if err := reservations.Create(context.Background(), reservation); err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	router := serveTables(NewFakeTableRepo(), reservations, NewMockPublisher())

	payload := `{"status":"seated"}`
	req := httptest.NewRequest(http.MethodPatch, "/reservations/"+reservation.ID.String(), bytes.NewBufferString(payload))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}

	got, _ := reservations.Get(context.Background(), reservation.ID)
	if got.Status != ReservationSeated {
		t.Errorf("status = %s, want seated", got.Status)
	}

	payload = `{"status":"vanished"}`
	req = httptest.NewRequest(http.MethodPatch, "/reservations/"+reservation.ID.String(), bytes.NewBufferString(payload))
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	if w.Code != http.StatusBadRequest {
		t.Errorf("unknown status update = %d, want 400", w.Code)
	}
}
