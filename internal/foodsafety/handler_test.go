package foodsafety

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/aquamarinepk/aqm"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/brigadeclub/brigade/pkg/enums/severity"
)

type fixture struct {
	logs       *FakeTemperatureLogRepo
	violations *FakeViolationRepo
	points     *FakeControlPointRepo
	audits     *FakeAuditRepo
	publisher  *MockPublisher
	router     *chi.Mux
}

func newFixture() *fixture {
	f := &fixture{
		logs:       NewFakeTemperatureLogRepo(),
		violations: NewFakeViolationRepo(),
		points:     NewFakeControlPointRepo(),
		audits:     NewFakeAuditRepo(),
		publisher:  NewMockPublisher(),
	}
	recorder := NewRecorder(f.logs, f.violations, f.publisher, aqm.NewNoopLogger())
	h := NewHandler(recorder, f.logs, f.violations, f.points, f.audits, f.publisher, aqm.NewConfig(), aqm.NewNoopLogger())
	f.router = chi.NewRouter()
	h.RegisterRoutes(f.router)
	return f
}

func (f *fixture) do(t *testing.T, method, path, payload string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if payload == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, bytes.NewBufferString(payload))
	}
	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, req)
	return w
}

func TestHandlerRecordTemperature(t *testing.T) {
	tests := []struct {
		name           string
		payload        string
		expectedStatus int
	}{
		{"valid", `{"location":"walk-in","reading_c":3.5,"min_safe_c":0,"max_safe_c":5}`, http.StatusCreated},
		{"missingLocation", `{"reading_c":3.5,"min_safe_c":0,"max_safe_c":5}`, http.StatusBadRequest},
		{"invertedBand", `{"location":"walk-in","reading_c":3.5,"min_safe_c":5,"max_safe_c":0}`, http.StatusBadRequest},
		{"emptyBody", ``, http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture()
			w := f.do(t, http.MethodPost, "/foodsafety/temperatures", tt.payload)
			if w.Code != tt.expectedStatus {
				t.Errorf("status = %d, want %d", w.Code, tt.expectedStatus)
			}
		})
	}
}

func TestHandlerRecordTemperatureOutOfRange(t *testing.T) {
	f := newFixture()

	w := f.do(t, http.MethodPost, "/foodsafety/temperatures", `{"location":"walk-in","reading_c":9.2,"min_safe_c":0,"max_safe_c":5,"requires_corrective_action":true}`)
	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201", w.Code)
	}

	open, _ := f.violations.ListOpen(context.Background())
	if len(open) != 1 {
		t.Fatalf("open violations = %d, want 1", len(open))
	}
	if open[0].Severity != severity.Severities.Critical.Code() {
		t.Errorf("severity = %s", open[0].Severity)
	}
	if len(f.publisher.PublishedEvents) != 1 {
		t.Errorf("published %d events, want 1", len(f.publisher.PublishedEvents))
	}
}

func TestHandlerRecordTemperatureOutOfRangeUnflagged(t *testing.T) {
	f := newFixture()

	w := f.do(t, http.MethodPost, "/foodsafety/temperatures", `{"location":"walk-in","reading_c":9.2,"min_safe_c":0,"max_safe_c":5}`)
	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201", w.Code)
	}

	open, _ := f.violations.ListOpen(context.Background())
	if len(open) != 0 {
		t.Errorf("open violations = %d, want 0", len(open))
	}
	if len(f.publisher.PublishedEvents) != 0 {
		t.Errorf("published %d events, want 0", len(f.publisher.PublishedEvents))
	}
}

func TestHandlerResolveViolation(t *testing.T) {
	f := newFixture()
	violation := NewViolation()
	violation.Kind = ViolationHygiene
	violation.Location = "prep"
	violation.Description = "cutting board reuse"
	violation.Severity = severity.Severities.High.Code()
	violation.BeforeCreate()
	if err := f.violations.Create(context.Background(), violation); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	resolver := uuid.New()
	w := f.do(t, http.MethodPost, "/foodsafety/violations/"+violation.ID.String()+"/resolve",
		`{"resolved_by":"`+resolver.String()+`","corrective_action":"boards replaced"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}

	got, _ := f.violations.Get(context.Background(), violation.ID)
	if !got.Resolved || got.ResolvedBy == nil || *got.ResolvedBy != resolver {
		t.Error("violation not resolved")
	}
	if got.CorrectiveAction != "boards replaced" {
		t.Errorf("corrective action = %s", got.CorrectiveAction)
	}

	open, _ := f.violations.ListOpen(context.Background())
	if len(open) != 0 {
		t.Errorf("open violations = %d, want 0", len(open))
	}
}

func TestHandlerResolveViolationMissingResolver(t *testing.T) {
	f := newFixture()
	violation := NewViolation()
	violation.Kind = ViolationStorage
	violation.Location = "dry storage"
	violation.Description = "boxes on floor"
	violation.BeforeCreate()
	if err := f.violations.Create(context.Background(), violation); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	w := f.do(t, http.MethodPost, "/foodsafety/violations/"+violation.ID.String()+"/resolve", `{"corrective_action":"shelved"}`)
	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", w.Code)
	}
}

func TestHandlerCheckControlPoint(t *testing.T) {
	f := newFixture()
	point := NewControlPoint()
	point.Name = "hot hold 1"
	point.Location = "line"
	point.MinSafeC = 60
	point.MaxSafeC = 80
	point.CheckEverySec = 900
	point.BeforeCreate()
	if err := f.points.Create(context.Background(), point); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	w := f.do(t, http.MethodPost, "/foodsafety/control-points/"+point.ID.String()+"/check", `{"reading_c":52.0}`)
	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201", w.Code)
	}

	// Reading below the hold band raises a critical violation.
	open, _ := f.violations.ListOpen(context.Background())
	if len(open) != 1 {
		t.Fatalf("open violations = %d, want 1", len(open))
	}
	if open[0].Location != "line" {
		t.Errorf("violation location = %s", open[0].Location)
	}

	got, _ := f.points.Get(context.Background(), point.ID)
	if got.LastCheckedAt == nil {
		t.Error("check did not mark the point checked")
	}
}

func TestHandlerControlPointsDue(t *testing.T) {
	f := newFixture()

	due := NewControlPoint()
	due.Name = "walk-in"
	due.Location = "back"
	due.MinSafeC = 0
	due.MaxSafeC = 5
	due.CheckEverySec = 900
	due.BeforeCreate()

	fresh := NewControlPoint()
	fresh.Name = "freezer"
	fresh.Location = "back"
	fresh.MinSafeC = -25
	fresh.MaxSafeC = -15
	fresh.CheckEverySec = 900
	now := time.Now()
	fresh.LastCheckedAt = &now
	fresh.BeforeCreate()

	for _, point := range []*ControlPoint{due, fresh} {
		if err := f.points.Create(context.Background(), point); err != nil {
			t.Fatalf("Create() error = %v", err)
		}
	}

	w := f.do(t, http.MethodGet, "/foodsafety/control-points?due=true", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	if !bytes.Contains(w.Body.Bytes(), []byte(due.ID.String())) {
		t.Error("never-checked point missing from due list")
	}
	if bytes.Contains(w.Body.Bytes(), []byte(fresh.ID.String())) {
		t.Error("freshly checked point present in due list")
	}
}

func TestHandlerCompleteAudit(t *testing.T) {
	f := newFixture()
	audit := NewAudit()
	audit.Auditor = "County Health"
	audit.ScheduledAt = time.Now().Add(24 * time.Hour)
	audit.BeforeCreate()
	if err := f.audits.Create(context.Background(), audit); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	payload := `{"score":92,"findings":[{"area":"line","finding":"labels missing","severity":"low","passed":false}]}`
	w := f.do(t, http.MethodPost, "/foodsafety/audits/"+audit.ID.String()+"/complete", payload)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}

	got, _ := f.audits.Get(context.Background(), audit.ID)
	if got.Status != AuditCompleted || got.Score == nil || *got.Score != 92 {
		t.Errorf("audit = %+v", got)
	}
	if len(got.Findings) != 1 {
		t.Errorf("findings = %d, want 1", len(got.Findings))
	}

	w = f.do(t, http.MethodPost, "/foodsafety/audits/"+audit.ID.String()+"/complete", `{"score":104}`)
	if w.Code != http.StatusBadRequest {
		t.Errorf("out-of-range score status = %d, want 400", w.Code)
	}
}
