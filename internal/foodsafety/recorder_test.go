package foodsafety

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/aquamarinepk/aqm"

	"github.com/brigadeclub/brigade/pkg/enums/severity"
	"github.com/brigadeclub/brigade/pkg/event"
	"github.com/brigadeclub/brigade/pkg/fail"
)

func newWalkInReading(readingC float64, corrective bool) *TemperatureLog {
	log := NewTemperatureLog()
	log.Location = "walk-in"
	log.Equipment = "walk-in cooler"
	log.ReadingC = readingC
	log.MinSafeC = 0
	log.MaxSafeC = 5
	log.RequiresCorrectiveAction = corrective
	return log
}

func TestRecorderInRangeReading(t *testing.T) {
	logs := NewFakeTemperatureLogRepo()
	violations := NewFakeViolationRepo()
	publisher := NewMockPublisher()
	recorder := NewRecorder(logs, violations, publisher, aqm.NewNoopLogger())

	stored, violation, err := recorder.Record(context.Background(), newWalkInReading(3.5, true))
	if err != nil {
		t.Fatalf("Record() error = %v", err)
	}
	if violation != nil {
		t.Error("in-range reading should not raise a violation")
	}

	if _, err := logs.Get(context.Background(), stored.ID); err != nil {
		t.Errorf("reading not stored: %v", err)
	}
	all, _ := violations.List(context.Background())
	if len(all) != 0 {
		t.Errorf("violations = %d, want 0", len(all))
	}
	if len(publisher.PublishedEvents) != 0 {
		t.Errorf("published %d events, want 0", len(publisher.PublishedEvents))
	}
}

// An out-of-range reading flagged for corrective action creates exactly one
// critical violation referencing the same location and reading, and
// publishes an alert.
func TestRecorderOutOfRangeRaisesOneCriticalViolation(t *testing.T) {
	logs := NewFakeTemperatureLogRepo()
	violations := NewFakeViolationRepo()
	publisher := NewMockPublisher()
	recorder := NewRecorder(logs, violations, publisher, aqm.NewNoopLogger())

	stored, violation, err := recorder.Record(context.Background(), newWalkInReading(9.2, true))
	if err != nil {
		t.Fatalf("Record() error = %v", err)
	}
	if violation == nil {
		t.Fatal("out-of-range reading should raise a violation")
	}

	all, _ := violations.List(context.Background())
	if len(all) != 1 {
		t.Fatalf("violations = %d, want exactly 1", len(all))
	}

	got := all[0]
	if got.Severity != severity.Severities.Critical.Code() {
		t.Errorf("severity = %s, want critical", got.Severity)
	}
	if got.Kind != ViolationTemperature {
		t.Errorf("kind = %s", got.Kind)
	}
	if got.Location != "walk-in" {
		t.Errorf("location = %s", got.Location)
	}
	if got.TemperatureLogID == nil || *got.TemperatureLogID != stored.ID {
		t.Error("violation does not reference the reading")
	}
	if got.Resolved {
		t.Error("new violation should be open")
	}

	if len(publisher.PublishedEvents) != 1 {
		t.Fatalf("published %d events, want 1", len(publisher.PublishedEvents))
	}
	var alert event.TemperatureAlertEvent
	if err := json.Unmarshal(publisher.PublishedEvents[0].Data, &alert); err != nil {
		t.Fatalf("cannot unmarshal alert: %v", err)
	}
	if alert.ViolationID != violation.ID.String() || alert.ReadingC != 9.2 {
		t.Errorf("alert = %+v", alert)
	}
}

// An out-of-range reading without the corrective-action flag is stored but
// raises no violation and no alert.
func TestRecorderOutOfRangeUnflaggedRaisesNothing(t *testing.T) {
	logs := NewFakeTemperatureLogRepo()
	violations := NewFakeViolationRepo()
	publisher := NewMockPublisher()
	recorder := NewRecorder(logs, violations, publisher, aqm.NewNoopLogger())

	stored, violation, err := recorder.Record(context.Background(), newWalkInReading(9.2, false))
	if err != nil {
		t.Fatalf("Record() error = %v", err)
	}
	if violation != nil {
		t.Error("unflagged reading should not raise a violation")
	}

	if _, err := logs.Get(context.Background(), stored.ID); err != nil {
		t.Errorf("reading not stored: %v", err)
	}
	all, _ := violations.List(context.Background())
	if len(all) != 0 {
		t.Errorf("violations = %d, want 0", len(all))
	}
	if len(publisher.PublishedEvents) != 0 {
		t.Errorf("published %d events, want 0", len(publisher.PublishedEvents))
	}
}

// The violation write is best effort: when it fails, the reading is still
// stored, the error is swallowed, and the alert still goes out.
func TestRecorderViolationWriteFailureIsSwallowed(t *testing.T) {
	logs := NewFakeTemperatureLogRepo()
	violations := NewFakeViolationRepo()
	violations.CreateErr = fail.New(fail.Server, "violation store down")
	publisher := NewMockPublisher()
	recorder := NewRecorder(logs, violations, publisher, aqm.NewNoopLogger())

	stored, violation, err := recorder.Record(context.Background(), newWalkInReading(9.2, true))
	if err != nil {
		t.Fatalf("Record() error = %v, want nil despite violation failure", err)
	}
	if violation != nil {
		t.Error("failed violation write should return nil violation")
	}

	if _, err := logs.Get(context.Background(), stored.ID); err != nil {
		t.Errorf("primary write lost: %v", err)
	}

	if len(publisher.PublishedEvents) != 1 {
		t.Fatalf("published %d events, want 1", len(publisher.PublishedEvents))
	}
	var alert event.TemperatureAlertEvent
	if err := json.Unmarshal(publisher.PublishedEvents[0].Data, &alert); err != nil {
		t.Fatalf("cannot unmarshal alert: %v", err)
	}
	if alert.ViolationID != "" {
		t.Error("alert should carry no violation id when the write failed")
	}
}

// A failed primary write surfaces to the caller and produces no side effects.
func TestRecorderPrimaryWriteFailure(t *testing.T) {
	logs := NewFakeTemperatureLogRepo()
	logs.CreateErr = fail.New(fail.Server, "log store down")
	violations := NewFakeViolationRepo()
	publisher := NewMockPublisher()
	recorder := NewRecorder(logs, violations, publisher, aqm.NewNoopLogger())

	_, _, err := recorder.Record(context.Background(), newWalkInReading(9.2, true))
	if !fail.Is(err, fail.Server) {
		t.Fatalf("Record() kind = %v, want Server", fail.KindOf(err))
	}

	all, _ := violations.List(context.Background())
	if len(all) != 0 {
		t.Errorf("violations = %d, want 0", len(all))
	}
	if len(publisher.PublishedEvents) != 0 {
		t.Errorf("published %d events, want 0", len(publisher.PublishedEvents))
	}
}

func TestTemperatureLogOutOfRange(t *testing.T) {
	tests := []struct {
		name    string
		reading float64
		want    bool
	}{
		{"inRange", 3.0, false},
		{"atMin", 0.0, false},
		{"atMax", 5.0, false},
		{"belowMin", -1.5, true},
		{"aboveMax", 9.2, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			log := newWalkInReading(tt.reading, false)
			if got := log.OutOfRange(); got != tt.want {
				t.Errorf("OutOfRange() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestTemperatureLogNeedsViolation(t *testing.T) {
	tests := []struct {
		name       string
		reading    float64
		corrective bool
		want       bool
	}{
		{"inRangeUnflagged", 3.0, false, false},
		{"inRangeFlagged", 3.0, true, false},
		{"outOfRangeUnflagged", 9.2, false, false},
		{"outOfRangeFlagged", 9.2, true, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			log := newWalkInReading(tt.reading, tt.corrective)
			if got := log.NeedsViolation(); got != tt.want {
				t.Errorf("NeedsViolation() = %v, want %v", got, tt.want)
			}
		})
	}
}
