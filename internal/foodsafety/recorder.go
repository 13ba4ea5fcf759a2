package foodsafety

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/aquamarinepk/aqm"
	"github.com/aquamarinepk/aqm/events"

	"github.com/brigadeclub/brigade/pkg/enums/severity"
	"github.com/brigadeclub/brigade/pkg/event"
)

// Recorder persists temperature readings and raises a critical violation
// when a reading lands outside its safe band and is flagged for corrective
// action. The violation write is best effort: the reading is already stored,
// and a failed violation write is logged and swallowed so the caller still
// gets its log back.
type Recorder struct {
	logs       TemperatureLogRepo
	violations ViolationRepo
	publisher  events.Publisher
	logger     aqm.Logger
}

func NewRecorder(logs TemperatureLogRepo, violations ViolationRepo, publisher events.Publisher, logger aqm.Logger) *Recorder {
	if logger == nil {
		logger = aqm.NewNoopLogger()
	}
	return &Recorder{
		logs:       logs,
		violations: violations,
		publisher:  publisher,
		logger:     logger,
	}
}

// Record stores the reading. An out-of-range reading flagged for corrective
// action additionally creates exactly one critical temperature violation
// referencing the log, and publishes an alert. Returns the stored log and
// the violation when one was created.
func (r *Recorder) Record(ctx context.Context, log *TemperatureLog) (*TemperatureLog, *Violation, error) {
	log.BeforeCreate()

	if err := r.logs.Create(ctx, log); err != nil {
		return nil, nil, err
	}

	if !log.NeedsViolation() {
		return log, nil, nil
	}

	violation := NewViolation()
	violation.Kind = ViolationTemperature
	violation.Location = log.Location
	violation.Severity = severity.Severities.Critical.Code()
	violation.TemperatureLogID = &log.ID
	violation.Description = fmt.Sprintf(
		"temperature %.1fC at %s outside safe range %.1fC..%.1fC",
		log.ReadingC, log.Location, log.MinSafeC, log.MaxSafeC,
	)
	violation.BeforeCreate()

	if err := r.violations.Create(ctx, violation); err != nil {
		r.logger.Error("cannot create temperature violation", "error", err, "log_id", log.ID)
		r.publishAlert(ctx, log, nil)
		return log, nil, nil
	}

	r.publishAlert(ctx, log, violation)
	return log, violation, nil
}

func (r *Recorder) publishAlert(ctx context.Context, log *TemperatureLog, violation *Violation) {
	if r.publisher == nil {
		return
	}

	evt := event.TemperatureAlertEvent{
		EventType:  event.EventTemperatureOutOfRange,
		OccurredAt: time.Now().UTC(),
		LogID:      log.ID.String(),
		Location:   log.Location,
		ReadingC:   log.ReadingC,
		MinSafeC:   log.MinSafeC,
		MaxSafeC:   log.MaxSafeC,
	}
	if violation != nil {
		evt.ViolationID = violation.ID.String()
		evt.Severity = violation.Severity
	}

	eventBytes, _ := json.Marshal(evt)
	if err := r.publisher.Publish(ctx, event.FoodSafetyTopic, eventBytes); err != nil {
		r.logger.Errorf("Failed to publish temperature alert: %v", err)
	}
}
