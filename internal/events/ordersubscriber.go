package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/aquamarinepk/aqm"
	"github.com/aquamarinepk/aqm/events"

	"github.com/brigadeclub/brigade/internal/tables"
	"github.com/brigadeclub/brigade/pkg/enums/orderstatus"
	"github.com/brigadeclub/brigade/pkg/enums/tablestatus"
	"github.com/brigadeclub/brigade/pkg/event"
	"github.com/brigadeclub/brigade/pkg/fail"
)

// OrderStatusSubscriber listens for order lifecycle events and keeps the
// floor map in sync: when the last state of an order is terminal, the table
// it was seated at goes to cleaning.
type OrderStatusSubscriber struct {
	subscriber events.Subscriber
	tables     tables.TableRepo
	publisher  events.Publisher
	logger     aqm.Logger
}

func NewOrderStatusSubscriber(
	subscriber events.Subscriber,
	tableRepo tables.TableRepo,
	publisher events.Publisher,
	logger aqm.Logger,
) *OrderStatusSubscriber {
	return &OrderStatusSubscriber{
		subscriber: subscriber,
		tables:     tableRepo,
		publisher:  publisher,
		logger:     logger,
	}
}

func (s *OrderStatusSubscriber) Start(ctx context.Context) error {
	s.logger.Infof("Starting OrderStatusSubscriber for topic: %s", event.OrdersTopic)

	if err := s.subscriber.Subscribe(ctx, event.OrdersTopic, s.handleEvent); err != nil {
		return fmt.Errorf("failed to subscribe to %s: %w", event.OrdersTopic, err)
	}
	return nil
}

func (s *OrderStatusSubscriber) handleEvent(ctx context.Context, msg []byte) error {
	var evt event.OrderEvent
	if err := json.Unmarshal(msg, &evt); err != nil {
		s.logger.Errorf("Failed to unmarshal order event: %v", err)
		return nil
	}

	if evt.EventType != event.EventOrderStatusChanged {
		return nil
	}
	if evt.TableNumber == "" {
		return nil
	}

	switch evt.Status {
	case orderstatus.Statuses.Completed.Code(), orderstatus.Statuses.Cancelled.Code():
		return s.releaseTable(ctx, &evt)
	default:
		return nil
	}
}

func (s *OrderStatusSubscriber) releaseTable(ctx context.Context, evt *event.OrderEvent) error {
	table, err := s.tables.GetByNumber(ctx, evt.TableNumber)
	if err != nil {
		if fail.Is(err, fail.NotFound) {
			s.logger.Infof("Order %s references unknown table %s", evt.OrderID, evt.TableNumber)
			return nil
		}
		s.logger.Errorf("Error looking up table %s: %v", evt.TableNumber, err)
		return err
	}

	if table.Status != tablestatus.Statuses.Occupied.Code() {
		return nil
	}

	previousStatus := table.Status
	table.Close()
	table.BeforeUpdate()

	if err := s.tables.Save(ctx, table); err != nil {
		s.logger.Errorf("Failed to release table %s: %v", table.Number, err)
		return err
	}

	s.logger.Infof("Table %s sent to cleaning after order %s", table.Number, evt.OrderID)

	payload := event.TableStatusEvent{
		EventType:      event.EventTableStatusChanged,
		OccurredAt:     time.Now().UTC(),
		TableID:        table.ID.String(),
		Number:         table.Number,
		Status:         table.Status,
		PreviousStatus: previousStatus,
		Section:        table.Section,
	}

	bytes, _ := json.Marshal(payload)
	if err := s.publisher.Publish(ctx, event.TablesTopic, bytes); err != nil {
		s.logger.Errorf("Failed to publish table.status_changed event: %v", err)
	}
	return nil
}
