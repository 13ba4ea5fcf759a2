package events

import (
	"context"

	aqmevents "github.com/aquamarinepk/aqm/events"
)

// MockPublisher is a test mock for events.Publisher
type MockPublisher struct {
	PublishedEvents []PublishedEvent
	PublishFunc     func(ctx context.Context, topic string, data []byte) error
}

type PublishedEvent struct {
	Topic string
	Data  []byte
}

func NewMockPublisher() *MockPublisher {
	return &MockPublisher{
		PublishedEvents: make([]PublishedEvent, 0),
	}
}

func (m *MockPublisher) Publish(ctx context.Context, topic string, data []byte) error {
	if m.PublishFunc != nil {
		return m.PublishFunc(ctx, topic, data)
	}
	m.PublishedEvents = append(m.PublishedEvents, PublishedEvent{Topic: topic, Data: data})
	return nil
}

// MockSubscriber captures the handler so tests can deliver messages directly.
type MockSubscriber struct {
	Topic   string
	Handler aqmevents.HandlerFunc
}

func (m *MockSubscriber) Subscribe(ctx context.Context, topic string, handler aqmevents.HandlerFunc) error {
	m.Topic = topic
	m.Handler = handler
	return nil
}

func (m *MockSubscriber) Close() error {
	return nil
}
