package broker

import (
	"context"
	"encoding/json"
	"fmt"

	"storefront/internal/models"
)

// EventWriter is the transport the publisher writes to
type EventWriter interface {
	PublishEvent(ctx context.Context, key string, event interface{}) error
}

// EventPublisher handles publishing order lifecycle events
type EventPublisher struct {
	writer EventWriter
}

// NewEventPublisher creates a new event publisher
func NewEventPublisher(writer EventWriter) *EventPublisher {
	return &EventPublisher{writer: writer}
}

// PublishOrderPlaced publishes OrderPlaced event
func (ep *EventPublisher) PublishOrderPlaced(ctx context.Context, event *models.OrderPlacedEvent) error {
	return ep.writer.PublishEvent(ctx, orderKey(event.OrderID), event)
}

// PublishOrderStatusChanged publishes OrderAccepted or OrderRejected event
func (ep *EventPublisher) PublishOrderStatusChanged(ctx context.Context, event *models.OrderStatusChangedEvent) error {
	return ep.writer.PublishEvent(ctx, orderKey(event.OrderID), event)
}

// PublishCreditsAdded publishes CreditsAdded event
func (ep *EventPublisher) PublishCreditsAdded(ctx context.Context, event *models.CreditsAddedEvent) error {
	return ep.writer.PublishEvent(ctx, orderKey(event.OrderID), event)
}

func orderKey(orderID string) string {
	return fmt.Sprintf("order-%s", orderID)
}

// DecodeEvent reads the envelope of a published event and returns it with
// the concrete event decoded.
func DecodeEvent(value []byte) (models.BaseEvent, interface{}, error) {
	var base models.BaseEvent
	if err := json.Unmarshal(value, &base); err != nil {
		return base, nil, fmt.Errorf("failed to unmarshal base event: %w", err)
	}

	var event interface{}
	switch base.EventType {
	case models.EventTypeOrderPlaced:
		event = &models.OrderPlacedEvent{}
	case models.EventTypeOrderAccepted, models.EventTypeOrderRejected:
		event = &models.OrderStatusChangedEvent{}
	case models.EventTypeCreditsAdded:
		event = &models.CreditsAddedEvent{}
	default:
		return base, nil, fmt.Errorf("unknown event type: %s", base.EventType)
	}

	if err := json.Unmarshal(value, event); err != nil {
		return base, nil, fmt.Errorf("failed to unmarshal %s event: %w", base.EventType, err)
	}
	return base, event, nil
}
