package broker

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"storefront/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingWriter struct {
	keys   []string
	events []interface{}
	err    error
}

func (w *recordingWriter) PublishEvent(_ context.Context, key string, event interface{}) error {
	w.keys = append(w.keys, key)
	w.events = append(w.events, event)
	return w.err
}

func TestPublishOrderPlaced_KeyedByOrder(t *testing.T) {
	w := &recordingWriter{}
	ep := NewEventPublisher(w)

	event := &models.OrderPlacedEvent{
		BaseEvent: models.BaseEvent{EventID: "e1", EventType: models.EventTypeOrderPlaced, Timestamp: time.Now()},
		OrderID:   "abc",
	}

	require.NoError(t, ep.PublishOrderPlaced(context.Background(), event))
	assert.Equal(t, []string{"order-abc"}, w.keys)
	assert.Same(t, event, w.events[0])
}

func TestPublish_PropagatesWriterError(t *testing.T) {
	w := &recordingWriter{err: errors.New("broker down")}
	ep := NewEventPublisher(w)

	err := ep.PublishCreditsAdded(context.Background(), &models.CreditsAddedEvent{OrderID: "abc"})
	assert.EqualError(t, err, "broker down")
}

func TestDecodeEvent(t *testing.T) {
	payload, err := json.Marshal(&models.OrderStatusChangedEvent{
		BaseEvent: models.BaseEvent{EventID: "e2", EventType: models.EventTypeOrderAccepted},
		OrderID:   "abc",
		Status:    models.OrderStatusAccepted,
	})
	require.NoError(t, err)

	base, event, err := DecodeEvent(payload)
	require.NoError(t, err)
	assert.Equal(t, "e2", base.EventID)

	changed, ok := event.(*models.OrderStatusChangedEvent)
	require.True(t, ok)
	assert.Equal(t, "abc", changed.OrderID)
	assert.Equal(t, models.OrderStatusAccepted, changed.Status)
}

func TestDecodeEvent_UnknownType(t *testing.T) {
	_, _, err := DecodeEvent([]byte(`{"event_type":"PAYMENT_SUCCESS"}`))
	assert.Error(t, err)

	_, _, err = DecodeEvent([]byte(`not json`))
	assert.Error(t, err)
}
