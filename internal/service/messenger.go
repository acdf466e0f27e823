package service

import (
	"context"

	"storefront/internal/models"
	"storefront/internal/whatsapp"
)

// Sender delivers a text message to a phone number
type Sender interface {
	Send(ctx context.Context, phone, message string) error
}

// SenderFactory builds a Sender for the API key currently in settings.
// It returns a ConfigError when the key is empty.
type SenderFactory func(apiKey string) (Sender, error)

// WhatsAppSenders returns a factory for gateway clients rooted at baseURL
func WhatsAppSenders(baseURL string, opts ...whatsapp.Option) SenderFactory {
	return func(apiKey string) (Sender, error) {
		c, err := whatsapp.NewClient(baseURL, apiKey, opts...)
		if err != nil {
			return nil, err
		}
		return c, nil
	}
}

// EventPublisher receives order lifecycle events
type EventPublisher interface {
	PublishOrderPlaced(ctx context.Context, event *models.OrderPlacedEvent) error
	PublishOrderStatusChanged(ctx context.Context, event *models.OrderStatusChangedEvent) error
	PublishCreditsAdded(ctx context.Context, event *models.CreditsAddedEvent) error
}

type noopPublisher struct{}

func (noopPublisher) PublishOrderPlaced(context.Context, *models.OrderPlacedEvent) error {
	return nil
}

func (noopPublisher) PublishOrderStatusChanged(context.Context, *models.OrderStatusChangedEvent) error {
	return nil
}

func (noopPublisher) PublishCreditsAdded(context.Context, *models.CreditsAddedEvent) error {
	return nil
}

type messenger struct {
	state   *State
	senders SenderFactory
}

// send builds a sender from the current settings and delivers one message
func (m messenger) send(ctx context.Context, phone, message string) error {
	sender, err := m.senders(m.state.Settings().WhatsAppAPIKey)
	if err != nil {
		return err
	}
	return sender.Send(ctx, phone, message)
}
