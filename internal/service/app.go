package service

import (
	"context"

	"storefront/internal/notification"
	"storefront/internal/store"
)

// App bundles one session's state with the services operating on it
type App struct {
	State         *State
	Notifications *notification.Log
	Orders        *OrderService
	Catalog       *CatalogService
	Settings      *SettingsService
}

// NewApp loads persisted state and wires the services. Each call starts a
// fresh session: no orders, no notifications.
func NewApp(ctx context.Context, persistence *store.Persistence, senders SenderFactory, publisher EventPublisher) (*App, error) {
	state, err := LoadState(ctx, persistence)
	if err != nil {
		return nil, err
	}

	notifications := notification.NewLog()

	return &App{
		State:         state,
		Notifications: notifications,
		Orders:        NewOrderService(state, notifications, senders, publisher),
		Catalog:       NewCatalogService(state),
		Settings:      NewSettingsService(state, senders),
	}, nil
}
