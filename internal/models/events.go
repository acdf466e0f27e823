package models

import "time"

// Event types
const (
	EventTypeOrderPlaced   = "ORDER_PLACED"
	EventTypeOrderAccepted = "ORDER_ACCEPTED"
	EventTypeOrderRejected = "ORDER_REJECTED"
	EventTypeCreditsAdded  = "CREDITS_ADDED"
)

// BaseEvent contains common fields for all events
type BaseEvent struct {
	EventID   string    `json:"event_id"`
	EventType string    `json:"event_type"`
	Timestamp time.Time `json:"timestamp"`
}

// OrderPlacedEvent published when a buyer places an order
type OrderPlacedEvent struct {
	BaseEvent
	OrderID    string `json:"order_id"`
	ProductID  string `json:"product_id"`
	BuyerName  string `json:"buyer_name"`
	BuyerPhone string `json:"buyer_phone"`
	Price      int64  `json:"price"`
	Notified   bool   `json:"notified"`
}

// OrderStatusChangedEvent published when staff accept or reject an order
type OrderStatusChangedEvent struct {
	BaseEvent
	OrderID   string `json:"order_id"`
	ProductID string `json:"product_id"`
	Status    string `json:"status"`
}

// CreditsAddedEvent published when an accepted order grants credits
type CreditsAddedEvent struct {
	BaseEvent
	OrderID string `json:"order_id"`
	UserID  string `json:"user_id"`
	Credits int    `json:"credits"`
	Balance int    `json:"balance"`
}
