package models

import "time"

// Product represents a credit package in the catalog
type Product struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Description  string `json:"description"`
	Price        int64  `json:"price"`
	Credits      int    `json:"credits"`
	ValidityDays int    `json:"validityDays"`
	Image        string `json:"image"`
}

// Order represents a customer order for a single credit package
type Order struct {
	ID         string     `json:"id"`
	ProductID  string     `json:"productId"`
	BuyerName  string     `json:"buyerName"`
	BuyerPhone string     `json:"buyerPhone"`
	Status     string     `json:"status"`
	CreatedAt  time.Time  `json:"createdAt"`
	ExpiryDate *time.Time `json:"expiryDate,omitempty"`
}

// User is the profile of the current storefront user
type User struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Phone     string    `json:"phone"`
	Email     string    `json:"email"`
	Credits   int       `json:"credits"`
	CreatedAt time.Time `json:"createdAt"`
}

// Notification is a user-visible event in the notification log
type Notification struct {
	ID        string    `json:"id"`
	Type      string    `json:"type"`
	Message   string    `json:"message"`
	Read      bool      `json:"read"`
	CreatedAt time.Time `json:"createdAt"`
}

// WhatsAppTemplate is a message body with {placeholders}, one per order event
type WhatsAppTemplate struct {
	ID      string `json:"id"`
	Type    string `json:"type"`
	Title   string `json:"title"`
	Message string `json:"message"`
}

// Settings holds gateway credentials and credit policy
type Settings struct {
	WhatsAppAPIKey string `json:"whatsappApiKey"`
	SenderPhone    string `json:"senderPhone"`
	WelcomeCredits int    `json:"welcomeCredits"`
}

// Order statuses
const (
	OrderStatusPending  = "pending"
	OrderStatusAccepted = "accepted"
	OrderStatusRejected = "rejected"
)

// Notification types. The first four double as template types.
const (
	NotificationOrderPlaced       = "order_placed"
	NotificationOrderAccepted     = "order_accepted"
	NotificationOrderRejected     = "order_rejected"
	NotificationAdminNotification = "admin_notification"
	NotificationCreditAdded       = "credit_added"
	NotificationError             = "error"
)

// IsTerminal reports whether no further transition is allowed out of status.
func IsTerminal(status string) bool {
	return status == OrderStatusAccepted || status == OrderStatusRejected
}

// StatusTemplateType returns the template type announcing a status change.
func StatusTemplateType(status string) string {
	return "order_" + status
}
