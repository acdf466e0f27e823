package models

import "time"

// DefaultProducts returns the catalog used when no products record exists.
func DefaultProducts() []Product {
	return []Product{
		{
			ID:           "1",
			Name:         "500 Credits Package",
			Description:  "Basic credit package for small businesses",
			Price:        499000,
			Credits:      500,
			ValidityDays: 30,
			Image:        "https://images.pexels.com/photos/7621138/pexels-photo-7621138.jpeg?auto=compress&cs=tinysrgb&w=1260&h=750&dpr=1",
		},
		{
			ID:           "2",
			Name:         "1000 Credits Package",
			Description:  "Standard credit package with better value",
			Price:        899000,
			Credits:      1000,
			ValidityDays: 60,
			Image:        "https://images.pexels.com/photos/7621140/pexels-photo-7621140.jpeg?auto=compress&cs=tinysrgb&w=1260&h=750&dpr=1",
		},
		{
			ID:           "3",
			Name:         "2500 Credits Package",
			Description:  "Premium credit package for growing businesses",
			Price:        1999000,
			Credits:      2500,
			ValidityDays: 90,
			Image:        "https://images.pexels.com/photos/7621141/pexels-photo-7621141.jpeg?auto=compress&cs=tinysrgb&w=1260&h=750&dpr=1",
		},
		{
			ID:           "4",
			Name:         "5000 Credits Package",
			Description:  "Enterprise credit package with maximum value",
			Price:        3499000,
			Credits:      5000,
			ValidityDays: 180,
			Image:        "https://images.pexels.com/photos/7621143/pexels-photo-7621143.jpeg?auto=compress&cs=tinysrgb&w=1260&h=750&dpr=1",
		},
	}
}

// DefaultTemplates returns one template per order event type.
func DefaultTemplates() []WhatsAppTemplate {
	return []WhatsAppTemplate{
		{
			ID:      NotificationOrderPlaced,
			Type:    NotificationOrderPlaced,
			Title:   "Order Confirmation",
			Message: "Hello {customer_name}, thank you for your order of {product_name}! Your order #{order_id} is now being processed. We will notify you once it's approved.",
		},
		{
			ID:      NotificationOrderAccepted,
			Type:    NotificationOrderAccepted,
			Title:   "Order Accepted",
			Message: "Good news, {customer_name}! Your order #{order_id} for {product_name} has been accepted and is now being processed. Thank you for choosing our services!",
		},
		{
			ID:      NotificationOrderRejected,
			Type:    NotificationOrderRejected,
			Title:   "Order Rejected",
			Message: "Hello {customer_name}, we regret to inform you that your order #{order_id} for {product_name} could not be processed at this time. Please contact our support team for more information.",
		},
		{
			ID:      NotificationAdminNotification,
			Type:    NotificationAdminNotification,
			Title:   "New Order Notification",
			Message: "New order #{order_id} received from {customer_name} for {product_name}. Please review and take appropriate action.",
		},
	}
}

// DefaultUser returns the demo profile, seeded with the welcome credits.
func DefaultUser(welcomeCredits int) User {
	return User{
		ID:        "1",
		Name:      "Demo User",
		Credits:   welcomeCredits,
		CreatedAt: time.Now(),
	}
}
