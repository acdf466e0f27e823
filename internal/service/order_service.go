package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	apperrors "storefront/internal/errors"
	"storefront/internal/models"
	"storefront/internal/notification"
	"storefront/internal/template"
	"storefront/internal/util"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// OrderService handles the order lifecycle and its side effects
type OrderService struct {
	state         *State
	notifications *notification.Log
	messenger     messenger
	publisher     EventPublisher
	logger        *zap.Logger
	now           func() time.Time
}

// NewOrderService creates a new order service. A nil publisher disables
// event publication.
func NewOrderService(
	state *State,
	notifications *notification.Log,
	senders SenderFactory,
	publisher EventPublisher,
) *OrderService {
	if publisher == nil {
		publisher = noopPublisher{}
	}
	return &OrderService{
		state:         state,
		notifications: notifications,
		messenger:     messenger{state: state, senders: senders},
		publisher:     publisher,
		logger:        util.GetLogger(),
		now:           time.Now,
	}
}

// OrderFilter narrows ListOrders. Zero values match everything.
type OrderFilter struct {
	Status string
	From   time.Time
	To     time.Time
	Query  string
}

// PlaceOrder creates a pending order and notifies the buyer and the admin.
//
// The order is kept even when the buyer notification fails; in that case
// the order is returned together with the delivery error. Admin
// notification failures are only recorded in the notification log.
func (s *OrderService) PlaceOrder(ctx context.Context, productID, buyerName, buyerPhone string) (*models.Order, error) {
	ctx, span := util.StartSpan(ctx, "OrderService.PlaceOrder")
	defer span.End()

	product, ok := s.state.product(productID)
	if !ok {
		util.OrdersFailedTotal.WithLabelValues("product_not_found").Inc()
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("product not found: %s", productID))
	}

	order := models.Order{
		ID:         uuid.New().String(),
		ProductID:  productID,
		BuyerName:  buyerName,
		BuyerPhone: buyerPhone,
		Status:     models.OrderStatusPending,
		CreatedAt:  s.now(),
	}

	s.state.mu.Lock()
	orders := make([]models.Order, 0, len(s.state.orders)+1)
	orders = append(orders, order)
	s.state.orders = append(orders, s.state.orders...)
	s.state.mu.Unlock()

	util.OrdersPlacedTotal.Inc()
	s.logger.Info("Order placed",
		zap.String("order_id", order.ID),
		zap.String("product_id", productID))

	vars := orderVariables(order, product)

	if buyerTemplate, ok := s.state.template(models.NotificationOrderPlaced); ok {
		message := template.Format(buyerTemplate.Message, vars)
		if err := s.messenger.send(ctx, buyerPhone, message); err != nil {
			util.OrdersFailedTotal.WithLabelValues("buyer_notification").Inc()
			s.notifications.Append(models.NotificationError,
				fmt.Sprintf("Failed to send WhatsApp messages: %s", err.Error()))
			s.logger.Warn("Buyer notification failed",
				zap.String("order_id", order.ID),
				zap.Error(err))
			s.publishPlaced(ctx, order, product, false)
			return &order, fmt.Errorf("failed to notify buyer: %w", err)
		}
		s.notifications.Append(models.NotificationOrderPlaced, fmt.Sprintf("To %s: %s", buyerPhone, message))
	}

	adminTemplate, ok := s.state.template(models.NotificationAdminNotification)
	senderPhone := s.state.Settings().SenderPhone
	if ok && senderPhone != "" {
		message := template.Format(adminTemplate.Message, vars)
		if err := s.messenger.send(ctx, senderPhone, message); err != nil {
			s.notifications.Append(models.NotificationError,
				fmt.Sprintf("Failed to send WhatsApp messages: %s", err.Error()))
			s.logger.Warn("Admin notification failed",
				zap.String("order_id", order.ID),
				zap.Error(err))
		} else {
			s.notifications.Append(models.NotificationAdminNotification, message)
		}
	}

	s.publishPlaced(ctx, order, product, true)
	return &order, nil
}

// UpdateOrderStatus moves a pending order to accepted or rejected.
//
// Unknown orders, orders whose product was deleted, and orders that already
// left pending are ignored. Acceptance grants the product's credits to the
// current user. Buyer notification failures never undo the transition.
func (s *OrderService) UpdateOrderStatus(ctx context.Context, orderID, status string) error {
	ctx, span := util.StartSpan(ctx, "OrderService.UpdateOrderStatus")
	defer span.End()

	if status != models.OrderStatusAccepted && status != models.OrderStatusRejected {
		return apperrors.NewValidationError(fmt.Sprintf("invalid order status: %s", status),
			apperrors.ValidationDetail{Field: "status", Message: "must be accepted or rejected"})
	}

	s.state.mu.Lock()

	idx := -1
	for i := range s.state.orders {
		if s.state.orders[i].ID == orderID {
			idx = i
			break
		}
	}
	if idx < 0 {
		s.state.mu.Unlock()
		return nil
	}
	order := s.state.orders[idx]

	var product models.Product
	found := false
	for _, p := range s.state.products {
		if p.ID == order.ProductID {
			product, found = p, true
			break
		}
	}
	if !found || order.Status != models.OrderStatusPending {
		s.state.mu.Unlock()
		s.logger.Debug("Order status update ignored",
			zap.String("order_id", orderID),
			zap.String("status", order.Status),
			zap.Bool("product_found", found))
		return nil
	}

	now := s.now()
	order.Status = status
	if status == models.OrderStatusAccepted {
		expiry := now.AddDate(0, 0, product.ValidityDays)
		order.ExpiryDate = &expiry
	}

	orders := make([]models.Order, len(s.state.orders))
	copy(orders, s.state.orders)
	orders[idx] = order
	s.state.orders = orders

	var user models.User
	var persistErr error
	if status == models.OrderStatusAccepted {
		user = s.state.user
		user.Credits += product.Credits
		persistErr = s.state.replaceUser(ctx, user)
	}

	s.state.mu.Unlock()

	if status == models.OrderStatusAccepted {
		util.OrdersAcceptedTotal.Inc()
		util.CreditsGrantedTotal.Add(float64(product.Credits))
		s.notifications.Append(models.NotificationCreditAdded,
			fmt.Sprintf("Added %d credits to your balance", product.Credits))
		s.publishCredits(ctx, order, user, product.Credits)
	} else {
		util.OrdersRejectedTotal.Inc()
	}

	s.logger.Info("Order status updated",
		zap.String("order_id", orderID),
		zap.String("status", status))

	notificationType := models.StatusTemplateType(status)
	if statusTemplate, ok := s.state.template(notificationType); ok {
		message := template.Format(statusTemplate.Message, orderVariables(order, product))
		if err := s.messenger.send(ctx, order.BuyerPhone, message); err != nil {
			s.notifications.Append(models.NotificationError,
				fmt.Sprintf("Failed to send status update message: %s", err.Error()))
			s.logger.Warn("Status notification failed",
				zap.String("order_id", orderID),
				zap.Error(err))
		} else {
			s.notifications.Append(notificationType, fmt.Sprintf("To %s: %s", order.BuyerPhone, message))
		}
	}

	s.publishStatusChanged(ctx, order)

	if persistErr != nil {
		s.logger.Error("Failed to persist credit balance",
			zap.String("order_id", orderID),
			zap.Error(persistErr))
		return persistErr
	}
	return nil
}

// GetOrder returns the order with the given id
func (s *OrderService) GetOrder(orderID string) (models.Order, error) {
	for _, o := range s.state.Orders() {
		if o.ID == orderID {
			return o, nil
		}
	}
	return models.Order{}, apperrors.NewNotFoundError(fmt.Sprintf("order not found: %s", orderID))
}

// ListOrders returns orders matching filter, most recent first
func (s *OrderService) ListOrders(filter OrderFilter) []models.Order {
	query := strings.ToLower(filter.Query)

	out := make([]models.Order, 0)
	for _, o := range s.state.Orders() {
		if filter.Status != "" && filter.Status != "all" && o.Status != filter.Status {
			continue
		}
		if !filter.From.IsZero() && o.CreatedAt.Before(filter.From) {
			continue
		}
		if !filter.To.IsZero() && o.CreatedAt.After(filter.To) {
			continue
		}
		if query != "" &&
			!strings.Contains(strings.ToLower(o.BuyerName), query) &&
			!strings.Contains(o.BuyerPhone, filter.Query) {
			continue
		}
		out = append(out, o)
	}
	return out
}

func orderVariables(order models.Order, product models.Product) map[string]string {
	return map[string]string{
		template.VarCustomerName: order.BuyerName,
		template.VarProductName:  product.Name,
		template.VarOrderID:      order.ID,
	}
}

func (s *OrderService) publishPlaced(ctx context.Context, order models.Order, product models.Product, notified bool) {
	event := &models.OrderPlacedEvent{
		BaseEvent:  newBaseEvent(models.EventTypeOrderPlaced),
		OrderID:    order.ID,
		ProductID:  order.ProductID,
		BuyerName:  order.BuyerName,
		BuyerPhone: order.BuyerPhone,
		Price:      product.Price,
		Notified:   notified,
	}
	if err := s.publisher.PublishOrderPlaced(ctx, event); err != nil {
		s.logger.Error("Failed to publish OrderPlaced event", zap.Error(err))
	}
}

func (s *OrderService) publishStatusChanged(ctx context.Context, order models.Order) {
	eventType := models.EventTypeOrderRejected
	if order.Status == models.OrderStatusAccepted {
		eventType = models.EventTypeOrderAccepted
	}
	event := &models.OrderStatusChangedEvent{
		BaseEvent: newBaseEvent(eventType),
		OrderID:   order.ID,
		ProductID: order.ProductID,
		Status:    order.Status,
	}
	if err := s.publisher.PublishOrderStatusChanged(ctx, event); err != nil {
		s.logger.Error("Failed to publish order status event", zap.Error(err))
	}
}

func (s *OrderService) publishCredits(ctx context.Context, order models.Order, user models.User, credits int) {
	event := &models.CreditsAddedEvent{
		BaseEvent: newBaseEvent(models.EventTypeCreditsAdded),
		OrderID:   order.ID,
		UserID:    user.ID,
		Credits:   credits,
		Balance:   user.Credits,
	}
	if err := s.publisher.PublishCreditsAdded(ctx, event); err != nil {
		s.logger.Error("Failed to publish CreditsAdded event", zap.Error(err))
	}
}

func newBaseEvent(eventType string) models.BaseEvent {
	return models.BaseEvent{
		EventID:   uuid.New().String(),
		EventType: eventType,
		Timestamp: time.Now(),
	}
}
