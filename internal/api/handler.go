package api

import (
	"net/http"
	"strconv"
	"time"

	apperrors "storefront/internal/errors"
	"storefront/internal/models"
	"storefront/internal/service"
	"storefront/internal/util"
	"storefront/internal/whatsapp"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

const dateLayout = "2006-01-02"

// Handler contains HTTP handlers
type Handler struct {
	app     *service.App
	limiter *RateLimiter
	logger  *zap.Logger
}

// NewHandler creates a new HTTP handler. A nil limiter disables rate limiting.
func NewHandler(app *service.App, limiter *RateLimiter) *Handler {
	return &Handler{
		app:     app,
		limiter: limiter,
		logger:  util.GetLogger(),
	}
}

// CreateOrderRequest is the body of POST /orders
type CreateOrderRequest struct {
	ProductID  string `json:"productId" binding:"required"`
	BuyerName  string `json:"buyerName" binding:"required"`
	BuyerPhone string `json:"buyerPhone" binding:"required"`
}

// ProfileRequest is the body of PUT /profile
type ProfileRequest struct {
	Name  string `json:"name" binding:"required"`
	Phone string `json:"phone"`
	Email string `json:"email"`
}

// TestMessageRequest is the body of POST /whatsapp/test
type TestMessageRequest struct {
	To      string `json:"to" binding:"required"`
	Message string `json:"message" binding:"required"`
}

// SetupRoutes sets up HTTP routes
func (h *Handler) SetupRoutes(router *gin.Engine) {
	router.Use(gin.Recovery())
	router.Use(prometheusMiddleware())
	router.Use(gin.Logger())

	router.GET("/health", h.healthCheck)
	router.GET("/ready", h.readinessCheck)

	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	v1 := router.Group("/api/v1")
	if h.limiter != nil {
		v1.Use(h.limiter.Middleware())
	}
	{
		v1.GET("/products", h.listProducts)
		v1.POST("/products", h.createProduct)
		v1.GET("/products/:id", h.getProduct)
		v1.PUT("/products/:id", h.updateProduct)
		v1.DELETE("/products/:id", h.deleteProduct)

		v1.GET("/orders", h.listOrders)
		v1.POST("/orders", h.createOrder)
		v1.GET("/orders/:id", h.getOrder)
		v1.POST("/orders/:id/accept", h.setOrderStatus(models.OrderStatusAccepted))
		v1.POST("/orders/:id/reject", h.setOrderStatus(models.OrderStatusRejected))

		v1.GET("/notifications", h.listNotifications)
		v1.POST("/notifications/:id/read", h.markNotificationRead)

		v1.GET("/templates", h.listTemplates)
		v1.PUT("/templates/:id", h.updateTemplate)

		v1.GET("/settings", h.getSettings)
		v1.PUT("/settings", h.updateSettings)

		v1.GET("/profile", h.getProfile)
		v1.PUT("/profile", h.updateProfile)

		v1.POST("/whatsapp/test", h.sendTestMessage)
	}
}

// healthCheck handles health check requests
func (h *Handler) healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "healthy",
		"time":   time.Now().Unix(),
	})
}

// readinessCheck handles readiness check requests
func (h *Handler) readinessCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "ready",
		"time":   time.Now().Unix(),
	})
}

func (h *Handler) listProducts(c *gin.Context) {
	c.JSON(http.StatusOK, h.app.Catalog.ListProducts())
}

func (h *Handler) getProduct(c *gin.Context) {
	product, err := h.app.Catalog.GetProduct(c.Param("id"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, product)
}

func (h *Handler) createProduct(c *gin.Context) {
	var product models.Product
	if !bindJSON(c, &product) {
		return
	}
	if err := service.ValidateProduct(product); err != nil {
		h.respondError(c, err)
		return
	}

	created, err := h.app.Catalog.AddProduct(c.Request.Context(), product)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

func (h *Handler) updateProduct(c *gin.Context) {
	var product models.Product
	if !bindJSON(c, &product) {
		return
	}
	product.ID = c.Param("id")
	if err := service.ValidateProduct(product); err != nil {
		h.respondError(c, err)
		return
	}

	if err := h.app.Catalog.UpdateProduct(c.Request.Context(), product); err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, product)
}

func (h *Handler) deleteProduct(c *gin.Context) {
	if err := h.app.Catalog.DeleteProduct(c.Request.Context(), c.Param("id")); err != nil {
		h.respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// listOrders handles order listing with optional status, date range and
// buyer search filters
func (h *Handler) listOrders(c *gin.Context) {
	filter := service.OrderFilter{
		Status: c.Query("status"),
		Query:  c.Query("q"),
	}

	if from := c.Query("from"); from != "" {
		t, err := time.ParseInLocation(dateLayout, from, time.Local)
		if err != nil {
			h.respondError(c, apperrors.NewValidationError("invalid from date",
				apperrors.ValidationDetail{Field: "from", Message: "expected YYYY-MM-DD"}))
			return
		}
		filter.From = t
	}
	if to := c.Query("to"); to != "" {
		t, err := time.ParseInLocation(dateLayout, to, time.Local)
		if err != nil {
			h.respondError(c, apperrors.NewValidationError("invalid to date",
				apperrors.ValidationDetail{Field: "to", Message: "expected YYYY-MM-DD"}))
			return
		}
		filter.To = t.AddDate(0, 0, 1).Add(-time.Nanosecond)
	}

	c.JSON(http.StatusOK, h.app.Orders.ListOrders(filter))
}

// createOrder handles order placement
func (h *Handler) createOrder(c *gin.Context) {
	var req CreateOrderRequest
	if !bindJSON(c, &req) {
		return
	}

	if !whatsapp.ValidatePhoneNumber(req.BuyerPhone) {
		h.respondError(c, apperrors.NewValidationError("invalid order",
			apperrors.ValidationDetail{Field: "buyerPhone", Message: "invalid phone number format"}))
		return
	}

	order, err := h.app.Orders.PlaceOrder(c.Request.Context(), req.ProductID, req.BuyerName, req.BuyerPhone)
	if err != nil {
		if order != nil {
			// the order exists; only the buyer notification failed
			c.JSON(statusFor(err), gin.H{
				"error": err.Error(),
				"order": order,
			})
			return
		}
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, order)
}

// getOrder handles get order by ID
func (h *Handler) getOrder(c *gin.Context) {
	order, err := h.app.Orders.GetOrder(c.Param("id"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, order)
}

func (h *Handler) setOrderStatus(status string) gin.HandlerFunc {
	return func(c *gin.Context) {
		orderID := c.Param("id")
		if err := h.app.Orders.UpdateOrderStatus(c.Request.Context(), orderID, status); err != nil {
			h.respondError(c, err)
			return
		}

		order, err := h.app.Orders.GetOrder(orderID)
		if err != nil {
			h.respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, order)
	}
}

func (h *Handler) listNotifications(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"notifications": h.app.Notifications.List(),
		"unread":        h.app.Notifications.UnreadCount(),
	})
}

func (h *Handler) markNotificationRead(c *gin.Context) {
	h.app.Notifications.MarkRead(c.Param("id"))
	c.JSON(http.StatusOK, gin.H{
		"unread": h.app.Notifications.UnreadCount(),
	})
}

func (h *Handler) listTemplates(c *gin.Context) {
	c.JSON(http.StatusOK, h.app.State.Templates())
}

func (h *Handler) updateTemplate(c *gin.Context) {
	var tmpl models.WhatsAppTemplate
	if !bindJSON(c, &tmpl) {
		return
	}
	tmpl.ID = c.Param("id")

	updated, err := h.app.Settings.UpdateTemplate(c.Request.Context(), tmpl)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

func (h *Handler) getSettings(c *gin.Context) {
	c.JSON(http.StatusOK, h.app.State.Settings())
}

func (h *Handler) updateSettings(c *gin.Context) {
	var settings models.Settings
	if !bindJSON(c, &settings) {
		return
	}

	if err := h.app.Settings.UpdateSettings(c.Request.Context(), settings); err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, h.app.State.Settings())
}

func (h *Handler) getProfile(c *gin.Context) {
	c.JSON(http.StatusOK, h.app.State.CurrentUser())
}

func (h *Handler) updateProfile(c *gin.Context) {
	var req ProfileRequest
	if !bindJSON(c, &req) {
		return
	}

	user, err := h.app.Settings.UpdateProfile(c.Request.Context(), req.Name, req.Phone, req.Email)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

func (h *Handler) sendTestMessage(c *gin.Context) {
	var req TestMessageRequest
	if !bindJSON(c, &req) {
		return
	}

	if err := h.app.Settings.SendTestMessage(c.Request.Context(), req.To, req.Message); err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "sent"})
}

func bindJSON(c *gin.Context, dst interface{}) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request body",
			"details": err.Error(),
		})
		return false
	}
	return true
}

// statusFor maps domain errors to HTTP status codes
func statusFor(err error) int {
	if _, ok := apperrors.IsValidationError(err); ok {
		return http.StatusBadRequest
	}
	if _, ok := apperrors.IsNotFoundError(err); ok {
		return http.StatusNotFound
	}
	if _, ok := apperrors.IsConfigError(err); ok {
		return http.StatusPreconditionFailed
	}
	if _, ok := apperrors.IsDeliveryError(err); ok {
		return http.StatusBadGateway
	}
	return http.StatusInternalServerError
}

func (h *Handler) respondError(c *gin.Context, err error) {
	status := statusFor(err)
	body := gin.H{"error": err.Error()}
	if ve, ok := apperrors.IsValidationError(err); ok && len(ve.Details) > 0 {
		body["details"] = ve.Details
	}
	if status == http.StatusInternalServerError {
		h.logger.Error("Request failed",
			zap.String("path", c.FullPath()),
			zap.Error(err))
	}
	c.JSON(status, body)
}

// prometheusMiddleware collects HTTP metrics
func prometheusMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		duration := time.Since(start).Seconds()
		status := strconv.Itoa(c.Writer.Status())

		util.HTTPRequestDuration.WithLabelValues(
			c.Request.Method,
			c.FullPath(),
			status,
		).Observe(duration)

		util.HTTPRequestsTotal.WithLabelValues(
			c.Request.Method,
			c.FullPath(),
			status,
		).Inc()
	}
}
