package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	apperrors "storefront/internal/errors"
	"storefront/internal/models"
	"storefront/internal/service"
	"storefront/internal/store"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubSender struct {
	err error
}

func (s stubSender) Send(context.Context, string, string) error {
	return s.err
}

func setupRouter(t *testing.T, settings models.Settings, sendErr error, limiter *RateLimiter) (*gin.Engine, *service.App) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := store.NewStore(store.DriverSQLite, filepath.Join(t.TempDir(), "storefront.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	senders := func(apiKey string) (service.Sender, error) {
		if apiKey == "" {
			return nil, apperrors.NewConfigError("WhatsApp API key not configured")
		}
		return stubSender{err: sendErr}, nil
	}

	app, err := service.NewApp(context.Background(), store.NewPersistence(db, settings), senders, nil)
	require.NoError(t, err)

	router := gin.New()
	NewHandler(app, limiter).SetupRoutes(router)
	return router, app
}

func doRequest(router *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestHealthCheck(t *testing.T) {
	router, _ := setupRouter(t, models.Settings{}, nil, nil)

	w := doRequest(router, http.MethodGet, "/health", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "healthy")
}

func TestCreateOrder(t *testing.T) {
	router, app := setupRouter(t, models.Settings{WhatsAppAPIKey: "key"}, nil, nil)

	w := doRequest(router, http.MethodPost, "/api/v1/orders", CreateOrderRequest{
		ProductID: "1", BuyerName: "Budi", BuyerPhone: "+628123",
	})

	require.Equal(t, http.StatusCreated, w.Code)
	var order models.Order
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &order))
	assert.Equal(t, models.OrderStatusPending, order.Status)
	assert.Len(t, app.State.Orders(), 1)
}

func TestCreateOrder_Errors(t *testing.T) {
	tests := []struct {
		name     string
		settings models.Settings
		sendErr  error
		req      interface{}
		status   int
		orders   int
	}{
		{
			name:   "missing fields",
			req:    map[string]string{"productId": "1"},
			status: http.StatusBadRequest,
		},
		{
			name:   "invalid phone",
			req:    CreateOrderRequest{ProductID: "1", BuyerName: "Budi", BuyerPhone: "abc"},
			status: http.StatusBadRequest,
		},
		{
			name:     "unknown product",
			settings: models.Settings{WhatsAppAPIKey: "key"},
			req:      CreateOrderRequest{ProductID: "99", BuyerName: "Budi", BuyerPhone: "628123"},
			status:   http.StatusNotFound,
		},
		{
			name:   "api key missing",
			req:    CreateOrderRequest{ProductID: "1", BuyerName: "Budi", BuyerPhone: "628123"},
			status: http.StatusPreconditionFailed,
			orders: 1,
		},
		{
			name:     "gateway rejects",
			settings: models.Settings{WhatsAppAPIKey: "key"},
			sendErr:  apperrors.NewDeliveryError("bad key", http.StatusUnauthorized, nil),
			req:      CreateOrderRequest{ProductID: "1", BuyerName: "Budi", BuyerPhone: "628123"},
			status:   http.StatusBadGateway,
			orders:   1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router, app := setupRouter(t, tt.settings, tt.sendErr, nil)

			w := doRequest(router, http.MethodPost, "/api/v1/orders", tt.req)

			assert.Equal(t, tt.status, w.Code)
			assert.Len(t, app.State.Orders(), tt.orders)
			if tt.orders > 0 {
				assert.Contains(t, w.Body.String(), `"order"`)
			}
		})
	}
}

func TestAcceptOrder(t *testing.T) {
	router, app := setupRouter(t, models.Settings{WhatsAppAPIKey: "key"}, nil, nil)

	order, err := app.Orders.PlaceOrder(context.Background(), "1", "Budi", "628123")
	require.NoError(t, err)

	w := doRequest(router, http.MethodPost, "/api/v1/orders/"+order.ID+"/accept", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var got models.Order
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, models.OrderStatusAccepted, got.Status)

	w = doRequest(router, http.MethodGet, "/api/v1/profile", nil)
	var user models.User
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &user))
	assert.Equal(t, 500, user.Credits)

	w = doRequest(router, http.MethodPost, "/api/v1/orders/missing/reject", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestListOrders_Filters(t *testing.T) {
	router, app := setupRouter(t, models.Settings{WhatsAppAPIKey: "key"}, nil, nil)
	ctx := context.Background()

	_, err := app.Orders.PlaceOrder(ctx, "1", "Budi", "628123")
	require.NoError(t, err)
	_, err = app.Orders.PlaceOrder(ctx, "2", "Sari", "628456")
	require.NoError(t, err)

	w := doRequest(router, http.MethodGet, "/api/v1/orders?q=sari", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var orders []models.Order
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &orders))
	require.Len(t, orders, 1)
	assert.Equal(t, "Sari", orders[0].BuyerName)

	w = doRequest(router, http.MethodGet, "/api/v1/orders?status=accepted", nil)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &orders))
	assert.Empty(t, orders)

	w = doRequest(router, http.MethodGet, "/api/v1/orders?from=yesterday", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestNotifications(t *testing.T) {
	router, app := setupRouter(t, models.Settings{WhatsAppAPIKey: "key"}, nil, nil)

	_, err := app.Orders.PlaceOrder(context.Background(), "1", "Budi", "628123")
	require.NoError(t, err)

	w := doRequest(router, http.MethodGet, "/api/v1/notifications", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var resp struct {
		Notifications []models.Notification `json:"notifications"`
		Unread        int                   `json:"unread"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Notifications, 1)
	assert.Equal(t, 1, resp.Unread)

	w = doRequest(router, http.MethodPost, "/api/v1/notifications/"+resp.Notifications[0].ID+"/read", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 0, app.Notifications.UnreadCount())
}

func TestProductCRUD(t *testing.T) {
	router, _ := setupRouter(t, models.Settings{}, nil, nil)

	w := doRequest(router, http.MethodPost, "/api/v1/products", models.Product{Name: "Trial", Credits: 10, ValidityDays: 7})
	require.Equal(t, http.StatusCreated, w.Code)
	var created models.Product
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	require.NotEmpty(t, created.ID)

	w = doRequest(router, http.MethodPost, "/api/v1/products", models.Product{Name: "Bad", ValidityDays: 0})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "validityDays")

	created.Credits = 20
	w = doRequest(router, http.MethodPut, "/api/v1/products/"+created.ID, created)
	require.Equal(t, http.StatusOK, w.Code)

	w = doRequest(router, http.MethodGet, "/api/v1/products/"+created.ID, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"credits":20`)

	w = doRequest(router, http.MethodDelete, "/api/v1/products/"+created.ID, nil)
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = doRequest(router, http.MethodGet, "/api/v1/products/"+created.ID, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestSettingsAndTemplates(t *testing.T) {
	router, app := setupRouter(t, models.Settings{}, nil, nil)

	w := doRequest(router, http.MethodPut, "/api/v1/settings", models.Settings{WhatsAppAPIKey: "key", SenderPhone: "628111"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "key", app.State.Settings().WhatsAppAPIKey)

	w = doRequest(router, http.MethodPut, "/api/v1/templates/"+models.NotificationOrderRejected,
		models.WhatsAppTemplate{Title: "Sorry", Message: "Sorry {customer_name}"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"type":"order_rejected"`)

	w = doRequest(router, http.MethodPost, "/api/v1/whatsapp/test", TestMessageRequest{To: "628123", Message: "ping"})
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRateLimiter(t *testing.T) {
	router, _ := setupRouter(t, models.Settings{}, nil, NewRateLimiter(1, 2))

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		codes = append(codes, doRequest(router, http.MethodGet, "/api/v1/products", nil).Code)
	}

	assert.Equal(t, []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests}, codes)
	assert.Equal(t, http.StatusOK, doRequest(router, http.MethodGet, "/health", nil).Code)
}
