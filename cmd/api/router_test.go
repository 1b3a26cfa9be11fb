package main

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storefront-backend/internal/config"
	cartHandler "storefront-backend/internal/domains/cart/handler"
	cartmodel "storefront-backend/internal/domains/cart/model"
	categoryHandler "storefront-backend/internal/domains/category/handler"
	orderHandler "storefront-backend/internal/domains/order/handler"
	ordermodel "storefront-backend/internal/domains/order/model"
	productHandler "storefront-backend/internal/domains/product/handler"
	reviewHandler "storefront-backend/internal/domains/review/handler"
	userHandler "storefront-backend/internal/domains/user/handler"
	"storefront-backend/internal/infrastructure/session"
	"storefront-backend/pkg/container"
	"storefront-backend/pkg/jwt"
)

// recordingOrders captures what the order routes hand to the service
type recordingOrders struct {
	checkoutCalls int
	checkoutUser  *uuid.UUID
	listed        bool
}

func (o *recordingOrders) Checkout(_ context.Context, _ cartmodel.Session, userID *uuid.UUID, _ ordermodel.CheckoutRequest) (*ordermodel.OrderResponse, error) {
	o.checkoutCalls++
	o.checkoutUser = userID
	return &ordermodel.OrderResponse{ID: uuid.New(), UserID: userID}, nil
}

func (o *recordingOrders) GetByID(_ context.Context, id, _ uuid.UUID, _ bool) (*ordermodel.OrderResponse, error) {
	return &ordermodel.OrderResponse{ID: id}, nil
}

func (o *recordingOrders) List(_ context.Context, req ordermodel.ListOrdersRequest) (*ordermodel.ListOrdersResponse, error) {
	o.listed = true
	return &ordermodel.ListOrdersResponse{Orders: []ordermodel.OrderResponse{}, Page: req.Page, Limit: req.Limit}, nil
}

func (o *recordingOrders) UpdateStatus(_ context.Context, id uuid.UUID, req ordermodel.UpdateStatusRequest) (*ordermodel.OrderResponse, error) {
	return &ordermodel.OrderResponse{ID: id, Status: req.Status}, nil
}

type testApp struct {
	router *gin.Engine
	orders *recordingOrders
	tokens *jwt.Manager
}

// newTestApp wires the real routes; only the order service is backed
func newTestApp(t *testing.T) *testApp {
	t.Helper()
	gin.SetMode(gin.TestMode)

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	orders := &recordingOrders{}
	tokens := jwt.NewManager("router-test-secret", time.Hour)

	c := &container.Container{
		Config: &config.Config{
			Auth:    config.AuthConfig{RateLimitRPS: 100, RateLimitBurst: 100},
			Session: config.SessionConfig{CookieName: "session_id", TTL: time.Hour, CartSessionID: "cart"},
		},
		SessionStore:    session.NewRedisStore(client),
		JWTManager:      tokens,
		UserHandler:     userHandler.NewUserHandler(nil),
		CategoryHandler: categoryHandler.NewCategoryHandler(nil),
		ProductHandler:  productHandler.NewProductHandler(nil),
		CartHandler:     cartHandler.NewCartHandler(nil),
		ReviewHandler:   reviewHandler.NewReviewHandler(nil),
		OrderHandler:    orderHandler.NewOrderHandler(orders),
	}

	return &testApp{router: SetupRouter(c), orders: orders, tokens: tokens}
}

func (a *testApp) token(t *testing.T, role string) (uuid.UUID, string) {
	t.Helper()
	userID := uuid.New()
	token, err := a.tokens.GenerateAccessToken(userID.String(), "alice", role)
	require.NoError(t, err)
	return userID, token
}

func (a *testApp) do(method, path, token, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	a.router.ServeHTTP(rec, req)
	return rec
}

const checkoutBody = `{"first_name":"Jane","last_name":"Doe","guest_phone":"555-0100","shipping_address":"1 Main St"}`

func TestCheckoutRoute_OptionalAuth(t *testing.T) {
	app := newTestApp(t)

	rec := app.do(http.MethodPost, "/api/v1/orders", "", checkoutBody)
	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Nil(t, app.orders.checkoutUser)
	assert.NotEmpty(t, rec.Result().Cookies(), "guest checkout gets a session cookie")

	userID, token := app.token(t, "customer")
	rec = app.do(http.MethodPost, "/api/v1/orders", token, checkoutBody)
	assert.Equal(t, http.StatusCreated, rec.Code)
	require.NotNil(t, app.orders.checkoutUser)
	assert.Equal(t, userID, *app.orders.checkoutUser)

	// a bad token on the optional route falls back to a guest checkout
	rec = app.do(http.MethodPost, "/api/v1/orders", "not-a-jwt", checkoutBody)
	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Nil(t, app.orders.checkoutUser)
	assert.Equal(t, 3, app.orders.checkoutCalls)
}

func TestOrderRoutes_RequireAuth(t *testing.T) {
	app := newTestApp(t)

	rec := app.do(http.MethodGet, "/api/v1/orders", "", "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = app.do(http.MethodGet, "/api/v1/orders/"+uuid.NewString(), "not-a-jwt", "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.False(t, app.orders.listed)

	_, token := app.token(t, "customer")
	rec = app.do(http.MethodGet, "/api/v1/orders", token, "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, app.orders.listed)
}

func TestAdminRoutes(t *testing.T) {
	app := newTestApp(t)
	_, customer := app.token(t, "customer")
	_, admin := app.token(t, "admin")

	tests := []struct {
		name   string
		method string
		path   string
		token  string
		body   string
		status int
	}{
		{"anonymous", http.MethodGet, "/api/v1/admin/orders", "", "", http.StatusUnauthorized},
		{"customer", http.MethodGet, "/api/v1/admin/orders", customer, "", http.StatusForbidden},
		{"customer category write", http.MethodPost, "/api/v1/admin/categories", customer, `{"name":"Fruit"}`, http.StatusForbidden},
		{"customer product export", http.MethodGet, "/api/v1/admin/products/export", customer, "", http.StatusForbidden},
		{"admin list", http.MethodGet, "/api/v1/admin/orders", admin, "", http.StatusOK},
		{"admin status", http.MethodPatch, "/api/v1/admin/orders/" + uuid.NewString() + "/status", admin, `{"status":"shipped"}`, http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := app.do(tt.method, tt.path, tt.token, tt.body)
			assert.Equal(t, tt.status, rec.Code)
		})
	}
}

func TestAuthRoutes_RateLimited(t *testing.T) {
	app := newTestApp(t)
	app.router = SetupRouter(&container.Container{
		Config: &config.Config{
			Auth:    config.AuthConfig{RateLimitRPS: 0.001, RateLimitBurst: 1},
			Session: config.SessionConfig{CookieName: "session_id", TTL: time.Hour},
		},
		JWTManager:      app.tokens,
		UserHandler:     userHandler.NewUserHandler(nil),
		CategoryHandler: categoryHandler.NewCategoryHandler(nil),
		ProductHandler:  productHandler.NewProductHandler(nil),
		CartHandler:     cartHandler.NewCartHandler(nil),
		ReviewHandler:   reviewHandler.NewReviewHandler(nil),
		OrderHandler:    orderHandler.NewOrderHandler(app.orders),
	})

	// the first request spends the burst; validation fails before the nil service is reached
	rec := app.do(http.MethodPost, "/api/v1/auth/login", "", `{}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = app.do(http.MethodPost, "/api/v1/auth/login", "", `{}`)
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
}
