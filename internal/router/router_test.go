package router

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"farmafacil/internal/assistant"
	"farmafacil/internal/cart"
	"farmafacil/internal/fixture"
	"farmafacil/internal/gateway"
	"farmafacil/internal/handler"
	"farmafacil/internal/metrics"
	"farmafacil/internal/model"
	"farmafacil/internal/repository"
	"farmafacil/internal/service"
	"farmafacil/internal/session"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testPharmacyID = "F012-DEMO"

func setupTestServer(t *testing.T) http.Handler {
	t.Helper()

	logger := zerolog.Nop()

	items, err := fixture.ParseCatalog([]byte(`[
		{"id":"C1","nombre":"Paracetamol 500mg","precio":3.50,"stock":10,"categoria":"Medicamentos"},
		{"id":"C2","nombre":"Ibuprofeno 400mg","precio":4.20,"stock":8,"categoria":"Medicamentos"},
		{"id":"C3","nombre":"Vitamina C 1000mg","precio":12.90,"stock":5,"categoria":"Vitaminas"}
	]`))
	require.NoError(t, err)

	repo := repository.NewMemoryRepository(fixture.New(fixture.DemoPharmacy(), items))
	store := session.NewMemoryStore(time.Hour, logger)
	gw := gateway.New(repo, gateway.Delays{}, logger)
	appMetrics := metrics.NewNoop()

	authService := service.NewAuthService(gw, store, service.NewOTPThrottle(0), appMetrics, logger)
	dashboardService := service.NewDashboardService(gw, logger)
	orderService := service.NewOrderService(gw, "34612345678", logger)
	couponService := service.NewCouponService(gw, logger)
	assistantService := service.NewAssistantService(assistant.NewDefaultResponder(), store, 0, appMetrics, logger)
	kioskService := service.NewKioskService(repo, store, cart.NewCheckout(cart.DefaultClearDelay), appMetrics, logger)

	return New(Handlers{
		Auth:      handler.NewAuthHandler(authService, logger),
		Dashboard: handler.NewDashboardHandler(dashboardService, logger),
		Order:     handler.NewOrderHandler(orderService, logger),
		Coupon:    handler.NewCouponHandler(couponService, logger),
		Assistant: handler.NewAssistantHandler(assistantService, logger),
		Kiosk:     handler.NewKioskHandler(kioskService, logger),
	}, Options{
		Store:      store,
		SessionTTL: time.Hour,
		Metrics:    appMetrics,
	}, logger)
}

// client replays the session id the server hands out.
type client struct {
	t         *testing.T
	server    http.Handler
	sessionID string
}

func (c *client) do(method, path string, body any) *httptest.ResponseRecorder {
	c.t.Helper()

	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(c.t, err)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if c.sessionID != "" {
		req.Header.Set(session.HeaderName, c.sessionID)
	}
	w := httptest.NewRecorder()

	c.server.ServeHTTP(w, req)

	if id := w.Header().Get(session.HeaderName); id != "" {
		c.sessionID = id
	}
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()

	var v T
	require.NoError(t, json.NewDecoder(w.Body).Decode(&v))
	return v
}

func login(t *testing.T, c *client) {
	t.Helper()

	w := c.do(http.MethodPost, "/api/auth/otp", model.OTPRequest{Phone: "600123456"})
	require.Equal(t, http.StatusOK, w.Code)

	w = c.do(http.MethodPost, "/api/auth/verify", model.VerifyRequest{Code: fixture.OTPCode})
	require.Equal(t, http.StatusOK, w.Code)
	require.True(t, decode[model.VerifyResult](t, w).Success)
}

func TestHealth(t *testing.T) {
	server := setupTestServer(t)

	w := httptest.NewRecorder()
	server.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "healthy")
	assert.Empty(t, w.Header().Get(session.HeaderName))
}

func TestLoginFlow(t *testing.T) {
	c := &client{t: t, server: setupTestServer(t)}

	t.Run("protected route without login", func(t *testing.T) {
		w := c.do(http.MethodGet, "/api/dashboard", nil)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.NotEmpty(t, c.sessionID)
	})

	t.Run("verify before requesting a code", func(t *testing.T) {
		w := c.do(http.MethodPost, "/api/auth/verify", model.VerifyRequest{Code: "123456"})
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, model.ErrCodeNoPendingLogin, decode[model.ErrorResponse](t, w).Error)
	})

	t.Run("short phone", func(t *testing.T) {
		w := c.do(http.MethodPost, "/api/auth/otp", model.OTPRequest{Phone: "12345"})
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, model.ErrCodeInvalidPhone, decode[model.ErrorResponse](t, w).Error)
	})

	t.Run("malformed body", func(t *testing.T) {
		w := c.do(http.MethodPost, "/api/auth/otp", nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, model.ErrCodeInvalidJSON, decode[model.ErrorResponse](t, w).Error)
	})

	t.Run("request code", func(t *testing.T) {
		w := c.do(http.MethodPost, "/api/auth/otp", model.OTPRequest{Phone: "600123456"})
		require.Equal(t, http.StatusOK, w.Code)
		assert.True(t, decode[model.OTPResult](t, w).Success)
	})

	t.Run("code with wrong length", func(t *testing.T) {
		w := c.do(http.MethodPost, "/api/auth/verify", model.VerifyRequest{Code: "123"})
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, model.ErrCodeInvalidOTPCode, decode[model.ErrorResponse](t, w).Error)
	})

	t.Run("wrong code", func(t *testing.T) {
		w := c.do(http.MethodPost, "/api/auth/verify", model.VerifyRequest{Code: "000000"})
		require.Equal(t, http.StatusOK, w.Code)
		result := decode[model.VerifyResult](t, w)
		assert.False(t, result.Success)
		assert.Nil(t, result.User)
	})

	t.Run("correct code", func(t *testing.T) {
		w := c.do(http.MethodPost, "/api/auth/verify", model.VerifyRequest{Code: "123456"})
		require.Equal(t, http.StatusOK, w.Code)
		result := decode[model.VerifyResult](t, w)
		assert.True(t, result.Success)
		require.NotNil(t, result.User)
		assert.Equal(t, fixture.User().Name, result.User.Name)
	})

	t.Run("me", func(t *testing.T) {
		w := c.do(http.MethodGet, "/api/me", nil)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, fixture.User().ID, decode[model.User](t, w).ID)
	})

	t.Run("logout ends the session", func(t *testing.T) {
		w := c.do(http.MethodPost, "/api/auth/logout", nil)
		require.Equal(t, http.StatusNoContent, w.Code)

		w = c.do(http.MethodGet, "/api/me", nil)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

func TestCustomerScreens(t *testing.T) {
	c := &client{t: t, server: setupTestServer(t)}
	login(t, c)

	t.Run("dashboard", func(t *testing.T) {
		w := c.do(http.MethodGet, "/api/dashboard", nil)
		require.Equal(t, http.StatusOK, w.Code)

		dash := decode[model.Dashboard](t, w)
		assert.Len(t, dash.Promotions, 3)
		assert.Len(t, dash.Products, 4)
		require.Len(t, dash.ActiveOrders, 1)
		assert.Equal(t, "001", dash.ActiveOrders[0].ID)
	})

	t.Run("order history newest first", func(t *testing.T) {
		w := c.do(http.MethodGet, "/api/orders", nil)
		require.Equal(t, http.StatusOK, w.Code)

		orders := decode[[]model.OrderSummary](t, w)
		require.Len(t, orders, 3)
		assert.Equal(t, "001", orders[0].ID)
		assert.Equal(t, "003", orders[2].ID)
	})

	t.Run("order detail", func(t *testing.T) {
		w := c.do(http.MethodGet, "/api/orders/001", nil)
		require.Equal(t, http.StatusOK, w.Code)

		detail := decode[model.OrderDetail](t, w)
		assert.Equal(t, "Preparando", detail.StatusLabel)
		assert.True(t, detail.ShowEstimate)
		assert.Contains(t, detail.ContactURL, "https://wa.me/34612345678?text=")
		assert.True(t, detail.Total.Equal(detail.ComputedTotal()))
	})

	t.Run("missing order", func(t *testing.T) {
		w := c.do(http.MethodGet, "/api/orders/999", nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Equal(t, model.ErrCodeOrderNotFound, decode[model.ErrorResponse](t, w).Error)
	})

	t.Run("coupons", func(t *testing.T) {
		w := c.do(http.MethodGet, "/api/coupons", nil)
		require.Equal(t, http.StatusOK, w.Code)

		wallet := decode[map[string][]model.Coupon](t, w)
		assert.Len(t, wallet["new"], 1)
		assert.Len(t, wallet["active"], 2)
		assert.Len(t, wallet["expired"], 1)
	})

	t.Run("coupon lookup", func(t *testing.T) {
		w := c.do(http.MethodGet, "/api/coupons/vitaplus", nil)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "VITAPLUS", decode[model.Coupon](t, w).Code)

		w = c.do(http.MethodGet, "/api/coupons/NOPE", nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("lists", func(t *testing.T) {
		w := c.do(http.MethodGet, "/api/promotions", nil)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Len(t, decode[[]model.Promotion](t, w), 3)

		w = c.do(http.MethodGet, "/api/products/recommended", nil)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Len(t, decode[[]model.Product](t, w), 4)
	})

	t.Run("wrong method", func(t *testing.T) {
		w := c.do(http.MethodDelete, "/api/orders", nil)
		assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
	})
}

func TestAssistantChat(t *testing.T) {
	c := &client{t: t, server: setupTestServer(t)}
	login(t, c)

	w := c.do(http.MethodGet, "/api/assistant/quick-actions", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode[[]model.QuickAction](t, w), 5)

	w = c.do(http.MethodGet, "/api/assistant/messages", nil)
	require.Equal(t, http.StatusOK, w.Code)
	msgs := decode[[]model.ChatMessage](t, w)
	require.Len(t, msgs, 1)
	assert.Equal(t, assistant.WelcomeMessage, msgs[0].Text)

	w = c.do(http.MethodPost, "/api/assistant/messages", model.AssistantRequest{
		Mensaje:    "Busco algo barato",
		FarmaciaID: testPharmacyID,
		ClienteID:  "1",
	})
	require.Equal(t, http.StatusOK, w.Code)
	reply := decode[service.AssistantReply](t, w)
	assert.Equal(t, assistant.RulePrice, reply.Rule)
	assert.Len(t, reply.Productos, 2)

	w = c.do(http.MethodPost, "/api/assistant/messages", model.AssistantRequest{Mensaje: "  "})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = c.do(http.MethodGet, "/api/assistant/messages", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode[[]model.ChatMessage](t, w), 3)
}

func TestKiosk(t *testing.T) {
	c := &client{t: t, server: setupTestServer(t)}
	base := "/api/pharmacies/" + testPharmacyID

	t.Run("pharmacy", func(t *testing.T) {
		w := c.do(http.MethodGet, base, nil)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "#1E7F76", decode[model.Pharmacy](t, w).BrandColor)

		w = c.do(http.MethodGet, "/api/pharmacies/F999", nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("catalog", func(t *testing.T) {
		w := c.do(http.MethodGet, base+"/catalog?category=Medicamentos&kiosk=1", nil)
		require.Equal(t, http.StatusOK, w.Code)

		var page struct {
			Categories []string      `json:"categories"`
			Items      []any         `json:"items"`
			Actions    []cart.Action `json:"actions"`
		}
		require.NoError(t, json.NewDecoder(w.Body).Decode(&page))
		assert.Equal(t, []string{"All", "Medicamentos", "Vitaminas"}, page.Categories)
		assert.Len(t, page.Items, 2)
		assert.Len(t, page.Actions, 3)
	})

	t.Run("counter order", func(t *testing.T) {
		w := c.do(http.MethodPost, base+"/cart/submit", nil)
		assert.Equal(t, http.StatusConflict, w.Code)
		assert.Equal(t, model.ErrCodeEmptyCart, decode[model.ErrorResponse](t, w).Error)

		for _, id := range []string{"C1", "C1", "C3"} {
			w = c.do(http.MethodPost, base+"/cart/items", handler.AddItemRequest{ProductID: id})
			require.Equal(t, http.StatusOK, w.Code)
		}

		w = c.do(http.MethodPost, base+"/cart/items", handler.AddItemRequest{ProductID: "C404"})
		assert.Equal(t, http.StatusNotFound, w.Code)

		w = c.do(http.MethodGet, base+"/cart", nil)
		require.Equal(t, http.StatusOK, w.Code)
		view := decode[cart.View](t, w)
		assert.Equal(t, 3, view.Units)
		assert.Equal(t, "19.90", view.Total.StringFixed(2))

		w = c.do(http.MethodPost, base+"/cart/submit", nil)
		require.Equal(t, http.StatusOK, w.Code)
		view = decode[cart.View](t, w)
		assert.True(t, view.Submitted)
		require.NotNil(t, view.Submission)
		assert.Regexp(t, `^DEMO-\d{4}$`, view.Submission.Receipt)

		w = c.do(http.MethodPost, base+"/cart/items", handler.AddItemRequest{ProductID: "C2"})
		assert.Equal(t, http.StatusConflict, w.Code)

		w = c.do(http.MethodPost, base+"/cart/reset", nil)
		require.Equal(t, http.StatusOK, w.Code)
		view = decode[cart.View](t, w)
		assert.False(t, view.Submitted)
		assert.Equal(t, 3, view.Units)
	})

	t.Run("kiosk submission", func(t *testing.T) {
		w := c.do(http.MethodPost, base+"/cart/submit?kiosk=1", nil)
		require.Equal(t, http.StatusOK, w.Code)
		view := decode[cart.View](t, w)
		require.NotNil(t, view.Submission)
		assert.Equal(t, cart.ModeKiosk, view.Submission.Mode)
		assert.NotNil(t, view.Submission.ClearsAt)
		assert.Empty(t, view.Submission.Receipt)
	})
}
