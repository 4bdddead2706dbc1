package router

import (
	"net/http"
	"time"

	"farmafacil/internal/handler"
	"farmafacil/internal/metrics"
	"farmafacil/internal/middleware"
	"farmafacil/internal/session"

	"github.com/rs/zerolog"
)

// Handlers groups the HTTP handlers served by the router.
type Handlers struct {
	Auth      *handler.AuthHandler
	Dashboard *handler.DashboardHandler
	Order     *handler.OrderHandler
	Coupon    *handler.CouponHandler
	Assistant *handler.AssistantHandler
	Kiosk     *handler.KioskHandler
}

// Options configures the session and metrics layers.
type Options struct {
	Store      session.Store
	SessionTTL time.Duration
	Metrics    *metrics.AppMetrics
}

// New creates a new HTTP router with all routes and middleware configured.
func New(h Handlers, opts Options, logger zerolog.Logger) http.Handler {
	mux := http.NewServeMux()

	withSession := middleware.Session(opts.Store, opts.SessionTTL, logger)
	requireUser := middleware.RequireUser(logger)

	// anonymous routes get a session created on demand
	open := func(fn http.HandlerFunc) http.Handler {
		return withSession(fn)
	}
	protected := func(fn http.HandlerFunc) http.Handler {
		return withSession(requireUser(fn))
	}

	// Health check endpoint (no session required)
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status": "healthy"}`))
	})

	// Login
	mux.Handle("POST /api/auth/otp", open(h.Auth.RequestOTP))
	mux.Handle("POST /api/auth/verify", open(h.Auth.VerifyOTP))
	mux.Handle("POST /api/auth/logout", open(h.Auth.Logout))
	mux.Handle("GET /api/me", protected(h.Auth.Me))

	// Customer screens
	mux.Handle("GET /api/dashboard", protected(h.Dashboard.Get))
	mux.Handle("GET /api/promotions", protected(h.Dashboard.Promotions))
	mux.Handle("GET /api/products/recommended", protected(h.Dashboard.RecommendedProducts))
	mux.Handle("GET /api/orders", protected(h.Order.List))
	mux.Handle("GET /api/orders/{id}", protected(h.Order.GetByID))
	mux.Handle("GET /api/coupons", protected(h.Coupon.Wallet))
	mux.Handle("GET /api/coupons/{code}", protected(h.Coupon.Lookup))

	// Assistant
	mux.Handle("GET /api/assistant/quick-actions", protected(h.Assistant.QuickActions))
	mux.Handle("GET /api/assistant/messages", protected(h.Assistant.Messages))
	mux.Handle("POST /api/assistant/messages", protected(h.Assistant.Send))

	// Kiosk
	mux.Handle("GET /api/pharmacies/{id}", open(h.Kiosk.Pharmacy))
	mux.Handle("GET /api/pharmacies/{id}/catalog", open(h.Kiosk.Catalog))
	mux.Handle("GET /api/pharmacies/{id}/cart", open(h.Kiosk.Cart))
	mux.Handle("POST /api/pharmacies/{id}/cart/items", open(h.Kiosk.AddItem))
	mux.Handle("POST /api/pharmacies/{id}/cart/submit", open(h.Kiosk.Submit))
	mux.Handle("POST /api/pharmacies/{id}/cart/reset", open(h.Kiosk.Reset))

	// Apply middleware in order: Recovery -> Logging -> CORS -> Metrics
	var handler http.Handler = mux
	handler = middleware.Metrics(opts.Metrics)(handler)
	handler = middleware.CORS(handler)
	handler = middleware.Logging(logger)(handler)
	handler = middleware.Recovery(logger)(handler)

	return handler
}
