package handler

import (
	"net/http"

	"farmafacil/internal/service"

	"github.com/rs/zerolog"
)

// DashboardHandler handles the home screen.
type DashboardHandler struct {
	service service.DashboardService
	logger  zerolog.Logger
}

// NewDashboardHandler creates a new dashboard handler.
func NewDashboardHandler(service service.DashboardService, logger zerolog.Logger) *DashboardHandler {
	return &DashboardHandler{
		service: service,
		logger:  logger.With().Str("handler", "dashboard").Logger(),
	}
}

// Get handles GET /api/dashboard requests.
func (h *DashboardHandler) Get(w http.ResponseWriter, r *http.Request) {
	sess, ok := sessionFrom(w, r, h.logger)
	if !ok {
		return
	}

	dashboard, err := h.service.Get(r.Context(), sess)
	if err != nil {
		writeServiceError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, dashboard)
}

// Promotions handles GET /api/promotions requests.
func (h *DashboardHandler) Promotions(w http.ResponseWriter, r *http.Request) {
	promotions, err := h.service.Promotions(r.Context())
	if err != nil {
		writeServiceError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, promotions)
}

// RecommendedProducts handles GET /api/products/recommended requests.
func (h *DashboardHandler) RecommendedProducts(w http.ResponseWriter, r *http.Request) {
	products, err := h.service.RecommendedProducts(r.Context())
	if err != nil {
		writeServiceError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, products)
}
