package handler

import (
	"net/http"

	"farmafacil/internal/service"

	"github.com/rs/zerolog"
)

// CouponHandler handles the coupons screen.
type CouponHandler struct {
	service service.CouponService
	logger  zerolog.Logger
}

// NewCouponHandler creates a new coupon handler.
func NewCouponHandler(service service.CouponService, logger zerolog.Logger) *CouponHandler {
	return &CouponHandler{
		service: service,
		logger:  logger.With().Str("handler", "coupon").Logger(),
	}
}

// Wallet handles GET /api/coupons requests.
func (h *CouponHandler) Wallet(w http.ResponseWriter, r *http.Request) {
	wallet, err := h.service.Wallet(r.Context())
	if err != nil {
		writeServiceError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, wallet)
}

// Lookup handles GET /api/coupons/{code} requests.
func (h *CouponHandler) Lookup(w http.ResponseWriter, r *http.Request) {
	coupon, err := h.service.Lookup(r.Context(), r.PathValue("code"))
	if err != nil {
		writeServiceError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, coupon)
}
