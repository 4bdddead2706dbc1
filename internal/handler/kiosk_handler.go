package handler

import (
	"net/http"
	"strconv"
	"strings"

	"farmafacil/internal/cart"
	"farmafacil/internal/model"
	"farmafacil/internal/service"

	"github.com/rs/zerolog"
)

// KioskHandler handles the pharmacy catalogue and cart.
type KioskHandler struct {
	service service.KioskService
	logger  zerolog.Logger
}

// NewKioskHandler creates a new kiosk handler.
func NewKioskHandler(service service.KioskService, logger zerolog.Logger) *KioskHandler {
	return &KioskHandler{
		service: service,
		logger:  logger.With().Str("handler", "kiosk").Logger(),
	}
}

// AddItemRequest is the payload for adding a product to the cart.
type AddItemRequest struct {
	ProductID string `json:"productId"`
}

// Pharmacy handles GET /api/pharmacies/{id} requests.
func (h *KioskHandler) Pharmacy(w http.ResponseWriter, r *http.Request) {
	pharmacy, err := h.service.GetPharmacy(r.Context(), r.PathValue("id"))
	if err != nil {
		writeServiceError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, pharmacy)
}

// Catalog handles GET /api/pharmacies/{id}/catalog requests.
func (h *KioskHandler) Catalog(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	page, err := h.service.Browse(r.Context(), r.PathValue("id"), service.CatalogQuery{
		Search:   query.Get("q"),
		Category: query.Get("category"),
		Kiosk:    kioskFlag(r),
	})
	if err != nil {
		writeServiceError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, page)
}

// Cart handles GET /api/pharmacies/{id}/cart requests.
func (h *KioskHandler) Cart(w http.ResponseWriter, r *http.Request) {
	sess, ok := sessionFrom(w, r, h.logger)
	if !ok {
		return
	}

	view, err := h.service.Cart(r.Context(), sess, r.PathValue("id"))
	if err != nil {
		writeServiceError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, view)
}

// AddItem handles POST /api/pharmacies/{id}/cart/items requests.
func (h *KioskHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	sess, ok := sessionFrom(w, r, h.logger)
	if !ok {
		return
	}

	var req AddItemRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, model.ErrCodeInvalidJSON, "invalid request body", h.logger)
		return
	}

	productID := strings.TrimSpace(req.ProductID)
	if productID == "" {
		writeError(w, http.StatusBadRequest, model.ErrCodeInvalidJSON, "productId is required", h.logger)
		return
	}

	view, err := h.service.AddToCart(r.Context(), sess, r.PathValue("id"), productID)
	if err != nil {
		writeServiceError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, view)
}

// Submit handles POST /api/pharmacies/{id}/cart/submit requests. kiosk=1
// selects the self-service variant.
func (h *KioskHandler) Submit(w http.ResponseWriter, r *http.Request) {
	sess, ok := sessionFrom(w, r, h.logger)
	if !ok {
		return
	}

	view, err := h.service.Submit(r.Context(), sess, r.PathValue("id"), cart.ParseMode(kioskFlag(r)))
	if err != nil {
		writeServiceError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, view)
}

// Reset handles POST /api/pharmacies/{id}/cart/reset requests.
func (h *KioskHandler) Reset(w http.ResponseWriter, r *http.Request) {
	sess, ok := sessionFrom(w, r, h.logger)
	if !ok {
		return
	}

	view, err := h.service.Reset(r.Context(), sess, r.PathValue("id"))
	if err != nil {
		writeServiceError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, view)
}

// kioskFlag reads the kiosk query parameter; anything unparsable is false.
func kioskFlag(r *http.Request) bool {
	v, err := strconv.ParseBool(r.URL.Query().Get("kiosk"))
	return err == nil && v
}
