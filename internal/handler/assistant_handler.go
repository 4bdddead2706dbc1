package handler

import (
	"net/http"

	"farmafacil/internal/model"
	"farmafacil/internal/service"

	"github.com/rs/zerolog"
)

// AssistantHandler handles the chat screen.
type AssistantHandler struct {
	service service.AssistantService
	logger  zerolog.Logger
}

// NewAssistantHandler creates a new assistant handler.
func NewAssistantHandler(service service.AssistantService, logger zerolog.Logger) *AssistantHandler {
	return &AssistantHandler{
		service: service,
		logger:  logger.With().Str("handler", "assistant").Logger(),
	}
}

// QuickActions handles GET /api/assistant/quick-actions requests.
func (h *AssistantHandler) QuickActions(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.service.QuickActions())
}

// Messages handles GET /api/assistant/messages requests.
func (h *AssistantHandler) Messages(w http.ResponseWriter, r *http.Request) {
	sess, ok := sessionFrom(w, r, h.logger)
	if !ok {
		return
	}

	messages, err := h.service.Conversation(r.Context(), sess)
	if err != nil {
		writeServiceError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, messages)
}

// Send handles POST /api/assistant/messages requests.
func (h *AssistantHandler) Send(w http.ResponseWriter, r *http.Request) {
	sess, ok := sessionFrom(w, r, h.logger)
	if !ok {
		return
	}

	var req model.AssistantRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, model.ErrCodeInvalidJSON, "invalid request body", h.logger)
		return
	}

	reply, err := h.service.Send(r.Context(), sess, req)
	if err != nil {
		writeServiceError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, reply)
}
