package handler

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"farmafacil/internal/model"
	"farmafacil/internal/session"

	"github.com/rs/zerolog"
)

const maxBodyBytes = 1 << 20

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		// headers are already sent
		return
	}
}

// writeError writes an error response with the given status code, code and message.
func writeError(w http.ResponseWriter, status int, code, message string, logger zerolog.Logger) {
	event := logger.Warn()
	if status >= http.StatusInternalServerError {
		event = logger.Error()
	}
	event.Str("code", code).Str("error", message).Int("status", status).Msg("handler error")

	writeJSON(w, status, model.ErrorResponse{Error: code, Message: message})
}

var domainStatus = map[string]int{
	model.ErrCodeInvalidPhone:     http.StatusBadRequest,
	model.ErrCodeInvalidOTPCode:   http.StatusBadRequest,
	model.ErrCodeNoPendingLogin:   http.StatusBadRequest,
	model.ErrCodeEmptyMessage:     http.StatusBadRequest,
	model.ErrCodeOTPThrottled:     http.StatusTooManyRequests,
	model.ErrCodeUnauthorised:     http.StatusUnauthorized,
	model.ErrCodeSessionExpired:   http.StatusUnauthorized,
	model.ErrCodeProductNotFound:  http.StatusNotFound,
	model.ErrCodePharmacyNotFound: http.StatusNotFound,
	model.ErrCodeOrderNotFound:    http.StatusNotFound,
	model.ErrCodeCouponNotFound:   http.StatusNotFound,
	model.ErrCodeEmptyCart:        http.StatusConflict,
	model.ErrCodeCartSubmitted:    http.StatusConflict,
}

// writeServiceError maps a service error to a response. Domain errors carry
// their own code; anything else is logged and hidden behind a generic 500.
func writeServiceError(w http.ResponseWriter, err error, logger zerolog.Logger) {
	var domainErr *model.DomainError
	if errors.As(err, &domainErr) {
		status, ok := domainStatus[domainErr.Code]
		if !ok {
			status = http.StatusBadRequest
		}
		writeError(w, status, domainErr.Code, domainErr.Message, logger)
		return
	}

	if errors.Is(err, context.DeadlineExceeded) {
		logger.Warn().Err(err).Msg("request timed out")
		writeJSON(w, http.StatusGatewayTimeout, model.ErrorResponse{Error: model.ErrCodeTimeout})
		return
	}

	logger.Error().Err(err).Msg("request failed")
	writeJSON(w, http.StatusInternalServerError, model.ErrorResponse{
		Error:   model.ErrCodeInternalError,
		Message: "internal server error",
	})
}

// decodeJSON reads a JSON request body into dst.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)

	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return errors.New("request body is empty")
		}
		return err
	}
	return nil
}

// sessionFrom returns the request session. The session middleware guarantees
// one on every /api route, so a missing session is a wiring error.
func sessionFrom(w http.ResponseWriter, r *http.Request, logger zerolog.Logger) (*session.Session, bool) {
	sess, ok := session.FromContext(r.Context())
	if !ok {
		writeError(w, http.StatusInternalServerError, model.ErrCodeInternalError, "session unavailable", logger)
		return nil, false
	}
	return sess, true
}
