package middleware

import (
	"encoding/json"
	"net/http"
	"time"

	"farmafacil/internal/model"
	"farmafacil/internal/session"

	"github.com/rs/zerolog"
)

// Session loads the client session named by the X-Session-ID header or the
// session_id cookie, creating a new one when it is missing or expired. The
// id is echoed back in both places.
func Session(store session.Store, ttl time.Duration, logger zerolog.Logger) func(http.Handler) http.Handler {
	logger = logger.With().Str("component", "session").Logger()

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			var sess *session.Session
			if id := sessionID(r); id != "" {
				s, err := store.Get(ctx, id)
				if err != nil {
					logger.Error().Err(err).Msg("failed to load session")
					writeError(w, http.StatusInternalServerError, model.ErrCodeInternalError, "internal server error")
					return
				}
				sess = s
			}

			if sess == nil {
				sess = session.New(time.Now())
				if err := store.Save(ctx, sess); err != nil {
					logger.Error().Err(err).Msg("failed to create session")
					writeError(w, http.StatusInternalServerError, model.ErrCodeInternalError, "internal server error")
					return
				}
				logger.Debug().Str("session_id", sess.ID).Msg("session created")
			}

			w.Header().Set(session.HeaderName, sess.ID)
			http.SetCookie(w, &http.Cookie{
				Name:     session.CookieName,
				Value:    sess.ID,
				Path:     "/",
				MaxAge:   int(ttl.Seconds()),
				HttpOnly: true,
				SameSite: http.SameSiteLaxMode,
			})

			next.ServeHTTP(w, r.WithContext(session.WithSession(ctx, sess)))
		})
	}
}

// RequireUser rejects requests whose session has not completed login.
// It must run after Session.
func RequireUser(logger zerolog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sess, ok := session.FromContext(r.Context())
			if !ok || !sess.LoggedIn() {
				logger.Warn().Str("path", r.URL.Path).Msg("login required")
				writeError(w, http.StatusUnauthorized, model.ErrUnauthorised.Code, model.ErrUnauthorised.Message)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func sessionID(r *http.Request) string {
	if id := r.Header.Get(session.HeaderName); id != "" {
		return id
	}
	if c, err := r.Cookie(session.CookieName); err == nil {
		return c.Value
	}
	return ""
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(model.ErrorResponse{Error: code, Message: message})
}
