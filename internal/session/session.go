// Package session holds per-client state that the app keeps between requests:
// the pending login phone, the logged-in user, kiosk carts and the assistant
// conversation.
package session

import (
	"context"
	"errors"
	"time"

	"farmafacil/internal/cart"
	"farmafacil/internal/model"

	"github.com/google/uuid"
)

// Header and cookie that carry the session id.
const (
	HeaderName = "X-Session-ID"
	CookieName = "session_id"
)

// Session is the server-side state of one client.
type Session struct {
	ID           string                `json:"id"`
	PendingPhone string                `json:"pendingPhone,omitempty"`
	User         *model.User           `json:"user,omitempty"`
	Carts        map[string]*cart.Cart `json:"carts,omitempty"`
	Conversation []model.ChatMessage   `json:"conversation,omitempty"`
	CreatedAt    time.Time             `json:"createdAt"`
	UpdatedAt    time.Time             `json:"updatedAt"`
}

// New creates an empty session with a random id.
func New(now time.Time) *Session {
	return &Session{
		ID:        uuid.NewString(),
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// LoggedIn reports whether the OTP flow has completed.
func (s *Session) LoggedIn() bool {
	return s.User != nil
}

// Cart returns the cart for a pharmacy, creating it on first use.
func (s *Session) Cart(pharmacyID string) *cart.Cart {
	if s.Carts == nil {
		s.Carts = make(map[string]*cart.Cart)
	}
	c, ok := s.Carts[pharmacyID]
	if !ok {
		c = &cart.Cart{}
		s.Carts[pharmacyID] = c
	}
	return c
}

// Append adds messages to the end of the conversation.
func (s *Session) Append(msgs ...model.ChatMessage) {
	s.Conversation = append(s.Conversation, msgs...)
}

// ErrNotFound is returned by Update when the session expired or was deleted.
var ErrNotFound = errors.New("session not found")

// Store persists sessions. Get returns nil without error for unknown or
// expired ids. Save writes a session unconditionally and is meant for new
// sessions; changes to an existing one go through Update.
//
// Update loads the stored session, applies fn and writes the result, with no
// other Update of the same id interleaved. It never recreates a missing
// session. fn may run more than once and must not block.
type Store interface {
	Get(ctx context.Context, id string) (*Session, error)
	Save(ctx context.Context, s *Session) error
	Update(ctx context.Context, id string, fn func(*Session) error) (*Session, error)
	Delete(ctx context.Context, id string) error
}

type contextKey struct{}

// WithSession returns a context carrying s.
func WithSession(ctx context.Context, s *Session) context.Context {
	return context.WithValue(ctx, contextKey{}, s)
}

// FromContext returns the session stored by WithSession.
func FromContext(ctx context.Context) (*Session, bool) {
	s, ok := ctx.Value(contextKey{}).(*Session)
	return s, ok && s != nil
}
