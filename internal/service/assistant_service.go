package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"farmafacil/internal/assistant"
	"farmafacil/internal/metrics"
	"farmafacil/internal/model"
	"farmafacil/internal/session"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// assistantService implements AssistantService.
type assistantService struct {
	responder *assistant.Responder
	store     session.Store
	delay     time.Duration
	now       func() time.Time
	metrics   *metrics.AppMetrics
	logger    zerolog.Logger
}

// NewAssistantService creates a new assistant service. delay is the simulated
// thinking time before each reply.
func NewAssistantService(
	responder *assistant.Responder,
	store session.Store,
	delay time.Duration,
	appMetrics *metrics.AppMetrics,
	logger zerolog.Logger,
) AssistantService {
	return &assistantService{
		responder: responder,
		store:     store,
		delay:     delay,
		now:       time.Now,
		metrics:   appMetrics,
		logger:    logger.With().Str("service", "assistant").Logger(),
	}
}

func (s *assistantService) QuickActions() []model.QuickAction {
	return assistant.QuickActions()
}

func (s *assistantService) Conversation(ctx context.Context, sess *session.Session) ([]model.ChatMessage, error) {
	if len(sess.Conversation) > 0 {
		return sess.Conversation, nil
	}

	err := updateSession(ctx, s.store, sess, func(ss *session.Session) error {
		s.open(ss)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return sess.Conversation, nil
}

// Send records the user message, waits the thinking delay and records the
// reply. When the wait is interrupted the apology message is recorded instead
// and the error returned. The session is not held during the delay, so other
// requests of the same session may change it meanwhile.
func (s *assistantService) Send(ctx context.Context, sess *session.Session, req model.AssistantRequest) (*AssistantReply, error) {
	text := strings.TrimSpace(req.Mensaje)
	if text == "" {
		return nil, model.ErrEmptyMessage
	}

	var userMsg model.ChatMessage
	err := updateSession(ctx, s.store, sess, func(ss *session.Session) error {
		s.open(ss)
		userMsg = s.message(model.SenderUser, text, nil)
		ss.Append(userMsg)
		return nil
	})
	if err != nil {
		return nil, err
	}

	if err := s.think(ctx); err != nil {
		// record the apology even when the request was cancelled
		saveErr := s.reply(context.WithoutCancel(ctx), sess, s.message(model.SenderAssistant, assistant.ErrorMessage, nil))
		if saveErr != nil && !errors.Is(saveErr, model.ErrSessionExpired) {
			err = errors.Join(err, saveErr)
		}
		s.logger.Warn().Err(err).Str("session_id", sess.ID).Msg("assistant reply interrupted")
		return nil, fmt.Errorf("failed to reply: %w", err)
	}

	resp := s.responder.Respond(text)
	replyMsg := s.message(model.SenderAssistant, resp.Text, resp.Products)
	if err := s.reply(ctx, sess, replyMsg); err != nil {
		return nil, err
	}

	s.metrics.RecordAssistantReply(ctx, resp.Rule)
	s.logger.Debug().
		Str("session_id", sess.ID).
		Str("farmacia_id", req.FarmaciaID).
		Str("rule", resp.Rule).
		Int("products", len(resp.Products)).
		Msg("assistant replied")

	return &AssistantReply{
		AssistantResponse: model.AssistantResponse{
			Texto:     resp.Text,
			Productos: resp.Products,
		},
		Rule:     resp.Rule,
		Messages: []model.ChatMessage{userMsg, replyMsg},
	}, nil
}

// reply appends msg to the stored conversation.
func (s *assistantService) reply(ctx context.Context, sess *session.Session, msg model.ChatMessage) error {
	return updateSession(ctx, s.store, sess, func(ss *session.Session) error {
		ss.Append(msg)
		return nil
	})
}

// open starts an empty conversation with the welcome message. It reports
// whether the session changed.
func (s *assistantService) open(sess *session.Session) bool {
	if len(sess.Conversation) > 0 {
		return false
	}
	sess.Append(s.message(model.SenderAssistant, assistant.WelcomeMessage, nil))
	return true
}

func (s *assistantService) message(sender model.Sender, text string, products []model.Product) model.ChatMessage {
	return model.ChatMessage{
		ID:        uuid.NewString(),
		Sender:    sender,
		Text:      text,
		Timestamp: s.now(),
		Products:  products,
	}
}

func (s *assistantService) think(ctx context.Context) error {
	if s.delay <= 0 {
		return ctx.Err()
	}

	timer := time.NewTimer(s.delay)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
