package service

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"farmafacil/internal/gateway"
	"farmafacil/internal/metrics"
	"farmafacil/internal/model"
	"farmafacil/internal/session"

	"github.com/rs/zerolog"
)

const (
	minPhoneLength = 9
	otpCodeLength  = 6
)

// authService implements AuthService.
type authService struct {
	gw       gateway.Gateway
	store    session.Store
	throttle *OTPThrottle
	metrics  *metrics.AppMetrics
	logger   zerolog.Logger
}

// NewAuthService creates a new auth service.
func NewAuthService(
	gw gateway.Gateway,
	store session.Store,
	throttle *OTPThrottle,
	appMetrics *metrics.AppMetrics,
	logger zerolog.Logger,
) AuthService {
	return &authService{
		gw:       gw,
		store:    store,
		throttle: throttle,
		metrics:  appMetrics,
		logger:   logger.With().Str("service", "auth").Logger(),
	}
}

// RequestOTP sends a login code to phone.
func (s *authService) RequestOTP(ctx context.Context, sess *session.Session, phone string) (model.OTPResult, error) {
	phone = strings.TrimSpace(phone)
	if utf8.RuneCountInString(phone) < minPhoneLength {
		return model.OTPResult{}, model.ErrInvalidPhone
	}

	if !s.throttle.Allow(phone) {
		s.logger.Warn().Str("phone", phone).Msg("otp request throttled")
		s.metrics.RecordOTPRequest(ctx, "throttled")
		return model.OTPResult{}, model.ErrOTPThrottled
	}

	result, err := s.gw.SendOTP(ctx, phone)
	if err != nil {
		s.throttle.Release(phone)
		return model.OTPResult{}, fmt.Errorf("failed to send otp: %w", err)
	}
	if !result.Success {
		s.throttle.Release(phone)
	}
	s.metrics.RecordOTPRequest(ctx, "sent")

	if result.Success {
		err := updateSession(ctx, s.store, sess, func(ss *session.Session) error {
			ss.PendingPhone = phone
			return nil
		})
		if err != nil {
			return model.OTPResult{}, err
		}
	}

	s.logger.Info().Str("session_id", sess.ID).Bool("success", result.Success).Msg("otp requested")

	return result, nil
}

// VerifyOTP completes the login. On success the user replaces the pending phone.
func (s *authService) VerifyOTP(ctx context.Context, sess *session.Session, code string) (model.VerifyResult, error) {
	if sess.PendingPhone == "" {
		return model.VerifyResult{}, model.ErrNoPendingLogin
	}

	code = strings.TrimSpace(code)
	if utf8.RuneCountInString(code) != otpCodeLength {
		return model.VerifyResult{}, model.ErrInvalidOTPCode
	}

	result, err := s.gw.VerifyOTP(ctx, sess.PendingPhone, code)
	if err != nil {
		return model.VerifyResult{}, fmt.Errorf("failed to verify otp: %w", err)
	}
	s.metrics.RecordLogin(ctx, result.Success)

	if !result.Success {
		s.logger.Debug().Str("session_id", sess.ID).Msg("otp verification failed")
		return result, nil
	}

	err = updateSession(ctx, s.store, sess, func(ss *session.Session) error {
		ss.User = result.User
		ss.PendingPhone = ""
		return nil
	})
	if err != nil {
		return model.VerifyResult{}, err
	}

	s.logger.Info().Str("session_id", sess.ID).Str("user_id", result.User.ID).Msg("user logged in")

	return result, nil
}

// Logout calls the gateway and deletes the session.
func (s *authService) Logout(ctx context.Context, sess *session.Session) error {
	if err := s.gw.Logout(ctx); err != nil {
		return fmt.Errorf("failed to logout: %w", err)
	}

	if err := s.store.Delete(ctx, sess.ID); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}

	s.logger.Info().Str("session_id", sess.ID).Msg("user logged out")

	return nil
}

// CurrentUser returns ErrUnauthorised when nobody is logged in.
func (s *authService) CurrentUser(ctx context.Context, sess *session.Session) (*model.User, error) {
	if sess == nil || !sess.LoggedIn() {
		return nil, model.ErrUnauthorised
	}
	return sess.User, nil
}
