// Package gateway simulates the remote pharmacy backend. Every call waits a
// fixed latency and then answers from a FixtureRepository.
package gateway

import (
	"context"
	"fmt"
	"time"

	"farmafacil/internal/fixture"
	"farmafacil/internal/model"
	"farmafacil/internal/repository"

	"github.com/rs/zerolog"
)

// Gateway is the data access surface used by the services.
// Negative outcomes (wrong code, unknown order) are results, not errors;
// the only error a call returns is the context's.
type Gateway interface {
	SendOTP(ctx context.Context, phone string) (model.OTPResult, error)
	VerifyOTP(ctx context.Context, phone, code string) (model.VerifyResult, error)
	GetUser(ctx context.Context) (*model.User, error)
	GetOrders(ctx context.Context) ([]model.Order, error)
	GetOrderByID(ctx context.Context, id string) (*model.Order, error)
	GetPromotions(ctx context.Context) ([]model.Promotion, error)
	GetRecommendedProducts(ctx context.Context) ([]model.Product, error)
	GetCoupons(ctx context.Context) ([]model.Coupon, error)
	Logout(ctx context.Context) error
}

// Delays are the simulated latencies. Zero disables a delay.
type Delays struct {
	OTP    time.Duration
	Read   time.Duration
	Logout time.Duration
}

// DefaultDelays returns the latencies of the demo backend.
func DefaultDelays() Delays {
	return Delays{
		OTP:    time.Second,
		Read:   500 * time.Millisecond,
		Logout: 300 * time.Millisecond,
	}
}

type mockGateway struct {
	repo   repository.FixtureRepository
	delays Delays
	logger zerolog.Logger
}

// New creates a mock gateway over repo.
func New(repo repository.FixtureRepository, delays Delays, logger zerolog.Logger) Gateway {
	return &mockGateway{
		repo:   repo,
		delays: delays,
		logger: logger.With().Str("component", "gateway").Logger(),
	}
}

// SendOTP always succeeds; no message is actually sent.
func (g *mockGateway) SendOTP(ctx context.Context, phone string) (model.OTPResult, error) {
	if err := wait(ctx, g.delays.OTP); err != nil {
		return model.OTPResult{}, err
	}

	g.logger.Debug().Str("phone", phone).Msg("otp sent")

	return model.OTPResult{Success: true}, nil
}

// VerifyOTP accepts only the fixed demo code. The phone is not checked.
func (g *mockGateway) VerifyOTP(ctx context.Context, phone, code string) (model.VerifyResult, error) {
	if err := wait(ctx, g.delays.OTP); err != nil {
		return model.VerifyResult{}, err
	}

	if code != fixture.OTPCode {
		g.logger.Debug().Str("phone", phone).Msg("otp rejected")
		return model.VerifyResult{Success: false}, nil
	}

	user, err := g.repo.GetUser(ctx)
	if err != nil {
		return model.VerifyResult{}, fmt.Errorf("failed to load user: %w", err)
	}
	if user == nil {
		g.logger.Warn().Msg("otp accepted but no user is available")
		return model.VerifyResult{Success: false}, nil
	}

	return model.VerifyResult{Success: true, User: user}, nil
}

func (g *mockGateway) GetUser(ctx context.Context) (*model.User, error) {
	if err := wait(ctx, g.delays.Read); err != nil {
		return nil, err
	}
	return g.repo.GetUser(ctx)
}

// GetOrders returns the whole history, unfiltered and unsorted.
func (g *mockGateway) GetOrders(ctx context.Context) ([]model.Order, error) {
	if err := wait(ctx, g.delays.Read); err != nil {
		return nil, err
	}
	return g.repo.GetOrders(ctx)
}

// GetOrderByID returns nil without error when the order does not exist.
func (g *mockGateway) GetOrderByID(ctx context.Context, id string) (*model.Order, error) {
	if err := wait(ctx, g.delays.Read); err != nil {
		return nil, err
	}
	return g.repo.GetOrderByID(ctx, id)
}

func (g *mockGateway) GetPromotions(ctx context.Context) ([]model.Promotion, error) {
	if err := wait(ctx, g.delays.Read); err != nil {
		return nil, err
	}
	return g.repo.GetPromotions(ctx)
}

func (g *mockGateway) GetRecommendedProducts(ctx context.Context) ([]model.Product, error) {
	if err := wait(ctx, g.delays.Read); err != nil {
		return nil, err
	}
	return g.repo.GetRecommendedProducts(ctx)
}

func (g *mockGateway) GetCoupons(ctx context.Context) ([]model.Coupon, error) {
	if err := wait(ctx, g.delays.Read); err != nil {
		return nil, err
	}
	return g.repo.GetCoupons(ctx)
}

// Logout has no server-side effect; session teardown is up to the caller.
func (g *mockGateway) Logout(ctx context.Context) error {
	return wait(ctx, g.delays.Logout)
}

// wait blocks for d or until ctx is done.
func wait(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}

	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
