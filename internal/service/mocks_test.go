package service

import (
	"context"
	"testing"
	"time"

	"farmafacil/internal/model"
	"farmafacil/internal/session"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockGateway is a mock implementation of gateway.Gateway.
type MockGateway struct {
	mock.Mock
}

func (m *MockGateway) SendOTP(ctx context.Context, phone string) (model.OTPResult, error) {
	args := m.Called(ctx, phone)
	return args.Get(0).(model.OTPResult), args.Error(1)
}

func (m *MockGateway) VerifyOTP(ctx context.Context, phone, code string) (model.VerifyResult, error) {
	args := m.Called(ctx, phone, code)
	return args.Get(0).(model.VerifyResult), args.Error(1)
}

func (m *MockGateway) GetUser(ctx context.Context) (*model.User, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockGateway) GetOrders(ctx context.Context) ([]model.Order, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Order), args.Error(1)
}

func (m *MockGateway) GetOrderByID(ctx context.Context, id string) (*model.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Order), args.Error(1)
}

func (m *MockGateway) GetPromotions(ctx context.Context) ([]model.Promotion, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Promotion), args.Error(1)
}

func (m *MockGateway) GetRecommendedProducts(ctx context.Context) ([]model.Product, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Product), args.Error(1)
}

func (m *MockGateway) GetCoupons(ctx context.Context) ([]model.Coupon, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Coupon), args.Error(1)
}

func (m *MockGateway) Logout(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func newTestStore() *session.MemoryStore {
	return session.NewMemoryStore(time.Hour, zerolog.Nop())
}

// storeSession saves sess the way the session middleware does before any
// service sees it.
func storeSession(t *testing.T, store session.Store, sess *session.Session) *session.Session {
	t.Helper()
	require.NoError(t, store.Save(context.Background(), sess))
	return sess
}

func newLoggedInSession() *session.Session {
	sess := session.New(time.Now())
	sess.User = &model.User{ID: "1", Name: "María García", Phone: "600123456"}
	return sess
}
