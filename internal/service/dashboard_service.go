package service

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"farmafacil/internal/gateway"
	"farmafacil/internal/model"
	"farmafacil/internal/session"

	"github.com/rs/zerolog"
)

// dashboardService implements DashboardService.
type dashboardService struct {
	gw     gateway.Gateway
	logger zerolog.Logger
}

// NewDashboardService creates a new dashboard service.
func NewDashboardService(gw gateway.Gateway, logger zerolog.Logger) DashboardService {
	return &dashboardService{
		gw:     gw,
		logger: logger.With().Str("service", "dashboard").Logger(),
	}
}

// Get loads the three dashboard sections concurrently. The first failure
// cancels the other loads. The returned error joins every failure except the
// cancellations that first failure caused.
func (s *dashboardService) Get(ctx context.Context, sess *session.Session) (*model.Dashboard, error) {
	if sess == nil || !sess.LoggedIn() {
		return nil, model.ErrUnauthorised
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	var (
		wg         sync.WaitGroup
		errMu      sync.Mutex
		errs       []error
		promotions []model.Promotion
		products   []model.Product
		orders     []model.Order
	)

	fail := func(err error) {
		errMu.Lock()
		defer errMu.Unlock()
		if len(errs) > 0 && errors.Is(err, context.Canceled) {
			return
		}
		errs = append(errs, err)
		cancel()
	}

	wg.Go(func() {
		var err error
		if promotions, err = s.gw.GetPromotions(ctx); err != nil {
			fail(fmt.Errorf("failed to load promotions: %w", err))
		}
	})
	wg.Go(func() {
		var err error
		if products, err = s.gw.GetRecommendedProducts(ctx); err != nil {
			fail(fmt.Errorf("failed to load recommended products: %w", err))
		}
	})
	wg.Go(func() {
		var err error
		if orders, err = s.gw.GetOrders(ctx); err != nil {
			fail(fmt.Errorf("failed to load orders: %w", err))
		}
	})

	wg.Wait()

	if len(errs) > 0 {
		err := errors.Join(errs...)
		s.logger.Error().Err(err).Str("session_id", sess.ID).Msg("failed to load dashboard")
		return nil, err
	}

	active := make([]model.OrderSummary, 0, len(orders))
	for _, o := range newestFirst(orders) {
		if o.Status.Active() {
			active = append(active, o.Summary())
		}
	}

	if promotions == nil {
		promotions = []model.Promotion{}
	}
	if products == nil {
		products = []model.Product{}
	}

	return &model.Dashboard{
		User:         sess.User,
		Promotions:   promotions,
		Products:     products,
		ActiveOrders: active,
	}, nil
}

func (s *dashboardService) Promotions(ctx context.Context) ([]model.Promotion, error) {
	promotions, err := s.gw.GetPromotions(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to get promotions")
		return nil, fmt.Errorf("failed to get promotions: %w", err)
	}
	return promotions, nil
}

func (s *dashboardService) RecommendedProducts(ctx context.Context) ([]model.Product, error) {
	products, err := s.gw.GetRecommendedProducts(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to get recommended products")
		return nil, fmt.Errorf("failed to get recommended products: %w", err)
	}
	return products, nil
}
