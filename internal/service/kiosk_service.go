package service

import (
	"context"
	"fmt"

	"farmafacil/internal/cart"
	"farmafacil/internal/catalog"
	"farmafacil/internal/metrics"
	"farmafacil/internal/model"
	"farmafacil/internal/repository"
	"farmafacil/internal/session"

	"github.com/rs/zerolog"
)

// kioskService implements KioskService. It reads the catalogue straight from
// the repository; the kiosk flow has no simulated latency.
type kioskService struct {
	repo     repository.FixtureRepository
	store    session.Store
	checkout *cart.Checkout
	metrics  *metrics.AppMetrics
	logger   zerolog.Logger
}

// NewKioskService creates a new kiosk service.
func NewKioskService(
	repo repository.FixtureRepository,
	store session.Store,
	checkout *cart.Checkout,
	appMetrics *metrics.AppMetrics,
	logger zerolog.Logger,
) KioskService {
	return &kioskService{
		repo:     repo,
		store:    store,
		checkout: checkout,
		metrics:  appMetrics,
		logger:   logger.With().Str("service", "kiosk").Logger(),
	}
}

// GetPharmacy returns ErrPharmacyNotFound for unknown ids.
func (s *kioskService) GetPharmacy(ctx context.Context, id string) (*model.Pharmacy, error) {
	pharmacy, err := s.repo.GetPharmacy(ctx, id)
	if err != nil {
		s.logger.Error().Err(err).Str("pharmacy_id", id).Msg("failed to get pharmacy")
		return nil, fmt.Errorf("failed to get pharmacy: %w", err)
	}

	if pharmacy == nil {
		return nil, model.ErrPharmacyNotFound
	}

	return pharmacy, nil
}

func (s *kioskService) Browse(ctx context.Context, pharmacyID string, q CatalogQuery) (*CatalogPage, error) {
	pharmacy, err := s.GetPharmacy(ctx, pharmacyID)
	if err != nil {
		return nil, err
	}

	items, err := s.repo.GetCatalog(ctx, pharmacyID)
	if err != nil {
		s.logger.Error().Err(err).Str("pharmacy_id", pharmacyID).Msg("failed to get catalog")
		return nil, fmt.Errorf("failed to get catalog: %w", err)
	}

	page := &CatalogPage{
		Pharmacy: pharmacy,
		View:     catalog.Browse(items, q.Search, q.Category),
	}
	if q.Kiosk {
		page.Actions = cart.KioskActions()
	}

	return page, nil
}

func (s *kioskService) Cart(ctx context.Context, sess *session.Session, pharmacyID string) (cart.View, error) {
	if _, err := s.GetPharmacy(ctx, pharmacyID); err != nil {
		return cart.View{}, err
	}

	if !s.checkout.Refresh(sess.Cart(pharmacyID)) {
		return sess.Cart(pharmacyID).View(), nil
	}

	err := updateSession(ctx, s.store, sess, func(ss *session.Session) error {
		s.checkout.Refresh(ss.Cart(pharmacyID))
		return nil
	})
	if err != nil {
		return cart.View{}, err
	}

	return sess.Cart(pharmacyID).View(), nil
}

// AddToCart returns ErrProductNotFound when the product is not in the
// pharmacy catalogue.
func (s *kioskService) AddToCart(ctx context.Context, sess *session.Session, pharmacyID, productID string) (cart.View, error) {
	if _, err := s.GetPharmacy(ctx, pharmacyID); err != nil {
		return cart.View{}, err
	}

	items, err := s.repo.GetCatalog(ctx, pharmacyID)
	if err != nil {
		return cart.View{}, fmt.Errorf("failed to get catalog: %w", err)
	}

	product, ok := catalog.Find(items, productID)
	if !ok {
		return cart.View{}, model.ErrProductNotFound
	}

	err = updateSession(ctx, s.store, sess, func(ss *session.Session) error {
		c := ss.Cart(pharmacyID)
		s.checkout.Refresh(c)
		return c.Add(product)
	})
	if err != nil {
		return cart.View{}, err
	}
	c := sess.Cart(pharmacyID)

	s.metrics.RecordCartAdd(ctx, pharmacyID)
	s.logger.Debug().
		Str("session_id", sess.ID).
		Str("pharmacy_id", pharmacyID).
		Str("product_id", productID).
		Int("units", c.Len()).
		Msg("product added to cart")

	return c.View(), nil
}

func (s *kioskService) Submit(ctx context.Context, sess *session.Session, pharmacyID string, mode cart.Mode) (cart.View, error) {
	if _, err := s.GetPharmacy(ctx, pharmacyID); err != nil {
		return cart.View{}, err
	}

	var conf *cart.Confirmation
	err := updateSession(ctx, s.store, sess, func(ss *session.Session) error {
		submitted, err := s.checkout.Submit(ss.Cart(pharmacyID), mode)
		conf = submitted
		return err
	})
	if err != nil {
		return cart.View{}, err
	}

	s.metrics.RecordSubmission(ctx, pharmacyID, string(conf.Mode), conf.Total)
	s.logger.Info().
		Str("session_id", sess.ID).
		Str("pharmacy_id", pharmacyID).
		Str("mode", string(conf.Mode)).
		Str("receipt", conf.Receipt).
		Int("units", conf.Units).
		Str("total", conf.Total.StringFixed(2)).
		Msg("cart submitted")

	return sess.Cart(pharmacyID).View(), nil
}

func (s *kioskService) Reset(ctx context.Context, sess *session.Session, pharmacyID string) (cart.View, error) {
	if _, err := s.GetPharmacy(ctx, pharmacyID); err != nil {
		return cart.View{}, err
	}

	err := updateSession(ctx, s.store, sess, func(ss *session.Session) error {
		s.checkout.Reset(ss.Cart(pharmacyID))
		return nil
	})
	if err != nil {
		return cart.View{}, err
	}

	return sess.Cart(pharmacyID).View(), nil
}
