package service

import (
	"context"
	"fmt"

	"farmafacil/internal/coupon"
	"farmafacil/internal/gateway"
	"farmafacil/internal/model"

	"github.com/rs/zerolog"
)

// couponService implements CouponService.
type couponService struct {
	gw     gateway.Gateway
	logger zerolog.Logger
}

// NewCouponService creates a new coupon service.
func NewCouponService(gw gateway.Gateway, logger zerolog.Logger) CouponService {
	return &couponService{
		gw:     gw,
		logger: logger.With().Str("service", "coupon").Logger(),
	}
}

func (s *couponService) Wallet(ctx context.Context) (coupon.Wallet, error) {
	coupons, err := s.gw.GetCoupons(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to get coupons")
		return coupon.Wallet{}, fmt.Errorf("failed to get coupons: %w", err)
	}

	return coupon.Partition(coupons), nil
}

func (s *couponService) Lookup(ctx context.Context, code string) (*model.Coupon, error) {
	coupons, err := s.gw.GetCoupons(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to get coupons")
		return nil, fmt.Errorf("failed to get coupons: %w", err)
	}

	idx := coupon.NewIndex(coupons)
	c, ok := idx.Lookup(code)
	if !ok {
		s.logger.Debug().Str("coupon_code", code).Int("codes", idx.Size()).Msg("coupon not found")
		return nil, model.ErrCouponNotFound
	}

	return &c, nil
}
