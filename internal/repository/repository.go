package repository

import (
	"context"

	"farmafacil/internal/model"
)

// FixtureRepository defines read access to the records served by the mock backend.
// Lookups of a single record return nil without error when it does not exist.
type FixtureRepository interface {
	// GetUser retrieves the single mock customer.
	GetUser(ctx context.Context) (*model.User, error)

	// GetOrders retrieves the order history in storage order.
	GetOrders(ctx context.Context) ([]model.Order, error)

	// GetOrderByID retrieves a single order with its items.
	GetOrderByID(ctx context.Context, id string) (*model.Order, error)

	// GetPromotions retrieves the dashboard promotions.
	GetPromotions(ctx context.Context) ([]model.Promotion, error)

	// GetRecommendedProducts retrieves the dashboard product suggestions.
	GetRecommendedProducts(ctx context.Context) ([]model.Product, error)

	// GetCoupons retrieves the coupon wallet.
	GetCoupons(ctx context.Context) ([]model.Coupon, error)

	// GetPharmacy retrieves a pharmacy profile by its ID.
	GetPharmacy(ctx context.Context, id string) (*model.Pharmacy, error)

	// GetCatalog retrieves the products sold by a pharmacy in catalogue order.
	GetCatalog(ctx context.Context, pharmacyID string) ([]model.Product, error)
}
