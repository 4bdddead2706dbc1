package repository

import (
	"context"
	"slices"

	"farmafacil/internal/fixture"
	"farmafacil/internal/model"
)

// memoryRepository serves a fixture.Dataset held in memory.
// Every call returns copies so callers cannot mutate the dataset.
type memoryRepository struct {
	data *fixture.Dataset
}

// NewMemoryRepository creates a repository backed by an in-memory dataset.
func NewMemoryRepository(data *fixture.Dataset) FixtureRepository {
	return &memoryRepository{data: data}
}

func (r *memoryRepository) GetUser(ctx context.Context) (*model.User, error) {
	user := r.data.User
	if user.Email != nil {
		email := *user.Email
		user.Email = &email
	}
	return &user, nil
}

func (r *memoryRepository) GetOrders(ctx context.Context) ([]model.Order, error) {
	orders := make([]model.Order, len(r.data.Orders))
	for i, o := range r.data.Orders {
		orders[i] = cloneOrder(o)
	}
	return orders, nil
}

func (r *memoryRepository) GetOrderByID(ctx context.Context, id string) (*model.Order, error) {
	for _, o := range r.data.Orders {
		if o.ID == id {
			order := cloneOrder(o)
			return &order, nil
		}
	}
	return nil, nil
}

func (r *memoryRepository) GetPromotions(ctx context.Context) ([]model.Promotion, error) {
	return slices.Clone(r.data.Promotions), nil
}

func (r *memoryRepository) GetRecommendedProducts(ctx context.Context) ([]model.Product, error) {
	return slices.Clone(r.data.Recommended), nil
}

func (r *memoryRepository) GetCoupons(ctx context.Context) ([]model.Coupon, error) {
	return slices.Clone(r.data.Coupons), nil
}

func (r *memoryRepository) GetPharmacy(ctx context.Context, id string) (*model.Pharmacy, error) {
	if r.data.Pharmacy.ID != id {
		return nil, nil
	}
	pharmacy := r.data.Pharmacy
	return &pharmacy, nil
}

func (r *memoryRepository) GetCatalog(ctx context.Context, pharmacyID string) ([]model.Product, error) {
	if r.data.Pharmacy.ID != pharmacyID {
		return []model.Product{}, nil
	}
	return slices.Clone(r.data.Catalog), nil
}

func cloneOrder(o model.Order) model.Order {
	o.Items = slices.Clone(o.Items)
	if o.EstimatedTime != nil {
		minutes := *o.EstimatedTime
		o.EstimatedTime = &minutes
	}
	return o
}
