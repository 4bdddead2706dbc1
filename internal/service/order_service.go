package service

import (
	"context"
	"fmt"
	"net/url"
	"slices"
	"strings"

	"farmafacil/internal/gateway"
	"farmafacil/internal/model"

	"github.com/rs/zerolog"
)

// orderService implements OrderService.
type orderService struct {
	gw           gateway.Gateway
	supportPhone string
	logger       zerolog.Logger
}

// NewOrderService creates a new order service. supportPhone is the WhatsApp
// number, digits only with country code.
func NewOrderService(gw gateway.Gateway, supportPhone string, logger zerolog.Logger) OrderService {
	return &orderService{
		gw:           gw,
		supportPhone: supportPhone,
		logger:       logger.With().Str("service", "order").Logger(),
	}
}

// List returns the order history newest first.
func (s *orderService) List(ctx context.Context) ([]model.OrderSummary, error) {
	orders, err := s.gw.GetOrders(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to get orders")
		return nil, fmt.Errorf("failed to get orders: %w", err)
	}

	sorted := newestFirst(orders)
	summaries := make([]model.OrderSummary, len(sorted))
	for i := range sorted {
		summaries[i] = sorted[i].Summary()
	}

	return summaries, nil
}

// GetByID returns ErrOrderNotFound when the gateway has no such order.
func (s *orderService) GetByID(ctx context.Context, id string) (*model.OrderDetail, error) {
	order, err := s.gw.GetOrderByID(ctx, id)
	if err != nil {
		s.logger.Error().Err(err).Str("order_id", id).Msg("failed to get order")
		return nil, fmt.Errorf("failed to get order: %w", err)
	}

	if order == nil {
		s.logger.Debug().Str("order_id", id).Msg("order not found")
		return nil, model.ErrOrderNotFound
	}

	return &model.OrderDetail{
		Order:        *order,
		StatusLabel:  order.Status.Label(),
		Steps:        order.Status.Progress(),
		ContactURL:   ContactURL(s.supportPhone, order.ID),
		ShowEstimate: order.Status == model.StatusPreparing && order.EstimatedTime != nil,
	}, nil
}

// ContactURL builds the WhatsApp link used to ask about an order.
func ContactURL(phone, orderID string) string {
	text := fmt.Sprintf("Hola, tengo una consulta sobre mi pedido #%s", orderID)
	escaped := strings.ReplaceAll(url.QueryEscape(text), "+", "%20")
	return fmt.Sprintf("https://wa.me/%s?text=%s", phone, escaped)
}

// newestFirst returns a copy of orders sorted by creation time, newest first.
func newestFirst(orders []model.Order) []model.Order {
	sorted := slices.Clone(orders)
	slices.SortStableFunc(sorted, func(a, b model.Order) int {
		return b.CreatedAt.Compare(a.CreatedAt)
	})
	return sorted
}
