package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"farmafacil/internal/fixture"
	"farmafacil/internal/model"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// postgresRepository implements FixtureRepository using PostgreSQL.
type postgresRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewPostgresRepository creates a new PostgreSQL-backed fixture repository.
func NewPostgresRepository(pool *pgxpool.Pool, logger zerolog.Logger) FixtureRepository {
	return &postgresRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "fixture").Logger(),
	}
}

// GetUser retrieves the single mock customer.
func (r *postgresRepository) GetUser(ctx context.Context) (*model.User, error) {
	query := `
		SELECT id, phone, name, email, preferred_pharmacy
		FROM users
		ORDER BY id
		LIMIT 1
	`

	var u model.User
	err := r.pool.QueryRow(ctx, query).Scan(&u.ID, &u.Phone, &u.Name, &u.Email, &u.PreferredPharmacy)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			r.logger.Debug().Msg("no user seeded")
			return nil, nil
		}
		r.logger.Error().Err(err).Msg("failed to query user")
		return nil, fmt.Errorf("failed to query user: %w", err)
	}

	return &u, nil
}

// GetOrders retrieves the order history with items in storage order.
func (r *postgresRepository) GetOrders(ctx context.Context) ([]model.Order, error) {
	query := `
		SELECT id, user_id, pharmacy_id, pharmacy_name, total::text, status, created_at, estimated_time
		FROM orders
		ORDER BY position
	`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to query orders")
		return nil, fmt.Errorf("failed to query orders: %w", err)
	}
	defer rows.Close()

	orders := []model.Order{}
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			r.logger.Error().Err(err).Msg("failed to scan order row")
			return nil, fmt.Errorf("failed to scan order: %w", err)
		}
		orders = append(orders, *o)
	}

	if err := rows.Err(); err != nil {
		r.logger.Error().Err(err).Msg("error iterating order rows")
		return nil, fmt.Errorf("error iterating orders: %w", err)
	}

	for i := range orders {
		items, err := r.getOrderItems(ctx, orders[i].ID)
		if err != nil {
			return nil, err
		}
		orders[i].Items = items
	}

	return orders, nil
}

// GetOrderByID retrieves a single order with its items.
func (r *postgresRepository) GetOrderByID(ctx context.Context, id string) (*model.Order, error) {
	query := `
		SELECT id, user_id, pharmacy_id, pharmacy_name, total::text, status, created_at, estimated_time
		FROM orders
		WHERE id = $1
	`

	order, err := scanOrder(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			r.logger.Debug().Str("order_id", id).Msg("order not found")
			return nil, nil
		}
		r.logger.Error().Err(err).Str("order_id", id).Msg("failed to query order")
		return nil, fmt.Errorf("failed to query order: %w", err)
	}

	items, err := r.getOrderItems(ctx, id)
	if err != nil {
		return nil, err
	}
	order.Items = items

	return order, nil
}

func (r *postgresRepository) getOrderItems(ctx context.Context, orderID string) ([]model.OrderItem, error) {
	query := `
		SELECT product_id, product_name, quantity, price::text
		FROM order_items
		WHERE order_id = $1
		ORDER BY line
	`

	rows, err := r.pool.Query(ctx, query, orderID)
	if err != nil {
		r.logger.Error().Err(err).Str("order_id", orderID).Msg("failed to query order items")
		return nil, fmt.Errorf("failed to query order items: %w", err)
	}
	defer rows.Close()

	items := []model.OrderItem{}
	for rows.Next() {
		var item model.OrderItem
		var price string
		if err := rows.Scan(&item.ProductID, &item.ProductName, &item.Quantity, &price); err != nil {
			r.logger.Error().Err(err).Msg("failed to scan order item row")
			return nil, fmt.Errorf("failed to scan order item: %w", err)
		}
		if item.Price, err = decimal.NewFromString(price); err != nil {
			return nil, fmt.Errorf("invalid price for order item %s: %w", item.ProductID, err)
		}
		items = append(items, item)
	}

	if err := rows.Err(); err != nil {
		r.logger.Error().Err(err).Msg("error iterating order item rows")
		return nil, fmt.Errorf("error iterating order items: %w", err)
	}

	return items, nil
}

// GetPromotions retrieves the dashboard promotions.
func (r *postgresRepository) GetPromotions(ctx context.Context) ([]model.Promotion, error) {
	query := `
		SELECT id, title, description, discount, image, valid_until
		FROM promotions
		ORDER BY position
	`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to query promotions")
		return nil, fmt.Errorf("failed to query promotions: %w", err)
	}

	promotions, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (model.Promotion, error) {
		var p model.Promotion
		var validUntil time.Time
		err := row.Scan(&p.ID, &p.Title, &p.Description, &p.Discount, &p.Image, &validUntil)
		p.ValidUntil = model.Date{Time: validUntil}
		return p, err
	})
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to scan promotion rows")
		return nil, fmt.Errorf("failed to scan promotions: %w", err)
	}

	return promotions, nil
}

// GetRecommendedProducts retrieves the dashboard product suggestions.
func (r *postgresRepository) GetRecommendedProducts(ctx context.Context) ([]model.Product, error) {
	query := `
		SELECT id, name, description, price::text, image, category
		FROM recommended_products
		ORDER BY position
	`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to query recommended products")
		return nil, fmt.Errorf("failed to query recommended products: %w", err)
	}

	products, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (model.Product, error) {
		var p model.Product
		var price string
		if err := row.Scan(&p.ID, &p.Name, &p.Description, &price, &p.Image, &p.Category); err != nil {
			return p, err
		}
		var err error
		p.Price, err = decimal.NewFromString(price)
		return p, err
	})
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to scan recommended product rows")
		return nil, fmt.Errorf("failed to scan recommended products: %w", err)
	}

	return products, nil
}

// GetCoupons retrieves the coupon wallet.
func (r *postgresRepository) GetCoupons(ctx context.Context) ([]model.Coupon, error) {
	query := `
		SELECT id, code, title, description, discount, is_active, expires_at, is_new
		FROM coupons
		ORDER BY position
	`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to query coupons")
		return nil, fmt.Errorf("failed to query coupons: %w", err)
	}

	coupons, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (model.Coupon, error) {
		var c model.Coupon
		var expiresAt time.Time
		err := row.Scan(&c.ID, &c.Code, &c.Title, &c.Description, &c.Discount, &c.IsActive, &expiresAt, &c.IsNew)
		c.ExpiresAt = model.Date{Time: expiresAt}
		return c, err
	})
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to scan coupon rows")
		return nil, fmt.Errorf("failed to scan coupons: %w", err)
	}

	return coupons, nil
}

// GetPharmacy retrieves a pharmacy profile by its ID.
func (r *postgresRepository) GetPharmacy(ctx context.Context, id string) (*model.Pharmacy, error) {
	query := `
		SELECT id, name, logo_url, address, phone, hours, brand_color
		FROM pharmacies
		WHERE id = $1
	`

	var p model.Pharmacy
	err := r.pool.QueryRow(ctx, query, id).Scan(&p.ID, &p.Name, &p.LogoURL, &p.Address, &p.Phone, &p.Hours, &p.BrandColor)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			r.logger.Debug().Str("pharmacy_id", id).Msg("pharmacy not found")
			return nil, nil
		}
		r.logger.Error().Err(err).Str("pharmacy_id", id).Msg("failed to query pharmacy")
		return nil, fmt.Errorf("failed to query pharmacy: %w", err)
	}

	return &p, nil
}

// GetCatalog retrieves the products sold by a pharmacy in catalogue order.
func (r *postgresRepository) GetCatalog(ctx context.Context, pharmacyID string) ([]model.Product, error) {
	query := `
		SELECT id, name, price::text, image, category, stock
		FROM catalog_products
		WHERE pharmacy_id = $1
		ORDER BY position
	`

	rows, err := r.pool.Query(ctx, query, pharmacyID)
	if err != nil {
		r.logger.Error().Err(err).Str("pharmacy_id", pharmacyID).Msg("failed to query catalog")
		return nil, fmt.Errorf("failed to query catalog: %w", err)
	}

	products, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (model.Product, error) {
		var p model.Product
		var price string
		if err := row.Scan(&p.ID, &p.Name, &price, &p.Image, &p.Category, &p.Stock); err != nil {
			return p, err
		}
		var err error
		p.Price, err = decimal.NewFromString(price)
		return p, err
	})
	if err != nil {
		r.logger.Error().Err(err).Str("pharmacy_id", pharmacyID).Msg("failed to scan catalog rows")
		return nil, fmt.Errorf("failed to scan catalog: %w", err)
	}

	return products, nil
}

func scanOrder(row pgx.Row) (*model.Order, error) {
	var o model.Order
	var total, status string
	err := row.Scan(&o.ID, &o.UserID, &o.PharmacyID, &o.PharmacyName, &total, &status, &o.CreatedAt, &o.EstimatedTime)
	if err != nil {
		return nil, err
	}
	if o.Total, err = decimal.NewFromString(total); err != nil {
		return nil, fmt.Errorf("invalid total for order %s: %w", o.ID, err)
	}
	o.Status = model.OrderStatus(status)
	o.CreatedAt = o.CreatedAt.UTC()
	return &o, nil
}

// Seed replaces the contents of the fixture tables with the dataset in one transaction.
func Seed(ctx context.Context, pool *pgxpool.Pool, data *fixture.Dataset, logger zerolog.Logger) error {
	tx, err := pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	batch := &pgx.Batch{}
	batch.Queue(`TRUNCATE order_items, orders, coupons, promotions, recommended_products, catalog_products, pharmacies, users`)

	u := data.User
	batch.Queue(`INSERT INTO users (id, phone, name, email, preferred_pharmacy) VALUES ($1, $2, $3, $4, $5)`,
		u.ID, u.Phone, u.Name, u.Email, u.PreferredPharmacy)

	ph := data.Pharmacy
	batch.Queue(`INSERT INTO pharmacies (id, name, logo_url, address, phone, hours, brand_color) VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		ph.ID, ph.Name, ph.LogoURL, ph.Address, ph.Phone, ph.Hours, ph.BrandColor)

	for i, p := range data.Catalog {
		batch.Queue(`INSERT INTO catalog_products (pharmacy_id, id, position, name, price, image, category, stock) VALUES ($1, $2, $3, $4, $5::numeric, $6, $7, $8)`,
			ph.ID, p.ID, i, p.Name, p.Price.String(), p.Image, p.Category, p.Stock)
	}

	for i, p := range data.Recommended {
		batch.Queue(`INSERT INTO recommended_products (id, position, name, description, price, image, category) VALUES ($1, $2, $3, $4, $5::numeric, $6, $7)`,
			p.ID, i, p.Name, p.Description, p.Price.String(), p.Image, p.Category)
	}

	for i, p := range data.Promotions {
		batch.Queue(`INSERT INTO promotions (id, position, title, description, discount, image, valid_until) VALUES ($1, $2, $3, $4, $5, $6, $7)`,
			p.ID, i, p.Title, p.Description, p.Discount, p.Image, p.ValidUntil.Time)
	}

	for i, c := range data.Coupons {
		batch.Queue(`INSERT INTO coupons (id, position, code, title, description, discount, is_active, expires_at, is_new) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
			c.ID, i, c.Code, c.Title, c.Description, c.Discount, c.IsActive, c.ExpiresAt.Time, c.IsNew)
	}

	for i, o := range data.Orders {
		batch.Queue(`INSERT INTO orders (id, position, user_id, pharmacy_id, pharmacy_name, total, status, created_at, estimated_time) VALUES ($1, $2, $3, $4, $5, $6::numeric, $7, $8, $9)`,
			o.ID, i, o.UserID, o.PharmacyID, o.PharmacyName, o.Total.String(), string(o.Status), o.CreatedAt, o.EstimatedTime)
		for line, item := range o.Items {
			batch.Queue(`INSERT INTO order_items (order_id, line, product_id, product_name, quantity, price) VALUES ($1, $2, $3, $4, $5, $6::numeric)`,
				o.ID, line, item.ProductID, item.ProductName, item.Quantity, item.Price.String())
		}
	}

	results := tx.SendBatch(ctx, batch)
	for i := 0; i < batch.Len(); i++ {
		if _, err := results.Exec(); err != nil {
			results.Close()
			return fmt.Errorf("failed to seed fixture statement %d: %w", i, err)
		}
	}
	if err := results.Close(); err != nil {
		return fmt.Errorf("failed to close seed batch: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit fixture seed: %w", err)
	}

	logger.Info().
		Int("catalog", len(data.Catalog)).
		Int("orders", len(data.Orders)).
		Int("coupons", len(data.Coupons)).
		Msg("fixture store seeded")

	return nil
}
