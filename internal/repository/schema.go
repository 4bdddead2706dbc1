package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Schema is the DDL of the PostgreSQL fixture store.
const Schema = `
	CREATE TABLE IF NOT EXISTS users (
		id TEXT PRIMARY KEY,
		phone TEXT NOT NULL,
		name TEXT NOT NULL,
		email TEXT,
		preferred_pharmacy TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS pharmacies (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		logo_url TEXT NOT NULL DEFAULT '',
		address TEXT NOT NULL DEFAULT '',
		phone TEXT NOT NULL DEFAULT '',
		hours TEXT NOT NULL DEFAULT '',
		brand_color TEXT NOT NULL DEFAULT ''
	);

	CREATE TABLE IF NOT EXISTS catalog_products (
		pharmacy_id TEXT NOT NULL REFERENCES pharmacies(id) ON DELETE CASCADE,
		id TEXT NOT NULL,
		position INT NOT NULL,
		name TEXT NOT NULL,
		price NUMERIC(10,2) NOT NULL CHECK (price >= 0),
		image TEXT NOT NULL DEFAULT '',
		category TEXT NOT NULL,
		stock INT,
		PRIMARY KEY (pharmacy_id, id)
	);
	CREATE INDEX IF NOT EXISTS idx_catalog_products_position ON catalog_products(pharmacy_id, position);

	CREATE TABLE IF NOT EXISTS recommended_products (
		id TEXT PRIMARY KEY,
		position INT NOT NULL,
		name TEXT NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		price NUMERIC(10,2) NOT NULL CHECK (price >= 0),
		image TEXT NOT NULL DEFAULT '',
		category TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS promotions (
		id TEXT PRIMARY KEY,
		position INT NOT NULL,
		title TEXT NOT NULL,
		description TEXT NOT NULL,
		discount INT NOT NULL,
		image TEXT NOT NULL DEFAULT '',
		valid_until DATE NOT NULL
	);

	CREATE TABLE IF NOT EXISTS coupons (
		id TEXT PRIMARY KEY,
		position INT NOT NULL,
		code TEXT NOT NULL UNIQUE,
		title TEXT NOT NULL,
		description TEXT NOT NULL,
		discount INT NOT NULL,
		is_active BOOLEAN NOT NULL,
		expires_at DATE NOT NULL,
		is_new BOOLEAN NOT NULL DEFAULT FALSE
	);

	CREATE TABLE IF NOT EXISTS orders (
		id TEXT PRIMARY KEY,
		position INT NOT NULL,
		user_id TEXT NOT NULL,
		pharmacy_id TEXT NOT NULL,
		pharmacy_name TEXT NOT NULL,
		total NUMERIC(10,2) NOT NULL,
		status TEXT NOT NULL,
		created_at TIMESTAMPTZ NOT NULL,
		estimated_time INT
	);
	CREATE INDEX IF NOT EXISTS idx_orders_created_at ON orders(created_at DESC);

	CREATE TABLE IF NOT EXISTS order_items (
		order_id TEXT NOT NULL REFERENCES orders(id) ON DELETE CASCADE,
		line INT NOT NULL,
		product_id TEXT NOT NULL,
		product_name TEXT NOT NULL,
		quantity INT NOT NULL CHECK (quantity > 0),
		price NUMERIC(10,2) NOT NULL,
		PRIMARY KEY (order_id, line)
	);
`

// Migrate creates the fixture tables when they do not exist.
func Migrate(ctx context.Context, pool *pgxpool.Pool) error {
	if _, err := pool.Exec(ctx, Schema); err != nil {
		return fmt.Errorf("failed to create fixture schema: %w", err)
	}
	return nil
}
