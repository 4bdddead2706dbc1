package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"farmafacil/internal/config"
	"farmafacil/internal/database"
	"farmafacil/internal/fixture"
	"farmafacil/internal/repository"
)

// Seeds the Postgres fixture store from the configured pharmacy and catalogue
// documents. With -check it only reports the connection and row counts.
func main() {
	check := flag.Bool("check", false, "only verify the connection and print row counts")
	flag.Parse()

	if err := run(*check); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(check bool) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	logger := config.NewLogger(cfg.Logger)

	ctx := context.Background()

	pool, err := database.NewPool(ctx, cfg.Database, logger)
	if err != nil {
		return err
	}
	defer pool.Close()

	dbName, version, err := database.Describe(ctx, pool)
	if err != nil {
		return err
	}
	fmt.Printf("Successfully connected to database: %s (PostgreSQL %s)\n", dbName, version)

	if !check {
		if err := repository.Migrate(ctx, pool); err != nil {
			return err
		}

		data, err := fixture.Load(ctx, fixture.NewFileLoader(logger), fixture.Paths{
			Pharmacy: cfg.Fixtures.PharmacyPath,
			Catalog:  cfg.Fixtures.CatalogPath,
		})
		if err != nil {
			return err
		}

		if err := repository.Seed(ctx, pool, data, logger); err != nil {
			return err
		}
	}

	fmt.Println("\nFixture tables:")
	for _, table := range []string{"users", "pharmacies", "catalog_products", "recommended_products", "promotions", "coupons", "orders", "order_items"} {
		var n int
		if err := pool.QueryRow(ctx, fmt.Sprintf("SELECT count(*) FROM %s", table)).Scan(&n); err != nil {
			return fmt.Errorf("failed to count %s: %w", table, err)
		}
		fmt.Printf("  - %-20s %d\n", table, n)
	}

	return nil
}
