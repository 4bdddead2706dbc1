package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"farmafacil/internal/assistant"
	"farmafacil/internal/cart"
	"farmafacil/internal/config"
	"farmafacil/internal/database"
	"farmafacil/internal/fixture"
	"farmafacil/internal/gateway"
	"farmafacil/internal/handler"
	"farmafacil/internal/metrics"
	"farmafacil/internal/repository"
	"farmafacil/internal/router"
	"farmafacil/internal/service"
	"farmafacil/internal/session"

	"github.com/rs/zerolog"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	logger := config.NewLogger(cfg.Logger)
	logger.Info().Msg("starting farmafacil API server")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	appMetrics := metrics.NewNoop()
	if cfg.Metrics.Enabled {
		provider, err := metrics.Provider(ctx, cfg.Metrics, logger)
		if err != nil {
			return fmt.Errorf("failed to initialize metrics: %w", err)
		}
		defer func() {
			shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer shutdownCancel()
			if err := provider.Shutdown(shutdownCtx); err != nil {
				logger.Error().Err(err).Msg("failed to flush metrics")
			}
		}()

		appMetrics, err = metrics.New(provider.Meter(cfg.Metrics.ServiceName))
		if err != nil {
			return fmt.Errorf("failed to create instruments: %w", err)
		}
	}

	// Pharmacy and catalogue documents, S3 first when enabled
	var s3Loader fixture.Loader
	if cfg.S3.Enabled {
		s3Loader, err = fixture.NewS3Loader(ctx, cfg.S3.Bucket, cfg.S3.Region, logger)
		if err != nil {
			logger.Warn().
				Err(err).
				Msg("failed to initialise S3 loader, falling back to local file system only")
			s3Loader = nil
		}
	} else {
		logger.Info().Msg("using local file system for fixture documents (S3 disabled)")
	}
	loader := fixture.NewFallbackLoader(s3Loader, fixture.NewFileLoader(logger), cfg.S3.Prefix, logger)

	data, err := fixture.Load(ctx, loader, fixture.Paths{
		Pharmacy: cfg.Fixtures.PharmacyPath,
		Catalog:  cfg.Fixtures.CatalogPath,
	})
	if err != nil {
		return fmt.Errorf("failed to load fixtures: %w", err)
	}

	repo, closeRepo, err := newRepository(ctx, cfg, data, logger)
	if err != nil {
		return err
	}
	defer closeRepo()

	store, closeStore, err := newSessionStore(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer closeStore()

	responder := assistant.NewDefaultResponder()
	if cfg.Assistant.RulesPath != "" {
		rules, fallback, err := assistant.LoadRules(cfg.Assistant.RulesPath)
		if err != nil {
			return fmt.Errorf("failed to load assistant rules: %w", err)
		}
		responder = assistant.NewResponder(rules, fallback)
		logger.Info().Str("path", cfg.Assistant.RulesPath).Msg("assistant rules loaded")
	}
	logger.Info().Strs("rules", responder.Rules()).Msg("assistant ready")

	gw := gateway.New(repo, gateway.Delays{
		OTP:    cfg.Gateway.OTPDelay,
		Read:   cfg.Gateway.ReadDelay,
		Logout: cfg.Gateway.LogoutDelay,
	}, logger)

	throttle := service.NewOTPThrottle(cfg.Auth.OTPResendInterval)
	go throttle.Run(ctx)

	// Initialize services
	authService := service.NewAuthService(gw, store, throttle, appMetrics, logger)
	dashboardService := service.NewDashboardService(gw, logger)
	orderService := service.NewOrderService(gw, cfg.Support.Phone, logger)
	couponService := service.NewCouponService(gw, logger)
	assistantService := service.NewAssistantService(responder, store, cfg.Assistant.Delay, appMetrics, logger)
	kioskService := service.NewKioskService(repo, store, cart.NewCheckout(cfg.Kiosk.ClearDelay), appMetrics, logger)

	mux := router.New(router.Handlers{
		Auth:      handler.NewAuthHandler(authService, logger),
		Dashboard: handler.NewDashboardHandler(dashboardService, logger),
		Order:     handler.NewOrderHandler(orderService, logger),
		Coupon:    handler.NewCouponHandler(couponService, logger),
		Assistant: handler.NewAssistantHandler(assistantService, logger),
		Kiosk:     handler.NewKioskHandler(kioskService, logger),
	}, router.Options{
		Store:      store,
		SessionTTL: cfg.Session.TTL,
		Metrics:    appMetrics,
	}, logger)

	server := &http.Server{
		Addr:         cfg.Server.Address(),
		Handler:      mux,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	serverErrors := make(chan error, 1)

	go func() {
		logger.Info().
			Str("address", cfg.Server.Address()).
			Str("pharmacy", data.Pharmacy.ID).
			Msg("HTTP server started")
		serverErrors <- server.ListenAndServe()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		return fmt.Errorf("server error: %w", err)

	case sig := <-shutdown:
		logger.Info().
			Str("signal", sig.String()).
			Msg("shutdown signal received, starting graceful shutdown")

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer shutdownCancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error().Err(err).Msg("failed to shutdown server gracefully")
			if closeErr := server.Close(); closeErr != nil {
				logger.Error().Err(closeErr).Msg("failed to close server")
			}
			return fmt.Errorf("server shutdown failed: %w", err)
		}

		logger.Info().Msg("server shutdown completed")
	}

	return nil
}

// newRepository serves fixtures from memory or from a seeded Postgres database.
func newRepository(
	ctx context.Context,
	cfg *config.Config,
	data *fixture.Dataset,
	logger zerolog.Logger,
) (repository.FixtureRepository, func(), error) {
	if cfg.Store.Driver != config.DriverPostgres {
		logger.Info().Msg("serving fixtures from memory")
		return repository.NewMemoryRepository(data), func() {}, nil
	}

	pool, err := database.NewPool(ctx, cfg.Database, logger)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	if err := repository.Migrate(ctx, pool); err != nil {
		pool.Close()
		return nil, nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	if err := repository.Seed(ctx, pool, data, logger); err != nil {
		pool.Close()
		return nil, nil, fmt.Errorf("failed to seed database: %w", err)
	}

	return repository.NewPostgresRepository(pool, logger), pool.Close, nil
}

// newSessionStore returns the configured session backend and its close function.
func newSessionStore(ctx context.Context, cfg *config.Config, logger zerolog.Logger) (session.Store, func(), error) {
	if cfg.Session.Driver != config.DriverRedis {
		store := session.NewMemoryStore(cfg.Session.TTL, logger)
		go store.Run(ctx, time.Minute)
		return store, func() {}, nil
	}

	rdb, err := session.NewRedisClient(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	closeFn := func() {
		if err := rdb.Close(); err != nil {
			logger.Error().Err(err).Msg("failed to close redis client")
		}
	}

	logger.Info().Str("addr", cfg.Redis.Addr).Msg("using redis session store")

	return session.NewRedisStore(rdb, cfg.Session.TTL, logger), closeFn, nil
}
