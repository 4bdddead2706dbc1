package integration

import (
	"context"
	"net"
	"path/filepath"
	"testing"
	"time"

	"farmafacil/internal/config"
	"farmafacil/internal/database"
	"farmafacil/internal/fixture"
	"farmafacil/internal/repository"
	"farmafacil/internal/session"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

// dataDir holds the pharmacy, catalogue and assistant documents shipped with the server.
var dataDir = filepath.Join("..", "..", "data")

// TestDB represents a seeded fixture store.
type TestDB struct {
	Container *postgres.PostgresContainer
	Pool      *pgxpool.Pool
	Data      *fixture.Dataset
}

// LoadDataset reads the shipped pharmacy and catalogue documents.
func LoadDataset(t *testing.T) *fixture.Dataset {
	t.Helper()

	data, err := fixture.Load(context.Background(), fixture.NewFileLoader(zerolog.Nop()), fixture.Paths{
		Pharmacy: filepath.Join(dataDir, "pharmacy.json"),
		Catalog:  filepath.Join(dataDir, "catalog.json"),
	})
	if err != nil {
		t.Fatalf("failed to load fixture documents: %v", err)
	}
	return data
}

// SetupTestDB starts PostgreSQL, applies the schema and seeds the shipped dataset.
func SetupTestDB(t *testing.T) *TestDB {
	t.Helper()

	ctx := context.Background()

	postgresContainer, err := postgres.Run(ctx,
		"postgres:16-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second)),
	)
	if err != nil {
		t.Fatalf("failed to start postgres container: %v", err)
	}

	host, err := postgresContainer.Host(ctx)
	if err != nil {
		t.Fatalf("failed to get container host: %v", err)
	}
	port, err := postgresContainer.MappedPort(ctx, "5432/tcp")
	if err != nil {
		t.Fatalf("failed to get mapped port: %v", err)
	}

	dbConfig := config.DatabaseConfig{
		Host:            host,
		Port:            port.Int(),
		User:            "testuser",
		Password:        "testpass",
		Database:        "testdb",
		MaxConnections:  10,
		MinConnections:  2,
		MaxConnLifetime: 300,
	}

	logger := zerolog.Nop()
	pool, err := database.NewPool(ctx, dbConfig, logger)
	if err != nil {
		t.Fatalf("failed to create connection pool: %v", err)
	}

	t.Cleanup(func() {
		pool.Close()
		if err := postgresContainer.Terminate(ctx); err != nil {
			t.Logf("failed to terminate container: %v", err)
		}
	})

	name, version, err := database.Describe(ctx, pool)
	if err != nil {
		t.Fatalf("failed to describe database: %v", err)
	}
	t.Logf("connected to %s (PostgreSQL %s)", name, version)

	if err := repository.Migrate(ctx, pool); err != nil {
		t.Fatalf("failed to create schema: %v", err)
	}

	data := LoadDataset(t)
	if err := repository.Seed(ctx, pool, data, logger); err != nil {
		t.Fatalf("failed to seed fixtures: %v", err)
	}

	return &TestDB{
		Container: postgresContainer,
		Pool:      pool,
		Data:      data,
	}
}

// SetupTestRedis starts Redis and returns a connected client.
func SetupTestRedis(t *testing.T) *redis.Client {
	t.Helper()

	ctx := context.Background()

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "redis:7-alpine",
			ExposedPorts: []string{"6379/tcp"},
			WaitingFor:   wait.ForLog("Ready to accept connections").WithStartupTimeout(30 * time.Second),
		},
		Started: true,
	})
	if err != nil {
		t.Fatalf("failed to start redis container: %v", err)
	}

	host, err := container.Host(ctx)
	if err != nil {
		t.Fatalf("failed to get container host: %v", err)
	}
	port, err := container.MappedPort(ctx, "6379/tcp")
	if err != nil {
		t.Fatalf("failed to get mapped port: %v", err)
	}

	rdb, err := session.NewRedisClient(ctx, net.JoinHostPort(host, port.Port()), "", 0)
	if err != nil {
		t.Fatalf("failed to connect to redis: %v", err)
	}

	t.Cleanup(func() {
		_ = rdb.Close()
		if err := container.Terminate(ctx); err != nil {
			t.Logf("failed to terminate container: %v", err)
		}
	})

	return rdb
}
