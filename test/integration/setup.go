package integration

import (
	"context"
	"net/http"
	"testing"
	"time"

	"storefront/internal/auth"
	"storefront/internal/handler"
	"storefront/internal/repository"
	"storefront/internal/router"
	"storefront/internal/service"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

// TestDB represents a test database instance.
type TestDB struct {
	Container *postgres.PostgresContainer
	Pool      *pgxpool.Pool
	ConnStr   string
}

// SetupTestDB creates a PostgreSQL test container and connection pool.
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

	connStr, err := postgresContainer.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		t.Fatalf("failed to get connection string: %v", err)
	}

	pool, err := pgxpool.New(ctx, connStr)
	if err != nil {
		t.Fatalf("failed to create connection pool: %v", err)
	}

	if err := pool.Ping(ctx); err != nil {
		t.Fatalf("failed to ping database: %v", err)
	}

	createSchema(t, pool)

	t.Cleanup(func() {
		pool.Close()
		if err := postgresContainer.Terminate(ctx); err != nil {
			t.Logf("failed to terminate container: %v", err)
		}
	})

	return &TestDB{
		Container: postgresContainer,
		Pool:      pool,
		ConnStr:   connStr,
	}
}

// createSchema creates the database schema for testing.
func createSchema(t *testing.T, pool *pgxpool.Pool) {
	t.Helper()

	ctx := context.Background()

	schema := `
		CREATE TABLE IF NOT EXISTS users (
			id UUID PRIMARY KEY,
			name TEXT NOT NULL,
			email TEXT NOT NULL UNIQUE,
			password_hash TEXT NOT NULL,
			is_admin BOOLEAN NOT NULL DEFAULT FALSE,
			addresses JSONB NOT NULL DEFAULT '[]',
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		);

		CREATE TABLE IF NOT EXISTS categories (
			id UUID PRIMARY KEY,
			name TEXT NOT NULL UNIQUE,
			description TEXT NOT NULL DEFAULT '',
			image TEXT NOT NULL DEFAULT '',
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		);

		CREATE TABLE IF NOT EXISTS products (
			id UUID PRIMARY KEY,
			name TEXT NOT NULL,
			description TEXT NOT NULL DEFAULT '',
			brand TEXT NOT NULL DEFAULT '',
			image TEXT NOT NULL DEFAULT '',
			category_id UUID REFERENCES categories(id),
			price DECIMAL(10,2) NOT NULL CHECK (price >= 0),
			count_in_stock INT NOT NULL DEFAULT 0,
			rating DOUBLE PRECISION NOT NULL DEFAULT 0,
			num_reviews INT NOT NULL DEFAULT 0,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		);

		CREATE TABLE IF NOT EXISTS reviews (
			id UUID PRIMARY KEY,
			product_id UUID NOT NULL REFERENCES products(id) ON DELETE CASCADE,
			user_id UUID NOT NULL REFERENCES users(id),
			user_name TEXT NOT NULL,
			rating INT NOT NULL CHECK (rating BETWEEN 1 AND 5),
			comment TEXT NOT NULL DEFAULT '',
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			UNIQUE (product_id, user_id)
		);

		CREATE TABLE IF NOT EXISTS orders (
			id UUID PRIMARY KEY,
			user_id UUID NOT NULL REFERENCES users(id),
			payment_method TEXT NOT NULL DEFAULT '',
			payment_result JSONB,
			items_price DECIMAL(10,2) NOT NULL DEFAULT 0,
			tax_price DECIMAL(10,2) NOT NULL DEFAULT 0,
			shipping_price DECIMAL(10,2) NOT NULL DEFAULT 0,
			total_price DECIMAL(10,2) NOT NULL DEFAULT 0,
			is_paid BOOLEAN NOT NULL DEFAULT FALSE,
			paid_at TIMESTAMPTZ,
			is_delivered BOOLEAN NOT NULL DEFAULT FALSE,
			delivered_at TIMESTAMPTZ,
			ship_address TEXT NOT NULL DEFAULT '',
			ship_city TEXT NOT NULL DEFAULT '',
			ship_postal_code TEXT NOT NULL DEFAULT '',
			ship_country TEXT NOT NULL DEFAULT '',
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		);

		CREATE TABLE IF NOT EXISTS order_items (
			id UUID PRIMARY KEY,
			order_id UUID NOT NULL REFERENCES orders(id) ON DELETE CASCADE,
			product_id UUID NOT NULL,
			name TEXT NOT NULL,
			qty INT NOT NULL,
			price DECIMAL(10,2) NOT NULL,
			image TEXT NOT NULL DEFAULT '',
			selected_color TEXT,
			selected_size TEXT
		);
	`

	if _, err := pool.Exec(ctx, schema); err != nil {
		t.Fatalf("failed to create schema: %v", err)
	}
}

// CleanupDB truncates every table between test cases.
func CleanupDB(t *testing.T, pool *pgxpool.Pool) {
	t.Helper()

	ctx := context.Background()

	_, err := pool.Exec(ctx, `
		TRUNCATE order_items, orders, reviews, products, categories, users CASCADE
	`)
	if err != nil {
		t.Fatalf("failed to clean up database: %v", err)
	}
}

// SetupTestServer wires the full HTTP stack against the test database.
func SetupTestServer(t *testing.T, testDB *TestDB) http.Handler {
	t.Helper()

	logger := zerolog.Nop()

	tokens := auth.NewTokenManager("integration-test-secret", time.Hour)

	userRepo := repository.NewUserRepository(testDB.Pool, logger)
	productRepo := repository.NewProductRepository(testDB.Pool, logger)
	categoryRepo := repository.NewCategoryRepository(testDB.Pool, logger)
	orderRepo := repository.NewOrderRepository(testDB.Pool, logger)
	reviewRepo := repository.NewReviewRepository(testDB.Pool, logger)

	userService := service.NewUserService(userRepo, tokens, logger)
	productService := service.NewProductService(productRepo, logger)
	categoryService := service.NewCategoryService(categoryRepo, logger)
	orderService := service.NewOrderService(orderRepo, logger)
	reviewService := service.NewReviewService(reviewRepo, productRepo, logger)

	handlers := router.Handlers{
		User:     handler.NewUserHandler(userService, 10, logger),
		Product:  handler.NewProductHandler(productService, 10, logger),
		Category: handler.NewCategoryHandler(categoryService, 10, logger),
		Order:    handler.NewOrderHandler(orderService, logger),
		Review:   handler.NewReviewHandler(reviewService, logger),
	}

	return router.New(handlers, tokens, userRepo, 15*time.Second, logger)
}
