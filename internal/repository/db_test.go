package repository

import (
	"context"
	"testing"
	"time"

	"storefront/internal/model"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

// setupTestDB creates a PostgreSQL testcontainer and returns a connection pool.
func setupTestDB(t *testing.T) (*pgxpool.Pool, func()) {
	ctx := context.Background()

	pgContainer, err := postgres.Run(ctx,
		"postgres:16-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("postgres"),
		postgres.WithPassword("postgres"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second)),
	)
	require.NoError(t, err)

	connStr, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	pool, err := pgxpool.New(ctx, connStr)
	require.NoError(t, err)

	createSchema(t, pool)

	cleanup := func() {
		pool.Close()
		_ = pgContainer.Terminate(ctx)
	}

	return pool, cleanup
}

// createSchema creates the necessary database schema for testing.
func createSchema(t *testing.T, pool *pgxpool.Pool) {
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
		CREATE INDEX IF NOT EXISTS idx_products_category ON products(category_id);
		CREATE INDEX IF NOT EXISTS idx_products_created_at ON products(created_at DESC);

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
		CREATE INDEX IF NOT EXISTS idx_orders_user ON orders(user_id);

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
		CREATE INDEX IF NOT EXISTS idx_order_items_order ON order_items(order_id);
	`

	_, err := pool.Exec(ctx, schema)
	require.NoError(t, err)
}

// seedUser inserts a test user and returns it.
func seedUser(t *testing.T, pool *pgxpool.Pool, name, email string) *model.User {
	ctx := context.Background()

	user := &model.User{
		ID:           uuid.New(),
		Name:         name,
		Email:        email,
		PasswordHash: "hashed",
		Addresses:    []model.Address{},
		CreatedAt:    time.Now(),
	}

	repo := NewUserRepository(pool, zerolog.Nop())
	require.NoError(t, repo.Create(ctx, user))

	return user
}

// seedProduct inserts a test product and returns it.
func seedProduct(t *testing.T, pool *pgxpool.Pool, name string, price float64) *model.Product {
	ctx := context.Background()

	now := time.Now()
	product := &model.Product{
		ID:        uuid.New(),
		Name:      name,
		Price:     price,
		CreatedAt: now,
		UpdatedAt: now,
	}

	repo := NewProductRepository(pool, zerolog.Nop())
	require.NoError(t, repo.Create(ctx, product))

	return product
}
