package integration

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
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

	poolConfig, err := pgxpool.ParseConfig(connStr)
	if err != nil {
		t.Fatalf("failed to parse connection string: %v", err)
	}
	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
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
		CREATE TABLE IF NOT EXISTS products (
			id VARCHAR(50) PRIMARY KEY,
			name VARCHAR(255) NOT NULL,
			description TEXT NOT NULL DEFAULT '',
			price DECIMAL(10, 2) NOT NULL,
			original_price DECIMAL(10, 2) NOT NULL DEFAULT 0,
			category VARCHAR(50) NOT NULL,
			sub_category VARCHAR(100) NOT NULL DEFAULT '',
			images TEXT[] NOT NULL DEFAULT '{}',
			sizes TEXT[] NOT NULL DEFAULT '{}',
			ratings DECIMAL(3, 2) NOT NULL DEFAULT 0,
			num_reviews INTEGER NOT NULL DEFAULT 0,
			stock INTEGER NOT NULL DEFAULT 0 CHECK (stock >= 0),
			is_offer BOOLEAN NOT NULL DEFAULT FALSE,
			is_customizable BOOLEAN NOT NULL DEFAULT FALSE,
			created_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP
		);

		CREATE TABLE IF NOT EXISTS reviews (
			id VARCHAR(50) PRIMARY KEY,
			product_id VARCHAR(50) NOT NULL REFERENCES products(id) ON DELETE CASCADE,
			user_name VARCHAR(255) NOT NULL,
			rating INTEGER NOT NULL CHECK (rating BETWEEN 1 AND 5),
			comment TEXT NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_reviews_product_id ON reviews(product_id);

		CREATE TABLE IF NOT EXISTS orders (
			id UUID PRIMARY KEY,
			user_id VARCHAR(100) NOT NULL,
			user_name VARCHAR(255) NOT NULL,
			items JSONB NOT NULL,
			subtotal DECIMAL(10, 2) NOT NULL,
			shipping_cost DECIMAL(10, 2) NOT NULL,
			cod_fee DECIMAL(10, 2) NOT NULL,
			discount DECIMAL(10, 2) NOT NULL,
			total DECIMAL(10, 2) NOT NULL,
			status VARCHAR(30) NOT NULL,
			timeline JSONB NOT NULL,
			tracking_number VARCHAR(100) NOT NULL DEFAULT '',
			courier VARCHAR(100) NOT NULL DEFAULT '',
			shipping_address JSONB NOT NULL,
			payment_method VARCHAR(20) NOT NULL,
			payment_status VARCHAR(20) NOT NULL,
			return_reason TEXT NOT NULL DEFAULT '',
			cancellation_reason TEXT NOT NULL DEFAULT '',
			coupon_code VARCHAR(50),
			created_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP,
			updated_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_orders_user_id ON orders(user_id);
		CREATE INDEX IF NOT EXISTS idx_orders_status ON orders(status);

		CREATE TABLE IF NOT EXISTS coupons (
			id UUID PRIMARY KEY,
			code VARCHAR(50) NOT NULL UNIQUE,
			discount_type VARCHAR(20) NOT NULL,
			value DECIMAL(10, 2) NOT NULL,
			min_purchase DECIMAL(10, 2) NOT NULL DEFAULT 0,
			expiry_date TIMESTAMPTZ,
			is_active BOOLEAN NOT NULL DEFAULT TRUE,
			created_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP
		);

		CREATE TABLE IF NOT EXISTS bespoke_requests (
			id UUID PRIMARY KEY,
			user_id VARCHAR(100) NOT NULL,
			user_name VARCHAR(255) NOT NULL,
			user_email VARCHAR(255) NOT NULL DEFAULT '',
			product_id VARCHAR(50) NOT NULL,
			product_name VARCHAR(255) NOT NULL,
			measurements JSONB NOT NULL,
			unit VARCHAR(10) NOT NULL,
			notes TEXT NOT NULL DEFAULT '',
			status VARCHAR(20) NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP
		);

		CREATE TABLE IF NOT EXISTS payment_settings (
			id INTEGER PRIMARY KEY,
			cod_enabled BOOLEAN NOT NULL,
			cod_fee DECIMAL(10, 2) NOT NULL,
			prepaid_discount DECIMAL(5, 2) NOT NULL,
			shipping_charge DECIMAL(10, 2) NOT NULL,
			free_shipping_threshold DECIMAL(10, 2) NOT NULL,
			updated_at TIMESTAMPTZ NOT NULL
		);

		CREATE TABLE IF NOT EXISTS audit_logs (
			id UUID PRIMARY KEY,
			event VARCHAR(100) NOT NULL,
			user_name VARCHAR(255) NOT NULL,
			user_id VARCHAR(100) NOT NULL,
			metadata JSONB,
			created_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_audit_logs_created_at ON audit_logs(created_at);

		CREATE TABLE IF NOT EXISTS users (
			id VARCHAR(100) PRIMARY KEY,
			name VARCHAR(255) NOT NULL,
			email VARCHAR(255) NOT NULL,
			role VARCHAR(20) NOT NULL DEFAULT 'user',
			address TEXT NOT NULL DEFAULT '',
			phone VARCHAR(30) NOT NULL DEFAULT '',
			created_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP
		);

		CREATE TABLE IF NOT EXISTS campaigns (
			id UUID PRIMARY KEY,
			title VARCHAR(255) NOT NULL,
			subtitle VARCHAR(255) NOT NULL DEFAULT '',
			banner_image TEXT NOT NULL DEFAULT '',
			banner_text TEXT NOT NULL DEFAULT '',
			active BOOLEAN NOT NULL DEFAULT FALSE,
			link TEXT NOT NULL DEFAULT ''
		);

		CREATE TABLE IF NOT EXISTS gift_cards (
			id UUID PRIMARY KEY,
			code VARCHAR(50) NOT NULL UNIQUE,
			balance DECIMAL(10, 2) NOT NULL
		);
	`

	_, err := pool.Exec(ctx, schema)
	if err != nil {
		t.Fatalf("failed to create schema: %v", err)
	}
}

// SeedProducts inserts test catalogue data into the database.
func SeedProducts(t *testing.T, pool *pgxpool.Pool) {
	t.Helper()

	ctx := context.Background()

	products := []struct {
		id           string
		name         string
		price        float64
		category     string
		stock        int
		customizable bool
	}{
		{"P001", "Silk Lehanga", 18500.00, "Women", 5, true},
		{"P002", "Linen Summer Dress", 3200.00, "Women", 25, false},
		{"P003", "Tutu Party Dress", 2100.00, "Girls", 12, false},
		{"P004", "Embroidered Kurta", 4500.00, "Women", 3, false},
		{"P005", "Cotton Frock", 1200.00, "Children", 40, false},
	}

	for _, p := range products {
		_, err := pool.Exec(ctx, `
			INSERT INTO products (id, name, price, category, stock, is_customizable)
			VALUES ($1, $2, $3, $4, $5, $6)`,
			p.id, p.name, p.price, p.category, p.stock, p.customizable,
		)
		if err != nil {
			t.Fatalf("failed to seed product %s: %v", p.id, err)
		}
	}
}

// CleanupDB cleans all data from test tables.
func CleanupDB(t *testing.T, pool *pgxpool.Pool) {
	t.Helper()

	ctx := context.Background()

	tables := []string{
		"reviews", "orders", "bespoke_requests", "coupons",
		"payment_settings", "audit_logs", "users", "campaigns",
		"gift_cards", "products",
	}
	for _, table := range tables {
		_, err := pool.Exec(ctx, fmt.Sprintf("DELETE FROM %s", table))
		if err != nil {
			t.Logf("failed to clean table %s: %v", table, err)
		}
	}
}
