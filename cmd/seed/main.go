// Command seed creates the database schema and fills the catalog with
// sample categories and products.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand"
	"os"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"

	"github.com/adaa/backoffice-go/internal/config"
	"github.com/adaa/backoffice-go/internal/repository"
)

const schema = `
CREATE EXTENSION IF NOT EXISTS "pgcrypto";

CREATE TABLE IF NOT EXISTS users (
	id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
	name TEXT NOT NULL,
	email TEXT NOT NULL,
	password TEXT NOT NULL,
	verified BOOLEAN NOT NULL DEFAULT false,
	created_at TIMESTAMPTZ NOT NULL DEFAULT now()
);
CREATE UNIQUE INDEX IF NOT EXISTS users_email_key ON users (email);

CREATE TABLE IF NOT EXISTS category (
	id BIGSERIAL PRIMARY KEY,
	name TEXT NOT NULL UNIQUE
);

CREATE TABLE IF NOT EXISTS product (
	id BIGSERIAL PRIMARY KEY,
	name TEXT NOT NULL,
	category_id BIGINT NOT NULL REFERENCES category(id),
	description TEXT NOT NULL,
	price NUMERIC(10,2) NOT NULL,
	stock INT NOT NULL DEFAULT 0,
	sales INT NOT NULL DEFAULT 0,
	status TEXT NOT NULL DEFAULT 'active',
	added_at TIMESTAMPTZ NOT NULL DEFAULT now(),
	created_at TIMESTAMPTZ NOT NULL DEFAULT now()
);
`

var categories = []string{
	"Electronics",
	"Furniture",
	"Groceries",
	"Clothing",
	"Books",
	"Sports & Outdoors",
	"Home & Kitchen",
	"Beauty & Personal Care",
	"Toys & Games",
	"Automotive",
}

type template struct {
	name     string
	minPrice float64
	maxPrice float64
	minStock int
	maxStock int
}

var templates = map[string][]template{
	"Electronics": {
		{"Wireless Mouse", 15.99, 45.99, 50, 200},
		{"Bluetooth Keyboard", 29.99, 89.99, 40, 150},
		{"Noise Cancelling Headphones", 99.99, 349.99, 30, 100},
		{"Power Bank", 19.99, 69.99, 100, 300},
	},
	"Furniture": {
		{"Ergonomic Office Chair", 149.99, 499.99, 10, 50},
		{"Standing Desk", 249.99, 699.99, 8, 30},
		{"Bookshelf", 79.99, 249.99, 15, 60},
	},
	"Groceries": {
		{"Organic Green Tea", 7.99, 19.99, 150, 400},
		{"Extra Virgin Olive Oil", 12.99, 29.99, 80, 250},
		{"Organic Coffee Beans", 14.99, 34.99, 120, 350},
	},
	"Clothing": {
		{"Cotton T-Shirt", 12.99, 29.99, 100, 300},
		{"Denim Jeans", 39.99, 89.99, 80, 220},
		{"Running Shoes", 59.99, 149.99, 70, 200},
	},
	"Books": {
		{"The Art of Leadership", 19.99, 39.99, 50, 150},
		{"Science Fiction Novel", 14.99, 24.99, 80, 240},
		{"Travel Guide Asia", 22.99, 44.99, 40, 120},
	},
	"Sports & Outdoors": {
		{"Yoga Mat", 19.99, 49.99, 80, 240},
		{"Camping Tent", 89.99, 249.99, 20, 70},
		{"Water Bottle", 14.99, 34.99, 150, 400},
	},
	"Home & Kitchen": {
		{"Blender", 39.99, 119.99, 50, 150},
		{"Air Fryer", 79.99, 199.99, 40, 120},
		{"Electric Kettle", 29.99, 69.99, 75, 225},
	},
	"Beauty & Personal Care": {
		{"Face Moisturizer", 19.99, 49.99, 100, 300},
		{"Electric Toothbrush", 39.99, 119.99, 60, 180},
	},
	"Toys & Games": {
		{"Building Blocks Set", 24.99, 79.99, 60, 180},
		{"Board Game Classic", 19.99, 49.99, 80, 240},
	},
	"Automotive": {
		{"Car Phone Mount", 12.99, 34.99, 100, 300},
		{"Tire Pressure Gauge", 9.99, 24.99, 120, 340},
	},
}

var variations = []string{"", " Pro", " Plus", " Premium", " Deluxe", " Classic", " Essential", " Ultra"}

const productCount = 200

func main() {
	if err := godotenv.Load(); err != nil {
		slog.Warn("no .env file found, using environment variables")
	}

	cfg := config.Load()
	ctx := context.Background()

	pool, err := repository.NewPool(ctx, cfg.DatabaseURL)
	if err != nil {
		slog.Error("database connection failed", "error", err)
		os.Exit(1)
	}
	defer pool.Close()

	if err := seed(ctx, pool); err != nil {
		slog.Error("seed failed", "error", err)
		os.Exit(1)
	}
	slog.Info("seed completed", "categories", len(categories), "products", productCount)
}

func seed(ctx context.Context, pool *pgxpool.Pool) error {
	tx, err := pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, schema); err != nil {
		return fmt.Errorf("create schema: %w", err)
	}

	categoryIDs := make(map[string]int64, len(categories))
	for _, name := range categories {
		var id int64
		err := tx.QueryRow(ctx, `
			INSERT INTO category (name) VALUES ($1)
			ON CONFLICT (name) DO UPDATE SET name = EXCLUDED.name
			RETURNING id
		`, name).Scan(&id)
		if err != nil {
			return fmt.Errorf("insert category %q: %w", name, err)
		}
		categoryIDs[name] = id
	}

	inserted := 0
	for inserted < productCount {
		for _, category := range categories {
			if inserted >= productCount {
				break
			}

			tpls := templates[category]
			tpl := tpls[rand.Intn(len(tpls))]

			name := tpl.name
			if rand.Float64() < 0.5 {
				name += variations[rand.Intn(len(variations))]
			}
			price := tpl.minPrice + rand.Float64()*(tpl.maxPrice-tpl.minPrice)
			stock := tpl.minStock + rand.Intn(tpl.maxStock-tpl.minStock+1)
			sales := int(float64(stock) * rand.Float64() * 0.8)
			description := fmt.Sprintf(
				"High quality %s from our %s range, selected for reliability and everyday value.",
				name, category,
			)

			_, err := tx.Exec(ctx, `
				INSERT INTO product (name, category_id, description, price, stock, sales)
				VALUES ($1, $2, $3, $4, $5, $6)
			`, name, categoryIDs[category], description, fmt.Sprintf("%.2f", price), stock, sales)
			if err != nil {
				return fmt.Errorf("insert product %q: %w", name, err)
			}
			inserted++
		}
	}

	return tx.Commit(ctx)
}
