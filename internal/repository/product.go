package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/adaa/backoffice-go/internal/model"
)

var ErrProductNotFound = errors.New("product not found")

// ProductRepository handles catalog product persistence.
type ProductRepository struct {
	db DB
}

// NewProductRepository creates a new ProductRepository.
func NewProductRepository(db DB) *ProductRepository {
	return &ProductRepository{db: db}
}

// Page returns one page of products joined with their category name, newest
// first, plus the total product count.
func (r *ProductRepository) Page(ctx context.Context, page, pageSize int) (model.ProductPage, error) {
	offset := page * pageSize

	rows, err := r.db.Query(ctx, `
		SELECT product.id, product.name, category.name, product.stock,
		       product.status, product.price, product.sales, product.added_at,
		       product.description
		FROM product JOIN category ON product.category_id = category.id
		ORDER BY product.created_at DESC
		OFFSET $1 LIMIT $2
	`, offset, pageSize)
	if err != nil {
		return model.ProductPage{}, err
	}
	defer rows.Close()

	products := []model.Product{}
	for rows.Next() {
		var p model.Product
		if err := rows.Scan(&p.ID, &p.Name, &p.Category, &p.Stock, &p.Status,
			&p.Price, &p.Sales, &p.AddedAt, &p.Description); err != nil {
			return model.ProductPage{}, err
		}
		products = append(products, p)
	}
	if err := rows.Err(); err != nil {
		return model.ProductPage{}, err
	}

	var total int64
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM product`).Scan(&total); err != nil {
		return model.ProductPage{}, err
	}

	return model.ProductPage{Products: products, Total: total}, nil
}

// GetByID retrieves a product's id and name, or ErrProductNotFound.
func (r *ProductRepository) GetByID(ctx context.Context, id int64) (*model.Product, error) {
	p := &model.Product{}
	err := r.db.QueryRow(ctx, `SELECT id, name FROM product WHERE id = $1`, id).Scan(&p.ID, &p.Name)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}
	return p, nil
}

// Create inserts a product under the named category and returns its id.
// The category is resolved by name; an unknown category reads as
// ErrProductNotFound for the caller to classify.
func (r *ProductRepository) Create(ctx context.Context, req model.ProductRequest) (int64, error) {
	var categoryID int64
	err := r.db.QueryRow(ctx, `SELECT id FROM category WHERE name = $1`, req.Category).Scan(&categoryID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, ErrProductNotFound
		}
		return 0, err
	}

	var id int64
	err = r.db.QueryRow(ctx, `
		INSERT INTO product (name, category_id, description, price, stock, sales)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`, req.Name, categoryID, req.Description, req.Price, req.Stock, req.Sales).Scan(&id)
	if err != nil {
		return 0, err
	}
	return id, nil
}

// Update applies a partial update, building the SET list from the non-nil
// fields, and returns the updated product id.
func (r *ProductRepository) Update(ctx context.Context, id int64, update model.ProductUpdate) (int64, error) {
	fields := []string{}
	values := []any{}

	add := func(column string, value any) {
		fields = append(fields, fmt.Sprintf("%s = $%d", column, len(values)+1))
		values = append(values, value)
	}

	if update.Name != nil {
		add("name", *update.Name)
	}
	if update.Price != nil {
		add("price", *update.Price)
	}
	if update.Stock != nil {
		add("stock", *update.Stock)
	}
	if update.Status != nil {
		add("status", *update.Status)
	}
	if update.Description != nil {
		add("description", *update.Description)
	}

	if len(fields) == 0 {
		return id, nil
	}

	values = append(values, id)
	query := fmt.Sprintf(`UPDATE product SET %s WHERE id = $%d RETURNING id`,
		strings.Join(fields, ", "), len(values))

	var updatedID int64
	err := r.db.QueryRow(ctx, query, values...).Scan(&updatedID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, ErrProductNotFound
		}
		return 0, err
	}
	return updatedID, nil
}

// Delete removes a product by id.
func (r *ProductRepository) Delete(ctx context.Context, id int64) error {
	_, err := r.db.Exec(ctx, `DELETE FROM product WHERE id = $1`, id)
	return err
}
