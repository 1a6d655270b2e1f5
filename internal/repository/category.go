package repository

import (
	"context"

	"github.com/adaa/backoffice-go/internal/model"
)

// CategoryRepository handles catalog category persistence.
type CategoryRepository struct {
	db DB
}

// NewCategoryRepository creates a new CategoryRepository.
func NewCategoryRepository(db DB) *CategoryRepository {
	return &CategoryRepository{db: db}
}

// List returns all categories.
func (r *CategoryRepository) List(ctx context.Context) ([]model.Category, error) {
	rows, err := r.db.Query(ctx, `SELECT id, name FROM category`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	categories := []model.Category{}
	for rows.Next() {
		var c model.Category
		if err := rows.Scan(&c.ID, &c.Name); err != nil {
			return nil, err
		}
		categories = append(categories, c)
	}
	return categories, rows.Err()
}
