package service

import (
	"context"
	"fmt"

	"github.com/adaa/backoffice-go/internal/model"
)

// CategoryStore is the persistence surface for catalog categories.
type CategoryStore interface {
	List(ctx context.Context) ([]model.Category, error)
}

// CategoryService handles category lookup.
type CategoryService struct {
	categories CategoryStore
}

// NewCategoryService creates a new CategoryService.
func NewCategoryService(categories CategoryStore) *CategoryService {
	return &CategoryService{categories: categories}
}

// List returns all categories.
func (s *CategoryService) List(ctx context.Context) ([]model.Category, error) {
	categories, err := s.categories.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	return categories, nil
}
