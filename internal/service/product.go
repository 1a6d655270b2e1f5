package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/adaa/backoffice-go/internal/apperr"
	"github.com/adaa/backoffice-go/internal/model"
	"github.com/adaa/backoffice-go/internal/repository"
)

// ProductStore is the persistence surface for catalog products.
type ProductStore interface {
	Page(ctx context.Context, page, pageSize int) (model.ProductPage, error)
	GetByID(ctx context.Context, id int64) (*model.Product, error)
	Create(ctx context.Context, req model.ProductRequest) (int64, error)
	Update(ctx context.Context, id int64, update model.ProductUpdate) (int64, error)
	Delete(ctx context.Context, id int64) error
}

// ProductService handles catalog business logic.
type ProductService struct {
	products ProductStore
}

// NewProductService creates a new ProductService.
func NewProductService(products ProductStore) *ProductService {
	return &ProductService{products: products}
}

// Page returns one page of the catalog listing.
func (s *ProductService) Page(ctx context.Context, page, pageSize int) (model.ProductPage, error) {
	result, err := s.products.Page(ctx, page, pageSize)
	if err != nil {
		return model.ProductPage{}, fmt.Errorf("product page: %w", err)
	}
	return result, nil
}

// Create inserts a new product and returns its id.
func (s *ProductService) Create(ctx context.Context, req model.ProductRequest) (int64, error) {
	id, err := s.products.Create(ctx, req)
	if err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			return 0, apperr.Validation(map[string]string{
				"category": "No such category exists.",
			})
		}
		return 0, fmt.Errorf("create product: %w", err)
	}
	return id, nil
}

// Update applies a partial update after confirming the product exists.
func (s *ProductService) Update(ctx context.Context, id int64, update model.ProductUpdate) (int64, error) {
	if _, err := s.products.GetByID(ctx, id); err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			return 0, apperr.NotFound("No such product exists.")
		}
		return 0, fmt.Errorf("update product: lookup: %w", err)
	}

	updatedID, err := s.products.Update(ctx, id, update)
	if err != nil {
		return 0, fmt.Errorf("update product: %w", err)
	}
	return updatedID, nil
}

// Delete removes a product. Deleting an absent product is not an error.
func (s *ProductService) Delete(ctx context.Context, id int64) error {
	if err := s.products.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete product: %w", err)
	}
	return nil
}
