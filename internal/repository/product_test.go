package repository

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/adaa/backoffice-go/internal/model"
)

func newProductRepo(t *testing.T) (*ProductRepository, pgxmock.PgxPoolIface) {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)
	return NewProductRepository(mock), mock
}

func TestProductPage(t *testing.T) {
	repo, mock := newProductRepo(t)
	addedAt := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	mock.ExpectQuery("FROM product JOIN category").
		WithArgs(20, 10).
		WillReturnRows(pgxmock.NewRows([]string{
			"id", "name", "name", "stock", "status", "price", "sales", "added_at", "description",
		}).AddRow(int64(1), "Wireless Mouse", "Electronics", 120, "in stock", 29.99, 10, addedAt, "A mouse."))

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT COUNT(*) FROM product`)).
		WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(int64(42)))

	page, err := repo.Page(context.Background(), 2, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(42), page.Total)
	require.Len(t, page.Products, 1)
	assert.Equal(t, "Electronics", page.Products[0].Category)
	assert.Equal(t, addedAt, page.Products[0].AddedAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProductPageEmpty(t *testing.T) {
	repo, mock := newProductRepo(t)

	mock.ExpectQuery("FROM product JOIN category").
		WithArgs(0, 10).
		WillReturnRows(pgxmock.NewRows([]string{
			"id", "name", "name", "stock", "status", "price", "sales", "added_at", "description",
		}))
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT COUNT(*) FROM product`)).
		WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(int64(0)))

	page, err := repo.Page(context.Background(), 0, 10)
	require.NoError(t, err)
	assert.NotNil(t, page.Products, "empty pages serialize as [], not null")
	assert.Empty(t, page.Products)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProductCreate(t *testing.T) {
	repo, mock := newProductRepo(t)

	mock.ExpectQuery("SELECT id FROM category WHERE name").
		WithArgs("Electronics").
		WillReturnRows(pgxmock.NewRows([]string{"id"}).AddRow(int64(3)))
	mock.ExpectQuery("INSERT INTO product").
		WithArgs("Wireless Mouse", int64(3), "A mouse.", 29.99, 120, 0).
		WillReturnRows(pgxmock.NewRows([]string{"id"}).AddRow(int64(7)))

	id, err := repo.Create(context.Background(), model.ProductRequest{
		Name:        "Wireless Mouse",
		Category:    "Electronics",
		Price:       29.99,
		Stock:       120,
		Description: "A mouse.",
	})
	require.NoError(t, err)
	assert.Equal(t, int64(7), id)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProductCreateUnknownCategory(t *testing.T) {
	repo, mock := newProductRepo(t)

	mock.ExpectQuery("SELECT id FROM category WHERE name").
		WithArgs("Nonexistent").
		WillReturnRows(pgxmock.NewRows([]string{"id"}))

	_, err := repo.Create(context.Background(), model.ProductRequest{Category: "Nonexistent"})
	assert.ErrorIs(t, err, ErrProductNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProductUpdatePartial(t *testing.T) {
	repo, mock := newProductRepo(t)

	// Only the provided fields may appear in the statement.
	price := 24.99
	stock := 80
	mock.ExpectQuery(regexp.QuoteMeta(`UPDATE product SET price = $1, stock = $2 WHERE id = $3 RETURNING id`)).
		WithArgs(24.99, 80, int64(7)).
		WillReturnRows(pgxmock.NewRows([]string{"id"}).AddRow(int64(7)))

	id, err := repo.Update(context.Background(), 7, model.ProductUpdate{Price: &price, Stock: &stock})
	require.NoError(t, err)
	assert.Equal(t, int64(7), id)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProductUpdateNoFields(t *testing.T) {
	repo, mock := newProductRepo(t)

	// No fields, no statement.
	id, err := repo.Update(context.Background(), 7, model.ProductUpdate{})
	require.NoError(t, err)
	assert.Equal(t, int64(7), id)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProductDelete(t *testing.T) {
	repo, mock := newProductRepo(t)

	mock.ExpectExec("DELETE FROM product").
		WithArgs(int64(7)).
		WillReturnResult(pgxmock.NewResult("DELETE", 1))

	require.NoError(t, repo.Delete(context.Background(), 7))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCategoryListAll(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)
	repo := NewCategoryRepository(mock)

	mock.ExpectQuery("SELECT id, name FROM category").
		WillReturnRows(pgxmock.NewRows([]string{"id", "name"}).
			AddRow(int64(1), "Electronics").
			AddRow(int64(2), "Books"))

	categories, err := repo.List(context.Background())
	require.NoError(t, err)
	require.Len(t, categories, 2)
	assert.Equal(t, "Books", categories[1].Name)
	assert.NoError(t, mock.ExpectationsWereMet())
}
