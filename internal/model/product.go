package model

import "time"

// Product represents a catalog product joined with its category name.
type Product struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Category    string    `json:"category"`
	Price       float64   `json:"price"`
	Stock       int       `json:"stock"`
	Status      string    `json:"status"`
	Sales       int       `json:"sales"`
	Description string    `json:"description"`
	AddedAt     time.Time `json:"added_at"`
}

// ProductPage is one page of the catalog listing plus the total row count.
type ProductPage struct {
	Products []Product `json:"products"`
	Total    int64     `json:"total"`
}

// ProductRequest represents a product create request.
type ProductRequest struct {
	Name        string  `json:"name"`
	Category    string  `json:"category"`
	Price       float64 `json:"price"`
	Stock       int     `json:"stock"`
	Sales       int     `json:"sales"`
	Description string  `json:"description"`
}

// ProductUpdate carries a partial product update. Nil fields are left
// untouched.
type ProductUpdate struct {
	Name        *string  `json:"name"`
	Price       *float64 `json:"price"`
	Stock       *int     `json:"stock"`
	Status      *string  `json:"status"`
	Description *string  `json:"description"`
}

// Category is a catalog category.
type Category struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}
