package dto

import "github.com/shopspring/decimal"

type CreateProductInput struct {
	Name       string
	Price      decimal.Decimal
	Stock      int
	CategoryID int64
	ImageURL   string
	ImagePath  string // Local file to upload; wins over ImageURL
	Active     bool
}

type UpdateProductInput struct {
	ID         int64
	Name       string
	Price      decimal.Decimal
	Stock      int
	CategoryID int64
	ImageURL   string
	ImagePath  string
	Active     bool
}

// ProductPayload is the body of POST /products and PUT /products/id/{id}.
type ProductPayload struct {
	Name       string  `json:"name"`
	Price      float64 `json:"price"`
	Stock      int     `json:"stock"`
	CategoryID int64   `json:"category_id"`
	ImageURL   string  `json:"image_url"`
	Active     bool    `json:"active"`
}
