package model

import "github.com/shopspring/decimal"

type Product struct {
	ID         int64           `json:"id_key"`
	Name       string          `json:"name"`
	Price      decimal.Decimal `json:"price"`
	Stock      int             `json:"stock"`
	CategoryID int64           `json:"category_id"`
	Active     bool            `json:"active"`
	ImageURL   string          `json:"image_url,omitempty"`
	Category   *Category       `json:"category,omitempty"` // Expanded by some endpoints
}

// CategoryRef prefers the expanded category when the server sent one.
func (p Product) CategoryRef() int64 {
	if p.CategoryID == 0 && p.Category != nil {
		return p.Category.ID
	}
	return p.CategoryID
}

// Purchasable reports whether the last server-reported stock allows adding at least one unit.
func (p Product) Purchasable() bool {
	return p.Active && p.Stock > 0
}
