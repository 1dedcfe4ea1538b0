package model

import "github.com/shopspring/decimal"

type Cart struct {
	Items          []CartLine      `json:"items"`
	Total          decimal.Decimal `json:"total"`
	HasAdjustments bool            `json:"has_adjustments"`
}

type CartLine struct {
	ID                int64   `json:"id_key"`
	ProductID         int64   `json:"product_id"`
	Quantity          int     `json:"quantity"`
	Product           Product `json:"product"`
	AdjustmentMessage string  `json:"adjustment_message,omitempty"`
}

func (c *Cart) Empty() bool {
	return c == nil || len(c.Items) == 0
}

// Line returns the line holding productID.
func (c *Cart) Line(productID int64) (CartLine, bool) {
	if c == nil {
		return CartLine{}, false
	}
	for _, l := range c.Items {
		if l.ProductID == productID {
			return l, true
		}
	}
	return CartLine{}, false
}

// ComputedTotal is the client-side sum of price * quantity over all lines. The
// server-reported Total is what gets billed; this exists to cross-check it.
func (c *Cart) ComputedTotal() decimal.Decimal {
	sum := decimal.Zero
	if c == nil {
		return sum
	}
	for _, l := range c.Items {
		sum = sum.Add(l.Subtotal())
	}
	return sum
}

func (l CartLine) Subtotal() decimal.Decimal {
	return l.Product.Price.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// StockCeiling is the largest quantity the line may be set to, as of the last fetch.
func (l CartLine) StockCeiling() int {
	return l.Product.Stock
}

func (l CartLine) Adjusted() bool {
	return l.AdjustmentMessage != ""
}
