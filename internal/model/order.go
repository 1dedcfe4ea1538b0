package model

import "github.com/shopspring/decimal"

type PaymentType int

const (
	PaymentCash PaymentType = 1
	PaymentCard PaymentType = 2
)

// ParsePaymentType maps the checkout form selection; anything but "cash" bills as card.
func ParsePaymentType(s string) PaymentType {
	if s == "cash" {
		return PaymentCash
	}
	return PaymentCard
}

func (p PaymentType) String() string {
	if p == PaymentCash {
		return "cash"
	}
	return "card"
}

// DeliveryMethodDefault is the only delivery method the storefront offers.
const DeliveryMethodDefault = 3

type Bill struct {
	ID          int64           `json:"id_key,omitempty"`
	BillNumber  string          `json:"bill_number"`
	Discount    decimal.Decimal `json:"discount"`
	Date        string          `json:"date"`
	Total       decimal.Decimal `json:"total"`
	PaymentType PaymentType     `json:"payment_type"`
	ClientID    int64           `json:"client_id"`
}

// Order is the header created during checkout.
type Order struct {
	ID             int64           `json:"id_key,omitempty"`
	Total          decimal.Decimal `json:"total"`
	DeliveryMethod int             `json:"delivery_method"`
	ClientID       int64           `json:"client_id"`
	BillID         int64           `json:"bill_id"`
}

// OrderLine captures the unit price at the moment of purchase.
type OrderLine struct {
	ID        int64           `json:"id_key,omitempty"`
	Quantity  int             `json:"quantity"`
	Price     decimal.Decimal `json:"price"`
	OrderID   int64           `json:"order_id"`
	ProductID int64           `json:"product_id"`
}

// OrderRecord is a historical order as listed by the server.
type OrderRecord struct {
	ID       int64           `json:"id_key"`
	Date     Timestamp       `json:"date"`
	Total    decimal.Decimal `json:"total"`
	Status   OrderStatus     `json:"status"`
	ClientID int64           `json:"client_id"`
	Details  []OrderDetail   `json:"details"`
}

type OrderDetail struct {
	ProductID int64           `json:"product_id"`
	Quantity  int             `json:"quantity"`
	Price     decimal.Decimal `json:"price"`
	Product   *Product        `json:"product,omitempty"`
}

func (d OrderDetail) Subtotal() decimal.Decimal {
	return d.Price.Mul(decimal.NewFromInt(int64(d.Quantity)))
}
