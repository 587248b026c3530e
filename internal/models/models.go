package models

import (
	"github.com/shopspring/decimal"
)

type Product struct {
	ID              string `json:"id"`
	Title           string `json:"title"`
	BasePrice       int64  `json:"base_price"`
	DiscountPercent int    `json:"discount_percent"`
	Image           string `json:"image"`
}

// EffectivePrice is the base price after discount, floored to a whole rupee.
func (p Product) EffectivePrice() int64 {
	factor := decimal.NewFromInt(int64(100 - p.DiscountPercent)).Div(decimal.NewFromInt(100))
	return decimal.NewFromInt(p.BasePrice).Mul(factor).Floor().IntPart()
}

type CartLine struct {
	ProductID string `json:"product_id"`
	Title     string `json:"title"`
	Quantity  int    `json:"quantity"`
	UnitPrice int64  `json:"unit_price"`
}

func (l CartLine) Subtotal() int64 {
	return l.UnitPrice * int64(l.Quantity)
}

type Customer struct {
	Name        string `json:"name"`
	Address     string `json:"address"`
	Pincode     string `json:"pincode"`
	ReferenceBy string `json:"reference_by,omitempty"`
}

// OrderLine is one persisted ledger row. Customer fields and the timestamp are
// repeated on every line of an order.
type OrderLine struct {
	OrderID     string `json:"order_id"`
	Product     string `json:"product"`
	Quantity    int    `json:"quantity"`
	UnitPrice   int64  `json:"unit_price"`
	Subtotal    int64  `json:"subtotal"`
	Name        string `json:"name"`
	Phone       string `json:"phone"`
	Address     string `json:"address"`
	Pincode     string `json:"pincode"`
	ReferenceBy string `json:"reference_by,omitempty"`
	Timestamp   string `json:"timestamp"`
}

type OrderHistory struct {
	Columns []string    `json:"columns"`
	Lines   []OrderLine `json:"lines"`
}

type OrderGroup struct {
	OrderID     string      `json:"order_id"`
	Name        string      `json:"name"`
	Phone       string      `json:"phone"`
	Address     string      `json:"address"`
	Pincode     string      `json:"pincode"`
	ReferenceBy string      `json:"reference_by,omitempty"`
	Timestamp   string      `json:"timestamp"`
	Lines       []OrderLine `json:"lines"`
	Total       int64       `json:"total"`
}

type Receipt struct {
	OrderID   string      `json:"order_id"`
	Phone     string      `json:"phone"`
	Customer  Customer    `json:"customer"`
	Timestamp string      `json:"timestamp"`
	Lines     []OrderLine `json:"lines"`
	Total     int64       `json:"total"`
	Summary   string      `json:"summary"`
}

const TimestampLayout = "2006-01-02 15:04:05"
