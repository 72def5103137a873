package model

import (
	"github.com/shopspring/decimal"
)

// OrderRequest is the wire shape of one order admission as consumed from
// the orders topic. Price and quantity arrive as decimals and are
// converted at the boundary; the book itself works in float64/int64.
type OrderRequest struct {
	Trader   string          `json:"trader"`
	Side     string          `json:"side"`
	Symbol   string          `json:"symbol"`
	Price    decimal.Decimal `json:"price"`
	Quantity decimal.Decimal `json:"quantity"`
}
