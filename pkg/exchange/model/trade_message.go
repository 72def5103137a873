package model

import (
	"github.com/shopspring/decimal"

	"github.com/joripage/matching-engine/pkg/orderbook"
)

// TradeMessage is the wire shape of one trade on the trades topic.
type TradeMessage struct {
	Buyer    string          `json:"buyer"`
	Seller   string          `json:"seller"`
	Symbol   string          `json:"symbol"`
	Price    decimal.Decimal `json:"price"`
	Quantity int64           `json:"quantity"`
	Sequence uint64          `json:"sequence"`
}

func NewTradeMessage(t *orderbook.Trade) *TradeMessage {
	return &TradeMessage{
		Buyer:    t.Buyer,
		Seller:   t.Seller,
		Symbol:   t.Symbol,
		Price:    decimal.NewFromFloat(t.Price),
		Quantity: t.Qty,
		Sequence: t.Sequence,
	}
}
