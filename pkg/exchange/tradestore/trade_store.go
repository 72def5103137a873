package tradestore

import "github.com/joripage/matching-engine/pkg/orderbook"

type TradeStore interface {
	Add(t *orderbook.Trade)
	Trades(symbol string) []*orderbook.Trade
	LastPrice(symbol string) (float64, bool)
}
