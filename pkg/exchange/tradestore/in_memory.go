package tradestore

import (
	"sync"

	"github.com/joripage/matching-engine/pkg/orderbook"
)

// InMemoryTradeStore journals trades per symbol for the lifetime of the
// process. It backs the last-price feed; durable journaling is the
// worker's job, not this store's.
type InMemoryTradeStore struct {
	mu        sync.RWMutex
	trades    map[string][]*orderbook.Trade
	lastPrice map[string]float64
}

func NewInMemoryTradeStore() *InMemoryTradeStore {
	return &InMemoryTradeStore{
		trades:    make(map[string][]*orderbook.Trade),
		lastPrice: make(map[string]float64),
	}
}

func (s *InMemoryTradeStore) Add(t *orderbook.Trade) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.trades[t.Symbol] = append(s.trades[t.Symbol], t)
	s.lastPrice[t.Symbol] = t.Price
}

func (s *InMemoryTradeStore) Trades(symbol string) []*orderbook.Trade {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*orderbook.Trade, len(s.trades[symbol]))
	copy(out, s.trades[symbol])
	return out
}

func (s *InMemoryTradeStore) LastPrice(symbol string) (float64, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	price, ok := s.lastPrice[symbol]
	return price, ok
}
