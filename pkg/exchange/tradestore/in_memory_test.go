package tradestore

import (
	"testing"

	"github.com/joripage/matching-engine/pkg/orderbook"
)

func TestAddAndLastPrice(t *testing.T) {
	s := NewInMemoryTradeStore()

	if _, ok := s.LastPrice("ABC"); ok {
		t.Fatalf("expected no last price for empty store")
	}

	s.Add(&orderbook.Trade{Symbol: "ABC", Price: 100, Qty: 5, Sequence: 1})
	s.Add(&orderbook.Trade{Symbol: "ABC", Price: 101, Qty: 5, Sequence: 2})
	s.Add(&orderbook.Trade{Symbol: "XYZ", Price: 50, Qty: 1, Sequence: 3})

	if price, ok := s.LastPrice("ABC"); !ok || price != 101 {
		t.Errorf("expected last price 101, got %v %v", price, ok)
	}
	if got := s.Trades("ABC"); len(got) != 2 || got[0].Sequence != 1 {
		t.Errorf("expected 2 ABC trades in order, got %+v", got)
	}
	if got := s.Trades("XYZ"); len(got) != 1 {
		t.Errorf("expected 1 XYZ trade, got %d", len(got))
	}
}
