package exchange

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/joripage/matching-engine/pkg/exchange/model"
	"github.com/joripage/matching-engine/pkg/kafkawrapper"
	"github.com/joripage/matching-engine/pkg/orderbook"
)

func req(trader, side, symbol string, price, qty int64) *model.OrderRequest {
	return &model.OrderRequest{
		Trader:   trader,
		Side:     side,
		Symbol:   symbol,
		Price:    decimal.NewFromInt(price),
		Quantity: decimal.NewFromInt(qty),
	}
}

func TestSubmitPublishesTradesInOrder(t *testing.T) {
	pub := NewMemoryTradePublisher()
	ex := New(pub)
	ctx := context.Background()

	ex.Submit(ctx, req("alice", "SELL", "ABC", 99, 5))
	ex.Submit(ctx, req("carol", "SELL", "ABC", 100, 5))
	if _, err := ex.Submit(ctx, req("bob", "BUY", "ABC", 100, 10)); err != nil {
		t.Fatal(err)
	}

	trades := pub.Trades()
	if len(trades) != 2 {
		t.Fatalf("expected 2 published trades, got %d", len(trades))
	}
	if trades[0].Price != 99 || trades[1].Price != 100 {
		t.Errorf("trades not in generation order: %+v", trades)
	}
	if trades[1].Sequence <= trades[0].Sequence {
		t.Errorf("trade sequence not increasing: %+v", trades)
	}

	if last, ok := ex.TradeStore().LastPrice("ABC"); !ok || last != 100 {
		t.Errorf("expected last price 100, got %v %v", last, ok)
	}
}

func TestSubmitRejectsInvalidRequests(t *testing.T) {
	pub := NewMemoryTradePublisher()
	ex := New(pub)
	ctx := context.Background()

	cases := []struct {
		name string
		req  *model.OrderRequest
		want error
	}{
		{"zero price", req("t", "BUY", "ABC", 0, 10), orderbook.ErrInvalidOrderPrice},
		{"zero qty", req("t", "BUY", "ABC", 100, 0), orderbook.ErrInvalidOrderQty},
		{"unknown side", req("t", "HOLD", "ABC", 100, 10), orderbook.ErrInvalidOrderSide},
		{"missing symbol", req("t", "BUY", "", 100, 10), orderbook.ErrMissingSymbol},
		{"missing trader", req("", "BUY", "ABC", 100, 10), orderbook.ErrMissingTrader},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := ex.Submit(ctx, tc.req); err != tc.want {
				t.Errorf("expected %v, got %v", tc.want, err)
			}
		})
	}

	// fractional quantity is rejected at the boundary
	fractional := req("t", "BUY", "ABC", 100, 10)
	fractional.Quantity = decimal.NewFromFloat(1.5)
	if _, err := ex.Submit(ctx, fractional); err != orderbook.ErrInvalidOrderQty {
		t.Errorf("expected ErrInvalidOrderQty for fractional qty, got %v", err)
	}

	if len(pub.Trades()) != 0 {
		t.Errorf("rejected requests must not publish trades")
	}
}

func TestHandleOrderMessage(t *testing.T) {
	pub := NewMemoryTradePublisher()
	ex := New(pub)
	ctx := context.Background()

	payload, _ := json.Marshal(req("alice", "SELL", "ABC", 100, 10))
	if err := ex.HandleOrderMessage(ctx, kafkawrapper.Message{Value: payload}); err != nil {
		t.Fatalf("valid message should be accepted, got %v", err)
	}

	payload, _ = json.Marshal(req("bob", "BUY", "ABC", 100, 10))
	if err := ex.HandleOrderMessage(ctx, kafkawrapper.Message{Value: payload}); err != nil {
		t.Fatalf("valid message should be accepted, got %v", err)
	}
	if len(pub.Trades()) != 1 {
		t.Errorf("expected 1 trade after crossing messages, got %d", len(pub.Trades()))
	}

	if err := ex.HandleOrderMessage(ctx, kafkawrapper.Message{Value: []byte("{not json")}); err != kafkawrapper.ErrReject {
		t.Errorf("malformed payload should be rejected, got %v", err)
	}

	payload, _ = json.Marshal(req("bob", "BUY", "ABC", 0, 10))
	if err := ex.HandleOrderMessage(ctx, kafkawrapper.Message{Value: payload}); err != kafkawrapper.ErrReject {
		t.Errorf("invalid order should be rejected, got %v", err)
	}
}

func TestCancelThroughExchange(t *testing.T) {
	pub := NewMemoryTradePublisher()
	ex := New(pub)
	ctx := context.Background()

	order, err := ex.Submit(ctx, req("bob", "BUY", "ABC", 100, 10))
	if err != nil {
		t.Fatal(err)
	}
	if err := ex.Cancel(ctx, "ABC", order.ID); err != nil {
		t.Fatalf("expected cancel success, got %v", err)
	}

	ex.Submit(ctx, req("alice", "SELL", "ABC", 100, 10))
	if len(pub.Trades()) != 0 {
		t.Errorf("cancelled order must not match")
	}
}
