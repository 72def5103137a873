package exchange

import (
	"context"
	"encoding/json"

	"go.uber.org/zap"

	"github.com/joripage/matching-engine/pkg/exchange/marketdata"
	"github.com/joripage/matching-engine/pkg/exchange/model"
	"github.com/joripage/matching-engine/pkg/exchange/tradestore"
	"github.com/joripage/matching-engine/pkg/kafkawrapper"
	"github.com/joripage/matching-engine/pkg/orderbook"
)

// Exchange wires the matching engine to its collaborators: order ingestion
// from the orders topic, trade egress to a TradePublisher, the in-process
// trade journal and the market data feed. Matching itself never blocks on
// any of them.
type Exchange struct {
	engine     *orderbook.Engine
	publisher  TradePublisher
	trades     tradestore.TradeStore
	marketdata *marketdata.Publisher
}

type Option func(*Exchange)

// WithMarketData turns on best bid/ask and last price publication.
func WithMarketData(md *marketdata.Publisher) Option {
	return func(s *Exchange) { s.marketdata = md }
}

func New(publisher TradePublisher, opts ...Option) *Exchange {
	s := &Exchange{
		engine:    orderbook.NewEngine(),
		publisher: publisher,
		trades:    tradestore.NewInMemoryTradeStore(),
	}
	for _, opt := range opts {
		opt(s)
	}

	s.engine.RegisterTradeCallback(s.onTrades)
	return s
}

func (s *Exchange) Engine() *orderbook.Engine {
	return s.engine
}

func (s *Exchange) TradeStore() tradestore.TradeStore {
	return s.trades
}

// Submit converts and admits one order request. Validation failures come
// back as orderbook sentinel errors and leave the books untouched.
func (s *Exchange) Submit(ctx context.Context, req *model.OrderRequest) (*orderbook.Order, error) {
	if !req.Quantity.IsInteger() {
		return nil, orderbook.ErrInvalidOrderQty
	}

	order := &orderbook.Order{
		Trader: req.Trader,
		Symbol: req.Symbol,
		Side:   orderbook.Side(req.Side),
		Price:  req.Price.InexactFloat64(),
		Qty:    req.Quantity.IntPart(),
	}

	if _, err := s.engine.Submit(order); err != nil {
		return nil, err
	}
	return order, nil
}

// Cancel removes a resting order.
func (s *Exchange) Cancel(ctx context.Context, symbol, orderID string) error {
	return s.engine.Cancel(symbol, orderID)
}

// HandleOrderMessage is the kafka consumer handler for the orders topic.
// Malformed payloads and validation rejects are not retryable: they are
// logged and the message is dropped to the DLQ path.
func (s *Exchange) HandleOrderMessage(ctx context.Context, msg kafkawrapper.Message) error {
	var req model.OrderRequest
	if err := json.Unmarshal(msg.Value, &req); err != nil {
		zap.S().Warnw("drop malformed order message", "err", err, "offset", msg.Offset)
		return kafkawrapper.ErrReject
	}

	if _, err := s.Submit(ctx, &req); err != nil {
		zap.S().Warnw("reject order", "err", err, "trader", req.Trader, "symbol", req.Symbol)
		return kafkawrapper.ErrReject
	}
	return nil
}

// onTrades runs after the book lock is released, in trade generation order
// for the symbol.
func (s *Exchange) onTrades(trades []*orderbook.Trade) {
	ctx := context.Background()

	for _, t := range trades {
		s.trades.Add(t)
	}

	if err := s.publisher.PublishTrades(ctx, trades); err != nil {
		zap.S().Errorw("publish trades", "err", err, "count", len(trades))
	}

	if s.marketdata != nil {
		s.publishMarketData(ctx, trades[len(trades)-1].Symbol)
	}
}

func (s *Exchange) publishMarketData(ctx context.Context, symbol string) {
	bid, ask, hasBid, hasAsk := s.engine.BestBidAsk(symbol)
	last, _ := s.trades.LastPrice(symbol)

	if err := s.marketdata.Publish(ctx, marketdata.Snapshot{
		Symbol:    symbol,
		Bid:       bid,
		Ask:       ask,
		HasBid:    hasBid,
		HasAsk:    hasAsk,
		LastPrice: last,
	}); err != nil {
		zap.S().Warnw("publish market data", "err", err, "symbol", symbol)
	}
}
