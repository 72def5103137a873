package exchange

import (
	"context"
	"sync"

	"github.com/joripage/matching-engine/pkg/exchange/model"
	"github.com/joripage/matching-engine/pkg/kafkawrapper"
	"github.com/joripage/matching-engine/pkg/orderbook"
)

// TradePublisher receives trades in generation order per symbol.
type TradePublisher interface {
	PublishTrades(ctx context.Context, trades []*orderbook.Trade) error
}

// KafkaTradePublisher writes trades to the trades topic as JSON, keyed by
// symbol so one symbol's trades stay on one partition in order.
type KafkaTradePublisher struct {
	producer *kafkawrapper.Producer
	topic    string
}

func NewKafkaTradePublisher(producer *kafkawrapper.Producer, topic string) *KafkaTradePublisher {
	return &KafkaTradePublisher{
		producer: producer,
		topic:    topic,
	}
}

func (p *KafkaTradePublisher) PublishTrades(ctx context.Context, trades []*orderbook.Trade) error {
	for _, t := range trades {
		msg := model.NewTradeMessage(t)
		if err := p.producer.PublishJSON(ctx, p.topic, t.Symbol, msg, nil); err != nil {
			return err
		}
	}
	return nil
}

// MemoryTradePublisher collects trades in memory, for tests and the
// in-process benchmark.
type MemoryTradePublisher struct {
	mu     sync.Mutex
	trades []*orderbook.Trade
}

func NewMemoryTradePublisher() *MemoryTradePublisher {
	return &MemoryTradePublisher{}
}

func (p *MemoryTradePublisher) PublishTrades(ctx context.Context, trades []*orderbook.Trade) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.trades = append(p.trades, trades...)
	return nil
}

func (p *MemoryTradePublisher) Trades() []*orderbook.Trade {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]*orderbook.Trade, len(p.trades))
	copy(out, p.trades)
	return out
}
