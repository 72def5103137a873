package marketdata

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// Snapshot is the per-symbol market data published after each batch of
// trades: top of book plus last trade price.
type Snapshot struct {
	Symbol    string
	Bid       float64
	Ask       float64
	HasBid    bool
	HasAsk    bool
	LastPrice float64
}

// Publisher writes snapshots to redis hashes under marketdata:<symbol>.
type Publisher struct {
	rdb *redis.Client
}

func NewPublisher(rdb *redis.Client) *Publisher {
	return &Publisher{rdb: rdb}
}

func (p *Publisher) Publish(ctx context.Context, snap Snapshot) error {
	key := fmt.Sprintf("marketdata:%s", snap.Symbol)

	fields := map[string]interface{}{
		"last_price": snap.LastPrice,
	}
	if snap.HasBid {
		fields["best_bid"] = snap.Bid
	}
	if snap.HasAsk {
		fields["best_ask"] = snap.Ask
	}

	pipe := p.rdb.Pipeline()
	if !snap.HasBid {
		pipe.HDel(ctx, key, "best_bid")
	}
	if !snap.HasAsk {
		pipe.HDel(ctx, key, "best_ask")
	}
	pipe.HSet(ctx, key, fields)
	_, err := pipe.Exec(ctx)
	return err
}
