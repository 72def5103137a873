// Package worker journals published trades into the trade database.
package worker

import (
	"context"
	"encoding/json"

	"go.uber.org/zap"

	"github.com/joripage/matching-engine/pkg/exchange/model"
	"github.com/joripage/matching-engine/pkg/exchange/repo"
	"github.com/joripage/matching-engine/pkg/kafkawrapper"
)

type Worker struct {
	trade repo.ITrade
}

func NewWorker(repo repo.IRepo) *Worker {
	return &Worker{
		trade: repo.Trade(),
	}
}

// HandleTradeMessage is the kafka consumer handler for the trades topic.
// Unmarshal failures are rejected; insert failures are retryable.
func (w *Worker) HandleTradeMessage(ctx context.Context, msg kafkawrapper.Message) error {
	var tm model.TradeMessage
	if err := json.Unmarshal(msg.Value, &tm); err != nil {
		zap.S().Warnw("drop malformed trade message", "err", err, "offset", msg.Offset)
		return kafkawrapper.ErrReject
	}

	_, err := w.trade.Create(ctx, &model.TradeRecord{
		Sequence: tm.Sequence,
		Buyer:    tm.Buyer,
		Seller:   tm.Seller,
		Symbol:   tm.Symbol,
		Price:    tm.Price.InexactFloat64(),
		Quantity: tm.Quantity,
	})
	return err
}
