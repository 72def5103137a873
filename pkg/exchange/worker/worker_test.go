package worker

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/joripage/matching-engine/pkg/exchange/model"
	"github.com/joripage/matching-engine/pkg/exchange/repo"
	"github.com/joripage/matching-engine/pkg/kafkawrapper"
)

type fakeTradeRepo struct {
	created []*model.TradeRecord
}

func (f *fakeTradeRepo) Create(ctx context.Context, record *model.TradeRecord) (*model.TradeRecord, error) {
	f.created = append(f.created, record)
	return record, nil
}

func (f *fakeTradeRepo) BulkCreate(ctx context.Context, records []*model.TradeRecord) ([]*model.TradeRecord, error) {
	f.created = append(f.created, records...)
	return records, nil
}

func (f *fakeTradeRepo) ListBySymbol(ctx context.Context, symbol string, limit int) ([]*model.TradeRecord, error) {
	return f.created, nil
}

type fakeRepo struct {
	trade *fakeTradeRepo
}

func (f *fakeRepo) Trade() repo.ITrade {
	return f.trade
}

func TestHandleTradeMessage(t *testing.T) {
	trades := &fakeTradeRepo{}
	w := NewWorker(&fakeRepo{trade: trades})
	ctx := context.Background()

	payload, _ := json.Marshal(&model.TradeMessage{
		Buyer:    "bob",
		Seller:   "alice",
		Symbol:   "ABC",
		Price:    decimal.NewFromInt(100),
		Quantity: 10,
		Sequence: 7,
	})

	if err := w.HandleTradeMessage(ctx, kafkawrapper.Message{Value: payload}); err != nil {
		t.Fatalf("valid message should be journaled, got %v", err)
	}
	if len(trades.created) != 1 {
		t.Fatalf("expected 1 record, got %d", len(trades.created))
	}

	rec := trades.created[0]
	if rec.Sequence != 7 || rec.Symbol != "ABC" || rec.Price != 100 || rec.Quantity != 10 {
		t.Errorf("incorrect record: %+v", rec)
	}

	if err := w.HandleTradeMessage(ctx, kafkawrapper.Message{Value: []byte("{oops")}); err != kafkawrapper.ErrReject {
		t.Errorf("malformed message should be rejected, got %v", err)
	}
}
