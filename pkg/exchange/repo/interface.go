package repo

import (
	"context"

	"github.com/joripage/matching-engine/pkg/exchange/model"
)

type ITrade interface {
	Create(ctx context.Context, record *model.TradeRecord) (*model.TradeRecord, error)
	BulkCreate(ctx context.Context, records []*model.TradeRecord) ([]*model.TradeRecord, error)
	ListBySymbol(ctx context.Context, symbol string, limit int) ([]*model.TradeRecord, error)
}
