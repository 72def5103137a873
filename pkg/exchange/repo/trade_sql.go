package repo

import (
	"context"

	"gorm.io/gorm"

	"github.com/joripage/matching-engine/pkg/exchange/model"
)

type TradeSQLRepo struct {
	db *gorm.DB
}

func NewTradeSQLRepo(db *gorm.DB) *TradeSQLRepo {
	return &TradeSQLRepo{
		db: db,
	}
}

func (r *TradeSQLRepo) dbWithContext(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx)
}

func (r *TradeSQLRepo) Create(ctx context.Context, record *model.TradeRecord) (*model.TradeRecord, error) {
	return record, r.dbWithContext(ctx).Create(record).Error
}

func (r *TradeSQLRepo) BulkCreate(ctx context.Context, records []*model.TradeRecord) ([]*model.TradeRecord, error) {
	return records, r.dbWithContext(ctx).Create(records).Error
}

func (r *TradeSQLRepo) ListBySymbol(ctx context.Context, symbol string, limit int) ([]*model.TradeRecord, error) {
	var records []*model.TradeRecord
	err := r.dbWithContext(ctx).
		Where("symbol = ?", symbol).
		Order("sequence desc").
		Limit(limit).
		Find(&records).Error
	return records, err
}
