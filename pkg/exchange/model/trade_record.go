package model

import "time"

// TradeRecord is the persisted form of a trade, journaled by the worker.
type TradeRecord struct {
	ID        int64  `gorm:"primaryKey;autoIncrement"`
	Sequence  uint64 `gorm:"uniqueIndex"`
	Buyer     string
	Seller    string
	Symbol    string `gorm:"index"`
	Price     float64
	Quantity  int64
	CreatedAt time.Time
}

func (TradeRecord) TableName() string {
	return "trades"
}
