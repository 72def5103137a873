package orderbook

import "errors"

var (
	ErrInvalidOrderPrice = errors.New("invalid order price")
	ErrInvalidOrderQty   = errors.New("invalid order quantity")
	ErrInvalidOrderSide  = errors.New("invalid order side")
	ErrMissingSymbol     = errors.New("missing symbol")
	ErrMissingTrader     = errors.New("missing trader")
	ErrOrderNotFound     = errors.New("order not found")
)
