package orderbook

import (
	"sync"
	"sync/atomic"

	"github.com/google/uuid"
)

// Engine admits orders for any number of symbols. Books for distinct
// symbols are independent and match in parallel; every mutation of one
// symbol's pair goes through that book's lock. Matching never blocks on
// I/O: trades are computed inside the critical section and handed to
// callbacks after it.
type Engine struct {
	books sync.Map // symbol -> *book

	admissionSeq atomic.Uint64
	tradeSeq     atomic.Uint64

	callbacks []func([]*Trade)
}

func NewEngine() *Engine {
	return &Engine{}
}

// RegisterTradeCallback adds a consumer for generated trades. Register
// before submitting; callbacks are invoked in trade generation order for
// any one symbol.
func (e *Engine) RegisterTradeCallback(cb func([]*Trade)) {
	e.callbacks = append(e.callbacks, cb)
}

// Submit validates and admits one order. Invalid orders are rejected
// before any book is touched. The id is assigned here, at admission; any
// caller-supplied id is discarded so ids stay unique within the book. The
// returned trades are also delivered to registered callbacks once the book
// lock is released, in trade sequence order per symbol.
func (e *Engine) Submit(order *Order) ([]*Trade, error) {
	if err := validate(order); err != nil {
		return nil, err
	}

	order.ID = uuid.NewString()
	order.Sequence = e.admissionSeq.Add(1)

	book := e.getOrCreateBook(order.Symbol)
	trades := book.submit(order, func() uint64 { return e.tradeSeq.Add(1) })

	if len(trades) > 0 {
		book.drainOutbox(func(batch []*Trade) {
			for _, cb := range e.callbacks {
				cb(batch)
			}
		})
	}

	return trades, nil
}

// Cancel removes a resting order under the same per-symbol exclusivity as
// Submit.
func (e *Engine) Cancel(symbol, orderID string) error {
	val, ok := e.books.Load(symbol)
	if !ok {
		return ErrOrderNotFound
	}
	return val.(*book).cancel(orderID)
}

// BestBidAsk reports the top of book for a symbol.
func (e *Engine) BestBidAsk(symbol string) (bid, ask float64, hasBid, hasAsk bool) {
	val, ok := e.books.Load(symbol)
	if !ok {
		return 0, 0, false, false
	}
	return val.(*book).bestBidAsk()
}

func (e *Engine) getOrCreateBook(symbol string) *book {
	if val, ok := e.books.Load(symbol); ok {
		return val.(*book)
	}

	actual, _ := e.books.LoadOrStore(symbol, newBook(symbol))
	return actual.(*book)
}

func validate(order *Order) error {
	switch {
	case order.Symbol == "":
		return ErrMissingSymbol
	case order.Trader == "":
		return ErrMissingTrader
	case order.Side != BUY && order.Side != SELL:
		return ErrInvalidOrderSide
	case order.Price <= 0:
		return ErrInvalidOrderPrice
	case order.Qty <= 0:
		return ErrInvalidOrderQty
	}
	return nil
}
