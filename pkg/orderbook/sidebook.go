package orderbook

import "container/heap"

// sideBook is one side of a symbol's book: price levels keyed by price,
// with a heap over the keys so the best price is always at the top. Price
// priority across levels lives here, time priority inside each level.
type sideBook struct {
	side   Side
	levels map[float64]*priceLevel
	prices *PriceHeap
}

func newSideBook(side Side) *sideBook {
	less := func(i, j float64) bool { return i > j } // BUY: best = max
	if side == SELL {
		less = func(i, j float64) bool { return i < j } // SELL: best = min
	}

	return &sideBook{
		side:   side,
		levels: make(map[float64]*priceLevel),
		prices: NewPriceHeap(less),
	}
}

// insert appends the order to the tail of its price level, creating the
// level if it is the first order at that price.
func (b *sideBook) insert(o *Order) {
	level, ok := b.levels[o.Price]
	if !ok {
		level = newPriceLevel(o.Price)
		b.levels[o.Price] = level
		heap.Push(b.prices, o.Price)
	}
	level.append(o)
}

func (b *sideBook) bestPrice() (float64, bool) {
	return b.prices.Peek()
}

func (b *sideBook) bestLevel() (*priceLevel, bool) {
	price, ok := b.prices.Peek()
	if !ok {
		return nil, false
	}
	return b.levels[price], true
}

// purgeIfEmpty drops the level at price once its last order departs. A
// level never stays in the book empty.
func (b *sideBook) purgeIfEmpty(price float64) {
	level, ok := b.levels[price]
	if !ok || !level.isEmpty() {
		return
	}
	delete(b.levels, price)
	b.prices.Remove(price)
}

func (b *sideBook) isEmpty() bool {
	return b.prices.Len() == 0
}
