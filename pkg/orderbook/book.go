package orderbook

import "sync"

// book owns the BUY/SELL pair for one symbol. The mutex is the
// per-instrument critical section: one submit or cancel mutates both sides
// atomically and no reader sees a half-matched state. Trades are returned
// out of the critical section so callers deliver them after unlock.
type book struct {
	symbol string

	buy  *sideBook
	sell *sideBook

	ordersByID map[string]*Order

	mu sync.Mutex

	// egress outbox: batches are enqueued in generation order while the
	// book lock is still held, then drained by one goroutine at a time,
	// so delivery order per symbol matches trade sequence order even
	// when submissions race.
	outboxMu sync.Mutex
	outbox   [][]*Trade
	draining bool
}

func newBook(symbol string) *book {
	return &book{
		symbol:     symbol,
		buy:        newSideBook(BUY),
		sell:       newSideBook(SELL),
		ordersByID: make(map[string]*Order),
	}
}

// submit matches the incoming order against the opposite side while its
// price crosses the opposite best, then rests any remainder on its own
// side. Fills consume one resting order at a time, oldest first, at the
// resting order's price. The sweep continues across levels until the
// crossing condition fails or the order is exhausted.
func (b *book) submit(order *Order, nextTradeSeq func() uint64) []*Trade {
	b.mu.Lock()
	defer b.mu.Unlock()

	own, opposite := b.buy, b.sell
	crosses := func(incoming, best float64) bool { return incoming >= best }
	if order.Side == SELL {
		own, opposite = b.sell, b.buy
		crosses = func(incoming, best float64) bool { return incoming <= best }
	}

	var trades []*Trade
	for order.Qty > 0 {
		bestPrice, ok := opposite.bestPrice()
		if !ok || !crosses(order.Price, bestPrice) {
			break
		}

		level, _ := opposite.bestLevel()
		resting, _ := level.peekFront()

		fill := min(order.Qty, resting.Qty)
		trades = append(trades, b.newTrade(order, resting, bestPrice, fill, nextTradeSeq()))

		order.Qty -= fill
		if level.reduceOrRemoveFront(fill) {
			delete(b.ordersByID, resting.ID)
			opposite.purgeIfEmpty(bestPrice)
		}
	}

	if order.Qty > 0 {
		own.insert(order)
		b.ordersByID[order.ID] = order
	}

	if len(trades) > 0 {
		b.outboxMu.Lock()
		b.outbox = append(b.outbox, trades)
		b.outboxMu.Unlock()
	}

	return trades
}

// drainOutbox delivers queued trade batches in FIFO order. Only one
// goroutine drains at a time; a second caller returns immediately and its
// batch is delivered by the active drainer. Deliver runs without any book
// lock held, so a slow consumer never stalls matching.
func (b *book) drainOutbox(deliver func([]*Trade)) {
	b.outboxMu.Lock()
	if b.draining {
		b.outboxMu.Unlock()
		return
	}
	b.draining = true

	for len(b.outbox) > 0 {
		batch := b.outbox[0]
		b.outbox = b.outbox[1:]
		b.outboxMu.Unlock()

		deliver(batch)

		b.outboxMu.Lock()
	}

	b.draining = false
	b.outboxMu.Unlock()
}

func (b *book) newTrade(incoming, resting *Order, price float64, qty int64, seq uint64) *Trade {
	buyer, seller := incoming.Trader, resting.Trader
	if incoming.Side == SELL {
		buyer, seller = resting.Trader, incoming.Trader
	}

	return &Trade{
		Buyer:    buyer,
		Seller:   seller,
		Symbol:   b.symbol,
		Price:    price,
		Qty:      qty,
		Sequence: seq,
	}
}

// cancel removes a resting order before it matches. Same critical section
// as submit.
func (b *book) cancel(orderID string) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	order, ok := b.ordersByID[orderID]
	if !ok {
		return ErrOrderNotFound
	}

	side := b.buy
	if order.Side == SELL {
		side = b.sell
	}

	if level, ok := side.levels[order.Price]; ok && level.removeByID(orderID) {
		side.purgeIfEmpty(order.Price)
	}
	delete(b.ordersByID, orderID)

	return nil
}

// bestBidAsk snapshots the top of book for market data.
func (b *book) bestBidAsk() (bid, ask float64, hasBid, hasAsk bool) {
	b.mu.Lock()
	defer b.mu.Unlock()

	bid, hasBid = b.buy.bestPrice()
	ask, hasAsk = b.sell.bestPrice()
	return bid, ask, hasBid, hasAsk
}
