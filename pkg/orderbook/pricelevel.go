package orderbook

import "github.com/gammazero/deque"

// priceLevel enforces time priority at one price: orders append at the
// tail and fills consume from the front.
type priceLevel struct {
	price  float64
	orders deque.Deque[*Order]
}

func newPriceLevel(price float64) *priceLevel {
	return &priceLevel{price: price}
}

func (l *priceLevel) append(o *Order) {
	l.orders.PushBack(o)
}

func (l *priceLevel) peekFront() (*Order, bool) {
	if l.orders.Len() == 0 {
		return nil, false
	}
	return l.orders.Front(), true
}

// reduceOrRemoveFront decrements the front order by fill and removes it
// from the level once it hits zero. Reports whether the order was removed.
func (l *priceLevel) reduceOrRemoveFront(fill int64) bool {
	front := l.orders.Front()
	front.Qty -= fill
	if front.Qty == 0 {
		l.orders.PopFront()
		return true
	}
	return false
}

func (l *priceLevel) isEmpty() bool {
	return l.orders.Len() == 0
}

func (l *priceLevel) totalQty() int64 {
	var total int64
	for i := 0; i < l.orders.Len(); i++ {
		total += l.orders.At(i).Qty
	}
	return total
}

// removeByID removes a resting order from the level, keeping the arrival
// order of everything else. Reports whether the order was found.
func (l *priceLevel) removeByID(id string) bool {
	found := false
	for i, n := 0, l.orders.Len(); i < n; i++ {
		o := l.orders.PopFront()
		if o.ID == id {
			found = true
			continue
		}
		l.orders.PushBack(o)
	}
	return found
}
