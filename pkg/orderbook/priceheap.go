package orderbook

import "container/heap"

// PriceHeap implements heap.Interface over distinct price keys. The less
// function decides the side: i > j gives a max-heap (BUY), i < j a
// min-heap (SELL). The index map dedups pushes of an existing price.
type PriceHeap struct {
	prices []float64
	less   func(i, j float64) bool
	index  map[float64]bool
}

func NewPriceHeap(less func(i, j float64) bool) *PriceHeap {
	return &PriceHeap{
		prices: []float64{},
		less:   less,
		index:  make(map[float64]bool),
	}
}

func (h PriceHeap) Len() int {
	return len(h.prices)
}

func (h PriceHeap) Less(i, j int) bool {
	return h.less(h.prices[i], h.prices[j])
}

func (h PriceHeap) Swap(i, j int) {
	h.prices[i], h.prices[j] = h.prices[j], h.prices[i]
}

func (h *PriceHeap) Push(x any) {
	price := x.(float64)
	if !h.index[price] {
		h.index[price] = true
		h.prices = append(h.prices, price)
	}
}

func (h *PriceHeap) Pop() any {
	n := len(h.prices)
	price := h.prices[n-1]
	h.prices = h.prices[:n-1]
	delete(h.index, price)
	return price
}

// Peek returns the best price without removing it.
func (h *PriceHeap) Peek() (float64, bool) {
	if len(h.prices) == 0 {
		return 0, false
	}
	return h.prices[0], true
}

// Remove drops an arbitrary price from the heap. Needed when a cancel
// empties a level that is not top of book.
func (h *PriceHeap) Remove(price float64) {
	if !h.index[price] {
		return
	}
	for i, p := range h.prices {
		if p == price {
			heap.Remove(h, i)
			return
		}
	}
}
