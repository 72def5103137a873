package orderbook

// Trade is emitted once per fill and never mutated afterwards. Price is
// always the resting (maker) order's price. Sequence is engine-wide and
// monotonic so downstream consumers can re-order per symbol.
type Trade struct {
	Buyer    string
	Seller   string
	Symbol   string
	Price    float64
	Qty      int64
	Sequence uint64
}
