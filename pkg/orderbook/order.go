package orderbook

type Side string

const (
	BUY  Side = "BUY"
	SELL Side = "SELL"
)

// Order is one intent to trade, incoming or resting. Qty is the only
// mutable field: the match loop decrements it, nothing ever increases it.
// Sequence is the admission counter used for time priority.
type Order struct {
	ID       string
	Trader   string
	Symbol   string
	Side     Side
	Price    float64
	Qty      int64
	Sequence uint64
}
