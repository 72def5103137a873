package main

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/joripage/matching-engine/pkg/orderbook"
)

const (
	numOrders = 1_000_000
	minPrice  = 100.0
	maxPrice  = 200.0
	minQty    = 1
	maxQty    = 100
)

func randomOrder(id int) *orderbook.Order {
	side := orderbook.BUY
	if rand.Intn(2) == 0 {
		side = orderbook.SELL
	}
	price := minPrice + rand.Float64()*(maxPrice-minPrice)
	qty := int64(rand.Intn(maxQty-minQty+1) + minQty)

	return &orderbook.Order{
		ID:     fmt.Sprintf("ORD-%06d", id),
		Trader: fmt.Sprintf("trader-%d", id%100),
		Symbol: "ABC",
		Side:   side,
		Price:  float64(int(price*100)) / 100,
		Qty:    qty,
	}
}

func main() {
	rand.Seed(time.Now().UnixNano())

	engine := orderbook.NewEngine()
	totalMatched := 0
	totalQty := int64(0)
	engine.RegisterTradeCallback(func(trades []*orderbook.Trade) {
		for _, t := range trades {
			totalMatched++
			totalQty += t.Qty
			if totalMatched <= 5 {
				fmt.Printf("Match: %s <=> %s @ %.2f Qty %d\n",
					t.Buyer, t.Seller, t.Price, t.Qty)
			}
		}
	})

	start := time.Now()
	for i := 0; i < numOrders; i++ {
		if _, err := engine.Submit(randomOrder(i + 1)); err != nil {
			panic(err)
		}
	}

	elapsed := time.Since(start)

	fmt.Println("--------")
	fmt.Printf("Total Orders     : %d\n", numOrders)
	fmt.Printf("Total Matches    : %d\n", totalMatched)
	fmt.Printf("Total Matched Qty: %d\n", totalQty)
	fmt.Printf("Time Taken       : %s\n", elapsed)
}
