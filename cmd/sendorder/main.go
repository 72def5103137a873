// sendorder publishes random order requests to the orders topic, for
// exercising a running exchange.
package main

import (
	"context"
	"flag"
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/joripage/matching-engine/pkg/exchange/model"
	"github.com/joripage/matching-engine/pkg/kafkawrapper"
)

func main() {
	var (
		brokers string
		topic   string
		symbol  string
		count   int
	)
	flag.StringVar(&brokers, "brokers", "localhost:9092", "Kafka brokers, comma separated")
	flag.StringVar(&topic, "topic", "orders", "Orders topic")
	flag.StringVar(&symbol, "symbol", "ABC", "Symbol to trade")
	flag.IntVar(&count, "count", 100, "Number of orders to send")
	flag.Parse()

	rand.Seed(time.Now().UnixNano())

	producer := kafkawrapper.NewProducer(kafkawrapper.ProducerConfig{
		Brokers: strings.Split(brokers, ","),
	})
	defer producer.Close()

	ctx := context.Background()
	for i := 0; i < count; i++ {
		side := "BUY"
		if rand.Intn(2) == 0 {
			side = "SELL"
		}

		req := &model.OrderRequest{
			Trader:   fmt.Sprintf("trader-%d", i%10),
			Side:     side,
			Symbol:   symbol,
			Price:    decimal.NewFromInt(int64(95 + rand.Intn(10))),
			Quantity: decimal.NewFromInt(int64(1 + rand.Intn(100))),
		}

		if err := producer.PublishJSON(ctx, topic, symbol, req, nil); err != nil {
			panic(err)
		}
	}

	fmt.Printf("Sent %d orders to %s\n", count, topic)
}
