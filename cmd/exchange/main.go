package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	_ "net/http/pprof"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/joripage/matching-engine/config"
	"github.com/joripage/matching-engine/pkg/exchange"
	"github.com/joripage/matching-engine/pkg/exchange/marketdata"
	redis_wrapper "github.com/joripage/matching-engine/pkg/infra/redis"
	"github.com/joripage/matching-engine/pkg/kafkawrapper"
	"github.com/joripage/matching-engine/pkg/logging"
)

func main() {
	go func() {
		http.ListenAndServe("localhost:6060", nil)
	}()

	var configFile string
	flag.StringVar(&configFile, "config-file", "", "Specify config file path")
	flag.Parse()

	cfg, err := config.Load(configFile)
	if err != nil {
		panic(err)
	}

	logger := logging.NewLogger(logging.INFO)
	defer logger.Sync()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)

	producer := kafkawrapper.NewProducer(kafkawrapper.ProducerConfig{
		Brokers: cfg.Kafka.Brokers,
	})
	defer producer.Close()

	publisher := exchange.NewKafkaTradePublisher(producer, cfg.Kafka.TradesTopic)

	var opts []exchange.Option
	if cfg.Redis != nil {
		rdb, err := redis_wrapper.InitRedis(cfg.Redis)
		if err != nil {
			zap.S().Errorf("init redis fail with err: %v", err)
			panic(err)
		}
		opts = append(opts, exchange.WithMarketData(marketdata.NewPublisher(rdb)))
	}

	ex := exchange.New(publisher, opts...)

	consumer, err := kafkawrapper.NewConsumerGroup(kafkawrapper.ConsumerConfig{
		Brokers:     cfg.Kafka.Brokers,
		GroupID:     cfg.Kafka.GroupID,
		Topic:       cfg.Kafka.OrdersTopic,
		WorkerCount: cfg.Kafka.WorkerCount,
		DLQTopic:    cfg.Kafka.DLQTopic,
	})
	if err != nil {
		panic(err)
	}
	defer consumer.Close()

	go func() {
		if err := consumer.Run(ctx, ex.HandleOrderMessage); err != nil {
			zap.S().Errorf("consumer stopped with err: %v", err)
		}
	}()

	logger.Info(ctx, "matching engine started",
		zap.String("service", cfg.ServiceName),
		zap.String("orders_topic", cfg.Kafka.OrdersTopic),
		zap.String("trades_topic", cfg.Kafka.TradesTopic))
	fmt.Println("Matching engine started. Press Ctrl+C to exit.")

	<-sigs
	logger.Info(ctx, "shutting down")

	cancel()

	fmt.Println("Exited cleanly.")
}
