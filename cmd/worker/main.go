package main

import (
	"context"
	"encoding/json"
	"flag"
	"os"
	"os/signal"
	"syscall"

	_ "github.com/lib/pq"
	"go.uber.org/zap"

	"github.com/joripage/matching-engine/config"
	"github.com/joripage/matching-engine/pkg/exchange/repo"
	"github.com/joripage/matching-engine/pkg/exchange/worker"
	postgres_wrapper "github.com/joripage/matching-engine/pkg/infra/postgres"
	"github.com/joripage/matching-engine/pkg/kafkawrapper"
)

func main() {
	var configFile string
	flag.StringVar(&configFile, "config-file", "", "Specify config file path")
	flag.Parse()

	cfg, err := config.Load(configFile)
	if err != nil {
		panic(err)
	}

	configBytes, err := json.MarshalIndent(cfg, "", "   ")
	if err != nil {
		zap.S().Warnf("could not convert config to JSON: %v", err)
	} else {
		zap.S().Debugf("load config %s", string(configBytes))
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// init db
	db := postgres_wrapper.InitPostgresWithBackoff(cfg.TradeDB)

	// init repo
	sqlRepo := repo.NewRepo(db)

	w := worker.NewWorker(sqlRepo)

	consumer, err := kafkawrapper.NewConsumerGroup(kafkawrapper.ConsumerConfig{
		Brokers:     cfg.Kafka.Brokers,
		GroupID:     cfg.Kafka.GroupID,
		Topic:       cfg.Kafka.TradesTopic,
		WorkerCount: cfg.Kafka.WorkerCount,
		MaxRetries:  5,
		DLQTopic:    cfg.Kafka.DLQTopic,
	})
	if err != nil {
		panic(err)
	}
	defer consumer.Close()

	go func() {
		if err := consumer.Run(ctx, w.HandleTradeMessage); err != nil {
			zap.S().Errorf("consumer stopped with err: %v", err)
		}
	}()

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	<-sigs
	cancel()
}
