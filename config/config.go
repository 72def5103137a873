package config

import (
	"os"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	postgres_wrapper "github.com/joripage/matching-engine/pkg/infra/postgres"
	redis_wrapper "github.com/joripage/matching-engine/pkg/infra/redis"
)

type KafkaConfig struct {
	Brokers     []string `yaml:"brokers"`
	OrdersTopic string   `yaml:"orders_topic"`
	TradesTopic string   `yaml:"trades_topic"`
	GroupID     string   `yaml:"group_id"`
	DLQTopic    string   `yaml:"dlq_topic"`
	WorkerCount int      `yaml:"worker_count"`
}

type AppConfig struct {
	ServiceName string                           `yaml:"service_name"`
	Kafka       *KafkaConfig                     `yaml:"kafka"`
	Redis       *redis_wrapper.RedisConfig       `yaml:"redis"`
	TradeDB     *postgres_wrapper.PostgresConfig `yaml:"trade_db"`
}

// Load load config from file and environment variables.
func Load(filePath string) (*AppConfig, error) {
	if len(filePath) == 0 {
		filePath = os.Getenv("CONFIG_FILE")
	}

	fields := []interface{}{
		"func",
		"config.readFromFile",
		"filePath",
		filePath,
	}

	sugar := zap.S().With(fields...)

	sugar.Debug("Load config...")
	zap.S().Debugf("CONFIG_FILE=%v", filePath)

	configBytes, err := os.ReadFile(filePath)
	if err != nil {
		sugar.Error("Failed to load config file")
		return nil, err
	}
	configBytes = []byte(os.ExpandEnv(string(configBytes)))

	cfg := &AppConfig{}

	err = yaml.Unmarshal(configBytes, cfg)
	if err != nil {
		sugar.Error("Failed to parse config file")
		return nil, err
	}

	zap.S().Debugf("config: %+v", cfg)

	return cfg, nil
}
