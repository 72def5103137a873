// Package kafkawrapper is a small wrapper over kafka-go: a keyed JSON
// producer and a consumer group running a pool of workers over one topic.
package kafkawrapper

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"math/rand"
	"time"

	kafka "github.com/segmentio/kafka-go"
)

type Message struct {
	Topic     string
	Partition int
	Offset    int64
	Key       []byte
	Value     []byte
	Time      time.Time
	Headers   map[string]string
	Raw       kafka.Message
}

type ProducerConfig struct {
	Brokers      []string
	Balancer     kafka.Balancer
	BatchSize    int
	BatchBytes   int64
	BatchTimeout time.Duration
}

type Producer struct {
	w *kafka.Writer
}

func NewProducer(cfg ProducerConfig) *Producer {
	if cfg.Balancer == nil {
		// hash on key: messages for one symbol land on one partition, so
		// per-symbol ordering survives partitioning
		cfg.Balancer = &kafka.Hash{}
	}
	if cfg.BatchSize == 0 {
		cfg.BatchSize = 100
	}
	if cfg.BatchBytes == 0 {
		cfg.BatchBytes = 1 << 20
	}
	if cfg.BatchTimeout == 0 {
		cfg.BatchTimeout = 50 * time.Millisecond
	}

	wr := &kafka.Writer{
		Addr:                   kafka.TCP(cfg.Brokers...),
		Balancer:               cfg.Balancer,
		BatchSize:              cfg.BatchSize,
		BatchBytes:             cfg.BatchBytes,
		BatchTimeout:           cfg.BatchTimeout,
		AllowAutoTopicCreation: true,
		RequiredAcks:           kafka.RequireNone,
		Async:                  true,
	}
	return &Producer{w: wr}
}

func (p *Producer) Publish(ctx context.Context, topic string, key []byte, value []byte, headers map[string]string) error {
	if p == nil || p.w == nil {
		return errors.New("producer not initialized")
	}
	var kh []kafka.Header
	for k, v := range headers {
		kh = append(kh, kafka.Header{Key: k, Value: []byte(v)})
	}
	return p.w.WriteMessages(ctx, kafka.Message{
		Topic:   topic,
		Key:     key,
		Value:   value,
		Headers: kh,
		Time:    time.Now(),
	})
}

func (p *Producer) PublishJSON(ctx context.Context, topic string, key string, v any, headers map[string]string) error {
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return p.Publish(ctx, topic, []byte(key), b, headers)
}

func (p *Producer) Close() error {
	if p == nil || p.w == nil {
		return nil
	}
	return p.w.Close()
}

type ConsumerConfig struct {
	Brokers     []string
	GroupID     string
	Topic       string
	WorkerCount int
	MaxRetries  int
	BackoffMin  time.Duration
	BackoffMax  time.Duration
	DLQTopic    string
}

type ConsumerGroup struct {
	r          *kafka.Reader
	cfg        ConsumerConfig
	prodForDLQ *Producer
}

// ErrReject tells Run the message is malformed: it is committed (or sent to
// the DLQ) without retrying.
var ErrReject = errors.New("reject message")

func NewConsumerGroup(cfg ConsumerConfig) (*ConsumerGroup, error) {
	if cfg.WorkerCount <= 0 {
		cfg.WorkerCount = 4
	}
	if cfg.MaxRetries < 0 {
		cfg.MaxRetries = 0
	}
	if cfg.BackoffMin == 0 {
		cfg.BackoffMin = 100 * time.Millisecond
	}
	if cfg.BackoffMax == 0 {
		cfg.BackoffMax = 10 * time.Second
	}

	rd := kafka.NewReader(kafka.ReaderConfig{
		Brokers:     cfg.Brokers,
		GroupID:     cfg.GroupID,
		Topic:       cfg.Topic,
		StartOffset: kafka.FirstOffset,
		MaxWait:     500 * time.Millisecond,
		MinBytes:    1,
		MaxBytes:    10 << 20,
	})

	var prod *Producer
	if cfg.DLQTopic != "" {
		prod = NewProducer(ProducerConfig{Brokers: cfg.Brokers})
	}

	return &ConsumerGroup{r: rd, cfg: cfg, prodForDLQ: prod}, nil
}

func (cg *ConsumerGroup) Close() error {
	if cg == nil {
		return nil
	}
	if cg.prodForDLQ != nil {
		_ = cg.prodForDLQ.Close()
	}
	if cg.r != nil {
		return cg.r.Close()
	}
	return nil
}

// Run fetches messages and feeds them to a pool of workers. Handler errors
// are retried with exponential backoff up to MaxRetries, then the message
// goes to the DLQ topic if one is configured. ErrReject skips retries.
func (cg *ConsumerGroup) Run(ctx context.Context, handler func(context.Context, Message) error) error {
	if cg == nil || cg.r == nil {
		return errors.New("consumer not initialized")
	}

	msgs := make(chan kafka.Message, cg.cfg.WorkerCount)
	done := make(chan struct{})

	for i := 0; i < cg.cfg.WorkerCount; i++ {
		go func() {
			defer func() { done <- struct{}{} }()
			for m := range msgs {
				cg.handleOne(ctx, m, handler)
			}
		}()
	}

	var fetchErr error
loop:
	for {
		m, err := cg.r.FetchMessage(ctx)
		if err != nil {
			if !errors.Is(err, context.Canceled) && !errors.Is(err, context.DeadlineExceeded) {
				fetchErr = fmt.Errorf("fetch error: %w", err)
			}
			break
		}
		select {
		case msgs <- m:
		case <-ctx.Done():
			break loop
		}
	}

	close(msgs)
	for i := 0; i < cg.cfg.WorkerCount; i++ {
		<-done
	}
	return fetchErr
}

func (cg *ConsumerGroup) handleOne(ctx context.Context, m kafka.Message, handler func(context.Context, Message) error) {
	var toDLQ func()
	if cg.cfg.DLQTopic != "" && cg.prodForDLQ != nil {
		toDLQ = func() {
			_ = cg.prodForDLQ.Publish(ctx, cg.cfg.DLQTopic, m.Key, m.Value, headersToMap(m.Headers))
		}
	}

	deliverWithRetry(ctx, wrapMessage(m), cg.cfg, handler,
		func() { _ = cg.r.CommitMessages(ctx, m) },
		toDLQ)
}

// deliverWithRetry applies the retry policy to one message: handler errors
// are retried with exponential backoff up to MaxRetries, then the message
// goes to the DLQ and is committed. ErrReject skips the retries entirely.
// commit is always called when the message is done; toDLQ may be nil.
func deliverWithRetry(ctx context.Context, msg Message, cfg ConsumerConfig, handler func(context.Context, Message) error, commit func(), toDLQ func()) {
	var attempt int
	for {
		err := handler(ctx, msg)
		if err == nil {
			commit()
			return
		}

		if errors.Is(err, ErrReject) {
			attempt = cfg.MaxRetries // straight to DLQ
		}
		attempt++
		if attempt > cfg.MaxRetries {
			if toDLQ != nil {
				toDLQ()
			}
			commit()
			return
		}

		backoff := backoffDuration(cfg.BackoffMin, cfg.BackoffMax, attempt)
		select {
		case <-time.After(backoff):
		case <-ctx.Done():
			return
		}
	}
}

func wrapMessage(m kafka.Message) Message {
	headers := map[string]string{}
	for _, h := range m.Headers {
		headers[h.Key] = string(h.Value)
	}
	return Message{
		Topic:     m.Topic,
		Partition: m.Partition,
		Offset:    m.Offset,
		Key:       m.Key,
		Value:     m.Value,
		Time:      m.Time,
		Headers:   headers,
		Raw:       m,
	}
}

func headersToMap(hs []kafka.Header) map[string]string {
	out := map[string]string{}
	for _, h := range hs {
		out[h.Key] = string(h.Value)
	}
	return out
}

func backoffDuration(min, max time.Duration, attempt int) time.Duration {
	if attempt < 1 {
		attempt = 1
	}
	pow := math.Pow(2, float64(attempt-1))
	d := time.Duration(float64(min) * pow)
	if d > max {
		d = max
	}
	if d > 0 {
		d = time.Duration(rand.Int63n(int64(d)))
	}
	return d
}
