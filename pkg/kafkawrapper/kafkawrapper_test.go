package kafkawrapper

import (
	"context"
	"errors"
	"testing"
	"time"
)

func fastCfg(maxRetries int) ConsumerConfig {
	return ConsumerConfig{
		MaxRetries: maxRetries,
		BackoffMin: time.Microsecond,
		BackoffMax: time.Microsecond,
	}
}

func TestDeliverCommitsOnSuccess(t *testing.T) {
	var calls, commits, dlq int

	deliverWithRetry(context.Background(), Message{}, fastCfg(3),
		func(ctx context.Context, m Message) error {
			calls++
			return nil
		},
		func() { commits++ },
		func() { dlq++ })

	if calls != 1 {
		t.Errorf("expected 1 handler call, got %d", calls)
	}
	if commits != 1 {
		t.Errorf("expected 1 commit, got %d", commits)
	}
	if dlq != 0 {
		t.Errorf("successful message must not hit the DLQ, got %d", dlq)
	}
}

func TestDeliverRetriesTransientFailure(t *testing.T) {
	var calls, commits, dlq int

	deliverWithRetry(context.Background(), Message{}, fastCfg(3),
		func(ctx context.Context, m Message) error {
			calls++
			if calls < 3 {
				return errors.New("db down")
			}
			return nil
		},
		func() { commits++ },
		func() { dlq++ })

	if calls != 3 {
		t.Errorf("expected 3 handler calls, got %d", calls)
	}
	if commits != 1 {
		t.Errorf("expected 1 commit after recovery, got %d", commits)
	}
	if dlq != 0 {
		t.Errorf("recovered message must not hit the DLQ, got %d", dlq)
	}
}

func TestDeliverExhaustsRetriesThenDLQ(t *testing.T) {
	var calls, commits, dlq int

	deliverWithRetry(context.Background(), Message{}, fastCfg(2),
		func(ctx context.Context, m Message) error {
			calls++
			return errors.New("db down")
		},
		func() { commits++ },
		func() { dlq++ })

	// initial attempt plus MaxRetries retries
	if calls != 3 {
		t.Errorf("expected 3 handler calls, got %d", calls)
	}
	if dlq != 1 {
		t.Errorf("exhausted message must go to the DLQ once, got %d", dlq)
	}
	if commits != 1 {
		t.Errorf("exhausted message must still be committed, got %d", commits)
	}
}

func TestDeliverRejectSkipsRetries(t *testing.T) {
	var calls, commits, dlq int

	deliverWithRetry(context.Background(), Message{}, fastCfg(5),
		func(ctx context.Context, m Message) error {
			calls++
			return ErrReject
		},
		func() { commits++ },
		func() { dlq++ })

	if calls != 1 {
		t.Errorf("rejected message must not be retried, got %d calls", calls)
	}
	if dlq != 1 {
		t.Errorf("rejected message must go to the DLQ once, got %d", dlq)
	}
	if commits != 1 {
		t.Errorf("rejected message must be committed, got %d", commits)
	}
}

func TestDeliverWithoutDLQStillCommits(t *testing.T) {
	var commits int

	deliverWithRetry(context.Background(), Message{}, fastCfg(0),
		func(ctx context.Context, m Message) error {
			return errors.New("db down")
		},
		func() { commits++ },
		nil)

	if commits != 1 {
		t.Errorf("expected 1 commit with no DLQ configured, got %d", commits)
	}
}

func TestDeliverStopsOnContextCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	var calls, commits int
	deliverWithRetry(ctx, Message{}, ConsumerConfig{MaxRetries: 10, BackoffMin: time.Hour, BackoffMax: time.Hour},
		func(ctx context.Context, m Message) error {
			calls++
			cancel()
			return errors.New("db down")
		},
		func() { commits++ },
		nil)

	if calls != 1 {
		t.Errorf("expected delivery to stop after cancel, got %d calls", calls)
	}
	if commits != 0 {
		t.Errorf("cancelled delivery must not commit, got %d", commits)
	}
}
