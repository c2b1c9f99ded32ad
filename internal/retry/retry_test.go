package retry

import (
	"context"
	"errors"
	"testing"
	"time"
)

type statusErr struct{ code int }

func (e *statusErr) Error() string      { return "status error" }
func (e *statusErr) GetStatusCode() int { return e.code }

func fastConfig() Config {
	cfg := DefaultConfig()
	cfg.InitialBackoff = time.Millisecond
	cfg.MaxBackoff = 5 * time.Millisecond
	return cfg
}

func TestWithRetry_SucceedsAfterTransientFailure(t *testing.T) {
	attempts := 0
	err := WithRetry(context.Background(), fastConfig(), func() error {
		attempts++
		if attempts < 3 {
			return &statusErr{code: 503}
		}
		return nil
	})
	if err != nil {
		t.Fatalf("Expected success after retries, got %v", err)
	}
	if attempts != 3 {
		t.Errorf("Expected 3 attempts, got %d", attempts)
	}
}

func TestWithRetry_PermanentStatusNotRetried(t *testing.T) {
	attempts := 0
	err := WithRetry(context.Background(), fastConfig(), func() error {
		attempts++
		return &statusErr{code: 404}
	})
	if err == nil {
		t.Fatal("Expected error, got nil")
	}
	if attempts != 1 {
		t.Errorf("Expected a single attempt for 404, got %d", attempts)
	}
}

func TestWithRetry_BudgetExhausted(t *testing.T) {
	attempts := 0
	underlying := &statusErr{code: 503}
	err := WithRetry(context.Background(), fastConfig(), func() error {
		attempts++
		return underlying
	})
	if err == nil {
		t.Fatal("Expected error after exhausting attempts, got nil")
	}
	if attempts != 3 {
		t.Errorf("Expected 3 attempts, got %d", attempts)
	}
	if !errors.Is(err, underlying) {
		t.Error("Expected final error to wrap the last failure")
	}
}

func TestWithRetry_ContextCancelStopsBackoff(t *testing.T) {
	cfg := fastConfig()
	cfg.InitialBackoff = 10 * time.Second

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(20 * time.Millisecond)
		cancel()
	}()

	start := time.Now()
	err := WithRetry(ctx, cfg, func() error {
		return &statusErr{code: 503}
	})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Expected context.Canceled, got %v", err)
	}
	if time.Since(start) > time.Second {
		t.Error("Expected cancellation to interrupt backoff promptly")
	}
}

func TestWithRetry_TimeoutErrorsAreRetried(t *testing.T) {
	attempts := 0
	err := WithRetry(context.Background(), fastConfig(), func() error {
		attempts++
		if attempts == 1 {
			return context.DeadlineExceeded
		}
		return nil
	})
	if err != nil {
		t.Fatalf("Expected success after timeout retry, got %v", err)
	}
	if attempts != 2 {
		t.Errorf("Expected 2 attempts, got %d", attempts)
	}
}
