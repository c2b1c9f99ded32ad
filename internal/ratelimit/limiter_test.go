package ratelimit

import (
	"context"
	"testing"
	"time"
)

func TestIntervalLimiter_EnforcesDelay(t *testing.T) {
	limiter := NewIntervalLimiter(50 * time.Millisecond)
	ctx := context.Background()

	start := time.Now()
	for i := 0; i < 3; i++ {
		if err := limiter.Wait(ctx); err != nil {
			t.Fatalf("Wait failed: %v", err)
		}
	}
	elapsed := time.Since(start)

	// First wait is immediate, the next two are spaced 50ms apart.
	if elapsed < 100*time.Millisecond {
		t.Errorf("Expected at least 100ms for 3 waits, got %v", elapsed)
	}
}

func TestIntervalLimiter_ZeroDelayNeverBlocks(t *testing.T) {
	limiter := NewIntervalLimiter(0)
	ctx := context.Background()

	start := time.Now()
	for i := 0; i < 100; i++ {
		if err := limiter.Wait(ctx); err != nil {
			t.Fatalf("Wait failed: %v", err)
		}
	}
	if elapsed := time.Since(start); elapsed > 100*time.Millisecond {
		t.Errorf("Expected unlimited waits to be instant, took %v", elapsed)
	}
}

func TestIntervalLimiter_CancelledContext(t *testing.T) {
	limiter := NewIntervalLimiter(10 * time.Second)
	ctx, cancel := context.WithCancel(context.Background())

	// Consume the initial token, then cancel during the second wait.
	if err := limiter.Wait(ctx); err != nil {
		t.Fatalf("First wait failed: %v", err)
	}
	cancel()
	if err := limiter.Wait(ctx); err == nil {
		t.Error("Expected error from cancelled context, got nil")
	}
}
