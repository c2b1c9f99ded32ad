package proxy

import (
	"testing"
)

func TestNewPool_EmptyIsNil(t *testing.T) {
	pool, err := NewPool(nil)
	if err != nil {
		t.Fatalf("NewPool failed: %v", err)
	}
	if pool != nil {
		t.Error("Expected nil pool for empty address list")
	}
	if pool.Len() != 0 {
		t.Errorf("Expected Len 0 on nil pool, got %d", pool.Len())
	}
	if pool.ProxyFunc() != nil {
		t.Error("Expected nil proxy func for nil pool")
	}
}

func TestNewPool_RejectsInvalidAddress(t *testing.T) {
	if _, err := NewPool([]string{"not a proxy"}); err == nil {
		t.Error("Expected error for invalid proxy address, got nil")
	}
}

func TestPool_RoundRobin(t *testing.T) {
	pool, err := NewPool([]string{"http://proxy1:8080", "http://proxy2:8080"})
	if err != nil {
		t.Fatalf("NewPool failed: %v", err)
	}

	first := pool.Next().Host
	second := pool.Next().Host
	third := pool.Next().Host

	if first == second {
		t.Error("Expected rotation between proxies")
	}
	if first != third {
		t.Errorf("Expected rotation to wrap around, got %s then %s", first, third)
	}
}

func TestPool_SkipsFailedProxy(t *testing.T) {
	pool, err := NewPool([]string{"http://proxy1:8080", "http://proxy2:8080"})
	if err != nil {
		t.Fatalf("NewPool failed: %v", err)
	}

	pool.MarkFailed("http://proxy1:8080")
	for i := 0; i < 4; i++ {
		if got := pool.Next().String(); got != "http://proxy2:8080" {
			t.Errorf("Expected failed proxy skipped, got %s", got)
		}
	}

	pool.MarkHealthy("http://proxy1:8080")
	seen := map[string]bool{}
	for i := 0; i < 4; i++ {
		seen[pool.Next().String()] = true
	}
	if len(seen) != 2 {
		t.Errorf("Expected both proxies back in rotation, saw %d", len(seen))
	}
}

func TestPool_AllFailedStillReturns(t *testing.T) {
	pool, err := NewPool([]string{"http://proxy1:8080"})
	if err != nil {
		t.Fatalf("NewPool failed: %v", err)
	}
	pool.MarkFailed("http://proxy1:8080")
	if pool.Next() == nil {
		t.Error("Expected a proxy even when all are in cooldown")
	}
}
