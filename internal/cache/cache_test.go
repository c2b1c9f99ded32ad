package cache

import (
	"fmt"
	"testing"
	"time"
)

func TestMemory_SetGet(t *testing.T) {
	mc := NewMemory[string](10)
	defer mc.Close()

	if err := mc.Set("key", "value", time.Minute); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	got, ok := mc.Get("key")
	if !ok {
		t.Fatal("Expected cache hit")
	}
	if got != "value" {
		t.Errorf("Expected 'value', got '%s'", got)
	}
}

func TestMemory_Miss(t *testing.T) {
	mc := NewMemory[int](10)
	defer mc.Close()

	if _, ok := mc.Get("absent"); ok {
		t.Error("Expected cache miss for unknown key")
	}
}

func TestMemory_TTLExpiry(t *testing.T) {
	mc := NewMemory[string](10)
	defer mc.Close()

	mc.Set("key", "value", 20*time.Millisecond)
	if _, ok := mc.Get("key"); !ok {
		t.Fatal("Expected hit before expiry")
	}

	time.Sleep(40 * time.Millisecond)
	if _, ok := mc.Get("key"); ok {
		t.Error("Expected miss after TTL expiry")
	}
}

func TestMemory_LRUEviction(t *testing.T) {
	mc := NewMemory[int](3)
	defer mc.Close()

	for i := 0; i < 3; i++ {
		mc.Set(fmt.Sprintf("key%d", i), i, time.Minute)
	}

	// Touch key0 so key1 becomes least recently used.
	mc.Get("key0")
	mc.Set("key3", 3, time.Minute)

	if _, ok := mc.Get("key1"); ok {
		t.Error("Expected key1 evicted as least recently used")
	}
	if _, ok := mc.Get("key0"); !ok {
		t.Error("Expected recently used key0 to survive eviction")
	}
	if mc.Len() != 3 {
		t.Errorf("Expected 3 entries, got %d", mc.Len())
	}
}

func TestMemory_UpdateInPlace(t *testing.T) {
	mc := NewMemory[string](2)
	defer mc.Close()

	mc.Set("key", "old", time.Minute)
	mc.Set("key", "new", time.Minute)

	got, _ := mc.Get("key")
	if got != "new" {
		t.Errorf("Expected updated value 'new', got '%s'", got)
	}
	if mc.Len() != 1 {
		t.Errorf("Expected single entry after update, got %d", mc.Len())
	}
}

func TestMemory_Invalidate(t *testing.T) {
	mc := NewMemory[string](10)
	defer mc.Close()

	mc.Set("key", "value", time.Minute)
	mc.Invalidate("key")
	if _, ok := mc.Get("key"); ok {
		t.Error("Expected miss after Invalidate")
	}

	// Unknown keys are a no-op.
	mc.Invalidate("absent")
}

func TestMemory_Clear(t *testing.T) {
	mc := NewMemory[int](10)
	defer mc.Close()

	mc.Set("a", 1, time.Minute)
	mc.Set("b", 2, time.Minute)
	mc.Clear()
	if mc.Len() != 0 {
		t.Errorf("Expected empty cache after Clear, got %d entries", mc.Len())
	}
}
