// Package cache provides an in-memory LRU cache with per-entry TTL. It backs
// the style analyzer's one-off design analyses; the cache is always injected
// explicitly and its lifecycle is owned by the caller, never held in package
// globals.
package cache

import (
	"container/list"
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
)

type entry[T any] struct {
	key       string
	value     T
	expiresAt time.Time
}

// Memory is an in-memory cache with LRU eviction and TTL expiry.
type Memory[T any] struct {
	mu         sync.Mutex
	store      map[string]*list.Element
	lruList    *list.List
	maxEntries int
	ctx        context.Context
	cancel     context.CancelFunc
	hits       uint64
	misses     uint64
}

// NewMemory creates a cache bounded to maxEntries, evicting least recently
// used entries when full. A background routine drops expired entries until
// Close is called.
func NewMemory[T any](maxEntries int) *Memory[T] {
	if maxEntries <= 0 {
		maxEntries = 256
	}

	ctx, cancel := context.WithCancel(context.Background())
	mc := &Memory[T]{
		store:      make(map[string]*list.Element),
		lruList:    list.New(),
		maxEntries: maxEntries,
		ctx:        ctx,
		cancel:     cancel,
	}

	go mc.cleanupExpired()

	return mc
}

// Get retrieves a cached value and marks it most recently used.
func (mc *Memory[T]) Get(key string) (T, bool) {
	var zero T

	mc.mu.Lock()
	defer mc.mu.Unlock()

	element, ok := mc.store[key]
	if !ok {
		mc.misses++
		return zero, false
	}

	ent := element.Value.(*entry[T])
	if time.Now().After(ent.expiresAt) {
		mc.misses++
		mc.lruList.Remove(element)
		delete(mc.store, key)
		return zero, false
	}

	mc.lruList.MoveToFront(element)
	mc.hits++
	return ent.value, true
}

// Set stores a value with the given TTL, updating an existing entry in place.
func (mc *Memory[T]) Set(key string, value T, ttl time.Duration) error {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}

	mc.mu.Lock()
	defer mc.mu.Unlock()

	if element, ok := mc.store[key]; ok {
		element.Value = &entry[T]{key: key, value: value, expiresAt: time.Now().Add(ttl)}
		mc.lruList.MoveToFront(element)
		return nil
	}

	for mc.lruList.Len() >= mc.maxEntries {
		mc.evictLRU()
	}

	element := mc.lruList.PushFront(&entry[T]{key: key, value: value, expiresAt: time.Now().Add(ttl)})
	mc.store[key] = element
	return nil
}

// Invalidate removes a cached value. Unknown keys are a no-op.
func (mc *Memory[T]) Invalidate(key string) {
	mc.mu.Lock()
	defer mc.mu.Unlock()

	if element, ok := mc.store[key]; ok {
		mc.lruList.Remove(element)
		delete(mc.store, key)
	}
}

// Clear removes all cached values.
func (mc *Memory[T]) Clear() {
	mc.mu.Lock()
	defer mc.mu.Unlock()

	mc.store = make(map[string]*list.Element)
	mc.lruList = list.New()
	mc.hits = 0
	mc.misses = 0
}

// Close stops the background cleanup routine.
func (mc *Memory[T]) Close() {
	mc.cancel()
}

// Len returns the number of live entries.
func (mc *Memory[T]) Len() int {
	mc.mu.Lock()
	defer mc.mu.Unlock()
	return mc.lruList.Len()
}

// evictLRU removes the least recently used entry. Caller must hold the lock.
func (mc *Memory[T]) evictLRU() {
	element := mc.lruList.Back()
	if element == nil {
		return
	}
	ent := element.Value.(*entry[T])
	mc.lruList.Remove(element)
	delete(mc.store, ent.key)
	log.Debug().Str("key", ent.key).Msg("Evicted from cache (LRU)")
}

func (mc *Memory[T]) cleanupExpired() {
	ticker := time.NewTicker(1 * time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			now := time.Now()
			mc.mu.Lock()
			var next *list.Element
			for element := mc.lruList.Front(); element != nil; element = next {
				next = element.Next()
				ent := element.Value.(*entry[T])
				if now.After(ent.expiresAt) {
					mc.lruList.Remove(element)
					delete(mc.store, ent.key)
				}
			}
			mc.mu.Unlock()
		case <-mc.ctx.Done():
			return
		}
	}
}
