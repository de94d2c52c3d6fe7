// Package cache provides the locality vocabulary cache.
package cache

import (
	"context"
	"errors"
	"sync"
	"time"
)

// ErrCacheMiss indicates a cache miss.
var ErrCacheMiss = errors.New("cache miss")

// Client defines the cache interface.
type Client interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}

type memoryEntry struct {
	value     []byte
	expiresAt time.Time
}

// MemoryClient is an in-process Client used when Redis is not configured.
type MemoryClient struct {
	mu      sync.RWMutex
	entries map[string]memoryEntry
	now     func() time.Time
}

// NewMemoryClient creates an empty in-process cache.
func NewMemoryClient() *MemoryClient {
	return &MemoryClient{
		entries: make(map[string]memoryEntry),
		now:     time.Now,
	}
}

// Get retrieves a value; expired entries are misses.
func (c *MemoryClient) Get(_ context.Context, key string) ([]byte, error) {
	c.mu.RLock()
	entry, ok := c.entries[key]
	c.mu.RUnlock()

	if !ok {
		return nil, ErrCacheMiss
	}
	if !entry.expiresAt.IsZero() && c.now().After(entry.expiresAt) {
		c.mu.Lock()
		delete(c.entries, key)
		c.mu.Unlock()
		return nil, ErrCacheMiss
	}
	return append([]byte(nil), entry.value...), nil
}

// Set stores a value; a zero ttl never expires.
func (c *MemoryClient) Set(_ context.Context, key string, value []byte, ttl time.Duration) error {
	entry := memoryEntry{value: append([]byte(nil), value...)}
	if ttl > 0 {
		entry.expiresAt = c.now().Add(ttl)
	}

	c.mu.Lock()
	c.entries[key] = entry
	c.mu.Unlock()
	return nil
}

// Delete removes a value.
func (c *MemoryClient) Delete(_ context.Context, key string) error {
	c.mu.Lock()
	delete(c.entries, key)
	c.mu.Unlock()
	return nil
}

// Close is a no-op.
func (c *MemoryClient) Close() error {
	return nil
}

var (
	_ Client = (*MemoryClient)(nil)
	_ Client = (*RedisClient)(nil)
)
