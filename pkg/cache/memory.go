package cache

import (
	"context"
	"sync"
	"time"
)

// memoryEntry - запись кэша со сроком жизни
type memoryEntry struct {
	value     []byte
	expiresAt time.Time
}

func (e *memoryEntry) expired(now time.Time) bool {
	return !e.expiresAt.IsZero() && now.After(e.expiresAt)
}

// MemoryCache - потокобезопасный кэш в памяти с TTL и фоновой очисткой
type MemoryCache struct {
	mu      sync.RWMutex
	entries map[string]*memoryEntry

	defaultTTL time.Duration
	maxEntries int

	hits   int64
	misses int64

	stopCleanup chan struct{}
	closeOnce   sync.Once
	closed      bool
}

// NewMemoryCache создаёт кэш в памяти
func NewMemoryCache(opts *Options) *MemoryCache {
	if opts == nil {
		opts = DefaultOptions()
	}

	c := &MemoryCache{
		entries:     make(map[string]*memoryEntry),
		defaultTTL:  opts.DefaultTTL,
		maxEntries:  opts.MaxEntries,
		stopCleanup: make(chan struct{}),
	}

	interval := opts.CleanupInterval
	if interval <= 0 {
		interval = time.Minute
	}
	go c.cleanupLoop(interval)

	return c
}

// cleanupLoop периодически удаляет просроченные записи
func (c *MemoryCache) cleanupLoop(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			c.removeExpired()
		case <-c.stopCleanup:
			return
		}
	}
}

func (c *MemoryCache) removeExpired() {
	now := time.Now()
	c.mu.Lock()
	defer c.mu.Unlock()
	for k, e := range c.entries {
		if e.expired(now) {
			delete(c.entries, k)
		}
	}
}

// Get возвращает значение по ключу
func (c *MemoryCache) Get(_ context.Context, key string) ([]byte, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return nil, ErrCacheClosed
	}

	e, ok := c.entries[key]
	if !ok || e.expired(time.Now()) {
		if ok {
			delete(c.entries, key)
		}
		c.misses++
		return nil, ErrKeyNotFound
	}

	c.hits++
	value := make([]byte, len(e.value))
	copy(value, e.value)
	return value, nil
}

// Set сохраняет значение с TTL (ttl <= 0 использует значение по умолчанию)
func (c *MemoryCache) Set(_ context.Context, key string, value []byte, ttl time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return ErrCacheClosed
	}

	if ttl <= 0 {
		ttl = c.defaultTTL
	}

	// Простое вытеснение: сначала просроченные, затем произвольная запись
	if c.maxEntries > 0 && len(c.entries) >= c.maxEntries {
		if _, exists := c.entries[key]; !exists {
			now := time.Now()
			evicted := false
			for k, e := range c.entries {
				if e.expired(now) {
					delete(c.entries, k)
					evicted = true
					break
				}
			}
			if !evicted {
				for k := range c.entries {
					delete(c.entries, k)
					break
				}
			}
		}
	}

	stored := make([]byte, len(value))
	copy(stored, value)

	var expiresAt time.Time
	if ttl > 0 {
		expiresAt = time.Now().Add(ttl)
	}

	c.entries[key] = &memoryEntry{value: stored, expiresAt: expiresAt}
	return nil
}

// Delete удаляет запись
func (c *MemoryCache) Delete(_ context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return ErrCacheClosed
	}
	delete(c.entries, key)
	return nil
}

// Exists проверяет наличие ключа
func (c *MemoryCache) Exists(_ context.Context, key string) (bool, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if c.closed {
		return false, ErrCacheClosed
	}
	e, ok := c.entries[key]
	return ok && !e.expired(time.Now()), nil
}

// Stats возвращает статистику кэша
func (c *MemoryCache) Stats(_ context.Context) (*Stats, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if c.closed {
		return nil, ErrCacheClosed
	}

	total := c.hits + c.misses
	hitRate := 0.0
	if total > 0 {
		hitRate = float64(c.hits) / float64(total)
	}

	return &Stats{
		TotalKeys: int64(len(c.entries)),
		Hits:      c.hits,
		Misses:    c.misses,
		HitRate:   hitRate,
		Backend:   BackendMemory,
	}, nil
}

// Clear удаляет все записи
func (c *MemoryCache) Clear(_ context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return ErrCacheClosed
	}
	c.entries = make(map[string]*memoryEntry)
	return nil
}

// Close останавливает фоновую очистку
func (c *MemoryCache) Close() error {
	c.closeOnce.Do(func() {
		c.mu.Lock()
		c.closed = true
		c.mu.Unlock()
		close(c.stopCleanup)
	})
	return nil
}
