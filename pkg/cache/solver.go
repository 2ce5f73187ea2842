package cache

import (
	"context"
	"encoding/json"
	"time"
)

// SolverCache специализированный кэш для результатов решателей
type SolverCache struct {
	cache      Cache
	defaultTTL time.Duration
}

// CachedSolveResult кэшированный результат
type CachedSolveResult struct {
	Flow       int64     `json:"flow"`
	Cost       int64     `json:"cost"`
	Algorithm  string    `json:"algorithm"`
	DurationMs float64   `json:"duration_ms"`
	ComputedAt time.Time `json:"computed_at"`
}

// NewSolverCache создаёт кэш для результатов решателей
func NewSolverCache(cache Cache, defaultTTL time.Duration) *SolverCache {
	if defaultTTL <= 0 {
		defaultTTL = 10 * time.Minute
	}
	return &SolverCache{
		cache:      cache,
		defaultTTL: defaultTTL,
	}
}

// Get получает кэшированный результат по хешу задачи и алгоритму
func (sc *SolverCache) Get(ctx context.Context, instanceHash, algorithm string) (*CachedSolveResult, bool, error) {
	key := BuildSolveKey(instanceHash, algorithm)

	data, err := sc.cache.Get(ctx, key)
	if err != nil {
		if err == ErrKeyNotFound {
			return nil, false, nil
		}
		return nil, false, err
	}

	var result CachedSolveResult
	if err := json.Unmarshal(data, &result); err != nil {
		// Повреждённый кэш — удаляем, ошибку удаления игнорируем намеренно
		_ = sc.cache.Delete(ctx, key) //nolint:errcheck // best effort cleanup
		return nil, false, nil
	}

	return &result, true, nil
}

// Set сохраняет результат в кэш
func (sc *SolverCache) Set(ctx context.Context, instanceHash, algorithm string, result *CachedSolveResult, ttl time.Duration) error {
	if ttl <= 0 {
		ttl = sc.defaultTTL
	}

	key := BuildSolveKey(instanceHash, algorithm)
	result.ComputedAt = time.Now()

	data, err := json.Marshal(result)
	if err != nil {
		return err
	}

	return sc.cache.Set(ctx, key, data, ttl)
}
