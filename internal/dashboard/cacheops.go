package dashboard

import (
	"github.com/alexonufrak/dashboard-api/internal/cache"
	"github.com/alexonufrak/dashboard-api/internal/metrics"
)

// InvalidateCacheType clears cached lookups for a semantic cache type,
// optionally narrowed to specific record IDs. Unknown types are a no-op,
// mirroring the best-effort contract of the cache itself.
func (m *Manager) InvalidateCacheType(name string, ids ...string) int {
	return m.Cache.InvalidateType(cache.Type(name), ids...)
}

// cached runs fetch on a cache miss and stores the result under key.
func cached[T any](m *Manager, key string, fetch func() (T, error)) (T, error) {
	if v, ok := m.Cache.Get(key); ok {
		if typed, ok := v.(T); ok {
			metrics.RecordCacheLookup(true)
			return typed, nil
		}
	}
	metrics.RecordCacheLookup(false)

	value, err := fetch()
	if err != nil {
		var zero T
		return zero, err
	}
	m.Cache.Set(key, value)
	return value, nil
}
