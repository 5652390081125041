package cachemanager

// Stats counts memo lookups.
type Stats struct {
	Hits   int
	Misses int
}

// Memo wraps a pure function with a Cache. compute must depend only on its
// input and key must identify the input completely; Memo does not verify
// either.
type Memo[I, V any] struct {
	cache   Cache[V]
	key     func(I) string
	compute func(I) V
	stats   Stats
}

// NewMemo creates a Memo. A nil cache disables memoization: every Get calls
// compute and nothing is stored.
func NewMemo[I, V any](cache Cache[V], key func(I) string, compute func(I) V) *Memo[I, V] {
	return &Memo[I, V]{cache: cache, key: key, compute: compute}
}

// Get returns compute(in), from the cache when possible.
func (m *Memo[I, V]) Get(in I) V {
	if m.cache == nil {
		return m.compute(in)
	}

	k := m.key(in)
	if v, ok := m.cache.Get(k); ok {
		m.stats.Hits++
		return v
	}

	m.stats.Misses++
	v := m.compute(in)
	m.cache.Set(k, v)
	return v
}

// Enabled reports whether results are cached.
func (m *Memo[I, V]) Enabled() bool {
	return m.cache != nil
}

func (m *Memo[I, V]) Stats() Stats {
	return m.stats
}
