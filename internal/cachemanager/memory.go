package cachemanager

import (
	"time"

	gocache "github.com/patrickmn/go-cache"

	"github.com/zjrosen/tide/internal/log"
)

const (
	DefaultTTL             = 5 * time.Minute
	DefaultCleanupInterval = 10 * time.Minute
)

// Memory is a go-cache backed Cache. A hit pushes the entry's expiry back
// by ttl, so lines that are still being rendered never age out while lines
// that scrolled away or were edited eventually do.
type Memory[V any] struct {
	name  string
	ttl   time.Duration
	items *gocache.Cache
}

// NewMemory creates a Memory cache. name only labels log lines.
func NewMemory[V any](name string, ttl, cleanupInterval time.Duration) *Memory[V] {
	return &Memory[V]{
		name:  name,
		ttl:   ttl,
		items: gocache.New(ttl, cleanupInterval),
	}
}

func (m *Memory[V]) Get(key string) (V, bool) {
	var zero V

	raw, found := m.items.Get(key)
	if !found {
		return zero, false
	}

	v, ok := raw.(V)
	if !ok {
		log.Error(log.CatCache, "cached value has wrong type", "cache", m.name)
		m.items.Delete(key)
		return zero, false
	}

	m.items.Set(key, v, m.ttl)
	return v, true
}

func (m *Memory[V]) Set(key string, value V) {
	m.items.Set(key, value, m.ttl)
}

// Len counts stored entries, including expired ones not yet swept.
func (m *Memory[V]) Len() int {
	return m.items.ItemCount()
}
