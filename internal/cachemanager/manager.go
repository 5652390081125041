// Package cachemanager memoizes pure per-line computations, such as syntax
// classification, behind an expiring in-memory store.
package cachemanager

// Cache is a string-keyed store. Implementations decide expiration.
type Cache[V any] interface {
	Get(key string) (V, bool)
	Set(key string, value V)
	Len() int
}
