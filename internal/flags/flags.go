// Package flags holds the editor's feature flags. A registry is read-only
// once built; unknown names are always disabled.
package flags

import (
	"maps"
	"slices"

	"github.com/zjrosen/tide/internal/log"
)

const (
	// FlagSyntaxCache memoizes line classification between frames. When off,
	// every frame re-scans the document from the first line.
	FlagSyntaxCache = "syntax-cache"
)

// Defaults returns the built-in flag values that configuration overrides.
func Defaults() map[string]bool {
	return map[string]bool{
		FlagSyntaxCache: true,
	}
}

// Registry is a snapshot of flag values.
type Registry struct {
	flags map[string]bool
}

// New builds a registry from Defaults overlaid with overrides.
// A nil map keeps the defaults.
func New(overrides map[string]bool) *Registry {
	flags := Defaults()
	maps.Copy(flags, overrides)
	r := &Registry{flags: flags}
	log.Debug(log.CatConfig, "feature flags", "count", len(flags), "enabled", r.EnabledNames())
	return r
}

// Enabled reports whether name is on. Unknown names and a nil registry
// report false.
func (r *Registry) Enabled(name string) bool {
	if r == nil {
		return false
	}
	value, ok := r.flags[name]
	if !ok {
		log.Debug(log.CatConfig, "unknown flag", "flag", name)
	}
	return value
}

// EnabledNames returns the names of the enabled flags, sorted.
func (r *Registry) EnabledNames() []string {
	if r == nil {
		return nil
	}
	var names []string
	for name, on := range r.flags {
		if on {
			names = append(names, name)
		}
	}
	slices.Sort(names)
	return names
}

// All returns a copy of every flag value.
func (r *Registry) All() map[string]bool {
	if r == nil {
		return map[string]bool{}
	}
	return maps.Clone(r.flags)
}
