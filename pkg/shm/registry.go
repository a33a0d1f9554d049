package shm

import (
	"context"
	"sync/atomic"

	cmap "github.com/orcaman/concurrent-map/v2"
)

// Registry hands out one Region per segment name and reference counts it, so
// several owners in a process share a single mapping. The region is released
// when the last owner puts it back.
type Registry struct {
	regions cmap.ConcurrentMap[string, *registryEntry]
}

type registryEntry struct {
	region *Region
	// changed under the map's shard lock, read without it by Refs
	refs atomic.Int32
}

// DefaultRegistry is the process-wide registry.
var DefaultRegistry = NewRegistry()

// NewRegistry returns an empty Registry.
func NewRegistry() *Registry {
	return &Registry{regions: cmap.New[*registryEntry]()}
}

// Get returns the Region registered under cfg.Name, creating it from cfg when
// missing. Later callers share the first caller's configuration.
func (r *Registry) Get(cfg Config) (*Region, error) {
	fresh, err := NewRegion(cfg)
	if err != nil {
		return nil, err
	}
	entry := r.regions.Upsert(cfg.Name, nil, func(exist bool, cur *registryEntry, _ *registryEntry) *registryEntry {
		if exist {
			cur.refs.Add(1)
			return cur
		}
		e := &registryEntry{region: fresh}
		e.refs.Store(1)
		return e
	})
	return entry.region, nil
}

// Put drops one reference to region and releases it when none remain.
func (r *Registry) Put(ctx context.Context, region *Region) error {
	if region == nil {
		return nil
	}
	var last *Region
	r.regions.RemoveCb(region.Name(), func(_ string, e *registryEntry, exists bool) bool {
		if !exists || e.region != region {
			return false
		}
		if e.refs.Add(-1) > 0 {
			return false
		}
		last = e.region
		return true
	})
	if last == nil {
		return nil
	}
	return last.Release(ctx)
}

// Refs returns the reference count of the named region.
func (r *Registry) Refs(name string) int {
	e, ok := r.regions.Get(name)
	if !ok {
		return 0
	}
	return int(e.refs.Load())
}
