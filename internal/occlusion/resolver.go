// Package occlusion answers whether renderable things should be skipped
// because the viewer is inside a room and they are outside it.
package occlusion

import (
	"github.com/udisondev/roomcull/internal/geom"
	"github.com/udisondev/roomcull/internal/room"
)

// DefaultCacheThreshold is the viewer movement that forces re-resolution.
const DefaultCacheThreshold = 0.1

// Stats counts resolver cache outcomes.
type Stats struct {
	Hits   uint64
	Misses uint64
}

// Resolver finds the room containing the viewer, caching the answer while
// the viewer moves less than the threshold.
// Not safe for concurrent use.
type Resolver struct {
	registry    *room.Registry
	thresholdSq float64

	cached           *room.Room
	lastViewer       geom.Vec3
	cachedGeneration uint64
	cachedRevision   uint64

	stats Stats
}

// NewResolver creates a resolver over registry. A non-positive threshold
// selects DefaultCacheThreshold.
func NewResolver(registry *room.Registry, threshold float64) *Resolver {
	if threshold <= 0 {
		threshold = DefaultCacheThreshold
	}
	return &Resolver{
		registry:    registry,
		thresholdSq: threshold * threshold,
	}
}

// Resolve returns the first room in registration order whose bounds contain
// viewer, or nil.
func (r *Resolver) Resolve(viewer geom.Vec3) *room.Room {
	if r.registry.ActiveCount() == 0 {
		r.Invalidate()
		return nil
	}

	if r.cacheValid(viewer) {
		r.stats.Hits++
		cacheHits.Inc()
		return r.cached
	}

	r.stats.Misses++
	cacheMisses.Inc()

	r.lastViewer = viewer
	r.cached = nil
	r.registry.Each(func(rm *room.Room) bool {
		if rm.Removed() || !rm.Contains(viewer) {
			return true
		}
		r.cached = rm
		return false
	})
	r.cachedGeneration = r.registry.Generation()
	if r.cached != nil {
		r.cachedRevision = r.cached.Revision()
	}
	return r.cached
}

// cacheValid checks the cached room is still a live registry member with
// unchanged bounds and the viewer has not moved past the threshold.
func (r *Resolver) cacheValid(viewer geom.Vec3) bool {
	c := r.cached
	if c == nil || c.Removed() || !r.registry.Contains(c) {
		return false
	}
	if r.registry.Generation() != r.cachedGeneration || c.Revision() != r.cachedRevision {
		return false
	}
	return viewer.DistanceSq(r.lastViewer) < r.thresholdSq
}

// Cached returns the cached room without resolving.
func (r *Resolver) Cached() *room.Room {
	return r.cached
}

// Invalidate drops the cached room.
func (r *Resolver) Invalidate() {
	r.cached = nil
	r.cachedGeneration = 0
	r.cachedRevision = 0
}

// Stats returns the cache hit and miss counts.
func (r *Resolver) Stats() Stats {
	return r.stats
}
