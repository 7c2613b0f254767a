package room

import (
	"log/slog"

	"github.com/udisondev/roomcull/internal/geom"
	"github.com/udisondev/roomcull/internal/voxel"
)

// Handle is the opaque reference a marker holds to its room.
// The Registry owns the Room itself.
type Handle uint64

// ScanConfig holds the parameters of a room scan.
type ScanConfig struct {
	MaxDistance int
	Epsilon     float64
}

// Room is the occlusion volume detected around one marker.
// Wall distances and bounds change only through a successful Rescan and are
// replaced together.
type Room struct {
	handle Handle
	anchor voxel.Coord

	walls    WallDistances
	bounds   geom.AABB
	scanned  bool
	revision uint64

	removed     bool
	rescanTimer int
}

// Handle returns the room's registry handle.
func (r *Room) Handle() Handle { return r.handle }

// Anchor returns the voxel the room was scanned from.
func (r *Room) Anchor() voxel.Coord { return r.anchor }

// WallDistances returns the last scanned distances; ok is false before the
// first successful scan.
func (r *Room) WallDistances() (walls WallDistances, ok bool) {
	return r.walls, r.scanned
}

// Bounds returns the occlusion volume; ok is false before the first
// successful scan.
func (r *Room) Bounds() (bounds geom.AABB, ok bool) {
	return r.bounds, r.scanned
}

// Scanned reports whether the room has completed at least one scan.
func (r *Room) Scanned() bool { return r.scanned }

// Revision increments on every successful scan.
func (r *Room) Revision() uint64 { return r.revision }

// Removed reports whether the owning marker is gone.
func (r *Room) Removed() bool { return r.removed }

// Contains reports whether p lies inside the scanned bounds.
// Unscanned rooms and inverted bounds contain nothing.
func (r *Room) Contains(p geom.Vec3) bool {
	if !r.scanned || r.bounds.IsEmpty() {
		return false
	}
	return r.bounds.Contains(p)
}

// Rescan scans the walls again and replaces distances and bounds.
// On failure the previous state is kept.
func (r *Room) Rescan(probe Probe, cfg ScanConfig) error {
	walls, err := Scan(r.anchor, probe, cfg.MaxDistance)
	if err != nil {
		scansTotal.WithLabelValues(scanResultAborted).Inc()
		return err
	}

	r.walls = walls
	r.bounds = ComputeBounds(r.anchor, walls, cfg.Epsilon)
	r.scanned = true
	r.revision++
	scansTotal.WithLabelValues(scanResultOK).Inc()

	slog.Debug("room scanned",
		"handle", r.handle,
		"anchor", r.anchor,
		"walls", walls,
		"bounds", r.bounds,
		"inverted", r.bounds.IsEmpty())
	return nil
}
