// Package room detects the walls around room markers and keeps the registry
// of live rooms and their occlusion volumes.
package room

import (
	"errors"
	"fmt"

	"github.com/udisondev/roomcull/internal/voxel"
)

var (
	ErrProbeUnavailable    = errors.New("voxel probe unavailable")
	ErrInvalidScanDistance = errors.New("scan distance must be positive")
)

// Probe answers wall-candidate queries against the current world state.
type Probe interface {
	// Ready reports whether the probe has a world to query.
	Ready() bool
	// IsWallCandidate reports whether voxel c is a valid wall, floor or ceiling.
	// Must be deterministic for a given world state.
	IsWallCandidate(c voxel.Coord) bool
}

// WallDistances holds the distance to the nearest wall per direction,
// indexed by voxel.Direction (north, south, east, west, up, down).
type WallDistances [6]int

func (w WallDistances) String() string {
	return fmt.Sprintf("N=%d S=%d E=%d W=%d U=%d D=%d",
		w[voxel.North], w[voxel.South], w[voxel.East], w[voxel.West], w[voxel.Up], w[voxel.Down])
}

// Scan searches outward from anchor in all six directions. Each direction
// reports the step index of the first wall voxel, or maxDistance when no wall
// is found within range.
func Scan(anchor voxel.Coord, probe Probe, maxDistance int) (WallDistances, error) {
	var walls WallDistances
	if maxDistance < 1 {
		return walls, fmt.Errorf("scan from %v: %w (got %d)", anchor, ErrInvalidScanDistance, maxDistance)
	}
	if probe == nil || !probe.Ready() {
		return walls, fmt.Errorf("scan from %v: %w", anchor, ErrProbeUnavailable)
	}

	for _, d := range voxel.Directions {
		walls[d] = scanDirection(anchor, d, probe, maxDistance)
	}
	return walls, nil
}

func scanDirection(anchor voxel.Coord, d voxel.Direction, probe Probe, maxDistance int) int {
	pos := anchor
	step := d.Unit()
	for i := 1; i <= maxDistance; i++ {
		pos = pos.Add(step)
		if probe.IsWallCandidate(pos) {
			return i
		}
	}
	return maxDistance
}
