package model

import (
	"time"

	"github.com/google/uuid"

	"github.com/udisondev/roomcull/internal/voxel"
)

// Marker is a persisted room marker placed at an anchor voxel.
type Marker struct {
	id        uuid.UUID
	anchor    voxel.Coord
	createdAt time.Time
}

// NewMarker creates a marker with a fresh ID.
func NewMarker(anchor voxel.Coord) *Marker {
	return &Marker{
		id:        uuid.New(),
		anchor:    anchor,
		createdAt: time.Now().UTC(),
	}
}

// RestoreMarker rebuilds a marker loaded from storage.
func RestoreMarker(id uuid.UUID, anchor voxel.Coord, createdAt time.Time) *Marker {
	return &Marker{id: id, anchor: anchor, createdAt: createdAt}
}

// ID returns the marker ID.
func (m *Marker) ID() uuid.UUID { return m.id }

// Anchor returns the voxel the marker occupies.
func (m *Marker) Anchor() voxel.Coord { return m.anchor }

// CreatedAt returns when the marker was placed.
func (m *Marker) CreatedAt() time.Time { return m.createdAt }
