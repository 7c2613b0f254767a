package room

import (
	"slices"

	"github.com/udisondev/roomcull/internal/voxel"
)

// Registry owns the live rooms in registration order. Overlapping rooms are
// resolved by first match in that order.
// Not safe for concurrent use: the owning loop is the only writer and reader.
type Registry struct {
	rooms      []*Room
	byHandle   map[Handle]*Room
	nextHandle Handle
	generation uint64
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		byHandle: make(map[Handle]*Room),
	}
}

// NewRoom allocates a room with a fresh handle. The room is not registered
// until Register is called.
func (g *Registry) NewRoom(anchor voxel.Coord) *Room {
	g.nextHandle++
	return &Room{handle: g.nextHandle, anchor: anchor}
}

// Register adds r. Registering the same room twice is a no-op.
func (g *Registry) Register(r *Room) bool {
	if r == nil {
		return false
	}
	if _, ok := g.byHandle[r.handle]; ok {
		return false
	}
	g.rooms = append(g.rooms, r)
	g.byHandle[r.handle] = r
	g.generation++
	roomsActive.Set(float64(len(g.rooms)))
	return true
}

// Unregister removes r. Unknown rooms are ignored.
func (g *Registry) Unregister(r *Room) bool {
	if r == nil {
		return false
	}
	if _, ok := g.byHandle[r.handle]; !ok {
		return false
	}
	delete(g.byHandle, r.handle)
	if i := slices.Index(g.rooms, r); i >= 0 {
		g.rooms = slices.Delete(g.rooms, i, i+1)
	}
	g.generation++
	roomsActive.Set(float64(len(g.rooms)))
	return true
}

// SweepRemoved drops rooms whose markers are gone and returns how many were
// dropped.
func (g *Registry) SweepRemoved() int {
	before := len(g.rooms)
	g.rooms = slices.DeleteFunc(g.rooms, func(r *Room) bool {
		if r.removed {
			delete(g.byHandle, r.handle)
			return true
		}
		return false
	})

	swept := before - len(g.rooms)
	if swept > 0 {
		g.generation++
		roomsSwept.Add(float64(swept))
		roomsActive.Set(float64(len(g.rooms)))
	}
	return swept
}

// ActiveCount returns the number of registered rooms.
func (g *Registry) ActiveCount() int {
	return len(g.rooms)
}

// Get returns the room for h, or nil.
func (g *Registry) Get(h Handle) *Room {
	return g.byHandle[h]
}

// Contains reports whether r is currently registered.
func (g *Registry) Contains(r *Room) bool {
	if r == nil {
		return false
	}
	return g.byHandle[r.handle] == r
}

// Each calls fn for every room in registration order until fn returns false.
func (g *Registry) Each(fn func(*Room) bool) {
	for _, r := range g.rooms {
		if !fn(r) {
			return
		}
	}
}

// Rooms returns a copy of the registered rooms in registration order.
func (g *Registry) Rooms() []*Room {
	return slices.Clone(g.rooms)
}

// Generation increments on every membership change.
func (g *Registry) Generation() uint64 {
	return g.generation
}
