package occlusion

import (
	"log/slog"

	"github.com/udisondev/roomcull/internal/geom"
	"github.com/udisondev/roomcull/internal/room"
	"github.com/udisondev/roomcull/internal/voxel"
)

// DefaultCellSize is the edge length of a render section.
const DefaultCellSize = voxel.SectionSize

// Camera supplies the viewer position. ok is false when there is no level or
// camera yet; queries then occlude nothing.
type Camera interface {
	Position() (pos geom.Vec3, ok bool)
}

// CameraFunc adapts a function to Camera.
type CameraFunc func() (geom.Vec3, bool)

func (f CameraFunc) Position() (geom.Vec3, bool) { return f() }

// Positioned is any renderable object with a representative point.
type Positioned interface {
	Position() geom.Vec3
}

// Options configure an Engine.
type Options struct {
	CellSize      int    // edge of a render section (default 16)
	Debug         bool   // log occlusion decisions
	DebugInterval uint64 // ticks between logged decisions (default 200)
}

// Engine exposes the occlusion predicates used by render callbacks.
// Every predicate fails open: without rooms, without a camera, or with the
// viewer outside every room, nothing is occluded.
type Engine struct {
	registry *room.Registry
	resolver *Resolver
	camera   Camera

	cellSize      int
	debug         bool
	debugInterval uint64
	tick          uint64
}

// NewEngine creates an engine over registry and resolver.
func NewEngine(registry *room.Registry, resolver *Resolver, camera Camera, opts Options) *Engine {
	if opts.CellSize <= 0 {
		opts.CellSize = DefaultCellSize
	}
	if opts.DebugInterval == 0 {
		opts.DebugInterval = 200
	}
	return &Engine{
		registry:      registry,
		resolver:      resolver,
		camera:        camera,
		cellSize:      opts.CellSize,
		debug:         opts.Debug,
		debugInterval: opts.DebugInterval,
	}
}

// SetCamera replaces the viewer source.
func (e *Engine) SetCamera(c Camera) { e.camera = c }

// OnTick records the current tick for debug throttling.
func (e *Engine) OnTick(tick uint64) { e.tick = tick }

// ViewerRoom returns the room the viewer is in, or nil.
func (e *Engine) ViewerRoom() *room.Room {
	if e.registry.ActiveCount() == 0 || e.camera == nil {
		return nil
	}
	pos, ok := e.camera.Position()
	if !ok {
		return nil
	}
	return e.resolver.Resolve(pos)
}

// ViewerRoomBounds returns the bounds of the viewer's room.
func (e *Engine) ViewerRoomBounds() (geom.AABB, bool) {
	rm := e.ViewerRoom()
	if rm == nil {
		return geom.AABB{}, false
	}
	return rm.Bounds()
}

// IsPositionOccluded reports whether target lies outside the viewer's room.
func (e *Engine) IsPositionOccluded(target geom.Vec3) bool {
	if e.isOccluded(target) {
		occludedPositions.Inc()
		return true
	}
	return false
}

// IsObjectOccluded applies IsPositionOccluded to the object's position.
func (e *Engine) IsObjectOccluded(obj Positioned) bool {
	if obj == nil {
		return false
	}
	if e.isOccluded(obj.Position()) {
		occludedObjects.Inc()
		return true
	}
	return false
}

// IsCellOccluded tests the center of the cube cell at origin with edge size.
// A cell partly inside the room is decided by its center alone.
func (e *Engine) IsCellOccluded(origin voxel.Coord, size int) bool {
	if size <= 0 {
		return false
	}
	half := float64(size) / 2
	center := origin.Vec().Add(geom.V(half, half, half))
	if e.isOccluded(center) {
		occludedCells.Inc()
		return true
	}
	return false
}

// IsSectionOccluded tests a render section of the configured cell size.
func (e *Engine) IsSectionOccluded(origin voxel.Coord) bool {
	return e.IsCellOccluded(origin, e.cellSize)
}

// IsBoxVisible reports false only when the viewer is in a room and box does
// not touch the room bounds. Intended for the frustum visibility hook.
func (e *Engine) IsBoxVisible(box geom.AABB) bool {
	if e.registry.ActiveCount() == 0 {
		return true
	}
	bounds, ok := e.ViewerRoomBounds()
	if !ok {
		return true
	}
	if box.Intersects(bounds) {
		return true
	}
	occludedBoxes.Inc()
	return false
}

func (e *Engine) isOccluded(target geom.Vec3) bool {
	if e.registry.ActiveCount() == 0 {
		return false
	}
	rm := e.ViewerRoom()
	if rm == nil {
		return false
	}
	occluded := !rm.Contains(target)

	if e.debug && e.tick%e.debugInterval == 0 {
		slog.Debug("room occlusion check",
			"room", rm.Handle(),
			"target", target,
			"occluded", occluded)
	}
	return occluded
}
