package occlusion

import (
	"testing"

	"github.com/udisondev/roomcull/internal/geom"
	"github.com/udisondev/roomcull/internal/room"
	"github.com/udisondev/roomcull/internal/testutil"
	"github.com/udisondev/roomcull/internal/voxel"
)

// fixture wires a voxel world, a room manager and an engine with a movable
// viewer.
type fixture struct {
	world    *voxel.World
	manager  *room.Manager
	registry *room.Registry
	resolver *Resolver
	engine   *Engine

	viewer    geom.Vec3
	hasViewer bool
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	return newFixtureWith(t, room.Config{
		MaxScanDistance: 32,
		Epsilon:         0.1,
		RescanInterval:  20,
		SweepInterval:   40,
	})
}

func newFixtureWith(t *testing.T, cfg room.Config) *fixture {
	t.Helper()

	f := &fixture{world: voxel.NewWorld(nil)}
	f.registry = room.NewRegistry()
	f.manager = room.NewManager(f.registry, f.world, cfg)
	f.resolver = NewResolver(f.registry, DefaultCacheThreshold)
	f.engine = NewEngine(f.registry, f.resolver, CameraFunc(func() (geom.Vec3, bool) {
		return f.viewer, f.hasViewer
	}), Options{})
	return f
}

func (f *fixture) moveViewer(p geom.Vec3) {
	f.viewer = p
	f.hasViewer = true
}

// box builds a stone shell around the inclusive interior [lo, hi].
func (f *fixture) box(lo, hi voxel.Coord) {
	testutil.HollowBox(f.world, lo, hi, voxel.Stone)
}

// roomA is interior (0,0,0)-(9,4,9) anchored at (4,1,4):
// bounds X[-0.9, 9.9] Y[-0.9, 4.9] Z[-0.9, 9.9].
func (f *fixture) roomA() *room.Room {
	f.box(voxel.C(0, 0, 0), voxel.C(9, 4, 9))
	return f.manager.Room(f.manager.OnCreate(voxel.C(4, 1, 4)))
}

// roomB is interior (20,0,0)-(29,4,9) anchored at (24,1,4):
// bounds X[19.1, 29.9] Y[-0.9, 4.9] Z[-0.9, 9.9].
func (f *fixture) roomB() *room.Room {
	f.box(voxel.C(20, 0, 0), voxel.C(29, 4, 9))
	return f.manager.Room(f.manager.OnCreate(voxel.C(24, 1, 4)))
}

type thing struct{ pos geom.Vec3 }

func (t thing) Position() geom.Vec3 { return t.pos }
