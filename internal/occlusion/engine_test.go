package occlusion

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/udisondev/roomcull/internal/geom"
	"github.com/udisondev/roomcull/internal/voxel"
)

func TestEngineFailOpenWithoutRooms(t *testing.T) {
	f := newFixture(t)
	f.moveViewer(geom.V(4, 1, 4))

	targets := []geom.Vec3{
		geom.V(0, 0, 0),
		geom.V(1000, -50, 1000),
		geom.V(-3.5, 64, 12),
	}
	for _, p := range targets {
		assert.False(t, f.engine.IsPositionOccluded(p), "position %v", p)
		assert.False(t, f.engine.IsObjectOccluded(thing{pos: p}), "object %v", p)
	}
	assert.False(t, f.engine.IsCellOccluded(voxel.C(64, 64, 64), 16))
	assert.False(t, f.engine.IsSectionOccluded(voxel.C(-16, 0, 0)))
	assert.True(t, f.engine.IsBoxVisible(geom.Box(100, 100, 100, 101, 101, 101)))

	assert.Equal(t, Stats{}, f.resolver.Stats(), "resolver is not consulted without rooms")
}

func TestEngineViewerInsideRoom(t *testing.T) {
	f := newFixture(t)
	f.roomA()
	f.moveViewer(geom.V(4.5, 1.6, 4.5))

	tests := []struct {
		name   string
		target geom.Vec3
		want   bool
	}{
		{"same room", geom.V(8, 2, 8), false},
		{"other corner of room", geom.V(0, 0, 0), false},
		{"outside east wall", geom.V(12, 1, 4), true},
		{"above ceiling", geom.V(4, 6, 4), true},
		{"below floor", geom.V(4, -2, 4), true},
		{"far away", geom.V(500, 70, -300), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, f.engine.IsPositionOccluded(tt.target))
			assert.Equal(t, tt.want, f.engine.IsObjectOccluded(thing{pos: tt.target}))
		})
	}
}

func TestEngineBoundaryFaces(t *testing.T) {
	f := newFixture(t)
	a := f.roomA()
	f.moveViewer(geom.V(4, 1, 4))

	b, ok := a.Bounds()
	require.True(t, ok)

	assert.False(t, f.engine.IsPositionOccluded(geom.V(b.Min.X, 2, 2)), "on min x face")
	assert.False(t, f.engine.IsPositionOccluded(geom.V(2, b.Max.Y, 2)), "on max y face")
	assert.True(t, f.engine.IsPositionOccluded(geom.V(b.Min.X-0.001, 2, 2)))
	assert.True(t, f.engine.IsPositionOccluded(geom.V(2, 2, b.Max.Z+0.001)))
}

func TestEngineViewerOutsideAllRooms(t *testing.T) {
	f := newFixture(t)
	f.roomA()
	f.roomB()
	f.moveViewer(geom.V(15, 1, 4))

	assert.False(t, f.engine.IsPositionOccluded(geom.V(4, 1, 4)))
	assert.False(t, f.engine.IsPositionOccluded(geom.V(25, 1, 4)))
	assert.False(t, f.engine.IsPositionOccluded(geom.V(-100, 1, 4)))
	assert.False(t, f.engine.IsCellOccluded(voxel.C(0, 0, 0), 16))
	assert.True(t, f.engine.IsBoxVisible(geom.Box(200, 0, 0, 201, 1, 1)))
}

func TestEngineViewerMovesBetweenRooms(t *testing.T) {
	f := newFixture(t)
	f.roomA()
	f.roomB()
	inA := geom.V(4, 1, 4)
	inB := geom.V(25, 1, 4)

	f.moveViewer(inA)
	assert.False(t, f.engine.IsPositionOccluded(inA))
	assert.True(t, f.engine.IsPositionOccluded(inB))

	f.moveViewer(inB)
	assert.True(t, f.engine.IsPositionOccluded(inA))
	assert.False(t, f.engine.IsPositionOccluded(inB))
}

func TestEngineNoCamera(t *testing.T) {
	f := newFixture(t)
	f.roomA()

	assert.False(t, f.engine.IsPositionOccluded(geom.V(500, 0, 0)), "camera not ready")

	f.engine.SetCamera(nil)
	assert.False(t, f.engine.IsPositionOccluded(geom.V(500, 0, 0)), "no camera")
	assert.Nil(t, f.engine.ViewerRoom())
}

func TestEngineUnscannedRoomNeverOccludes(t *testing.T) {
	f := newFixture(t)
	f.manager.SetProbe(nil)
	f.manager.OnCreate(voxel.C(4, 1, 4))
	f.moveViewer(geom.V(4, 1, 4))

	assert.Equal(t, 1, f.registry.ActiveCount())
	assert.False(t, f.engine.IsPositionOccluded(geom.V(500, 0, 0)))
}

func TestEngineNilObject(t *testing.T) {
	f := newFixture(t)
	f.roomA()
	f.moveViewer(geom.V(4, 1, 4))

	assert.False(t, f.engine.IsObjectOccluded(nil))
}

func TestEngineCellUsesCenter(t *testing.T) {
	f := newFixture(t)
	f.roomA()
	f.moveViewer(geom.V(4, 1, 4))

	// Center (4, 0, 4) lies inside the room.
	assert.False(t, f.engine.IsCellOccluded(voxel.C(0, -4, 0), 8))
	// Center (8, 8, 8) is above the ceiling even though the cell overlaps the room.
	assert.True(t, f.engine.IsCellOccluded(voxel.C(0, 0, 0), 16))
	assert.True(t, f.engine.IsSectionOccluded(voxel.C(0, 0, 0)))
	// Far section.
	assert.True(t, f.engine.IsSectionOccluded(voxel.C(64, 0, 0)))
	// Degenerate size never occludes.
	assert.False(t, f.engine.IsCellOccluded(voxel.C(64, 0, 0), 0))
}

func TestEngineCustomCellSize(t *testing.T) {
	f := newFixture(t)
	f.roomA()
	f.moveViewer(geom.V(4, 1, 4))
	f.engine = NewEngine(f.registry, f.resolver, f.engine.camera, Options{CellSize: 4})

	// Center (2, 2, 2).
	assert.False(t, f.engine.IsSectionOccluded(voxel.C(0, 0, 0)))
}

func TestEngineBoxVisibility(t *testing.T) {
	f := newFixture(t)
	f.roomA()
	f.moveViewer(geom.V(4, 1, 4))

	assert.True(t, f.engine.IsBoxVisible(geom.Box(1, 1, 1, 2, 2, 2)), "inside")
	assert.True(t, f.engine.IsBoxVisible(geom.Box(9, 1, 1, 14, 2, 2)), "straddles east wall")
	assert.False(t, f.engine.IsBoxVisible(geom.Box(11, 1, 1, 14, 2, 2)), "beyond east wall")
	assert.False(t, f.engine.IsBoxVisible(geom.Box(1, 6, 1, 2, 7, 2)), "above ceiling")
}

func TestEngineViewerRoomBounds(t *testing.T) {
	f := newFixture(t)
	a := f.roomA()

	_, ok := f.engine.ViewerRoomBounds()
	assert.False(t, ok)

	f.moveViewer(geom.V(4, 1, 4))
	b, ok := f.engine.ViewerRoomBounds()
	require.True(t, ok)
	want, _ := a.Bounds()
	assert.Equal(t, want, b)
}

func TestEngineQueriesShareCache(t *testing.T) {
	f := newFixture(t)
	f.roomA()
	f.moveViewer(geom.V(4, 1, 4))

	// One frame worth of callbacks from different hooks.
	f.engine.IsPositionOccluded(geom.V(1, 1, 1))
	f.engine.IsObjectOccluded(thing{pos: geom.V(50, 1, 1)})
	f.engine.IsSectionOccluded(voxel.C(16, 0, 0))
	f.engine.IsBoxVisible(geom.Box(0, 0, 0, 1, 1, 1))

	assert.Equal(t, Stats{Hits: 3, Misses: 1}, f.resolver.Stats())
}

func TestEngineDebugTrace(t *testing.T) {
	tests := []struct {
		name    string
		opts    Options
		target  geom.Vec3
		records int
	}{
		{"every tenth tick", Options{Debug: true, DebugInterval: 10}, geom.V(100, 0, 0), 2},
		{"inside target logged too", Options{Debug: true, DebugInterval: 10}, geom.V(2, 1, 2), 2},
		{"debug off", Options{DebugInterval: 10}, geom.V(100, 0, 0), 0},
		{"default interval", Options{Debug: true}, geom.V(100, 0, 0), 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			f.roomA()
			f.moveViewer(geom.V(4, 1, 4))
			f.engine = NewEngine(f.registry, f.resolver, f.engine.camera, tt.opts)

			logs := captureLogs(t)
			for tick := range uint64(20) {
				f.engine.OnTick(tick)
				f.engine.IsPositionOccluded(tt.target)
			}

			assert.Equal(t, tt.records, strings.Count(logs.String(), "room occlusion check"))
		})
	}
}

func TestEngineDebugTraceSkippedWithoutViewerRoom(t *testing.T) {
	f := newFixture(t)
	f.roomA()
	f.moveViewer(geom.V(50, 1, 4))
	f.engine = NewEngine(f.registry, f.resolver, f.engine.camera, Options{Debug: true, DebugInterval: 1})

	logs := captureLogs(t)
	f.engine.OnTick(0)
	assert.False(t, f.engine.IsPositionOccluded(geom.V(100, 0, 0)))
	assert.Empty(t, logs.String())
}

func TestEngineRoomRemovedMidSession(t *testing.T) {
	f := newFixture(t)
	a := f.roomA()
	f.moveViewer(geom.V(4, 1, 4))

	require.True(t, f.engine.IsPositionOccluded(geom.V(50, 1, 4)))

	f.manager.OnDestroy(a.Handle())
	assert.False(t, f.engine.IsPositionOccluded(geom.V(50, 1, 4)))
}

// captureLogs routes the default logger into a buffer at debug level until
// the test ends.
func captureLogs(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	prev := slog.Default()
	slog.SetDefault(slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})))
	t.Cleanup(func() { slog.SetDefault(prev) })
	return &buf
}
