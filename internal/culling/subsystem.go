// Package culling wires marker lifecycle, room scanning and occlusion queries
// into one tick-driven subsystem.
package culling

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/udisondev/roomcull/internal/config"
	"github.com/udisondev/roomcull/internal/db"
	"github.com/udisondev/roomcull/internal/model"
	"github.com/udisondev/roomcull/internal/occlusion"
	"github.com/udisondev/roomcull/internal/room"
	"github.com/udisondev/roomcull/internal/voxel"
)

var (
	ErrAnchorOccupied = errors.New("anchor already has a marker")
	ErrUnknownMarker  = errors.New("unknown marker")
)

// MarkerStore persists markers across restarts.
type MarkerStore interface {
	LoadAll(ctx context.Context) ([]*model.Marker, error)
	Save(ctx context.Context, m *model.Marker) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type placed struct {
	marker *model.Marker
	handle room.Handle
}

type op struct {
	fn   func() error
	done chan error
}

// Subsystem owns the room registry, the manager, the viewer resolver and the
// query engine. It is driven by a single goroutine: either call its methods
// from the goroutine running Start, or pass work through Do.
type Subsystem struct {
	registry *room.Registry
	manager  *room.Manager
	resolver *occlusion.Resolver
	engine   *occlusion.Engine
	store    MarkerStore // nil keeps markers in memory only

	markers  map[uuid.UUID]*placed
	anchors  map[voxel.Coord]uuid.UUID
	interval time.Duration
	ticks    uint64

	viewerRoom room.Handle // 0 while the viewer is outside every room

	debug         bool
	debugInterval uint64

	ops chan op
}

// New creates the subsystem. store may be nil.
func New(cfg config.RoomCull, probe room.Probe, camera occlusion.Camera, store MarkerStore) *Subsystem {
	registry := room.NewRegistry()
	resolver := occlusion.NewResolver(registry, cfg.PositionCacheThreshold)

	debugInterval := uint64(cfg.DebugIntervalTicks)
	if debugInterval == 0 {
		debugInterval = 200
	}
	interval := cfg.TickInterval
	if interval <= 0 {
		interval = 50 * time.Millisecond
	}

	return &Subsystem{
		registry: registry,
		manager: room.NewManager(registry, probe, room.Config{
			MaxScanDistance: cfg.MaxScanDistance,
			Epsilon:         cfg.EpsilonOffset,
			RescanInterval:  cfg.RescanIntervalTicks,
			SweepInterval:   cfg.SweepIntervalTicks,
		}),
		resolver: resolver,
		engine: occlusion.NewEngine(registry, resolver, camera, occlusion.Options{
			CellSize:      cfg.CellSize,
			Debug:         cfg.DebugMode,
			DebugInterval: debugInterval,
		}),
		store:         store,
		markers:       make(map[uuid.UUID]*placed),
		anchors:       make(map[voxel.Coord]uuid.UUID),
		interval:      interval,
		debug:         cfg.DebugMode,
		debugInterval: debugInterval,
		ops:           make(chan op),
	}
}

// Engine returns the occlusion query engine.
func (s *Subsystem) Engine() *occlusion.Engine { return s.engine }

// Manager returns the room manager.
func (s *Subsystem) Manager() *room.Manager { return s.manager }

// SetProbe attaches a new world, e.g. after a level change. Rooms keep their
// bounds until their next rescan.
func (s *Subsystem) SetProbe(p room.Probe) {
	s.manager.SetProbe(p)
	s.resolver.Invalidate()
}

// PlaceMarker persists a marker at anchor and registers its room.
func (s *Subsystem) PlaceMarker(ctx context.Context, anchor voxel.Coord) (uuid.UUID, error) {
	if id, ok := s.anchors[anchor]; ok {
		return id, fmt.Errorf("placing marker at %v: %w", anchor, ErrAnchorOccupied)
	}

	m := model.NewMarker(anchor)
	if s.store != nil {
		if err := s.store.Save(ctx, m); err != nil {
			return uuid.Nil, fmt.Errorf("placing marker at %v: %w", anchor, err)
		}
	}

	s.attach(m)
	slog.Info("room marker placed", "marker", m.ID(), "anchor", anchor)
	return m.ID(), nil
}

// RemoveMarker deletes the marker and unregisters its room. A marker the
// store no longer holds is still unregistered.
func (s *Subsystem) RemoveMarker(ctx context.Context, id uuid.UUID) error {
	p, ok := s.markers[id]
	if !ok {
		return fmt.Errorf("removing marker %s: %w", id, ErrUnknownMarker)
	}

	if s.store != nil {
		err := s.store.Delete(ctx, id)
		switch {
		case errors.Is(err, db.ErrMarkerNotFound):
			slog.Warn("marker already gone from store", "marker", id, "anchor", p.marker.Anchor())
		case err != nil:
			return fmt.Errorf("removing marker %s: %w", id, err)
		}
	}

	s.manager.OnDestroy(p.handle)
	delete(s.markers, id)
	delete(s.anchors, p.marker.Anchor())
	slog.Info("room marker removed", "marker", id, "anchor", p.marker.Anchor())
	return nil
}

// LoadMarkers registers every persisted marker not already placed and returns
// how many were added.
func (s *Subsystem) LoadMarkers(ctx context.Context) (int, error) {
	if s.store == nil {
		return 0, nil
	}

	markers, err := s.store.LoadAll(ctx)
	if err != nil {
		return 0, fmt.Errorf("loading markers: %w", err)
	}

	loaded := 0
	for _, m := range markers {
		if _, ok := s.markers[m.ID()]; ok {
			continue
		}
		if _, ok := s.anchors[m.Anchor()]; ok {
			slog.Warn("skipping marker on occupied anchor", "marker", m.ID(), "anchor", m.Anchor())
			continue
		}
		s.attach(m)
		loaded++
	}

	slog.Info("room markers loaded", "count", loaded, "rooms", s.registry.ActiveCount())
	return loaded, nil
}

func (s *Subsystem) attach(m *model.Marker) {
	h := s.manager.OnCreate(m.Anchor())
	s.markers[m.ID()] = &placed{marker: m, handle: h}
	s.anchors[m.Anchor()] = m.ID()
}

// Room returns the room of a placed marker, or nil.
func (s *Subsystem) Room(id uuid.UUID) *room.Room {
	p, ok := s.markers[id]
	if !ok {
		return nil
	}
	return s.manager.Room(p.handle)
}

// MarkerCount returns the number of placed markers.
func (s *Subsystem) MarkerCount() int { return len(s.markers) }

// Tick advances room timers and the engine's tick counter, then resolves the
// viewer's room.
func (s *Subsystem) Tick() {
	s.ticks++
	s.manager.Tick()
	s.engine.OnTick(s.ticks)
	s.trackViewer()

	if s.debug && s.ticks%s.debugInterval == 0 {
		occluded := 0
		s.registry.Each(func(rm *room.Room) bool {
			if s.engine.IsPositionOccluded(rm.Anchor().Center()) {
				occluded++
			}
			return true
		})

		st := s.resolver.Stats()
		slog.Debug("room culling status",
			"tick", s.ticks,
			"markers", len(s.markers),
			"rooms", s.registry.ActiveCount(),
			"viewer_room", s.viewerRoom,
			"occluded_rooms", occluded,
			"cache_hits", st.Hits,
			"cache_misses", st.Misses)
	}
}

// ViewerRoom returns the handle of the room the viewer was in at the last
// tick, or 0.
func (s *Subsystem) ViewerRoom() room.Handle { return s.viewerRoom }

func (s *Subsystem) trackViewer() {
	var h room.Handle
	rm := s.engine.ViewerRoom()
	if rm != nil {
		h = rm.Handle()
	}
	if h == s.viewerRoom {
		return
	}

	if s.viewerRoom != 0 {
		slog.Info("viewer left room", "room", s.viewerRoom)
	}
	if rm != nil {
		bounds, _ := rm.Bounds()
		slog.Info("viewer entered room", "room", h, "anchor", rm.Anchor(), "bounds", bounds)
		viewerInRoom.Set(1)
	} else {
		viewerInRoom.Set(0)
	}
	viewerRoomChanges.Inc()
	s.viewerRoom = h
}

// Ticks returns the number of ticks processed.
func (s *Subsystem) Ticks() uint64 { return s.ticks }

// Do runs fn on the goroutine executing Start and returns its error.
func (s *Subsystem) Do(ctx context.Context, fn func() error) error {
	o := op{fn: fn, done: make(chan error, 1)}
	select {
	case s.ops <- o:
	case <-ctx.Done():
		return ctx.Err()
	}
	select {
	case err := <-o.done:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Start runs the tick loop until ctx is cancelled.
func (s *Subsystem) Start(ctx context.Context) error {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	slog.Info("room culling started", "interval", s.interval, "rooms", s.registry.ActiveCount())

	for {
		select {
		case <-ctx.Done():
			slog.Info("room culling stopping", "ticks", s.ticks)
			return ctx.Err()

		case o := <-s.ops:
			o.done <- o.fn()

		case <-ticker.C:
			s.Tick()
		}
	}
}
