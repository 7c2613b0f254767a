package room

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/udisondev/roomcull/internal/voxel"
)

// Config holds room scanning and lifecycle parameters.
type Config struct {
	MaxScanDistance int     // voxels searched per direction
	Epsilon         float64 // inward shrink of the bounds
	RescanInterval  int     // ticks between rescans of a live room
	SweepInterval   int     // ticks between registry sweeps (0 disables)
}

// DefaultConfig returns the defaults of the latest marker revision.
func DefaultConfig() Config {
	return Config{
		MaxScanDistance: 64,
		Epsilon:         0.1,
		RescanInterval:  160,
		SweepInterval:   200,
	}
}

// Validate checks that the parameters are usable.
func (c Config) Validate() error {
	if c.MaxScanDistance < 1 {
		return fmt.Errorf("max scan distance %d: %w", c.MaxScanDistance, ErrInvalidScanDistance)
	}
	if c.Epsilon < 0 {
		return fmt.Errorf("epsilon %v must not be negative", c.Epsilon)
	}
	if c.RescanInterval < 1 {
		return fmt.Errorf("rescan interval %d must be positive", c.RescanInterval)
	}
	if c.SweepInterval < 0 {
		return fmt.Errorf("sweep interval %d must not be negative", c.SweepInterval)
	}
	return nil
}

func (c Config) scan() ScanConfig {
	return ScanConfig{MaxDistance: c.MaxScanDistance, Epsilon: c.Epsilon}
}

// Manager turns marker lifecycle events and ticks into registry updates and
// rescans.
type Manager struct {
	registry *Registry
	probe    Probe
	cfg      Config
	ticks    uint64
}

// NewManager creates a manager over registry. probe may be nil until a world
// is attached with SetProbe.
func NewManager(registry *Registry, probe Probe, cfg Config) *Manager {
	return &Manager{
		registry: registry,
		probe:    probe,
		cfg:      cfg,
	}
}

// Registry returns the managed registry.
func (m *Manager) Registry() *Registry { return m.registry }

// SetProbe replaces the world probe, e.g. on level change.
func (m *Manager) SetProbe(p Probe) { m.probe = p }

// OnCreate handles a new marker at anchor: the room is scanned once and
// registered. A failed first scan still registers the room; it stays without
// bounds until a later rescan succeeds.
func (m *Manager) OnCreate(anchor voxel.Coord) Handle {
	r := m.registry.NewRoom(anchor)
	if err := r.Rescan(m.probe, m.cfg.scan()); err != nil {
		slog.Debug("initial room scan aborted", "anchor", anchor, "err", err)
	}
	m.registry.Register(r)
	slog.Debug("room registered", "handle", r.handle, "anchor", anchor, "active", m.registry.ActiveCount())
	return r.handle
}

// OnDestroy handles marker removal: the room is flagged and unregistered.
func (m *Manager) OnDestroy(h Handle) bool {
	r := m.registry.Get(h)
	if r == nil {
		return false
	}
	r.removed = true
	m.registry.Unregister(r)
	slog.Debug("room unregistered", "handle", h, "active", m.registry.ActiveCount())
	return true
}

// MarkRemoved flags the room as dead without unregistering it; the next
// sweep drops it.
func (m *Manager) MarkRemoved(h Handle) bool {
	r := m.registry.Get(h)
	if r == nil {
		return false
	}
	r.removed = true
	return true
}

// Rescan scans the room for h immediately and restarts its rescan timer.
func (m *Manager) Rescan(h Handle) error {
	r := m.registry.Get(h)
	if r == nil {
		return fmt.Errorf("rescan room %d: not registered", h)
	}
	r.rescanTimer = 0
	return r.Rescan(m.probe, m.cfg.scan())
}

// Room returns the room for h, or nil.
func (m *Manager) Room(h Handle) *Room {
	return m.registry.Get(h)
}

// Rooms returns all registered rooms in registration order.
func (m *Manager) Rooms() []*Room {
	return m.registry.Rooms()
}

// Tick advances rescan timers and runs the periodic sweep. Rescans run to
// completion inside the tick.
func (m *Manager) Tick() {
	m.ticks++

	m.registry.Each(func(r *Room) bool {
		if r.removed {
			return true
		}
		r.rescanTimer++
		if r.rescanTimer >= m.cfg.RescanInterval {
			r.rescanTimer = 0
			if err := r.Rescan(m.probe, m.cfg.scan()); err != nil && !errors.Is(err, ErrProbeUnavailable) {
				slog.Warn("room rescan failed", "handle", r.handle, "err", err)
			}
		}
		return true
	})

	if m.cfg.SweepInterval > 0 && m.ticks%uint64(m.cfg.SweepInterval) == 0 {
		if n := m.registry.SweepRemoved(); n > 0 {
			slog.Debug("swept removed rooms", "count", n, "active", m.registry.ActiveCount())
		}
	}
}

// Ticks returns the number of ticks processed.
func (m *Manager) Ticks() uint64 { return m.ticks }
