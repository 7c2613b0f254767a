package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/udisondev/roomcull/internal/voxel"
)

// EnvPath names the environment variable that overrides the config path.
const EnvPath = "ROOMCULL_CONFIG"

// DefaultPath is used when EnvPath is unset.
const DefaultPath = "config/roomcull.yaml"

// RoomCull holds all configuration for the room culling client.
type RoomCull struct {
	// Logging
	LogLevel string `yaml:"log_level"` // debug, info, warn, error

	// World
	WorldDir  string          `yaml:"world_dir"`
	Viewer    ViewerConfig    `yaml:"viewer"`
	Markers   []Anchor        `yaml:"markers"` // seeded when no store is configured
	Materials []MaterialEntry `yaml:"materials"`

	// Room scanning
	MaxScanDistance     int     `yaml:"max_scan_distance"`
	EpsilonOffset       float64 `yaml:"epsilon_offset"`
	RescanIntervalTicks int     `yaml:"rescan_interval_ticks"`
	SweepIntervalTicks  int     `yaml:"sweep_interval_ticks"`

	// Occlusion queries
	PositionCacheThreshold float64 `yaml:"position_cache_threshold"`
	CellSize               int     `yaml:"cell_size"`

	// Tick loop
	TickInterval time.Duration `yaml:"tick_interval"` // default: 50ms

	// Debug
	DebugMode          bool `yaml:"debug_mode"`
	DebugIntervalTicks int  `yaml:"debug_interval_ticks"`

	// Metrics
	MetricsAddress string `yaml:"metrics_address"` // empty disables the endpoint

	// Marker store
	Database DatabaseConfig `yaml:"database"`
}

// DatabaseConfig holds PostgreSQL connection parameters.
type DatabaseConfig struct {
	Enabled  bool   `yaml:"enabled"`
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	DBName   string `yaml:"dbname"`
	SSLMode  string `yaml:"sslmode"`
}

// DSN returns the PostgreSQL connection string.
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.DBName, d.SSLMode,
	)
}

// ViewerConfig places a static camera for the headless client.
type ViewerConfig struct {
	Enabled bool    `yaml:"enabled"`
	X       float64 `yaml:"x"`
	Y       float64 `yaml:"y"`
	Z       float64 `yaml:"z"`
}

// Anchor is a voxel coordinate in config files.
type Anchor struct {
	X int `yaml:"x"`
	Y int `yaml:"y"`
	Z int `yaml:"z"`
}

// Coord converts the anchor to a voxel coordinate.
func (a Anchor) Coord() voxel.Coord {
	return voxel.C(a.X, a.Y, a.Z)
}

// MaterialEntry defines or overrides a palette material.
type MaterialEntry struct {
	ID          uint8  `yaml:"id"`
	Name        string `yaml:"name"`
	Collidable  bool   `yaml:"collidable"`
	SolidRender bool   `yaml:"solid_render"`
	Fluid       bool   `yaml:"fluid"`
	Replaceable bool   `yaml:"replaceable"`
}

func (e MaterialEntry) material() voxel.Material {
	var f voxel.Flags
	if e.Collidable {
		f |= voxel.FlagCollidable
	}
	if e.SolidRender {
		f |= voxel.FlagSolidRender
	}
	if e.Fluid {
		f |= voxel.FlagFluid
	}
	if e.Replaceable {
		f |= voxel.FlagReplaceable
	}
	return voxel.Material{ID: voxel.ID(e.ID), Name: e.Name, Flags: f}
}

// DefaultRoomCull returns RoomCull config with sensible defaults.
func DefaultRoomCull() RoomCull {
	return RoomCull{
		LogLevel:               "info",
		WorldDir:               "data/world",
		MaxScanDistance:        64,
		EpsilonOffset:          0.1,
		RescanIntervalTicks:    160,
		SweepIntervalTicks:     200,
		PositionCacheThreshold: 0.1,
		CellSize:               voxel.SectionSize,
		TickInterval:           50 * time.Millisecond,
		DebugIntervalTicks:     200,
		MetricsAddress:         ":9108",
		Database: DatabaseConfig{
			Host:     "127.0.0.1",
			Port:     5432,
			User:     "roomcull",
			Password: "roomcull",
			DBName:   "roomcull",
			SSLMode:  "disable",
		},
	}
}

// Path returns the config path from the environment or DefaultPath.
func Path() string {
	if p := os.Getenv(EnvPath); p != "" {
		return p
	}
	return DefaultPath
}

// LoadRoomCull loads config from a YAML file.
// If the file doesn't exist, returns defaults.
func LoadRoomCull(path string) (RoomCull, error) {
	cfg := DefaultRoomCull()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("validating config %s: %w", path, err)
	}

	return cfg, nil
}

// Validate checks value ranges.
func (c RoomCull) Validate() error {
	var errs []error
	if c.MaxScanDistance < 1 {
		errs = append(errs, fmt.Errorf("max_scan_distance must be positive, got %d", c.MaxScanDistance))
	}
	if c.EpsilonOffset < 0 {
		errs = append(errs, fmt.Errorf("epsilon_offset must not be negative, got %v", c.EpsilonOffset))
	}
	if c.RescanIntervalTicks < 1 {
		errs = append(errs, fmt.Errorf("rescan_interval_ticks must be positive, got %d", c.RescanIntervalTicks))
	}
	if c.SweepIntervalTicks < 0 {
		errs = append(errs, fmt.Errorf("sweep_interval_ticks must not be negative, got %d", c.SweepIntervalTicks))
	}
	if c.PositionCacheThreshold <= 0 {
		errs = append(errs, fmt.Errorf("position_cache_threshold must be positive, got %v", c.PositionCacheThreshold))
	}
	if c.CellSize < 1 {
		errs = append(errs, fmt.Errorf("cell_size must be positive, got %d", c.CellSize))
	}
	if c.TickInterval <= 0 {
		errs = append(errs, fmt.Errorf("tick_interval must be positive, got %s", c.TickInterval))
	}
	if c.DebugIntervalTicks < 1 {
		errs = append(errs, fmt.Errorf("debug_interval_ticks must be positive, got %d", c.DebugIntervalTicks))
	}
	for _, m := range c.Materials {
		if m.ID == uint8(voxel.Air) {
			errs = append(errs, fmt.Errorf("material %q: id 0 is reserved for air", m.Name))
		}
	}
	return errors.Join(errs...)
}

// Palette returns the default palette with the configured materials applied.
func (c RoomCull) Palette() (*voxel.Palette, error) {
	p := voxel.DefaultPalette()
	for _, e := range c.Materials {
		if err := p.Define(e.material()); err != nil {
			return nil, fmt.Errorf("building palette: %w", err)
		}
	}
	return p, nil
}
