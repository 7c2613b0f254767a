package voxel

import "fmt"

// ID identifies a material in a Palette.
type ID uint8

// Built-in material IDs.
const (
	Air ID = iota
	Stone
	Dirt
	Planks
	Glass
	IronBars
	Water
	Lava
	TallGrass
	Torch
	SnowLayer
	Leaves
	Marker
)

// Flags describe how a material behaves as a room boundary.
type Flags uint8

// Material flags.
const (
	FlagCollidable  Flags = 1 << 0 // has a collision shape
	FlagSolidRender Flags = 1 << 1 // fully opaque full-cube render
	FlagFluid       Flags = 1 << 2 // carries a fluid state
	FlagReplaceable Flags = 1 << 3 // placement overwrites it (grass, snow layer)
)

// Opaque is the flag set of ordinary full blocks.
const Opaque = FlagCollidable | FlagSolidRender

// Material is the boundary-relevant description of a voxel type.
type Material struct {
	ID    ID
	Name  string
	Flags Flags
}

// IsAir reports whether the material is empty space.
func (m Material) IsAir() bool { return m.ID == Air }

// Has reports whether all bits of f are set.
func (m Material) Has(f Flags) bool { return m.Flags&f == f }

// IsWall reports whether the material counts as a room wall, floor or ceiling.
// Opaque solids always count. Transparent solids (glass, bars) count when they
// collide and are neither fluid nor replaceable.
func (m Material) IsWall() bool {
	if m.IsAir() || !m.Has(FlagCollidable) {
		return false
	}
	if m.Has(FlagSolidRender) {
		return true
	}
	return !m.Has(FlagFluid) && !m.Has(FlagReplaceable)
}

func (m Material) String() string {
	return fmt.Sprintf("%s(%d)", m.Name, m.ID)
}

// Palette maps material IDs to materials. Unknown IDs resolve to an opaque
// placeholder so unrecognised data still bounds a room.
type Palette struct {
	materials [256]Material
	defined   [256]bool
}

// DefaultPalette returns a palette with the built-in materials.
func DefaultPalette() *Palette {
	p := &Palette{}
	for _, m := range []Material{
		{ID: Air, Name: "air"},
		{ID: Stone, Name: "stone", Flags: Opaque},
		{ID: Dirt, Name: "dirt", Flags: Opaque},
		{ID: Planks, Name: "planks", Flags: Opaque},
		{ID: Glass, Name: "glass", Flags: FlagCollidable},
		{ID: IronBars, Name: "iron_bars", Flags: FlagCollidable},
		{ID: Water, Name: "water", Flags: FlagFluid | FlagReplaceable},
		{ID: Lava, Name: "lava", Flags: FlagFluid | FlagReplaceable},
		{ID: TallGrass, Name: "tall_grass", Flags: FlagReplaceable},
		{ID: Torch, Name: "torch"},
		{ID: SnowLayer, Name: "snow_layer", Flags: FlagCollidable | FlagReplaceable},
		{ID: Leaves, Name: "leaves", Flags: FlagCollidable},
		{ID: Marker, Name: "room_marker", Flags: FlagCollidable},
	} {
		_ = p.Define(m)
	}
	return p
}

// Define adds or replaces a material. Air cannot be redefined.
func (p *Palette) Define(m Material) error {
	if m.ID == Air && p.defined[Air] {
		return fmt.Errorf("define material %q: id 0 is reserved for air", m.Name)
	}
	p.materials[m.ID] = m
	p.defined[m.ID] = true
	return nil
}

// Lookup returns the material for id.
func (p *Palette) Lookup(id ID) Material {
	if p.defined[id] {
		return p.materials[id]
	}
	return Material{ID: id, Name: "unknown", Flags: Opaque}
}

// Defined reports whether id has an explicit definition.
func (p *Palette) Defined(id ID) bool {
	return p.defined[id]
}
