package voxel

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMaterialIsWall(t *testing.T) {
	p := DefaultPalette()

	tests := []struct {
		id   ID
		want bool
	}{
		{Air, false},
		{Stone, true},
		{Dirt, true},
		{Planks, true},
		{Glass, true},
		{IronBars, true},
		{Leaves, true},
		{Marker, true},
		{Water, false},
		{Lava, false},
		{TallGrass, false},
		{Torch, false},
		{SnowLayer, false},
	}

	for _, tt := range tests {
		m := p.Lookup(tt.id)
		t.Run(m.Name, func(t *testing.T) {
			assert.Equal(t, tt.want, m.IsWall())
		})
	}
}

func TestMaterialIsWallFlags(t *testing.T) {
	tests := []struct {
		name  string
		flags Flags
		want  bool
	}{
		{"no collision", FlagSolidRender, false},
		{"solid render wins over replaceable", Opaque | FlagReplaceable, true},
		{"transparent solid", FlagCollidable, true},
		{"collidable fluid", FlagCollidable | FlagFluid, false},
		{"collidable replaceable", FlagCollidable | FlagReplaceable, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := Material{ID: 200, Name: tt.name, Flags: tt.flags}
			assert.Equal(t, tt.want, m.IsWall())
		})
	}
}

func TestPaletteDefine(t *testing.T) {
	p := DefaultPalette()

	require.NoError(t, p.Define(Material{ID: 40, Name: "barrier", Flags: FlagCollidable}))
	assert.True(t, p.Defined(40))
	assert.Equal(t, "barrier", p.Lookup(40).Name)

	err := p.Define(Material{ID: Air, Name: "void", Flags: Opaque})
	require.Error(t, err)
	assert.True(t, p.Lookup(Air).IsAir())
}

func TestPaletteUnknownIsOpaque(t *testing.T) {
	p := DefaultPalette()

	m := p.Lookup(250)
	assert.False(t, p.Defined(250))
	assert.True(t, m.IsWall(), "unknown materials must bound rooms")
}
