package voxel

import (
	"fmt"

	"github.com/udisondev/roomcull/internal/geom"
)

// Coord addresses a single voxel.
type Coord struct {
	X, Y, Z int
}

// C returns a Coord from components.
func C(x, y, z int) Coord {
	return Coord{X: x, Y: y, Z: z}
}

// Add returns c + o.
func (c Coord) Add(o Coord) Coord {
	return Coord{X: c.X + o.X, Y: c.Y + o.Y, Z: c.Z + o.Z}
}

// Step returns the coordinate n voxels away from c in direction d.
func (c Coord) Step(d Direction, n int) Coord {
	s := d.Unit()
	return Coord{X: c.X + s.X*n, Y: c.Y + s.Y*n, Z: c.Z + s.Z*n}
}

// Vec returns the voxel's minimum corner in continuous space.
func (c Coord) Vec() geom.Vec3 {
	return geom.V(float64(c.X), float64(c.Y), float64(c.Z))
}

// Center returns the center point of the voxel.
func (c Coord) Center() geom.Vec3 {
	return geom.V(float64(c.X)+0.5, float64(c.Y)+0.5, float64(c.Z)+0.5)
}

// Section returns the coordinate of the section containing c.
func (c Coord) Section() Coord {
	return Coord{X: c.X >> SectionShift, Y: c.Y >> SectionShift, Z: c.Z >> SectionShift}
}

// Local returns the index of c inside its section.
func (c Coord) Local() int {
	return LocalIndex(c.X&SectionMask, c.Y&SectionMask, c.Z&SectionMask)
}

func (c Coord) String() string {
	return fmt.Sprintf("[%d, %d, %d]", c.X, c.Y, c.Z)
}

// LocalIndex returns the index of local voxel (x, y, z) in a section (YZX order).
func LocalIndex(x, y, z int) int {
	return (y*SectionSize+z)*SectionSize + x
}

// Direction is one of the six axis directions.
type Direction uint8

// Directions in scan order. The order is also the index order of wall distances.
const (
	North Direction = iota // -Z
	South                  // +Z
	East                   // +X
	West                   // -X
	Up                     // +Y
	Down                   // -Y
)

// Directions lists all six directions in scan order.
var Directions = [6]Direction{North, South, East, West, Up, Down}

var units = [6]Coord{
	North: {Z: -1},
	South: {Z: 1},
	East:  {X: 1},
	West:  {X: -1},
	Up:    {Y: 1},
	Down:  {Y: -1},
}

var dirNames = [6]string{"north", "south", "east", "west", "up", "down"}

// Unit returns the one-voxel step for d.
func (d Direction) Unit() Coord {
	return units[d]
}

// Opposite returns the direction pointing the other way.
func (d Direction) Opposite() Direction {
	return d ^ 1
}

func (d Direction) String() string {
	if int(d) < len(dirNames) {
		return dirNames[d]
	}
	return fmt.Sprintf("Direction(%d)", d)
}
