// Package geom holds the continuous-space primitives used by room bounds
// and occlusion queries.
package geom

import "fmt"

// Vec3 is a point in continuous world space.
type Vec3 struct {
	X, Y, Z float64
}

// V returns a Vec3 from components.
func V(x, y, z float64) Vec3 {
	return Vec3{X: x, Y: y, Z: z}
}

// Add returns v + o.
func (v Vec3) Add(o Vec3) Vec3 {
	return Vec3{X: v.X + o.X, Y: v.Y + o.Y, Z: v.Z + o.Z}
}

// Sub returns v - o.
func (v Vec3) Sub(o Vec3) Vec3 {
	return Vec3{X: v.X - o.X, Y: v.Y - o.Y, Z: v.Z - o.Z}
}

// Scale returns v * s.
func (v Vec3) Scale(s float64) Vec3 {
	return Vec3{X: v.X * s, Y: v.Y * s, Z: v.Z * s}
}

// DistanceSq returns the squared euclidean distance between v and o.
func (v Vec3) DistanceSq(o Vec3) float64 {
	dx := v.X - o.X
	dy := v.Y - o.Y
	dz := v.Z - o.Z
	return dx*dx + dy*dy + dz*dz
}

func (v Vec3) String() string {
	return fmt.Sprintf("(%.1f, %.1f, %.1f)", v.X, v.Y, v.Z)
}

// AABB is an axis-aligned box. A box with Min > Max on any axis is inverted
// and contains nothing.
type AABB struct {
	Min Vec3
	Max Vec3
}

// Box returns an AABB from explicit min/max components without reordering them.
func Box(minX, minY, minZ, maxX, maxY, maxZ float64) AABB {
	return AABB{Min: V(minX, minY, minZ), Max: V(maxX, maxY, maxZ)}
}

// IsEmpty reports whether the box is inverted on any axis.
func (b AABB) IsEmpty() bool {
	return b.Min.X > b.Max.X || b.Min.Y > b.Max.Y || b.Min.Z > b.Max.Z
}

// Contains checks inclusive containment on all six faces.
func (b AABB) Contains(p Vec3) bool {
	return p.X >= b.Min.X && p.X <= b.Max.X &&
		p.Y >= b.Min.Y && p.Y <= b.Max.Y &&
		p.Z >= b.Min.Z && p.Z <= b.Max.Z
}

// Intersects reports whether two non-inverted boxes overlap (touching faces count).
func (b AABB) Intersects(o AABB) bool {
	if b.IsEmpty() || o.IsEmpty() {
		return false
	}
	return !(b.Max.X < o.Min.X || b.Min.X > o.Max.X ||
		b.Max.Y < o.Min.Y || b.Min.Y > o.Max.Y ||
		b.Max.Z < o.Min.Z || b.Min.Z > o.Max.Z)
}

// Center returns the geometric center.
func (b AABB) Center() Vec3 {
	return b.Min.Add(b.Max).Scale(0.5)
}

// Size returns the extent per axis (negative on inverted axes).
func (b AABB) Size() Vec3 {
	return b.Max.Sub(b.Min)
}

func (b AABB) String() string {
	return fmt.Sprintf("X:[%.1f, %.1f] Y:[%.1f, %.1f] Z:[%.1f, %.1f]",
		b.Min.X, b.Max.X, b.Min.Y, b.Max.Y, b.Min.Z, b.Max.Z)
}
