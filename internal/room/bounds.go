package room

import (
	"github.com/udisondev/roomcull/internal/geom"
	"github.com/udisondev/roomcull/internal/voxel"
)

// ComputeBounds derives the occlusion volume from an anchor and its wall
// distances, shrunk inward by epsilon on every face. Cramped spaces can
// produce an inverted box, which contains nothing.
func ComputeBounds(anchor voxel.Coord, walls WallDistances, epsilon float64) geom.AABB {
	x := float64(anchor.X)
	y := float64(anchor.Y)
	z := float64(anchor.Z)

	return geom.Box(
		x-float64(walls[voxel.West])+epsilon,
		y-float64(walls[voxel.Down])+epsilon,
		z-float64(walls[voxel.North])+epsilon,
		x+float64(walls[voxel.East])-epsilon,
		y+float64(walls[voxel.Up])-epsilon,
		z+float64(walls[voxel.South])-epsilon,
	)
}
