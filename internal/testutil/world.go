package testutil

import "github.com/udisondev/roomcull/internal/voxel"

// HollowBox encloses the inclusive interior [lo, hi] in a one-voxel shell of
// wall and clears the interior to air.
func HollowBox(w *voxel.World, lo, hi voxel.Coord, wall voxel.ID) {
	w.Fill(lo.Add(voxel.C(-1, -1, -1)), hi.Add(voxel.C(1, 1, 1)), wall)
	w.Fill(lo, hi, voxel.Air)
}
