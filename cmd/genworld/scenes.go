package main

import "github.com/udisondev/roomcull/internal/voxel"

// hollow encloses the inclusive interior [lo, hi] in a shell of wall.
func hollow(w *voxel.World, lo, hi voxel.Coord, wall voxel.ID) {
	w.Fill(lo.Add(voxel.C(-1, -1, -1)), hi.Add(voxel.C(1, 1, 1)), wall)
	w.Fill(lo, hi, voxel.Air)
}

// buildHouse places two 10x5x10 rooms at x 0..9 and 11..20. The shared wall
// at x=10 has a glass window, which still bounds both rooms.
func buildHouse(w *voxel.World) []voxel.Coord {
	w.Fill(voxel.C(-8, -4, -8), voxel.C(28, -2, 17), voxel.Dirt)

	hollow(w, voxel.C(0, 0, 0), voxel.C(9, 4, 9), voxel.Planks)
	hollow(w, voxel.C(11, 0, 0), voxel.C(20, 4, 9), voxel.Planks)
	w.Fill(voxel.C(10, 1, 3), voxel.C(10, 2, 6), voxel.Glass)

	w.Set(voxel.C(2, 0, 2), voxel.Torch)
	w.Set(voxel.C(15, 0, 7), voxel.TallGrass)

	return []voxel.Coord{voxel.C(4, 1, 4), voxel.C(15, 1, 4)}
}

// buildCave carves a 24x6x24 hollow into a stone block under x,z 40..71.
func buildCave(w *voxel.World) []voxel.Coord {
	w.Fill(voxel.C(40, -24, 40), voxel.C(71, -9, 71), voxel.Stone)
	w.Fill(voxel.C(44, -20, 44), voxel.C(67, -15, 67), voxel.Air)
	w.Fill(voxel.C(44, -20, 44), voxel.C(67, -20, 67), voxel.Water)

	return []voxel.Coord{voxel.C(55, -18, 55)}
}

// buildMeadow lays open ground south of the house with no enclosures.
func buildMeadow(w *voxel.World) []voxel.Coord {
	w.Fill(voxel.C(-32, -4, 32), voxel.C(-1, -1, 63), voxel.Dirt)
	for x := -32; x < 0; x += 3 {
		w.Set(voxel.C(x, 0, 40), voxel.TallGrass)
		w.Set(voxel.C(x, 0, 48), voxel.SnowLayer)
	}
	w.Fill(voxel.C(-20, -1, 50), voxel.C(-10, -1, 58), voxel.Water)

	return nil
}
