package voxel

// Section grid dimensions.
const (
	SectionSize   = 16
	SectionArea   = SectionSize * SectionSize // 256
	SectionVolume = SectionArea * SectionSize // 4096
	SectionShift  = 4                         // log2(SectionSize)
	SectionMask   = SectionSize - 1           // 0x0F
)

// SectionExt is the file extension of section files.
const SectionExt = ".sec"

// Section type identifiers in the .sec binary format.
const (
	SectionTypeFlat  byte = 0x00
	SectionTypeDense byte = 0x01
)
