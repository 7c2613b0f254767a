package voxel

import "fmt"

// Section provides material IDs for a 16×16×16 cube of voxels.
type Section interface {
	// At returns the material ID at local index i (see LocalIndex).
	At(i int) ID
	// Uniform reports whether every voxel holds the same material.
	Uniform() bool
	// Encode returns the .sec binary representation.
	Encode() []byte
}

// FlatSection: all 4096 voxels share one material.
// Binary format: 1 byte type (0x00) + 1 byte material ID.
type FlatSection struct {
	id ID
}

// NewFlatSection returns a section filled with id.
func NewFlatSection(id ID) *FlatSection {
	return &FlatSection{id: id}
}

func (s *FlatSection) At(_ int) ID { return s.id }

func (s *FlatSection) Uniform() bool { return true }

func (s *FlatSection) Encode() []byte {
	return []byte{SectionTypeFlat, byte(s.id)}
}

// DenseSection holds one material ID per voxel in YZX order.
// Binary format: 1 byte type (0x01) + 4096 bytes.
type DenseSection struct {
	data [SectionVolume]ID
}

// NewDenseSection returns a dense section filled with id.
func NewDenseSection(id ID) *DenseSection {
	s := &DenseSection{}
	if id != Air {
		for i := range s.data {
			s.data[i] = id
		}
	}
	return s
}

func (s *DenseSection) At(i int) ID { return s.data[i] }

// Set stores id at local index i.
func (s *DenseSection) Set(i int, id ID) { s.data[i] = id }

func (s *DenseSection) Uniform() bool {
	first := s.data[0]
	for _, id := range s.data[1:] {
		if id != first {
			return false
		}
	}
	return true
}

func (s *DenseSection) Encode() []byte {
	out := make([]byte, 1+SectionVolume)
	out[0] = SectionTypeDense
	for i, id := range s.data {
		out[1+i] = byte(id)
	}
	return out
}

// ParseSection reads one section from data at the given offset.
// Returns the parsed Section and the number of bytes consumed.
func ParseSection(data []byte, offset int) (Section, int, error) {
	if offset < 0 || offset >= len(data) {
		return nil, 0, fmt.Errorf("parse section: offset %d outside data length %d", offset, len(data))
	}

	sectionType := data[offset]
	offset++

	switch sectionType {
	case SectionTypeFlat:
		if offset+1 > len(data) {
			return nil, 0, fmt.Errorf("parse flat section: insufficient data at offset %d", offset)
		}
		return &FlatSection{id: ID(data[offset])}, 2, nil // 1 type + 1 id

	case SectionTypeDense:
		if offset+SectionVolume > len(data) {
			return nil, 0, fmt.Errorf("parse dense section: need %d bytes at offset %d, have %d",
				SectionVolume, offset, len(data)-offset)
		}
		s := &DenseSection{}
		for i := range SectionVolume {
			s.data[i] = ID(data[offset+i])
		}
		return s, 1 + SectionVolume, nil

	default:
		return nil, 0, fmt.Errorf("parse section: unknown type 0x%02X at offset %d", sectionType, offset-1)
	}
}
