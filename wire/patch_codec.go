package wire

import (
	"encoding/binary"
	"fmt"
	"math"

	"github.com/katalvlaran/amrcore/field"
	"github.com/katalvlaran/amrcore/geom"
)

// patchHeaderSize is the byte size of a patch's fixed-width prefix:
// i0, i1, j0, j1 (int64), level, num_fields (uint32).
const patchHeaderSize = 8*4 + 4 + 4

// EncodePatch serializes p as
// (i0,i1,j0,j1: int64, level: uint32, num_fields: uint32, data: []float64),
// all little-endian.
func EncodePatch(p *field.Patch) []byte {
	space := p.Space()
	data := p.Data()
	buf := make([]byte, patchHeaderSize+len(data)*8)

	binary.LittleEndian.PutUint64(buf[0:8], uint64(space.I.Lo))
	binary.LittleEndian.PutUint64(buf[8:16], uint64(space.I.Hi))
	binary.LittleEndian.PutUint64(buf[16:24], uint64(space.J.Lo))
	binary.LittleEndian.PutUint64(buf[24:32], uint64(space.J.Hi))
	binary.LittleEndian.PutUint32(buf[32:36], p.Level())
	binary.LittleEndian.PutUint32(buf[36:40], p.NumFields())

	for i, v := range data {
		binary.LittleEndian.PutUint64(buf[patchHeaderSize+i*8:patchHeaderSize+i*8+8], math.Float64bits(v))
	}
	return buf
}

// DecodePatch reads one patch from the start of b, returning the
// number of bytes consumed so callers can decode a trailing payload
// that follows it.
func DecodePatch(b []byte) (*field.Patch, int, error) {
	if len(b) < patchHeaderSize {
		return nil, 0, fmt.Errorf("wire: DecodePatch: header: %w", ErrTruncated)
	}
	i0 := int64(binary.LittleEndian.Uint64(b[0:8]))
	i1 := int64(binary.LittleEndian.Uint64(b[8:16]))
	j0 := int64(binary.LittleEndian.Uint64(b[16:24]))
	j1 := int64(binary.LittleEndian.Uint64(b[24:32]))
	level := binary.LittleEndian.Uint32(b[32:36])
	numFields := binary.LittleEndian.Uint32(b[36:40])

	space, err := geom.NewIndexSpace(i0, i1, j0, j1)
	if err != nil {
		return nil, 0, fmt.Errorf("wire: DecodePatch: %w", err)
	}

	numDoubles := space.Len() * int64(numFields)
	need := patchHeaderSize + int(numDoubles)*8
	if len(b) < need {
		return nil, 0, fmt.Errorf("wire: DecodePatch: data: %w", ErrTruncated)
	}

	var idx int64
	patch, err := field.NewFromSliceFunc(level, space, numFields, func(_, _ int64, out []float64) {
		for k := range out {
			off := patchHeaderSize + int(idx)*8
			out[k] = math.Float64frombits(binary.LittleEndian.Uint64(b[off : off+8]))
			idx++
		}
	})
	if err != nil {
		return nil, 0, fmt.Errorf("wire: DecodePatch: %w", err)
	}
	return patch, need, nil
}
