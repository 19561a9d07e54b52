package wire

import (
	"encoding/binary"
	"fmt"

	"github.com/katalvlaran/amrcore/geom"
	"github.com/katalvlaran/amrcore/rectindex"
)

// meshKeySize is the byte size of an encoded rectindex.MeshKey:
// i0, i1, j0, j1 (int64), level (uint32).
const meshKeySize = 8*4 + 4

// EncodeMeshKey serializes k as (i0,i1,j0,j1: int64, level: uint32),
// little-endian.
func EncodeMeshKey(k rectindex.MeshKey) []byte {
	buf := make([]byte, meshKeySize)
	binary.LittleEndian.PutUint64(buf[0:8], uint64(k.Rect.I.Lo))
	binary.LittleEndian.PutUint64(buf[8:16], uint64(k.Rect.I.Hi))
	binary.LittleEndian.PutUint64(buf[16:24], uint64(k.Rect.J.Lo))
	binary.LittleEndian.PutUint64(buf[24:32], uint64(k.Rect.J.Hi))
	binary.LittleEndian.PutUint32(buf[32:36], k.Level)
	return buf
}

// DecodeMeshKey reads one MeshKey from the start of b, returning the
// number of bytes consumed.
func DecodeMeshKey(b []byte) (rectindex.MeshKey, int, error) {
	if len(b) < meshKeySize {
		return rectindex.MeshKey{}, 0, fmt.Errorf("wire: DecodeMeshKey: %w", ErrTruncated)
	}
	i0 := int64(binary.LittleEndian.Uint64(b[0:8]))
	i1 := int64(binary.LittleEndian.Uint64(b[8:16]))
	j0 := int64(binary.LittleEndian.Uint64(b[16:24]))
	j1 := int64(binary.LittleEndian.Uint64(b[24:32]))
	level := binary.LittleEndian.Uint32(b[32:36])

	key := rectindex.MeshKey{
		Rect:  rectindex.RectangleOf(geom.IndexSpace{I: geom.Range{Lo: i0, Hi: i1}, J: geom.Range{Lo: j0, Hi: j1}}),
		Level: level,
	}
	return key, meshKeySize, nil
}
