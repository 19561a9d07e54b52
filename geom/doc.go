// Package geom defines IndexSpace, a half-open 2D integer rectangle used
// throughout amrcore as the common coordinate system for patches, the
// rectangle-indexed spatial map, and the mesh's high-resolution index
// space (HRIS).
//
// An IndexSpace never mutates: every operation (ExtendAll, Translate,
// CoarsenBy, Intersect, ...) returns a new value. Coordinates are
// int64 to stay consistent across refinement levels, where the
// high-resolution rectangle of a level-L patch is its space scaled by
// 2^L.
package geom
