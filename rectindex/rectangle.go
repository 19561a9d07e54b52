package rectindex

import "github.com/katalvlaran/amrcore/geom"

// Rectangle is a pair of half-open integer ranges: the first-axis
// range and the second-axis range. It is the hashable, comparable
// (struct-of-int64s) key RectangleMap and AdjacencyList use, distinct
// from geom.IndexSpace only in intent (a key, not a buffer shape).
type Rectangle struct {
	I, J geom.Range
}

// RectangleOf projects an IndexSpace's bounds into a Rectangle key.
func RectangleOf(space geom.IndexSpace) Rectangle {
	return Rectangle{I: space.I, J: space.J}
}

// IndexSpace converts the Rectangle back to a geom.IndexSpace.
func (r Rectangle) IndexSpace() geom.IndexSpace {
	return geom.IndexSpace{I: r.I, J: r.J}
}

// ExtendAll returns the rectangle grown symmetrically by delta on
// every side, mirroring geom.IndexSpace.ExtendAll.
func (r Rectangle) ExtendAll(delta int64) Rectangle {
	return RectangleOf(r.IndexSpace().ExtendAll(delta))
}

func rangeOf(lo, hi int64) geom.Range {
	return geom.Range{Lo: lo, Hi: hi}
}
