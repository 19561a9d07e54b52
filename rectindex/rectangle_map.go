package rectindex

import "github.com/katalvlaran/amrcore/interval"

// RectangleMap is an associative map keyed by Rectangle, composed of
// two interval.IntervalMap layers: the outer map keyed by the I-axis
// range, holding an inner map keyed by the J-axis range. Each inserted
// rectangle becomes one outer node (a singleton inner map); duplicate
// I-ranges coexist as separate outer nodes, so QueryPoint/QueryRect
// naturally visit every matching rectangle without requiring the
// layers to merge entries sharing an I-range.
type RectangleMap[V any] struct {
	outer *interval.IntervalMap[*interval.IntervalMap[V]]
	size  int
}

// New constructs an empty RectangleMap.
func New[V any]() *RectangleMap[V] {
	return &RectangleMap[V]{outer: interval.New[*interval.IntervalMap[V]]()}
}

// Len returns the number of entries inserted.
func (m *RectangleMap[V]) Len() int { return m.size }

// Insert adds (rect, value). Returns an error only if rect's axes are
// inverted (lo > hi on either axis).
func (m *RectangleMap[V]) Insert(rect Rectangle, value V) error {
	inner := interval.New[V]()
	if err := inner.Insert(rect.J.Lo, rect.J.Hi, value); err != nil {
		return err
	}
	if err := m.outer.Insert(rect.I.Lo, rect.I.Hi, inner); err != nil {
		return err
	}
	m.size++
	return nil
}

// QueryPoint visits every entry whose rectangle contains (i,j).
func (m *RectangleMap[V]) QueryPoint(i, j int64, visit func(rect Rectangle, value V) bool) {
	stop := false
	m.outer.QueryPoint(i, func(ilo, ihi int64, inner *interval.IntervalMap[V]) bool {
		if stop {
			return false
		}
		inner.QueryPoint(j, func(jlo, jhi int64, value V) bool {
			rect := Rectangle{I: rangeOf(ilo, ihi), J: rangeOf(jlo, jhi)}
			if !visit(rect, value) {
				stop = true
				return false
			}
			return true
		})
		return !stop
	})
}

// QueryRect visits every entry whose rectangle strictly overlaps r
// (touching endpoints do not count, matching half-open range overlap).
func (m *RectangleMap[V]) QueryRect(r Rectangle, visit func(rect Rectangle, value V) bool) {
	stop := false
	m.outer.QueryRange(r.I.Lo, r.I.Hi, func(ilo, ihi int64, inner *interval.IntervalMap[V]) bool {
		if stop {
			return false
		}
		inner.QueryRange(r.J.Lo, r.J.Hi, func(jlo, jhi int64, value V) bool {
			rect := Rectangle{I: rangeOf(ilo, ihi), J: rangeOf(jlo, jhi)}
			if !visit(rect, value) {
				stop = true
				return false
			}
			return true
		})
		return !stop
	})
}

// Iter visits every entry in a stable order (outer I-ascending, inner
// J-ascending within each outer node).
func (m *RectangleMap[V]) Iter(visit func(rect Rectangle, value V) bool) {
	stop := false
	m.outer.Iter(func(ilo, ihi int64, inner *interval.IntervalMap[V]) bool {
		if stop {
			return false
		}
		inner.Iter(func(jlo, jhi int64, value V) bool {
			rect := Rectangle{I: rangeOf(ilo, ihi), J: rangeOf(jlo, jhi)}
			if !visit(rect, value) {
				stop = true
				return false
			}
			return true
		})
		return !stop
	})
}
