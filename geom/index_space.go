package geom

import "fmt"

// Axis selects one of the two Cartesian axes of an IndexSpace.
type Axis int

const (
	// AxisI is the first (row) axis.
	AxisI Axis = iota
	// AxisJ is the second (column) axis.
	AxisJ
)

// Range is a half-open integer interval [Lo, Hi).
type Range struct {
	Lo, Hi int64
}

// Len returns Hi - Lo.
func (r Range) Len() int64 { return r.Hi - r.Lo }

// Contains reports whether v lies in [Lo, Hi).
func (r Range) Contains(v int64) bool { return v >= r.Lo && v < r.Hi }

// IndexSpace is a rectangular region of a discrete 2D index space:
// the Cartesian product of two half-open integer ranges. The zero value
// is the empty space [0,0)x[0,0); use NewIndexSpace to build others.
//
// Invariant: I.Lo <= I.Hi and J.Lo <= J.Hi (an empty space, Lo == Hi,
// is permitted and contains no indices).
type IndexSpace struct {
	I, J Range
}

// NewIndexSpace constructs an IndexSpace from two half-open ranges.
// Returns ErrEmptySpace if either range has negative extent.
func NewIndexSpace(i0, i1, j0, j1 int64) (IndexSpace, error) {
	if i0 > i1 || j0 > j1 {
		return IndexSpace{}, fmt.Errorf("geom: NewIndexSpace(%d,%d,%d,%d): %w", i0, i1, j0, j1, ErrEmptySpace)
	}
	return IndexSpace{I: Range{i0, i1}, J: Range{j0, j1}}, nil
}

// MustIndexSpace is NewIndexSpace but panics on error; intended for
// constant/test construction where the bounds are known valid.
func MustIndexSpace(i0, i1, j0, j1 int64) IndexSpace {
	s, err := NewIndexSpace(i0, i1, j0, j1)
	if err != nil {
		panic(err)
	}
	return s
}

// Dim returns the number of indices on each axis.
func (s IndexSpace) Dim() (rows, cols int64) {
	return s.I.Len(), s.J.Len()
}

// Len returns the total number of indices in the space.
func (s IndexSpace) Len() int64 {
	return s.I.Len() * s.J.Len()
}

// Start returns the minimum (inclusive) index.
func (s IndexSpace) Start() (i, j int64) { return s.I.Lo, s.J.Lo }

// End returns the maximum (exclusive) index.
func (s IndexSpace) End() (i, j int64) { return s.I.Hi, s.J.Hi }

// Contains reports whether (i,j) lies within the space.
func (s IndexSpace) Contains(i, j int64) bool {
	return s.I.Contains(i) && s.J.Contains(j)
}

// ExtendAll grows (or, for negative delta, trims) the space
// symmetrically on every side by delta.
func (s IndexSpace) ExtendAll(delta int64) IndexSpace {
	return IndexSpace{
		I: Range{s.I.Lo - delta, s.I.Hi + delta},
		J: Range{s.J.Lo - delta, s.J.Hi + delta},
	}
}

// TrimAll trims the space symmetrically by delta; equivalent to
// ExtendAll(-delta).
func (s IndexSpace) TrimAll(delta int64) IndexSpace {
	return s.ExtendAll(-delta)
}

// ExtendUpper adds delta to the upper bound of one axis only.
func (s IndexSpace) ExtendUpper(delta int64, axis Axis) IndexSpace {
	switch axis {
	case AxisI:
		return IndexSpace{I: Range{s.I.Lo, s.I.Hi + delta}, J: s.J}
	default:
		return IndexSpace{I: s.I, J: Range{s.J.Lo, s.J.Hi + delta}}
	}
}

// TrimLower adds delta to the lower bound of one axis only (positive
// delta shrinks the space from below).
func (s IndexSpace) TrimLower(delta int64, axis Axis) IndexSpace {
	switch axis {
	case AxisI:
		return IndexSpace{I: Range{s.I.Lo + delta, s.I.Hi}, J: s.J}
	default:
		return IndexSpace{I: s.I, J: Range{s.J.Lo + delta, s.J.Hi}}
	}
}

// Translate shifts one axis by delta.
func (s IndexSpace) Translate(delta int64, axis Axis) IndexSpace {
	switch axis {
	case AxisI:
		return IndexSpace{I: Range{s.I.Lo + delta, s.I.Hi + delta}, J: s.J}
	default:
		return IndexSpace{I: s.I, J: Range{s.J.Lo + delta, s.J.Hi + delta}}
	}
}

// Scale multiplies both bounds on both axes by factor. Used to map a
// patch's space onto its high-resolution index space (factor = 2^level).
func (s IndexSpace) Scale(factor int64) IndexSpace {
	return IndexSpace{
		I: Range{s.I.Lo * factor, s.I.Hi * factor},
		J: Range{s.J.Lo * factor, s.J.Hi * factor},
	}
}

// CoarsenBy integer-divides both bounds by k using floor semantics
// (rounding toward negative infinity), so that repeated coarsening by
// the same k is stable regardless of sign.
func (s IndexSpace) CoarsenBy(k int64) IndexSpace {
	return IndexSpace{
		I: Range{floorDiv(s.I.Lo, k), floorDiv(s.I.Hi, k)},
		J: Range{floorDiv(s.J.Lo, k), floorDiv(s.J.Hi, k)},
	}
}

func floorDiv(a, b int64) int64 {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}

// Intersect returns the bounding half-open rectangle common to s and
// other. If the two spaces are disjoint on either axis, the result is
// an empty IndexSpace (Lo == Hi on the disjoint axis); callers should
// check Len() == 0.
func (s IndexSpace) Intersect(other IndexSpace) IndexSpace {
	i0, i1 := maxI64(s.I.Lo, other.I.Lo), minI64(s.I.Hi, other.I.Hi)
	j0, j1 := maxI64(s.J.Lo, other.J.Lo), minI64(s.J.Hi, other.J.Hi)
	if i1 < i0 {
		i1 = i0
	}
	if j1 < j0 {
		j1 = j0
	}
	return IndexSpace{I: Range{i0, i1}, J: Range{j0, j1}}
}

func maxI64(a, b int64) int64 {
	if a > b {
		return a
	}
	return b
}

func minI64(a, b int64) int64 {
	if a < b {
		return a
	}
	return b
}

// RowMajorOffset returns the linear offset of (i,j) in a row-major
// buffer aligned with the start of this space: (i-i0)*cols + (j-j0).
// Out-of-range indices fail fast.
func (s IndexSpace) RowMajorOffset(i, j int64) (int64, error) {
	if !s.Contains(i, j) {
		return 0, fmt.Errorf("geom: RowMajorOffset(%d,%d) on %v: %w", i, j, s, ErrOutOfRange)
	}
	_, cols := s.Dim()
	return (i-s.I.Lo)*cols + (j - s.J.Lo), nil
}

// Iter returns the sequence of (i,j) indices in row-major order (i
// outer, j inner), calling visit for each. Iteration stops early if
// visit returns false.
func (s IndexSpace) Iter(visit func(i, j int64) bool) {
	for i := s.I.Lo; i < s.I.Hi; i++ {
		for j := s.J.Lo; j < s.J.Hi; j++ {
			if !visit(i, j) {
				return
			}
		}
	}
}

// String renders the space as "[i0,i1)x[j0,j1)".
func (s IndexSpace) String() string {
	return fmt.Sprintf("[%d,%d)x[%d,%d)", s.I.Lo, s.I.Hi, s.J.Lo, s.J.Hi)
}
