package field

import (
	"fmt"

	"github.com/katalvlaran/amrcore/geom"
)

// Patch is a uniform representation of a rectangular region of an AMR
// hierarchy: a refinement level, an index space, and a flat row-major
// array of numFields*rows*cols float64s. Index (i,j) of Space
// addresses the numFields-wide slice at offset
// ((i-i0)*(j1-j0) + (j-j0)) * numFields.
//
// Level and NumFields never change after construction; Space is
// immutable. The data buffer is uniquely owned: copying a Patch by
// value does not copy the backing array (callers that need an
// independent copy should use Extract on the full space).
type Patch struct {
	level     uint32
	space     geom.IndexSpace
	numFields uint32
	data      []float64
}

// Level returns the patch's refinement level.
func (p *Patch) Level() uint32 { return p.level }

// Space returns the patch's index space.
func (p *Patch) Space() geom.IndexSpace { return p.space }

// NumFields returns the number of fields stored per index.
func (p *Patch) NumFields() uint32 { return p.numFields }

// Data exposes the raw backing buffer for callers that need bulk
// access (e.g. the wire codec). Mutating the returned slice mutates
// the patch.
func (p *Patch) Data() []float64 { return p.data }

// HighResolutionSpace returns the patch's space scaled by 2^level: the
// common integer coordinate system patches at different levels can be
// compared through (spec.md glossary: HRIS).
func (p *Patch) HighResolutionSpace() geom.IndexSpace {
	return p.space.Scale(1 << p.level)
}

// NewZeros allocates an all-zero patch with the given shape and field
// count.
func NewZeros(level uint32, space geom.IndexSpace, numFields uint32) (*Patch, error) {
	if numFields == 0 {
		return nil, fmt.Errorf("field: NewZeros: %w", ErrBadNumFields)
	}
	return &Patch{
		level:     level,
		space:     space,
		numFields: numFields,
		data:      make([]float64, space.Len()*int64(numFields)),
	}, nil
}

// NewFromSliceFunc constructs a patch by invoking f once per index,
// with a pre-sized destination slice to write into directly. This is
// the allocation-free construction form: f never allocates, it only
// writes into out.
func NewFromSliceFunc(level uint32, space geom.IndexSpace, numFields uint32, f func(i, j int64, out []float64)) (*Patch, error) {
	p, err := NewZeros(level, space, numFields)
	if err != nil {
		return nil, err
	}
	nf := int64(numFields)
	var idx int64
	space.Iter(func(i, j int64) bool {
		f(i, j, p.data[idx*nf:(idx+1)*nf])
		idx++
		return true
	})
	return p, nil
}

// NewFromVectorFunc constructs a patch by invoking f once per index,
// where f returns a freshly allocated numFields-length slice.
// Prefer NewFromSliceFunc in hot paths to avoid the per-call
// allocation.
func NewFromVectorFunc(level uint32, space geom.IndexSpace, numFields uint32, f func(i, j int64) []float64) (*Patch, error) {
	return NewFromSliceFunc(level, space, numFields, func(i, j int64, out []float64) {
		copy(out, f(i, j))
	})
}

// NewFromScalarFunc constructs a single-field (numFields=1) patch from
// a closure returning one value per index.
func NewFromScalarFunc(level uint32, space geom.IndexSpace, f func(i, j int64) float64) (*Patch, error) {
	return NewFromSliceFunc(level, space, 1, func(i, j int64, out []float64) {
		out[0] = f(i, j)
	})
}

// GetSlice returns the numFields-wide slice at (i,j). The returned
// slice aliases the patch's backing buffer; callers must not retain it
// past the patch's lifetime if the patch is subsequently mutated
// elsewhere.
func (p *Patch) GetSlice(i, j int64) ([]float64, error) {
	off, err := p.space.RowMajorOffset(i, j)
	if err != nil {
		return nil, fmt.Errorf("field: GetSlice(%d,%d): %w", i, j, ErrOutOfRange)
	}
	nf := int64(p.numFields)
	return p.data[off*nf : (off+1)*nf], nil
}

// GetSliceMut is GetSlice but documents caller intent to mutate; it is
// the identical operation (Go slices carry no const-ness), kept as a
// distinct name to mirror spec.md's get_slice/get_slice_mut pair.
func (p *Patch) GetSliceMut(i, j int64) ([]float64, error) {
	return p.GetSlice(i, j)
}

// Select visits, in row-major order, the numFields-wide slice at each
// index of sub, which must be a subset of the patch's space. Returns
// ErrOutOfRange if sub is not a subset. visit may return false to stop
// early.
func (p *Patch) Select(sub geom.IndexSpace, visit func(i, j int64, slice []float64) bool) error {
	if sub.Intersect(p.space) != sub {
		return fmt.Errorf("field: Select(%v) on patch space %v: %w", sub, p.space, ErrOutOfRange)
	}
	var stopped bool
	sub.Iter(func(i, j int64) bool {
		slice, err := p.GetSlice(i, j)
		if err != nil {
			stopped = true
			return false
		}
		return visit(i, j, slice)
	})
	if stopped {
		return fmt.Errorf("field: Select(%v): %w", sub, ErrOutOfRange)
	}
	return nil
}

// Extract eagerly materializes a new, independently owned Patch whose
// space equals sub, copying the intersecting data. Cells of sub
// outside the patch's space fail with ErrOutOfRange.
func (p *Patch) Extract(sub geom.IndexSpace) (*Patch, error) {
	out, err := NewZeros(p.level, sub, p.numFields)
	if err != nil {
		return nil, err
	}
	err = p.Select(sub, func(i, j int64, slice []float64) bool {
		dst, _ := out.GetSliceMut(i, j) // sub == out.space by construction
		copy(dst, slice)
		return true
	})
	if err != nil {
		return nil, fmt.Errorf("field: Extract: %w", err)
	}
	return out, nil
}

// ExtractPadded materializes a new Patch covering sub, which need not
// be a subset of p's space: cells of sub outside p's space are left at
// zero, and cells inside the overlap are copied from p. This is the
// form meshing uses to build a guard-padded working copy of a patch
// before halo cells are filled in from neighbors.
func (p *Patch) ExtractPadded(sub geom.IndexSpace) (*Patch, error) {
	out, err := NewZeros(p.level, sub, p.numFields)
	if err != nil {
		return nil, err
	}
	overlap := sub.Intersect(p.space)
	if overlap.Len() == 0 {
		return out, nil
	}
	err = p.Select(overlap, func(i, j int64, slice []float64) bool {
		dst, _ := out.GetSliceMut(i, j) // overlap subset of both spaces by construction
		copy(dst, slice)
		return true
	})
	if err != nil {
		return nil, fmt.Errorf("field: ExtractPadded: %w", err)
	}
	return out, nil
}

// Map produces a new patch with the same geometry but newNumFields
// fields, computed element-wise by f, which receives the source slice
// and writes newNumFields values into dst.
func (p *Patch) Map(newNumFields uint32, f func(i, j int64, src []float64, dst []float64)) (*Patch, error) {
	out, err := NewZeros(p.level, p.space, newNumFields)
	if err != nil {
		return nil, err
	}
	if err := p.MapInto(out, f); err != nil {
		return nil, err
	}
	return out, nil
}

// MapInto is the in-place equivalent of Map: it writes into a
// pre-sized destination patch, avoiding allocation in hot loops. dst
// must share p's index space.
func (p *Patch) MapInto(dst *Patch, f func(i, j int64, src []float64, out []float64)) error {
	if dst.space != p.space {
		return fmt.Errorf("field: MapInto: src space %v dst space %v: %w", p.space, dst.space, ErrShapeMismatch)
	}
	return p.Select(p.space, func(i, j int64, src []float64) bool {
		out, _ := dst.GetSliceMut(i, j)
		f(i, j, src, out)
		return true
	})
}

// Sample reads the patch's value for index (i,j) at the requested
// sampling level into out (len(out) must equal NumFields). If level
// equals the patch level, it is the stored slice. If coarser (level <
// p.level), it recurses on the corresponding coarser child index. If
// finer (level > p.level), it averages the four subcells of the next
// finer level: piecewise-constant prolongation's inverse.
func (p *Patch) Sample(level uint32, i, j int64, out []float64) error {
	switch {
	case level == p.level:
		slice, err := p.GetSlice(i, j)
		if err != nil {
			return err
		}
		copy(out, slice)
		return nil

	case level < p.level:
		return p.Sample(level+1, i/2, j/2, out)

	default:
		nf := int(p.numFields)
		corners := [4][2]int64{
			{i*2 + 0, j*2 + 0},
			{i*2 + 0, j*2 + 1},
			{i*2 + 1, j*2 + 0},
			{i*2 + 1, j*2 + 1},
		}
		tmp := make([]float64, nf)
		for k := range out {
			out[k] = 0
		}
		for _, c := range corners {
			if err := p.Sample(level-1, c[0], c[1], tmp); err != nil {
				return err
			}
			for k := 0; k < nf; k++ {
				out[k] += 0.25 * tmp[k]
			}
		}
		return nil
	}
}
