package rectindex

import (
	"github.com/katalvlaran/amrcore/field"
	"github.com/katalvlaran/amrcore/geom"
)

// MeshKey identifies a patch in a per-stage dependency graph: its
// footprint (in high-resolution coordinates) paired with its
// refinement level. Comparable, so it serves directly as an
// AdjacencyList/map key (spec.md §9 design note: the routing key must
// be hashable/equatable, never raw floats).
type MeshKey struct {
	Rect  Rectangle
	Level uint32
}

// PatchQuery is implemented by any container that can answer "which
// patch, if any, covers this high-resolution point". PatchSlice and
// PatchIndex are the two implementations this package provides;
// ExtendPatchMut is its consumer.
type PatchQuery interface {
	PatchContainingPoint(i, j int64) (*field.Patch, bool)
}

// PatchSlice is the simplest PatchQuery: linear scan over an unindexed
// collection of patches. Useful for small neighbor sets or tests.
type PatchSlice []*field.Patch

// PatchContainingPoint implements PatchQuery by scanning s.
func (s PatchSlice) PatchContainingPoint(i, j int64) (*field.Patch, bool) {
	for _, p := range s {
		if p.HighResolutionSpace().Contains(i, j) {
			return p, true
		}
	}
	return nil, false
}

// PatchIndex is a RectangleMap of patches keyed by their
// high-resolution footprint, giving PatchQuery in O(log n) instead of
// PatchSlice's O(n) scan.
type PatchIndex struct {
	*RectangleMap[*field.Patch]
}

// NewPatchIndex constructs an empty PatchIndex.
func NewPatchIndex() *PatchIndex {
	return &PatchIndex{RectangleMap: New[*field.Patch]()}
}

// AddPatch indexes patch by its high-resolution footprint.
func (idx *PatchIndex) AddPatch(patch *field.Patch) error {
	return idx.Insert(RectangleOf(patch.HighResolutionSpace()), patch)
}

// PatchContainingPoint implements PatchQuery via a point query; when
// several indexed patches overlap the point (callers should not
// normally build an index with overlapping footprints) the first
// visited in stable order wins.
func (idx *PatchIndex) PatchContainingPoint(i, j int64) (*field.Patch, bool) {
	var found *field.Patch
	idx.QueryPoint(i, j, func(rect Rectangle, p *field.Patch) bool {
		found = p
		return false
	})
	return found, found != nil
}

// BuildMeshAdjacency derives the per-stage dependency graph from idx:
// for every indexed patch q, its footprint is expanded by numGuard on
// all sides and every other indexed patch a overlapping the expanded
// footprint becomes a neighbor; the edge (a,level_a) -> (q,level_q) is
// inserted, giving q both its outgoing and incoming guard-zone
// dependencies.
func BuildMeshAdjacency(idx *PatchIndex, numGuard int64) *AdjacencyList[MeshKey] {
	edges := NewAdjacencyList[MeshKey]()
	idx.Iter(func(qRect Rectangle, q *field.Patch) bool {
		qKey := MeshKey{Rect: qRect, Level: q.Level()}
		expanded := qRect.ExtendAll(numGuard)
		idx.QueryRect(expanded, func(aRect Rectangle, a *field.Patch) bool {
			if aRect != qRect {
				aKey := MeshKey{Rect: aRect, Level: a.Level()}
				edges.Insert(aKey, qKey)
			}
			return true
		})
		return true
	})
	return edges
}

// ExtendPatchMut fills patch's halo cells — the four L-shaped margins
// between patch.Space() (guard-padded) and validSpace (the unpadded
// interior) — by copying from whichever neighbor in neighbors covers
// each halo cell, or by calling boundaryValue when no neighbor covers
// it. Patches at differing refinement levels sharing neighbors are
// not supported: callers must ensure all patches queried through
// neighbors share patch's level.
func ExtendPatchMut(patch *field.Patch, validSpace geom.IndexSpace, boundaryValue func(i, j int64, out []float64), neighbors PatchQuery) error {
	space := patch.Space()
	i0, j0 := validSpace.Start()
	i1, j1 := validSpace.End()
	x0, y0 := space.Start()
	x1, y1 := space.End()

	li, err := geom.NewIndexSpace(x0, i0, y0, y1)
	if err != nil {
		return err
	}
	lj, err := geom.NewIndexSpace(i0, i1, y0, j0)
	if err != nil {
		return err
	}
	ri, err := geom.NewIndexSpace(i1, x1, y0, y1)
	if err != nil {
		return err
	}
	rj, err := geom.NewIndexSpace(i0, i1, j1, y1)
	if err != nil {
		return err
	}

	scale := int64(1) << patch.Level()
	for _, margin := range []geom.IndexSpace{li, lj, ri, rj} {
		var visitErr error
		margin.Iter(func(i, j int64) bool {
			out, err := patch.GetSliceMut(i, j)
			if err != nil {
				visitErr = err
				return false
			}
			if neigh, ok := neighbors.PatchContainingPoint(i*scale, j*scale); ok {
				src, err := neigh.GetSlice(i, j)
				if err != nil {
					visitErr = err
					return false
				}
				copy(out, src)
			} else {
				boundaryValue(i, j, out)
			}
			return true
		})
		if visitErr != nil {
			return visitErr
		}
	}
	return nil
}
