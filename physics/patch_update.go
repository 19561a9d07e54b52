package physics

import (
	"github.com/katalvlaran/amrcore/automaton"
	"github.com/katalvlaran/amrcore/field"
	"github.com/katalvlaran/amrcore/geom"
	"github.com/katalvlaran/amrcore/rectindex"
)

// DefaultNumGuard is the number of guard zones PatchUpdate extends a
// patch by on every side before computing fluxes.
const DefaultNumGuard int64 = 1

// DefaultGammaLawIndex is the adiabatic index of the default gamma-law
// equation of state (5/3, a monatomic ideal gas).
const DefaultGammaLawIndex float64 = 5.0 / 3.0

// BoundaryFunc fills the numFields-wide slice out with a boundary
// condition value for a halo cell at (i,j) that has no neighbor patch
// covering it.
type BoundaryFunc func(i, j int64, out []float64)

func zeroBoundary(_, _ int64, out []float64) {
	for k := range out {
		out[k] = 0
	}
}

// Option configures a PatchUpdate at construction.
type Option func(*PatchUpdate)

// WithBoundaryValue overrides the domain-boundary fill function.
// Defaults to filling zeros.
func WithBoundaryValue(f BoundaryFunc) Option {
	return func(p *PatchUpdate) { p.boundaryValue = f }
}

// WithGammaLawIndex overrides the equation-of-state adiabatic index.
// Defaults to DefaultGammaLawIndex.
func WithGammaLawIndex(gamma float64) Option {
	return func(p *PatchUpdate) { p.gammaLawIndex = gamma }
}

// WithNumGuard overrides the guard-zone width. Defaults to
// DefaultNumGuard.
func WithNumGuard(numGuard int64) Option {
	return func(p *PatchUpdate) { p.numGuard = numGuard }
}

// PatchUpdate is the reference automaton for one explicit first-order
// finite-volume update of the 2D Euler equations on a single patch: it
// extends its primitive state into a guard-padded working copy,
// exchanges that copy's edge zones with neighbors over one stage,
// computes HLLE interface fluxes on both axes, and applies the
// conservative update.
type PatchUpdate struct {
	conserved          *field.Patch
	extendedPrimitive  *field.Patch
	fluxI, fluxJ       *field.Patch
	incomingCount      int
	indexSpace         geom.IndexSpace
	level              uint32
	mesh               Mesh
	neighborPatches    []*field.Patch
	outgoingEdges      []rectindex.MeshKey
	timeStepSize       float64
	boundaryValue      BoundaryFunc
	gammaLawIndex      float64
	numGuard           int64
}

var _ automaton.Automaton[rectindex.MeshKey, *field.Patch, *PatchUpdate] = (*PatchUpdate)(nil)

// NewPatchUpdate builds a PatchUpdate for one patch's primitive state,
// deriving its fan-in count and outbound edge list from edges (the
// per-stage dependency graph built by rectindex.BuildMeshAdjacency).
func NewPatchUpdate(primitive *field.Patch, mesh Mesh, timeStepSize float64, edges *rectindex.AdjacencyList[rectindex.MeshKey], opts ...Option) (*PatchUpdate, error) {
	p := &PatchUpdate{
		indexSpace:    primitive.Space(),
		level:         primitive.Level(),
		mesh:          mesh,
		timeStepSize:  timeStepSize,
		boundaryValue: zeroBoundary,
		gammaLawIndex: DefaultGammaLawIndex,
		numGuard:      DefaultNumGuard,
	}
	for _, opt := range opts {
		opt(p)
	}

	key := rectindex.MeshKey{Rect: rectindex.RectangleOf(primitive.HighResolutionSpace()), Level: p.level}

	conserved, err := primitive.Map(primitive.NumFields(), func(_, _ int64, src, dst []float64) {
		PrimitiveFromSlice(src).ToConserved(p.gammaLawIndex).WriteToSlice(dst)
	})
	if err != nil {
		return nil, err
	}
	p.conserved = conserved

	extended, err := primitive.ExtractPadded(p.indexSpace.ExtendAll(p.numGuard))
	if err != nil {
		return nil, err
	}
	p.extendedPrimitive = extended

	fluxI, err := field.NewZeros(p.level, p.indexSpace.ExtendUpper(1, geom.AxisI), primitive.NumFields())
	if err != nil {
		return nil, err
	}
	p.fluxI = fluxI

	fluxJ, err := field.NewZeros(p.level, p.indexSpace.ExtendUpper(1, geom.AxisJ), primitive.NumFields())
	if err != nil {
		return nil, err
	}
	p.fluxJ = fluxJ

	p.incomingCount = len(edges.Incoming(key))
	p.outgoingEdges = edges.Outgoing(key)

	return p, nil
}

// Key returns the patch's high-resolution footprint and level, the
// identifier it is addressed by within its stage.
func (p *PatchUpdate) Key() rectindex.MeshKey {
	return rectindex.MeshKey{Rect: rectindex.RectangleOf(p.indexSpace.Scale(1 << p.level)), Level: p.level}
}

// Messages returns, for each outgoing edge, the slab of this patch's
// extended primitive state that the downstream neighbor needs for its
// own guard-zone fill.
func (p *PatchUpdate) Messages() []automaton.Outbound[rectindex.MeshKey, *field.Patch] {
	out := make([]automaton.Outbound[rectindex.MeshKey, *field.Patch], 0, len(p.outgoingEdges))
	for _, edge := range p.outgoingEdges {
		overlap := edge.Rect.IndexSpace().
			ExtendAll(p.numGuard * (1 << edge.Level)).
			CoarsenBy(1 << p.level).
			Intersect(p.indexSpace)
		slab, err := p.extendedPrimitive.Extract(overlap)
		if err != nil {
			panic(err) // overlap is a subset of indexSpace, itself a subset of extendedPrimitive's space
		}
		out = append(out, automaton.Outbound[rectindex.MeshKey, *field.Patch]{Dest: edge, Message: slab})
	}
	return out
}

// Receive accepts one neighbor's slab and reports whether every
// expected neighbor slab has now arrived.
func (p *PatchUpdate) Receive(slab *field.Patch) automaton.Status {
	p.neighborPatches = append(p.neighborPatches, slab)
	return automaton.EligibleIf(len(p.neighborPatches) == p.incomingCount)
}

// Value advances the patch by one explicit time step: fill the
// guard-padded primitive copy from neighbor slabs (or the boundary
// function), compute HLLE fluxes on both axes, apply the conservative
// update, and recover the new primitive state.
func (p *PatchUpdate) Value() *PatchUpdate {
	err := rectindex.ExtendPatchMut(p.extendedPrimitive, p.indexSpace, p.boundaryValue, rectindex.PatchSlice(p.neighborPatches))
	if err != nil {
		panic(err)
	}
	p.neighborPatches = p.neighborPatches[:0]

	if err := computeFlux(p.extendedPrimitive, geom.AxisI, p.fluxI, p.gammaLawIndex); err != nil {
		panic(err)
	}
	if err := computeFlux(p.extendedPrimitive, geom.AxisJ, p.fluxJ, p.gammaLawIndex); err != nil {
		panic(err)
	}

	dx, dy := p.mesh.CellSpacing()
	dt := p.timeStepSize
	nf := int(p.conserved.NumFields())

	p.indexSpace.Iter(func(i, j int64) bool {
		fim, _ := p.fluxI.GetSlice(i, j)
		fip, _ := p.fluxI.GetSlice(i+1, j)
		fjm, _ := p.fluxJ.GetSlice(i, j)
		fjp, _ := p.fluxJ.GetSlice(i, j+1)
		u, _ := p.conserved.GetSliceMut(i, j)
		for n := 0; n < nf; n++ {
			u[n] -= (fip[n]-fim[n])*dt/dx + (fjp[n]-fjm[n])*dt/dy
		}
		return true
	})

	p.conserved.Select(p.indexSpace, func(i, j int64, src []float64) bool {
		cons, err := ConservedFromSlice(src).ToPrimitive(p.gammaLawIndex)
		if err != nil {
			panic(err)
		}
		dst, _ := p.extendedPrimitive.GetSliceMut(i, j)
		cons.WriteToSlice(dst)
		return true
	})

	return p
}

// Primitive returns the patch's current primitive state restricted to
// its own (unpadded) index space.
func (p *PatchUpdate) Primitive() (*field.Patch, error) {
	return p.extendedPrimitive.Extract(p.indexSpace)
}

func computeFlux(extended *field.Patch, axis geom.Axis, flux *field.Patch, gammaLawIndex float64) error {
	var visitErr error
	flux.Space().Iter(func(i, j int64) bool {
		li, lj := i, j
		switch axis {
		case geom.AxisI:
			li = i - 1
		default:
			lj = j - 1
		}
		plSlice, err := extended.GetSlice(li, lj)
		if err != nil {
			visitErr = err
			return false
		}
		prSlice, err := extended.GetSlice(i, j)
		if err != nil {
			visitErr = err
			return false
		}
		out, err := flux.GetSliceMut(i, j)
		if err != nil {
			visitErr = err
			return false
		}
		RiemannHLLE(PrimitiveFromSlice(plSlice), PrimitiveFromSlice(prSlice), axis, gammaLawIndex).WriteToSlice(out)
		return true
	})
	return visitErr
}
