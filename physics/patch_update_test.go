package physics

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/amrcore/field"
	"github.com/katalvlaran/amrcore/geom"
	"github.com/katalvlaran/amrcore/rectindex"
)

func uniformState(out []float64) {
	out[0], out[1], out[2], out[3] = 1, 0, 0, 1
}

func TestPatchUpdate_UniformStateIsUnchangedByOneStep(t *testing.T) {
	space := geom.MustIndexSpace(0, 4, 0, 4)
	primitive, err := field.NewFromSliceFunc(0, space, 4, func(_, _ int64, out []float64) {
		uniformState(out)
	})
	require.NoError(t, err)

	idx := rectindex.NewPatchIndex()
	require.NoError(t, idx.AddPatch(primitive))
	edges := rectindex.BuildMeshAdjacency(idx, DefaultNumGuard)

	mesh := Mesh{AreaI: [2]float64{0, 4}, AreaJ: [2]float64{0, 4}, SizeI: 4, SizeJ: 4}
	pu, err := NewPatchUpdate(primitive, mesh, 0.01, edges,
		WithBoundaryValue(func(_, _ int64, out []float64) { uniformState(out) }),
	)
	require.NoError(t, err)
	require.Equal(t, 0, pu.incomingCount)
	require.Empty(t, pu.outgoingEdges)

	pu.Value()

	result, err := pu.Primitive()
	require.NoError(t, err)
	result.Space().Iter(func(i, j int64) bool {
		slice, err := result.GetSlice(i, j)
		require.NoError(t, err)
		require.InDelta(t, 1.0, slice[0], 1e-9)
		require.InDelta(t, 0.0, slice[1], 1e-9)
		require.InDelta(t, 0.0, slice[2], 1e-9)
		require.InDelta(t, 1.0, slice[3], 1e-9)
		return true
	})
}

func TestPatchUpdate_KeyMatchesHighResolutionFootprint(t *testing.T) {
	space := geom.MustIndexSpace(0, 2, 0, 2)
	primitive, err := field.NewFromSliceFunc(1, space, 4, func(_, _ int64, out []float64) { uniformState(out) })
	require.NoError(t, err)

	idx := rectindex.NewPatchIndex()
	require.NoError(t, idx.AddPatch(primitive))
	edges := rectindex.BuildMeshAdjacency(idx, DefaultNumGuard)

	mesh := Mesh{AreaI: [2]float64{0, 2}, AreaJ: [2]float64{0, 2}, SizeI: 2, SizeJ: 2}
	pu, err := NewPatchUpdate(primitive, mesh, 0.01, edges)
	require.NoError(t, err)

	want := rectindex.MeshKey{Rect: rectindex.RectangleOf(primitive.HighResolutionSpace()), Level: 1}
	require.Equal(t, want, pu.Key())
}
