package field

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/amrcore/geom"
)

func TestNewZeros_BadNumFields(t *testing.T) {
	_, err := NewZeros(0, geom.MustIndexSpace(0, 2, 0, 2), 0)
	require.ErrorIs(t, err, ErrBadNumFields)
}

func TestNewFromScalarFunc_RoundTrip(t *testing.T) {
	space := geom.MustIndexSpace(0, 3, 0, 3)
	p, err := NewFromScalarFunc(0, space, func(i, j int64) float64 {
		return float64(i*10 + j)
	})
	require.NoError(t, err)

	slice, err := p.GetSlice(2, 1)
	require.NoError(t, err)
	require.Equal(t, []float64{21}, slice)
}

func TestNewFromVectorFunc(t *testing.T) {
	space := geom.MustIndexSpace(0, 2, 0, 2)
	p, err := NewFromVectorFunc(1, space, 2, func(i, j int64) []float64 {
		return []float64{float64(i), float64(j)}
	})
	require.NoError(t, err)
	require.EqualValues(t, 1, p.Level())

	slice, err := p.GetSlice(1, 0)
	require.NoError(t, err)
	require.Equal(t, []float64{1, 0}, slice)
}

func TestGetSlice_OutOfRange(t *testing.T) {
	p, err := NewZeros(0, geom.MustIndexSpace(0, 2, 0, 2), 1)
	require.NoError(t, err)

	_, err = p.GetSlice(5, 5)
	require.ErrorIs(t, err, ErrOutOfRange)
}

func TestSelect_RejectsNonSubset(t *testing.T) {
	p, err := NewZeros(0, geom.MustIndexSpace(0, 2, 0, 2), 1)
	require.NoError(t, err)

	err = p.Select(geom.MustIndexSpace(0, 5, 0, 5), func(i, j int64, slice []float64) bool { return true })
	require.ErrorIs(t, err, ErrOutOfRange)
}

func TestExtract_CopiesIndependentBuffer(t *testing.T) {
	space := geom.MustIndexSpace(0, 4, 0, 4)
	p, err := NewFromScalarFunc(0, space, func(i, j int64) float64 { return float64(i + j) })
	require.NoError(t, err)

	sub := geom.MustIndexSpace(1, 3, 1, 3)
	out, err := p.Extract(sub)
	require.NoError(t, err)
	require.Equal(t, sub, out.Space())

	slice, err := out.GetSlice(1, 1)
	require.NoError(t, err)
	require.Equal(t, []float64{2}, slice)

	// Mutating the extracted copy must not alias the source.
	mut, err := out.GetSliceMut(1, 1)
	require.NoError(t, err)
	mut[0] = 999
	orig, err := p.GetSlice(1, 1)
	require.NoError(t, err)
	require.NotEqual(t, mut[0], orig[0])
}

func TestMap_ProducesNewFieldCount(t *testing.T) {
	space := geom.MustIndexSpace(0, 2, 0, 2)
	p, err := NewFromVectorFunc(0, space, 2, func(i, j int64) []float64 {
		return []float64{float64(i), float64(j)}
	})
	require.NoError(t, err)

	summed, err := p.Map(1, func(i, j int64, src, dst []float64) {
		dst[0] = src[0] + src[1]
	})
	require.NoError(t, err)
	require.EqualValues(t, 1, summed.NumFields())

	slice, err := summed.GetSlice(1, 1)
	require.NoError(t, err)
	require.Equal(t, []float64{2}, slice)
}

func TestMapInto_RejectsShapeMismatch(t *testing.T) {
	p, err := NewZeros(0, geom.MustIndexSpace(0, 2, 0, 2), 1)
	require.NoError(t, err)
	dst, err := NewZeros(0, geom.MustIndexSpace(0, 3, 0, 3), 1)
	require.NoError(t, err)

	err = p.MapInto(dst, func(i, j int64, src, out []float64) {})
	require.ErrorIs(t, err, ErrShapeMismatch)
}

func TestSample_SameLevel(t *testing.T) {
	space := geom.MustIndexSpace(0, 4, 0, 4)
	p, err := NewFromScalarFunc(2, space, func(i, j int64) float64 { return float64(i*4 + j) })
	require.NoError(t, err)

	out := make([]float64, 1)
	require.NoError(t, p.Sample(2, 1, 2, out))
	require.Equal(t, []float64{6}, out)
}

func TestSample_Coarser(t *testing.T) {
	space := geom.MustIndexSpace(0, 4, 0, 4)
	p, err := NewFromScalarFunc(1, space, func(i, j int64) float64 { return float64(i*4 + j) })
	require.NoError(t, err)

	out := make([]float64, 1)
	require.NoError(t, p.Sample(0, 2, 5, out))
	// Sampling level 0 at (2,5) recurses to the level-1 cell (1,2) that
	// contains it.
	require.Equal(t, []float64{6}, out)
}

func TestSample_FinerAveragesFourSubcells(t *testing.T) {
	space := geom.MustIndexSpace(0, 2, 0, 2)
	p, err := NewFromScalarFunc(0, space, func(i, j int64) float64 {
		if i == 0 && j == 0 {
			return 4
		}
		return 0
	})
	require.NoError(t, err)

	out := make([]float64, 1)
	// Level 1, index (0,0) averages level 0's (0,0),(0,1),(1,0),(1,1).
	require.NoError(t, p.Sample(1, 0, 0, out))
	require.Equal(t, []float64{1}, out)
}

func TestHighResolutionSpace(t *testing.T) {
	p, err := NewZeros(2, geom.MustIndexSpace(1, 3, 2, 4), 1)
	require.NoError(t, err)
	require.Equal(t, geom.MustIndexSpace(4, 12, 8, 16), p.HighResolutionSpace())
}

func TestExtractPadded_CopiesOverlapAndZeroFillsOutside(t *testing.T) {
	p, err := NewFromScalarFunc(0, geom.MustIndexSpace(0, 3, 0, 3), func(i, j int64) float64 {
		return float64(i*10 + j)
	})
	require.NoError(t, err)

	out, err := p.ExtractPadded(geom.MustIndexSpace(-1, 4, -1, 4))
	require.NoError(t, err)

	inside, err := out.GetSlice(1, 1)
	require.NoError(t, err)
	require.Equal(t, []float64{11}, inside)

	outside, err := out.GetSlice(-1, -1)
	require.NoError(t, err)
	require.Equal(t, []float64{0}, outside)
}

func TestExtractPadded_DisjointSpaceIsAllZero(t *testing.T) {
	p, err := NewFromScalarFunc(0, geom.MustIndexSpace(0, 2, 0, 2), func(i, j int64) float64 {
		return 5
	})
	require.NoError(t, err)

	out, err := p.ExtractPadded(geom.MustIndexSpace(10, 12, 10, 12))
	require.NoError(t, err)

	slice, err := out.GetSlice(10, 10)
	require.NoError(t, err)
	require.Equal(t, []float64{0}, slice)
}
