package wire

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/amrcore/field"
	"github.com/katalvlaran/amrcore/geom"
)

func TestEncodeDecodePatch_RoundTrip(t *testing.T) {
	space := geom.MustIndexSpace(-2, 3, 1, 4)
	p, err := field.NewFromSliceFunc(2, space, 3, func(i, j int64, out []float64) {
		out[0] = float64(i)
		out[1] = float64(j)
		out[2] = float64(i + j)
	})
	require.NoError(t, err)

	encoded := EncodePatch(p)
	got, n, err := DecodePatch(encoded)
	require.NoError(t, err)
	require.Equal(t, len(encoded), n)
	require.Equal(t, p.Level(), got.Level())
	require.Equal(t, p.NumFields(), got.NumFields())
	require.Equal(t, p.Space(), got.Space())
	require.Equal(t, p.Data(), got.Data())
}

func TestDecodePatch_TruncatedHeaderErrors(t *testing.T) {
	_, _, err := DecodePatch([]byte{1, 2, 3})
	require.ErrorIs(t, err, ErrTruncated)
}

func TestDecodePatch_TruncatedDataErrors(t *testing.T) {
	space := geom.MustIndexSpace(0, 2, 0, 2)
	p, err := field.NewZeros(0, space, 2)
	require.NoError(t, err)

	encoded := EncodePatch(p)
	_, _, err = DecodePatch(encoded[:len(encoded)-4])
	require.ErrorIs(t, err, ErrTruncated)
}
