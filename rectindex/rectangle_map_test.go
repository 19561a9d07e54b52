package rectindex

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/amrcore/geom"
)

func rect(i0, i1, j0, j1 int64) Rectangle {
	return RectangleOf(geom.MustIndexSpace(i0, i1, j0, j1))
}

func TestRectangleMap_QueryPoint(t *testing.T) {
	m := New[string]()
	require.NoError(t, m.Insert(rect(0, 10, 0, 10), "a"))
	require.NoError(t, m.Insert(rect(5, 15, 5, 15), "b"))
	require.NoError(t, m.Insert(rect(100, 200, 100, 200), "c"))

	var hits []string
	m.QueryPoint(7, 7, func(r Rectangle, v string) bool {
		hits = append(hits, v)
		return true
	})
	require.ElementsMatch(t, []string{"a", "b"}, hits)
}

func TestRectangleMap_QueryRect_ExcludesTouching(t *testing.T) {
	m := New[string]()
	require.NoError(t, m.Insert(rect(0, 5, 0, 5), "left"))
	require.NoError(t, m.Insert(rect(5, 10, 0, 5), "touching"))
	require.NoError(t, m.Insert(rect(2, 4, 0, 5), "overlap"))

	var hits []string
	m.QueryRect(rect(0, 5, 0, 5), func(r Rectangle, v string) bool {
		hits = append(hits, v)
		return true
	})
	require.ElementsMatch(t, []string{"left", "overlap"}, hits)
}

func TestRectangleMap_Iter_VisitsAll(t *testing.T) {
	m := New[int]()
	require.NoError(t, m.Insert(rect(0, 1, 0, 1), 1))
	require.NoError(t, m.Insert(rect(1, 2, 1, 2), 2))

	count := 0
	m.Iter(func(r Rectangle, v int) bool {
		count++
		return true
	})
	require.Equal(t, 2, count)
	require.Equal(t, 2, m.Len())
}
