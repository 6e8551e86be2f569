package entityset

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestArenaHandsOutUniqueNames(t *testing.T) {
	a := NewArena()
	i0 := a.Fresh(0, 5)
	i1 := a.Fresh(0, 5)
	require.Equal(t, "i0", i0.Name)
	require.Equal(t, "i1", i1.Name)
	require.Equal(t, 5, i0.Extent())
}

func TestArenaReserveSkipsNames(t *testing.T) {
	a := NewArena()
	a.Reserve("i0", "i2")
	require.Equal(t, "i1", a.Fresh(0, 5).Name)
	require.Equal(t, "i3", a.Fresh(0, 5).Name)
}

func TestArenaReserveSet(t *testing.T) {
	base := NewArena()
	s, err := NewTriangle(base, 4, 0, GenericTag("tris"))
	require.NoError(t, err)

	a := NewArena()
	a.ReserveSet(s)
	fresh := a.Fresh(0, 3)
	for _, idx := range s.Indices() {
		require.NotEqual(t, idx.Name, fresh.Name)
	}
}

func TestIndexExtent(t *testing.T) {
	for lo := 0; lo < 4; lo++ {
		for hi := 4; hi < 8; hi++ {
			idx := NewIndex("i", lo, hi)
			require.Equal(t, hi-lo, idx.Extent())
		}
	}
	require.Panics(t, func() { NewIndex("i", 3, 1) })
}

func TestConstraintHolds(t *testing.T) {
	a := NewArena()
	i := a.Fresh(0, 4)
	j := a.Fresh(0, 4)

	c := SumLessThan(4, i, j)
	require.True(t, c.Holds(map[string]int{"i0": 1, "i1": 2}))
	require.False(t, c.Holds(map[string]int{"i0": 2, "i1": 2}))
	require.Equal(t, "i0 + i1 < 4", c.String())

	f := FixedAt(i, 3)
	require.True(t, f.Holds(map[string]int{"i0": 3}))
	require.False(t, f.Holds(map[string]int{"i0": 2}))
	require.Equal(t, "i0 == 3", f.String())
}

func TestVariantIdentity(t *testing.T) {
	a := NewArena()
	s1, err := NewInterval(a, 5, 0, GenericTag("cells"))
	require.NoError(t, err)
	s2, err := NewInterval(a, 5, 0, GenericTag("cells"))
	require.NoError(t, err)
	s3, err := NewInterval(a, 5, 0, GenericTag("vertices"))
	require.NoError(t, err)
	s4, err := NewInterval(a, 5, 1, GenericTag("cells"))
	require.NoError(t, err)

	// Identity is (tag, codimension) value equality, never object identity.
	require.True(t, SameVariant(s1, s2))
	require.False(t, SameVariant(s1, s3))
	require.False(t, SameVariant(s1, s4))
}

func TestEnumerateOdometerOrder(t *testing.T) {
	a := NewArena()
	s, err := NewTriangle(a, 3, 0, GenericTag("tris"))
	require.NoError(t, err)
	require.Equal(t, [][]int{
		{0, 0}, {0, 1}, {0, 2},
		{1, 0}, {1, 1},
		{2, 0},
	}, Enumerate(s))
}

func TestUnstructuredSet(t *testing.T) {
	a := NewArena()
	s, err := NewUnstructured(a, 7, 2, GenericTag("ents"))
	require.NoError(t, err)
	require.Equal(t, 7, s.Size())
	require.Equal(t, 2, s.Codimension())
	checkBijection(t, s)

	empty, err := NewUnstructured(a, 0, 0, GenericTag("none"))
	require.NoError(t, err)
	require.Equal(t, 0, empty.Size())
	require.Empty(t, Enumerate(empty))

	_, err = NewUnstructured(a, -1, 0, GenericTag("bad"))
	require.ErrorIs(t, err, ErrConfiguration)
}
