package topology

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/notargets/meshtopo/entityset"
)

// allTopologies builds one instance of each family for engine-level checks.
func allTopologies(t *testing.T) map[string]MeshTopology {
	t.Helper()
	simplex, err := NewUnstructuredSimplex(3)
	require.NoError(t, err)

	grid := refined(t, 2, 3, 3)

	base2, err := NewUnstructuredSimplex(2)
	require.NoError(t, err)
	ext, err := NewExtrudedMesh(base2, 3)
	require.NoError(t, err)

	tri, err := NewTriangleRefinement(base2, 3)
	require.NoError(t, err)

	return map[string]MeshTopology{
		"unstructured": simplex,
		"hypercube":    grid,
		"extrusion":    ext,
		"triangle":     tri,
	}
}

func TestClosurePropertiesAcrossFamilies(t *testing.T) {
	for name, topo := range allTopologies(t) {
		t.Run(name, func(t *testing.T) {
			for _, set := range topo.EntityVariants() {
				for _, multi := range entityset.Enumerate(set) {
					p := NewPoint(set, multi...)
					closure, err := Closure(topo, p)
					require.NoError(t, err)

					// Contains self, first.
					require.True(t, closure[0].Equal(p))

					// Duplicate-free, and codimension never below the start.
					seen := make(map[string]bool)
					for _, q := range closure {
						require.GreaterOrEqual(t, q.Codimension(), p.Codimension())
						require.False(t, seen[q.String()], "%s twice in closure of %s", q, p)
						seen[q.String()] = true
					}
				}
			}
		})
	}
}

func TestStarPropertiesAcrossFamilies(t *testing.T) {
	for name, topo := range allTopologies(t) {
		t.Run(name, func(t *testing.T) {
			for _, set := range topo.EntityVariants() {
				for _, multi := range entityset.Enumerate(set) {
					p := NewPoint(set, multi...)
					star, err := Star(topo, p)
					require.NoError(t, err)
					require.True(t, star[0].Equal(p))
					for _, q := range star {
						require.LessOrEqual(t, q.Codimension(), p.Codimension())
					}
				}
			}
		})
	}
}

func TestIndexRelationSameCodim(t *testing.T) {
	tr := allTopologies(t)["triangle"].(*TriangleRefinement)
	lower := tr.byTag[TriLowerCell]
	upper := tr.byTag[TriUpperCell]

	p := NewPoint(lower, 0, 0)
	same, err := IndexRelation(tr, p, lower)
	require.NoError(t, err)
	require.Len(t, same, 1)
	require.True(t, same[0].Equal(p))

	// Equal codimension but a different variant has no relation rule.
	_, err = IndexRelation(tr, p, upper)
	require.ErrorIs(t, err, ErrUnsupportedIncidence)
}

func TestSubentityMap(t *testing.T) {
	m, err := NewUnstructuredSimplex(3)
	require.NoError(t, err)
	cells := m.EntityVariants(0)[0]
	faces := m.EntityVariants(1)[0]

	// The tetrahedron's cell has four faces, addressed 0..3 in cone order.
	cone, err := m.Cone(NewPoint(cells, 0))
	require.NoError(t, err)
	for local, want := range cone {
		got, err := SubentityMap(m, NewPoint(cells, 0), faces, local)
		require.NoError(t, err)
		require.True(t, got.Equal(want))
	}

	_, err = SubentityMap(m, NewPoint(cells, 0), faces, len(cone))
	require.ErrorIs(t, err, ErrUnsupportedIncidence)

	// Target must be exactly one codimension up.
	vertices := m.EntityVariants(3)[0]
	_, err = SubentityMap(m, NewPoint(cells, 0), vertices, 0)
	require.ErrorIs(t, err, ErrUnsupportedIncidence)
}

func TestDualSubentityMap(t *testing.T) {
	m, err := NewUnstructuredSimplex(3)
	require.NoError(t, err)
	faces := m.EntityVariants(1)[0]
	cells := m.EntityVariants(0)[0]

	sups, err := DualSubentityMap(m, NewPoint(faces, 1), cells)
	require.NoError(t, err)
	require.Len(t, sups, 1)
	require.Equal(t, 0, sups[0].Indices[0])

	_, err = DualSubentityMap(m, NewPoint(faces, 1), faces)
	require.ErrorIs(t, err, ErrUnsupportedIncidence)
}

func TestPointEquality(t *testing.T) {
	a := entityset.NewArena()
	s1, err := entityset.NewInterval(a, 5, 0, entityset.GenericTag("cells"))
	require.NoError(t, err)
	s2, err := entityset.NewInterval(a, 5, 0, entityset.GenericTag("cells"))
	require.NoError(t, err)
	s3, err := entityset.NewInterval(a, 5, 0, entityset.GenericTag("other"))
	require.NoError(t, err)

	require.True(t, NewPoint(s1, 2).Equal(NewPoint(s2, 2)))
	require.False(t, NewPoint(s1, 2).Equal(NewPoint(s1, 3)))
	require.False(t, NewPoint(s1, 2).Equal(NewPoint(s3, 2)))

	require.Panics(t, func() { NewPoint(s1, 1, 2) })
}
