package topology

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/stat/combin"
)

func TestUnstructuredSimplexVariants(t *testing.T) {
	for dim := 0; dim <= 3; dim++ {
		t.Run(fmt.Sprintf("dim%d", dim), func(t *testing.T) {
			m, err := NewUnstructuredSimplex(dim)
			require.NoError(t, err)
			require.Equal(t, dim, m.Dimension())
			require.Len(t, m.EntityVariants(), dim+1)
			for codim := 0; codim <= dim; codim++ {
				sets := m.EntityVariants(codim)
				require.Len(t, sets, 1)
				require.Equal(t, codim, sets[0].Codimension())
				require.Equal(t, combin.Binomial(dim+1, dim-codim+1), sets[0].Size())
			}
			require.Empty(t, m.EntityVariants(dim+1))
		})
	}
}

func TestUnstructuredHypercubeVariants(t *testing.T) {
	for dim := 0; dim <= 3; dim++ {
		m, err := NewUnstructuredHypercube(dim)
		require.NoError(t, err)
		for codim := 0; codim <= dim; codim++ {
			sets := m.EntityVariants(codim)
			require.Len(t, sets, 1)
			want := combin.Binomial(dim, dim-codim) << uint(codim)
			require.Equal(t, want, sets[0].Size())
		}
	}
}

func TestUnstructuredConeSupport(t *testing.T) {
	m, err := NewUnstructuredSimplex(3)
	require.NoError(t, err)

	cells := m.EntityVariants(0)[0]
	faces := m.EntityVariants(1)[0]
	edges := m.EntityVariants(2)[0]
	vertices := m.EntityVariants(3)[0]

	// The cell is bounded by all four faces.
	cone, err := m.Cone(NewPoint(cells, 0))
	require.NoError(t, err)
	require.Len(t, cone, 4)
	for _, q := range cone {
		require.Equal(t, 1, q.Codimension())
	}

	// Every face has three edges, every edge two vertices.
	cone, err = m.Cone(NewPoint(faces, 2))
	require.NoError(t, err)
	require.Len(t, cone, 3)
	cone, err = m.Cone(NewPoint(edges, 4))
	require.NoError(t, err)
	require.Len(t, cone, 2)

	// Vertices have empty cones, cells empty supports.
	cone, err = m.Cone(NewPoint(vertices, 1))
	require.NoError(t, err)
	require.Empty(t, cone)
	sups, err := m.Support(NewPoint(cells, 0))
	require.NoError(t, err)
	require.Empty(t, sups)

	// Each edge of the tetrahedron lies on exactly two faces.
	sups, err = m.Support(NewPoint(edges, 0))
	require.NoError(t, err)
	require.Len(t, sups, 2)
	for _, s := range sups {
		require.Equal(t, 1, s.Codimension())
	}
}

func TestUnstructuredVerify(t *testing.T) {
	for dim := 0; dim <= 3; dim++ {
		m, err := NewUnstructuredSimplex(dim)
		require.NoError(t, err)
		require.NoError(t, Verify(m))

		h, err := NewUnstructuredHypercube(dim)
		require.NoError(t, err)
		require.NoError(t, Verify(h))
	}
}

func TestUnstructuredClosureCoversCell(t *testing.T) {
	m, err := NewUnstructuredSimplex(3)
	require.NoError(t, err)
	cells := m.EntityVariants(0)[0]

	closure, err := Closure(m, NewPoint(cells, 0))
	require.NoError(t, err)
	// 1 cell + 4 faces + 6 edges + 4 vertices.
	require.Len(t, closure, 15)
}

func TestUnstructuredStarCoversVertex(t *testing.T) {
	m, err := NewUnstructuredSimplex(3)
	require.NoError(t, err)
	vertices := m.EntityVariants(3)[0]

	star, err := Star(m, NewPoint(vertices, 0))
	require.NoError(t, err)
	// The vertex, its 3 edges, 3 faces, and the cell.
	require.Len(t, star, 8)
}

func TestUnknownVariantRejected(t *testing.T) {
	m, err := NewUnstructuredSimplex(2)
	require.NoError(t, err)
	other, err := NewUnstructuredSimplex(3)
	require.NoError(t, err)

	_, err = m.Cone(NewPoint(other.EntityVariants(0)[0], 0))
	require.ErrorIs(t, err, ErrUnsupportedIncidence)
}
