package hasse

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/notargets/meshtopo/topology"
)

func grid2D(t *testing.T, n int) *topology.HyperCubeRefinement {
	t.Helper()
	base, err := topology.NewUnstructuredHypercube(2)
	require.NoError(t, err)
	h, err := topology.NewHyperCubeRefinement(base, n, n)
	require.NoError(t, err)
	return h
}

func TestDiagramCounts(t *testing.T) {
	// A 3x3 grid: 9 cells, 2*12 edges, 16 vertices.
	d, err := New(grid2D(t, 3))
	require.NoError(t, err)
	require.Equal(t, 9+24+16, d.NumPoints())

	// Each cell has 4 cone edges, each grid edge 2.
	require.Equal(t, 9*4+24*2, d.NumIncidences())
}

func TestDiagramSortsAsDAG(t *testing.T) {
	d, err := New(grid2D(t, 3))
	require.NoError(t, err)

	sorted, err := d.Sorted()
	require.NoError(t, err)
	require.Len(t, sorted, d.NumPoints())

	// Codimension never decreases along a topological order of cone steps.
	pos := make(map[string]int)
	for i, p := range sorted {
		pos[p.String()] = i
	}
	g := grid2D(t, 3)
	for _, p := range sorted {
		cone, err := g.Cone(p)
		require.NoError(t, err)
		for _, q := range cone {
			require.Greater(t, pos[q.String()], pos[p.String()])
		}
	}
}

func TestDiagramDOT(t *testing.T) {
	d, err := New(grid2D(t, 2))
	require.NoError(t, err)
	out, err := d.DOT("grid")
	require.NoError(t, err)
	require.NotEmpty(t, out)
	require.True(t, strings.Contains(string(out), "->"))
}

func TestDiagramOnTriangleRefinement(t *testing.T) {
	base, err := topology.NewUnstructuredSimplex(2)
	require.NoError(t, err)
	tr, err := topology.NewTriangleRefinement(base, 3)
	require.NoError(t, err)

	d, err := New(tr)
	require.NoError(t, err)
	// 9 cells, 18 edges, 10 vertices.
	require.Equal(t, 37, d.NumPoints())
	_, err = d.Sorted()
	require.NoError(t, err)
}

func TestIncidenceMatrixRowSums(t *testing.T) {
	g := grid2D(t, 3)
	m, err := IncidenceMatrix(g, 0, 1)
	require.NoError(t, err)

	rows, cols := m.Dims()
	require.Equal(t, 9, rows)
	require.Equal(t, 24, cols)

	// Every cell touches exactly four edges.
	for r := 0; r < rows; r++ {
		sum := 0.0
		for c := 0; c < cols; c++ {
			sum += m.At(r, c)
		}
		require.Equal(t, 4.0, sum)
	}
}

func TestIncidenceMatrixAcrossTwoCodims(t *testing.T) {
	g := grid2D(t, 3)
	m, err := IncidenceMatrix(g, 2, 0)
	require.NoError(t, err)

	rows, cols := m.Dims()
	require.Equal(t, 16, rows)
	require.Equal(t, 9, cols)

	// An interior vertex is surrounded by four cells, a corner by one.
	total := 0.0
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			total += m.At(r, c)
		}
	}
	// Each cell contributes its four corner vertices.
	require.Equal(t, 36.0, total)

	_, err = IncidenceMatrix(g, 0, 5)
	require.ErrorIs(t, err, topology.ErrConfiguration)
}
