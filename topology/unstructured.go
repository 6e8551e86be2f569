package topology

import (
	"fmt"
	"sync"

	"github.com/notargets/meshtopo/entityset"
	"github.com/notargets/meshtopo/refcell"
)

// UnstructuredTag identifies the single variant per codimension of a
// reference-cell topology by the cell shape and the entity dimension.
type UnstructuredTag struct {
	Cell refcell.Kind
	Dim  int
}

func (t UnstructuredTag) String() string {
	return fmt.Sprintf("%s/dim%d", t.Cell, t.Dim)
}

// UnstructuredMesh is a single reference cell viewed as a topology: one flat
// entity set per codimension sized by the cell's entity counts, with
// incidence precomputed once from the cell's vertex tables. Entity A is in
// the cone of entity B one codimension lower exactly when A's vertex set is
// contained in B's.
type UnstructuredMesh struct {
	cell     *refcell.Cell
	entities [][]entityset.EntitySet

	incOnce  sync.Once
	cones    [][][]int        // [codim][entity] -> entity IDs at codim+1
	supports [][][]supportRef // [codim][entity] -> neighbors at codim-1
}

type supportRef struct {
	entity int
	local  int
}

// NewUnstructuredSimplex builds the topology of the reference simplex of the
// given dimension.
func NewUnstructuredSimplex(dim int) (*UnstructuredMesh, error) {
	cell, err := refcell.Simplex(dim)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfiguration, err)
	}
	return newUnstructured(cell)
}

// NewUnstructuredHypercube builds the topology of the reference hypercube of
// the given dimension.
func NewUnstructuredHypercube(dim int) (*UnstructuredMesh, error) {
	cell, err := refcell.Hypercube(dim)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfiguration, err)
	}
	return newUnstructured(cell)
}

func newUnstructured(cell *refcell.Cell) (*UnstructuredMesh, error) {
	dim := cell.Dimension()
	arena := entityset.NewArena()
	entities := make([][]entityset.EntitySet, dim+1)
	for codim := 0; codim <= dim; codim++ {
		tag := UnstructuredTag{Cell: cell.Kind(), Dim: dim - codim}
		set, err := entityset.NewUnstructured(arena, cell.NumEntities(dim-codim), codim, tag)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrConfiguration, err)
		}
		entities[codim] = []entityset.EntitySet{set}
	}
	return &UnstructuredMesh{cell: cell, entities: entities}, nil
}

// Cell returns the underlying reference-cell description.
func (m *UnstructuredMesh) Cell() *refcell.Cell { return m.cell }

func (m *UnstructuredMesh) Dimension() int { return m.cell.Dimension() }

func (m *UnstructuredMesh) EntityVariants(codim ...int) []entityset.EntitySet {
	return selectVariants(m.entities, codim)
}

// incidence builds the cone and support tables once, on first query.
func (m *UnstructuredMesh) incidence() {
	m.incOnce.Do(func() {
		dim := m.cell.Dimension()
		m.cones = make([][][]int, dim+1)
		m.supports = make([][][]supportRef, dim+1)
		for codim := 0; codim <= dim; codim++ {
			d := dim - codim
			n := m.cell.NumEntities(d)
			m.cones[codim] = make([][]int, n)
			m.supports[codim] = make([][]supportRef, n)
			for e := 0; e < n; e++ {
				verts, _ := m.cell.EntityVertices(d, e)
				m.cones[codim][e] = m.coneOf(verts, d-1)
			}
		}
		// Supports invert the cone table; the local index of a neighbor's
		// cone entry is its position in that cone list.
		for codim := 0; codim < dim; codim++ {
			for e, cone := range m.cones[codim] {
				for local, sub := range cone {
					m.supports[codim+1][sub] = append(m.supports[codim+1][sub],
						supportRef{entity: e, local: local})
				}
			}
		}
	})
}

// coneOf lists the entities of dimension d whose vertex sets are contained
// in verts, in entity order.
func (m *UnstructuredMesh) coneOf(verts []int, d int) []int {
	if d < 0 {
		return nil
	}
	in := make(map[int]bool, len(verts))
	for _, v := range verts {
		in[v] = true
	}
	var cone []int
	for e := 0; e < m.cell.NumEntities(d); e++ {
		sub, _ := m.cell.EntityVertices(d, e)
		contained := true
		for _, v := range sub {
			if !in[v] {
				contained = false
				break
			}
		}
		if contained {
			cone = append(cone, e)
		}
	}
	return cone
}

func (m *UnstructuredMesh) Cone(p Point) ([]Point, error) {
	set, ok := findVariant(m.entities, p.Set)
	if !ok {
		return nil, unknownVariant(p.Set)
	}
	codim := set.Codimension()
	if codim == m.Dimension() {
		return nil, nil
	}
	m.incidence()
	target := m.entities[codim+1][0]
	cone := m.cones[codim][p.Indices[0]]
	out := make([]Point, len(cone))
	for i, e := range cone {
		out[i] = NewPoint(target, e)
	}
	return out, nil
}

func (m *UnstructuredMesh) Support(p Point) ([]SupportPoint, error) {
	set, ok := findVariant(m.entities, p.Set)
	if !ok {
		return nil, unknownVariant(p.Set)
	}
	codim := set.Codimension()
	if codim == 0 {
		return nil, nil
	}
	m.incidence()
	target := m.entities[codim-1][0]
	sups := m.supports[codim][p.Indices[0]]
	out := make([]SupportPoint, len(sups))
	for i, s := range sups {
		out[i] = SupportPoint{Point: NewPoint(target, s.entity), Local: s.local}
	}
	return out, nil
}
