package topology

import (
	"fmt"

	"github.com/notargets/meshtopo/entityset"
	"github.com/notargets/meshtopo/refcell"
)

// TriTag enumerates the six variants of a structured triangle refinement.
// The diagonal edge family is what keeps this topology outside the
// coordinatewise hypercube rule, so incidence is a small hand-built table of
// coordinate shifts per (source, target) variant pair.
type TriTag int

const (
	TriLowerCell TriTag = iota // lower-left cells
	TriUpperCell               // upper-right cells
	TriEdgeX                   // edges along the x axis
	TriEdgeY                   // edges along the y axis
	TriEdgeDiag                // diagonal edges
	TriVertex
)

func (t TriTag) String() string {
	switch t {
	case TriLowerCell:
		return "tri-lower"
	case TriUpperCell:
		return "tri-upper"
	case TriEdgeX:
		return "tri-edge-x"
	case TriEdgeY:
		return "tri-edge-y"
	case TriEdgeDiag:
		return "tri-edge-diag"
	case TriVertex:
		return "tri-vertex"
	}
	return "tri-unknown"
}

// TriangleRefinement subdivides the reference triangle into n rows of cells:
// grid vertex (i, j) exists for i + j <= n, the lower cell at (i, j) spans
// vertices (i, j), (i+1, j), (i, j+1), and the upper cell at (i, j) spans
// (i+1, j), (i, j+1), (i+1, j+1). Edges come in three families: along x,
// along y, and the diagonals.
type TriangleRefinement struct {
	base     *UnstructuredMesh
	n        int
	entities [][]entityset.EntitySet
	byTag    map[TriTag]entityset.EntitySet
}

// triShift is one hand-built incidence rule: the target variant and the
// coordinate shift applied to (i, j).
type triShift struct {
	target TriTag
	di, dj int
}

// triCones lists, per source variant, the cone neighbors in local order.
var triCones = map[TriTag][]triShift{
	TriLowerCell: {{TriEdgeX, 0, 0}, {TriEdgeY, 0, 0}, {TriEdgeDiag, 0, 0}},
	TriUpperCell: {{TriEdgeDiag, 0, 0}, {TriEdgeX, 0, 1}, {TriEdgeY, 1, 0}},
	TriEdgeX:     {{TriVertex, 0, 0}, {TriVertex, 1, 0}},
	TriEdgeY:     {{TriVertex, 0, 0}, {TriVertex, 0, 1}},
	TriEdgeDiag:  {{TriVertex, 1, 0}, {TriVertex, 0, 1}},
}

// triSupports lists, per source variant, the candidate support neighbors.
// Candidates falling outside their set (at the refinement boundary) are
// dropped by a membership check, and each survivor is validated as an actual
// cone neighbor rather than trusting the mirrored shift.
var triSupports = map[TriTag][]triShift{
	TriEdgeX:    {{TriLowerCell, 0, 0}, {TriUpperCell, 0, -1}},
	TriEdgeY:    {{TriLowerCell, 0, 0}, {TriUpperCell, -1, 0}},
	TriEdgeDiag: {{TriLowerCell, 0, 0}, {TriUpperCell, 0, 0}},
	TriVertex: {
		{TriEdgeX, -1, 0}, {TriEdgeX, 0, 0},
		{TriEdgeY, 0, -1}, {TriEdgeY, 0, 0},
		{TriEdgeDiag, -1, 0}, {TriEdgeDiag, 0, -1},
	},
}

// NewTriangleRefinement refines the base triangle into n cells per side. The
// base must be the unstructured 2-dimensional simplex.
func NewTriangleRefinement(base *UnstructuredMesh, n int) (*TriangleRefinement, error) {
	if base == nil {
		return nil, fmt.Errorf("%w: nil base topology", ErrConfiguration)
	}
	if base.Cell().Kind() != refcell.Tri {
		return nil, fmt.Errorf("%w: triangle refinement needs a triangle base, got %s",
			ErrConfiguration, base.Cell().Kind())
	}
	if n < 1 {
		return nil, fmt.Errorf("%w: %d cells per side, need at least 1", ErrConfiguration, n)
	}

	arena := entityset.NewArena()
	mk := func(extent, codim int, tag TriTag) (entityset.EntitySet, error) {
		return entityset.NewTriangle(arena, extent, codim, tag)
	}
	families := []struct {
		tag    TriTag
		extent int
		codim  int
	}{
		{TriLowerCell, n, 0},
		{TriUpperCell, n - 1, 0},
		{TriEdgeX, n, 1},
		{TriEdgeY, n, 1},
		{TriEdgeDiag, n, 1},
		{TriVertex, n + 1, 2},
	}

	t := &TriangleRefinement{
		base:     base,
		n:        n,
		entities: make([][]entityset.EntitySet, 3),
		byTag:    make(map[TriTag]entityset.EntitySet),
	}
	for _, f := range families {
		set, err := mk(f.extent, f.codim, f.tag)
		if err != nil {
			return nil, err
		}
		t.entities[f.codim] = append(t.entities[f.codim], set)
		t.byTag[f.tag] = set
	}
	return t, nil
}

// Base returns the unstructured triangle this refinement subdivides.
func (t *TriangleRefinement) Base() *UnstructuredMesh { return t.base }

func (t *TriangleRefinement) Dimension() int { return 2 }

func (t *TriangleRefinement) EntityVariants(codim ...int) []entityset.EntitySet {
	return selectVariants(t.entities, codim)
}

func (t *TriangleRefinement) tag(s entityset.EntitySet) (TriTag, error) {
	tag, ok := s.Tag().(TriTag)
	if !ok {
		return 0, unknownVariant(s)
	}
	if v, present := t.byTag[tag]; !present || !entityset.SameVariant(v, s) {
		return 0, unknownVariant(s)
	}
	return tag, nil
}

func (t *TriangleRefinement) Cone(p Point) ([]Point, error) {
	tag, err := t.tag(p.Set)
	if err != nil {
		return nil, err
	}
	var out []Point
	for _, rule := range triCones[tag] {
		target := t.byTag[rule.target]
		indices := []int{p.Indices[0] + rule.di, p.Indices[1] + rule.dj}
		if !target.Contains(indices) {
			// The cone shifts always land inside the target set for points
			// of the source domain; a miss means the point was out of
			// domain to begin with.
			continue
		}
		out = append(out, NewPoint(target, indices...))
	}
	return out, nil
}

func (t *TriangleRefinement) Support(p Point) ([]SupportPoint, error) {
	tag, err := t.tag(p.Set)
	if err != nil {
		return nil, err
	}
	var out []SupportPoint
	for _, rule := range triSupports[tag] {
		target := t.byTag[rule.target]
		indices := []int{p.Indices[0] + rule.di, p.Indices[1] + rule.dj}
		if !target.Contains(indices) {
			continue
		}
		q := NewPoint(target, indices...)
		local, ok, err := coneLocal(t, q, p)
		if err != nil {
			return nil, err
		}
		if ok {
			out = append(out, SupportPoint{Point: q, Local: local})
		}
	}
	return out, nil
}
