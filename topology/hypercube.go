package topology

import (
	"fmt"
	"strings"

	"gonum.org/v1/gonum/stat/combin"

	"github.com/notargets/meshtopo/entityset"
	"github.com/notargets/meshtopo/refcell"
)

// AxisTag marks a per-axis interval factor as running over cells or over
// vertices. Structured families compare factor tags axis by axis to decide
// which coordinates shift in an incidence step.
type AxisTag int

const (
	AxisCell AxisTag = iota
	AxisVertex
)

func (t AxisTag) String() string {
	if t == AxisVertex {
		return "vertices"
	}
	return "cells"
}

// HypercubeTag identifies a hypercube-refinement variant by the set of axes
// whose factor runs over vertices; bit k set means axis k is a vertex axis.
// The codimension equals the number of vertex axes.
type HypercubeTag struct {
	VertexAxes uint
}

func (t HypercubeTag) String() string {
	if t.VertexAxes == 0 {
		return "hypercube{cells}"
	}
	var axes []string
	for k := 0; t.VertexAxes>>uint(k) != 0; k++ {
		if t.VertexAxes&(1<<uint(k)) != 0 {
			axes = append(axes, fmt.Sprintf("%d", k))
		}
	}
	return fmt.Sprintf("hypercube{v:%s}", strings.Join(axes, ","))
}

// HyperCubeRefinement is the structured refinement of a hypercube cell into
// a grid of cells. Every variant is a tensor product of per-axis intervals,
// each either a cell interval (N entities) or a vertex interval (N+1);
// incidence is a coordinatewise rule, not a table: stepping to an adjacent
// variant shifts exactly the axis whose factor type converts, by 0 or +1
// toward vertices (cone) and by 0 or -1 toward cells (support).
type HyperCubeRefinement struct {
	base     *UnstructuredMesh
	cells    []int
	entities [][]entityset.EntitySet
	byMask   map[uint]entityset.EntitySet
}

// NewHyperCubeRefinement refines the base hypercube topology into
// cellsPerDim cells along each axis. The base must be an unstructured
// hypercube whose dimension matches len(cellsPerDim).
func NewHyperCubeRefinement(base *UnstructuredMesh, cellsPerDim ...int) (*HyperCubeRefinement, error) {
	if base == nil {
		return nil, fmt.Errorf("%w: nil base topology", ErrConfiguration)
	}
	dim := base.Dimension()
	switch base.Cell().Kind() {
	case refcell.Line, refcell.Quad, refcell.Hex:
	default:
		return nil, fmt.Errorf("%w: hypercube refinement needs a hypercube base, got %s",
			ErrConfiguration, base.Cell().Kind())
	}
	if len(cellsPerDim) != dim {
		return nil, fmt.Errorf("%w: %d cell counts for a %d-dimensional base",
			ErrConfiguration, len(cellsPerDim), dim)
	}
	for k, n := range cellsPerDim {
		if n < 1 {
			return nil, fmt.Errorf("%w: axis %d has %d cells, need at least 1", ErrConfiguration, k, n)
		}
	}

	arena := entityset.NewArena()
	cellSets := make([]entityset.EntitySet, dim)
	vertexSets := make([]entityset.EntitySet, dim)
	for k, n := range cellsPerDim {
		var err error
		cellSets[k], err = entityset.NewInterval(arena, n, 0, AxisCell)
		if err != nil {
			return nil, err
		}
		vertexSets[k], err = entityset.NewInterval(arena, n+1, 1, AxisVertex)
		if err != nil {
			return nil, err
		}
	}

	h := &HyperCubeRefinement{
		base:     base,
		cells:    append([]int(nil), cellsPerDim...),
		entities: make([][]entityset.EntitySet, dim+1),
		byMask:   make(map[uint]entityset.EntitySet),
	}
	for codim := 0; codim <= dim; codim++ {
		for _, mask := range axisMasks(dim, codim) {
			factors := make([]entityset.EntitySet, dim)
			for k := 0; k < dim; k++ {
				if mask&(1<<uint(k)) != 0 {
					factors[k] = vertexSets[k]
				} else {
					factors[k] = cellSets[k]
				}
			}
			set, err := entityset.NewTensorProduct(HypercubeTag{VertexAxes: mask}, factors...)
			if err != nil {
				return nil, err
			}
			h.entities[codim] = append(h.entities[codim], set)
			h.byMask[mask] = set
		}
	}
	return h, nil
}

// axisMasks enumerates the vertex-axis bitmasks with exactly codim bits set,
// in combination order.
func axisMasks(dim, codim int) []uint {
	if codim == 0 {
		return []uint{0}
	}
	var masks []uint
	for _, axes := range combin.Combinations(dim, codim) {
		var mask uint
		for _, k := range axes {
			mask |= 1 << uint(k)
		}
		masks = append(masks, mask)
	}
	return masks
}

// Base returns the unstructured hypercube this refinement subdivides.
func (h *HyperCubeRefinement) Base() *UnstructuredMesh { return h.base }

func (h *HyperCubeRefinement) Dimension() int { return h.base.Dimension() }

func (h *HyperCubeRefinement) EntityVariants(codim ...int) []entityset.EntitySet {
	return selectVariants(h.entities, codim)
}

func (h *HyperCubeRefinement) mask(s entityset.EntitySet) (uint, error) {
	tag, ok := s.Tag().(HypercubeTag)
	if !ok {
		return 0, unknownVariant(s)
	}
	if v, present := h.byMask[tag.VertexAxes]; !present || !entityset.SameVariant(v, s) {
		return 0, unknownVariant(s)
	}
	return tag.VertexAxes, nil
}

func (h *HyperCubeRefinement) Cone(p Point) ([]Point, error) {
	mask, err := h.mask(p.Set)
	if err != nil {
		return nil, err
	}
	dim := h.Dimension()
	var out []Point
	// Convert one cell axis to a vertex axis; cell i is bounded by vertices
	// i and i+1 along that axis.
	for k := 0; k < dim; k++ {
		bit := uint(1) << uint(k)
		if mask&bit != 0 {
			continue
		}
		target := h.byMask[mask|bit]
		for shift := 0; shift <= 1; shift++ {
			indices := append([]int(nil), p.Indices...)
			indices[k] += shift
			out = append(out, NewPoint(target, indices...))
		}
	}
	return out, nil
}

func (h *HyperCubeRefinement) Support(p Point) ([]SupportPoint, error) {
	mask, err := h.mask(p.Set)
	if err != nil {
		return nil, err
	}
	dim := h.Dimension()
	var out []SupportPoint
	// Convert one vertex axis back to a cell axis; vertex i touches cells
	// i-1 and i along that axis, clamped at the grid ends. The shift rule
	// does not mirror the cone rule blindly: each candidate is validated as
	// an actual cone neighbor, which also yields the local position.
	for k := 0; k < dim; k++ {
		bit := uint(1) << uint(k)
		if mask&bit == 0 {
			continue
		}
		target := h.byMask[mask&^bit]
		for shift := -1; shift <= 0; shift++ {
			indices := append([]int(nil), p.Indices...)
			indices[k] += shift
			if !target.Contains(indices) {
				continue
			}
			q := NewPoint(target, indices...)
			local, ok, err := coneLocal(h, q, p)
			if err != nil {
				return nil, err
			}
			if ok {
				out = append(out, SupportPoint{Point: q, Local: local})
			}
		}
	}
	return out, nil
}
