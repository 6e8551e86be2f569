package topology

import (
	"fmt"

	"github.com/notargets/meshtopo/entityset"
)

// LayerTag identifies an extruded variant: the base variant it came from
// plus whether it lies in a horizontal slice (base entity crossed with the
// vertex interval, codimension one up) or a vertical run (base entity
// crossed with the cell interval, same codimension).
type LayerTag struct {
	Base       entityset.Tag
	Horizontal bool
}

func (t LayerTag) String() string {
	if t.Horizontal {
		return fmt.Sprintf("horizontal(%s)", t.Base)
	}
	return fmt.Sprintf("vertical(%s)", t.Base)
}

// extrudedVariant records how one extruded set was built.
type extrudedVariant struct {
	set        entityset.EntitySet
	baseSet    entityset.EntitySet
	horizontal bool
}

// ExtrudedMesh extrudes any base topology along one extra axis with a given
// number of levels: every base variant yields a vertical variant (crossed
// with the level-cell interval) and a horizontal one (crossed with the
// level-vertex interval). Incidence within a slice delegates to the base and
// is extended along the added axis only; base incidence is never
// reimplemented here.
type ExtrudedMesh struct {
	base     MeshTopology
	levels   int
	entities [][]entityset.EntitySet
	info     map[entityset.VariantKey]extrudedVariant
	vertOf   map[entityset.VariantKey]entityset.EntitySet
	horizOf  map[entityset.VariantKey]entityset.EntitySet
}

// NewExtrudedMesh extrudes base by the given number of levels (cells along
// the new axis).
func NewExtrudedMesh(base MeshTopology, levels int) (*ExtrudedMesh, error) {
	if base == nil {
		return nil, fmt.Errorf("%w: nil base topology", ErrConfiguration)
	}
	if levels < 1 {
		return nil, fmt.Errorf("%w: %d levels, need at least 1", ErrConfiguration, levels)
	}

	// Index names of the new axis must not collide with any base set's.
	arena := entityset.NewArena()
	arena.ReserveSet(base.EntityVariants()...)
	cells, err := entityset.NewInterval(arena, levels, 0, AxisCell)
	if err != nil {
		return nil, err
	}
	vertices, err := entityset.NewInterval(arena, levels+1, 1, AxisVertex)
	if err != nil {
		return nil, err
	}

	dim := base.Dimension() + 1
	e := &ExtrudedMesh{
		base:     base,
		levels:   levels,
		entities: make([][]entityset.EntitySet, dim+1),
		info:     make(map[entityset.VariantKey]extrudedVariant),
		vertOf:   make(map[entityset.VariantKey]entityset.EntitySet),
		horizOf:  make(map[entityset.VariantKey]entityset.EntitySet),
	}
	for _, b := range base.EntityVariants() {
		codim := b.Codimension()
		vert, err := entityset.NewTensorProduct(LayerTag{Base: b.Tag(), Horizontal: false}, b, cells)
		if err != nil {
			return nil, err
		}
		horiz, err := entityset.NewTensorProduct(LayerTag{Base: b.Tag(), Horizontal: true}, b, vertices)
		if err != nil {
			return nil, err
		}
		e.entities[codim] = append(e.entities[codim], vert)
		e.entities[codim+1] = append(e.entities[codim+1], horiz)
		bk := entityset.KeyOf(b)
		e.info[entityset.KeyOf(vert)] = extrudedVariant{set: vert, baseSet: b, horizontal: false}
		e.info[entityset.KeyOf(horiz)] = extrudedVariant{set: horiz, baseSet: b, horizontal: true}
		e.vertOf[bk] = vert
		e.horizOf[bk] = horiz
	}
	return e, nil
}

// Base returns the wrapped topology.
func (e *ExtrudedMesh) Base() MeshTopology { return e.base }

// Levels returns the number of cells along the extruded axis.
func (e *ExtrudedMesh) Levels() int { return e.levels }

func (e *ExtrudedMesh) Dimension() int { return e.base.Dimension() + 1 }

func (e *ExtrudedMesh) EntityVariants(codim ...int) []entityset.EntitySet {
	return selectVariants(e.entities, codim)
}

// split separates an extruded multi-index into its base part and its level.
func split(v extrudedVariant, indices []int) (base []int, level int) {
	n := len(v.baseSet.Indices())
	return indices[:n], indices[n]
}

func (e *ExtrudedMesh) Cone(p Point) ([]Point, error) {
	v, ok := e.info[entityset.KeyOf(p.Set)]
	if !ok {
		return nil, unknownVariant(p.Set)
	}
	bi, level := split(v, p.Indices)
	basePoint := NewPoint(v.baseSet, bi...)

	var out []Point
	if !v.horizontal {
		// A vertical run of cells is capped by the two horizontal copies of
		// its own base entity at levels k and k+1.
		horiz := e.horizOf[entityset.KeyOf(v.baseSet)]
		for shift := 0; shift <= 1; shift++ {
			out = append(out, NewPoint(horiz, withLevel(bi, level+shift)...))
		}
	}
	// The rest of the boundary is the base entity's own cone, lifted into
	// the same layer kind at the same level.
	baseCone, err := e.base.Cone(basePoint)
	if err != nil {
		return nil, err
	}
	lift := e.vertOf
	if v.horizontal {
		lift = e.horizOf
	}
	for _, q := range baseCone {
		target, ok := lift[entityset.KeyOf(q.Set)]
		if !ok {
			return nil, unknownVariant(q.Set)
		}
		out = append(out, NewPoint(target, withLevel(q.Indices, level)...))
	}
	return out, nil
}

func (e *ExtrudedMesh) Support(p Point) ([]SupportPoint, error) {
	v, ok := e.info[entityset.KeyOf(p.Set)]
	if !ok {
		return nil, unknownVariant(p.Set)
	}
	bi, level := split(v, p.Indices)
	basePoint := NewPoint(v.baseSet, bi...)

	var out []SupportPoint
	if v.horizontal {
		// A horizontal entity sits between the vertical runs of its own base
		// entity at levels k-1 and k, clamped at the extrusion ends.
		vert := e.vertOf[entityset.KeyOf(v.baseSet)]
		for shift := -1; shift <= 0; shift++ {
			k := level + shift
			if k < 0 || k >= e.levels {
				continue
			}
			// The run's cone holds horizontal copies at k and k+1, so the
			// queried level is local 0 at the bottom cap and 1 at the top.
			out = append(out, SupportPoint{
				Point: NewPoint(vert, withLevel(bi, k)...),
				Local: level - k,
			})
		}
	}
	// Base supports lift into the same layer kind at the same level; the
	// base's local positions survive because the lifted cone preserves the
	// base cone's order within each variant.
	baseSup, err := e.base.Support(basePoint)
	if err != nil {
		return nil, err
	}
	lift := e.vertOf
	if v.horizontal {
		lift = e.horizOf
	}
	for _, s := range baseSup {
		target, ok := lift[entityset.KeyOf(s.Set)]
		if !ok {
			return nil, unknownVariant(s.Set)
		}
		out = append(out, SupportPoint{
			Point: NewPoint(target, withLevel(s.Indices, level)...),
			Local: s.Local,
		})
	}
	return out, nil
}

func withLevel(base []int, level int) []int {
	out := make([]int, len(base)+1)
	copy(out, base)
	out[len(base)] = level
	return out
}
