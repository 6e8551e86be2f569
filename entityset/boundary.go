package entityset

import (
	"fmt"

	"github.com/notargets/meshtopo/symbolic"
)

// Bounded is implemented by sets that can produce their boundary facets.
// A facet lives one codimension above its parent and shares the parent's
// indices read-only, pinned by equality constraints.
type Bounded interface {
	EntitySet
	Boundaries() []EntitySet
}

// BoundaryTag identifies a boundary subset by its parent variant and which
// (factor, facet) pair produced it.
type BoundaryTag struct {
	Parent Tag
	Factor int
	Facet  int
}

func (t BoundaryTag) String() string {
	return fmt.Sprintf("boundary[%d.%d](%s)", t.Factor, t.Facet, t.Parent)
}

// FacetEntitySet is a single entity obtained by pinning an existing index to
// one value. It shares the parent's Index rather than allocating its own, so
// boundary extraction composes with the parent's name scope.
type FacetEntitySet struct {
	core
	value int
}

func newFacet(idx Index, value int, codim int, tag Tag) *FacetEntitySet {
	return &FacetEntitySet{
		core: core{
			indices:     []Index{idx},
			constraints: []Constraint{FixedAt(idx, value)},
			codim:       codim,
			tag:         tag,
		},
		value: value,
	}
}

// Value returns the pinned index value.
func (s *FacetEntitySet) Value() int { return s.value }

func (s *FacetEntitySet) Size() int {
	idx := s.indices[0]
	if s.value < idx.Lo || s.value >= idx.Hi {
		return 0
	}
	return 1
}

func (s *FacetEntitySet) Contains(multi []int) bool { return s.contains(multi) }

func (s *FacetEntitySet) Offset(multi []int) int {
	s.checkArity(len(multi))
	return 0
}

func (s *FacetEntitySet) LinearIndexMap(exprs []symbolic.Expr) symbolic.Expr {
	s.checkArity(len(exprs))
	return symbolic.Literal(0)
}
