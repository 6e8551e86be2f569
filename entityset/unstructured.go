package entityset

import (
	"fmt"

	"github.com/notargets/meshtopo/symbolic"
)

// UnstructuredEntitySet is a bare [0, count) domain with no structure beyond
// its size. Table-based topologies address their entities through it, and
// degree-of-freedom factors in data layouts reuse it.
type UnstructuredEntitySet struct {
	core
	count int
}

// NewUnstructured creates a flat set of count entities.
func NewUnstructured(a *Arena, count, codim int, tag Tag) (*UnstructuredEntitySet, error) {
	if count < 0 {
		return nil, fmt.Errorf("%w: negative entity count %d", ErrConfiguration, count)
	}
	if codim < 0 {
		return nil, fmt.Errorf("%w: negative codimension %d", ErrConfiguration, codim)
	}
	return &UnstructuredEntitySet{
		core:  core{indices: []Index{a.Fresh(0, count)}, codim: codim, tag: tag},
		count: count,
	}, nil
}

func (s *UnstructuredEntitySet) Size() int { return s.count }

func (s *UnstructuredEntitySet) Contains(multi []int) bool { return s.contains(multi) }

func (s *UnstructuredEntitySet) Offset(multi []int) int {
	s.checkArity(len(multi))
	return multi[0]
}

func (s *UnstructuredEntitySet) LinearIndexMap(exprs []symbolic.Expr) symbolic.Expr {
	s.checkArity(len(exprs))
	return exprs[0]
}
