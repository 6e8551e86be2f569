package entityset

import (
	"fmt"

	"github.com/notargets/meshtopo/symbolic"
)

// The simplex family describes sets whose constraint is "coordinates
// non-negative and summing below an extent". Each member supplies a
// closed-form size and a bijective linear index map; enumeration is never
// needed for these sets.

// newSimplexCore builds the shared state for a dim-dimensional simplex set:
// dim fresh indices over [0, extent) plus the single sum constraint.
func newSimplexCore(a *Arena, dim, extent, codim int, tag Tag) (core, error) {
	if extent < 0 {
		return core{}, fmt.Errorf("%w: negative extent %d", ErrConfiguration, extent)
	}
	if codim < 0 {
		return core{}, fmt.Errorf("%w: negative codimension %d", ErrConfiguration, codim)
	}
	indices := make([]Index, dim)
	for i := range indices {
		indices[i] = a.Fresh(0, extent)
	}
	var constraints []Constraint
	if dim > 0 {
		constraints = []Constraint{SumLessThan(extent, indices...)}
	}
	return core{indices: indices, constraints: constraints, codim: codim, tag: tag}, nil
}

// PointEntitySet is a single zero-dimensional point.
type PointEntitySet struct {
	core
}

// NewPoint creates a point set.
func NewPoint(a *Arena, codim int, tag Tag) (*PointEntitySet, error) {
	c, err := newSimplexCore(a, 0, 1, codim, tag)
	if err != nil {
		return nil, err
	}
	return &PointEntitySet{core: c}, nil
}

func (s *PointEntitySet) Size() int { return 1 }

func (s *PointEntitySet) Contains(multi []int) bool { return s.contains(multi) }

func (s *PointEntitySet) Offset(multi []int) int {
	s.checkArity(len(multi))
	return 0
}

func (s *PointEntitySet) LinearIndexMap(exprs []symbolic.Expr) symbolic.Expr {
	s.checkArity(len(exprs))
	return symbolic.Literal(0)
}

// IntervalEntitySet is a run of extent entities along one axis.
type IntervalEntitySet struct {
	core
	extent int
}

// NewInterval creates an interval set of the given extent.
func NewInterval(a *Arena, extent, codim int, tag Tag) (*IntervalEntitySet, error) {
	c, err := newSimplexCore(a, 1, extent, codim, tag)
	if err != nil {
		return nil, err
	}
	return &IntervalEntitySet{core: c, extent: extent}, nil
}

// Extent returns the interval length.
func (s *IntervalEntitySet) Extent() int { return s.extent }

func (s *IntervalEntitySet) Size() int { return s.extent }

func (s *IntervalEntitySet) Contains(multi []int) bool { return s.contains(multi) }

func (s *IntervalEntitySet) Offset(multi []int) int {
	s.checkArity(len(multi))
	return multi[0]
}

func (s *IntervalEntitySet) LinearIndexMap(exprs []symbolic.Expr) symbolic.Expr {
	s.checkArity(len(exprs))
	return exprs[0]
}

// Boundaries returns the interval's two endpoint facets, sharing the parent's
// index pinned to the low and high ends respectively.
func (s *IntervalEntitySet) Boundaries() []EntitySet {
	idx := s.indices[0]
	return []EntitySet{
		newFacet(idx, idx.Lo, s.codim+1, BoundaryTag{Parent: s.tag, Facet: 0}),
		newFacet(idx, idx.Hi-1, s.codim+1, BoundaryTag{Parent: s.tag, Facet: 1}),
	}
}

// PeriodicIntervalEntitySet is an interval whose linear map wraps around,
// identifying offset extent with offset 0. It has no boundary facets.
type PeriodicIntervalEntitySet struct {
	core
	extent int
}

// NewPeriodicInterval creates a periodic interval set.
func NewPeriodicInterval(a *Arena, extent, codim int, tag Tag) (*PeriodicIntervalEntitySet, error) {
	if extent <= 0 {
		return nil, fmt.Errorf("%w: periodic interval needs positive extent, got %d", ErrConfiguration, extent)
	}
	c, err := newSimplexCore(a, 1, extent, codim, tag)
	if err != nil {
		return nil, err
	}
	return &PeriodicIntervalEntitySet{core: c, extent: extent}, nil
}

// Extent returns the period.
func (s *PeriodicIntervalEntitySet) Extent() int { return s.extent }

func (s *PeriodicIntervalEntitySet) Size() int { return s.extent }

func (s *PeriodicIntervalEntitySet) Contains(multi []int) bool { return s.contains(multi) }

func (s *PeriodicIntervalEntitySet) Offset(multi []int) int {
	s.checkArity(len(multi))
	m := multi[0] % s.extent
	if m < 0 {
		m += s.extent
	}
	return m
}

func (s *PeriodicIntervalEntitySet) LinearIndexMap(exprs []symbolic.Expr) symbolic.Expr {
	s.checkArity(len(exprs))
	return symbolic.Rem(exprs[0], s.extent)
}

// TriangleEntitySet holds entities addressed by (i, j) with i + j < extent.
type TriangleEntitySet struct {
	core
	extent int
}

// NewTriangle creates a triangle set of the given extent.
func NewTriangle(a *Arena, extent, codim int, tag Tag) (*TriangleEntitySet, error) {
	c, err := newSimplexCore(a, 2, extent, codim, tag)
	if err != nil {
		return nil, err
	}
	return &TriangleEntitySet{core: c, extent: extent}, nil
}

// Extent returns the triangle's edge length.
func (s *TriangleEntitySet) Extent() int { return s.extent }

func (s *TriangleEntitySet) Size() int {
	n := s.extent
	return n * (n + 1) / 2
}

func (s *TriangleEntitySet) Contains(multi []int) bool { return s.contains(multi) }

func (s *TriangleEntitySet) Offset(multi []int) int {
	s.checkArity(len(multi))
	return triangularIndex(multi[0], multi[1], s.extent)
}

func (s *TriangleEntitySet) LinearIndexMap(exprs []symbolic.Expr) symbolic.Expr {
	s.checkArity(len(exprs))
	return triangularIndexExpr(exprs[0], exprs[1], symbolic.Literal(s.extent))
}

// TetrahedronEntitySet holds entities addressed by (i, j, k) with
// i + j + k < extent.
type TetrahedronEntitySet struct {
	core
	extent int
}

// NewTetrahedron creates a tetrahedron set of the given extent.
func NewTetrahedron(a *Arena, extent, codim int, tag Tag) (*TetrahedronEntitySet, error) {
	c, err := newSimplexCore(a, 3, extent, codim, tag)
	if err != nil {
		return nil, err
	}
	return &TetrahedronEntitySet{core: c, extent: extent}, nil
}

// Extent returns the tetrahedron's edge length.
func (s *TetrahedronEntitySet) Extent() int { return s.extent }

func (s *TetrahedronEntitySet) Size() int {
	n := s.extent
	return n * (n + 1) * (n + 2) / 6
}

func (s *TetrahedronEntitySet) Contains(multi []int) bool { return s.contains(multi) }

func (s *TetrahedronEntitySet) Offset(multi []int) int {
	s.checkArity(len(multi))
	i, j, k := multi[0], multi[1], multi[2]
	n := s.extent
	ioff := n*(n+1)*(n+2)/6 - (n-i)*(n-i+1)*(n-i+2)/6
	return ioff + triangularIndex(j, k, n-i)
}

func (s *TetrahedronEntitySet) LinearIndexMap(exprs []symbolic.Expr) symbolic.Expr {
	s.checkArity(len(exprs))
	i, j, k := exprs[0], exprs[1], exprs[2]
	n := s.extent
	// Remaining extent after the leading coordinate.
	m := symbolic.Add(symbolic.Literal(n), symbolic.Mul(symbolic.Literal(-1), i))
	// Layers before i: T(n) - T(n-i) with T the tetrahedral number.
	layers := symbolic.Add(
		symbolic.Literal(n*(n+1)*(n+2)/6),
		symbolic.Mul(symbolic.Literal(-1), symbolic.Div(
			symbolic.Mul(m, symbolic.Add(m, symbolic.Literal(1)), symbolic.Add(m, symbolic.Literal(2))), 6)),
	)
	return symbolic.Add(layers, triangularIndexExpr(j, k, m))
}

// triangularIndex enumerates (i, j) with i + j < n row by row: row i holds
// n-i entries, addressed linearly by j.
func triangularIndex(i, j, n int) int {
	return n*(n-1)/2 - (n-i)*(n-i-1)/2 + i + j
}

// triangularIndexExpr is triangularIndex over expressions; n may itself be an
// expression (the tetrahedral map recurses with a reduced extent).
func triangularIndexExpr(i, j, n symbolic.Expr) symbolic.Expr {
	// n*(n-1)/2
	total := symbolic.Div(symbolic.Mul(n, symbolic.Add(n, symbolic.Literal(-1))), 2)
	// (n-i)*(n-i-1)/2
	rem := symbolic.Add(n, symbolic.Mul(symbolic.Literal(-1), i))
	skipped := symbolic.Div(symbolic.Mul(rem, symbolic.Add(rem, symbolic.Literal(-1))), 2)
	return symbolic.Add(total, symbolic.Mul(symbolic.Literal(-1), skipped), i, j)
}
