package entityset

import (
	"fmt"

	"github.com/notargets/meshtopo/symbolic"
)

// TensorProductEntitySet composes non-product factor sets into one domain by
// concatenating their indices and constraints. Nested products flatten at
// construction, so the factor list is always flat; size is the product of
// factor sizes and the linear map combines factor maps with row-major
// strides, last factor fastest unless the caller supplies an ordering.
type TensorProductEntitySet struct {
	core
	factors []EntitySet
}

// NewTensorProduct builds a product set from the given factors. Factors that
// are themselves products are spliced into the flat list in place. Index
// names must be unique across the flattened factors.
func NewTensorProduct(tag Tag, factors ...EntitySet) (*TensorProductEntitySet, error) {
	if len(factors) == 0 {
		return nil, fmt.Errorf("%w: tensor product needs at least one factor", ErrConfiguration)
	}
	var flat []EntitySet
	for _, f := range factors {
		if p, ok := f.(*TensorProductEntitySet); ok {
			flat = append(flat, p.factors...)
		} else {
			flat = append(flat, f)
		}
	}

	var indices []Index
	var constraints []Constraint
	codim := 0
	seen := make(map[string]bool)
	for _, f := range flat {
		for _, idx := range f.Indices() {
			if seen[idx.Name] {
				return nil, fmt.Errorf("%w: duplicate index name %q across product factors",
					ErrConfiguration, idx.Name)
			}
			seen[idx.Name] = true
			indices = append(indices, idx)
		}
		constraints = append(constraints, f.Constraints()...)
		codim += f.Codimension()
	}

	return &TensorProductEntitySet{
		core:    core{indices: indices, constraints: constraints, codim: codim, tag: tag},
		factors: flat,
	}, nil
}

// Factors returns the flat factor list.
func (s *TensorProductEntitySet) Factors() []EntitySet { return s.factors }

func (s *TensorProductEntitySet) Size() int {
	return s.memoSize(func() int {
		size := 1
		for _, f := range s.factors {
			size *= f.Size()
		}
		return size
	})
}

func (s *TensorProductEntitySet) Contains(multi []int) bool { return s.contains(multi) }

// split slices a flat tuple into per-factor tuples in factor order.
func splitByFactor[T any](factors []EntitySet, flat []T) [][]T {
	out := make([][]T, len(factors))
	for i, f := range factors {
		n := len(f.Indices())
		out[i] = flat[:n]
		flat = flat[n:]
	}
	return out
}

func (s *TensorProductEntitySet) Offset(multi []int) int {
	s.checkArity(len(multi))
	parts := splitByFactor(s.factors, multi)
	offset := 0
	stride := 1
	for i := len(s.factors) - 1; i >= 0; i-- {
		offset += s.factors[i].Offset(parts[i]) * stride
		stride *= s.factors[i].Size()
	}
	return offset
}

func (s *TensorProductEntitySet) LinearIndexMap(exprs []symbolic.Expr) symbolic.Expr {
	order := make([]int, len(s.factors))
	for i := range order {
		order[i] = i
	}
	return s.LinearIndexMapOrdered(exprs, order)
}

// LinearIndexMapOrdered computes the flat-offset expression with a
// caller-supplied factor ordering, slowest-varying factor first. The order
// must be a permutation of the factor positions; the default declared order
// makes the last factor vary fastest.
func (s *TensorProductEntitySet) LinearIndexMapOrdered(exprs []symbolic.Expr, order []int) symbolic.Expr {
	s.checkArity(len(exprs))
	if len(order) != len(s.factors) {
		panic(fmt.Errorf("%w: order has %d entries, want %d", ErrDomain, len(order), len(s.factors)))
	}
	seen := make([]bool, len(s.factors))
	for _, o := range order {
		if o < 0 || o >= len(s.factors) || seen[o] {
			panic(fmt.Errorf("%w: order %v is not a permutation of %d factors", ErrDomain, order, len(s.factors)))
		}
		seen[o] = true
	}

	parts := splitByFactor(s.factors, exprs)
	terms := make([]symbolic.Expr, len(order))
	stride := 1
	for k := len(order) - 1; k >= 0; k-- {
		f := s.factors[order[k]]
		terms[k] = symbolic.Mul(f.LinearIndexMap(parts[order[k]]), symbolic.Literal(stride))
		stride *= f.Size()
	}
	return symbolic.Add(terms...)
}

// Boundaries returns the product's boundary subsets: for each factor that has
// boundaries, one product per (factor, facet) pair with the facet substituted
// and the remaining factors unchanged.
func (s *TensorProductEntitySet) Boundaries() []EntitySet {
	var out []EntitySet
	for fi, f := range s.factors {
		b, ok := f.(Bounded)
		if !ok {
			continue
		}
		for bi, facet := range b.Boundaries() {
			repl := make([]EntitySet, len(s.factors))
			copy(repl, s.factors)
			repl[fi] = facet
			sub, err := NewTensorProduct(BoundaryTag{Parent: s.tag, Factor: fi, Facet: bi}, repl...)
			if err != nil {
				// Facets share the replaced factor's index, so names stay unique.
				panic(fmt.Sprintf("entityset: boundary substitution failed: %v", err))
			}
			out = append(out, sub)
		}
	}
	return out
}
