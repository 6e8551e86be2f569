// Package entityset represents collections of mesh entities as constrained
// integer domains: a tuple of bounded indices plus affine constraints, tagged
// with a codimension and a variant tag. Sets expose exact cardinality and a
// bijective multi-index to flat-offset map, both as fast integer paths and as
// symbolic expressions for downstream loop generators.
package entityset

import (
	"errors"
	"fmt"
	"sync"

	"github.com/notargets/meshtopo/symbolic"
)

// ErrDomain reports a multi-index or expression tuple whose arity does not
// match the target set. It is a programmer error: boundary checks panic with
// an error wrapping ErrDomain.
var ErrDomain = errors.New("entityset: multi-index arity mismatch")

// ErrConfiguration reports malformed set construction parameters.
var ErrConfiguration = errors.New("entityset: invalid configuration")

// Tag distinguishes entity-set variants that are otherwise structurally
// identical (for example horizontal versus vertical extrusion layers).
// Concrete tag types must be comparable values; incidence tables key on
// (tag, codimension) equality, never on object identity.
type Tag interface {
	String() string
}

// VariantKey is the comparable identity of an entity-set variant.
type VariantKey struct {
	Tag   Tag
	Codim int
}

// KeyOf returns the variant key of a set.
func KeyOf(s EntitySet) VariantKey {
	return VariantKey{Tag: s.Tag(), Codim: s.Codimension()}
}

// SameVariant reports whether two sets are the same variant: equal tags and
// equal codimension.
func SameVariant(a, b EntitySet) bool {
	return KeyOf(a) == KeyOf(b)
}

// GenericTag is a plain string tag for sets that need no family-specific
// variant structure.
type GenericTag string

func (t GenericTag) String() string { return string(t) }

// EntitySet is a constrained integer domain describing one variant of mesh
// entities. All implementations are immutable after construction and safe
// for concurrent reads.
type EntitySet interface {
	// Indices returns the set's index tuple in declared order.
	Indices() []Index
	// Constraints returns the conjunction of affine constraints.
	Constraints() []Constraint
	// Codimension of the entities in the set.
	Codimension() int
	// Tag distinguishes this variant from others of the same codimension.
	Tag() Tag
	// Size returns the exact number of integer points satisfying the
	// constraints within the index bounds.
	Size() int
	// Contains reports whether the multi-index lies in the domain. The
	// multi-index arity must match Indices.
	Contains(multi []int) bool
	// Offset maps a satisfying multi-index to its flat offset in [0, Size()).
	// The map is a bijection between the domain and [0, Size()).
	Offset(multi []int) int
	// LinearIndexMap is the symbolic counterpart of Offset: given one
	// expression per index in declared order it returns the flat-offset
	// expression. Offset and the evaluated LinearIndexMap agree exactly.
	LinearIndexMap(exprs []symbolic.Expr) symbolic.Expr
	// IndexExtents returns the per-index extents hi-lo.
	IndexExtents() []int
}

// core carries the state shared by all entity-set implementations.
type core struct {
	indices     []Index
	constraints []Constraint
	codim       int
	tag         Tag

	sizeOnce sync.Once
	sizeVal  int
}

func (c *core) Indices() []Index          { return c.indices }
func (c *core) Constraints() []Constraint { return c.constraints }
func (c *core) Codimension() int          { return c.codim }
func (c *core) Tag() Tag                  { return c.tag }

func (c *core) IndexExtents() []int {
	extents := make([]int, len(c.indices))
	for i, idx := range c.indices {
		extents[i] = idx.Extent()
	}
	return extents
}

// memoSize computes the size once and caches it for the set's lifetime.
func (c *core) memoSize(count func() int) int {
	c.sizeOnce.Do(func() { c.sizeVal = count() })
	return c.sizeVal
}

// checkArity panics with ErrDomain when the supplied tuple length does not
// match the set's index arity.
func (c *core) checkArity(got int) {
	if got != len(c.indices) {
		panic(fmt.Errorf("%w: got %d values, want %d", ErrDomain, got, len(c.indices)))
	}
}

// contains is the generic membership test: per-index bounds plus every
// constraint.
func (c *core) contains(multi []int) bool {
	c.checkArity(len(multi))
	bindings := make(map[string]int, len(multi))
	for i, idx := range c.indices {
		if multi[i] < idx.Lo || multi[i] >= idx.Hi {
			return false
		}
		bindings[idx.Name] = multi[i]
	}
	for _, con := range c.constraints {
		if !con.Holds(bindings) {
			return false
		}
	}
	return true
}

// Enumerate lists every multi-index in the set's domain in odometer order
// (last index fastest), scanning the bounding box and filtering by the
// constraints. It is the ground-truth counting path: closed-form Size
// implementations must agree with len(Enumerate(s)) exactly.
func Enumerate(s EntitySet) [][]int {
	indices := s.Indices()
	if len(indices) == 0 {
		if s.Contains(nil) {
			return [][]int{{}}
		}
		return nil
	}
	var out [][]int
	multi := make([]int, len(indices))
	for i, idx := range indices {
		multi[i] = idx.Lo
	}
	for {
		if s.Contains(multi) {
			out = append(out, append([]int(nil), multi...))
		}
		// Advance the odometer, last index fastest.
		pos := len(multi) - 1
		for pos >= 0 {
			multi[pos]++
			if multi[pos] < indices[pos].Hi {
				break
			}
			multi[pos] = indices[pos].Lo
			pos--
		}
		if pos < 0 {
			return out
		}
	}
}
