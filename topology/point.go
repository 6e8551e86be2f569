package topology

import (
	"fmt"
	"strings"

	"github.com/notargets/meshtopo/entityset"
)

// Point addresses one entity within an entity set by its integer
// multi-index. Points are values; equality is structural over the indices
// and the set's variant identity.
type Point struct {
	Indices []int
	Set     entityset.EntitySet
}

// NewPoint builds a point in the given set. An arity mismatch between the
// multi-index and the set is a programmer error and panics with
// entityset.ErrDomain.
func NewPoint(set entityset.EntitySet, indices ...int) Point {
	if len(indices) != len(set.Indices()) {
		panic(fmt.Errorf("%w: point has %d indices, set %s wants %d",
			entityset.ErrDomain, len(indices), set.Tag(), len(set.Indices())))
	}
	return Point{Indices: indices, Set: set}
}

// Codimension returns the codimension of the point's entity set.
func (p Point) Codimension() int { return p.Set.Codimension() }

// Equal reports structural equality: same variant, same indices.
func (p Point) Equal(q Point) bool {
	if !entityset.SameVariant(p.Set, q.Set) || len(p.Indices) != len(q.Indices) {
		return false
	}
	for i := range p.Indices {
		if p.Indices[i] != q.Indices[i] {
			return false
		}
	}
	return true
}

func (p Point) String() string {
	parts := make([]string, len(p.Indices))
	for i, v := range p.Indices {
		parts[i] = fmt.Sprintf("%d", v)
	}
	return fmt.Sprintf("Point((%s), %s/codim %d)",
		strings.Join(parts, ", "), p.Set.Tag(), p.Set.Codimension())
}

// SupportPoint is a support neighbor together with the local subentity
// position the queried point occupies within that neighbor: the position of
// the queried point in the neighbor's cone restricted to the queried point's
// variant. An entity can appear at more than one local position of a coarser
// neighbor, so the pairing is part of the answer.
type SupportPoint struct {
	Point
	Local int
}

func (s SupportPoint) String() string {
	return fmt.Sprintf("%s@%d", s.Point, s.Local)
}

// pointKey is the comparable dedup identity of a point: its variant plus its
// flat offset within the variant. Offset is a bijection on the domain, so
// two in-domain points collide exactly when they are equal.
type pointKey struct {
	variant entityset.VariantKey
	offset  int
}

func keyOf(p Point) pointKey {
	return pointKey{variant: entityset.KeyOf(p.Set), offset: p.Set.Offset(p.Indices)}
}
