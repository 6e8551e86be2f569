// Package topology models the combinatorial structure of meshes: which
// entity variants exist per codimension and how entities relate to
// topologically adjacent entities one codimension away. Four families cover
// the structurally distinct incidence strategies: explicit reference-cell
// tables (unstructured), coordinatewise shifts (hypercube refinement),
// delegation along an extra axis (extrusion), and hand-built shift tables
// (triangle refinement). The traversal engine works uniformly over any of
// them through Cone and Support alone.
package topology

import (
	"errors"
	"fmt"

	"github.com/notargets/meshtopo/entityset"
)

// ErrConfiguration reports malformed topology construction parameters. It is
// surfaced immediately at construction and never retried.
var ErrConfiguration = errors.New("topology: invalid configuration")

// ErrUnsupportedIncidence reports an incidence query between two entity-set
// variants with no known relation rule or table.
var ErrUnsupportedIncidence = errors.New("topology: unsupported incidence")

// unsupportedIncidence names both variants in the error, for diagnosis.
func unsupportedIncidence(from, to entityset.EntitySet) error {
	return fmt.Errorf("%w: no relation between %s/codim %d and %s/codim %d",
		ErrUnsupportedIncidence, from.Tag(), from.Codimension(), to.Tag(), to.Codimension())
}

// unknownVariant reports a point whose set does not belong to the topology.
func unknownVariant(s entityset.EntitySet) error {
	return fmt.Errorf("%w: variant %s/codim %d does not belong to this topology",
		ErrUnsupportedIncidence, s.Tag(), s.Codimension())
}

// MeshTopology is the structural model of one mesh family. Implementations
// are immutable after construction; every query is side-effect-free and safe
// for concurrent use.
//
// Cone and Support are the only single-step transitions: a point at
// codimension c steps only to c+1 (cone) or c-1 (support). Cone returns the
// empty slice at the maximal codimension and Support at codimension 0.
type MeshTopology interface {
	// Dimension is the topological dimension of the mesh cells.
	Dimension() int
	// EntityVariants returns all entity-set variants, or with an argument
	// only those of the given codimension. Requesting a codimension outside
	// [0, Dimension()] yields an empty slice.
	EntityVariants(codim ...int) []entityset.EntitySet
	// Cone returns all entities one codimension higher incident to the point
	// (its boundary facets).
	Cone(p Point) ([]Point, error)
	// Support returns all entities one codimension lower incident to the
	// point, each paired with the local subentity position the point
	// occupies within that neighbor.
	Support(p Point) ([]SupportPoint, error)
}

// selectVariants implements the EntityVariants contract over a per-codim
// variant table.
func selectVariants(entities [][]entityset.EntitySet, codim []int) []entityset.EntitySet {
	if len(codim) == 0 {
		var all []entityset.EntitySet
		for _, sets := range entities {
			all = append(all, sets...)
		}
		return all
	}
	c := codim[0]
	if c < 0 || c >= len(entities) {
		return nil
	}
	return append([]entityset.EntitySet(nil), entities[c]...)
}

// findVariant looks up a point's set among the topology's variants.
func findVariant(entities [][]entityset.EntitySet, s entityset.EntitySet) (entityset.EntitySet, bool) {
	c := s.Codimension()
	if c < 0 || c >= len(entities) {
		return nil, false
	}
	for _, v := range entities[c] {
		if entityset.SameVariant(v, s) {
			return v, true
		}
	}
	return nil, false
}

// coneLocal returns the local position of p within neighbor's cone restricted
// to p's variant, or ok=false when p is not incident to neighbor. All support
// rules derive their locals from this single definition, which keeps cone and
// support symmetric by construction.
func coneLocal(t MeshTopology, neighbor, p Point) (int, bool, error) {
	cone, err := t.Cone(neighbor)
	if err != nil {
		return 0, false, err
	}
	local := 0
	for _, q := range cone {
		if !entityset.SameVariant(q.Set, p.Set) {
			continue
		}
		if q.Equal(p) {
			return local, true, nil
		}
		local++
	}
	return 0, false, nil
}
