package topology

import (
	"fmt"

	"github.com/notargets/meshtopo/entityset"
)

// The traversal engine is topology-agnostic: it is built only on Cone and
// Support. Every walk looks like general graph search but is acyclic, since
// codimension is strictly monotonic per step and bounded by the mesh
// dimension, so a plain visited set suffices for termination.

// Closure returns every point reachable from p by repeated cone steps,
// including p itself, in depth-first visitation order. Each distinct point
// appears exactly once.
func Closure(t MeshTopology, p Point) ([]Point, error) {
	return walk(p, t.Cone)
}

// Star returns every point reachable from p by repeated support steps,
// including p itself, in depth-first visitation order.
func Star(t MeshTopology, p Point) ([]Point, error) {
	step := func(q Point) ([]Point, error) {
		sups, err := t.Support(q)
		if err != nil {
			return nil, err
		}
		pts := make([]Point, len(sups))
		for i, s := range sups {
			pts[i] = s.Point
		}
		return pts, nil
	}
	return walk(p, step)
}

// walk is a depth-first traversal with an explicit stack and a visited set.
func walk(start Point, step func(Point) ([]Point, error)) ([]Point, error) {
	var result []Point
	visited := map[pointKey]bool{keyOf(start): true}
	stack := []Point{start}
	for len(stack) > 0 {
		p := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		result = append(result, p)
		next, err := step(p)
		if err != nil {
			return nil, err
		}
		// Push in reverse so the first neighbor is visited first.
		for i := len(next) - 1; i >= 0; i-- {
			k := keyOf(next[i])
			if !visited[k] {
				visited[k] = true
				stack = append(stack, next[i])
			}
		}
	}
	return result, nil
}

// IndexRelation returns all points of the target entity set reachable from
// p, stepping by cone when the target codimension is higher, by support when
// lower, and returning p itself when equal. The step direction is fixed for
// the whole call; results are deduplicated.
func IndexRelation(t MeshTopology, p Point, target entityset.EntitySet) ([]Point, error) {
	from, to := p.Codimension(), target.Codimension()
	if from == to {
		if entityset.SameVariant(p.Set, target) {
			return []Point{p}, nil
		}
		return nil, unsupportedIncidence(p.Set, target)
	}

	var step func(Point) ([]Point, error)
	if to > from {
		step = t.Cone
	} else {
		step = func(q Point) ([]Point, error) {
			sups, err := t.Support(q)
			if err != nil {
				return nil, err
			}
			pts := make([]Point, len(sups))
			for i, s := range sups {
				pts[i] = s.Point
			}
			return pts, nil
		}
	}

	// Breadth-first by codimension level: every point in frontier is the
	// same number of steps from p, so the loop runs |to-from| times.
	frontier := []Point{p}
	steps := to - from
	if steps < 0 {
		steps = -steps
	}
	for s := 0; s < steps; s++ {
		seen := make(map[pointKey]bool)
		var next []Point
		for _, q := range frontier {
			pts, err := step(q)
			if err != nil {
				return nil, err
			}
			for _, r := range pts {
				k := keyOf(r)
				if !seen[k] {
					seen[k] = true
					next = append(next, r)
				}
			}
		}
		frontier = next
	}

	var result []Point
	for _, q := range frontier {
		if entityset.SameVariant(q.Set, target) {
			result = append(result, q)
		}
	}
	return result, nil
}

// SubentityMap returns the local-th cone point of p within the target
// variant: the classic "local subentity" addressing of reference-cell code.
func SubentityMap(t MeshTopology, p Point, target entityset.EntitySet, local int) (Point, error) {
	if target.Codimension() != p.Codimension()+1 {
		return Point{}, unsupportedIncidence(p.Set, target)
	}
	cone, err := t.Cone(p)
	if err != nil {
		return Point{}, err
	}
	n := 0
	for _, q := range cone {
		if !entityset.SameVariant(q.Set, target) {
			continue
		}
		if n == local {
			return q, nil
		}
		n++
	}
	return Point{}, fmt.Errorf("%w: %s has %d subentities in %s/codim %d, requested %d",
		ErrUnsupportedIncidence, p, n, target.Tag(), target.Codimension(), local)
}

// DualSubentityMap returns p's support neighbors restricted to the target
// variant, with their local subentity positions.
func DualSubentityMap(t MeshTopology, p Point, target entityset.EntitySet) ([]SupportPoint, error) {
	if target.Codimension() != p.Codimension()-1 {
		return nil, unsupportedIncidence(p.Set, target)
	}
	sups, err := t.Support(p)
	if err != nil {
		return nil, err
	}
	var out []SupportPoint
	for _, s := range sups {
		if entityset.SameVariant(s.Set, target) {
			out = append(out, s)
		}
	}
	return out, nil
}
