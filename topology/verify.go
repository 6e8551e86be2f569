package topology

import (
	"fmt"

	"github.com/notargets/meshtopo/entityset"
)

// Verify walks every point of every variant and checks the structural
// invariants all consumers rely on: cone and support step codimension by
// exactly one, produced points lie inside their declared sets, cone and
// support are symmetric, and the reported local subentity positions are
// consistent with the neighbor's cone. It returns the first violation found.
func Verify(t MeshTopology) error {
	dim := t.Dimension()
	for _, set := range t.EntityVariants() {
		codim := set.Codimension()
		for _, multi := range entityset.Enumerate(set) {
			p := NewPoint(set, multi...)

			cone, err := t.Cone(p)
			if err != nil {
				return fmt.Errorf("cone of %s: %w", p, err)
			}
			if codim == dim && len(cone) != 0 {
				return fmt.Errorf("%s at maximal codimension has nonempty cone", p)
			}
			for _, q := range cone {
				if q.Codimension() != codim+1 {
					return fmt.Errorf("cone of %s produced %s at codimension %d, want %d",
						p, q, q.Codimension(), codim+1)
				}
				if !q.Set.Contains(q.Indices) {
					return fmt.Errorf("cone of %s produced %s outside its set", p, q)
				}
				// Symmetry: p must appear among q's supports.
				sups, err := t.Support(q)
				if err != nil {
					return fmt.Errorf("support of %s: %w", q, err)
				}
				found := false
				for _, s := range sups {
					if s.Point.Equal(p) {
						found = true
						break
					}
				}
				if !found {
					return fmt.Errorf("%s is in the cone of %s but %s is not in its support", q, p, p)
				}
			}

			sups, err := t.Support(p)
			if err != nil {
				return fmt.Errorf("support of %s: %w", p, err)
			}
			if codim == 0 && len(sups) != 0 {
				return fmt.Errorf("%s at codimension 0 has nonempty support", p)
			}
			for _, s := range sups {
				if s.Codimension() != codim-1 {
					return fmt.Errorf("support of %s produced %s at codimension %d, want %d",
						p, s.Point, s.Codimension(), codim-1)
				}
				if !s.Set.Contains(s.Indices) {
					return fmt.Errorf("support of %s produced %s outside its set", p, s.Point)
				}
				// The local position must address p within the neighbor's cone.
				local, ok, err := coneLocal(t, s.Point, p)
				if err != nil {
					return fmt.Errorf("cone of %s: %w", s.Point, err)
				}
				if !ok {
					return fmt.Errorf("%s is in the support of %s but %s is not in its cone",
						s.Point, p, p)
				}
				if local != s.Local {
					return fmt.Errorf("support of %s reports %s at local %d, cone of the neighbor says %d",
						p, s.Point, s.Local, local)
				}
			}
		}
	}
	return nil
}
