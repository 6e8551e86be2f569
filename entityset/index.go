package entityset

import (
	"fmt"

	"github.com/notargets/meshtopo/symbolic"
)

// Index is a named integer variable ranging over the half-open interval
// [Lo, Hi). Indices are value types and immutable once created.
type Index struct {
	Name string
	Lo   int
	Hi   int
}

// NewIndex creates an index over [lo, hi). lo > hi is a programmer error.
func NewIndex(name string, lo, hi int) Index {
	if lo > hi {
		panic(fmt.Sprintf("entityset: index %q has lo=%d > hi=%d", name, lo, hi))
	}
	return Index{Name: name, Lo: lo, Hi: hi}
}

// Extent returns the number of integer values the index ranges over.
func (i Index) Extent() int { return i.Hi - i.Lo }

// Var returns the index as a symbolic variable reference.
func (i Index) Var() symbolic.Expr { return symbolic.Var(i.Name) }

func (i Index) String() string {
	return fmt.Sprintf("%s[%d,%d)", i.Name, i.Lo, i.Hi)
}

// Arena hands out unique index names within one topology construction. It
// replaces a process-wide counter: name uniqueness is scoped to the arena,
// and names already taken (for example by a wrapped base topology's sets)
// can be reserved so fresh names never collide with them.
type Arena struct {
	next int
	used map[string]bool
}

// NewArena creates an empty name arena.
func NewArena() *Arena {
	return &Arena{used: make(map[string]bool)}
}

// Reserve marks names as taken so Fresh will skip them.
func (a *Arena) Reserve(names ...string) {
	for _, n := range names {
		a.used[n] = true
	}
}

// ReserveSet reserves every index name appearing in the given sets.
func (a *Arena) ReserveSet(sets ...EntitySet) {
	for _, s := range sets {
		for _, idx := range s.Indices() {
			a.Reserve(idx.Name)
		}
	}
}

// Fresh allocates a new uniquely named index over [lo, hi).
func (a *Arena) Fresh(lo, hi int) Index {
	for {
		name := fmt.Sprintf("i%d", a.next)
		a.next++
		if !a.used[name] {
			a.used[name] = true
			return NewIndex(name, lo, hi)
		}
	}
}
