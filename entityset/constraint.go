package entityset

import (
	"fmt"
	"strings"
)

// Op is a comparison operator in a constraint.
type Op int

const (
	Lt Op = iota
	Le
	Gt
	Ge
	Eq
	Ne
)

func (o Op) String() string {
	switch o {
	case Lt:
		return "<"
	case Le:
		return "<="
	case Gt:
		return ">"
	case Ge:
		return ">="
	case Eq:
		return "=="
	case Ne:
		return "!="
	}
	return "?"
}

// Term is one summand coeff*index of a constraint's linear form.
type Term struct {
	Coeff int
	Name  string
}

// Constraint is an affine predicate over index variables:
//
//	sum(coeff_i * index_i)  op  bound
//
// with integer coefficients. This is the Presburger-arithmetic fragment the
// index algebra needs; a domain's full constraint is the conjunction of all
// its constraints. Constraints are pure value objects.
type Constraint struct {
	terms []Term
	op    Op
	bound int
}

// NewConstraint builds a constraint from explicit terms.
func NewConstraint(terms []Term, op Op, bound int) Constraint {
	return Constraint{terms: append([]Term(nil), terms...), op: op, bound: bound}
}

// SumLessThan constrains the plain sum of the given indices to be below bound.
func SumLessThan(bound int, indices ...Index) Constraint {
	terms := make([]Term, len(indices))
	for i, idx := range indices {
		terms[i] = Term{Coeff: 1, Name: idx.Name}
	}
	return Constraint{terms: terms, op: Lt, bound: bound}
}

// FixedAt pins an index to a single value.
func FixedAt(idx Index, value int) Constraint {
	return Constraint{terms: []Term{{Coeff: 1, Name: idx.Name}}, op: Eq, bound: value}
}

// Terms returns the linear form's summands.
func (c Constraint) Terms() []Term { return c.terms }

// Names returns the index names the constraint refers to.
func (c Constraint) Names() []string {
	names := make([]string, len(c.terms))
	for i, t := range c.terms {
		names[i] = t.Name
	}
	return names
}

// Holds evaluates the constraint against complete bindings. A missing binding
// is an internal invariant violation.
func (c Constraint) Holds(bindings map[string]int) bool {
	lhs := 0
	for _, t := range c.terms {
		v, ok := bindings[t.Name]
		if !ok {
			panic(fmt.Sprintf("entityset: constraint %s evaluated without binding for %q", c, t.Name))
		}
		lhs += t.Coeff * v
	}
	switch c.op {
	case Lt:
		return lhs < c.bound
	case Le:
		return lhs <= c.bound
	case Gt:
		return lhs > c.bound
	case Ge:
		return lhs >= c.bound
	case Eq:
		return lhs == c.bound
	case Ne:
		return lhs != c.bound
	}
	panic(fmt.Sprintf("entityset: unknown constraint operator %d", int(c.op)))
}

func (c Constraint) String() string {
	if len(c.terms) == 0 {
		return fmt.Sprintf("0 %s %d", c.op, c.bound)
	}
	var b strings.Builder
	for i, t := range c.terms {
		if i > 0 {
			b.WriteString(" + ")
		}
		if t.Coeff != 1 {
			fmt.Fprintf(&b, "%d*", t.Coeff)
		}
		b.WriteString(t.Name)
	}
	fmt.Fprintf(&b, " %s %d", c.op, c.bound)
	return b.String()
}
