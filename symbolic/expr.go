// Package symbolic provides the small integer expression language emitted by
// entity-set linear index maps. Downstream kernel generators embed the
// rendered expressions directly in generated loop nests, so the language is
// deliberately tiny: variables, integer literals, sums, products, and floor
// division / modulo by positive literal divisors.
package symbolic

import (
	"fmt"
	"strconv"
	"strings"
)

// Expr is an integer-valued expression over named index variables.
type Expr interface {
	fmt.Stringer
	isExpr()
}

// Literal is a constant integer.
type Literal int

// Var is a reference to a named index variable.
type Var string

// Sum is an n-ary addition. Construct with Add, which flattens and folds.
type Sum struct {
	Terms []Expr
}

// Product is an n-ary multiplication. Construct with Mul.
type Product struct {
	Factors []Expr
}

// FloorDiv divides by a positive literal, rounding toward negative infinity.
type FloorDiv struct {
	Num Expr
	Div int
}

// Mod is the remainder paired with FloorDiv: Num - Div*floor(Num/Div).
// The result is always in [0, Div).
type Mod struct {
	Num Expr
	Div int
}

func (Literal) isExpr()  {}
func (Var) isExpr()      {}
func (Sum) isExpr()      {}
func (Product) isExpr()  {}
func (FloorDiv) isExpr() {}
func (Mod) isExpr()      {}

func (l Literal) String() string { return strconv.Itoa(int(l)) }

func (v Var) String() string { return string(v) }

func (s Sum) String() string {
	parts := make([]string, len(s.Terms))
	for i, t := range s.Terms {
		parts[i] = t.String()
	}
	return "(" + strings.Join(parts, " + ") + ")"
}

func (p Product) String() string {
	parts := make([]string, len(p.Factors))
	for i, f := range p.Factors {
		parts[i] = f.String()
	}
	return strings.Join(parts, "*")
}

func (d FloorDiv) String() string {
	return fmt.Sprintf("(%s / %d)", d.Num, d.Div)
}

func (m Mod) String() string {
	return fmt.Sprintf("(%s %% %d)", m.Num, m.Div)
}

// Add returns the sum of terms, flattening nested sums and folding literals.
// The folded literal, if nonzero, appears last. An empty sum is Literal(0).
func Add(terms ...Expr) Expr {
	flat := make([]Expr, 0, len(terms))
	lit := 0
	for _, t := range terms {
		switch e := t.(type) {
		case Literal:
			lit += int(e)
		case Sum:
			for _, inner := range e.Terms {
				if l, ok := inner.(Literal); ok {
					lit += int(l)
				} else {
					flat = append(flat, inner)
				}
			}
		default:
			flat = append(flat, t)
		}
	}
	if lit != 0 {
		flat = append(flat, Literal(lit))
	}
	switch len(flat) {
	case 0:
		return Literal(0)
	case 1:
		return flat[0]
	}
	return Sum{Terms: flat}
}

// Mul returns the product of factors, flattening nested products and folding
// literals. A zero literal collapses the whole product; the folded literal, if
// not 1, appears first. An empty product is Literal(1).
func Mul(factors ...Expr) Expr {
	flat := make([]Expr, 0, len(factors))
	lit := 1
	for _, f := range factors {
		switch e := f.(type) {
		case Literal:
			lit *= int(e)
		case Product:
			for _, inner := range e.Factors {
				if l, ok := inner.(Literal); ok {
					lit *= int(l)
				} else {
					flat = append(flat, inner)
				}
			}
		default:
			flat = append(flat, f)
		}
	}
	if lit == 0 {
		return Literal(0)
	}
	if lit != 1 {
		flat = append([]Expr{Literal(lit)}, flat...)
	}
	switch len(flat) {
	case 0:
		return Literal(1)
	case 1:
		return flat[0]
	}
	return Product{Factors: flat}
}

// Div returns floor(e / div). The divisor must be positive.
func Div(e Expr, div int) Expr {
	if div <= 0 {
		panic(fmt.Sprintf("symbolic: non-positive divisor %d", div))
	}
	if div == 1 {
		return e
	}
	if l, ok := e.(Literal); ok {
		return Literal(floorDiv(int(l), div))
	}
	return FloorDiv{Num: e, Div: div}
}

// Rem returns e mod div in [0, div). The divisor must be positive.
func Rem(e Expr, div int) Expr {
	if div <= 0 {
		panic(fmt.Sprintf("symbolic: non-positive divisor %d", div))
	}
	if div == 1 {
		return Literal(0)
	}
	if l, ok := e.(Literal); ok {
		return Literal(floorMod(int(l), div))
	}
	return Mod{Num: e, Div: div}
}

// Eval evaluates e against the given variable bindings. An unbound variable
// is an error.
func Eval(e Expr, bindings map[string]int) (int, error) {
	switch expr := e.(type) {
	case Literal:
		return int(expr), nil
	case Var:
		v, ok := bindings[string(expr)]
		if !ok {
			return 0, fmt.Errorf("symbolic: unbound variable %q", string(expr))
		}
		return v, nil
	case Sum:
		total := 0
		for _, t := range expr.Terms {
			v, err := Eval(t, bindings)
			if err != nil {
				return 0, err
			}
			total += v
		}
		return total, nil
	case Product:
		total := 1
		for _, f := range expr.Factors {
			v, err := Eval(f, bindings)
			if err != nil {
				return 0, err
			}
			total *= v
		}
		return total, nil
	case FloorDiv:
		v, err := Eval(expr.Num, bindings)
		if err != nil {
			return 0, err
		}
		return floorDiv(v, expr.Div), nil
	case Mod:
		v, err := Eval(expr.Num, bindings)
		if err != nil {
			return 0, err
		}
		return floorMod(v, expr.Div), nil
	}
	return 0, fmt.Errorf("symbolic: unhandled expression type %T", e)
}

// floorDiv rounds toward negative infinity; b must be positive.
func floorDiv(a, b int) int {
	q := a / b
	if a%b != 0 && a < 0 {
		q--
	}
	return q
}

func floorMod(a, b int) int {
	r := a % b
	if r < 0 {
		r += b
	}
	return r
}
