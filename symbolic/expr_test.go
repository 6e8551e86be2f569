package symbolic

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestAddFolding(t *testing.T) {
	cases := []struct {
		name string
		expr Expr
		want string
	}{
		{"empty", Add(), "0"},
		{"literals", Add(Literal(2), Literal(3)), "5"},
		{"single", Add(Var("i0")), "i0"},
		{"drop zero", Add(Var("i0"), Literal(0)), "i0"},
		{"nested flatten", Add(Add(Var("i0"), Literal(1)), Add(Var("i1"), Literal(2))), "(i0 + i1 + 3)"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.want, tc.expr.String())
		})
	}
}

func TestMulFolding(t *testing.T) {
	cases := []struct {
		name string
		expr Expr
		want string
	}{
		{"empty", Mul(), "1"},
		{"literals", Mul(Literal(2), Literal(3)), "6"},
		{"zero collapses", Mul(Var("i0"), Literal(0)), "0"},
		{"drop one", Mul(Literal(1), Var("i0")), "i0"},
		{"literal first", Mul(Var("i0"), Literal(4)), "4*i0"},
		{"nested flatten", Mul(Mul(Literal(2), Var("i0")), Var("i1")), "2*i0*i1"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.want, tc.expr.String())
		})
	}
}

func TestDivRem(t *testing.T) {
	require.Equal(t, "3", Div(Literal(7), 2).String())
	require.Equal(t, "1", Rem(Literal(7), 2).String())
	require.Equal(t, "i0", Div(Var("i0"), 1).String())
	require.Equal(t, "0", Rem(Var("i0"), 1).String())
	require.Equal(t, "(i0 / 4)", Div(Var("i0"), 4).String())
	require.Equal(t, "(i0 % 4)", Rem(Var("i0"), 4).String())

	// Floor semantics on negative literals.
	require.Equal(t, "-4", Div(Literal(-7), 2).String())
	require.Equal(t, "1", Rem(Literal(-7), 2).String())
}

func TestEval(t *testing.T) {
	bindings := map[string]int{"i0": 5, "i1": 3}

	expr := Add(Mul(Var("i0"), Literal(4)), Var("i1"))
	v, err := Eval(expr, bindings)
	require.NoError(t, err)
	require.Equal(t, 23, v)

	v, err = Eval(Div(Var("i0"), 2), bindings)
	require.NoError(t, err)
	require.Equal(t, 2, v)

	v, err = Eval(Rem(Var("i0"), 2), bindings)
	require.NoError(t, err)
	require.Equal(t, 1, v)

	_, err = Eval(Var("missing"), bindings)
	require.Error(t, err)
}

func TestEvalMatchesString(t *testing.T) {
	// The rendered form is what kernel generators embed; a C compiler must
	// agree with Eval on non-negative operands, so spot-check the pieces
	// whose rendering could drift from the evaluation rules.
	expr := Add(Div(Mul(Var("n"), Add(Var("n"), Literal(-1))), 2), Var("j"))
	v, err := Eval(expr, map[string]int{"n": 5, "j": 2})
	require.NoError(t, err)
	require.Equal(t, 12, v)
	require.Equal(t, "((n*(n + -1) / 2) + j)", expr.String())
}
