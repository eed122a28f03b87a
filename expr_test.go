package algebra_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	algebra "github.com/ArduinoMinas/ComputerAlgebra"
)

// ============================================================
// Constructors
// ============================================================

func TestAddOf_Flattens(t *testing.T) {
	x, y, z := algebra.S("x"), algebra.S("y"), algebra.S("z")
	e := algebra.AddOf(algebra.AddOf(x, y), z)
	require.Equal(t, "x + y + z", e.String())
}

func TestAddOf_DropsZeros(t *testing.T) {
	x := algebra.S("x")
	e := algebra.AddOf(x, algebra.N(0), algebra.S("y"))
	require.Equal(t, "x + y", e.String())
}

func TestAddOf_EmptyIsZero(t *testing.T) {
	require.Equal(t, "0", algebra.AddOf().String())
	require.Equal(t, "0", algebra.AddOf(algebra.N(0), algebra.N(0)).String())
}

func TestAddOf_SingleTermIsBare(t *testing.T) {
	x := algebra.S("x")
	require.Same(t, algebra.Expr(x), algebra.AddOf(x, algebra.N(0)))
}

func TestAddOf_DoesNotCombineLikeTerms(t *testing.T) {
	// Collection is the evaluator's job; the constructor only flattens.
	x := algebra.S("x")
	require.Equal(t, "x + x", algebra.AddOf(x, x).String())
	require.Equal(t, "2 + 3", algebra.AddOf(algebra.N(2), algebra.N(3)).String())
}

func TestMulOf_Flattens(t *testing.T) {
	x, y, z := algebra.S("x"), algebra.S("y"), algebra.S("z")
	e := algebra.MulOf(algebra.MulOf(x, y), z)
	require.Equal(t, "x*y*z", e.String())
}

func TestMulOf_DropsOnes(t *testing.T) {
	x := algebra.S("x")
	e := algebra.MulOf(algebra.N(1), x, algebra.N(1), algebra.S("y"))
	require.Equal(t, "x*y", e.String())
}

func TestMulOf_ZeroCollapses(t *testing.T) {
	x := algebra.S("x")
	require.Equal(t, "0", algebra.MulOf(x, algebra.N(0), algebra.S("y")).String())
}

func TestMulOf_EmptyIsOne(t *testing.T) {
	require.Equal(t, "1", algebra.MulOf().String())
	require.Equal(t, "1", algebra.MulOf(algebra.N(1)).String())
}

func TestSumTermsInvertsAddOf(t *testing.T) {
	x, y := algebra.S("x"), algebra.S("y")
	e := algebra.AddOf(x, y)
	require.Len(t, algebra.SumTerms(e), 2)
	require.Len(t, algebra.SumTerms(x), 1)
}

func TestMulFactorsInvertsMulOf(t *testing.T) {
	x, y := algebra.S("x"), algebra.S("y")
	e := algebra.MulOf(x, y)
	require.Len(t, algebra.MulFactors(e), 2)
	require.Len(t, algebra.MulFactors(x), 1)
}

// ============================================================
// Rendering
// ============================================================

func TestString_SumInProductParenthesized(t *testing.T) {
	x, y, z := algebra.S("x"), algebra.S("y"), algebra.S("z")
	e := algebra.MulOf(algebra.AddOf(x, y), z)
	require.Equal(t, "(x + y)*z", e.String())
}

func TestString_PowParenthesization(t *testing.T) {
	x, y := algebra.S("x"), algebra.S("y")
	require.Equal(t, "(x + y)^2", algebra.PowOf(algebra.AddOf(x, y), algebra.N(2)).String())
	require.Equal(t, "(x*y)^2", algebra.PowOf(algebra.MulOf(x, y), algebra.N(2)).String())
	require.Equal(t, "x^(y + 1)", algebra.PowOf(x, algebra.AddOf(y, algebra.N(1))).String())
	require.Equal(t, "(x^2)^3", algebra.PowOf(algebra.PowOf(x, algebra.N(2)), algebra.N(3)).String())
}

func TestString_BinaryAndUnary(t *testing.T) {
	x, y := algebra.S("x"), algebra.S("y")
	require.Equal(t, "x < y", algebra.BinaryOf(algebra.OpLt, x, y).String())
	require.Equal(t, "x != y", algebra.BinaryOf(algebra.OpNe, x, y).String())
	require.Equal(t, "not x", algebra.UnaryOf(algebra.OpNot, x).String())
	require.Equal(t, "not (x + y)", algebra.UnaryOf(algebra.OpNot, algebra.AddOf(x, y)).String())
}

func TestString_SetAndArrow(t *testing.T) {
	e := algebra.SetOf(
		algebra.ArrowOf(algebra.S("x"), algebra.N(2)),
		algebra.ArrowOf(algebra.S("y"), algebra.N(3)),
	)
	require.Equal(t, "{x -> 2, y -> 3}", e.String())
}

func TestString_Call(t *testing.T) {
	e := algebra.CallOf(algebra.FnAbs, algebra.AddOf(algebra.S("x"), algebra.N(1)))
	require.Equal(t, "abs(x + 1)", e.String())
}

// ============================================================
// Equality
// ============================================================

func TestEqual_StructuralAcrossPointers(t *testing.T) {
	a := algebra.AddOf(algebra.S("x"), algebra.MulOf(algebra.N(2), algebra.S("y")))
	b := algebra.AddOf(algebra.S("x"), algebra.MulOf(algebra.N(2), algebra.S("y")))
	require.True(t, a.Equal(b))
}

func TestEqual_OrderSensitive(t *testing.T) {
	a := algebra.AddOf(algebra.S("x"), algebra.S("y"))
	b := algebra.AddOf(algebra.S("y"), algebra.S("x"))
	require.False(t, a.Equal(b))
}

func TestEqual_NumByValue(t *testing.T) {
	require.True(t, algebra.F(2, 4).Equal(algebra.F(1, 2)))
	require.False(t, algebra.N(2).Equal(algebra.S("x")))
}

// ============================================================
// Free variables
// ============================================================

func TestVars(t *testing.T) {
	x, y := algebra.S("x"), algebra.S("y")
	e := algebra.BinaryOf(algebra.OpLt,
		algebra.AddOf(algebra.PowOf(x, algebra.N(2)), algebra.CallOf(algebra.FnAbs, y)),
		algebra.N(10),
	)
	got := algebra.Vars(e)
	require.Len(t, got, 2)
	require.Contains(t, got, "x")
	require.Contains(t, got, "y")
}

func TestVars_ConstantHasNone(t *testing.T) {
	require.Empty(t, algebra.Vars(algebra.N(5)))
}
