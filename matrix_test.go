package algebra_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	algebra "github.com/ArduinoMinas/ComputerAlgebra"
)

func nums(vals ...int64) []algebra.Expr {
	out := make([]algebra.Expr, len(vals))
	for i, v := range vals {
		out[i] = algebra.N(v)
	}
	return out
}

// ============================================================
// Construction and access
// ============================================================

func TestMatrix_String(t *testing.T) {
	m := algebra.MatrixFromSlice(2, 2, nums(1, 2, 3, 4))
	require.Equal(t, "[[1, 2], [3, 4]]", m.String())
}

func TestIdentity(t *testing.T) {
	require.Equal(t, "[[1, 0], [0, 1]]", algebra.Identity(2).String())
}

func TestMatrixFromSlice_WrongCountPanics(t *testing.T) {
	require.Panics(t, func() { algebra.MatrixFromSlice(2, 2, nums(1, 2, 3)) })
}

func TestMatrix_GetSet(t *testing.T) {
	m := algebra.NewMatrix(2, 3)
	m.Set(1, 2, algebra.S("x"))
	require.Equal(t, "x", m.Get(1, 2).String())
	require.Equal(t, "0", m.Get(0, 0).String())
	require.Equal(t, 2, m.Rows())
	require.Equal(t, 3, m.Cols())
	require.Panics(t, func() { m.Get(2, 0) })
}

func TestMatrix_VecAt(t *testing.T) {
	row := algebra.MatrixFromSlice(1, 3, nums(4, 5, 6))
	e, err := row.VecAt(1)
	require.NoError(t, err)
	require.Equal(t, "5", e.String())

	col := algebra.MatrixFromSlice(3, 1, nums(7, 8, 9))
	e, err = col.VecAt(2)
	require.NoError(t, err)
	require.Equal(t, "9", e.String())

	_, err = algebra.MatrixFromSlice(2, 2, nums(1, 2, 3, 4)).VecAt(0)
	require.ErrorIs(t, err, algebra.ErrNotVector)
}

// ============================================================
// Arithmetic
// ============================================================

func TestMatrix_Add(t *testing.T) {
	a := algebra.MatrixFromSlice(2, 2, nums(1, 2, 3, 4))
	b := algebra.MatrixFromSlice(2, 2, nums(10, 20, 30, 40))
	sum, err := a.Add(b)
	require.NoError(t, err)
	require.Equal(t, "[[11, 22], [33, 44]]", sum.String())
}

func TestMatrix_AddDimensionMismatch(t *testing.T) {
	a := algebra.MatrixFromSlice(2, 2, nums(1, 2, 3, 4))
	b := algebra.MatrixFromSlice(2, 3, nums(1, 2, 3, 4, 5, 6))
	_, err := a.Add(b)
	require.ErrorIs(t, err, algebra.ErrDimensionMismatch)
}

func TestMatrix_Sub(t *testing.T) {
	a := algebra.MatrixFromSlice(2, 2, nums(5, 5, 5, 5))
	b := algebra.MatrixFromSlice(2, 2, nums(1, 2, 3, 4))
	diff, err := a.Sub(b)
	require.NoError(t, err)
	require.Equal(t, "[[4, 3], [2, 1]]", diff.String())
}

func TestMatrix_Mul(t *testing.T) {
	a := algebra.MatrixFromSlice(2, 3, nums(1, 2, 3, 4, 5, 6))
	b := algebra.MatrixFromSlice(3, 2, nums(7, 8, 9, 10, 11, 12))
	prod, err := a.Mul(b)
	require.NoError(t, err)
	require.Equal(t, "[[58, 64], [139, 154]]", prod.String())
}

func TestMatrix_MulDimensionMismatch(t *testing.T) {
	a := algebra.MatrixFromSlice(2, 3, nums(1, 2, 3, 4, 5, 6))
	_, err := a.Mul(a)
	require.ErrorIs(t, err, algebra.ErrDimensionMismatch)
}

func TestMatrix_MulSymbolicEntriesCollapse(t *testing.T) {
	x := algebra.S("x")
	a := algebra.MatrixFromSlice(1, 2, []algebra.Expr{x, algebra.N(1)})
	b := algebra.MatrixFromSlice(2, 1, []algebra.Expr{algebra.N(1), x})
	prod, err := a.Mul(b)
	require.NoError(t, err)
	require.Equal(t, "[[2*x]]", prod.String())
}

func TestMatrix_NegScaleTranspose(t *testing.T) {
	a := algebra.MatrixFromSlice(2, 2, nums(1, 2, 3, 4))
	require.Equal(t, "[[-1, -2], [-3, -4]]", a.Neg().String())
	require.Equal(t, "[[2, 4], [6, 8]]", a.Scale(algebra.N(2)).String())
	require.Equal(t, "[[1, 3], [2, 4]]", a.Transpose().String())
}

// ============================================================
// Inverse
// ============================================================

func TestMatrix_Inverse2x2(t *testing.T) {
	a := algebra.MatrixFromSlice(2, 2, nums(1, 2, 3, 4))
	inv, err := a.Inverse()
	require.NoError(t, err)
	require.Equal(t, "[[-2, 1], [3/2, -1/2]]", inv.String())

	round, err := a.Mul(inv)
	require.NoError(t, err)
	require.Equal(t, algebra.Identity(2).String(), round.String())
}

func TestMatrix_Inverse3x3RoundTrip(t *testing.T) {
	a := algebra.MatrixFromSlice(3, 3, nums(
		1, 2, 3,
		0, 1, 4,
		5, 6, 0,
	))
	inv, err := a.Inverse()
	require.NoError(t, err)

	round, err := a.Mul(inv)
	require.NoError(t, err)
	require.Equal(t, algebra.Identity(3).String(), round.String())

	round, err = inv.Mul(a)
	require.NoError(t, err)
	require.Equal(t, algebra.Identity(3).String(), round.String())
}

func TestMatrix_InverseNeedsRowSwap(t *testing.T) {
	a := algebra.MatrixFromSlice(2, 2, nums(0, 1, 1, 0))
	inv, err := a.Inverse()
	require.NoError(t, err)
	require.Equal(t, "[[0, 1], [1, 0]]", inv.String())
}

func TestMatrix_InverseSymbolicDiagonal(t *testing.T) {
	a := algebra.MatrixFromSlice(2, 2, []algebra.Expr{
		algebra.S("a"), algebra.N(0),
		algebra.N(0), algebra.S("b"),
	})
	inv, err := a.Inverse()
	require.NoError(t, err)
	require.Equal(t, "[[a^-1, 0], [0, b^-1]]", inv.String())
}

func TestMatrix_InverseSingular(t *testing.T) {
	a := algebra.MatrixFromSlice(2, 2, nums(1, 2, 2, 4))
	_, err := a.Inverse()
	require.ErrorIs(t, err, algebra.ErrSingular)
}

func TestMatrix_InverseSymbolicallyZeroEntry(t *testing.T) {
	// x - x is not the zero literal but evaluates to it; the zero-test
	// must reject it as a pivot.
	x := algebra.S("x")
	a := algebra.MatrixFromSlice(1, 1, []algebra.Expr{
		algebra.AddOf(x, algebra.MulOf(algebra.N(-1), x)),
	})
	_, err := a.Inverse()
	require.ErrorIs(t, err, algebra.ErrSingular)
}

func TestMatrix_InverseNonSquare(t *testing.T) {
	a := algebra.MatrixFromSlice(2, 3, nums(1, 2, 3, 4, 5, 6))
	_, err := a.Inverse()
	require.ErrorIs(t, err, algebra.ErrNonSquare)
}

// ============================================================
// Pow
// ============================================================

func TestMatrix_PowOneIsSelf(t *testing.T) {
	a := algebra.MatrixFromSlice(2, 2, nums(1, 2, 3, 4))
	out, err := a.Pow(1)
	require.NoError(t, err)
	require.Same(t, a, out)
}

func TestMatrix_PowMinusOneIsInverse(t *testing.T) {
	a := algebra.MatrixFromSlice(2, 2, nums(1, 2, 3, 4))
	out, err := a.Pow(-1)
	require.NoError(t, err)
	require.Equal(t, "[[-2, 1], [3/2, -1/2]]", out.String())
}

func TestMatrix_PowUnsupported(t *testing.T) {
	a := algebra.MatrixFromSlice(2, 2, nums(1, 2, 3, 4))
	for _, k := range []int{0, 2, 5} {
		_, err := a.Pow(k)
		require.ErrorIs(t, err, algebra.ErrUnsupportedPower, "k=%d", k)
	}
}

func TestMatrix_PowNonSquare(t *testing.T) {
	a := algebra.MatrixFromSlice(2, 3, nums(1, 2, 3, 4, 5, 6))
	_, err := a.Pow(1)
	require.ErrorIs(t, err, algebra.ErrNonSquare)
}
