package algebra_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	algebra "github.com/ArduinoMinas/ComputerAlgebra"
)

func TestReal_Arithmetic(t *testing.T) {
	a := algebra.RFrac(1, 3)
	b := algebra.RFrac(1, 6)
	require.Equal(t, "1/2", a.Add(b).String())
	require.Equal(t, "1/6", a.Sub(b).String())
	require.Equal(t, "1/18", a.Mul(b).String())
	require.Equal(t, "2", a.Div(b).String())
	require.Equal(t, "-1/3", a.Neg().String())
	require.Equal(t, "1/3", a.Neg().Abs().String())
}

func TestReal_Predicates(t *testing.T) {
	require.True(t, algebra.RInt(0).IsZero())
	require.True(t, algebra.RFrac(2, 2).IsOne())
	require.True(t, algebra.RFrac(4, 2).IsInt())
	require.False(t, algebra.RFrac(1, 2).IsInt())
	require.Equal(t, -1, algebra.RInt(-3).Sign())
	require.Negative(t, algebra.RInt(2).Cmp(algebra.RInt(3)))
}

func TestReal_Int64(t *testing.T) {
	v, ok := algebra.RFrac(6, 3).Int64()
	require.True(t, ok)
	require.Equal(t, int64(2), v)

	_, ok = algebra.RFrac(1, 2).Int64()
	require.False(t, ok)
}

func TestReal_String(t *testing.T) {
	require.Equal(t, "5", algebra.RInt(5).String())
	require.Equal(t, "-5", algebra.RInt(-5).String())
	require.Equal(t, "3/4", algebra.RFrac(3, 4).String())
	require.Equal(t, "-3/4", algebra.RFrac(3, -4).String())
}

// ============================================================
// Partial exact power
// ============================================================

func TestReal_PowIntegerExponents(t *testing.T) {
	cases := []struct {
		base, exp algebra.Real
		want      string
	}{
		{algebra.RInt(2), algebra.RInt(10), "1024"},
		{algebra.RInt(2), algebra.RInt(-2), "1/4"},
		{algebra.RFrac(2, 3), algebra.RInt(2), "4/9"},
		{algebra.RInt(-2), algebra.RInt(3), "-8"},
		{algebra.RInt(5), algebra.RInt(0), "1"},
	}
	for _, tc := range cases {
		got, ok := tc.base.Pow(tc.exp)
		require.True(t, ok, "%s^%s", tc.base, tc.exp)
		require.Equal(t, tc.want, got.String())
	}
}

func TestReal_PowRationalExponents(t *testing.T) {
	got, ok := algebra.RInt(4).Pow(algebra.RFrac(1, 2))
	require.True(t, ok)
	require.Equal(t, "2", got.String())

	got, ok = algebra.RInt(27).Pow(algebra.RFrac(1, 3))
	require.True(t, ok)
	require.Equal(t, "3", got.String())

	got, ok = algebra.RFrac(9, 16).Pow(algebra.RFrac(1, 2))
	require.True(t, ok)
	require.Equal(t, "3/4", got.String())

	got, ok = algebra.RInt(8).Pow(algebra.RFrac(2, 3))
	require.True(t, ok)
	require.Equal(t, "4", got.String())
}

func TestReal_PowIrrationalStaysUndefined(t *testing.T) {
	_, ok := algebra.RInt(2).Pow(algebra.RFrac(1, 2))
	require.False(t, ok)

	_, ok = algebra.RInt(7).Pow(algebra.RFrac(1, 3))
	require.False(t, ok)
}

func TestReal_PowZeroBase(t *testing.T) {
	got, ok := algebra.RInt(0).Pow(algebra.RInt(3))
	require.True(t, ok)
	require.True(t, got.IsZero())

	// Negative exponent on zero has no exact value.
	_, ok = algebra.RInt(0).Pow(algebra.RInt(-1))
	require.False(t, ok)
}
