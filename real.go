package algebra

import "math/big"

// Real is an exact rational scalar. The zero value is not usable; construct
// through RInt, RFrac or the arithmetic methods, all of which return fresh
// values and never mutate their operands.
type Real struct{ rat *big.Rat }

func RInt(n int64) Real { return Real{rat: new(big.Rat).SetInt64(n)} }
func RFrac(p, q int64) Real {
	if q == 0 {
		panic("algebra: denominator is zero")
	}
	return Real{rat: new(big.Rat).SetFrac(big.NewInt(p), big.NewInt(q))}
}

func (r Real) Add(o Real) Real { return Real{rat: new(big.Rat).Add(r.rat, o.rat)} }
func (r Real) Sub(o Real) Real { return Real{rat: new(big.Rat).Sub(r.rat, o.rat)} }
func (r Real) Mul(o Real) Real { return Real{rat: new(big.Rat).Mul(r.rat, o.rat)} }
func (r Real) Div(o Real) Real {
	if o.IsZero() {
		panic("algebra: division by zero")
	}
	return Real{rat: new(big.Rat).Quo(r.rat, o.rat)}
}
func (r Real) Neg() Real { return Real{rat: new(big.Rat).Neg(r.rat)} }
func (r Real) Abs() Real { return Real{rat: new(big.Rat).Abs(r.rat)} }

func (r Real) Cmp(o Real) int { return r.rat.Cmp(o.rat) }
func (r Real) Sign() int      { return r.rat.Sign() }
func (r Real) IsZero() bool   { return r.rat.Sign() == 0 }
func (r Real) IsOne() bool    { return r.rat.Cmp(ratOne) == 0 }
func (r Real) IsInt() bool    { return r.rat.IsInt() }

// Int64 reports the value as an int64; ok is false for non-integers and
// values outside the int64 range.
func (r Real) Int64() (int64, bool) {
	if !r.rat.IsInt() || !r.rat.Num().IsInt64() {
		return 0, false
	}
	return r.rat.Num().Int64(), true
}

func (r Real) String() string {
	if r.rat.IsInt() {
		return r.rat.Num().String()
	}
	return r.rat.RatString()
}

var ratOne = big.NewRat(1, 1)

// Pow raises r to the exponent exp, staying exact. Integer exponents always
// succeed (negative ones require a nonzero base); a fractional exponent
// succeeds only when the result is itself rational, e.g. 4^(1/2) or
// 27^(1/3). Anything else reports ok=false and the caller keeps the power
// symbolic.
func (r Real) Pow(exp Real) (Real, bool) {
	if e, ok := exp.Int64(); ok {
		return r.powInt(e)
	}
	num := exp.rat.Num()
	den := exp.rat.Denom()
	if !num.IsInt64() || !den.IsInt64() {
		return Real{}, false
	}
	root, ok := ratRoot(r.rat, den.Int64())
	if !ok {
		return Real{}, false
	}
	return Real{rat: root}.powInt(num.Int64())
}

func (r Real) powInt(e int64) (Real, bool) {
	neg := e < 0
	if neg {
		if r.IsZero() {
			return Real{}, false
		}
		e = -e
	}
	exp := big.NewInt(e)
	out := new(big.Rat).SetFrac(
		new(big.Int).Exp(r.rat.Num(), exp, nil),
		new(big.Int).Exp(r.rat.Denom(), exp, nil),
	)
	if neg {
		out.Inv(out)
	}
	return Real{rat: out}, true
}

// ratRoot finds the exact k-th root of v when one exists in the rationals.
func ratRoot(v *big.Rat, k int64) (*big.Rat, bool) {
	if k <= 0 {
		return nil, false
	}
	if k == 1 {
		return new(big.Rat).Set(v), true
	}
	if v.Sign() < 0 {
		return nil, false
	}
	num, ok1 := intRoot(v.Num(), k)
	den, ok2 := intRoot(v.Denom(), k)
	if !ok1 || !ok2 {
		return nil, false
	}
	return new(big.Rat).SetFrac(num, den), true
}

func intRoot(v *big.Int, k int64) (*big.Int, bool) {
	if v.Sign() == 0 {
		return big.NewInt(0), true
	}
	root := new(big.Int).Sqrt(v)
	if k != 2 {
		// Newton is overkill at the sizes seen here; binary search instead.
		lo, hi := big.NewInt(0), new(big.Int).Add(v, big.NewInt(1))
		exp := big.NewInt(k)
		for lo.Cmp(hi) < 0 {
			mid := new(big.Int).Add(lo, hi)
			mid.Rsh(mid, 1)
			p := new(big.Int).Exp(mid, exp, nil)
			switch p.Cmp(v) {
			case 0:
				return mid, true
			case -1:
				lo = new(big.Int).Add(mid, big.NewInt(1))
			default:
				hi = mid
			}
		}
		return nil, false
	}
	check := new(big.Int).Mul(root, root)
	if check.Cmp(v) != 0 {
		return nil, false
	}
	return root, true
}
