package algebra

import (
	"errors"
	"math/big"
)

// Callable is the capability behind a Call node: a possibly-partial function
// over expressions. CanCall answers whether the target applies to the given
// arguments at all; Call may still fail on them, which the evaluator records
// as a CallFault rather than propagating.
type Callable interface {
	Name() string
	CanCall(args []Expr) bool
	Call(args []Expr) (Expr, error)
}

// Fn adapts an exact function over constant arguments into a Callable. It
// applies only when every argument is a constant accepted by the domain
// predicate; symbolic arguments leave the call unevaluated.
type Fn struct {
	name   string
	arity  int
	domain func(args []Real) bool
	apply  func(args []Real) (Expr, error)
}

func NewFn(name string, arity int, domain func([]Real) bool, apply func([]Real) (Expr, error)) *Fn {
	return &Fn{name: name, arity: arity, domain: domain, apply: apply}
}

func (f *Fn) Name() string { return f.name }

func (f *Fn) CanCall(args []Expr) bool {
	vals, ok := constArgs(args, f.arity)
	if !ok {
		return false
	}
	return f.domain == nil || f.domain(vals)
}

func (f *Fn) Call(args []Expr) (Expr, error) {
	vals, ok := constArgs(args, f.arity)
	if !ok {
		return nil, nil
	}
	return f.apply(vals)
}

func constArgs(args []Expr, arity int) ([]Real, bool) {
	if len(args) != arity {
		return nil, false
	}
	vals := make([]Real, len(args))
	for i, a := range args {
		n, ok := a.(*Num)
		if !ok {
			return nil, false
		}
		vals[i] = n.Value()
	}
	return vals, true
}

// ============================================================
// Built-in exact functions
// ============================================================

var (
	FnAbs = NewFn("abs", 1, nil, func(v []Real) (Expr, error) {
		return Const(v[0].Abs()), nil
	})
	FnSign = NewFn("sign", 1, nil, func(v []Real) (Expr, error) {
		return N(int64(v[0].Sign())), nil
	})
	FnFloor = NewFn("floor", 1, nil, func(v []Real) (Expr, error) {
		return Const(realFloor(v[0])), nil
	})
	FnCeil = NewFn("ceil", 1, nil, func(v []Real) (Expr, error) {
		return Const(realFloor(v[0].Neg()).Neg()), nil
	})
	// FnSqrt is partial: it applies only when the root is itself rational,
	// so sqrt(2) stays symbolic instead of approximating.
	FnSqrt = NewFn("sqrt", 1,
		func(v []Real) bool { _, ok := v[0].Pow(RFrac(1, 2)); return ok },
		func(v []Real) (Expr, error) {
			root, _ := v[0].Pow(RFrac(1, 2))
			return Const(root), nil
		})
	// FnRecip and FnFact accept any constant but fail on part of that
	// domain; their errors surface as accumulated call faults.
	FnRecip = NewFn("recip", 1, nil, func(v []Real) (Expr, error) {
		if v[0].IsZero() {
			return nil, errors.New("reciprocal of zero")
		}
		return Const(RInt(1).Div(v[0])), nil
	})
	FnFact = NewFn("fact", 1, nil, func(v []Real) (Expr, error) {
		n, ok := v[0].Int64()
		if !ok || n < 0 {
			return nil, errors.New("factorial of a negative or non-integer value")
		}
		out := RInt(1)
		for i := int64(2); i <= n; i++ {
			out = out.Mul(RInt(i))
		}
		return Const(out), nil
	})
)

var builtins = map[string]Callable{
	"abs":   FnAbs,
	"sign":  FnSign,
	"floor": FnFloor,
	"ceil":  FnCeil,
	"sqrt":  FnSqrt,
	"recip": FnRecip,
	"fact":  FnFact,
}

// Builtin resolves a built-in callable by name; used when decoding call
// nodes from JSON.
func Builtin(name string) (Callable, bool) {
	c, ok := builtins[name]
	return c, ok
}

func realFloor(r Real) Real {
	q := new(big.Int).Div(r.rat.Num(), r.rat.Denom())
	return Real{rat: new(big.Rat).SetInt(q)}
}
