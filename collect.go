package algebra

import "fmt"

// termKey groups collection-map entries by canonical rendering, except that a
// node still being rewritten (a self-reference surfaced by the cycle guard)
// is keyed by identity — rendering it would recurse forever.
func (ev *Evaluator) termKey(e Expr) string {
	if ev.rw.inProgress(e) {
		return fmt.Sprintf("@%p", e)
	}
	return e.String()
}

// accumulator is the default-valued mapping used by both collection passes:
// expression keys (grouped by canonical rendering), values defaulting to a
// starting Real, insertion order preserved so emission is deterministic.
type accumulator struct {
	order []string
	keys  map[string]Expr
	vals  map[string]Real
	zero  Real
	keyOf func(Expr) string
}

func newAccumulator(zero Real, keyOf func(Expr) string) *accumulator {
	return &accumulator{
		keys:  map[string]Expr{},
		vals:  map[string]Real{},
		zero:  zero,
		keyOf: keyOf,
	}
}

func (ac *accumulator) add(key Expr, v Real) {
	k := ac.keyOf(key)
	if _, ok := ac.vals[k]; !ok {
		ac.order = append(ac.order, k)
		ac.keys[k] = key
		ac.vals[k] = ac.zero
	}
	ac.vals[k] = ac.vals[k].Add(v)
}

// addFront inserts like add but places a fresh key at the front of the
// emission order. Used for the constant factor of a product.
func (ac *accumulator) addFront(key Expr, v Real) {
	k := ac.keyOf(key)
	if _, ok := ac.vals[k]; ok {
		ac.vals[k] = ac.vals[k].Add(v)
		return
	}
	ac.order = append([]string{k}, ac.order...)
	ac.keys[k] = key
	ac.vals[k] = ac.zero.Add(v)
}

func (ac *accumulator) remove(k string) (Expr, Real) {
	key, v := ac.keys[k], ac.vals[k]
	delete(ac.keys, k)
	delete(ac.vals, k)
	for i, o := range ac.order {
		if o == k {
			ac.order = append(ac.order[:i], ac.order[i+1:]...)
			break
		}
	}
	return key, v
}

// evalSum folds constants and combines like terms under a sum. Each addend is
// rewritten first and then re-flattened, so a nested sum produced by
// rewriting a child contributes its individual terms. Every non-constant term
// is split into a constant coefficient (the first constant factor found,
// excluded by identity) and a bare remainder, and coefficients accumulate per
// bare term.
func (ev *Evaluator) evalSum(a *Add) Expr {
	c := RInt(0)
	ac := newAccumulator(RInt(0), ev.termKey)
	for _, t := range a.Terms() {
		for _, term := range SumTerms(ev.rw.rewrite(t)) {
			if n, ok := term.(*Num); ok {
				c = c.Add(n.Value())
				continue
			}
			factors := MulFactors(term)
			coeff := RInt(1)
			rest := factors
			for i, f := range factors {
				if n, ok := f.(*Num); ok {
					coeff = n.Value()
					rest = make([]Expr, 0, len(factors)-1)
					rest = append(rest, factors[:i]...)
					rest = append(rest, factors[i+1:]...)
					break
				}
			}
			ac.add(MulOf(rest...), coeff)
		}
	}
	if !c.IsZero() {
		ac.add(Const(c), RInt(1))
	}
	out := make([]Expr, 0, len(ac.order))
	for _, k := range ac.order {
		coeff := ac.vals[k]
		if coeff.IsZero() {
			continue
		}
		if coeff.IsOne() {
			out = append(out, ac.keys[k])
			continue
		}
		out = append(out, MulOf(Const(coeff), ac.keys[k]))
	}
	return AddOf(out...)
}

// evalMul is the multiplicative counterpart: constants fold into a running
// product, non-constant factors accumulate exponents per base. A zero
// constant collapses the product immediately. A non-unit constant prefers to
// distribute into a sum-shaped base held at exponent ±1; failing that it
// joins the map as an ordinary factor, emitted first.
func (ev *Evaluator) evalMul(m *Mul) Expr {
	c := RInt(1)
	ac := newAccumulator(RInt(0), ev.termKey)
	for _, f := range m.Factors() {
		for _, factor := range MulFactors(ev.rw.rewrite(f)) {
			if n, ok := factor.(*Num); ok {
				c = c.Mul(n.Value())
				continue
			}
			if p, ok := factor.(*Pow); ok {
				if en, ok2 := p.Exp().(*Num); ok2 {
					ac.add(p.Base(), en.Value())
					continue
				}
			}
			ac.add(factor, RInt(1))
		}
	}
	if c.IsZero() {
		return N(0)
	}
	if !c.IsOne() {
		distributed := false
		for _, k := range ac.order {
			base, exp := ac.keys[k], ac.vals[k]
			sum, isSum := base.(*Add)
			if !isSum || !exp.Abs().IsOne() {
				continue
			}
			// Never distribute into a base still being rewritten: every
			// attempt builds a fresh product around the busy node, so the
			// memo never hits and recursion would not terminate.
			if ev.rw.inProgress(base) {
				continue
			}
			scale := c
			if exp.Sign() < 0 {
				scale = RInt(1).Div(c)
			}
			ac.remove(k)
			terms := make([]Expr, 0, len(sum.Terms()))
			for _, t := range sum.Terms() {
				terms = append(terms, ev.rw.rewrite(MulOf(Const(scale), t)))
			}
			ac.add(AddOf(terms...), exp)
			distributed = true
			break
		}
		if !distributed {
			ac.addFront(Const(c), RInt(1))
		}
	}
	out := make([]Expr, 0, len(ac.order))
	for _, k := range ac.order {
		exp := ac.vals[k]
		if exp.IsZero() {
			continue
		}
		if exp.IsOne() {
			out = append(out, ac.keys[k])
			continue
		}
		out = append(out, PowOf(ac.keys[k], Const(exp)))
	}
	return MulOf(out...)
}
