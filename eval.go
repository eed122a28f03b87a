package algebra

// Evaluator canonicalizes expressions: constants fold, like terms and like
// factors combine, power and relational identities apply, and calls to
// applicable targets are invoked. One instance owns a memoization cache and a
// fault log, shared across everything evaluated through it; it is not safe
// for concurrent use. Expressions themselves are immutable and may be shared
// freely between evaluators.
//
// Evaluation is best-effort: a call target that fails on its arguments leaves
// that sub-expression unevaluated and records a CallFault, it never aborts
// the pass. Inspect Faults after evaluating.
//
// Known edge: the zero-base power rule runs before the zero-exponent rule,
// so 0^0 folds to 0.
//
// Malformed self-referential graphs (impossible to build through the
// constructors) are tolerated: evaluation terminates and passes each node
// that reaches itself through unchanged. String and Equal on a result that
// still embeds such a node do recurse without bound, as they would on the
// input itself.
type Evaluator struct {
	rw     *rewriter
	faults []*CallFault
}

func NewEvaluator() *Evaluator {
	ev := &Evaluator{rw: newRewriter()}
	ev.rw.onSum = ev.evalSum
	ev.rw.onMul = ev.evalMul
	ev.rw.onPow = ev.evalPow
	ev.rw.onBinary = ev.evalBinary
	ev.rw.onUnary = ev.evalUnary
	ev.rw.onCall = ev.evalCall
	return ev
}

// Evaluate returns the canonical form of e.
func (ev *Evaluator) Evaluate(e Expr) Expr { return ev.rw.rewrite(e) }

// EvaluateAt substitutes the bindings into e and evaluates the result.
func (ev *Evaluator) EvaluateAt(e Expr, bindings []Binding) Expr {
	return ev.rw.rewrite(Substitute(e, bindings))
}

// EvaluateAll evaluates a batch of expressions, optionally at a binding
// point, through this evaluator's shared cache. Sharing the cache across
// independent roots is intentional: related expressions evaluated at the
// same binding point amortize their common subtrees.
func (ev *Evaluator) EvaluateAll(exprs []Expr, bindings ...Binding) []Expr {
	out := make([]Expr, len(exprs))
	for i, e := range exprs {
		if len(bindings) > 0 {
			e = Substitute(e, bindings)
		}
		out[i] = ev.rw.rewrite(e)
	}
	return out
}

// Faults returns the call faults recorded so far; empty means every call
// either evaluated cleanly or was left symbolic by its target's choice.
func (ev *Evaluator) Faults() []*CallFault { return ev.faults }

// Evaluate canonicalizes e with a fresh evaluator.
func Evaluate(e Expr) Expr { return NewEvaluator().Evaluate(e) }

// EvaluateAt substitutes bindings into e, then canonicalizes, with a fresh
// evaluator.
func EvaluateAt(e Expr, bindings []Binding) Expr {
	return NewEvaluator().EvaluateAt(e, bindings)
}

// ============================================================
// Power rules
// ============================================================

func (ev *Evaluator) evalPow(p *Pow) Expr {
	base := ev.rw.rewrite(p.Base())
	if m, ok := base.(*Mul); ok {
		// (x*y)^z -> x^z * y^z
		parts := make([]Expr, len(m.Factors()))
		for i, f := range m.Factors() {
			parts[i] = PowOf(f, p.Exp())
		}
		return ev.rw.rewrite(MulOf(parts...))
	}
	exp := ev.rw.rewrite(p.Exp())
	if inner, ok := base.(*Pow); ok {
		// (x^y)^z -> x^(y*z)
		exp = ev.rw.rewrite(MulOf(inner.Exp(), exp))
		base = inner.Base()
	}
	if isConst(base, Real.IsZero) {
		return N(0)
	}
	if isConst(base, Real.IsOne) {
		return N(1)
	}
	if en, ok := exp.(*Num); ok {
		if en.Value().IsZero() {
			return N(1)
		}
		if en.Value().IsOne() {
			return base
		}
		if bn, ok2 := base.(*Num); ok2 {
			if v, exact := bn.Value().Pow(en.Value()); exact {
				return Const(v)
			}
		}
	}
	if base == p.Base() && exp == p.Exp() {
		return p
	}
	return PowOf(base, exp)
}

// ============================================================
// Call evaluation
// ============================================================

func (ev *Evaluator) evalCall(c *Call) Expr {
	args, changed := ev.rw.rewriteAll(c.Args())
	out := Expr(c)
	if changed {
		out = CallOf(c.target, args...)
	}
	if !c.target.CanCall(args) {
		return out
	}
	res, err := c.target.Call(args)
	if err != nil {
		ev.faults = append(ev.faults, &CallFault{Target: c.target.Name(), Args: args, Err: err})
		return out
	}
	if res == nil {
		return out
	}
	return ev.rw.rewrite(res)
}

// ============================================================
// Relational / boolean folding
// ============================================================

func (ev *Evaluator) evalBinary(b *Binary) Expr {
	if b.op == OpBind {
		if bindings, ok := bindingsFromSet(b.right); ok {
			return ev.rw.rewrite(Substitute(b.left, bindings))
		}
		return ev.rw.rewriteChildren(b)
	}
	left := ev.rw.rewrite(b.left)
	right := ev.rw.rewrite(b.right)
	ln, lConst := left.(*Num)
	rn, rConst := right.(*Num)
	switch b.op {
	case OpEq, OpNe, OpLt, OpLe, OpGt, OpGe:
		if lConst && rConst {
			return Bool(foldCmp(b.op, ln.Value().Cmp(rn.Value())))
		}
		// Structural identity decides equality even without values. The
		// pointer check also keeps a self-referential operand from being
		// compared into itself.
		if b.op == OpEq && (left == right || left.Equal(right)) {
			return Bool(true)
		}
		if b.op == OpNe && (left == right || left.Equal(right)) {
			return Bool(false)
		}
	case OpAnd:
		if IsFalse(left) || IsFalse(right) {
			return Bool(false)
		}
		if IsTrue(left) && IsTrue(right) {
			return Bool(true)
		}
	case OpOr:
		if IsTrue(left) || IsTrue(right) {
			return Bool(true)
		}
		if IsFalse(left) && IsFalse(right) {
			return Bool(false)
		}
	}
	if left == b.left && right == b.right {
		return b
	}
	return BinaryOf(b.op, left, right)
}

// foldCmp maps a three-way comparison onto a relational operator using the
// standard mathematical ordering.
func foldCmp(op BinaryOp, cmp int) bool {
	switch op {
	case OpEq:
		return cmp == 0
	case OpNe:
		return cmp != 0
	case OpLt:
		return cmp < 0
	case OpLe:
		return cmp <= 0
	case OpGt:
		return cmp > 0
	case OpGe:
		return cmp >= 0
	}
	return false
}

func (ev *Evaluator) evalUnary(u *Unary) Expr {
	operand := ev.rw.rewrite(u.operand)
	if u.op == OpNot {
		if isConst(operand, Real.IsZero) {
			return Bool(true)
		}
		if isConst(operand, Real.IsOne) {
			return Bool(false)
		}
	}
	if operand == u.operand {
		return u
	}
	return UnaryOf(u.op, operand)
}
