package algebra

// rewriter applies a rewrite bottom-up over an expression graph. Results are
// memoized per distinct node (identity-keyed), so a node reachable through
// several paths is rewritten once. Before descending into a node the engine
// marks it busy; if recursion reaches a busy node again it is returned
// unchanged instead of recursed into. That guard is what keeps a malformed,
// self-referential graph from recursing forever — ordinary memoization only
// covers completed nodes.
//
// A pass installs the per-variant hooks it cares about; variants without a
// hook get the generic structural rewrite (rewrite children, rebuild on
// change). The optional pre hook runs before dispatch and may replace the
// node outright without further recursion.
type rewriter struct {
	memo map[Expr]Expr
	busy map[Expr]struct{}

	pre      func(Expr) (Expr, bool)
	onSum    func(*Add) Expr
	onMul    func(*Mul) Expr
	onPow    func(*Pow) Expr
	onBinary func(*Binary) Expr
	onUnary  func(*Unary) Expr
	onCall   func(*Call) Expr
}

func newRewriter() *rewriter {
	return &rewriter{
		memo: map[Expr]Expr{},
		busy: map[Expr]struct{}{},
	}
}

// inProgress reports whether e is currently being rewritten. The collectors
// use it to key such a node by identity: rendering or structurally comparing
// a node that reaches itself would not terminate.
func (r *rewriter) inProgress(e Expr) bool {
	_, visiting := r.busy[e]
	return visiting
}

func (r *rewriter) rewrite(e Expr) Expr {
	if out, ok := r.memo[e]; ok {
		return out
	}
	if _, visiting := r.busy[e]; visiting {
		return e
	}
	r.busy[e] = struct{}{}
	out := r.dispatch(e)
	delete(r.busy, e)
	r.memo[e] = out
	return out
}

func (r *rewriter) dispatch(e Expr) Expr {
	if r.pre != nil {
		if out, ok := r.pre(e); ok {
			return out
		}
	}
	switch v := e.(type) {
	case *Num, *Sym:
		return e
	case *Add:
		if r.onSum != nil {
			return r.onSum(v)
		}
	case *Mul:
		if r.onMul != nil {
			return r.onMul(v)
		}
	case *Pow:
		if r.onPow != nil {
			return r.onPow(v)
		}
	case *Binary:
		if r.onBinary != nil {
			return r.onBinary(v)
		}
	case *Unary:
		if r.onUnary != nil {
			return r.onUnary(v)
		}
	case *Call:
		if r.onCall != nil {
			return r.onCall(v)
		}
	}
	return r.rewriteChildren(e)
}

// rewriteChildren is the structural fallback: rewrite every child and rebuild
// the node, reusing it when nothing changed.
func (r *rewriter) rewriteChildren(e Expr) Expr {
	switch v := e.(type) {
	case *Add:
		out, changed := r.rewriteAll(v.terms)
		if !changed {
			return v
		}
		return AddOf(out...)
	case *Mul:
		out, changed := r.rewriteAll(v.factors)
		if !changed {
			return v
		}
		return MulOf(out...)
	case *Pow:
		base := r.rewrite(v.base)
		exp := r.rewrite(v.exp)
		if base == v.base && exp == v.exp {
			return v
		}
		return PowOf(base, exp)
	case *Binary:
		left := r.rewrite(v.left)
		right := r.rewrite(v.right)
		if left == v.left && right == v.right {
			return v
		}
		return BinaryOf(v.op, left, right)
	case *Unary:
		operand := r.rewrite(v.operand)
		if operand == v.operand {
			return v
		}
		return UnaryOf(v.op, operand)
	case *Call:
		out, changed := r.rewriteAll(v.args)
		if !changed {
			return v
		}
		return CallOf(v.target, out...)
	case *Set:
		out, changed := r.rewriteAll(v.members)
		if !changed {
			return v
		}
		return SetOf(out...)
	case *Arrow:
		left := r.rewrite(v.left)
		right := r.rewrite(v.right)
		if left == v.left && right == v.right {
			return v
		}
		return ArrowOf(left, right)
	}
	return e
}

func (r *rewriter) rewriteAll(in []Expr) ([]Expr, bool) {
	out := make([]Expr, len(in))
	changed := false
	for i, e := range in {
		out[i] = r.rewrite(e)
		if out[i] != e {
			changed = true
		}
	}
	return out, changed
}
