package algebra

// Binding maps one expression to its replacement. From is matched by value
// equality against whole subtrees before recursion, so a bound compound
// expression is replaced as a unit.
type Binding struct {
	From, To Expr
}

// BindVar is the common case: bind a variable by name.
func BindVar(name string, to Expr) Binding {
	return Binding{From: S(name), To: to}
}

// Substitute applies the bindings across e, outermost match first, and
// returns the rewritten tree. Replacements are not substituted into again.
func Substitute(e Expr, bindings []Binding) Expr {
	if len(bindings) == 0 {
		return e
	}
	r := newRewriter()
	r.pre = func(n Expr) (Expr, bool) {
		for _, b := range bindings {
			if n.Equal(b.From) {
				return b.To, true
			}
		}
		return nil, false
	}
	return r.rewrite(e)
}

// bindingsFromSet interprets the right side of a := node: a set of arrows,
// or a single bare arrow.
func bindingsFromSet(e Expr) ([]Binding, bool) {
	switch v := e.(type) {
	case *Arrow:
		return []Binding{{From: v.left, To: v.right}}, true
	case *Set:
		out := make([]Binding, 0, len(v.members))
		for _, m := range v.members {
			a, ok := m.(*Arrow)
			if !ok {
				return nil, false
			}
			out = append(out, Binding{From: a.left, To: a.right})
		}
		return out, true
	}
	return nil, false
}
