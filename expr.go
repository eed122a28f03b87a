package algebra

import "strings"

// Expr is a node of an immutable expression tree. The variant set is closed:
// every implementation lives in this package, and rewrite passes dispatch on
// it exhaustively by type switch. Nodes are never mutated after construction;
// rewriting builds new nodes. Distinct pointers may be structurally equal —
// Equal is deep value equality, while the rewrite engine keys its caches on
// node identity.
type Expr interface {
	String() string
	Equal(other Expr) bool
	exprType() string
}

// ============================================================
// Num — exact constant leaf
// ============================================================

// Num holds an exact Real. Booleans are the constants 0 and 1.
type Num struct{ val Real }

func N(n int64) *Num    { return &Num{val: RInt(n)} }
func F(p, q int64) *Num { return &Num{val: RFrac(p, q)} }
func Const(v Real) *Num { return &Num{val: v} }
func Bool(b bool) *Num {
	if b {
		return N(1)
	}
	return N(0)
}

func (n *Num) Value() Real    { return n.val }
func (n *Num) String() string { return n.val.String() }
func (n *Num) Equal(other Expr) bool {
	o, ok := other.(*Num)
	return ok && n.val.Cmp(o.val) == 0
}
func (n *Num) exprType() string { return "num" }

// IsTrue reports whether e is a nonzero constant, IsFalse whether it is the
// zero constant. Both are false for non-constant expressions.
func IsTrue(e Expr) bool {
	n, ok := e.(*Num)
	return ok && !n.val.IsZero()
}

func IsFalse(e Expr) bool {
	n, ok := e.(*Num)
	return ok && n.val.IsZero()
}

func isConst(e Expr, pred func(Real) bool) bool {
	n, ok := e.(*Num)
	return ok && pred(n.val)
}

// ============================================================
// Sym — named variable leaf
// ============================================================

type Sym struct{ name string }

func S(name string) *Sym { return &Sym{name: name} }

func (s *Sym) Name() string   { return s.name }
func (s *Sym) String() string { return s.name }
func (s *Sym) Equal(other Expr) bool {
	o, ok := other.(*Sym)
	return ok && s.name == o.name
}
func (s *Sym) exprType() string { return "sym" }

// ============================================================
// Add / Mul — associative n-ary nodes
// ============================================================

type Add struct{ terms []Expr }

// AddOf flattens nested sums and drops zero terms. It does not combine like
// terms; that is the evaluator's collection pass. Zero terms yield the zero
// constant, a single term is returned bare.
func AddOf(terms ...Expr) Expr {
	flat := make([]Expr, 0, len(terms))
	for _, t := range terms {
		switch v := t.(type) {
		case *Add:
			flat = append(flat, v.terms...)
		case *Num:
			if !v.val.IsZero() {
				flat = append(flat, v)
			}
		default:
			flat = append(flat, t)
		}
	}
	switch len(flat) {
	case 0:
		return N(0)
	case 1:
		return flat[0]
	}
	return &Add{terms: flat}
}

// SumTerms returns the flattened additive terms of e; a non-sum is its own
// single term. Inverts AddOf exactly.
func SumTerms(e Expr) []Expr {
	if a, ok := e.(*Add); ok {
		return a.terms
	}
	return []Expr{e}
}

func (a *Add) Terms() []Expr { return a.terms }

func (a *Add) String() string {
	parts := make([]string, len(a.terms))
	for i, t := range a.terms {
		parts[i] = t.String()
	}
	return strings.Join(parts, " + ")
}

func (a *Add) Equal(other Expr) bool {
	o, ok := other.(*Add)
	if !ok || len(a.terms) != len(o.terms) {
		return false
	}
	for i := range a.terms {
		if !a.terms[i].Equal(o.terms[i]) {
			return false
		}
	}
	return true
}

func (a *Add) exprType() string { return "add" }

type Mul struct{ factors []Expr }

// MulOf flattens nested products, drops factors equal to one and collapses
// the whole product on an exact zero factor. Like AddOf it performs no
// like-factor combination.
func MulOf(factors ...Expr) Expr {
	flat := make([]Expr, 0, len(factors))
	for _, f := range factors {
		switch v := f.(type) {
		case *Mul:
			flat = append(flat, v.factors...)
		case *Num:
			if v.val.IsZero() {
				return N(0)
			}
			if !v.val.IsOne() {
				flat = append(flat, v)
			}
		default:
			flat = append(flat, f)
		}
	}
	switch len(flat) {
	case 0:
		return N(1)
	case 1:
		return flat[0]
	}
	return &Mul{factors: flat}
}

// MulFactors returns the flattened multiplicative factors of e; a non-product
// is its own single factor. Inverts MulOf exactly.
func MulFactors(e Expr) []Expr {
	if m, ok := e.(*Mul); ok {
		return m.factors
	}
	return []Expr{e}
}

func (m *Mul) Factors() []Expr { return m.factors }

func (m *Mul) String() string {
	parts := make([]string, len(m.factors))
	for i, f := range m.factors {
		if needsParens(f) {
			parts[i] = "(" + f.String() + ")"
		} else {
			parts[i] = f.String()
		}
	}
	return strings.Join(parts, "*")
}

func (m *Mul) Equal(other Expr) bool {
	o, ok := other.(*Mul)
	if !ok || len(m.factors) != len(o.factors) {
		return false
	}
	for i := range m.factors {
		if !m.factors[i].Equal(o.factors[i]) {
			return false
		}
	}
	return true
}

func (m *Mul) exprType() string { return "mul" }

func needsParens(e Expr) bool {
	switch e.(type) {
	case *Add, *Binary, *Unary:
		return true
	}
	return false
}

// ============================================================
// Pow
// ============================================================

type Pow struct{ base, exp Expr }

func PowOf(base, exp Expr) *Pow { return &Pow{base: base, exp: exp} }

func (p *Pow) Base() Expr { return p.base }
func (p *Pow) Exp() Expr  { return p.exp }

func (p *Pow) String() string {
	baseStr := p.base.String()
	switch p.base.(type) {
	case *Add, *Mul, *Pow, *Binary, *Unary:
		baseStr = "(" + baseStr + ")"
	}
	expStr := p.exp.String()
	switch p.exp.(type) {
	case *Add, *Mul, *Binary, *Unary:
		expStr = "(" + expStr + ")"
	}
	return baseStr + "^" + expStr
}

func (p *Pow) Equal(other Expr) bool {
	o, ok := other.(*Pow)
	return ok && p.base.Equal(o.base) && p.exp.Equal(o.exp)
}

func (p *Pow) exprType() string { return "pow" }

// ============================================================
// Binary / Unary — relational, logical and binding operators
// ============================================================

type BinaryOp int

const (
	OpEq BinaryOp = iota // =
	OpNe                 // !=
	OpLt                 // <
	OpLe                 // <=
	OpGt                 // >
	OpGe                 // >=
	OpAnd                // and
	OpOr                 // or
	OpBind               // := evaluate-left-under-right-bindings
)

var binaryNames = map[BinaryOp]string{
	OpEq: "=", OpNe: "!=", OpLt: "<", OpLe: "<=", OpGt: ">", OpGe: ">=",
	OpAnd: "and", OpOr: "or", OpBind: ":=",
}

func (op BinaryOp) String() string { return binaryNames[op] }

type Binary struct {
	op          BinaryOp
	left, right Expr
}

func BinaryOf(op BinaryOp, left, right Expr) *Binary {
	return &Binary{op: op, left: left, right: right}
}

func (b *Binary) Op() BinaryOp { return b.op }
func (b *Binary) Left() Expr   { return b.left }
func (b *Binary) Right() Expr  { return b.right }

func (b *Binary) String() string {
	return b.left.String() + " " + b.op.String() + " " + b.right.String()
}

func (b *Binary) Equal(other Expr) bool {
	o, ok := other.(*Binary)
	return ok && b.op == o.op && b.left.Equal(o.left) && b.right.Equal(o.right)
}

func (b *Binary) exprType() string { return "binary" }

type UnaryOp int

const (
	OpNot UnaryOp = iota // not
)

func (op UnaryOp) String() string {
	if op == OpNot {
		return "not"
	}
	return "?"
}

type Unary struct {
	op      UnaryOp
	operand Expr
}

func UnaryOf(op UnaryOp, operand Expr) *Unary { return &Unary{op: op, operand: operand} }

func (u *Unary) Op() UnaryOp   { return u.op }
func (u *Unary) Operand() Expr { return u.operand }

func (u *Unary) String() string {
	s := u.operand.String()
	if needsParens(u.operand) {
		s = "(" + s + ")"
	}
	return u.op.String() + " " + s
}

func (u *Unary) Equal(other Expr) bool {
	o, ok := other.(*Unary)
	return ok && u.op == o.op && u.operand.Equal(o.operand)
}

func (u *Unary) exprType() string { return "unary" }

// ============================================================
// Call — application of a possibly-partial function
// ============================================================

type Call struct {
	target Callable
	args   []Expr
}

func CallOf(target Callable, args ...Expr) *Call { return &Call{target: target, args: args} }

func (c *Call) Target() Callable { return c.target }
func (c *Call) Args() []Expr     { return c.args }

func (c *Call) String() string {
	parts := make([]string, len(c.args))
	for i, a := range c.args {
		parts[i] = a.String()
	}
	return c.target.Name() + "(" + strings.Join(parts, ", ") + ")"
}

func (c *Call) Equal(other Expr) bool {
	o, ok := other.(*Call)
	if !ok || c.target.Name() != o.target.Name() || len(c.args) != len(o.args) {
		return false
	}
	for i := range c.args {
		if !c.args[i].Equal(o.args[i]) {
			return false
		}
	}
	return true
}

func (c *Call) exprType() string { return "call" }

// ============================================================
// Set / Arrow — binding collections for the := operator
// ============================================================

type Set struct{ members []Expr }

func SetOf(members ...Expr) *Set { return &Set{members: members} }

func (s *Set) Members() []Expr { return s.members }

func (s *Set) String() string {
	parts := make([]string, len(s.members))
	for i, m := range s.members {
		parts[i] = m.String()
	}
	return "{" + strings.Join(parts, ", ") + "}"
}

func (s *Set) Equal(other Expr) bool {
	o, ok := other.(*Set)
	if !ok || len(s.members) != len(o.members) {
		return false
	}
	for i := range s.members {
		if !s.members[i].Equal(o.members[i]) {
			return false
		}
	}
	return true
}

func (s *Set) exprType() string { return "set" }

type Arrow struct{ left, right Expr }

func ArrowOf(left, right Expr) *Arrow { return &Arrow{left: left, right: right} }

func (a *Arrow) Left() Expr  { return a.left }
func (a *Arrow) Right() Expr { return a.right }

func (a *Arrow) String() string { return a.left.String() + " -> " + a.right.String() }

func (a *Arrow) Equal(other Expr) bool {
	o, ok := other.(*Arrow)
	return ok && a.left.Equal(o.left) && a.right.Equal(o.right)
}

func (a *Arrow) exprType() string { return "arrow" }

// ============================================================
// Free variables
// ============================================================

// Vars returns the set of variable names appearing in e.
func Vars(e Expr) map[string]struct{} {
	out := map[string]struct{}{}
	collectVars(e, out)
	return out
}

func collectVars(e Expr, out map[string]struct{}) {
	switch v := e.(type) {
	case *Sym:
		out[v.name] = struct{}{}
	case *Add:
		for _, t := range v.terms {
			collectVars(t, out)
		}
	case *Mul:
		for _, f := range v.factors {
			collectVars(f, out)
		}
	case *Pow:
		collectVars(v.base, out)
		collectVars(v.exp, out)
	case *Binary:
		collectVars(v.left, out)
		collectVars(v.right, out)
	case *Unary:
		collectVars(v.operand, out)
	case *Call:
		for _, a := range v.args {
			collectVars(a, out)
		}
	case *Set:
		for _, m := range v.members {
			collectVars(m, out)
		}
	case *Arrow:
		collectVars(v.left, out)
		collectVars(v.right, out)
	}
}
