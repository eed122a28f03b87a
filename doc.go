// Package algebra is the evaluation core of a computer-algebra engine: a
// closed symbolic expression tree over exact rationals, a canonicalizing
// evaluator (constant folding, like-term and like-factor combination, power
// and relational identities, best-effort call evaluation with an inspectable
// fault log), and a dense symbolic matrix with an exact Gauss-Jordan
// inverse.
//
// Design goals:
//   - Exact rational arithmetic (math/big.Rat); nothing is approximated
//   - Deterministic canonical forms and stable output
//   - Immutable expression graphs, cheap structural sharing
//   - Embeddable: JSON trees and a tool-call API for agent backends
package algebra
