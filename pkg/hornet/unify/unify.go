// Package unify implements Robinson-style unification over the flat
// term language: most general substitutions making two literals
// syntactically equal, with binding chase and cycle-safe resolution.
package unify

import (
	"github.com/cognicore/hornet/pkg/hornet/term"
)

// Subst maps variable terms to the terms they are bound to. Bindings
// may chain (x -> y, y -> John); Resolve follows chains to a fixed
// point. The zero value is not usable; construct with Subst{} or New.
type Subst map[term.Term]term.Term

// New returns an empty substitution. Every top-level unification call
// should start from its own fresh substitution; Subst values returned
// by Unify share no state with their inputs.
func New() Subst {
	return Subst{}
}

// Clone returns an independent copy.
func (s Subst) Clone() Subst {
	out := make(Subst, len(s))
	for k, v := range s {
		out[k] = v
	}
	return out
}

// Resolve follows binding chains starting at t until it reaches a term
// with no binding, and returns that term. A cycle in the chain (x -> y,
// y -> x) resolves to the last variable seen before the repeat, so
// Resolve always terminates.
func Resolve(t term.Term, s Subst) term.Term {
	seen := make(map[term.Term]bool)
	for t.IsVariable() && !seen[t] {
		next, ok := s[t]
		if !ok {
			break
		}
		seen[t] = true
		t = next
	}
	return t
}

// Unify computes a most general substitution extending s that makes x
// and y equal, or reports failure. The input substitution is never
// mutated: on success the returned Subst is a copy extended with any
// new bindings, on failure the return is (nil, false) and s remains
// valid for other attempts.
func Unify(x, y term.Term, s Subst) (Subst, bool) {
	if s == nil {
		// A nil substitution is the failure sentinel; propagate it.
		return nil, false
	}
	return unifyTerm(x, y, s.Clone())
}

// UnifyLiterals unifies two literals element-wise: predicates must
// match, arities must match, and arguments unify left to right with
// the substitution threaded through each pair. Same non-mutation
// contract as Unify.
func UnifyLiterals(a, b term.Literal, s Subst) (Subst, bool) {
	if s == nil {
		return nil, false
	}
	if a.Pred != b.Pred || len(a.Args) != len(b.Args) {
		return nil, false
	}
	out := s.Clone()
	for i := range a.Args {
		var ok bool
		out, ok = unifyTerm(a.Args[i], b.Args[i], out)
		if !ok {
			return nil, false
		}
	}
	return out, true
}

// unifyTerm works in place on s, which callers have already copied.
func unifyTerm(x, y term.Term, s Subst) (Subst, bool) {
	if x == y {
		return s, true
	}
	if x.IsVariable() {
		return unifyVar(x, y, s)
	}
	if y.IsVariable() {
		return unifyVar(y, x, s)
	}
	// Two distinct constants.
	return nil, false
}

// unifyVar binds v to x, chasing existing bindings on either side
// first so a variable is never rebound.
func unifyVar(v, x term.Term, s Subst) (Subst, bool) {
	if bound, ok := s[v]; ok {
		return unifyTerm(bound, x, s)
	}
	if x.IsVariable() {
		if bound, ok := s[x]; ok {
			return unifyTerm(v, bound, s)
		}
	}
	// Both sides fully chased. Binding an unbound variable to an
	// unbound variable or a constant cannot close a chain back on
	// itself, so no cycle can form here; Resolve guards regardless.
	s[v] = x
	return s, true
}

// Apply replaces every argument of lit with its fully resolved value
// under s. Unbound variables pass through unchanged.
func Apply(lit term.Literal, s Subst) term.Literal {
	if len(s) == 0 || len(lit.Args) == 0 {
		return lit
	}
	args := make([]term.Term, len(lit.Args))
	for i, a := range lit.Args {
		args[i] = Resolve(a, s)
	}
	return term.Literal{Pred: lit.Pred, Args: args}
}

// ApplyAll maps Apply over a list of literals.
func ApplyAll(lits []term.Literal, s Subst) []term.Literal {
	out := make([]term.Literal, len(lits))
	for i, l := range lits {
		out[i] = Apply(l, s)
	}
	return out
}
