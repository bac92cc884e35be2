// Package standardize renames rule variables apart so that separate
// rule instances never share a variable by accident.
package standardize

import (
	"strconv"

	"github.com/cognicore/hornet/pkg/hornet/term"
)

// Literals returns a copy of lits with every variable v renamed to
// v_<gen>. Constants pass through untouched. Applying the same gen to
// a rule's premises and conclusion preserves sharing within the rule
// while keeping distinct generations disjoint. Pure function: the
// caller owns the generation counter.
func Literals(lits []term.Literal, gen int) []term.Literal {
	out := make([]term.Literal, len(lits))
	for i, l := range lits {
		out[i] = literal(l, gen)
	}
	return out
}

// Rule standardizes a whole rule under a single generation id.
func Rule(r term.Rule, gen int) term.Rule {
	return term.Rule{
		Name:       r.Name,
		Premises:   Literals(r.Premises, gen),
		Conclusion: literal(r.Conclusion, gen),
	}
}

func literal(l term.Literal, gen int) term.Literal {
	args := make([]term.Term, len(l.Args))
	suffix := "_" + strconv.Itoa(gen)
	for i, a := range l.Args {
		if a.IsVariable() {
			args[i] = term.V(a.Name + suffix)
		} else {
			args[i] = a
		}
	}
	return term.Literal{Pred: l.Pred, Args: args}
}
