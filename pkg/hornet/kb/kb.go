// Package kb holds the knowledge base: an ordered, monotonically
// growing list of Horn-like rules. Facts are zero-premise rules and
// are deduplicated by structural equality; nothing is ever retracted.
package kb

import (
	"fmt"

	"github.com/cognicore/hornet/pkg/hornet/internalerr"
	"github.com/cognicore/hornet/pkg/hornet/term"
)

// KB is an ordered rule list with a fact index for duplicate checks.
type KB struct {
	rules    []term.Rule
	factKeys map[string]bool
}

// New creates an empty knowledge base.
func New() *KB {
	return &KB{factKeys: make(map[string]bool)}
}

// FromRules builds a KB from a rule list, preserving order and
// dropping duplicate facts.
func FromRules(rules []term.Rule) *KB {
	k := New()
	for _, r := range rules {
		k.Add(r)
	}
	return k
}

// Add appends a rule. Duplicate facts (structurally equal conclusions
// of zero-premise rules) are ignored; non-fact rules are always
// appended. Reports whether the rule was added.
func (k *KB) Add(r term.Rule) bool {
	if r.IsFact() {
		return k.AddFact(r.Conclusion)
	}
	k.rules = append(k.rules, r)
	return true
}

// AddFact appends a literal as a zero-premise rule unless a
// structurally equal fact is already present.
func (k *KB) AddFact(l term.Literal) bool {
	key := l.Key()
	if k.factKeys[key] {
		return false
	}
	k.factKeys[key] = true
	k.rules = append(k.rules, term.Fact(l))
	return true
}

// HasFact reports whether a structurally equal fact is present.
func (k *KB) HasFact(l term.Literal) bool {
	return k.factKeys[l.Key()]
}

// Rules returns the rule list in insertion order. The slice is shared;
// callers must not modify it.
func (k *KB) Rules() []term.Rule {
	return k.rules
}

// Facts returns the conclusions of all zero-premise rules, in order.
func (k *KB) Facts() []term.Literal {
	var out []term.Literal
	for _, r := range k.rules {
		if r.IsFact() {
			out = append(out, r.Conclusion)
		}
	}
	return out
}

// Len returns the number of rules, facts included.
func (k *KB) Len() int { return len(k.rules) }

// Clone returns an independent copy; the driver mutates a clone so the
// caller's KB survives an Ask unchanged.
func (k *KB) Clone() *KB {
	out := &KB{
		rules:    make([]term.Rule, len(k.rules)),
		factKeys: make(map[string]bool, len(k.factKeys)),
	}
	copy(out.rules, k.rules)
	for key := range k.factKeys {
		out.factKeys[key] = true
	}
	return out
}

// PredicateArity returns the arity of the first use of pred, if any.
func (k *KB) PredicateArity(pred string) (int, bool) {
	for _, r := range k.rules {
		for _, p := range r.Premises {
			if p.Pred == pred {
				return p.Arity(), true
			}
		}
		if r.Conclusion.Pred == pred {
			return r.Conclusion.Arity(), true
		}
	}
	return 0, false
}

// Validate checks that every predicate is used with a single arity
// across all rules. Mixed arities would silently mispair premises with
// facts during chaining, so they are rejected up front.
func (k *KB) Validate() error {
	arities := make(map[string]int)
	check := func(l term.Literal, where string) error {
		if l.Pred == "" {
			return fmt.Errorf("%s: empty predicate: %w", where, internalerr.ErrInvalidInput)
		}
		if prev, ok := arities[l.Pred]; ok && prev != l.Arity() {
			return fmt.Errorf("%s: predicate %s used with arity %d and %d: %w",
				where, l.Pred, prev, l.Arity(), internalerr.ErrInvalidInput)
		}
		arities[l.Pred] = l.Arity()
		return nil
	}

	for i, r := range k.rules {
		for _, p := range r.Premises {
			if err := check(p, fmt.Sprintf("rule %d premise %s", i, p)); err != nil {
				return err
			}
		}
		if err := check(r.Conclusion, fmt.Sprintf("rule %d conclusion %s", i, r.Conclusion)); err != nil {
			return err
		}
	}
	return nil
}
