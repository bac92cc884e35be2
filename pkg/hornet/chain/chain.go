// Package chain implements the forward-chaining driver: repeated
// passes over the rule set deriving new facts until the query is
// proved or a fixpoint is reached.
package chain

import (
	"context"
	"errors"
	"fmt"

	"github.com/cognicore/hornet/pkg/hornet/internalerr"
	"github.com/cognicore/hornet/pkg/hornet/kb"
	"github.com/cognicore/hornet/pkg/hornet/proof"
	"github.com/cognicore/hornet/pkg/hornet/standardize"
	"github.com/cognicore/hornet/pkg/hornet/term"
	"github.com/cognicore/hornet/pkg/hornet/unify"
)

// Mode selects how rule premises are matched against known facts.
type Mode int

const (
	// MatchAll searches every current fact for each premise,
	// backtracking across alternatives. This is general forward
	// chaining and the default.
	MatchAll Mode = iota

	// MatchPositional pairs premise i of a rule with the conclusion
	// of KB entry i, in lockstep by list position. Far weaker than
	// MatchAll; it exists to reproduce the behavior of engines that
	// take this shortcut, and is only useful on knowledge bases laid
	// out for it.
	MatchPositional
)

// ParseMode maps a config string to a Mode.
func ParseMode(s string) (Mode, error) {
	switch s {
	case "", "all":
		return MatchAll, nil
	case "positional":
		return MatchPositional, nil
	}
	return 0, fmt.Errorf("unknown match mode %q: %w", s, internalerr.ErrInvalidConfig)
}

func (m Mode) String() string {
	if m == MatchPositional {
		return "positional"
	}
	return "all"
}

// DefaultMaxPasses bounds the chaining loop when the caller does not
// set a limit. Unbounded rule sets would otherwise never terminate on
// unprovable queries.
const DefaultMaxPasses = 100

// ErrMaxPasses is returned when the pass limit is hit before a proof
// or a fixpoint.
var ErrMaxPasses = errors.New("forward chaining reached maximum pass limit")

// Options configures one Ask invocation.
type Options struct {
	MaxPasses int
	Match     Mode
	Recorder  *proof.Recorder // optional derivation log
}

// Result reports the outcome of an Ask.
type Result struct {
	Proved  bool
	Subst   unify.Subst // witness bindings for the query's variables; nil unless Proved
	Passes  int
	Derived []term.Literal // every new fact derived before the answer, in order
}

// Ask runs forward chaining over base until query unifies with a known
// or derived fact (proved), a full pass derives nothing new (fixpoint,
// not proved), or the pass limit is exceeded (ErrMaxPasses). base is
// cloned first and never mutated, so asking twice gives the same
// answer. The context is checked between passes.
func Ask(ctx context.Context, base *kb.KB, query term.Literal, opts Options) (Result, error) {
	work := base.Clone()
	if err := work.Validate(); err != nil {
		return Result{}, err
	}
	if arity, ok := work.PredicateArity(query.Pred); ok && arity != query.Arity() {
		return Result{}, fmt.Errorf("query %s: predicate %s has arity %d in the KB: %w",
			query, query.Pred, arity, internalerr.ErrInvalidInput)
	}
	if opts.MaxPasses <= 0 {
		opts.MaxPasses = DefaultMaxPasses
	}

	a := &asker{opts: opts, query: query, work: work}

	// The query may already follow from the given facts.
	for _, f := range work.Facts() {
		if s, ok := unify.UnifyLiterals(query, f, unify.New()); ok {
			a.res.Proved = true
			a.res.Subst = s
			return a.res, nil
		}
	}

	for pass := 1; ; pass++ {
		if err := ctx.Err(); err != nil {
			return a.res, err
		}
		if pass > opts.MaxPasses {
			return a.res, fmt.Errorf("%w (%d passes)", ErrMaxPasses, opts.MaxPasses)
		}
		a.res.Passes = pass

		newFacts, err := a.pass(pass)
		if err != nil {
			return a.res, err
		}
		if a.res.Proved {
			return a.res, nil
		}
		if len(newFacts) == 0 {
			// Fixpoint: nothing new, query not provable.
			return a.res, nil
		}
		for _, f := range newFacts {
			a.work.AddFact(f)
		}
	}
}

// asker carries the state of one Ask invocation: the private working
// KB, the generation counter for standardizing apart, and the result
// being built.
type asker struct {
	opts  Options
	query term.Literal
	work  *kb.KB
	res   Result
	gen   int
}

// pass scans every rule against the current facts once, returning the
// facts to append for the next pass. Newly derived facts are staged
// rather than added immediately, so a pass sees a stable KB.
func (a *asker) pass(pass int) ([]term.Literal, error) {
	rules := a.work.Rules()
	facts := a.work.Facts()

	var staged []term.Literal
	stagedKeys := make(map[string]bool)

	// consider receives each substitution that satisfies the current
	// rule's premises; it stages the conclusion and short-circuits
	// the search if the query is proved. Returns false to stop.
	var std term.Rule
	var orig term.Rule
	consider := func(s unify.Subst) bool {
		inferred := unify.Apply(std.Conclusion, s)
		if a.work.HasFact(inferred) || stagedKeys[inferred.Key()] {
			return true
		}
		staged = append(staged, inferred)
		stagedKeys[inferred.Key()] = true
		a.res.Derived = append(a.res.Derived, inferred)
		if a.opts.Recorder != nil {
			a.opts.Recorder.Record(orig, unify.ApplyAll(std.Premises, s), inferred, pass)
		}
		if qs, ok := unify.UnifyLiterals(a.query, inferred, unify.New()); ok {
			a.res.Proved = true
			a.res.Subst = qs
			return false
		}
		return true
	}

	for _, r := range rules {
		if r.IsFact() {
			continue
		}
		a.gen++
		orig, std = r, standardize.Rule(r, a.gen)

		switch a.opts.Match {
		case MatchPositional:
			if len(std.Premises) > len(rules) {
				return staged, fmt.Errorf(
					"rule %q has %d premises but the KB holds %d entries; positional matching cannot pair them: %w",
					orig, len(std.Premises), len(rules), internalerr.ErrInvalidInput)
			}
			s := unify.New()
			ok := true
			for i, p := range std.Premises {
				s, ok = unify.UnifyLiterals(p, rules[i].Conclusion, s)
				if !ok {
					break
				}
			}
			if ok && !consider(s) {
				return staged, nil
			}
		default:
			if !satisfy(std.Premises, facts, unify.New(), consider) {
				return staged, nil
			}
		}
	}

	return staged, nil
}

// satisfy enumerates every substitution under which all premises unify
// with some known fact, backtracking across candidate facts. yield
// returns false to stop the search early.
func satisfy(premises []term.Literal, facts []term.Literal, s unify.Subst, yield func(unify.Subst) bool) bool {
	if len(premises) == 0 {
		return yield(s)
	}
	for _, f := range facts {
		if next, ok := unify.UnifyLiterals(premises[0], f, s); ok {
			if !satisfy(premises[1:], facts, next, yield) {
				return false
			}
		}
	}
	return true
}
