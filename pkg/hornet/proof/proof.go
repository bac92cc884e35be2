// Package proof records how facts were derived, so results can be
// explained back to the caller step by step.
package proof

import (
	"crypto/rand"
	"fmt"

	"github.com/oklog/ulid/v2"

	"github.com/cognicore/hornet/pkg/hornet/term"
)

// Derivation captures one rule application: the rule as written, the
// ground premises it matched, the fact it produced, and the pass of
// the chaining loop it happened in.
type Derivation struct {
	ID         string
	Rule       string
	Premises   []term.Literal
	Conclusion term.Literal
	Pass       int
}

// Recorder assigns ULIDs to derivations and indexes them by the
// derived fact for explanation lookups.
type Recorder struct {
	entropy *ulid.MonotonicEntropy
	steps   []Derivation
	byFact  map[string]int
}

// NewRecorder creates an empty recorder.
func NewRecorder() *Recorder {
	return &Recorder{
		entropy: ulid.Monotonic(rand.Reader, 0),
		byFact:  make(map[string]int),
	}
}

// Record stores a derivation and returns it with its assigned ID. Only
// the first derivation of a fact is indexed; later rediscoveries are
// kept in the step list but do not shadow the original explanation.
func (r *Recorder) Record(rule term.Rule, premises []term.Literal, conclusion term.Literal, pass int) Derivation {
	d := Derivation{
		ID:         ulid.MustNew(ulid.Now(), r.entropy).String(),
		Rule:       rule.String(),
		Premises:   premises,
		Conclusion: conclusion,
		Pass:       pass,
	}
	if _, seen := r.byFact[conclusion.Key()]; !seen {
		r.byFact[conclusion.Key()] = len(r.steps)
	}
	r.steps = append(r.steps, d)
	return d
}

// Steps returns every recorded derivation in order.
func (r *Recorder) Steps() []Derivation {
	return r.steps
}

// Lookup returns the first derivation of the given fact.
func (r *Recorder) Lookup(fact term.Literal) (Derivation, bool) {
	i, ok := r.byFact[fact.Key()]
	if !ok {
		return Derivation{}, false
	}
	return r.steps[i], true
}

// Explain renders the derivation chain ending at fact, deepest
// premises first. A fact with no recorded derivation (an axiom of the
// original KB) yields a single "given" line.
func (r *Recorder) Explain(fact term.Literal) []string {
	var lines []string
	seen := make(map[string]bool)
	r.explain(fact, seen, &lines)
	return lines
}

func (r *Recorder) explain(fact term.Literal, seen map[string]bool, lines *[]string) {
	if seen[fact.Key()] {
		return
	}
	seen[fact.Key()] = true

	d, ok := r.Lookup(fact)
	if !ok {
		*lines = append(*lines, fmt.Sprintf("%s  [given]", fact))
		return
	}
	for _, p := range d.Premises {
		r.explain(p, seen, lines)
	}
	*lines = append(*lines, fmt.Sprintf("%s  [pass %d, via %s]", fact, d.Pass, d.Rule))
}
