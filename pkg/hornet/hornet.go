// Package hornet is a forward-chaining inference engine for
// Horn-like rules over flat first-order literals. The Engine facade
// ties together the rule parser, the knowledge base, the chaining
// driver, the derivation recorder, and an optional persistent store.
package hornet

import (
	"context"
	"os"

	"github.com/cognicore/hornet/pkg/hornet/chain"
	"github.com/cognicore/hornet/pkg/hornet/kb"
	"github.com/cognicore/hornet/pkg/hornet/parse"
	"github.com/cognicore/hornet/pkg/hornet/proof"
	"github.com/cognicore/hornet/pkg/hornet/store"
	"github.com/cognicore/hornet/pkg/hornet/store/memstore"
	"github.com/cognicore/hornet/pkg/hornet/term"
)

// Options configures an Engine instance.
type Options struct {
	// Store persists the rulebase and derivation log. Defaults to an
	// in-memory store.
	Store store.Store

	// MaxPasses bounds each Ask; zero means chain.DefaultMaxPasses.
	MaxPasses int

	// Match selects premise matching, chain.MatchAll by default.
	Match chain.Mode
}

// Engine is the main inference facade.
type Engine struct {
	store    store.Store
	kb       *kb.KB
	recorder *proof.Recorder
	logged   int // derivations already flushed to the store
	opts     Options
}

// New creates an Engine with the given dependencies.
func New(opts Options) *Engine {
	if opts.Store == nil {
		opts.Store = memstore.New()
	}
	return &Engine{
		store:    opts.Store,
		kb:       kb.New(),
		recorder: proof.NewRecorder(),
		opts:     opts,
	}
}

// Close cleanly shuts down the engine.
func (e *Engine) Close() error {
	return e.store.Close()
}

// Restore loads every rule persisted in the store into the KB. Call
// it once after New when reopening a durable rulebase.
func (e *Engine) Restore(ctx context.Context) error {
	rules, err := e.store.Rules(ctx)
	if err != nil {
		return err
	}
	for _, r := range rules {
		e.kb.Add(r)
	}
	return nil
}

// AddRule adds a rule to the KB and persists it.
func (e *Engine) AddRule(ctx context.Context, r term.Rule) error {
	e.kb.Add(r)
	return e.store.AppendRule(ctx, r)
}

// AddFact adds a ground assertion to the KB and persists it.
func (e *Engine) AddFact(ctx context.Context, l term.Literal) error {
	return e.AddRule(ctx, term.Fact(l))
}

// LoadRules parses rule-file text and adds every rule in order.
func (e *Engine) LoadRules(ctx context.Context, src string) error {
	rules, err := parse.Rules(src)
	if err != nil {
		return err
	}
	for _, r := range rules {
		if err := e.AddRule(ctx, r); err != nil {
			return err
		}
	}
	return nil
}

// LoadRuleFile loads a rule file from disk.
func (e *Engine) LoadRuleFile(ctx context.Context, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return e.LoadRules(ctx, string(data))
}

// Rules returns the current KB contents in order.
func (e *Engine) Rules() []term.Rule {
	return e.kb.Rules()
}

// Ask runs forward chaining for the query. The KB itself is not
// mutated, so asking is repeatable; derivations made along the way
// are recorded and flushed to the store for later explanation.
func (e *Engine) Ask(ctx context.Context, query term.Literal) (chain.Result, error) {
	res, err := chain.Ask(ctx, e.kb, query, chain.Options{
		MaxPasses: e.opts.MaxPasses,
		Match:     e.opts.Match,
		Recorder:  e.recorder,
	})
	if err != nil {
		return res, err
	}

	steps := e.recorder.Steps()
	for ; e.logged < len(steps); e.logged++ {
		if err := e.store.AppendDerivation(ctx, steps[e.logged]); err != nil {
			return res, err
		}
	}
	return res, nil
}

// AskString parses a query literal and runs Ask.
func (e *Engine) AskString(ctx context.Context, query string) (chain.Result, error) {
	q, err := parse.Literal(query)
	if err != nil {
		return chain.Result{}, err
	}
	return e.Ask(ctx, q)
}

// Explain renders the recorded derivation chain for a fact proved by
// an earlier Ask.
func (e *Engine) Explain(fact term.Literal) []string {
	return e.recorder.Explain(fact)
}
