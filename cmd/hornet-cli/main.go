package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/chzyer/readline"

	"github.com/cognicore/hornet/pkg/hornet"
	"github.com/cognicore/hornet/pkg/hornet/chain"
	"github.com/cognicore/hornet/pkg/hornet/config"
	"github.com/cognicore/hornet/pkg/hornet/parse"
	"github.com/cognicore/hornet/pkg/hornet/store/sqlite"
	"github.com/cognicore/hornet/pkg/hornet/term"
	"github.com/cognicore/hornet/pkg/hornet/unify"
)

func main() {
	var (
		configPath = flag.String("config", "", "YAML config file (optional)")
		rulesPath  = flag.String("rules", "", "Rule file to load")
		dbPath     = flag.String("db", "", "SQLite rulebase path (optional, in-memory if unset)")
		query      = flag.String("query", "", "One-shot query (non-interactive mode)")
		match      = flag.String("match", "", "Premise matching: all or positional")
		maxPasses  = flag.Int("max-passes", 0, "Forward-chaining pass limit")
	)
	flag.Parse()

	cfg := config.Default()
	if *configPath != "" {
		loaded, err := config.Load(*configPath)
		if err != nil {
			log.Fatal(err)
		}
		cfg = loaded
	}
	if *rulesPath != "" {
		cfg.RuleFiles = append(cfg.RuleFiles, *rulesPath)
	}
	if *dbPath != "" {
		cfg.DBPath = *dbPath
	}
	if *match != "" {
		cfg.Match = *match
	}
	if *maxPasses > 0 {
		cfg.MaxPasses = *maxPasses
	}

	ctx := context.Background()

	engine, err := buildEngine(ctx, cfg)
	if err != nil {
		log.Fatal(err)
	}
	defer engine.Close()

	// One-shot query mode
	if *query != "" {
		if err := executeQuery(ctx, engine, *query); err != nil {
			log.Fatal(err)
		}
		return
	}

	runShell(ctx, engine)
}

func buildEngine(ctx context.Context, cfg config.Config) (*hornet.Engine, error) {
	mode, err := chain.ParseMode(cfg.Match)
	if err != nil {
		return nil, err
	}

	opts := hornet.Options{MaxPasses: cfg.MaxPasses, Match: mode}
	if cfg.DBPath != "" {
		st, err := sqlite.Open(ctx, cfg.DBPath)
		if err != nil {
			return nil, err
		}
		opts.Store = st
	}

	engine := hornet.New(opts)
	if cfg.DBPath != "" {
		if err := engine.Restore(ctx); err != nil {
			engine.Close()
			return nil, err
		}
	}
	for _, path := range cfg.RuleFiles {
		if err := engine.LoadRuleFile(ctx, path); err != nil {
			engine.Close()
			return nil, fmt.Errorf("load %s: %w", path, err)
		}
	}
	return engine, nil
}

func runShell(ctx context.Context, engine *hornet.Engine) {
	fmt.Println("hornet shell")
	fmt.Println(`\h for help`)

	l, err := readline.NewEx(&readline.Config{
		Prompt:            "hornet> ",
		HistoryFile:       "/tmp/.hornet-history",
		InterruptPrompt:   "^C",
		EOFPrompt:         "bye!",
		HistorySearchFold: true,
	})
	if err != nil {
		log.Fatal(err)
	}
	defer l.Close()

	for {
		line, readlineErr := l.Readline()
		if readlineErr != nil {
			fmt.Println("bye!")
			os.Exit(0)
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		switch {
		case line == `\h`:
			fmt.Println(`\h               help`)
			fmt.Println(`\d               dump the knowledge base`)
			fmt.Println(`\e Literal(...)  explain how a fact was derived`)
			fmt.Println(`P(a, x)          fact or rule lines are added to the KB`)
			fmt.Println(`? P(a, x)        query`)
		case line == `\d`:
			for _, r := range engine.Rules() {
				fmt.Println(r)
			}
		case strings.HasPrefix(line, `\e `):
			explain(engine, strings.TrimPrefix(line, `\e `))
		case strings.HasPrefix(line, "?"):
			if err := executeQuery(ctx, engine, strings.TrimPrefix(line, "?")); err != nil {
				fmt.Println("error:", err)
			}
		default:
			r, err := parse.Rule(line)
			if err != nil {
				fmt.Println("error:", err)
				continue
			}
			if err := engine.AddRule(ctx, r); err != nil {
				fmt.Println("error:", err)
			}
		}
	}
}

func explain(engine *hornet.Engine, src string) {
	fact, err := parse.Literal(strings.TrimSpace(src))
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	for _, line := range engine.Explain(fact) {
		fmt.Println(line)
	}
}

func executeQuery(ctx context.Context, engine *hornet.Engine, query string) error {
	q, err := parse.Literal(strings.TrimSpace(query))
	if err != nil {
		return err
	}

	res, err := engine.Ask(ctx, q)
	if err != nil {
		return err
	}
	if !res.Proved {
		fmt.Println("no.")
		return nil
	}

	fmt.Printf("yes. (%d passes, %d facts derived)\n", res.Passes, len(res.Derived))
	for _, b := range bindings(q, res.Subst) {
		fmt.Println("  " + b)
	}
	return nil
}

// bindings renders the witness values for the query's variables.
func bindings(q term.Literal, s unify.Subst) []string {
	var out []string
	seen := make(map[term.Term]bool)
	for _, a := range q.Args {
		if !a.IsVariable() || seen[a] {
			continue
		}
		seen[a] = true
		out = append(out, fmt.Sprintf("%s = %s", a, unify.Resolve(a, s)))
	}
	return out
}
