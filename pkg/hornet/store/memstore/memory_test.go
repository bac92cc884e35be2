package memstore

import (
	"context"
	"testing"

	"github.com/cognicore/hornet/pkg/hornet/parse"
	"github.com/cognicore/hornet/pkg/hornet/proof"
	"github.com/cognicore/hornet/pkg/hornet/term"
)

func TestRulesOrderAndDedup(t *testing.T) {
	ctx := context.Background()
	s := New()

	lines := []string{"Food(Apple)", "Food(x) => Likes(John, x)", "Food(Apple)"}
	for _, line := range lines {
		r, err := parse.Rule(line)
		if err != nil {
			t.Fatalf("parse %q: %v", line, err)
		}
		if err := s.AppendRule(ctx, r); err != nil {
			t.Fatalf("AppendRule: %v", err)
		}
	}

	rules, err := s.Rules(ctx)
	if err != nil {
		t.Fatalf("Rules: %v", err)
	}
	if len(rules) != 2 {
		t.Fatalf("got %d rules, want 2 (duplicate dropped)", len(rules))
	}
	if rules[0].String() != "Food(Apple)" {
		t.Errorf("order lost: first rule %q", rules[0].String())
	}
}

func TestDerivationsLimit(t *testing.T) {
	ctx := context.Background()
	s := New()
	rec := proof.NewRecorder()

	rule, err := parse.Rule("Food(x) => Likes(John, x)")
	if err != nil {
		t.Fatal(err)
	}
	for _, name := range []string{"Apple", "Vegetable"} {
		d := rec.Record(rule,
			[]term.Literal{term.NewLiteral("Food", term.C(name))},
			term.NewLiteral("Likes", term.C("John"), term.C(name)), 1)
		if err := s.AppendDerivation(ctx, d); err != nil {
			t.Fatalf("AppendDerivation: %v", err)
		}
	}

	all, err := s.Derivations(ctx, 0)
	if err != nil {
		t.Fatalf("Derivations: %v", err)
	}
	if len(all) != 2 {
		t.Errorf("got %d derivations, want 2", len(all))
	}

	one, err := s.Derivations(ctx, 1)
	if err != nil {
		t.Fatalf("Derivations(1): %v", err)
	}
	if len(one) != 1 {
		t.Errorf("limit ignored: %d records", len(one))
	}
}

func TestRulesReturnsCopy(t *testing.T) {
	ctx := context.Background()
	s := New()

	r, err := parse.Rule("Food(Apple)")
	if err != nil {
		t.Fatal(err)
	}
	if err := s.AppendRule(ctx, r); err != nil {
		t.Fatal(err)
	}

	rules, err := s.Rules(ctx)
	if err != nil {
		t.Fatal(err)
	}
	rules[0] = term.Fact(term.NewLiteral("Food", term.C("Rocks")))

	again, err := s.Rules(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if again[0].String() != "Food(Apple)" {
		t.Error("caller mutation leaked into the store")
	}
}
