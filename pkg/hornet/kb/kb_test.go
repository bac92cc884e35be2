package kb

import (
	"errors"
	"testing"

	"github.com/cognicore/hornet/pkg/hornet/internalerr"
	"github.com/cognicore/hornet/pkg/hornet/term"
)

func TestAddFactDedup(t *testing.T) {
	k := New()

	f := term.NewLiteral("Food", term.C("Apple"))
	if !k.AddFact(f) {
		t.Fatal("first add should succeed")
	}
	if k.AddFact(f) {
		t.Error("duplicate fact must be rejected")
	}
	if k.Len() != 1 {
		t.Errorf("Len = %d, want 1", k.Len())
	}
	if !k.HasFact(f) {
		t.Error("HasFact should find the stored fact")
	}
}

func TestFactsPreserveOrder(t *testing.T) {
	k := New()
	k.AddFact(term.NewLiteral("Food", term.C("Apple")))
	k.Add(term.Rule{
		Premises:   []term.Literal{term.NewLiteral("Food", term.V("x"))},
		Conclusion: term.NewLiteral("Likes", term.C("John"), term.V("x")),
	})
	k.AddFact(term.NewLiteral("Food", term.C("Vegetable")))

	facts := k.Facts()
	if len(facts) != 2 {
		t.Fatalf("Facts() returned %d entries, want 2", len(facts))
	}
	if facts[0].Args[0] != term.C("Apple") || facts[1].Args[0] != term.C("Vegetable") {
		t.Errorf("facts out of order: %v", facts)
	}
	if k.Len() != 3 {
		t.Errorf("Len = %d, want 3 (rules included)", k.Len())
	}
}

func TestCloneIsIndependent(t *testing.T) {
	k := New()
	k.AddFact(term.NewLiteral("Food", term.C("Apple")))

	c := k.Clone()
	c.AddFact(term.NewLiteral("Food", term.C("Peanuts")))

	if k.Len() != 1 {
		t.Errorf("clone mutation leaked into original: Len = %d", k.Len())
	}
	if !c.HasFact(term.NewLiteral("Food", term.C("Peanuts"))) {
		t.Error("clone missing its own fact")
	}
}

func TestValidateArityMismatch(t *testing.T) {
	k := New()
	k.AddFact(term.NewLiteral("Likes", term.C("John"), term.C("Apple")))
	k.AddFact(term.NewLiteral("Likes", term.C("John")))

	err := k.Validate()
	if err == nil {
		t.Fatal("expected arity mismatch to be rejected")
	}
	if !errors.Is(err, internalerr.ErrInvalidInput) {
		t.Errorf("error should wrap ErrInvalidInput, got %v", err)
	}
}

func TestValidateOK(t *testing.T) {
	k := New()
	k.AddFact(term.NewLiteral("Food", term.C("Apple")))
	k.Add(term.Rule{
		Premises:   []term.Literal{term.NewLiteral("Food", term.V("x"))},
		Conclusion: term.NewLiteral("Likes", term.C("John"), term.V("x")),
	})
	if err := k.Validate(); err != nil {
		t.Errorf("Validate: %v", err)
	}
}
