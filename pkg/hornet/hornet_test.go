package hornet

import (
	"context"
	"strings"
	"testing"

	"github.com/cognicore/hornet/pkg/hornet/term"
	"github.com/cognicore/hornet/pkg/hornet/unify"
)

const foodRules = `
# John likes all food
Food(x) => Likes(John, x)
Food(Apple)
Food(Vegetable)

# anything eaten by a survivor is food
Eats(a, b) & NotKilled(a) => Food(b)
Eats(Anil, Peanuts)
Alive(Anil)

# Harry eats whatever Anil eats
Eats(Anil, c) => Eats(Harry, c)
Alive(d) => NotKilled(d)
NotKilled(e) => Alive(e)
`

func newFoodEngine(t *testing.T) *Engine {
	t.Helper()
	e := New(Options{})
	if err := e.LoadRules(context.Background(), foodRules); err != nil {
		t.Fatalf("LoadRules: %v", err)
	}
	t.Cleanup(func() { e.Close() })
	return e
}

func TestAskProvable(t *testing.T) {
	e := newFoodEngine(t)

	res, err := e.AskString(context.Background(), "Likes(John, Peanuts)")
	if err != nil {
		t.Fatalf("AskString: %v", err)
	}
	if !res.Proved {
		t.Fatal("Likes(John, Peanuts) must be provable")
	}
	if res.Passes > 4 {
		t.Errorf("took %d passes, want at most 4", res.Passes)
	}
}

func TestAskUnprovable(t *testing.T) {
	e := newFoodEngine(t)

	res, err := e.AskString(context.Background(), "Likes(John, Rocks)")
	if err != nil {
		t.Fatalf("AskString: %v", err)
	}
	if res.Proved {
		t.Error("Likes(John, Rocks) must not be provable")
	}
}

func TestAskWithVariable(t *testing.T) {
	e := newFoodEngine(t)

	res, err := e.AskString(context.Background(), "Eats(Harry, what)")
	if err != nil {
		t.Fatalf("AskString: %v", err)
	}
	if !res.Proved {
		t.Fatal("Eats(Harry, what) must be provable")
	}
	if got := unify.Resolve(term.V("what"), res.Subst); got != term.C("Peanuts") {
		t.Errorf("what = %v, want Peanuts", got)
	}
}

func TestExplainAfterAsk(t *testing.T) {
	e := newFoodEngine(t)

	res, err := e.AskString(context.Background(), "Likes(John, Peanuts)")
	if err != nil || !res.Proved {
		t.Fatalf("setup ask failed: %v %+v", err, res)
	}

	lines := e.Explain(term.NewLiteral("Likes", term.C("John"), term.C("Peanuts")))
	if len(lines) < 3 {
		t.Fatalf("explanation too short: %v", lines)
	}
	if !strings.Contains(lines[len(lines)-1], "Likes(John, Peanuts)") {
		t.Errorf("explanation should end at the queried fact: %v", lines)
	}
}

func TestDerivationsPersisted(t *testing.T) {
	e := newFoodEngine(t)
	ctx := context.Background()

	if _, err := e.AskString(ctx, "Likes(John, Peanuts)"); err != nil {
		t.Fatalf("AskString: %v", err)
	}

	ds, err := e.store.Derivations(ctx, 0)
	if err != nil {
		t.Fatalf("Derivations: %v", err)
	}
	if len(ds) == 0 {
		t.Error("derivations should be flushed to the store after Ask")
	}
}

func TestAskDoesNotGrowKB(t *testing.T) {
	e := newFoodEngine(t)
	before := len(e.Rules())

	if _, err := e.AskString(context.Background(), "Likes(John, Peanuts)"); err != nil {
		t.Fatalf("AskString: %v", err)
	}
	if got := len(e.Rules()); got != before {
		t.Errorf("Ask mutated the engine KB: %d -> %d rules", before, got)
	}
}

func TestLoadRulesBadInput(t *testing.T) {
	e := New(Options{})
	defer e.Close()

	if err := e.LoadRules(context.Background(), "Likes John Peanuts"); err == nil {
		t.Error("malformed rule text must be rejected")
	}
}
