package term

import (
	"strings"
	"unicode"
)

// Kind distinguishes constants from variables.
// Terms carry an explicit tag rather than relying on lexical
// conventions, so constants like "nasdaq" or "x86" are unambiguous
// once a literal has been constructed.
type Kind int

const (
	Constant Kind = iota
	Variable
)

// Term is a single argument position in a literal: either a constant
// symbol or a variable. Terms are values and safe to use as map keys.
type Term struct {
	Kind Kind
	Name string
}

// C constructs a constant term.
func C(name string) Term {
	return Term{Kind: Constant, Name: name}
}

// V constructs a variable term.
func V(name string) Term {
	return Term{Kind: Variable, Name: name}
}

// FromToken classifies a raw token using the conventional lexical rule:
// a token that is entirely lowercase alphabetic is a variable, anything
// else is a constant. This is the text-boundary convention only; code
// building literals directly should use C and V.
func FromToken(tok string) Term {
	if isLowerAlpha(tok) {
		return V(tok)
	}
	return C(tok)
}

func isLowerAlpha(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !unicode.IsLower(r) {
			return false
		}
	}
	return true
}

// IsVariable reports whether t is a variable.
func (t Term) IsVariable() bool { return t.Kind == Variable }

// String renders the term's symbol.
func (t Term) String() string { return t.Name }

// Literal is an atomic sentence: a predicate applied to a fixed-arity
// argument list, e.g. Likes(John, x). Literals are immutable once
// constructed; all operations return new values.
type Literal struct {
	Pred string
	Args []Term
}

// NewLiteral builds a literal from a predicate and argument terms.
func NewLiteral(pred string, args ...Term) Literal {
	return Literal{Pred: pred, Args: args}
}

// FromTokens builds a literal from raw tokens, the first being the
// predicate name and the rest classified via FromToken.
func FromTokens(tokens []string) Literal {
	if len(tokens) == 0 {
		return Literal{}
	}
	args := make([]Term, 0, len(tokens)-1)
	for _, tok := range tokens[1:] {
		args = append(args, FromToken(tok))
	}
	return Literal{Pred: tokens[0], Args: args}
}

// Arity returns the number of arguments.
func (l Literal) Arity() int { return len(l.Args) }

// Equal reports structural equality.
func (l Literal) Equal(other Literal) bool {
	if l.Pred != other.Pred || len(l.Args) != len(other.Args) {
		return false
	}
	for i, a := range l.Args {
		if a != other.Args[i] {
			return false
		}
	}
	return true
}

// IsGround reports whether the literal contains no variables.
func (l Literal) IsGround() bool {
	for _, a := range l.Args {
		if a.IsVariable() {
			return false
		}
	}
	return true
}

// Key returns a canonical string for dedup maps. Variables are marked
// so that a variable x and a constant spelled the same never collide.
func (l Literal) Key() string {
	var b strings.Builder
	b.WriteString(l.Pred)
	for _, a := range l.Args {
		b.WriteByte('|')
		if a.IsVariable() {
			b.WriteByte('?')
		}
		b.WriteString(a.Name)
	}
	return b.String()
}

// String renders the literal in rule-file syntax: Pred(arg1, arg2).
func (l Literal) String() string {
	var b strings.Builder
	b.WriteString(l.Pred)
	b.WriteByte('(')
	for i, a := range l.Args {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(a.Name)
	}
	b.WriteByte(')')
	return b.String()
}

// Rule is a Horn-like rule: a conjunction of positive premise literals
// implying a single positive conclusion. A rule with no premises is a
// fact.
type Rule struct {
	Name       string
	Premises   []Literal
	Conclusion Literal
}

// Fact wraps a literal as a zero-premise rule.
func Fact(l Literal) Rule {
	return Rule{Conclusion: l}
}

// IsFact reports whether the rule has no premises.
func (r Rule) IsFact() bool { return len(r.Premises) == 0 }

// Equal reports structural equality of two rules.
func (r Rule) Equal(other Rule) bool {
	if len(r.Premises) != len(other.Premises) {
		return false
	}
	for i, p := range r.Premises {
		if !p.Equal(other.Premises[i]) {
			return false
		}
	}
	return r.Conclusion.Equal(other.Conclusion)
}

// String renders the rule in rule-file syntax:
// "P(x) & Q(x) => R(x)" for rules, "P(a)" for facts.
func (r Rule) String() string {
	if r.IsFact() {
		return r.Conclusion.String()
	}
	parts := make([]string, len(r.Premises))
	for i, p := range r.Premises {
		parts[i] = p.String()
	}
	return strings.Join(parts, " & ") + " => " + r.Conclusion.String()
}
