// Package parse reads the rule-file syntax:
//
//	# facts are bare literals, rules join premises with & before =>
//	Food(Apple)
//	Eats(a, b) & NotKilled(a) => Food(b)
//
// Tokens that are entirely lowercase alphabetic are variables,
// everything else is a constant.
package parse

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"

	"github.com/cognicore/hornet/pkg/hornet/internalerr"
	"github.com/cognicore/hornet/pkg/hornet/term"
)

var (
	ruleLexer = lexer.MustSimple([]lexer.SimpleRule{
		{Name: "Comment", Pattern: `#[^\n]*`},
		{Name: "Ident", Pattern: `[A-Za-z][A-Za-z0-9_-]*`},
		{Name: "Arrow", Pattern: `=>`},
		{Name: "Punct", Pattern: `[(),&]`},
		{Name: "Whitespace", Pattern: `[ \t\r\n]+`},
	})

	ruleParser = participle.MustBuild[ruleNode](
		participle.Lexer(ruleLexer),
		participle.Elide("Comment", "Whitespace"),
	)
	literalParser = participle.MustBuild[literalNode](
		participle.Lexer(ruleLexer),
		participle.Elide("Comment", "Whitespace"),
	)
)

type literalNode struct {
	Pred string   `parser:"@Ident"`
	Args []string `parser:"\"(\" ( @Ident ( \",\" @Ident )* )? \")\""`
}

type ruleNode struct {
	Head       []*literalNode `parser:"@@ ( \"&\" @@ )*"`
	Conclusion *literalNode   `parser:"( Arrow @@ )?"`
}

func (n *literalNode) literal() term.Literal {
	args := make([]term.Term, len(n.Args))
	for i, a := range n.Args {
		args[i] = term.FromToken(a)
	}
	return term.Literal{Pred: n.Pred, Args: args}
}

// Rule parses a single line: either a fact (one bare literal) or a
// rule (premises & ... => conclusion).
func Rule(line string) (term.Rule, error) {
	node, err := ruleParser.ParseString("", line)
	if err != nil {
		return term.Rule{}, fmt.Errorf("parse %q: %v: %w", line, err, internalerr.ErrInvalidInput)
	}

	if node.Conclusion == nil {
		if len(node.Head) != 1 {
			return term.Rule{}, fmt.Errorf("parse %q: conjunction without a conclusion: %w",
				line, internalerr.ErrInvalidInput)
		}
		return term.Fact(node.Head[0].literal()), nil
	}

	premises := make([]term.Literal, len(node.Head))
	for i, h := range node.Head {
		premises[i] = h.literal()
	}
	return term.Rule{Premises: premises, Conclusion: node.Conclusion.literal()}, nil
}

// Literal parses a single literal, the query syntax.
func Literal(src string) (term.Literal, error) {
	node, err := literalParser.ParseString("", src)
	if err != nil {
		return term.Literal{}, fmt.Errorf("parse %q: %v: %w", src, err, internalerr.ErrInvalidInput)
	}
	return node.literal(), nil
}

// Rules parses a whole rule file: one fact or rule per line, with
// blank lines and # comments skipped.
func Rules(src string) ([]term.Rule, error) {
	var out []term.Rule

	scanner := bufio.NewScanner(strings.NewReader(src))
	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		r, err := Rule(line)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNum, err)
		}
		out = append(out, r)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
