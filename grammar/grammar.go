// Package grammar provides the static rule table the equation matcher walks.
//
// Grammars are written in EBNF (golang.org/x/exp/ebnf). Capitalised
// productions become rules whose alternatives are sequences of symbol names;
// lowercase productions are lexical and act as terminals, named after the
// token kinds the tokenizer produces.
package grammar

import (
	_ "embed"
	"fmt"
	"io"
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/exp/ebnf"
)

// Start is the root rule of the equation grammar.
const Start = "Eqn"

//go:embed equation.ebnf
var equationSource string

var equation = mustLoad("equation.ebnf", equationSource, Start)

// Production is one alternative of a rule: the symbols to match in order.
type Production []string

func (p Production) String() string {
	return strings.Join(p, " ")
}

// Grammar is a read-only rule table.
type Grammar struct {
	start   string
	rules   map[string][]Production
	lexical map[string]bool
	order   []string
	source  ebnf.Grammar
}

// Equation returns the built-in equation grammar.
func Equation() *Grammar {
	return equation
}

// Load parses and verifies an EBNF grammar and converts its non-lexical
// productions into a rule table rooted at start.
func Load(filename string, r io.Reader, start string) (*Grammar, error) {
	g, err := ebnf.Parse(filename, r)
	if err != nil {
		return nil, fmt.Errorf("parse grammar: %w", err)
	}
	if err := ebnf.Verify(g, start); err != nil {
		return nil, fmt.Errorf("verify grammar: %w", err)
	}

	out := &Grammar{
		start:   start,
		rules:   make(map[string][]Production),
		lexical: make(map[string]bool),
		source:  g,
	}

	prods := make([]*ebnf.Production, 0, len(g))
	for _, prod := range g {
		prods = append(prods, prod)
	}
	sort.Slice(prods, func(i, j int) bool {
		return prods[i].Pos().Offset < prods[j].Pos().Offset
	})

	for _, prod := range prods {
		name := prod.Name.String
		if IsLexical(name) {
			out.lexical[name] = true
			continue
		}
		alts, err := alternatives(prod.Expr)
		if err != nil {
			return nil, fmt.Errorf("%s: production %s: %w", prod.Pos(), name, err)
		}
		out.rules[name] = alts
		out.order = append(out.order, name)
	}

	return out, nil
}

func mustLoad(filename, src, start string) *Grammar {
	g, err := Load(filename, strings.NewReader(src), start)
	if err != nil {
		panic(err)
	}
	return g
}

// IsLexical reports whether name denotes a lexical production, i.e. a terminal.
func IsLexical(name string) bool {
	r, _ := utf8.DecodeRuneInString(name)
	return !unicode.IsUpper(r)
}

func alternatives(expr ebnf.Expression) ([]Production, error) {
	if expr == nil {
		return nil, fmt.Errorf("empty production")
	}
	alt, ok := expr.(ebnf.Alternative)
	if !ok {
		seq, err := sequence(expr)
		if err != nil {
			return nil, err
		}
		return []Production{seq}, nil
	}

	out := make([]Production, 0, len(alt))
	for _, e := range alt {
		seq, err := sequence(e)
		if err != nil {
			return nil, err
		}
		out = append(out, seq)
	}
	return out, nil
}

func sequence(expr ebnf.Expression) (Production, error) {
	switch e := expr.(type) {
	case *ebnf.Name:
		return Production{e.String}, nil
	case ebnf.Sequence:
		seq := make(Production, 0, len(e))
		for _, item := range e {
			name, ok := item.(*ebnf.Name)
			if !ok {
				return nil, fmt.Errorf("%s: unsupported %s in sequence", item.Pos(), describe(item))
			}
			seq = append(seq, name.String)
		}
		return seq, nil
	default:
		return nil, fmt.Errorf("%s: unsupported %s", expr.Pos(), describe(expr))
	}
}

func describe(expr ebnf.Expression) string {
	switch expr.(type) {
	case *ebnf.Token:
		return "literal token"
	case *ebnf.Range:
		return "range"
	case *ebnf.Group:
		return "group"
	case *ebnf.Option:
		return "option"
	case *ebnf.Repetition:
		return "repetition"
	case ebnf.Alternative:
		return "nested alternative"
	default:
		return fmt.Sprintf("%T", expr)
	}
}

// Start returns the root rule name.
func (g *Grammar) Start() string {
	return g.start
}

// Has reports whether name is a rule (non-terminal) of the grammar.
func (g *Grammar) Has(name string) bool {
	_, ok := g.rules[name]
	return ok
}

// IsTerminal reports whether name is a lexical production of the grammar.
func (g *Grammar) IsTerminal(name string) bool {
	return g.lexical[name]
}

// Alternatives returns the productions registered under rule, in source order.
func (g *Grammar) Alternatives(rule string) []Production {
	return g.rules[rule]
}

// Rules returns the rule names in source order.
func (g *Grammar) Rules() []string {
	return append([]string(nil), g.order...)
}

// Terminals returns every terminal referenced by a rule, sorted.
func (g *Grammar) Terminals() []string {
	seen := make(map[string]bool)
	for _, alts := range g.rules {
		for _, p := range alts {
			for _, sym := range p {
				if g.lexical[sym] {
					seen[sym] = true
				}
			}
		}
	}
	out := make([]string, 0, len(seen))
	for name := range seen {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

func (g *Grammar) String() string {
	var sb strings.Builder
	for _, name := range g.order {
		alts := g.rules[name]
		parts := make([]string, len(alts))
		for i, p := range alts {
			parts[i] = p.String()
		}
		fmt.Fprintf(&sb, "%s = %s .\n", name, strings.Join(parts, " | "))
	}
	return sb.String()
}
