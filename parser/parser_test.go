package parser

import (
	"errors"
	"math/rand"
	"strings"
	"testing"

	"github.com/Homlet/argand/grammar"
)

func TestParse(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"z = 1", "z = 1"},
		{"1-2-3 = z", "((1 - 2) - 3) = z"},
		{"8/4/2 = z", "((8 / 4) / 2) = z"},
		{"1-2*3-4 = z", "((1 - (2 * 3)) - 4) = z"},
		{"1+2*z = 0", "(1 + (2 * z)) = 0"},
		{"2^3^z = 1", "(2 ^ (3 ^ z)) = 1"},
		{"|z-1| < 2", "|(z - 1)| < 2"},
		{"-z = 2j", "-z = 2j"},
		{"+z <= .5", "+z <= 0.5"},
		{"sin(z) > 0", "sin(z) > 0"},
		{"arg(z) >= 1", "arg(z) >= 1"},
		{"sqrt z = j", "sqrt(z) = 1j"},
		{"z = 1-2j", "z = (1 - 2j)"},
		{"1-(2-3) = z", "(1 - (2 - 3)) = z"},
		{"x = 1", "x = 1"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			n, err := Parse(tt.input)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got := n.String(); got != tt.expected {
				t.Errorf("got %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		input  string
		err    error
		text   string
		offset int
	}{
		{"", ErrGrammarMismatch, "", 0},
		{"z = ", ErrGrammarMismatch, "", 4},
		{"z + 1", ErrGrammarMismatch, "", 5},
		{"z = 1)", ErrGrammarMismatch, ")", 5},
		{"z = 1 = 2", ErrGrammarMismatch, "=", 6},
		{"z = 1 /", ErrGrammarMismatch, "", 7},
		{"z = w", ErrMultipleVariables, "w", 4},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			_, err := Parse(tt.input)
			if !errors.Is(err, tt.err) {
				t.Fatalf("got %v, want %v", err, tt.err)
			}
			var syntaxErr *SyntaxError
			if !errors.As(err, &syntaxErr) {
				t.Fatalf("got %T, want *SyntaxError", err)
			}
			if syntaxErr.Text != tt.text || syntaxErr.Offset != tt.offset {
				t.Errorf("got %q at %d, want %q at %d", syntaxErr.Text, syntaxErr.Offset, tt.text, tt.offset)
			}
		})
	}
}

func TestParseStrictVariable(t *testing.T) {
	if _, err := Parse("z = 1", WithStrictVariable()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	_, err := Parse("x = 1", WithStrictVariable())
	if !errors.Is(err, ErrUnknownVariable) {
		t.Errorf("got %v, want %v", err, ErrUnknownVariable)
	}
	if _, err := Parse("w = 1", WithStrictVariable(), WithVariable('w')); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestParseDeepNesting(t *testing.T) {
	input := strings.Repeat("(", 100) + "z" + strings.Repeat(")", 100) + " = 1"
	n, err := Parse(input)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := n.String(); got != "z = 1" {
		t.Errorf("got %q, want %q", got, "z = 1")
	}
}

func TestParseRandomInput(t *testing.T) {
	const alphabet = "z0123456789.j+-*/^()|<>= sincotaqrg"
	rng := rand.New(rand.NewSource(1))
	for i := 0; i < 200; i++ {
		var sb strings.Builder
		for j := 0; j < 200; j++ {
			sb.WriteByte(alphabet[rng.Intn(len(alphabet))])
		}
		input := sb.String()
		n, err := Parse(input)
		if err == nil && n == nil {
			t.Fatalf("%q: nil node without error", input)
		}
	}
}

func TestParseMatch(t *testing.T) {
	m, err := ParseMatch("1-2-3=z")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if m.Rule != grammar.Start {
		t.Errorf("got root %q, want %q", m.Rule, grammar.Start)
	}
	if len(m.Children) != 3 {
		t.Fatalf("got %d children, want 3", len(m.Children))
	}
}

func TestMatchRule(t *testing.T) {
	g := grammar.Equation()

	m, rest := MatchRule(g, "Add", Tokenize("1+2)"))
	if m == nil {
		t.Fatal("expected a match")
	}
	if len(rest) != 1 || rest[0].Kind != TokenRParen {
		t.Errorf("got remaining %v, want [)]", rest)
	}

	tokens := Tokenize("1")
	m, rest = MatchRule(g, "Par", tokens)
	if m != nil {
		t.Errorf("got %v, want no match", m)
	}
	if len(rest) != len(tokens) {
		t.Errorf("got %d remaining, want %d", len(rest), len(tokens))
	}
}

func TestMatchLeftRecursion(t *testing.T) {
	src := "E = E add num | num .\nadd = \"+\" .\nnum = \"0\" … \"9\" .\n"
	g, err := grammar.Load("left.ebnf", strings.NewReader(src), "E")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	m, rest := MatchRule(g, "E", Tokenize("1+2"))
	if m == nil {
		t.Fatal("expected a match")
	}
	if got := m.String(); got != "(E num:1)" {
		t.Errorf("got %q, want %q", got, "(E num:1)")
	}
	if len(rest) != 2 {
		t.Errorf("got %d remaining, want 2", len(rest))
	}
}

func num(text string) *Match {
	return &Match{Rule: "num", Token: &Token{Kind: TokenNum, Text: text}}
}

func op(kind TokenKind, text string) *Match {
	return &Match{Rule: kind.String(), Token: &Token{Kind: kind, Text: text}}
}

func TestFixAssociativity(t *testing.T) {
	chain := &Match{Rule: "Sub", Children: []*Match{
		num("1"), op(TokenSub, "-"), &Match{Rule: "Sub", Children: []*Match{
			num("2"), op(TokenSub, "-"), &Match{Rule: "Sub", Children: []*Match{num("3")}},
		}},
	}}
	before := chain.String()

	fixed := FixAssociativity(chain, LeftAssociative...)
	want := "(Sub (Sub num:1 sub:- num:2) sub:- num:3)"
	if got := fixed.String(); got != want {
		t.Errorf("got %q, want %q", got, want)
	}
	if got := chain.String(); got != before {
		t.Errorf("input modified: got %q, want %q", got, before)
	}

	untouched := FixAssociativity(chain, "Add")
	if got := untouched.String(); got != before {
		t.Errorf("got %q, want %q", got, before)
	}
}

func TestBuildErrors(t *testing.T) {
	noRelation := &Match{Rule: "Eqn", Children: []*Match{num("1")}}
	if _, err := Build(noRelation); !errors.Is(err, ErrGrammarMismatch) {
		t.Errorf("got %v, want %v", err, ErrGrammarMismatch)
	}

	badArity := &Match{Rule: "Fun", Children: []*Match{op(TokenSin, "sin"), num("1"), num("2")}}
	if _, err := Build(badArity); !errors.Is(err, ErrArityMismatch) {
		t.Errorf("got %v, want %v", err, ErrArityMismatch)
	}

	if _, err := NewOperator(OpAdd, &Number{Value: 1}); !errors.Is(err, ErrArityMismatch) {
		t.Errorf("got %v, want %v", err, ErrArityMismatch)
	}
}

func TestParseNumber(t *testing.T) {
	tests := []struct {
		text     string
		expected complex128
	}{
		{"3", 3},
		{".5", 0.5},
		{"2.5j", 2.5i},
		{"j", 1i},
	}
	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			got, err := parseNumber(tt.text, "j")
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.expected {
				t.Errorf("got %v, want %v", got, tt.expected)
			}
		})
	}
	if _, err := parseNumber("", "j"); err == nil {
		t.Error("expected error for empty literal")
	}
}
