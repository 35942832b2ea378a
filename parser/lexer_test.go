package parser

import (
	"testing"

	"github.com/Homlet/argand/grammar"
)

func TestLexer(t *testing.T) {
	tests := []struct {
		input    string
		expected []TokenKind
	}{
		{"", nil},
		{"z = 1", []TokenKind{TokenVar, TokenEq, TokenNum}},
		{"|z-1j|<=2", []TokenKind{TokenMod, TokenVar, TokenSub, TokenNum, TokenMod, TokenLessEq, TokenNum}},
		{"sin(z)>0", []TokenKind{TokenSin, TokenLParen, TokenVar, TokenRParen, TokenMore, TokenNum}},
		{"z >= 3", []TokenKind{TokenVar, TokenMoreEq, TokenNum}},
		{"arg z < 1", []TokenKind{TokenArg, TokenVar, TokenLess, TokenNum}},
		{"sqrtz", []TokenKind{TokenSqrt, TokenVar}},
		{"cos tan", []TokenKind{TokenCos, TokenTan}},
		{"* / ^ +", []TokenKind{TokenMul, TokenDiv, TokenExp, TokenAdd}},
		{"j", []TokenKind{TokenNum}},
		{"Z", nil},
		{"z # 1", []TokenKind{TokenVar, TokenNum}},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			tokens := Tokenize(tt.input)
			if len(tokens) != len(tt.expected) {
				t.Fatalf("got %d tokens, want %d: %v", len(tokens), len(tt.expected), tokens)
			}
			for i, tok := range tokens {
				if tok.Kind != tt.expected[i] {
					t.Errorf("token %d: got %v, want %v", i, tok.Kind, tt.expected[i])
				}
			}
		})
	}
}

func TestLexerTextAndOffsets(t *testing.T) {
	tokens := Tokenize("z+12.5j >= .5")
	want := []Token{
		{Kind: TokenVar, Text: "z", Offset: 0},
		{Kind: TokenAdd, Text: "+", Offset: 1},
		{Kind: TokenNum, Text: "12.5j", Offset: 2},
		{Kind: TokenMoreEq, Text: ">=", Offset: 8},
		{Kind: TokenNum, Text: ".5", Offset: 11},
	}
	if len(tokens) != len(want) {
		t.Fatalf("got %d tokens, want %d: %v", len(tokens), len(want), tokens)
	}
	for i := range want {
		if tokens[i] != want[i] {
			t.Errorf("token %d: got %+v, want %+v", i, tokens[i], want[i])
		}
	}
	if got := tokens[2].End(); got != 7 {
		t.Errorf("End() = %d, want 7", got)
	}
}

func TestLexerOptions(t *testing.T) {
	t.Run("imaginary unit", func(t *testing.T) {
		tokens := Tokenize("2i", WithImaginaryUnit('i'))
		if len(tokens) != 1 || tokens[0].Kind != TokenNum || tokens[0].Text != "2i" {
			t.Errorf("got %v, want a single 2i number", tokens)
		}
	})

	t.Run("functions", func(t *testing.T) {
		tokens := Tokenize("s(z)", WithFunctions(map[string]TokenKind{"s": TokenSin, "bad": TokenAdd}))
		if len(tokens) != 4 || tokens[0].Kind != TokenSin {
			t.Errorf("got %v, want s as sin", tokens)
		}
		tokens = Tokenize("sin", WithFunctions(map[string]TokenKind{"s": TokenSin}))
		if len(tokens) != 3 {
			t.Errorf("got %v, want sin spelled as three tokens", tokens)
		}
	})

	t.Run("longest function first", func(t *testing.T) {
		tokens := Tokenize("sinh", WithFunctions(map[string]TokenKind{"sin": TokenSin, "sinh": TokenCos}))
		if len(tokens) != 1 || tokens[0].Kind != TokenCos {
			t.Errorf("got %v, want sinh", tokens)
		}
	})
}

func TestTokenKindString(t *testing.T) {
	if got := TokenMoreEq.String(); got != "moreEq" {
		t.Errorf("got %q, want %q", got, "moreEq")
	}
	if got := TokenKind(99).String(); got != "Unknown" {
		t.Errorf("got %q, want %q", got, "Unknown")
	}
	if k, ok := LookupTokenKind("lparen"); !ok || k != TokenLParen {
		t.Errorf("LookupTokenKind(lparen) = %v, %v", k, ok)
	}
	if !TokenLess.IsRelation() || TokenSub.IsRelation() {
		t.Error("IsRelation wrong")
	}
	if !TokenArg.IsFunction() || TokenNum.IsFunction() {
		t.Error("IsFunction wrong")
	}
}

func TestTokenKindExamples(t *testing.T) {
	for k := range tokenKindNames {
		toks := Tokenize(k.Example())
		if len(toks) != 1 || toks[0].Kind != k || toks[0].Text != k.Example() {
			t.Errorf("%s: example %q tokenizes to %v", k, k.Example(), toks)
		}
	}
}

func TestTokensMatchGrammarSpelling(t *testing.T) {
	g := grammar.Equation()
	inputs := []string{
		"|z-1.5j|<=2",
		"sin(z)>0",
		"arg(z - .5) >= -j",
		"sqrt z * 3 / 2 ^ z + cos tan z = 12.25j",
		"z < 1 + j",
	}
	for _, input := range inputs {
		for _, tok := range Tokenize(input) {
			if !g.Spells(tok.Kind.String(), tok.Text) {
				t.Errorf("%q: token %v is not spelled as the grammar's %s", input, tok, tok.Kind)
			}
		}
	}
}
