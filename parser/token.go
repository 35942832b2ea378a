package parser

import "fmt"

type TokenKind int

const (
	TokenLParen TokenKind = iota
	TokenRParen
	TokenMod
	TokenMore
	TokenMoreEq
	TokenEq
	TokenLessEq
	TokenLess
	TokenSub
	TokenAdd
	TokenMul
	TokenDiv
	TokenExp
	TokenSin
	TokenCos
	TokenTan
	TokenSqrt
	TokenArg
	TokenNum
	TokenVar
)

// tokenKindNames are the terminal names used by the grammar.
var tokenKindNames = map[TokenKind]string{
	TokenLParen: "lparen",
	TokenRParen: "rparen",
	TokenMod:    "mod",
	TokenMore:   "more",
	TokenMoreEq: "moreEq",
	TokenEq:     "eq",
	TokenLessEq: "lessEq",
	TokenLess:   "less",
	TokenSub:    "sub",
	TokenAdd:    "add",
	TokenMul:    "mul",
	TokenDiv:    "div",
	TokenExp:    "exp",
	TokenSin:    "sin",
	TokenCos:    "cos",
	TokenTan:    "tan",
	TokenSqrt:   "sqrt",
	TokenArg:    "arg",
	TokenNum:    "num",
	TokenVar:    "var",
}

// tokenKindExamples are spellings the tokenizer emits for each kind.
var tokenKindExamples = map[TokenKind]string{
	TokenLParen: "(",
	TokenRParen: ")",
	TokenMod:    "|",
	TokenMore:   ">",
	TokenMoreEq: ">=",
	TokenEq:     "=",
	TokenLessEq: "<=",
	TokenLess:   "<",
	TokenSub:    "-",
	TokenAdd:    "+",
	TokenMul:    "*",
	TokenDiv:    "/",
	TokenExp:    "^",
	TokenSin:    "sin",
	TokenCos:    "cos",
	TokenTan:    "tan",
	TokenSqrt:   "sqrt",
	TokenArg:    "arg",
	TokenNum:    "1",
	TokenVar:    "z",
}

var tokenKindsByName map[string]TokenKind

func init() {
	tokenKindsByName = make(map[string]TokenKind, len(tokenKindNames))
	for k, name := range tokenKindNames {
		tokenKindsByName[name] = k
	}
}

func (k TokenKind) String() string {
	if name, ok := tokenKindNames[k]; ok {
		return name
	}
	return "Unknown"
}

// LookupTokenKind returns the kind whose grammar terminal name is name.
func LookupTokenKind(name string) (TokenKind, bool) {
	k, ok := tokenKindsByName[name]
	return k, ok
}

// Example returns a spelling of k that Tokenize emits with the default
// options.
func (k TokenKind) Example() string {
	return tokenKindExamples[k]
}

// IsRelation reports whether k is one of the five relation symbols.
func (k TokenKind) IsRelation() bool {
	return k >= TokenMore && k <= TokenLess
}

// IsFunction reports whether k names a function.
func (k TokenKind) IsFunction() bool {
	return k >= TokenSin && k <= TokenArg
}

type Token struct {
	Kind   TokenKind
	Text   string
	Offset int // byte offset in the equation text
}

func (t Token) String() string {
	return fmt.Sprintf("%d %s %q", t.Offset, t.Kind, t.Text)
}

// End returns the byte offset just past the token.
func (t Token) End() int {
	return t.Offset + len(t.Text)
}
