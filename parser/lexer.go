package parser

import "strings"

var singleCharTokens = map[byte]TokenKind{
	'(': TokenLParen,
	')': TokenRParen,
	'|': TokenMod,
	'-': TokenSub,
	'+': TokenAdd,
	'*': TokenMul,
	'/': TokenDiv,
	'^': TokenExp,
}

// Lexer splits equation text into tokens. Characters that start no token
// are skipped rather than reported.
type Lexer struct {
	input     string
	pos       int
	cfg       *config
	functions []string
	unit      string
}

func NewLexer(input string, opts ...Option) *Lexer {
	return newLexer(input, newConfig(opts))
}

func newLexer(input string, cfg *config) *Lexer {
	return &Lexer{
		input:     input,
		cfg:       cfg,
		functions: cfg.functionNames(),
		unit:      string(cfg.imaginaryUnit),
	}
}

// Tokenize returns every token in input.
func Tokenize(input string, opts ...Option) []Token {
	return NewLexer(input, opts...).Tokenize()
}

func (l *Lexer) Tokenize() []Token {
	var tokens []Token
	for {
		tok, ok := l.NextToken()
		if !ok {
			return tokens
		}
		tokens = append(tokens, tok)
	}
}

func (l *Lexer) peek() byte {
	return l.peekN(0)
}

func (l *Lexer) peekN(n int) byte {
	if l.pos+n >= len(l.input) {
		return 0
	}
	return l.input[l.pos+n]
}

func (l *Lexer) emit(kind TokenKind, start int) Token {
	return Token{Kind: kind, Text: l.input[start:l.pos], Offset: start}
}

// NextToken returns the next token, or false once the input is exhausted.
func (l *Lexer) NextToken() (Token, bool) {
	for l.pos < len(l.input) {
		start := l.pos
		ch := l.peek()

		switch ch {
		case ' ', '\t', '\r', '\n':
			l.pos++
			continue
		case '>':
			l.pos++
			if l.peek() == '=' {
				l.pos++
				return l.emit(TokenMoreEq, start), true
			}
			return l.emit(TokenMore, start), true
		case '<':
			l.pos++
			if l.peek() == '=' {
				l.pos++
				return l.emit(TokenLessEq, start), true
			}
			return l.emit(TokenLess, start), true
		case '=':
			l.pos++
			return l.emit(TokenEq, start), true
		}

		if kind, ok := singleCharTokens[ch]; ok {
			l.pos++
			return l.emit(kind, start), true
		}

		for _, name := range l.functions {
			if strings.HasPrefix(l.input[l.pos:], name) {
				l.pos += len(name)
				return l.emit(l.cfg.functions[name], start), true
			}
		}

		if isDigit(ch) || (ch == '.' && isDigit(l.peekN(1))) {
			return l.scanNumber(start), true
		}

		if l.unit != "" && strings.HasPrefix(l.input[l.pos:], l.unit) {
			l.pos += len(l.unit)
			return l.emit(TokenNum, start), true
		}

		if l.isVariable(ch) {
			l.pos++
			return l.emit(TokenVar, start), true
		}

		l.pos++
	}
	return Token{}, false
}

func (l *Lexer) scanNumber(start int) Token {
	for isDigit(l.peek()) {
		l.pos++
	}
	if l.peek() == '.' && isDigit(l.peekN(1)) {
		l.pos++
		for isDigit(l.peek()) {
			l.pos++
		}
	}
	if l.unit != "" && strings.HasPrefix(l.input[l.pos:], l.unit) {
		l.pos += len(l.unit)
	}
	return l.emit(TokenNum, start)
}

func (l *Lexer) isVariable(ch byte) bool {
	return (ch >= 'a' && ch <= 'z') || rune(ch) == l.cfg.variable
}

func isDigit(ch byte) bool {
	return ch >= '0' && ch <= '9'
}
