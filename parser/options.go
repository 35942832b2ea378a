package parser

import (
	"sort"

	"github.com/Homlet/argand/grammar"
)

// Option configures tokenizing and parsing.
type Option func(*config)

type config struct {
	variable      rune
	imaginaryUnit rune
	functions     map[string]TokenKind
	strict        bool
	grammar       *grammar.Grammar
}

// DefaultFunctions maps the reserved function names to their token kinds.
func DefaultFunctions() map[string]TokenKind {
	return map[string]TokenKind{
		"sin":  TokenSin,
		"cos":  TokenCos,
		"tan":  TokenTan,
		"sqrt": TokenSqrt,
		"arg":  TokenArg,
	}
}

func newConfig(opts []Option) *config {
	c := &config{
		variable:      'z',
		imaginaryUnit: 'j',
		functions:     DefaultFunctions(),
		grammar:       grammar.Equation(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// WithVariable sets the letter treated as the free variable.
func WithVariable(r rune) Option {
	return func(c *config) {
		c.variable = r
	}
}

// WithImaginaryUnit sets the suffix letter marking imaginary literals.
func WithImaginaryUnit(r rune) Option {
	return func(c *config) {
		c.imaginaryUnit = r
	}
}

// WithFunctions replaces the reserved function names.
// Only function token kinds are accepted; other entries are ignored.
func WithFunctions(fns map[string]TokenKind) Option {
	return func(c *config) {
		c.functions = make(map[string]TokenKind, len(fns))
		for name, k := range fns {
			if name != "" && k.IsFunction() {
				c.functions[name] = k
			}
		}
	}
}

// WithStrictVariable rejects any variable letter other than the configured one.
func WithStrictVariable() Option {
	return func(c *config) {
		c.strict = true
	}
}

// WithGrammar matches against g instead of the built-in equation grammar.
func WithGrammar(g *grammar.Grammar) Option {
	return func(c *config) {
		c.grammar = g
	}
}

// functionNames returns the reserved names, longest first so that a name is
// never shadowed by one of its prefixes.
func (c *config) functionNames() []string {
	names := make([]string, 0, len(c.functions))
	for name := range c.functions {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		if len(names[i]) != len(names[j]) {
			return len(names[i]) > len(names[j])
		}
		return names[i] < names[j]
	})
	return names
}
