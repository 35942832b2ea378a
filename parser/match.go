package parser

import (
	"strings"

	"github.com/Homlet/argand/grammar"
)

// Match is a node of the parse-match tree. Terminal matches carry the token
// they consumed; rule matches carry one child per matched symbol.
type Match struct {
	Rule     string
	Token    *Token
	Children []*Match
}

// IsTerminal returns true if this match consumed a single token.
func (m *Match) IsTerminal() bool {
	return m.Token != nil
}

func (m *Match) String() string {
	var sb strings.Builder
	m.write(&sb)
	return sb.String()
}

func (m *Match) write(sb *strings.Builder) {
	if m.IsTerminal() {
		sb.WriteString(m.Rule)
		sb.WriteByte(':')
		sb.WriteString(m.Token.Text)
		return
	}
	sb.WriteByte('(')
	sb.WriteString(m.Rule)
	for _, child := range m.Children {
		sb.WriteByte(' ')
		child.write(sb)
	}
	sb.WriteByte(')')
}

// memoKey identifies an attempt to match a rule at a token offset.
type memoKey struct {
	rule   string
	offset int
}

type memoResult struct {
	match *Match // nil if the rule failed
	next  int
}

// matcher matches a token stream against a grammar by backtracking
// recursive descent. The first alternative that matches wins.
type matcher struct {
	grammar  *grammar.Grammar
	tokens   []Token
	memo     map[memoKey]memoResult
	visiting map[memoKey]bool
	furthest int // furthest offset at which a terminal was expected
}

func newMatcher(g *grammar.Grammar, tokens []Token) *matcher {
	return &matcher{
		grammar:  g,
		tokens:   tokens,
		memo:     make(map[memoKey]memoResult),
		visiting: make(map[memoKey]bool),
	}
}

// MatchRule matches a prefix of tokens against rule. It returns the match
// and the tokens left over, or nil and the untouched tokens on failure.
func MatchRule(g *grammar.Grammar, rule string, tokens []Token) (*Match, []Token) {
	m, next := newMatcher(g, tokens).match(rule, 0)
	if m == nil {
		return nil, tokens
	}
	return m, tokens[next:]
}

func (m *matcher) match(rule string, offset int) (*Match, int) {
	if offset < len(m.tokens) && m.tokens[offset].Kind.String() == rule {
		tok := m.tokens[offset]
		return &Match{Rule: rule, Token: &tok}, offset + 1
	}
	if !m.grammar.Has(rule) {
		if offset > m.furthest {
			m.furthest = offset
		}
		return nil, offset
	}

	key := memoKey{rule: rule, offset: offset}
	if r, ok := m.memo[key]; ok {
		return r.match, r.next
	}
	// A rule re-entered at the same offset is left recursive; fail the
	// inner attempt so the outer one can try its other alternatives.
	if m.visiting[key] {
		return nil, offset
	}
	m.visiting[key] = true

	result := memoResult{next: offset}
alternatives:
	for _, prod := range m.grammar.Alternatives(rule) {
		pos := offset
		children := make([]*Match, 0, len(prod))
		for _, sym := range prod {
			child, next := m.match(sym, pos)
			if child == nil {
				continue alternatives
			}
			children = append(children, child)
			pos = next
		}
		result = memoResult{match: &Match{Rule: rule, Children: children}, next: pos}
		break
	}

	delete(m.visiting, key)
	m.memo[key] = result
	return result.match, result.next
}

// matchAll matches the whole token stream against the grammar's start rule.
// end is the length of the source text, reported for failures at end of input.
func matchAll(g *grammar.Grammar, tokens []Token, end int) (*Match, error) {
	m := newMatcher(g, tokens)
	root, next := m.match(g.Start(), 0)
	if root != nil && next == len(tokens) {
		return root, nil
	}

	at := m.furthest
	if root != nil && next > at {
		at = next
	}
	if at < len(tokens) {
		tok := tokens[at]
		return nil, &SyntaxError{Offset: tok.Offset, Text: tok.Text, Err: ErrGrammarMismatch}
	}
	return nil, &SyntaxError{Offset: end, Err: ErrGrammarMismatch}
}
