package parser

import (
	"fmt"
	"strconv"
	"strings"
)

const (
	ruleEquation = "Eqn"
	ruleRelation = "Rel"
	ruleFunction = "Fun"
)

// ruleOperators maps rules that build an operator node when their operand
// count equals the operator's arity.
var ruleOperators = map[string]OperatorKind{
	"Add": OpAdd,
	"Sub": OpSub,
	"Mul": OpMul,
	"Div": OpDiv,
	"Exp": OpExp,
	"Mod": OpMod,
	"Neg": OpNeg,
	"Pos": OpPos,
}

var relationOperators = map[TokenKind]OperatorKind{
	TokenMore:   OpGt,
	TokenMoreEq: OpGe,
	TokenEq:     OpEq,
	TokenLessEq: OpLe,
	TokenLess:   OpLt,
}

var functionOperators = map[TokenKind]OperatorKind{
	TokenSin:  OpSin,
	TokenCos:  OpCos,
	TokenTan:  OpTan,
	TokenSqrt: OpSqrt,
	TokenArg:  OpArg,
}

type builder struct {
	unit string
}

// Build converts a match tree into an AST. Rules without an operator of
// their own are transparent and build their single operand.
func Build(m *Match, opts ...Option) (Node, error) {
	return newBuilder(newConfig(opts)).build(m)
}

func newBuilder(cfg *config) *builder {
	return &builder{unit: string(cfg.imaginaryUnit)}
}

func (b *builder) build(m *Match) (Node, error) {
	if m.IsTerminal() {
		return b.leaf(m.Token)
	}

	children := operands(m.Children)
	var op OperatorKind
	switch m.Rule {
	case ruleEquation, ruleFunction:
		kind, rest, ok := extractOperator(m.Rule, children)
		if !ok {
			return nil, fmt.Errorf("%w: %s has no operator", ErrGrammarMismatch, m.Rule)
		}
		if len(rest) != kind.Arity() {
			return nil, fmt.Errorf("%w: %s takes %d, got %d", ErrArityMismatch, kind, kind.Arity(), len(rest))
		}
		op, children = kind, rest
	default:
		kind, ok := ruleOperators[m.Rule]
		if !ok || len(children) != kind.Arity() {
			if len(children) != 1 {
				return nil, fmt.Errorf("%w: %s has %d operands", ErrArityMismatch, m.Rule, len(children))
			}
			return b.build(children[0])
		}
		op = kind
	}

	nodes := make([]Node, 0, len(children))
	for _, child := range children {
		n, err := b.build(child)
		if err != nil {
			return nil, err
		}
		nodes = append(nodes, n)
	}
	return NewOperator(op, nodes...)
}

// operands drops terminal matches that only spell an operator or bracket.
func operands(children []*Match) []*Match {
	out := make([]*Match, 0, len(children))
	for _, c := range children {
		if c.IsTerminal() {
			switch k := c.Token.Kind; {
			case k == TokenNum, k == TokenVar, k.IsFunction():
			default:
				continue
			}
		}
		out = append(out, c)
	}
	return out
}

// extractOperator finds the relation (for equations) or function name
// (for function applications) among children and removes it.
func extractOperator(rule string, children []*Match) (OperatorKind, []*Match, bool) {
	for i, c := range children {
		var op OperatorKind
		var ok bool
		switch {
		case rule == ruleEquation && !c.IsTerminal() && c.Rule == ruleRelation:
			if len(c.Children) == 1 && c.Children[0].IsTerminal() {
				op, ok = relationOperators[c.Children[0].Token.Kind]
			}
		case rule == ruleFunction && c.IsTerminal():
			op, ok = functionOperators[c.Token.Kind]
		}
		if ok {
			rest := make([]*Match, 0, len(children)-1)
			rest = append(rest, children[:i]...)
			rest = append(rest, children[i+1:]...)
			return op, rest, true
		}
	}
	return 0, nil, false
}

func (b *builder) leaf(tok *Token) (Node, error) {
	switch tok.Kind {
	case TokenNum:
		v, err := parseNumber(tok.Text, b.unit)
		if err != nil {
			return nil, &SyntaxError{Offset: tok.Offset, Text: tok.Text, Err: ErrGrammarMismatch}
		}
		return &Number{Value: v}, nil
	case TokenVar:
		return &Variable{Name: tok.Text}, nil
	}
	return nil, &SyntaxError{Offset: tok.Offset, Text: tok.Text, Err: ErrGrammarMismatch}
}

// parseNumber parses a numeric literal. A trailing unit marks it imaginary
// and the bare unit stands for one imaginary unit.
func parseNumber(text, unit string) (complex128, error) {
	imaginary := unit != "" && strings.HasSuffix(text, unit)
	if imaginary {
		text = strings.TrimSuffix(text, unit)
	}
	v := 1.0
	switch {
	case text != "":
		f, err := strconv.ParseFloat(text, 64)
		if err != nil {
			return 0, fmt.Errorf("parse number %q: %w", text, err)
		}
		v = f
	case !imaginary:
		return 0, fmt.Errorf("parse number: empty literal")
	}
	if imaginary {
		return complex(0, v), nil
	}
	return complex(v, 0), nil
}
