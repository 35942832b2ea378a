package locus

import (
	"fmt"

	"github.com/Homlet/argand/parser"
)

// LinearForm is Coefficient*z + Offset.
type LinearForm struct {
	Coefficient complex128
	Offset      complex128
}

// HasVariable reports whether the form depends on z.
func (f LinearForm) HasVariable() bool {
	return f.Coefficient != 0
}

// Values reduces n to a linear form. Sums, differences, negation and
// products or quotients with a constant are decomposed; any other subtree is
// resolved numerically and so fails if it mentions the variable.
func Values(n parser.Node) (LinearForm, error) {
	switch n := n.(type) {
	case *parser.Variable:
		return LinearForm{Coefficient: 1}, nil
	case *parser.Number:
		return LinearForm{Offset: n.Value}, nil
	case *parser.Operator:
		if f, ok, err := decompose(n); ok || err != nil {
			return f, err
		}
	}
	v, err := n.Eval()
	if err != nil {
		return LinearForm{}, err
	}
	return LinearForm{Offset: v}, nil
}

// decompose reports ok=false when o must be resolved numerically instead.
func decompose(o *parser.Operator) (LinearForm, bool, error) {
	switch o.Op {
	case parser.OpAdd, parser.OpSub, parser.OpMul, parser.OpDiv:
	case parser.OpNeg, parser.OpPos:
		a, err := Values(o.Children[0])
		if err != nil {
			return LinearForm{}, false, err
		}
		if o.Op == parser.OpNeg {
			a = LinearForm{Coefficient: -a.Coefficient, Offset: -a.Offset}
		}
		return a, true, nil
	default:
		return LinearForm{}, false, nil
	}

	a, err := Values(o.Children[0])
	if err != nil {
		return LinearForm{}, false, err
	}
	b, err := Values(o.Children[1])
	if err != nil {
		return LinearForm{}, false, err
	}

	switch o.Op {
	case parser.OpAdd:
		return LinearForm{a.Coefficient + b.Coefficient, a.Offset + b.Offset}, true, nil
	case parser.OpSub:
		return LinearForm{a.Coefficient - b.Coefficient, a.Offset - b.Offset}, true, nil
	case parser.OpMul:
		switch {
		case a.HasVariable() && !b.HasVariable():
			return LinearForm{a.Coefficient * b.Offset, a.Offset * b.Offset}, true, nil
		case b.HasVariable() && !a.HasVariable():
			return LinearForm{b.Coefficient * a.Offset, b.Offset * a.Offset}, true, nil
		}
	case parser.OpDiv:
		if !b.HasVariable() {
			if b.Offset == 0 {
				return LinearForm{}, false, fmt.Errorf("%w: in %s", parser.ErrDivisionByZero, o)
			}
			return LinearForm{a.Coefficient / b.Offset, a.Offset / b.Offset}, true, nil
		}
	}
	return LinearForm{}, false, nil
}
