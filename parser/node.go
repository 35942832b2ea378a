package parser

import (
	"fmt"
	"math"
	"math/cmplx"
	"strconv"
	"strings"
)

type OperatorKind int

const (
	OpGt OperatorKind = iota
	OpGe
	OpEq
	OpLe
	OpLt
	OpAdd
	OpSub
	OpMul
	OpDiv
	OpExp
	OpMod
	OpNeg
	OpPos
	OpSin
	OpCos
	OpTan
	OpSqrt
	OpArg
)

var operatorKindNames = map[OperatorKind]string{
	OpGt:   ">",
	OpGe:   ">=",
	OpEq:   "=",
	OpLe:   "<=",
	OpLt:   "<",
	OpAdd:  "+",
	OpSub:  "-",
	OpMul:  "*",
	OpDiv:  "/",
	OpExp:  "^",
	OpMod:  "mod",
	OpNeg:  "neg",
	OpPos:  "pos",
	OpSin:  "sin",
	OpCos:  "cos",
	OpTan:  "tan",
	OpSqrt: "sqrt",
	OpArg:  "arg",
}

func (k OperatorKind) String() string {
	if name, ok := operatorKindNames[k]; ok {
		return name
	}
	return "Unknown"
}

// Arity returns the number of operands the operator takes.
func (k OperatorKind) Arity() int {
	if k <= OpExp {
		return 2
	}
	return 1
}

// IsRelation reports whether k compares the two sides of an equation.
func (k OperatorKind) IsRelation() bool {
	return k >= OpGt && k <= OpLt
}

// IsFunction reports whether k is a named function.
func (k OperatorKind) IsFunction() bool {
	return k >= OpSin && k <= OpArg
}

// Node is a node of an equation AST: *Number, *Variable or *Operator.
type Node interface {
	// Eval resolves the subtree to a value. It fails if the subtree
	// contains the variable.
	Eval() (complex128, error)
	String() string
	node()
}

type Number struct {
	Value complex128
}

type Variable struct {
	Name string
}

type Operator struct {
	Op       OperatorKind
	Children []Node
}

// NewOperator builds an operator node, enforcing the operator's arity.
func NewOperator(op OperatorKind, children ...Node) (*Operator, error) {
	if len(children) != op.Arity() {
		return nil, fmt.Errorf("%w: %s takes %d, got %d", ErrArityMismatch, op, op.Arity(), len(children))
	}
	return &Operator{Op: op, Children: children}, nil
}

func (*Number) node()   {}
func (*Variable) node() {}
func (*Operator) node() {}

func (n *Number) Eval() (complex128, error)   { return n.Value, nil }
func (v *Variable) Eval() (complex128, error) { return eval(v, nil) }
func (o *Operator) Eval() (complex128, error) { return eval(o, nil) }

// EvalAt resolves n with the variable bound to z. Relations yield 1 when
// they hold and 0 otherwise.
func EvalAt(n Node, z complex128) (complex128, error) {
	return eval(n, &z)
}

func eval(n Node, z *complex128) (complex128, error) {
	switch n := n.(type) {
	case *Number:
		return n.Value, nil
	case *Variable:
		if z == nil {
			return 0, fmt.Errorf("%w: variable %s has no value", ErrUnsupportedForm, n.Name)
		}
		return *z, nil
	case *Operator:
		args := make([]complex128, len(n.Children))
		for i, child := range n.Children {
			v, err := eval(child, z)
			if err != nil {
				return 0, err
			}
			args[i] = v
		}
		return apply(n.Op, args)
	default:
		return 0, fmt.Errorf("%w: unknown node %T", ErrUnsupportedForm, n)
	}
}

func apply(op OperatorKind, args []complex128) (complex128, error) {
	if len(args) != op.Arity() {
		return 0, fmt.Errorf("%w: %s takes %d, got %d", ErrArityMismatch, op, op.Arity(), len(args))
	}
	a := args[0]
	var b complex128
	if len(args) > 1 {
		b = args[1]
	}

	switch op {
	case OpGt:
		return truth(real(a) > real(b)), nil
	case OpGe:
		return truth(real(a) >= real(b)), nil
	case OpEq:
		return truth(a == b), nil
	case OpLe:
		return truth(real(a) <= real(b)), nil
	case OpLt:
		return truth(real(a) < real(b)), nil
	case OpAdd:
		return a + b, nil
	case OpSub:
		return a - b, nil
	case OpMul:
		return a * b, nil
	case OpDiv:
		if b == 0 {
			return 0, ErrDivisionByZero
		}
		return a / b, nil
	case OpExp:
		if a == 0 && (real(b) < 0 || imag(b) != 0) {
			return 0, fmt.Errorf("%w: zero to a negative or complex power", ErrDivisionByZero)
		}
		return cmplx.Pow(a, b), nil
	case OpMod:
		return complex(cmplx.Abs(a), 0), nil
	case OpNeg:
		return -a, nil
	case OpPos:
		return a, nil
	case OpSin:
		return cmplx.Sin(a), nil
	case OpCos:
		return cmplx.Cos(a), nil
	case OpTan:
		return cmplx.Tan(a), nil
	case OpSqrt:
		return cmplx.Sqrt(a), nil
	case OpArg:
		return complex(cmplx.Phase(a), 0), nil
	default:
		return 0, fmt.Errorf("%w: operator %d", ErrUnsupportedForm, int(op))
	}
}

func truth(b bool) complex128 {
	if b {
		return 1
	}
	return 0
}

// HasVariable reports whether the variable occurs anywhere in n.
func HasVariable(n Node) bool {
	switch n := n.(type) {
	case *Variable:
		return true
	case *Operator:
		for _, child := range n.Children {
			if HasVariable(child) {
				return true
			}
		}
	}
	return false
}

// RootOperator returns the operator at the root of n, if n is an operator node.
func RootOperator(n Node) (OperatorKind, bool) {
	if o, ok := n.(*Operator); ok {
		return o.Op, true
	}
	return 0, false
}

func (n *Number) String() string {
	return FormatComplex(n.Value)
}

func (v *Variable) String() string {
	return v.Name
}

func (o *Operator) String() string {
	args := make([]string, len(o.Children))
	for i, child := range o.Children {
		args[i] = child.String()
	}
	switch {
	case o.Op.IsRelation() && len(args) == 2:
		return args[0] + " " + o.Op.String() + " " + args[1]
	case o.Op.Arity() == 2 && len(args) == 2:
		return "(" + args[0] + " " + o.Op.String() + " " + args[1] + ")"
	case o.Op == OpMod:
		return "|" + strings.Join(args, ", ") + "|"
	case o.Op == OpNeg:
		return "-" + strings.Join(args, ", ")
	case o.Op == OpPos:
		return "+" + strings.Join(args, ", ")
	default:
		return o.Op.String() + "(" + strings.Join(args, ", ") + ")"
	}
}

// FormatComplex renders c the way equations spell it, e.g. "1-2j" or "3".
func FormatComplex(c complex128) string {
	re, im := real(c), imag(c)
	switch {
	case im == 0:
		return formatFloat(re)
	case re == 0:
		return formatFloat(im) + "j"
	case im > 0 || math.IsNaN(im):
		return formatFloat(re) + "+" + formatFloat(im) + "j"
	default:
		return formatFloat(re) + formatFloat(im) + "j"
	}
}

func formatFloat(f float64) string {
	if f == 0 {
		f = 0 // normalise -0
	}
	return strconv.FormatFloat(f, 'g', -1, 64)
}
