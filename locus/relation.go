package locus

import (
	"fmt"

	"github.com/Homlet/argand/parser"
)

// Relation is the comparison between the two sides of an equation.
type Relation int

const (
	Greater Relation = iota
	GreaterEqual
	Equal
	LessEqual
	Less
)

var relationNames = map[Relation]string{
	Greater:      ">",
	GreaterEqual: ">=",
	Equal:        "=",
	LessEqual:    "<=",
	Less:         "<",
}

func (r Relation) String() string {
	if name, ok := relationNames[r]; ok {
		return name
	}
	return "Unknown"
}

// Invert returns the relation that holds with the operands swapped.
func (r Relation) Invert() Relation {
	switch r {
	case Greater:
		return Less
	case GreaterEqual:
		return LessEqual
	case LessEqual:
		return GreaterEqual
	case Less:
		return Greater
	}
	return r
}

// Strict reports whether the boundary is excluded from the locus.
func (r Relation) Strict() bool {
	return r == Greater || r == Less
}

// RelationOf maps a relation operator to its Relation.
func RelationOf(op parser.OperatorKind) (Relation, error) {
	switch op {
	case parser.OpGt:
		return Greater, nil
	case parser.OpGe:
		return GreaterEqual, nil
	case parser.OpEq:
		return Equal, nil
	case parser.OpLe:
		return LessEqual, nil
	case parser.OpLt:
		return Less, nil
	}
	return 0, fmt.Errorf("%w: %s is not a relation", parser.ErrUnsupportedForm, op)
}
