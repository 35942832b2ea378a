package locus

import (
	"fmt"
	"math"
	"math/cmplx"

	"github.com/Homlet/argand/parser"
)

// Locus is the classified shape of an equation.
type Locus struct {
	Kind     Kind
	Relation Relation
	Shape    Shape
}

// Classify matches the AST of an equation against the shape catalogue. Both
// operand orders are tried; the relation is inverted for the swapped order.
func Classify(root parser.Node) (Locus, error) {
	op, ok := parser.RootOperator(root)
	if !ok || !op.IsRelation() {
		return Locus{}, fmt.Errorf("%w: root is not a relation", parser.ErrUnsupportedForm)
	}
	rel, err := RelationOf(op)
	if err != nil {
		return Locus{}, err
	}
	if !parser.HasVariable(root) {
		return Locus{}, ErrNoVariable
	}

	children := root.(*parser.Operator).Children
	left, right := children[0], children[1]

	loc, err := inspect(left, right, rel)
	if err == nil {
		return loc, nil
	}
	swapped, swappedErr := inspect(right, left, rel.Invert())
	if swappedErr == nil {
		return swapped, nil
	}
	if !isShapeOperator(left) && isShapeOperator(right) {
		return Locus{}, swappedErr
	}
	return Locus{}, err
}

func isShapeOperator(n parser.Node) bool {
	op, ok := parser.RootOperator(n)
	return ok && (op == parser.OpMod || op == parser.OpArg)
}

// operand returns the single child of a unary operator node.
func operand(n parser.Node) parser.Node {
	return n.(*parser.Operator).Children[0]
}

func inspect(l, r parser.Node, rel Relation) (Locus, error) {
	lop, _ := parser.RootOperator(l)
	rop, _ := parser.RootOperator(r)
	lshape, rshape := isShapeOperator(l), isShapeOperator(r)

	var loc Locus
	var err error
	switch {
	case lshape && lop == parser.OpMod && rshape && rop == parser.OpMod:
		loc, err = bisector(operand(l), operand(r), rel)
	case lshape && lop == parser.OpMod:
		loc, err = circle(operand(l), r, rel)
	case lshape && lop == parser.OpArg && rshape && rop == parser.OpArg:
		loc, err = dualRay(operand(l), operand(r), rel)
	case lshape && lop == parser.OpArg:
		loc, err = ray(operand(l), r, rel)
	default:
		loc, err = point(l, r, rel)
	}
	if err != nil {
		return Locus{}, err
	}
	if !loc.Shape.finite() {
		return Locus{}, fmt.Errorf("%w: %s has non-finite parameters", parser.ErrUnsupportedForm, loc.Kind)
	}
	return loc, nil
}

// unitForm returns -offset of n as a point, requiring n to be z + offset.
func unitForm(n parser.Node) (Vec, error) {
	f, err := Values(n)
	if err != nil {
		return Vec{}, err
	}
	if f.Coefficient != 1 {
		return Vec{}, fmt.Errorf("%w: coefficient of %s must be 1, got %s",
			parser.ErrUnsupportedForm, n, parser.FormatComplex(f.Coefficient))
	}
	return VecOf(-f.Offset), nil
}

// realConstant resolves n to a real number.
func realConstant(n parser.Node) (float64, error) {
	f, err := Values(n)
	if err != nil {
		return 0, err
	}
	if f.HasVariable() || imag(f.Offset) != 0 {
		return 0, fmt.Errorf("%w: %s is not a real constant", parser.ErrUnsupportedForm, n)
	}
	return real(f.Offset), nil
}

// bisector handles |z - p0| rel |z - p1|.
func bisector(l, r parser.Node, rel Relation) (Locus, error) {
	p0, err := unitForm(l)
	if err != nil {
		return Locus{}, err
	}
	p1, err := unitForm(r)
	if err != nil {
		return Locus{}, err
	}
	if p0 == p1 {
		return Locus{}, fmt.Errorf("%w: no bisector of coincident points", parser.ErrUnsupportedForm)
	}

	center := p0.Add(p1).Scale(0.5)
	var line Line
	if dy := p1.Y - p0.Y; dy == 0 {
		line = Line{Gradient: math.Inf(1), Intercept: center.X}
	} else {
		m := -(p1.X - p0.X) / dy
		line = Line{Gradient: m, Intercept: center.Y - m*center.X}
	}

	if rel == Equal {
		return Locus{Kind: KindLine, Relation: rel, Shape: line}, nil
	}
	// The region nearer p0 lies on p0's side of the bisector.
	var side Side
	if p0.X > p1.X {
		side |= Right
	}
	if p0.Y > p1.Y {
		side |= Above
	}
	if rel == Greater || rel == GreaterEqual {
		side = side.Invert()
	}
	line.Side = side
	return Locus{Kind: KindHalfPlane, Relation: rel, Shape: line}, nil
}

// circle handles |a*z + b| rel k.
func circle(l, r parser.Node, rel Relation) (Locus, error) {
	f, err := Values(l)
	if err != nil {
		return Locus{}, err
	}
	if !f.HasVariable() {
		return Locus{}, fmt.Errorf("%w: %s has no variable", parser.ErrUnsupportedForm, l)
	}
	k, err := realConstant(r)
	if err != nil {
		return Locus{}, err
	}
	radius := k / cmplx.Abs(f.Coefficient)
	if radius < 0 {
		return Locus{}, fmt.Errorf("%w: negative radius %g", parser.ErrUnsupportedForm, radius)
	}

	c := Circle{Center: VecOf(-f.Offset / f.Coefficient), Radius: radius}
	kind := KindCircle
	switch rel {
	case LessEqual, Less:
		kind = KindDisk
	case GreaterEqual, Greater:
		kind = KindNegativeDisk
	}
	return Locus{Kind: kind, Relation: rel, Shape: c}, nil
}

// dualRay handles arg(z - p0) = arg(z - p1).
func dualRay(l, r parser.Node, rel Relation) (Locus, error) {
	if rel != Equal {
		return Locus{}, fmt.Errorf("%w: %s between arguments", parser.ErrUnsupportedForm, rel)
	}
	p0, err := unitForm(l)
	if err != nil {
		return Locus{}, err
	}
	p1, err := unitForm(r)
	if err != nil {
		return Locus{}, err
	}
	if p0 == p1 {
		return Locus{}, fmt.Errorf("%w: no dual ray between coincident points", parser.ErrUnsupportedForm)
	}
	return Locus{Kind: KindDualRay, Relation: rel, Shape: NewDualRay(p0, p1)}, nil
}

// ray handles arg(z - p) rel k.
func ray(l, r parser.Node, rel Relation) (Locus, error) {
	p, err := unitForm(l)
	if err != nil {
		return Locus{}, err
	}
	if rel == Equal {
		// Only the real part of the angle is meaningful.
		f, err := Values(r)
		if err != nil {
			return Locus{}, err
		}
		if f.HasVariable() {
			return Locus{}, fmt.Errorf("%w: %s is not a constant", parser.ErrUnsupportedForm, r)
		}
		return Locus{Kind: KindRay, Relation: rel, Shape: NewRay(real(f.Offset), p)}, nil
	}
	k, err := realConstant(r)
	if err != nil {
		return Locus{}, err
	}

	// Arguments lie in (-π, π]; outside that range the region is empty or whole.
	if k <= -math.Pi || k > math.Pi {
		return Locus{}, fmt.Errorf("%w: argument bound %g outside (-π, π]", parser.ErrUnsupportedForm, k)
	}
	s := Sector{Endpoint: p}
	switch rel {
	case Less, LessEqual:
		s.Start, s.Sweep = math.Pi, k+math.Pi
	default:
		if k == math.Pi {
			if rel == GreaterEqual {
				// Only the negative real axis reaches π.
				return Locus{Kind: KindRay, Relation: rel, Shape: NewRay(math.Pi, p)}, nil
			}
			return Locus{}, fmt.Errorf("%w: no argument exceeds π", parser.ErrUnsupportedForm)
		}
		s.Start, s.Sweep = normalizeAngle(k), math.Pi-k
	}
	return Locus{Kind: KindSector, Relation: rel, Shape: s}, nil
}

// point handles a*z + b = c*z + d.
func point(l, r parser.Node, rel Relation) (Locus, error) {
	if rel != Equal {
		return Locus{}, fmt.Errorf("%w: %s between linear expressions", parser.ErrUnsupportedForm, rel)
	}
	a, err := Values(l)
	if err != nil {
		return Locus{}, err
	}
	b, err := Values(r)
	if err != nil {
		return Locus{}, err
	}
	coefficient := a.Coefficient - b.Coefficient
	if coefficient == 0 {
		return Locus{}, fmt.Errorf("%w: variable cancels out", parser.ErrDivisionByZero)
	}
	value := (b.Offset - a.Offset) / coefficient
	return Locus{Kind: KindPoint, Relation: rel, Shape: Point{Value: value}}, nil
}
