package format

import (
	"fmt"
	"math"
	"strconv"

	"github.com/Homlet/argand/locus"
	"github.com/Homlet/argand/parser"
)

// Describe returns a one-line English description of a locus.
func Describe(l locus.Locus) string {
	switch s := l.Shape.(type) {
	case locus.Point:
		return "point " + num(s.Value)
	case locus.Circle:
		body := fmt.Sprintf("centre %s, radius %s", vec(s.Center), real64(s.Radius))
		switch l.Kind {
		case locus.KindDisk:
			return openness(l.Relation) + " disk, " + body
		case locus.KindNegativeDisk:
			return "outside of " + openness(l.Relation) + " disk, " + body
		}
		return "circle, " + body
	case locus.Line:
		if l.Kind == locus.KindHalfPlane {
			return "half-plane " + halfPlane(s, l.Relation.Strict())
		}
		if s.Vertical() {
			return "line x = " + real64(s.Intercept)
		}
		return "line y = " + lineRHS(s)
	case locus.Ray:
		return fmt.Sprintf("ray from %s at angle %s", vec(s.Endpoint), angle(s.Angle))
	case locus.DualRay:
		return fmt.Sprintf("rays from %s at angle %s and from %s at angle %s",
			vec(s.Rays[0].Endpoint), angle(s.Rays[0].Angle),
			vec(s.Rays[1].Endpoint), angle(s.Rays[1].Angle))
	case locus.Sector:
		return fmt.Sprintf("%s sector at %s from angle %s sweeping %s",
			openness(l.Relation), vec(s.Endpoint), angle(s.Start), angle(s.Sweep))
	}
	return l.Kind.String()
}

func openness(r locus.Relation) string {
	if r.Strict() {
		return "open"
	}
	return "closed"
}

func halfPlane(s locus.Line, strict bool) string {
	greater, less := ">=", "<="
	if strict {
		greater, less = ">", "<"
	}
	if s.Vertical() {
		if s.Side&locus.Right != 0 {
			return "x " + greater + " " + real64(s.Intercept)
		}
		return "x " + less + " " + real64(s.Intercept)
	}
	if s.Side&locus.Above != 0 {
		return "y " + greater + " " + lineRHS(s)
	}
	return "y " + less + " " + lineRHS(s)
}

// lineRHS spells gradient*x + intercept.
func lineRHS(s locus.Line) string {
	if s.Gradient == 0 {
		return real64(s.Intercept)
	}
	var slope string
	switch s.Gradient {
	case 1:
		slope = "x"
	case -1:
		slope = "-x"
	default:
		slope = real64(s.Gradient) + "x"
	}
	switch {
	case s.Intercept > 0:
		return slope + " + " + real64(s.Intercept)
	case s.Intercept < 0:
		return slope + " - " + real64(-s.Intercept)
	}
	return slope
}

func angle(a float64) string {
	return real64(a) + " rad"
}

func num(c complex128) string {
	return parser.FormatComplex(c)
}

func vec(v locus.Vec) string {
	return num(v.Complex())
}

func real64(f float64) string {
	if f == 0 {
		f = 0
	}
	if math.IsInf(f, 1) {
		return "inf"
	}
	return strconv.FormatFloat(f, 'g', 6, 64)
}
