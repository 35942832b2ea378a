package format

import (
	"fmt"
	"io"
	"strings"

	"github.com/Homlet/argand/locus"
	"github.com/Homlet/argand/plot"
)

// LineEncoder writes one tab-separated line per compiled equation:
// kind, relation, shape parameters and the equation itself.
type LineEncoder struct {
	w   io.Writer
	res *plot.Result
}

func NewLineEncoder(w io.Writer) *LineEncoder {
	return &LineEncoder{w: w}
}

func (e *LineEncoder) Encode(res *plot.Result) error {
	e.res = res
	text, err := e.MarshalText()
	if err != nil {
		return err
	}
	_, err = e.w.Write(text)
	return err
}

func (e *LineEncoder) MarshalText() ([]byte, error) {
	var sb strings.Builder
	l := e.res.Locus
	fmt.Fprintf(&sb, "%s\t%s\t%s\t%s\n", l.Kind, l.Relation, shapeFields(l), e.res.Equation)
	return []byte(sb.String()), nil
}

func shapeFields(l locus.Locus) string {
	switch s := l.Shape.(type) {
	case locus.Point:
		return "value=" + num(s.Value)
	case locus.Circle:
		return fmt.Sprintf("center=%s radius=%s", vec(s.Center), real64(s.Radius))
	case locus.Line:
		var fields string
		if s.Vertical() {
			fields = "gradient=inf x-intercept=" + real64(s.Intercept)
		} else {
			fields = fmt.Sprintf("gradient=%s y-intercept=%s", real64(s.Gradient), real64(s.Intercept))
		}
		if l.Kind == locus.KindHalfPlane {
			fields += fmt.Sprintf(" side=%#02x", int(s.Side))
		}
		return fields
	case locus.Ray:
		return fmt.Sprintf("endpoint=%s angle=%s", vec(s.Endpoint), real64(s.Angle))
	case locus.DualRay:
		return fmt.Sprintf("endpoints=%s,%s angles=%s,%s",
			vec(s.Rays[0].Endpoint), vec(s.Rays[1].Endpoint), real64(s.Rays[0].Angle), real64(s.Rays[1].Angle))
	case locus.Sector:
		return fmt.Sprintf("endpoint=%s start=%s sweep=%s", vec(s.Endpoint), real64(s.Start), real64(s.Sweep))
	}
	return ""
}
