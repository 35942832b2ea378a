package format

import (
	"encoding/json"
	"io"

	"github.com/Homlet/argand/locus"
	"github.com/Homlet/argand/plot"
)

type JSONEncoder struct {
	w   io.Writer
	res *plot.Result
}

func NewJSONEncoder(w io.Writer) *JSONEncoder {
	return &JSONEncoder{w: w}
}

func (e *JSONEncoder) Encode(res *plot.Result) error {
	e.res = res
	text, err := e.MarshalText()
	if err != nil {
		return err
	}
	_, err = e.w.Write(append(text, '\n'))
	return err
}

func (e *JSONEncoder) MarshalText() ([]byte, error) {
	return json.MarshalIndent(ResultJSON(e.res), "", "  ")
}

type jsonResult struct {
	Equation    string    `json:"equation"`
	AST         string    `json:"ast"`
	Locus       jsonLocus `json:"locus"`
	Description string    `json:"description"`
}

type jsonLocus struct {
	Kind     string `json:"kind"`
	Relation string `json:"relation"`
	Shape    any    `json:"shape"`
}

type jsonVec struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

type jsonPoint struct {
	Value jsonVec `json:"value"`
}

type jsonCircle struct {
	Center jsonVec `json:"center"`
	Radius float64 `json:"radius"`
}

type jsonLine struct {
	Vertical  bool      `json:"vertical"`
	Gradient  *float64  `json:"gradient,omitempty"`
	Intercept float64   `json:"intercept"`
	Side      *jsonSide `json:"side,omitempty"`
}

type jsonSide struct {
	Above bool `json:"above"`
	Right bool `json:"right"`
}

type jsonRay struct {
	Angle    float64 `json:"angle"`
	Endpoint jsonVec `json:"endpoint"`
}

type jsonDualRay struct {
	Rays [2]jsonRay `json:"rays"`
}

type jsonSector struct {
	Endpoint jsonVec `json:"endpoint"`
	Start    float64 `json:"start"`
	Sweep    float64 `json:"sweep"`
}

// ResultJSON returns the JSON document written for res.
func ResultJSON(res *plot.Result) any {
	return jsonResult{
		Equation:    res.Equation,
		AST:         res.Root.String(),
		Locus:       locusToJSON(res.Locus),
		Description: Describe(res.Locus),
	}
}

func vecToJSON(v locus.Vec) jsonVec {
	return jsonVec{X: v.X, Y: v.Y}
}

func rayToJSON(r locus.Ray) jsonRay {
	return jsonRay{Angle: r.Angle, Endpoint: vecToJSON(r.Endpoint)}
}

func locusToJSON(l locus.Locus) jsonLocus {
	jl := jsonLocus{Kind: l.Kind.String(), Relation: l.Relation.String()}
	switch s := l.Shape.(type) {
	case locus.Point:
		jl.Shape = jsonPoint{Value: vecToJSON(locus.VecOf(s.Value))}
	case locus.Circle:
		jl.Shape = jsonCircle{Center: vecToJSON(s.Center), Radius: s.Radius}
	case locus.Line:
		jline := jsonLine{Vertical: s.Vertical(), Intercept: s.Intercept}
		if !s.Vertical() {
			m := s.Gradient
			jline.Gradient = &m
		}
		if l.Kind == locus.KindHalfPlane {
			jline.Side = &jsonSide{Above: s.Side&locus.Above != 0, Right: s.Side&locus.Right != 0}
		}
		jl.Shape = jline
	case locus.Ray:
		jl.Shape = rayToJSON(s)
	case locus.DualRay:
		jl.Shape = jsonDualRay{Rays: [2]jsonRay{rayToJSON(s.Rays[0]), rayToJSON(s.Rays[1])}}
	case locus.Sector:
		jl.Shape = jsonSector{Endpoint: vecToJSON(s.Endpoint), Start: s.Start, Sweep: s.Sweep}
	}
	return jl
}
