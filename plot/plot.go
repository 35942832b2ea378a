package plot

import (
	"fmt"
	"strconv"
	"strings"
)

const (
	DefaultAlpha = 0.25
)

// DefaultColor is the fill and stroke color of a new plot.
var DefaultColor = Color{0x00, 0x00, 0xff}

// Color is an opaque RGB color.
type Color struct {
	R, G, B uint8
}

// ParseColor parses a "#rrggbb" color.
func ParseColor(s string) (Color, error) {
	hex, ok := strings.CutPrefix(s, "#")
	if !ok || len(hex) != 6 {
		return Color{}, fmt.Errorf("parse color %q: want #rrggbb", s)
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return Color{}, fmt.Errorf("parse color %q: %w", s, err)
	}
	return Color{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v)}, nil
}

func (c Color) String() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// Plot is one equation of a diagram together with how to draw it.
type Plot struct {
	Equation string
	Color    Color
	Alpha    float64
	Line     int      // source line, 0 if the plot was not read from a file
	Attrs    []string // attributes that could not be applied, kept as written

	Result *Result // nil while the equation is invalid
	Err    error
}

// New compiles equation into a plot with the default color and alpha.
func New(equation string) *Plot {
	p := &Plot{Color: DefaultColor, Alpha: DefaultAlpha}
	p.SetEquation(equation)
	return p
}

// SetEquation replaces the equation and recompiles it, reporting whether it
// is valid. An invalid equation is kept so it can be corrected.
func (p *Plot) SetEquation(equation string) bool {
	p.Equation = equation
	p.Result, p.Err = Compile(equation)
	return p.Err == nil
}

// Valid reports whether the equation compiled.
func (p *Plot) Valid() bool {
	return p.Result != nil
}

// SetAlpha sets the fill opacity, clamped to [0, 1].
func (p *Plot) SetAlpha(alpha float64) {
	p.Alpha = min(max(alpha, 0), 1)
}
