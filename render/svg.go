package render

import (
	"fmt"
	"html"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/Homlet/argand/diagram"
	"github.com/Homlet/argand/locus"
	"github.com/Homlet/argand/parser"
	"github.com/Homlet/argand/plot"
)

const (
	clingThreshold = 10
	labelPad       = 20
	tickSize       = 2
	crossSize      = 3
	arcSegments    = 128
	axisColor      = "#000000"
	dashPattern    = "6 4"
	maxTicks       = 1024
)

// SVG draws the diagram's axes and valid plots as a standalone SVG
// document of the given pixel size.
func SVG(w io.Writer, d *diagram.Diagram, width, height int) error {
	if width <= 0 || height <= 0 {
		return fmt.Errorf("render svg: invalid size %dx%d", width, height)
	}
	c := &canvas{view: NewViewport(d, width, height), prefs: d.Preferences}

	c.printf(`<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">`+"\n",
		width, height, width, height)
	c.printf(`<rect width="%d" height="%d" fill="#ffffff"/>`+"\n", width, height)
	for _, p := range d.Plots {
		if p.Valid() {
			c.plot(p)
		}
	}
	c.axes()
	c.printf("</svg>\n")

	_, err := io.WriteString(w, c.sb.String())
	return err
}

type canvas struct {
	sb    strings.Builder
	view  Viewport
	prefs diagram.Preferences
}

func (c *canvas) printf(format string, args ...any) {
	fmt.Fprintf(&c.sb, format, args...)
}

func px(f float64) string {
	return strconv.FormatFloat(f, 'f', 2, 64)
}

func (c *canvas) axes() {
	w, h := c.view.Width, c.view.Height
	ox, oy := c.view.Project(locus.Vec{})
	// Axes out of view cling to the nearest edge.
	cx := min(max(ox, clingThreshold), w-clingThreshold)
	cy := min(max(oy, clingThreshold), h-clingThreshold)

	c.printf(`<g class="axes" stroke="%s" stroke-width="1">`+"\n", axisColor)
	c.printf(`<line x1="%s" y1="0" x2="%s" y2="%s"/>`+"\n", px(cx), px(cx), px(h))
	c.printf(`<line x1="0" y1="%s" x2="%s" y2="%s"/>`+"\n", px(cy), px(w), px(cy))

	if c.prefs.LabelAxes {
		step := TickStep(c.view.Zoom)
		lo, hi := c.view.Bounds()
		for _, value := range ticks(lo.X, hi.X, step) {
			if math.Abs(value) < 1e-10 {
				continue
			}
			x, _ := c.view.Project(locus.Vec{X: value})
			c.printf(`<line x1="%s" y1="%s" x2="%s" y2="%s"/>`+"\n", px(x), px(cy-tickSize), px(x), px(cy+tickSize))
			c.text(x, cy+labelPad/2, "middle", tickLabel(value))
		}
		for _, value := range ticks(lo.Y, hi.Y, step) {
			if math.Abs(value) < 1e-10 {
				continue
			}
			_, y := c.view.Project(locus.Vec{Y: value})
			c.printf(`<line x1="%s" y1="%s" x2="%s" y2="%s"/>`+"\n", px(cx-tickSize), px(y), px(cx+tickSize), px(y))
			c.text(cx+tickSize*2, y, "start", tickLabel(value)+"j")
		}
		c.text(w-labelPad, cy-2*clingThreshold, "middle", "Re")
		c.text(cx+2*clingThreshold, labelPad, "middle", "Im")
		// The origin is only labelled while the axes are not clinging.
		if cx == ox && cy == oy {
			c.text(ox+tickSize*2, oy+labelPad/2, "start", "0")
		}
	}
	c.printf("</g>\n")
}

// ticks returns the multiples of step within [lo, hi]. Far from the origin
// neighbouring multiples may round to the same value; at most maxTicks are
// returned.
func ticks(lo, hi, step float64) []float64 {
	first := math.Ceil(lo / step)
	span := math.Floor(hi/step) - first
	if math.IsNaN(span) || math.IsInf(span, 0) || span < 0 || span >= maxTicks {
		return nil
	}
	out := make([]float64, 0, int(span)+1)
	for i := 0; i <= int(span); i++ {
		out = append(out, (first+float64(i))*step)
	}
	return out
}

func tickLabel(v float64) string {
	return strconv.FormatFloat(v, 'g', 6, 64)
}

func (c *canvas) text(x, y float64, anchor, s string) {
	c.printf(`<text x="%s" y="%s" text-anchor="%s" font-size="10" fill="%s" stroke="none">%s</text>`+"\n",
		px(x), px(y), anchor, axisColor, html.EscapeString(s))
}

// style returns the stroke and fill attributes of a plot.
func (c *canvas) style(p *plot.Plot, filled bool) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, `stroke="%s" stroke-width="%d"`, p.Color, c.prefs.Stroke)
	if p.Result.Locus.Relation.Strict() {
		fmt.Fprintf(&sb, ` stroke-dasharray="%s"`, dashPattern)
	}
	if filled {
		fmt.Fprintf(&sb, ` fill="%s" fill-opacity="%s"`, p.Color, strconv.FormatFloat(p.Alpha, 'g', -1, 64))
	} else {
		sb.WriteString(` fill="none"`)
	}
	return sb.String()
}

func (c *canvas) plot(p *plot.Plot) {
	loc := p.Result.Locus
	c.printf(`<g class="plot %s">`+"\n", strings.ReplaceAll(loc.Kind.String(), " ", "-"))
	c.printf("<title>%s</title>\n", html.EscapeString(p.Equation))

	switch s := loc.Shape.(type) {
	case locus.Point:
		c.point(p, s)
	case locus.Circle:
		c.circle(p, loc.Kind, s)
	case locus.Line:
		c.line(p, loc.Kind, s)
	case locus.Ray:
		c.ray(p, s)
	case locus.DualRay:
		c.ray(p, s.Rays[0])
		c.ray(p, s.Rays[1])
	case locus.Sector:
		c.sector(p, s)
	}
	c.printf("</g>\n")
}

func (c *canvas) point(p *plot.Plot, s locus.Point) {
	x, y := c.view.Project(locus.VecOf(s.Value))
	c.printf(`<path d="M%s,%s L%s,%s M%s,%s L%s,%s" stroke="%s" stroke-width="1"/>`+"\n",
		px(x-crossSize), px(y-crossSize), px(x+crossSize), px(y+crossSize),
		px(x-crossSize), px(y+crossSize), px(x+crossSize), px(y-crossSize), p.Color)
	if c.prefs.LabelPoints {
		c.printf(`<text x="%s" y="%s" font-size="10" fill="%s">%s</text>`+"\n",
			px(x+crossSize), px(y-crossSize), p.Color, html.EscapeString(parser.FormatComplex(s.Value)))
	}
}

func (c *canvas) circle(p *plot.Plot, kind locus.Kind, s locus.Circle) {
	x, y := c.view.Project(s.Center)
	r := s.Radius * c.view.Zoom
	if kind == locus.KindNegativeDisk {
		// Even-odd fill of the canvas with the disk cut out.
		c.printf(`<path fill-rule="evenodd" fill="%s" fill-opacity="%s" stroke="none" d="M0,0 H%s V%s H0 Z M%s,%s A%s,%s 0 1,0 %s,%s A%s,%s 0 1,0 %s,%s Z"/>`+"\n",
			p.Color, strconv.FormatFloat(p.Alpha, 'g', -1, 64), px(c.view.Width), px(c.view.Height),
			px(x-r), px(y), px(r), px(r), px(x+r), px(y), px(r), px(r), px(x-r), px(y))
	}
	c.printf(`<circle cx="%s" cy="%s" r="%s" %s/>`+"\n", px(x), px(y), px(r), c.style(p, kind == locus.KindDisk))
}

// linePoint returns a point on l and its direction.
func linePoint(l locus.Line) (p, d locus.Vec) {
	if l.Vertical() {
		return locus.Vec{X: l.Intercept}, locus.Vec{Y: 1}
	}
	return locus.Vec{Y: l.Intercept}, locus.Vec{X: 1, Y: l.Gradient}
}

func (c *canvas) line(p *plot.Plot, kind locus.Kind, l locus.Line) {
	if kind == locus.KindHalfPlane {
		region := clipHalfPlane(c.view.Corners(), func(v locus.Vec) float64 {
			if l.Vertical() {
				if l.Side&locus.Right != 0 {
					return v.X - l.Intercept
				}
				return l.Intercept - v.X
			}
			if l.Side&locus.Above != 0 {
				return v.Y - l.Y(v.X)
			}
			return l.Y(v.X) - v.Y
		})
		c.polygon(p, region)
	}
	origin, dir := linePoint(l)
	c.segment(p, origin, dir, math.Inf(-1), math.Inf(1))
}

func (c *canvas) ray(p *plot.Plot, r locus.Ray) {
	c.segment(p, r.Endpoint, r.Direction(), 0, math.Inf(1))
}

func (c *canvas) segment(p *plot.Plot, origin, dir locus.Vec, t0, t1 float64) {
	a, b, ok := c.view.clipSegment(origin, dir, t0, t1)
	if !ok {
		return
	}
	x1, y1 := c.view.Project(a)
	x2, y2 := c.view.Project(b)
	c.printf(`<line x1="%s" y1="%s" x2="%s" y2="%s" %s/>`+"\n", px(x1), px(y1), px(x2), px(y2), c.style(p, false))
}

func (c *canvas) polygon(p *plot.Plot, poly []locus.Vec) {
	if len(poly) < 3 {
		return
	}
	points := make([]string, len(poly))
	for i, v := range poly {
		x, y := c.view.Project(v)
		points[i] = px(x) + "," + px(y)
	}
	c.printf(`<polygon points="%s" fill="%s" fill-opacity="%s" stroke="none"/>`+"\n",
		strings.Join(points, " "), p.Color, strconv.FormatFloat(p.Alpha, 'g', -1, 64))
}

func (c *canvas) sector(p *plot.Plot, s locus.Sector) {
	// An arc beyond the farthest corner covers every visible point of the wedge.
	var reach float64
	for _, corner := range c.view.Corners() {
		reach = math.Max(reach, corner.Sub(s.Endpoint).Len())
	}
	reach++

	poly := []locus.Vec{s.Endpoint}
	for i := 0; i <= arcSegments; i++ {
		theta := s.Start + s.Sweep*float64(i)/arcSegments
		poly = append(poly, s.Endpoint.Add(locus.Vec{X: math.Cos(theta), Y: math.Sin(theta)}.Scale(reach)))
	}
	c.polygon(p, poly)

	c.ray(p, locus.NewRay(s.Start, s.Endpoint))
	if s.Sweep < 2*math.Pi {
		c.ray(p, locus.NewRay(s.Start+s.Sweep, s.Endpoint))
	}
}
