package render

import (
	"math"

	"github.com/Homlet/argand/diagram"
	"github.com/Homlet/argand/locus"
)

// Viewport maps the Argand plane onto a width by height pixel canvas.
// The canvas y axis points down; the plane's imaginary axis points up.
type Viewport struct {
	Width, Height float64
	Zoom          float64 // pixels per unit
	Translation   locus.Vec
}

// NewViewport returns the viewport showing d on a canvas of the given size.
func NewViewport(d *diagram.Diagram, width, height int) Viewport {
	return Viewport{
		Width:       float64(width),
		Height:      float64(height),
		Zoom:        d.Zoom,
		Translation: d.Translation,
	}
}

// Project returns the canvas position of p.
func (v Viewport) Project(p locus.Vec) (x, y float64) {
	return v.Width/2 + (p.X-v.Translation.X)*v.Zoom,
		v.Height/2 - (p.Y-v.Translation.Y)*v.Zoom
}

// Unproject returns the point of the plane drawn at canvas position (x, y).
func (v Viewport) Unproject(x, y float64) locus.Vec {
	return locus.Vec{
		X: (x-v.Width/2)/v.Zoom + v.Translation.X,
		Y: v.Translation.Y - (y-v.Height/2)/v.Zoom,
	}
}

// Bounds returns the bottom-left and top-right corners of the visible plane.
func (v Viewport) Bounds() (lo, hi locus.Vec) {
	return v.Unproject(0, v.Height), v.Unproject(v.Width, 0)
}

// Corners returns the visible corners counter-clockwise from bottom-left.
func (v Viewport) Corners() []locus.Vec {
	lo, hi := v.Bounds()
	return []locus.Vec{lo, {X: hi.X, Y: lo.Y}, hi, {X: lo.X, Y: hi.Y}}
}

// TickStep returns the spacing of axis ticks: a power of five chosen so that
// ticks land roughly a hundred pixels apart or less.
func TickStep(zoom float64) float64 {
	return math.Pow(10, floorTo(2-math.Log10(zoom), math.Log10(5)))
}

func floorTo(value, interval float64) float64 {
	return math.Floor(value/interval) * interval
}

// clipSegment clips the line p + t*d, t in [t0, t1], to the visible plane
// and returns the visible end points.
func (v Viewport) clipSegment(p, d locus.Vec, t0, t1 float64) (a, b locus.Vec, ok bool) {
	lo, hi := v.Bounds()
	for _, axis := range []struct{ p, d, lo, hi float64 }{
		{p.X, d.X, lo.X, hi.X},
		{p.Y, d.Y, lo.Y, hi.Y},
	} {
		if axis.d == 0 {
			if axis.p < axis.lo || axis.p > axis.hi {
				return a, b, false
			}
			continue
		}
		ta := (axis.lo - axis.p) / axis.d
		tb := (axis.hi - axis.p) / axis.d
		if ta > tb {
			ta, tb = tb, ta
		}
		t0, t1 = math.Max(t0, ta), math.Min(t1, tb)
		if t0 > t1 {
			return a, b, false
		}
	}
	return p.Add(d.Scale(t0)), p.Add(d.Scale(t1)), true
}

// clipHalfPlane clips a convex polygon to the points where inside is
// non-negative. inside must be affine.
func clipHalfPlane(poly []locus.Vec, inside func(locus.Vec) float64) []locus.Vec {
	var out []locus.Vec
	for i, cur := range poly {
		prev := poly[(i+len(poly)-1)%len(poly)]
		fc, fp := inside(cur), inside(prev)
		if (fc >= 0) != (fp >= 0) {
			t := fp / (fp - fc)
			out = append(out, prev.Add(cur.Sub(prev).Scale(t)))
		}
		if fc >= 0 {
			out = append(out, cur)
		}
	}
	return out
}
