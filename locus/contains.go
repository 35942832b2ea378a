package locus

import (
	"math"
	"math/cmplx"
)

// Tolerance is the distance within which a point counts as lying on a
// boundary.
const Tolerance = 1e-9

// Contains reports whether v satisfies the equation the locus was
// classified from.
func (l Locus) Contains(v Vec) bool {
	switch s := l.Shape.(type) {
	case Point:
		return cmplx.Abs(v.Complex()-s.Value) <= Tolerance
	case Circle:
		d := v.Sub(s.Center).Len()
		switch l.Kind {
		case KindDisk:
			return l.inside(s.Radius - d)
		case KindNegativeDisk:
			return l.inside(d - s.Radius)
		}
		return math.Abs(d-s.Radius) <= Tolerance
	case Line:
		if l.Kind == KindHalfPlane {
			return l.inside(s.margin(v))
		}
		return s.distance(v) <= Tolerance
	case Ray:
		return s.contains(v)
	case DualRay:
		return s.Rays[0].contains(v) || s.Rays[1].contains(v)
	case Sector:
		return l.inside(s.margin(v))
	}
	return false
}

// inside reports whether a signed distance into the region is accepted.
func (l Locus) inside(margin float64) bool {
	if l.Relation.Strict() {
		return margin > Tolerance
	}
	return margin >= -Tolerance
}

func (l Line) distance(v Vec) float64 {
	if l.Vertical() {
		return math.Abs(v.X - l.Intercept)
	}
	return math.Abs(v.Y-l.Y(v.X)) / math.Hypot(1, l.Gradient)
}

// margin is the signed distance of v into the half-plane selected by Side.
func (l Line) margin(v Vec) float64 {
	if l.Vertical() {
		d := v.X - l.Intercept
		if l.Side&Right == 0 {
			d = -d
		}
		return d
	}
	d := (v.Y - l.Y(v.X)) / math.Hypot(1, l.Gradient)
	if l.Side&Above == 0 {
		d = -d
	}
	return d
}

func (r Ray) contains(v Vec) bool {
	w := v.Sub(r.Endpoint)
	dir := r.Direction()
	along := w.Dot(dir)
	across := math.Abs(w.X*dir.Y - w.Y*dir.X)
	return along >= -Tolerance && across <= Tolerance
}

// margin is the angle of v inside the wedge, measured from its nearer edge.
// Points outside the wedge have a negative margin.
func (s Sector) margin(v Vec) float64 {
	w := v.Sub(s.Endpoint)
	if w.Len() <= Tolerance {
		return 0
	}
	d := normalizeAngle(math.Atan2(w.Y, w.X) - s.Start)
	if d <= s.Sweep {
		return math.Min(d, s.Sweep-d)
	}
	return -math.Min(d-s.Sweep, 2*math.Pi-d)
}
