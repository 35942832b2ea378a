package locus

import (
	"math"
	"math/cmplx"
)

// Kind names a catalogue entry.
type Kind int

const (
	KindPoint Kind = iota
	KindCircle
	KindDisk
	KindNegativeDisk
	KindLine
	KindHalfPlane
	KindRay
	KindDualRay
	KindSector
)

var kindNames = map[Kind]string{
	KindPoint:        "point",
	KindCircle:       "circle",
	KindDisk:         "disk",
	KindNegativeDisk: "negative disk",
	KindLine:         "line",
	KindHalfPlane:    "half-plane",
	KindRay:          "ray",
	KindDualRay:      "dual ray",
	KindSector:       "sector",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "Unknown"
}

// Vec is a point of the Argand plane.
type Vec struct {
	X, Y float64
}

// VecOf returns the point for c.
func VecOf(c complex128) Vec {
	return Vec{X: real(c), Y: imag(c)}
}

func (v Vec) Complex() complex128 { return complex(v.X, v.Y) }
func (v Vec) Add(w Vec) Vec       { return Vec{v.X + w.X, v.Y + w.Y} }
func (v Vec) Sub(w Vec) Vec       { return Vec{v.X - w.X, v.Y - w.Y} }
func (v Vec) Scale(f float64) Vec { return Vec{v.X * f, v.Y * f} }
func (v Vec) Dot(w Vec) float64   { return v.X*w.X + v.Y*w.Y }
func (v Vec) Len() float64        { return math.Hypot(v.X, v.Y) }

// Side selects the half of the plane on one side of a line.
type Side int

const (
	Above Side = 0x01
	Right Side = 0x10
)

// Invert returns the opposite side.
func (s Side) Invert() Side {
	return s ^ (Above | Right)
}

// Shape holds the geometric parameters of a locus.
type Shape interface {
	finite() bool
}

type Point struct {
	Value complex128
}

type Circle struct {
	Center Vec
	Radius float64
}

// Line is y = Gradient*x + Intercept. A vertical line has an infinite
// gradient and its Intercept is on the x axis. Side is only meaningful for
// half-planes.
type Line struct {
	Gradient  float64
	Intercept float64
	Side      Side
}

// Ray projects from Endpoint at Angle radians, in [0, 2π).
type Ray struct {
	Angle    float64
	Endpoint Vec
}

// DualRay is two rays pointing away from each other.
type DualRay struct {
	Rays [2]Ray
}

// Sector is the wedge swept counter-clockwise by Sweep radians from the ray
// at angle Start.
type Sector struct {
	Endpoint Vec
	Start    float64
	Sweep    float64
}

// Vertical reports whether the line is parallel to the imaginary axis.
func (l Line) Vertical() bool {
	return math.IsInf(l.Gradient, 0)
}

// Y returns the y coordinate at x. It is undefined for vertical lines.
func (l Line) Y(x float64) float64 {
	return l.Gradient*x + l.Intercept
}

// NewRay normalises angle into [0, 2π).
func NewRay(angle float64, endpoint Vec) Ray {
	return Ray{Angle: normalizeAngle(angle), Endpoint: endpoint}
}

// NewDualRay returns the rays from p0 and p1 facing away from each other.
func NewDualRay(p0, p1 Vec) DualRay {
	d := p1.Sub(p0)
	angle := math.Atan2(d.Y, d.X)
	return DualRay{Rays: [2]Ray{NewRay(angle, p1), NewRay(angle+math.Pi, p0)}}
}

// Direction returns the unit vector the ray points along.
func (r Ray) Direction() Vec {
	return Vec{math.Cos(r.Angle), math.Sin(r.Angle)}
}

func normalizeAngle(a float64) float64 {
	a = math.Mod(a, 2*math.Pi)
	if a < 0 {
		a += 2 * math.Pi
	}
	return a
}

func finite(xs ...float64) bool {
	for _, x := range xs {
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return false
		}
	}
	return true
}

func (p Point) finite() bool  { return !cmplx.IsNaN(p.Value) && !cmplx.IsInf(p.Value) }
func (c Circle) finite() bool { return finite(c.Center.X, c.Center.Y, c.Radius) }
func (r Ray) finite() bool    { return finite(r.Angle, r.Endpoint.X, r.Endpoint.Y) }
func (d DualRay) finite() bool {
	return d.Rays[0].finite() && d.Rays[1].finite()
}
func (s Sector) finite() bool { return finite(s.Endpoint.X, s.Endpoint.Y, s.Start, s.Sweep) }

func (l Line) finite() bool {
	if l.Vertical() {
		return finite(l.Intercept)
	}
	return finite(l.Gradient, l.Intercept)
}
