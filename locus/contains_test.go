package locus

import (
	"math"
	"testing"

	"github.com/Homlet/argand/parser"
)

// grid avoids every region boundary used below by a wide margin.
func grid() []Vec {
	var out []Vec
	for i := 0; i < 12; i++ {
		for j := 0; j < 12; j++ {
			out = append(out, Vec{-2.95 + 0.5*float64(i), -2.95 + 0.5*float64(j)})
		}
	}
	return out
}

func TestContainsAgreesWithEvaluation(t *testing.T) {
	inputs := []string{
		"|z-1-j| < 2",
		"|z-1| >= |z+2j|",
		"|z| > 1.5",
		"|2*z-1| <= 3",
		"arg(z-1) < 1",
		"arg(z+j) >= -0.5",
		"|z+1| < |z-j|",
		"arg(z) <= 3.14159",
	}
	for _, input := range inputs {
		t.Run(input, func(t *testing.T) {
			root, err := parser.Parse(input)
			if err != nil {
				t.Fatalf("Parse: %v", err)
			}
			loc, err := Classify(root)
			if err != nil {
				t.Fatalf("Classify: %v", err)
			}
			for _, v := range grid() {
				holds, err := parser.EvalAt(root, v.Complex())
				if err != nil {
					t.Fatalf("EvalAt(%v): %v", v, err)
				}
				if got, want := loc.Contains(v), holds == 1; got != want {
					t.Errorf("Contains(%v) = %v, want %v", v, got, want)
				}
			}
		})
	}
}

func TestContainsBoundary(t *testing.T) {
	circle := mustClassify(t, "|z-1-2j| = 3")
	for _, theta := range []float64{0, 1, 2.5, 4} {
		v := Vec{1 + 3*math.Cos(theta), 2 + 3*math.Sin(theta)}
		if !circle.Contains(v) {
			t.Errorf("circle should contain %v", v)
		}
	}
	if circle.Contains(Vec{1, 2}) {
		t.Error("circle should not contain its center")
	}

	line := mustClassify(t, "|z-j| = |z-1|")
	if !line.Contains(Vec{5, 5}) || line.Contains(Vec{5, 4}) {
		t.Error("line y = x membership wrong")
	}

	strict := mustClassify(t, "|z| < 1")
	if strict.Contains(Vec{1, 0}) {
		t.Error("strict disk should exclude its boundary")
	}
	closed := mustClassify(t, "|z| <= 1")
	if !closed.Contains(Vec{1, 0}) {
		t.Error("closed disk should include its boundary")
	}

	ray := mustClassify(t, "arg(z-1) = 0")
	if !ray.Contains(Vec{3, 0}) || !ray.Contains(Vec{1, 0}) || ray.Contains(Vec{0, 0}) {
		t.Error("ray membership wrong")
	}

	dual := mustClassify(t, "arg(z) = arg(z-2)")
	if !dual.Contains(Vec{3, 0}) || !dual.Contains(Vec{-1, 0}) || dual.Contains(Vec{1, 0}) {
		t.Error("dual ray membership wrong")
	}

	point := mustClassify(t, "z = 1+j")
	if !point.Contains(Vec{1, 1}) || point.Contains(Vec{1, 0}) {
		t.Error("point membership wrong")
	}
}

func TestSideInvert(t *testing.T) {
	tests := []struct {
		side     Side
		expected Side
	}{
		{0, Above | Right},
		{Above, Right},
		{Right, Above},
		{Above | Right, 0},
	}
	for _, tt := range tests {
		if got := tt.side.Invert(); got != tt.expected {
			t.Errorf("Invert(%#x) = %#x, want %#x", tt.side, got, tt.expected)
		}
	}
}

func TestValues(t *testing.T) {
	tests := []struct {
		input    string
		expected LinearForm
	}{
		{"z = 0", LinearForm{1, 0}},
		{"3*z - 2j = 0", LinearForm{3, -2i}},
		{"(z+1)/2 = 0", LinearForm{0.5, 0.5}},
		{"-(z-1) = 0", LinearForm{-1, 1}},
		{"+z*j = 0", LinearForm{1i, 0}},
		{"2^3 = 0", LinearForm{0, 8}},
		{"|3+4j| = 0", LinearForm{0, 5}},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			root, err := parser.Parse(tt.input)
			if err != nil {
				t.Fatalf("Parse: %v", err)
			}
			got, err := Values(root.(*parser.Operator).Children[0])
			if err != nil {
				t.Fatalf("Values: %v", err)
			}
			if got != tt.expected {
				t.Errorf("got %+v, want %+v", got, tt.expected)
			}
		})
	}
}
