package plot

import "testing"

func TestParseColor(t *testing.T) {
	tests := []struct {
		input    string
		expected Color
		wantErr  bool
	}{
		{"#0000ff", Color{0, 0, 0xff}, false},
		{"#A0b1C2", Color{0xa0, 0xb1, 0xc2}, false},
		{"0000ff", Color{}, true},
		{"#00f", Color{}, true},
		{"#gggggg", Color{}, true},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseColor(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("got error %v, want error %v", err, tt.wantErr)
			}
			if got != tt.expected {
				t.Errorf("got %v, want %v", got, tt.expected)
			}
		})
	}
	if got := (Color{0xa0, 0xb1, 0xc2}).String(); got != "#a0b1c2" {
		t.Errorf("got %q, want %q", got, "#a0b1c2")
	}
}

func TestPlotSetEquation(t *testing.T) {
	p := New("|z| = 1")
	if !p.Valid() || p.Err != nil {
		t.Fatalf("got invalid plot: %v", p.Err)
	}
	if p.Color != DefaultColor || p.Alpha != DefaultAlpha {
		t.Errorf("got %v %g, want defaults", p.Color, p.Alpha)
	}

	if p.SetEquation("|z| = ") {
		t.Error("SetEquation should report an invalid equation")
	}
	if p.Valid() || p.Err == nil || p.Equation != "|z| = " {
		t.Errorf("invalid equation not kept: %+v", p)
	}

	if !p.SetEquation("z = 2") || !p.Valid() {
		t.Errorf("SetEquation should recover: %v", p.Err)
	}
}

func TestPlotSetAlpha(t *testing.T) {
	p := New("z = 1")
	for _, tt := range []struct{ in, want float64 }{{0.4, 0.4}, {-1, 0}, {2, 1}} {
		p.SetAlpha(tt.in)
		if p.Alpha != tt.want {
			t.Errorf("SetAlpha(%g) = %g, want %g", tt.in, p.Alpha, tt.want)
		}
	}
}
