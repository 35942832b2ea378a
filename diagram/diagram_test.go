package diagram

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Homlet/argand/locus"
	"github.com/Homlet/argand/parser"
	"github.com/Homlet/argand/plot"
)

func TestSetZoom(t *testing.T) {
	tests := []struct {
		zoom float64
		ok   bool
	}{
		{1, true},
		{0.011, true},
		{9000, true},
		{0.009, false},
		{11000, false},
		{0, false},
		{-5, false},
	}
	for _, tt := range tests {
		d := New()
		err := d.SetZoom(tt.zoom)
		if (err == nil) != tt.ok {
			t.Errorf("SetZoom(%g) = %v, want ok %v", tt.zoom, err, tt.ok)
		}
		if err != nil {
			if !errors.Is(err, ErrZoomRange) {
				t.Errorf("got %v, want %v", err, ErrZoomRange)
			}
			if d.Zoom != DefaultZoom {
				t.Errorf("zoom changed to %g on error", d.Zoom)
			}
		}
	}
}

func TestTranslate(t *testing.T) {
	d := New()
	d.Translate(locus.Vec{X: 1, Y: 2})
	d.Translate(locus.Vec{X: -3, Y: 1})
	if want := (locus.Vec{X: -2, Y: 3}); d.Translation != want {
		t.Errorf("got %+v, want %+v", d.Translation, want)
	}
	if err := d.SetTranslation(locus.Vec{}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if d.Translation != (locus.Vec{}) {
		t.Errorf("got %+v, want origin", d.Translation)
	}

	bad := []locus.Vec{
		{X: math.Inf(1)},
		{Y: math.NaN()},
		{X: math.MaxFloat64},
	}
	for _, v := range bad {
		d := New()
		d.SetTranslation(locus.Vec{X: math.MaxFloat64})
		if err := d.Translate(v); !errors.Is(err, ErrTranslationRange) {
			t.Errorf("Translate(%v): got %v, want %v", v, err, ErrTranslationRange)
		}
		if d.Translation != (locus.Vec{X: math.MaxFloat64}) {
			t.Errorf("Translate(%v): translation changed to %v on error", v, d.Translation)
		}
	}
}

func TestAddRemove(t *testing.T) {
	d := New()
	d.Add("|z| = 1")
	d.Add("z = ")
	d.Add("z = 1")
	if err := d.Remove(1); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(d.Plots) != 2 || d.Plots[1].Equation != "z = 1" {
		t.Errorf("got %d plots, second %q", len(d.Plots), d.Plots[1].Equation)
	}
	if err := d.Remove(5); !errors.Is(err, ErrNoPlot) {
		t.Errorf("got %v, want %v", err, ErrNoPlot)
	}
}

const sample = `// two circles
@zoom 25
@translate 1 -2.5
@stroke 2
@label-axes false
@label-points true

|z-1| = 2 ; color=#ff0000 alpha=0.4
|z| < 1
z = w
`

func TestParse(t *testing.T) {
	d, err := Parse(strings.NewReader(sample))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if d.Zoom != 25 || d.Translation != (locus.Vec{X: 1, Y: -2.5}) {
		t.Errorf("got zoom %g translation %+v", d.Zoom, d.Translation)
	}
	want := Preferences{Stroke: 2, LabelAxes: false, LabelPoints: true}
	if d.Preferences != want {
		t.Errorf("got %+v, want %+v", d.Preferences, want)
	}
	if len(d.Plots) != 3 {
		t.Fatalf("got %d plots, want 3", len(d.Plots))
	}

	first := d.Plots[0]
	if first.Equation != "|z-1| = 2" || first.Color != (plot.Color{R: 0xff}) || first.Alpha != 0.4 || first.Line != 8 {
		t.Errorf("got %+v", first)
	}
	if !first.Valid() {
		t.Errorf("first plot invalid: %v", first.Err)
	}
	if second := d.Plots[1]; second.Color != plot.DefaultColor || second.Alpha != plot.DefaultAlpha {
		t.Errorf("got %+v, want default color and alpha", second)
	}

	problems := d.Problems()
	if len(problems) != 1 || problems[0].Line != 10 {
		t.Fatalf("got %v, want one problem on line 10", problems)
	}
	if !errors.Is(problems[0], parser.ErrMultipleVariables) {
		t.Errorf("got %v, want %v", problems[0], parser.ErrMultipleVariables)
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		input string
		line  int
	}{
		{"@zoom 0.0001", 1},
		{"@zoom", 1},
		{"z = 1\n@bogus 1", 2},
		{"@stroke 0", 1},
		{"@label-axes maybe", 1},
		{"@translate 1", 1},
		{"z = 1 ; color=red", 1},
		{"z = 1 ; alpha=2", 1},
		{"z = 1 ; shade=3", 1},
		{"z = 1 ; alpha", 1},
		{"; alpha=0.5", 1},
		{"@translate inf 0", 1},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			d, err := Parse(strings.NewReader(tt.input))
			if d == nil {
				t.Fatal("expected a diagram")
			}
			var lineErr *LineError
			if !errors.As(err, &lineErr) {
				t.Fatalf("got %v, want a *LineError", err)
			}
			if lineErr.Line != tt.line {
				t.Errorf("got line %d, want %d", lineErr.Line, tt.line)
			}
		})
	}
}

func TestEncodeRoundTrip(t *testing.T) {
	d, err := Parse(strings.NewReader(sample))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var first strings.Builder
	if err := d.Encode(&first); err != nil {
		t.Fatalf("Encode: %v", err)
	}

	again, err := Parse(strings.NewReader(first.String()))
	if err != nil {
		t.Fatalf("reparse: %v", err)
	}
	var second strings.Builder
	if err := again.Encode(&second); err != nil {
		t.Fatalf("Encode: %v", err)
	}
	if first.String() != second.String() {
		t.Errorf("encoding not stable:\n%s\n---\n%s", first.String(), second.String())
	}

	wantLine := "|z-1| = 2 ; color=#ff0000 alpha=0.4\n"
	if !strings.Contains(first.String(), wantLine) {
		t.Errorf("missing %q in:\n%s", wantLine, first.String())
	}
}

func TestLoadSave(t *testing.T) {
	path := filepath.Join(t.TempDir(), "circles"+Ext)
	if err := os.WriteFile(path, []byte(sample), 0o644); err != nil {
		t.Fatal(err)
	}
	d, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if d.Path != path {
		t.Errorf("got path %q, want %q", d.Path, path)
	}

	d.Add("arg(z) = 1")
	if err := d.Save(); err != nil {
		t.Fatalf("Save: %v", err)
	}
	reloaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(reloaded.Plots) != 4 || reloaded.Plots[3].Equation != "arg(z) = 1" {
		t.Errorf("got %d plots after save", len(reloaded.Plots))
	}

	if err := New().Save(); err == nil {
		t.Error("expected error saving a diagram without a path")
	}
	if _, err := Load(filepath.Join(t.TempDir(), "missing"+Ext)); err == nil {
		t.Error("expected error loading a missing file")
	}
}

func TestSaveKeepsMalformedLines(t *testing.T) {
	const content = `// header
|z| < 1
|z-1| = 2 ; colour=#ff0000 alpha=0.5
@zoom abc
; color=#00ff00
`
	path := filepath.Join(t.TempDir(), "typo"+Ext)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	d, err := Load(path)
	if d == nil {
		t.Fatalf("Load: %v", err)
	}
	var lineErr *LineError
	if !errors.As(err, &lineErr) || lineErr.Line != 3 {
		t.Fatalf("got %v, want a problem on line 3", err)
	}
	if len(d.Plots) != 2 {
		t.Fatalf("got %d plots, want 2", len(d.Plots))
	}
	typo := d.Plots[1]
	if typo.Equation != "|z-1| = 2" || !typo.Valid() || typo.Color != plot.DefaultColor || typo.Alpha != 0.5 {
		t.Errorf("got %+v, want a valid plot with default color and alpha 0.5", typo)
	}

	if err := d.Translate(locus.Vec{X: 1}); err != nil {
		t.Fatal(err)
	}
	if err := d.Save(); err != nil {
		t.Fatalf("Save: %v", err)
	}
	saved, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{
		"// header\n",
		"@zoom abc\n",
		"; color=#00ff00\n",
		"|z-1| = 2 ; color=#0000ff alpha=0.5 colour=#ff0000\n",
	} {
		if !strings.Contains(string(saved), want) {
			t.Errorf("saved file does not contain %q:\n%s", want, saved)
		}
	}

	reloaded, err := Load(path)
	if reloaded == nil {
		t.Fatalf("Load: %v", err)
	}
	if len(reloaded.Plots) != 2 || reloaded.Translation.X != 1 {
		t.Errorf("got %d plots translated by %v after reload", len(reloaded.Plots), reloaded.Translation)
	}
	var again strings.Builder
	if err := reloaded.Encode(&again); err != nil {
		t.Fatal(err)
	}
	if again.String() != string(saved) {
		t.Errorf("encoding not stable:\n%s\n---\n%s", saved, again.String())
	}
}
