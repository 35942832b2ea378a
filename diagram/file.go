package diagram

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/Homlet/argand/locus"
	"github.com/Homlet/argand/plot"
)

// Ext is the file extension of diagram files.
const Ext = ".argand"

// LineError locates a problem in a diagram file.
type LineError struct {
	Line int
	Err  error
}

func (e *LineError) Error() string {
	if e.Line == 0 {
		return e.Err.Error()
	}
	return fmt.Sprintf("line %d: %v", e.Line, e.Err)
}

func (e *LineError) Unwrap() error {
	return e.Err
}

// Parse reads a diagram file. Each non-blank line is a "//" comment, an
// "@" directive, or an equation with optional attributes:
//
//	@zoom 50
//	|z-1| < 2 ; color=#ff0000 alpha=0.4
//
// Problems with a line are returned joined in the error. Comments and
// lines that cannot be applied are kept in Verbatim, attributes that cannot
// be applied stay with their plot, and invalid equations are kept and
// reported by Problems, so saving never drops what the file said.
func Parse(r io.Reader) (*Diagram, error) {
	d := New()
	var errs []error

	sc := bufio.NewScanner(r)
	line := 0
	for sc.Scan() {
		line++
		text := strings.TrimSpace(sc.Text())
		switch {
		case text == "":
		case strings.HasPrefix(text, "//"):
			d.Verbatim = append(d.Verbatim, text)
		case strings.HasPrefix(text, "@"):
			if err := d.directive(text[1:]); err != nil {
				d.Verbatim = append(d.Verbatim, text)
				errs = append(errs, &LineError{Line: line, Err: err})
			}
		default:
			for _, err := range d.equation(text, line) {
				errs = append(errs, &LineError{Line: line, Err: err})
			}
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read diagram: %w", err)
	}
	return d, errors.Join(errs...)
}

func (d *Diagram) directive(text string) error {
	fields := strings.Fields(text)
	if len(fields) == 0 {
		return fmt.Errorf("empty directive")
	}
	name, args := fields[0], fields[1:]
	want := 1
	if name == "translate" {
		want = 2
	}
	if len(args) != want {
		return fmt.Errorf("@%s takes %d argument(s), got %d", name, want, len(args))
	}

	switch name {
	case "zoom":
		z, err := strconv.ParseFloat(args[0], 64)
		if err != nil {
			return fmt.Errorf("parse zoom: %w", err)
		}
		return d.SetZoom(z)
	case "translate":
		x, err := strconv.ParseFloat(args[0], 64)
		if err != nil {
			return fmt.Errorf("parse translation: %w", err)
		}
		y, err := strconv.ParseFloat(args[1], 64)
		if err != nil {
			return fmt.Errorf("parse translation: %w", err)
		}
		return d.SetTranslation(locus.Vec{X: x, Y: y})
	case "stroke":
		n, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("parse stroke: %w", err)
		}
		if n < 1 {
			return fmt.Errorf("stroke must be positive, got %d", n)
		}
		d.Preferences.Stroke = n
	case "label-axes", "label-points":
		b, err := strconv.ParseBool(args[0])
		if err != nil {
			return fmt.Errorf("parse %s: %w", name, err)
		}
		if name == "label-axes" {
			d.Preferences.LabelAxes = b
		} else {
			d.Preferences.LabelPoints = b
		}
	default:
		return fmt.Errorf("unknown directive @%s", name)
	}
	return nil
}

// equation adds the plot on a line. A malformed attribute does not lose the
// plot: it keeps the default for that attribute and the text is carried in
// Attrs.
func (d *Diagram) equation(text string, line int) []error {
	equation, attrs, _ := strings.Cut(text, ";")
	equation = strings.TrimSpace(equation)
	if equation == "" {
		d.Verbatim = append(d.Verbatim, text)
		return []error{fmt.Errorf("missing equation")}
	}

	p := d.Add(equation)
	p.Line = line
	var errs []error
	for _, attr := range strings.Fields(attrs) {
		if err := applyAttr(p, attr); err != nil {
			p.Attrs = append(p.Attrs, attr)
			errs = append(errs, err)
		}
	}
	return errs
}

func applyAttr(p *plot.Plot, attr string) error {
	key, value, ok := strings.Cut(attr, "=")
	if !ok {
		return fmt.Errorf("attribute %q: want key=value", attr)
	}
	switch key {
	case "color":
		c, err := plot.ParseColor(value)
		if err != nil {
			return err
		}
		p.Color = c
	case "alpha":
		a, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return fmt.Errorf("parse alpha: %w", err)
		}
		if a < 0 || a > 1 {
			return fmt.Errorf("alpha must be within [0, 1], got %g", a)
		}
		p.Alpha = a
	default:
		return fmt.Errorf("unknown attribute %q", key)
	}
	return nil
}

// Encode writes d in the format read by Parse. Verbatim lines come first,
// then the view directives and the plots.
func (d *Diagram) Encode(w io.Writer) error {
	bw := bufio.NewWriter(w)
	for _, text := range d.Verbatim {
		fmt.Fprintln(bw, text)
	}
	fmt.Fprintf(bw, "@zoom %s\n", formatFloat(d.Zoom))
	fmt.Fprintf(bw, "@translate %s %s\n", formatFloat(d.Translation.X), formatFloat(d.Translation.Y))
	fmt.Fprintf(bw, "@stroke %d\n", d.Preferences.Stroke)
	fmt.Fprintf(bw, "@label-axes %t\n", d.Preferences.LabelAxes)
	fmt.Fprintf(bw, "@label-points %t\n", d.Preferences.LabelPoints)
	if len(d.Plots) > 0 {
		bw.WriteString("\n")
	}
	for _, p := range d.Plots {
		fmt.Fprintf(bw, "%s ; color=%s alpha=%s", p.Equation, p.Color, formatFloat(p.Alpha))
		for _, attr := range p.Attrs {
			fmt.Fprintf(bw, " %s", attr)
		}
		bw.WriteString("\n")
	}
	return bw.Flush()
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'g', -1, 64)
}

// Load reads the diagram file at path.
func Load(path string) (*Diagram, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open diagram: %w", err)
	}
	defer f.Close()

	d, err := Parse(f)
	if d != nil {
		d.Path = path
	}
	return d, err
}

// Save writes the diagram back to its Path.
func (d *Diagram) Save() error {
	if d.Path == "" {
		return fmt.Errorf("save diagram: no path")
	}
	return d.SaveAs(d.Path)
}

// SaveAs writes the diagram to path and makes it the diagram's Path.
func (d *Diagram) SaveAs(path string) error {
	var buf bytes.Buffer
	if err := d.Encode(&buf); err != nil {
		return fmt.Errorf("encode diagram: %w", err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("write diagram: %w", err)
	}
	d.Path = path
	return nil
}
