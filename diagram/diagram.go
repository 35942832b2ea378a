package diagram

import (
	"errors"
	"fmt"
	"math"

	"github.com/Homlet/argand/locus"
	"github.com/Homlet/argand/plot"
)

// DefaultZoom is the number of pixels per unit of a new diagram.
const DefaultZoom = 50.0

var (
	// ErrZoomRange indicates a zoom factor outside the supported range.
	ErrZoomRange = errors.New("zoom out of range")

	// ErrTranslationRange indicates a translation that is not finite.
	ErrTranslationRange = errors.New("translation out of range")

	// ErrNoPlot indicates a plot index that does not exist.
	ErrNoPlot = errors.New("no such plot")
)

// Preferences control how a diagram is drawn.
type Preferences struct {
	Stroke      int // line width in pixels
	LabelAxes   bool
	LabelPoints bool
}

// DefaultPreferences returns the preferences of a new diagram.
func DefaultPreferences() Preferences {
	return Preferences{Stroke: 1, LabelAxes: true}
}

// Diagram is an ordered list of plots and the view they are drawn with.
type Diagram struct {
	Path        string // file the diagram was loaded from, if any
	Plots       []*plot.Plot
	Zoom        float64
	Translation locus.Vec
	Preferences Preferences

	// Verbatim holds comments and lines that could not be applied, in
	// file order. Encode writes them back unchanged.
	Verbatim []string
}

// New returns an empty diagram centred on the origin.
func New() *Diagram {
	return &Diagram{Zoom: DefaultZoom, Preferences: DefaultPreferences()}
}

// ValidZoom reports whether zoom lies within the range the renderer supports.
func ValidZoom(zoom float64) bool {
	if zoom <= 0 || math.IsInf(zoom, 0) || math.IsNaN(zoom) {
		return false
	}
	db := 25 * math.Log10(zoom)
	return db >= -50 && db <= 100
}

// SetZoom sets the zoom factor if it is within range.
func (d *Diagram) SetZoom(zoom float64) error {
	if !ValidZoom(zoom) {
		return fmt.Errorf("set zoom %g: %w", zoom, ErrZoomRange)
	}
	d.Zoom = zoom
	return nil
}

// SetTranslation moves the centre of the view to v.
func (d *Diagram) SetTranslation(v locus.Vec) error {
	if !finite(v.X) || !finite(v.Y) {
		return fmt.Errorf("set translation %g, %g: %w", v.X, v.Y, ErrTranslationRange)
	}
	d.Translation = v
	return nil
}

// Translate pans the view by delta.
func (d *Diagram) Translate(delta locus.Vec) error {
	return d.SetTranslation(d.Translation.Add(delta))
}

func finite(f float64) bool {
	return !math.IsInf(f, 0) && !math.IsNaN(f)
}

// Add appends a plot for equation, valid or not.
func (d *Diagram) Add(equation string) *plot.Plot {
	p := plot.New(equation)
	d.Plots = append(d.Plots, p)
	return p
}

// Plot returns the plot at index.
func (d *Diagram) Plot(index int) (*plot.Plot, error) {
	if index < 0 || index >= len(d.Plots) {
		return nil, fmt.Errorf("plot %d: %w", index, ErrNoPlot)
	}
	return d.Plots[index], nil
}

// Remove deletes the plot at index.
func (d *Diagram) Remove(index int) error {
	if _, err := d.Plot(index); err != nil {
		return err
	}
	d.Plots = append(d.Plots[:index], d.Plots[index+1:]...)
	return nil
}

// Problems returns one error per invalid plot, located by source line
// when known.
func (d *Diagram) Problems() []*LineError {
	var out []*LineError
	for _, p := range d.Plots {
		if p.Err != nil {
			out = append(out, &LineError{Line: p.Line, Err: p.Err})
		}
	}
	return out
}
