// Package plot renders replicate trajectories as line charts.
//
// Every (compartment, replicate) pair becomes one line. All replicate lines
// of a compartment share that compartment's base color, drawn translucent
// so dense replicate bundles stay legible; the legend carries one entry per
// compartment.
package plot

import (
	"fmt"
	"io"
	"os"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/outbreak-sim/outbreak-sim/sim"
)

// alphaFloor keeps individual lines visible at very high replicate counts.
const alphaFloor = 0.05

// LineAlpha computes the per-line opacity fraction for a replicate bundle:
// max(10/replicates, alphaFloor), clamped to 1.
func LineAlpha(replicates int) float64 {
	if replicates < 1 {
		return 1
	}
	alpha := 10 / float64(replicates)
	if alpha < alphaFloor {
		alpha = alphaFloor
	}
	if alpha > 1 {
		alpha = 1
	}
	return alpha
}

// palette holds the base color per compartment index. Compartments beyond
// the palette wrap around.
var palette = []drawing.Color{
	{R: 31, G: 119, B: 180, A: 255}, // S: blue
	{R: 214, G: 39, B: 40, A: 255},  // I: red
	{R: 44, G: 160, B: 44, A: 255},  // R: green
	{R: 148, G: 103, B: 189, A: 255},
	{R: 255, G: 127, B: 14, A: 255},
}

// CompartmentColor returns the base color for the compartment at idx.
func CompartmentColor(idx int) drawing.Color {
	return palette[idx%len(palette)]
}

// Options controls chart dimensions and labeling.
type Options struct {
	Width  int // pixels; 0 = 1024
	Height int // pixels; 0 = 512
	Title  string
	XLabel string // defaults to "Time"
	YLabel string // defaults to "Count"
}

func (o Options) withDefaults() Options {
	if o.Width == 0 {
		o.Width = 1024
	}
	if o.Height == 0 {
		o.Height = 512
	}
	if o.XLabel == "" {
		o.XLabel = "Time"
	}
	if o.YLabel == "" {
		o.YLabel = "Count"
	}
	return o
}

// Render draws the replicate table as a line chart in the given format
// (chart.PNG or chart.SVG) and writes it to w.
func Render(table *sim.ReplicateTable, opts Options, format chart.RendererProvider, w io.Writer) error {
	if table == nil || table.Rows() == 0 {
		return fmt.Errorf("nothing to plot: empty replicate table")
	}
	opts = opts.withDefaults()

	alpha := uint8(LineAlpha(table.Replicates) * 255)
	xs := table.Time

	series := make([]chart.Series, 0, len(table.Columns))
	for c := 0; c < table.NumCompartments(); c++ {
		color := CompartmentColor(c).WithAlpha(alpha)
		for rep := 0; rep < table.Replicates; rep++ {
			ys := make([]float64, len(xs))
			for i, v := range table.Column(c, rep) {
				ys[i] = float64(v)
			}
			s := chart.ContinuousSeries{
				XValues: xs,
				YValues: ys,
				Style:   chart.Style{StrokeColor: color, StrokeWidth: 1.0},
			}
			// Legend is keyed by compartment: name only the first
			// replicate's line of each compartment.
			if rep == 0 {
				s.Name = table.Compartments[c]
			}
			series = append(series, s)
		}
	}

	graph := chart.Chart{
		Title:  opts.Title,
		Width:  opts.Width,
		Height: opts.Height,
		XAxis:  chart.XAxis{Name: opts.XLabel},
		YAxis:  chart.YAxis{Name: opts.YLabel},
		Series: series,
	}
	graph.Elements = []chart.Renderable{chart.Legend(&graph)}

	if err := graph.Render(format, w); err != nil {
		return fmt.Errorf("rendering chart: %w", err)
	}
	return nil
}

// SavePNG renders the table as a PNG file at path.
func SavePNG(table *sim.ReplicateTable, opts Options, path string) error {
	return save(table, opts, chart.PNG, path)
}

// SaveSVG renders the table as an SVG file at path.
func SaveSVG(table *sim.ReplicateTable, opts Options, path string) error {
	return save(table, opts, chart.SVG, path)
}

func save(table *sim.ReplicateTable, opts Options, format chart.RendererProvider, path string) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	if err := Render(table, opts, format, file); err != nil {
		file.Close()
		return err
	}
	return file.Close()
}
