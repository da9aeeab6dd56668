package bench

import (
	"fmt"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

// Plot renders results as a bar chart (one bar per result, in the order
// given) comparing latency across participants, saved as a PNG at
// path. gonum.org/v1/plot is one of the source benchmark repo's declared
// dependencies that its own code never imports; this is where it
// finally gets exercised.
func Plot(path string, results []BenchResult) error {
	p := plot.New()
	p.Title.Text = "slotkv vs. pebble: latency by workload"
	p.Y.Min = 0
	p.Y.Label.Text = "latency (ms)"

	values := make(plotter.Values, len(results))
	labels := make([]string, len(results))
	for i, r := range results {
		values[i] = float64(r.LatencyNs) / 1e6
		labels[i] = fmt.Sprintf("%s/%s", r.Name, r.Operation)
	}

	bars, err := plotter.NewBarChart(values, vg.Points(20))
	if err != nil {
		return fmt.Errorf("bench: build bar chart: %w", err)
	}
	bars.Color = plotter.DefaultGlyphStyle.Color
	p.Add(bars)
	p.NominalX(labels...)

	if err := p.Save(8*vg.Inch, 4*vg.Inch, path); err != nil {
		return fmt.Errorf("bench: save plot: %w", err)
	}
	return nil
}
