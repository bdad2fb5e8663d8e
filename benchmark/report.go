package benchmark

import (
	"fmt"
	"io"
	"text/tabwriter"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

/*
WriteTable takes a writer and benchmark results and writes the results to
the writer as an aligned table, a row per result.
*/
func WriteTable(w io.Writer, results []Result) error {
	tw := tabwriter.NewWriter(w, 0, 8, 2, ' ', 0)
	fmt.Fprintln(tw, "SUITE\tSTRATEGY\tSAMPLES\tTIME (ms)\tSPEEDUP\tACCURACY\tF1")
	for _, r := range results {
		fmt.Fprintf(tw, "%s\t%s\t%d\t%.2f\t%.2fx\t%.4f\t%.4f\n",
			r.Suite, r.Strategy, r.Samples, milliseconds(r), r.Speedup, r.Accuracy, r.F1)
	}
	return tw.Flush()
}

// PlotTimes writes a bar chart of the duration of every result to path.
func PlotTimes(results []Result, title, path string) error {
	return plotBars(results, title, "Time (ms)", path, milliseconds)
}

// PlotSpeedups writes a bar chart of the speedup of every result to path.
func PlotSpeedups(results []Result, title, path string) error {
	return plotBars(results, title, "Speedup", path, func(r Result) float64 { return r.Speedup })
}

func plotBars(results []Result, title, ylabel, path string, value func(Result) float64) error {
	if len(results) == 0 {
		return fmt.Errorf("no results to plot")
	}
	p := plot.New()
	p.Title.Text = title
	p.Y.Label.Text = ylabel
	values := make(plotter.Values, len(results))
	labels := make([]string, len(results))
	for i, r := range results {
		values[i] = value(r)
		labels[i] = fmt.Sprintf("%s\n%s\n%d", r.Suite, r.Strategy, r.Samples)
	}
	bars, err := plotter.NewBarChart(values, vg.Points(20))
	if err != nil {
		return err
	}
	p.Add(bars)
	p.NominalX(labels...)
	width := vg.Length(len(results)) * vg.Inch
	if width < 4*vg.Inch {
		width = 4 * vg.Inch
	}
	return p.Save(width, 4*vg.Inch, path)
}

func milliseconds(r Result) float64 {
	return float64(r.Duration.Microseconds()) / 1000
}
