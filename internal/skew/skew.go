// Package skew renders diagnostic bar charts of per-person image counts
// across dataset splits. A chart with very unequal bar heights means a
// skewed split where a few persons contribute most of the images. The
// charts are informational only; nothing downstream consumes them.
package skew

import (
	"fmt"
	"math"
	"os"
	"regexp"
	"sort"

	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"

	"facepairs/internal/dataset"
)

// Split is one named dataset split to chart.
type Split struct {
	Name  string
	Pairs []dataset.Pair
}

// Options controls chart content and output.
type Options struct {
	// OnlySamePerson restricts counting to same-person pairs, where the
	// skew is usually much stronger.
	OnlySamePerson bool
	// TopN limits each chart to the persons with the highest counts.
	TopN int
	// LegendN is how many abbreviated names the legend expands.
	LegendN int
	// OutPath is the PNG file to write.
	OutPath string
}

// DefaultOptions mirror the diagnostic defaults used during training runs.
func DefaultOptions(outPath string) Options {
	return Options{OnlySamePerson: true, TopN: 250, LegendN: 15, OutPath: outPath}
}

// PersonCount is one ranked bar of the chart.
type PersonCount struct {
	Person string
	Count  int
}

var nonCapital = regexp.MustCompile(`[^A-Z]`)

// abbreviate shortens a person name to its capital letters, the form used
// as x-axis labels ("Arnold_Schwarzenegger" -> "AS").
func abbreviate(name string) string {
	return nonCapital.ReplaceAllString(name, "")
}

// CountByPerson counts how many images of each person appear across the
// pairs (both sides of every qualifying pair) and returns the persons
// ranked by descending count. Ties break by name so output is stable.
func CountByPerson(pairs []dataset.Pair, onlySamePerson bool) []PersonCount {
	counts := make(map[string]int)
	for _, p := range pairs {
		if onlySamePerson && !p.SamePerson {
			continue
		}
		counts[p.A.Person]++
		counts[p.B.Person]++
	}
	ranked := make([]PersonCount, 0, len(counts))
	for name, n := range counts {
		ranked = append(ranked, PersonCount{Person: name, Count: n})
	}
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].Count != ranked[j].Count {
			return ranked[i].Count > ranked[j].Count
		}
		return ranked[i].Person < ranked[j].Person
	})
	return ranked
}

// Render draws one bar chart per split, stacked vertically, and writes the
// result as a PNG to opts.OutPath.
func Render(splits []Split, opts Options) error {
	if opts.TopN <= 0 {
		opts.TopN = 250
	}
	if opts.LegendN <= 0 {
		opts.LegendN = 15
	}
	if len(splits) == 0 {
		return fmt.Errorf("no splits to render")
	}

	plots := make([][]*plot.Plot, len(splits))
	for i, split := range splits {
		p, err := chart(split, opts)
		if err != nil {
			return fmt.Errorf("failed to build chart for split %q: %w", split.Name, err)
		}
		plots[i] = []*plot.Plot{p}
	}

	img := vgimg.New(20*vg.Inch, vg.Length(len(splits))*4*vg.Inch)
	canvases := plot.Align(plots, draw.Tiles{
		Rows: len(splits),
		Cols: 1,
		PadY: vg.Points(15),
		PadX: vg.Points(10),
	}, draw.New(img))
	for i := range plots {
		plots[i][0].Draw(canvases[i][0])
	}

	f, err := os.Create(opts.OutPath)
	if err != nil {
		return fmt.Errorf("failed to create chart file: %w", err)
	}
	defer f.Close()
	png := vgimg.PngCanvas{Canvas: img}
	if _, err := png.WriteTo(f); err != nil {
		return fmt.Errorf("failed to write chart file: %w", err)
	}
	return nil
}

func chart(split Split, opts Options) (*plot.Plot, error) {
	ranked := CountByPerson(split.Pairs, opts.OnlySamePerson)
	total := len(ranked)
	if len(ranked) > opts.TopN {
		ranked = ranked[:opts.TopN]
	}

	values := make(plotter.Values, len(ranked))
	labels := make([]string, len(ranked))
	for i, pc := range ranked {
		values[i] = float64(pc.Count)
		labels[i] = abbreviate(pc.Person)
	}

	p := plot.New()
	p.Title.Text = chartTitle(split, values, total)
	p.Title.TextStyle.Font.Size = vg.Points(9)
	p.Y.Label.Text = "Count of images"
	p.X.Label.Text = "Person name"

	if len(values) > 0 {
		bars, err := plotter.NewBarChart(values, vg.Points(2))
		if err != nil {
			return nil, err
		}
		bars.LineStyle.Width = 0
		bars.Color = plotutil.Color(0)
		p.Add(bars)
		p.NominalX(labels...)
		p.X.Tick.Label.Rotation = math.Pi / 2
		p.X.Tick.Label.XAlign = draw.XRight
		p.X.Tick.Label.YAlign = draw.YCenter
		p.X.Tick.Label.Font.Size = vg.Points(4)

		// Legend maps abbreviated x labels back to full names.
		p.Legend.Top = true
		p.Legend.TextStyle.Font.Size = vg.Points(6)
		for i := 0; i < len(ranked) && i < opts.LegendN; i++ {
			p.Legend.Add(labels[i]+"="+ranked[i].Person, bars)
		}
	}
	return p, nil
}

// chartTitle builds the subplot heading with the sample count and the
// median/mean/stddev of the shown bar heights.
func chartTitle(split Split, values plotter.Values, totalPersons int) string {
	head := fmt.Sprintf("%s (%d samples)", split.Name, len(split.Pairs))
	if len(values) == 0 {
		return head + "\nmedian=0.0, mean=0.0, std=0.00"
	}
	sorted := append([]float64(nil), values...)
	sort.Float64s(sorted)
	median := stat.Quantile(0.5, stat.Empirical, sorted, nil)
	mean := stat.Mean(sorted, nil)
	std := stat.StdDev(sorted, nil)
	if math.IsNaN(std) {
		std = 0
	}
	others := len(values) - 15
	if others < 0 {
		others = 0
	}
	return fmt.Sprintf("%s\nmedian=%.1f, mean=%.1f, std=%.2f (+%d others shown of total %d persons)",
		head, median, mean, std, others, totalPersons)
}
