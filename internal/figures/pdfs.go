package figures

import (
	"fmt"
	"image/color"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/cyclonelab/tc-sst-etl/internal/aggregate"
	"github.com/cyclonelab/tc-sst-etl/internal/stats"
)

var (
	fillNeg = color.RGBA{B: 200, A: 100}
	fillPos = color.RGBA{R: 200, A: 100}
)

// DiffPDFs renders the three cooling-distribution panels for TS and HU
// fixes under dir:
//
//	a: Day 0 − Day −15
//	b: Day 0 − Day −10
//	c: Day 0 − mean(Day −10…−4)
//
// Each panel shows a density estimate of the ΔSST sample with the
// warming (ΔSST > 0) region filled red and the cooling region blue.
func DiffPDFs(dir, glob, outPath string) error {
	rows, err := aggregate.LoadDirWindows(dir, glob, StormStatuses)
	if err != nil {
		return err
	}

	diffA := make([]float64, len(rows))
	diffB := make([]float64, len(rows))
	diffC := make([]float64, len(rows))
	for i, row := range rows {
		diffA[i] = row[aggregate.IdxDay0] - row[aggregate.IdxDayMinus15]
		diffB[i] = row[aggregate.IdxDay0] - row[aggregate.IdxDayMinus10]
		diffC[i] = row[aggregate.IdxDay0] - stats.Baseline(row)
	}

	panels := make([]*plot.Plot, 0, 3)
	for _, d := range []struct {
		diffs []float64
		title string
	}{
		{diffA, "a: ΔSST Day 0 − Day −15"},
		{diffB, "b: ΔSST Day 0 − Day −10"},
		{diffC, "c: ΔSST Day 0 − mean(Day −10…−4)"},
	} {
		p, err := densityPanel(d.diffs, d.title)
		if err != nil {
			return err
		}
		panels = append(panels, p)
	}

	return savePanels(panels, 13*vg.Inch, 4*vg.Inch, outPath)
}

func densityPanel(diffs []float64, title string) (*plot.Plot, error) {
	p := plot.New()
	p.X.Label.Text = "ΔSST (°C)"
	p.Y.Label.Text = "Probability density"

	finite := stats.Finite(diffs)
	if len(finite) == 0 {
		p.Title.Text = title + " (no data)"
		return p, nil
	}
	p.Title.Text = fmt.Sprintf("%s (%.1f%% > 0)", title, stats.PercentPositive(finite))

	kde, err := stats.NewKDE(finite)
	if err != nil {
		// Too few or degenerate samples: fall back to a histogram
		// outline instead of a smooth density.
		return p, histogramOutline(p, finite)
	}

	xs, ys := kde.Grid(400)
	var neg, pos plotter.XYs
	for i := range xs {
		xy := plotter.XY{X: xs[i], Y: ys[i]}
		if xs[i] <= 0 {
			neg = append(neg, xy)
		}
		if xs[i] >= 0 {
			pos = append(pos, xy)
		}
	}

	if err := addFill(p, neg, fillNeg); err != nil {
		return nil, err
	}
	if err := addFill(p, pos, fillPos); err != nil {
		return nil, err
	}
	if err := addLine(p, toXYs(xs, ys), colorAll, false, ""); err != nil {
		return nil, err
	}
	return p, nil
}

func addFill(p *plot.Plot, xys plotter.XYs, fill color.Color) error {
	if len(xys) < 2 {
		return nil
	}
	l, err := plotter.NewLine(xys)
	if err != nil {
		return err
	}
	l.FillColor = fill
	l.Color = color.Transparent
	p.Add(l)
	return nil
}

func histogramOutline(p *plot.Plot, finite []float64) error {
	bins := stats.Histogram(finite)
	xys := make(plotter.XYs, 0, len(bins)*4)
	for _, b := range bins {
		left := b.Center - b.Width/2
		right := b.Center + b.Width/2
		xys = append(xys,
			plotter.XY{X: left, Y: 0},
			plotter.XY{X: left, Y: b.Density},
			plotter.XY{X: right, Y: b.Density},
			plotter.XY{X: right, Y: 0},
		)
	}
	return addLine(p, xys, colorAll, false, "")
}

func toXYs(xs, ys []float64) plotter.XYs {
	xys := make(plotter.XYs, len(xs))
	for i := range xs {
		xys[i] = plotter.XY{X: xs[i], Y: ys[i]}
	}
	return xys
}
