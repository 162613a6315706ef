package figures

import (
	"fmt"
	"image/color"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/vg"

	"github.com/cyclonelab/tc-sst-etl/internal/aggregate"
	"github.com/cyclonelab/tc-sst-etl/internal/stats"
)

// WindowAnomaly plots the 31-day SST anomaly summaries for TS and HU
// fixes found under dir. Each window is centered on its own baseline
// (mean over Day -10..-4); rows are grouped by the sign of their Day 0
// delta, and each group contributes a median and a mean line.
func WindowAnomaly(dir, glob, outPath string) error {
	rows, err := aggregate.LoadDirWindows(dir, glob, StormStatuses)
	if err != nil {
		return err
	}

	anom, deltas := stats.Anomalies(rows)
	var neg, pos [][]float64
	for i, d := range deltas {
		switch {
		case d < 0:
			neg = append(neg, anom[i])
		case d > 0:
			pos = append(pos, anom[i])
		}
	}

	p := plot.New()
	p.Title.Text = "ΔSST: Day 0 − mean(Day −10…−4)"
	p.X.Label.Text = "Days from storm passage"
	p.Y.Label.Text = "Sea surface temperature anomaly (°C)"
	p.Legend.Top = false
	p.Legend.Left = true

	for _, g := range []struct {
		rows  [][]float64
		color color.Color
		label string
	}{
		{anom, colorAll, "all"},
		{neg, colorNeg, "ΔSST<0"},
		{pos, colorPos, "ΔSST>0"},
	} {
		if len(g.rows) == 0 {
			continue
		}
		med := stats.ColumnMedians(g.rows)
		mean := stats.ColumnMeans(g.rows)
		if err := addLine(p, windowLine(med), g.color, false, "Median ("+g.label+")"); err != nil {
			return err
		}
		if err := addLine(p, windowLine(mean), g.color, true, "Mean ("+g.label+")"); err != nil {
			return err
		}
	}

	if err := zeroRule(p, p.Y.Min, p.Y.Max); err != nil {
		return err
	}

	if err := p.Save(6*vg.Inch, 4*vg.Inch, outPath); err != nil {
		return fmt.Errorf("save figure: %w", err)
	}
	return nil
}
