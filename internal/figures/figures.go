// Package figures renders the analysis plots over augmented track
// files: raw single-track windows, window anomaly summaries, and the
// cooling-distribution panels. Every figure is written as a PNG.
package figures

import (
	"fmt"
	"image/color"
	"math"
	"os"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"

	"github.com/cyclonelab/tc-sst-etl/internal/domain"
)

// StormStatuses are the status codes the anomaly and distribution
// figures keep: tropical storms and hurricanes.
var StormStatuses = map[string]bool{"TS": true, "HU": true}

var (
	colorAll = color.RGBA{A: 255}
	colorNeg = color.RGBA{B: 200, A: 255}
	colorPos = color.RGBA{R: 200, A: 255}
)

var dashed = []vg.Length{vg.Points(4), vg.Points(2)}

// windowLine converts one 31-value window into plottable points on the
// Day -15..+15 axis, skipping missing samples.
func windowLine(window []float64) plotter.XYs {
	xys := make(plotter.XYs, 0, len(window))
	for i, v := range window {
		if math.IsNaN(v) {
			continue
		}
		xys = append(xys, plotter.XY{X: float64(domain.MinOffset + i), Y: v})
	}
	return xys
}

func addLine(p *plot.Plot, xys plotter.XYs, c color.Color, dash bool, label string) error {
	if len(xys) == 0 {
		return nil
	}
	l, err := plotter.NewLine(xys)
	if err != nil {
		return err
	}
	l.Color = c
	if dash {
		l.Dashes = dashed
	}
	p.Add(l)
	if label != "" {
		p.Legend.Add(label, l)
	}
	return nil
}

// zeroRule draws the vertical Day 0 marker across the given y extent.
func zeroRule(p *plot.Plot, ymin, ymax float64) error {
	l, err := plotter.NewLine(plotter.XYs{{X: 0, Y: ymin}, {X: 0, Y: ymax}})
	if err != nil {
		return err
	}
	l.Color = color.Gray{Y: 100}
	l.Width = vg.Points(0.8)
	p.Add(l)
	return nil
}

// savePanels writes a row of plots side by side into one PNG.
func savePanels(panels []*plot.Plot, width, height vg.Length, outPath string) error {
	img := vgimg.New(width, height)
	dc := draw.New(img)

	grid := [][]*plot.Plot{panels}
	tiles := draw.Tiles{
		Rows: 1, Cols: len(panels),
		PadX: vg.Millimeter * 2,
		PadLeft: vg.Millimeter, PadRight: vg.Millimeter,
		PadTop: vg.Millimeter, PadBottom: vg.Millimeter,
	}
	canvases := plot.Align(grid, tiles, dc)
	for i, p := range panels {
		p.Draw(canvases[0][i])
	}

	f, err := os.Create(outPath)
	if err != nil {
		return fmt.Errorf("create figure: %w", err)
	}
	png := vgimg.PngCanvas{Canvas: img}
	if _, err := png.WriteTo(f); err != nil {
		f.Close()
		return fmt.Errorf("write figure: %w", err)
	}
	return f.Close()
}
