package figures

import (
	"fmt"
	"path/filepath"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/palette/moreland"
	"gonum.org/v1/plot/vg"

	"github.com/cyclonelab/tc-sst-etl/internal/aggregate"
)

// SingleTrack plots every 31-day window of one augmented track file as
// its own colored line, earliest fix first.
func SingleTrack(inputPath, outPath string) error {
	rows, err := aggregate.LoadWindows(inputPath, nil)
	if err != nil {
		return err
	}
	if len(rows) == 0 {
		return fmt.Errorf("no windows found in %s", inputPath)
	}

	p := plot.New()
	p.Title.Text = filepath.Base(inputPath)
	p.X.Label.Text = "Days from storm passage"
	p.Y.Label.Text = "Sea surface temperature (°C)"

	cm := moreland.Kindlmann()
	cm.SetMin(0)
	cm.SetMax(1)
	colors := cm.Palette(len(rows)).Colors()

	for i, row := range rows {
		if err := addLine(p, windowLine(row), colors[i], false, ""); err != nil {
			return err
		}
	}

	ymin, ymax := p.Y.Min, p.Y.Max
	if err := zeroRule(p, ymin, ymax); err != nil {
		return err
	}

	if err := p.Save(8*vg.Inch, 5*vg.Inch, outPath); err != nil {
		return fmt.Errorf("save figure: %w", err)
	}
	return nil
}
