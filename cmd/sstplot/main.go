// Command sstplot renders the SST analysis figures as PNG files.
//
// Usage:
//
//	sstplot -kind track <augmented file>
//	sstplot -kind window [dir]
//	sstplot -kind pdfs [dir]
//
// track plots every 31-day window of one augmented file; window plots
// anomaly medians and means for TS and HU fixes; pdfs plots the three
// ΔSST density panels. dir defaults to ./t_data.
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/cyclonelab/tc-sst-etl/internal/figures"
)

func main() {
	kind := flag.String("kind", "", "figure to render: track, window or pdfs")
	out := flag.String("out", "", "output PNG path (default derives from the figure kind)")
	glob := flag.String("glob", "*_SST.txt", "file pattern within the directory (window and pdfs)")
	flag.Parse()

	if flag.NArg() > 1 {
		usage()
	}

	var err error
	switch *kind {
	case "track":
		if flag.NArg() != 1 {
			usage()
		}
		input := flag.Arg(0)
		err = figures.SingleTrack(input, outPath(*out, trackPNG(input)))
	case "window":
		err = figures.WindowAnomaly(dirArg(), *glob, outPath(*out, "sst_window_stats.png"))
	case "pdfs":
		err = figures.DiffPDFs(dirArg(), *glob, outPath(*out, "sst_diff_pdfs.png"))
	default:
		usage()
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, "usage: sstplot -kind track <file> | -kind window|pdfs [dir]")
	os.Exit(2)
}

func dirArg() string {
	if flag.NArg() == 1 {
		return flag.Arg(0)
	}
	return "t_data"
}

func outPath(flagValue, fallback string) string {
	if flagValue != "" {
		return flagValue
	}
	return fallback
}

// trackPNG names the single-track figure after its input file.
func trackPNG(input string) string {
	base := strings.TrimSuffix(filepath.Base(input), filepath.Ext(input))
	return base + ".png"
}
