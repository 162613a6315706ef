// Command sstscan finds augmented track rows holding a mix of valid
// and missing SST values, meaning sampling partially failed for the
// fix. Each mixed row is reported with its file and line number.
//
// Usage:
//
//	sstscan [-glob pattern] [dir]
//
// dir defaults to ./t_data and is scanned for *_SST.txt files.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/cyclonelab/tc-sst-etl/internal/aggregate"
)

func main() {
	glob := flag.String("glob", "*_SST.txt", "file pattern to scan within the directory")
	flag.Parse()

	if flag.NArg() > 1 {
		fmt.Fprintln(os.Stderr, "usage: sstscan [-glob pattern] [dir]")
		os.Exit(2)
	}
	dir := "t_data"
	if flag.NArg() == 1 {
		dir = flag.Arg(0)
	}

	info, err := os.Stat(dir)
	if err != nil || !info.IsDir() {
		fmt.Fprintf(os.Stderr, "directory %q not found\n", dir)
		os.Exit(1)
	}

	rows, err := aggregate.ScanDirMixed(dir, *glob)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	if len(rows) == 0 {
		fmt.Printf("No mixed rows detected in %s\n", dir)
		return
	}

	fmt.Println("Files and rows with mixed missing/non-missing SST values:")
	for _, r := range rows {
		fmt.Printf("%s: line %d  (%s)\n", r.File, r.Line, r.Preview())
	}
}
