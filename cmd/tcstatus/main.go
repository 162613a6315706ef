// Command tcstatus counts tropical-cyclone status codes (HU, TS, EX,
// and so on) across the track files in a directory.
//
// Usage:
//
//	tcstatus [-glob pattern] [dir]
//
// dir defaults to ./single_TC; use -glob "*_SST.txt" to count over
// augmented files instead.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/cyclonelab/tc-sst-etl/internal/aggregate"
)

func main() {
	glob := flag.String("glob", "*.txt", "file pattern to count within the directory")
	flag.Parse()

	if flag.NArg() > 1 {
		fmt.Fprintln(os.Stderr, "usage: tcstatus [-glob pattern] [dir]")
		os.Exit(2)
	}
	dir := "single_TC"
	if flag.NArg() == 1 {
		dir = flag.Arg(0)
	}

	info, err := os.Stat(dir)
	if err != nil || !info.IsDir() {
		fmt.Fprintf(os.Stderr, "directory %q not found\n", dir)
		os.Exit(1)
	}

	tally := aggregate.NewStatusTally()
	if err := tally.AccumulateDir(dir, *glob); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	if tally.Total() == 0 {
		fmt.Println("No status codes found.")
		return
	}

	fmt.Println("Tropical cyclone status counts:")
	for _, sc := range tally.Counts() {
		fmt.Printf("%3s : %d\n", sc.Status, sc.Count)
	}
	fmt.Println("--------------------")
	fmt.Printf("Total : %d\n", tally.Total())
}
