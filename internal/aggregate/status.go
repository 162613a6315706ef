// Package aggregate reads augmented (or raw) best-track files back in
// and computes the downstream summaries: status-code counts, mixed
// missing-value rows, and the 31-day windows used for plotting.
package aggregate

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/cyclonelab/tc-sst-etl/internal/domain"
)

// StatusCount is one status code and how many fixes carried it.
type StatusCount struct {
	Status string
	Count  int
}

// StatusTally aggregates status-code counts across files.
type StatusTally struct {
	counts map[string]int
}

func NewStatusTally() *StatusTally {
	return &StatusTally{counts: make(map[string]int)}
}

// AccumulateFile tallies the status field of every fix line in one file.
// Fix lines with fewer than four fields or an empty status are skipped.
func (t *StatusTally) AccumulateFile(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for sc.Scan() {
		line := sc.Text()
		if !domain.IsFixLine(line) {
			continue
		}
		parts := strings.Split(line, ",")
		if len(parts) < 4 {
			continue
		}
		status := strings.TrimSpace(parts[3])
		if status == "" {
			continue
		}
		t.counts[status]++
	}
	if err := sc.Err(); err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}
	return nil
}

// AccumulateDir tallies every file in dir matching glob (e.g. "*.txt").
func (t *StatusTally) AccumulateDir(dir, glob string) error {
	matches, err := filepath.Glob(filepath.Join(dir, glob))
	if err != nil {
		return fmt.Errorf("list %s: %w", dir, err)
	}
	sort.Strings(matches)
	for _, m := range matches {
		if err := t.AccumulateFile(m); err != nil {
			return err
		}
	}
	return nil
}

// Counts returns the tally most-frequent first. Ties break on status
// code so the order is stable across runs.
func (t *StatusTally) Counts() []StatusCount {
	out := make([]StatusCount, 0, len(t.counts))
	for status, n := range t.counts {
		out = append(out, StatusCount{Status: status, Count: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Status < out[j].Status
	})
	return out
}

// Total is the number of counted fixes across all statuses.
func (t *StatusTally) Total() int {
	total := 0
	for _, n := range t.counts {
		total += n
	}
	return total
}
