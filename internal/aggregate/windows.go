package aggregate

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/cyclonelab/tc-sst-etl/internal/domain"
)

// Well-known offset column indices within a 31-value window.
const (
	IdxDayMinus15 = 0
	IdxDayMinus10 = 5
	IdxDayMinus4  = 11
	IdxDay0       = 15
)

// LoadWindows reads the trailing 31-value windows from one augmented
// track file. When statuses is non-empty only fix lines whose status
// field is in the set contribute. Rows with non-numeric window tokens
// are skipped; "NaN" parses as a missing sample, not a bad row.
func LoadWindows(path string, statuses map[string]bool) ([][]float64, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	var rows [][]float64
	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for sc.Scan() {
		line := sc.Text()
		if !domain.IsFixLine(line) {
			continue
		}
		parts := strings.Split(line, ",")
		for i := range parts {
			parts[i] = strings.TrimSpace(parts[i])
		}
		if len(parts) < domain.WindowSize {
			continue
		}
		if len(statuses) > 0 && (len(parts) < 4 || !statuses[parts[3]]) {
			continue
		}
		window, ok := parseWindow(parts[len(parts)-domain.WindowSize:])
		if !ok {
			continue
		}
		rows = append(rows, window)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return rows, nil
}

// LoadDirWindows loads windows from every file in dir matching glob, in
// name order. An error is returned when no windows are found at all.
func LoadDirWindows(dir, glob string, statuses map[string]bool) ([][]float64, error) {
	matches, err := filepath.Glob(filepath.Join(dir, glob))
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", dir, err)
	}
	sort.Strings(matches)

	var rows [][]float64
	for _, m := range matches {
		found, err := LoadWindows(m, statuses)
		if err != nil {
			return nil, err
		}
		rows = append(rows, found...)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("no matching windows in %s", dir)
	}
	return rows, nil
}

func parseWindow(tokens []string) ([]float64, bool) {
	window := make([]float64, len(tokens))
	for i, tok := range tokens {
		v, err := strconv.ParseFloat(tok, 64)
		if err != nil {
			return nil, false
		}
		window[i] = v
	}
	return window, true
}
