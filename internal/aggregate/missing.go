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

// missingTokens are the placeholders a sample column may hold instead of
// a temperature. Compared after trimming and lowercasing.
var missingTokens = map[string]bool{
	"nan":  true,
	"":     true,
	"-999": true,
}

// IsMissingToken reports whether a sample column token denotes a
// missing value.
func IsMissingToken(tok string) bool {
	return missingTokens[strings.ToLower(strings.TrimSpace(tok))]
}

// MixedRow is a fix line whose trailing window holds both valid and
// missing samples, meaning sampling partially failed for that fix.
type MixedRow struct {
	File string // base name
	Line int    // 1-based
	Text string
}

// Preview returns the row text truncated for report output.
func (r MixedRow) Preview() string {
	const max = 40
	if len(r.Text) <= max {
		return r.Text
	}
	return r.Text[:max] + "..."
}

// ScanFileMixed returns the mixed rows of one augmented track file.
// Lines without a full window (fewer fields than the window size) are
// not augmented rows and are skipped.
func ScanFileMixed(path string) ([]MixedRow, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	var rows []MixedRow
	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	lineno := 0
	for sc.Scan() {
		lineno++
		line := sc.Text()
		if !domain.IsFixLine(line) {
			continue
		}
		parts := strings.Split(line, ",")
		if len(parts) < domain.WindowSize {
			continue
		}
		window := parts[len(parts)-domain.WindowSize:]
		missing := 0
		for _, tok := range window {
			if IsMissingToken(tok) {
				missing++
			}
		}
		if missing > 0 && missing < domain.WindowSize {
			rows = append(rows, MixedRow{
				File: filepath.Base(path),
				Line: lineno,
				Text: line,
			})
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return rows, nil
}

// ScanDirMixed scans every file in dir matching glob, in name order.
func ScanDirMixed(dir, glob string) ([]MixedRow, error) {
	matches, err := filepath.Glob(filepath.Join(dir, glob))
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", dir, err)
	}
	sort.Strings(matches)

	var rows []MixedRow
	for _, m := range matches {
		found, err := ScanFileMixed(m)
		if err != nil {
			return nil, err
		}
		rows = append(rows, found...)
	}
	return rows, nil
}
