package domain

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// FormatWindow renders a 31-value window the way augmented files store it:
// comma-separated, fixed width, two decimals. NaN prints as "   NaN".
func FormatWindow(samples []WindowSample) string {
	var b strings.Builder
	for i, s := range samples {
		if i > 0 {
			b.WriteString(", ")
		}
		fmt.Fprintf(&b, "%6.2f", s.Value)
	}
	return b.String()
}

// EnrichedLine returns a fix's original line with its window appended.
// The raw prefix is preserved byte-for-byte.
func EnrichedLine(fix Fix, samples []WindowSample) string {
	return fix.Raw + ", " + FormatWindow(samples)
}

// WriteTrackFile emits an augmented track file: header lines verbatim in
// their original order, then one enriched line per fix. windows must hold
// one window per fix, in fix order.
func WriteTrackFile(w io.Writer, tf TrackFile, windows [][]WindowSample) error {
	if len(windows) != len(tf.Fixes) {
		return fmt.Errorf("write track file: %d windows for %d fixes", len(windows), len(tf.Fixes))
	}

	bw := bufio.NewWriter(w)
	for _, h := range tf.Header {
		if _, err := bw.WriteString(h + "\n"); err != nil {
			return fmt.Errorf("write header line: %w", err)
		}
	}
	for i, fix := range tf.Fixes {
		if _, err := bw.WriteString(EnrichedLine(fix, windows[i]) + "\n"); err != nil {
			return fmt.Errorf("write fix line: %w", err)
		}
	}
	return bw.Flush()
}
