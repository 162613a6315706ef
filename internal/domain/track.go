package domain

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"
)

const dateLayout = "20060102"

// minFixFields is the smallest field count a fix line can have and still
// carry date, status, and both coordinates (indices 0, 3, 4, 5).
const minFixFields = 6

// TrackFile is a parsed best-track file: opaque header lines plus ordered
// fix records. Header lines keep their original text and relative order.
type TrackFile struct {
	Header []string
	Fixes  []Fix
}

// Fix is a single best-track observation. Raw holds the original line
// verbatim; window augmentation only ever appends to it.
type Fix struct {
	Date   time.Time // calendar day, UTC midnight
	Status string    // field index 3, may be empty
	Lat    float64   // signed decimal degrees, +N
	Lon    float64   // signed decimal degrees, +E
	Raw    string
}

// ParseLatLon converts a compass-suffixed coordinate token into signed
// decimal degrees: "13.4N" → +13.4, "82.7W" → -82.7. The suffix is
// case-insensitive.
func ParseLatLon(token string) (float64, error) {
	if len(token) < 2 {
		return 0, &FormatError{Token: token}
	}
	v, err := strconv.ParseFloat(token[:len(token)-1], 64)
	if err != nil {
		return 0, &FormatError{Token: token}
	}
	switch token[len(token)-1] {
	case 'N', 'n', 'E', 'e':
		return v, nil
	case 'S', 's', 'W', 'w':
		return -v, nil
	}
	return 0, &FormatError{Token: token}
}

// IsFixLine reports whether a line is a fix record: exactly 8 leading
// decimal digits immediately followed by a comma.
func IsFixLine(line string) bool {
	if len(line) < 9 || line[8] != ',' {
		return false
	}
	for i := range 8 {
		if line[i] < '0' || line[i] > '9' {
			return false
		}
	}
	return true
}

// ParseTrack reads a best-track file into a TrackFile. Parsing is
// fail-fast: the first malformed fix line aborts the whole file with a
// *MalformedRecordError. Header lines are never validated.
func ParseTrack(r io.Reader) (TrackFile, error) {
	var tf TrackFile

	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	lineno := 0
	for sc.Scan() {
		lineno++
		line := sc.Text()
		if !IsFixLine(line) {
			tf.Header = append(tf.Header, line)
			continue
		}
		fix, err := parseFixLine(line, lineno)
		if err != nil {
			return TrackFile{}, err
		}
		tf.Fixes = append(tf.Fixes, fix)
	}
	if err := sc.Err(); err != nil {
		return TrackFile{}, fmt.Errorf("read track file: %w", err)
	}
	return tf, nil
}

func parseFixLine(line string, lineno int) (Fix, error) {
	parts := strings.Split(line, ",")
	if len(parts) < minFixFields {
		return Fix{}, &MalformedRecordError{
			Line:   lineno,
			Reason: fmt.Sprintf("%d comma-separated fields, need at least %d", len(parts), minFixFields),
		}
	}
	for i, p := range parts {
		parts[i] = strings.TrimSpace(p)
	}

	date, err := time.ParseInLocation(dateLayout, parts[0], time.UTC)
	if err != nil {
		return Fix{}, &MalformedRecordError{Line: lineno, Reason: fmt.Sprintf("invalid date %q", parts[0])}
	}
	lat, err := ParseLatLon(parts[4])
	if err != nil {
		return Fix{}, &MalformedRecordError{Line: lineno, Err: err}
	}
	lon, err := ParseLatLon(parts[5])
	if err != nil {
		return Fix{}, &MalformedRecordError{Line: lineno, Err: err}
	}

	return Fix{
		Date:   date,
		Status: parts[3],
		Lat:    lat,
		Lon:    lon,
		Raw:    line,
	}, nil
}
