package domain

import (
	"math"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func constantWindow(value float64) []WindowSample {
	samples := make([]WindowSample, WindowSize)
	for i := range samples {
		samples[i] = WindowSample{Offset: MinOffset + i, Value: value}
	}
	return samples
}

func TestFormatWindow(t *testing.T) {
	out := FormatWindow(constantWindow(5))
	fields := strings.Split(out, ", ")
	require.Len(t, fields, WindowSize)
	for _, f := range fields {
		assert.Equal(t, "  5.00", f)
	}
}

func TestFormatWindow_NaN(t *testing.T) {
	samples := constantWindow(28.53)
	samples[0].Value = math.NaN()

	fields := strings.Split(FormatWindow(samples), ", ")
	assert.Equal(t, "   NaN", fields[0])
	assert.Equal(t, " 28.53", fields[1])
}

func TestFormatWindow_WideValue(t *testing.T) {
	// Values wider than the fixed width still print in full.
	out := FormatWindow([]WindowSample{{Offset: 0, Value: -123.456}})
	assert.Equal(t, "-123.46", out)
}

func TestEnrichedLine_PreservesRawPrefix(t *testing.T) {
	fix := testFix()
	line := EnrichedLine(fix, constantWindow(5))

	assert.True(t, strings.HasPrefix(line, fix.Raw+", "))
	assert.Equal(t, WindowSize+strings.Count(fix.Raw, ","), strings.Count(line, ","))
}

func TestWriteTrackFile(t *testing.T) {
	tf := TrackFile{
		Header: []string{"AL201984,      LILI,     49,"},
		Fixes: []Fix{
			{
				Date: time.Date(1984, 9, 1, 0, 0, 0, 0, time.UTC),
				Lat:  13.4, Lon: -82.7,
				Raw: "19840901, 0000,  , HU, 13.4N, 82.7W,",
			},
		},
	}

	var sb strings.Builder
	err := WriteTrackFile(&sb, tf, [][]WindowSample{constantWindow(5)})
	require.NoError(t, err)

	lines := strings.Split(strings.TrimRight(sb.String(), "\n"), "\n")
	require.Len(t, lines, 2)

	// Header is byte-for-byte the input header.
	assert.Equal(t, tf.Header[0], lines[0])
	assert.True(t, strings.HasPrefix(lines[1], tf.Fixes[0].Raw+", "))

	want := tf.Fixes[0].Raw + ", " + strings.TrimSuffix(strings.Repeat("  5.00, ", WindowSize), ", ")
	if diff := cmp.Diff(want, lines[1]); diff != "" {
		t.Fatalf("fix line mismatch (-want +got):\n%s", diff)
	}
}

func TestWriteTrackFile_WindowCountMismatch(t *testing.T) {
	tf := TrackFile{Fixes: []Fix{testFix()}}

	var sb strings.Builder
	err := WriteTrackFile(&sb, tf, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "0 windows for 1 fixes")
}

func TestWriteTrackFile_RoundTrip(t *testing.T) {
	// Output of a write parses back with identical headers and fix count.
	tf, err := ParseTrack(strings.NewReader(testTrack))
	require.NoError(t, err)

	windows := make([][]WindowSample, len(tf.Fixes))
	for i := range windows {
		windows[i] = constantWindow(28.5)
	}

	var sb strings.Builder
	require.NoError(t, WriteTrackFile(&sb, tf, windows))

	reparsed, err := ParseTrack(strings.NewReader(sb.String()))
	require.NoError(t, err)
	assert.Equal(t, tf.Header, reparsed.Header)
	assert.Len(t, reparsed.Fixes, len(tf.Fixes))
	for i := range tf.Fixes {
		assert.True(t, strings.HasPrefix(reparsed.Fixes[i].Raw, tf.Fixes[i].Raw))
	}
}
