package domain

import (
	"errors"
	"math"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLatLon(t *testing.T) {
	tests := []struct {
		name     string
		token    string
		expected float64
	}{
		{"north", "13.4N", 13.4},
		{"south", "13.4S", -13.4},
		{"east", "82.7E", 82.7},
		{"west", "82.7W", -82.7},
		{"lowercase north", "13.4n", 13.4},
		{"lowercase west", "82.7w", -82.7},
		{"integer degrees", "5N", 5},
		{"high latitude", "89.9S", -89.9},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, err := ParseLatLon(tt.token)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, v)
			// Sign aside, the magnitude is the numeral before the suffix.
			assert.Equal(t, math.Abs(tt.expected), math.Abs(v))
		})
	}
}

func TestParseLatLon_Invalid(t *testing.T) {
	tests := []struct {
		name  string
		token string
	}{
		{"unknown suffix", "13.4X"},
		{"no numeral", "N"},
		{"empty", ""},
		{"not a number", "abcN"},
		{"no suffix", "13.4"},
		{"suffix only numeral", "4"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseLatLon(tt.token)
			require.Error(t, err)

			var formatErr *FormatError
			require.ErrorAs(t, err, &formatErr)
			assert.Equal(t, tt.token, formatErr.Token)
		})
	}
}

func TestIsFixLine(t *testing.T) {
	tests := []struct {
		name     string
		line     string
		expected bool
	}{
		{"fix line", "19840901, 0000,  , HU, 13.4N, 82.7W", true},
		{"no spaces", "19840901,AL,13,HU,13.4N,82.7W", true},
		{"header line", "AL201984,      LILI,     49,", false},
		{"seven digits", "1984090, 0000", false},
		{"nine digits", "198409011, 0000", false},
		{"digits then no comma", "19840901 0000", false},
		{"empty", "", false},
		{"short", "1984", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, IsFixLine(tt.line))
		})
	}
}

const testTrack = `AL201984,      LILI,     49,
19841220, 0000,  , TS, 13.4N, 82.7W,  40, 1002,
19841221, 0600,  , HU, 14.0N, 83.1W,  65,  998,
`

func TestParseTrack(t *testing.T) {
	tf, err := ParseTrack(strings.NewReader(testTrack))
	require.NoError(t, err)

	require.Len(t, tf.Header, 1)
	assert.Equal(t, "AL201984,      LILI,     49,", tf.Header[0])

	require.Len(t, tf.Fixes, 2)

	first := tf.Fixes[0]
	assert.Equal(t, time.Date(1984, 12, 20, 0, 0, 0, 0, time.UTC), first.Date)
	assert.Equal(t, "TS", first.Status)
	assert.Equal(t, 13.4, first.Lat)
	assert.Equal(t, -82.7, first.Lon)
	assert.Equal(t, "19841220, 0000,  , TS, 13.4N, 82.7W,  40, 1002,", first.Raw)

	second := tf.Fixes[1]
	assert.Equal(t, "HU", second.Status)
	assert.Equal(t, 14.0, second.Lat)
	assert.Equal(t, -83.1, second.Lon)
}

func TestParseTrack_HeaderOnly(t *testing.T) {
	input := "AL201984,      LILI,     49,\nsome trailing metadata\n"
	tf, err := ParseTrack(strings.NewReader(input))
	require.NoError(t, err)
	assert.Len(t, tf.Header, 2)
	assert.Empty(t, tf.Fixes)
}

func TestParseTrack_TooFewFields(t *testing.T) {
	input := "19840901, AL, 13, HU\n"
	_, err := ParseTrack(strings.NewReader(input))
	require.Error(t, err)

	var malformed *MalformedRecordError
	require.ErrorAs(t, err, &malformed)
	assert.Equal(t, 1, malformed.Line)
	assert.Contains(t, malformed.Error(), "need at least 6")
}

func TestParseTrack_BadCoordinate(t *testing.T) {
	input := "header\n19840901, 0000,  , HU, 13.4X, 82.7W,\n"
	_, err := ParseTrack(strings.NewReader(input))
	require.Error(t, err)

	var malformed *MalformedRecordError
	require.ErrorAs(t, err, &malformed)
	assert.Equal(t, 2, malformed.Line)

	var formatErr *FormatError
	require.True(t, errors.As(err, &formatErr))
	assert.Equal(t, "13.4X", formatErr.Token)
}

func TestParseTrack_BadDate(t *testing.T) {
	input := "19849999, 0000,  , HU, 13.4N, 82.7W,\n"
	_, err := ParseTrack(strings.NewReader(input))
	require.Error(t, err)

	var malformed *MalformedRecordError
	require.ErrorAs(t, err, &malformed)
	assert.Contains(t, malformed.Error(), "19849999")
}

func TestParseTrack_FailFast(t *testing.T) {
	// A malformed line aborts the whole file even when later lines are fine.
	input := "19840901, AL, 13, HU\n19840902, 0000,  , HU, 13.4N, 82.7W,\n"
	tf, err := ParseTrack(strings.NewReader(input))
	require.Error(t, err)
	assert.Empty(t, tf.Fixes)
	assert.Empty(t, tf.Header)
}
