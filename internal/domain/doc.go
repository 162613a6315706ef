// Package domain models HURDAT-style tropical-cyclone best-track data and
// its sea-surface-temperature (SST) window augmentation.
//
// # Best-track format
//
// Input files are line-oriented text. A line is a fix record iff its first
// 8 characters are decimal digits immediately followed by a comma:
//
//	19840901, AL, 13, HU, 13.4N, 82.7W, ...
//
// Fields are comma-separated and whitespace-trimmed. The fixed columns the
// pipeline reads are:
//
//	index 0  YYYYMMDD observation date
//	index 3  status code (2-3 letters: HU, TS, EX, ...; may be empty)
//	index 4  latitude, decimal degrees with N/S suffix
//	index 5  longitude, decimal degrees with E/W suffix
//
// Every other line is header/metadata and passes through untouched, in its
// original order and exact text.
//
// # SST windows
//
// Each fix is augmented with a 31-day window of daily raster samples at the
// fix position: day offsets -15 through +15 relative to the fix date. Each
// sample is rescaled into °C with a source-specific linear rule
// (value = raw*Scale + Offset); see [SourceSpec]. A sample that cannot be
// obtained (no image for the date, masked cell, query error, timeout) is
// NaN. Missing samples are data, never failures: a fix's window always has
// all 31 entries.
//
// Augmented output appends the window to the unmodified fix line:
//
//	<original line>, <day -15>, <day -14>, ..., <day +15>
//
// with each value formatted %6.2f (NaN prints as "   NaN").
//
// # ID generation
//
// Sink-topic keys are deterministic SHA-256 hashes of source|date|lat|lon,
// so replaying an extraction publishes the same keys. See [BuildEnrichedFix].
package domain
