package domain

import (
	"context"
	"errors"
	"time"
)

// RasterQuery identifies one single-day cell sample in a raster time series.
type RasterQuery struct {
	Dataset string
	Band    string
	Date    time.Time
	Lon     float64
	Lat     float64
}

// Sentinel errors a RasterSource may return. Window sampling treats every
// error, sentinel or not, as a missing sample.
var (
	// ErrNoImage means the source has no image covering the requested date.
	ErrNoImage = errors.New("no image for date")

	// ErrMasked means the queried cell is masked or undefined at the point.
	ErrMasked = errors.New("cell masked at point")
)

// RasterSource answers point queries against a daily raster time series.
type RasterSource interface {
	// Sample returns the raw (unscaled) cell value for the query.
	Sample(ctx context.Context, q RasterQuery) (float64, error)
}
