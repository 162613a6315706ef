package domain

import (
	"context"
	"log/slog"
	"math"
	"time"

	"golang.org/x/sync/errgroup"
)

// Window bounds: each fix is sampled at day offsets -15 through +15.
const (
	MinOffset  = -15
	MaxOffset  = 15
	WindowSize = MaxOffset - MinOffset + 1
)

// WindowSample is one day of a fix's sampling window. Value is in °C, or
// NaN when the sample is missing.
type WindowSample struct {
	Offset int
	Date   time.Time
	Value  float64
}

// SamplerOptions tune how SampleWindow issues raster queries.
type SamplerOptions struct {
	// Concurrency bounds the per-offset query fan-out. Values below 1
	// mean sequential.
	Concurrency int

	// QueryTimeout caps each individual query so a hung query becomes a
	// missing sample instead of a hung run. Zero means no per-query deadline.
	QueryTimeout time.Duration
}

// SampleWindow queries src once per day offset and returns the 31 samples
// in increasing offset order. Each offset is queried exactly once, no
// retries. Query failures of any kind become NaN samples; the error
// return covers only cancellation of ctx itself.
func SampleWindow(ctx context.Context, src RasterSource, spec SourceSpec, fix Fix, opts SamplerOptions, logger *slog.Logger) ([]WindowSample, error) {
	samples := make([]WindowSample, WindowSize)

	g := new(errgroup.Group)
	limit := opts.Concurrency
	if limit < 1 {
		limit = 1
	}
	g.SetLimit(limit)

	for i := range WindowSize {
		offset := MinOffset + i
		date := fix.Date.AddDate(0, 0, offset)
		samples[i] = WindowSample{Offset: offset, Date: date, Value: math.NaN()}

		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}

			qctx := ctx
			if opts.QueryTimeout > 0 {
				var cancel context.CancelFunc
				qctx, cancel = context.WithTimeout(ctx, opts.QueryTimeout)
				defer cancel()
			}

			raw, err := src.Sample(qctx, RasterQuery{
				Dataset: spec.Dataset,
				Band:    spec.Band,
				Date:    date,
				Lon:     fix.Lon,
				Lat:     fix.Lat,
			})
			if err != nil {
				if ctx.Err() != nil {
					return ctx.Err()
				}
				// Missing is data, not failure: the NaN placeholder stands.
				logger.Debug("sample missing",
					"date", date.Format(dateLayout),
					"lat", fix.Lat,
					"lon", fix.Lon,
					"error", err,
				)
				return nil
			}
			samples[i].Value = spec.Apply(raw)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return samples, nil
}

// CountMissing returns how many samples in a window are NaN.
func CountMissing(samples []WindowSample) int {
	n := 0
	for _, s := range samples {
		if math.IsNaN(s.Value) {
			n++
		}
	}
	return n
}
