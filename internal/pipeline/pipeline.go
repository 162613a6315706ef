// Package pipeline orchestrates best-track window extraction: read a
// track file, sample every fix's 31-day window against a raster source,
// then write the augmented copy. The writer only runs after a file is
// fully read and sampled, so a fatal error never leaves partial output.
package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/cyclonelab/tc-sst-etl/internal/domain"
	"github.com/cyclonelab/tc-sst-etl/internal/observability"
)

// Sink receives a file's enriched fixes after extraction completes.
type Sink interface {
	PublishFixes(ctx context.Context, fixes []domain.EnrichedFix) error
}

// Extractor runs window extraction for one raster source.
type Extractor struct {
	source  domain.RasterSource
	spec    domain.SourceSpec
	opts    domain.SamplerOptions
	outDir  string // sibling directory name for augmented output
	sink    Sink   // nil disables publishing
	logger  *slog.Logger
	metrics *observability.Metrics
}

// Summary describes one completed file extraction.
type Summary struct {
	Input    string
	Output   string
	Fixes    int
	Samples  int
	Missing  int
	Duration time.Duration
}

// New creates an Extractor. Pass a nil sink to disable publishing.
func New(source domain.RasterSource, spec domain.SourceSpec, opts domain.SamplerOptions, outDir string, sink Sink, logger *slog.Logger, metrics *observability.Metrics) *Extractor {
	return &Extractor{
		source:  source,
		spec:    spec,
		opts:    opts,
		outDir:  outDir,
		sink:    sink,
		logger:  logger,
		metrics: metrics,
	}
}

// Run processes a single track file, or every *.txt file in a directory.
// In a directory run one file's fatal error does not stop its siblings;
// the error return then reports how many files failed.
func (e *Extractor) Run(ctx context.Context, path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("input path: %w", err)
	}

	e.metrics.ExtractRunning.Set(1)
	defer e.metrics.ExtractRunning.Set(0)

	if !info.IsDir() {
		_, err := e.ExtractFile(ctx, path)
		return err
	}

	matches, err := filepath.Glob(filepath.Join(path, "*.txt"))
	if err != nil {
		return fmt.Errorf("list track files: %w", err)
	}
	if len(matches) == 0 {
		return fmt.Errorf("no *.txt track files in %s", path)
	}

	failed := 0
	for _, m := range matches {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if _, err := e.ExtractFile(ctx, m); err != nil {
			if ctx.Err() != nil {
				return err
			}
			e.logger.Error("extraction failed", "file", m, "error", err)
			failed++
		}
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d files failed", failed, len(matches))
	}
	return nil
}

// ExtractFile augments one track file. Parse errors and IO errors are
// fatal to the file; missing samples are not.
func (e *Extractor) ExtractFile(ctx context.Context, path string) (Summary, error) {
	start := time.Now()

	f, err := os.Open(path)
	if err != nil {
		e.metrics.FilesFailed.Inc()
		return Summary{}, fmt.Errorf("open track file: %w", err)
	}
	tf, err := domain.ParseTrack(f)
	f.Close()
	if err != nil {
		e.metrics.FilesFailed.Inc()
		return Summary{}, fmt.Errorf("%s: %w", filepath.Base(path), err)
	}

	windows := make([][]domain.WindowSample, len(tf.Fixes))
	missing := 0
	for i, fix := range tf.Fixes {
		samples, err := domain.SampleWindow(ctx, e.source, e.spec, fix, e.opts, e.logger)
		if err != nil {
			e.metrics.FilesFailed.Inc()
			return Summary{}, err
		}
		windows[i] = samples

		m := domain.CountMissing(samples)
		missing += m
		e.metrics.FixesProcessed.Inc()
		e.metrics.SamplesTaken.Add(float64(len(samples)))
		e.metrics.SamplesMissing.Add(float64(m))
	}

	outPath := OutputPath(path, e.outDir, e.spec.Suffix)
	if err := e.writeOutput(outPath, tf, windows); err != nil {
		e.metrics.FilesFailed.Inc()
		return Summary{}, err
	}
	e.metrics.FilesWritten.Inc()

	if e.sink != nil {
		if err := e.publish(ctx, tf, windows); err != nil {
			// The augmented file is already on disk; publishing is best-effort.
			e.logger.Warn("publish enriched fixes failed", "file", path, "error", err)
		}
	}

	s := Summary{
		Input:    path,
		Output:   outPath,
		Fixes:    len(tf.Fixes),
		Samples:  len(tf.Fixes) * domain.WindowSize,
		Missing:  missing,
		Duration: time.Since(start),
	}
	e.logger.Info("wrote augmented track file",
		"input", s.Input,
		"output", s.Output,
		"fixes", s.Fixes,
		"missing_samples", s.Missing,
		"duration", s.Duration,
	)
	return s, nil
}

// OutputPath derives the augmented file path: a directory named outDir
// sitting beside the input file's directory, holding
// <input-basename>_<SUFFIX>.txt.
func OutputPath(input, outDir, suffix string) string {
	base := strings.TrimSuffix(filepath.Base(input), filepath.Ext(input))
	dir := filepath.Join(filepath.Dir(input), "..", outDir)
	return filepath.Join(dir, fmt.Sprintf("%s_%s.txt", base, suffix))
}

// writeOutput creates the output directory if absent and overwrites any
// existing file of the same name.
func (e *Extractor) writeOutput(outPath string, tf domain.TrackFile, windows [][]domain.WindowSample) error {
	if err := os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}
	out, err := os.Create(outPath)
	if err != nil {
		return fmt.Errorf("create output file: %w", err)
	}
	if err := domain.WriteTrackFile(out, tf, windows); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}

func (e *Extractor) publish(ctx context.Context, tf domain.TrackFile, windows [][]domain.WindowSample) error {
	fixes := make([]domain.EnrichedFix, len(tf.Fixes))
	for i, fix := range tf.Fixes {
		fixes[i] = domain.BuildEnrichedFix(e.spec, fix, windows[i])
	}
	if err := e.sink.PublishFixes(ctx, fixes); err != nil {
		return err
	}
	e.metrics.FixesPublished.Add(float64(len(fixes)))
	return nil
}
