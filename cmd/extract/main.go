// Command extract augments best-track files with 31-day SST windows
// sampled from an ERDDAP raster source.
//
// Usage:
//
//	extract [-source sst|hycom] [path]
//
// path is a single track file or a directory of *.txt track files and
// defaults to ./single_TC. Augmented copies land in a sibling directory
// (TCSST_OUTPUT_DIR_NAME, default t_data). When TCSST_KAFKA_BROKERS is
// set, enriched fixes are also published to the configured topic.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/cyclonelab/tc-sst-etl/internal/adapter/erddap"
	kafkaadapter "github.com/cyclonelab/tc-sst-etl/internal/adapter/kafka"
	"github.com/cyclonelab/tc-sst-etl/internal/config"
	"github.com/cyclonelab/tc-sst-etl/internal/domain"
	"github.com/cyclonelab/tc-sst-etl/internal/observability"
	"github.com/cyclonelab/tc-sst-etl/internal/pipeline"
)

func main() {
	source := flag.String("source", "sst", "raster source: sst or hycom")
	flag.Parse()

	if flag.NArg() > 1 {
		fmt.Fprintln(os.Stderr, "usage: extract [-source sst|hycom] [path]")
		os.Exit(2)
	}
	path := "single_TC"
	if flag.NArg() == 1 {
		path = flag.Arg(0)
	}

	spec, err := domain.SourceByName(*source)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg.LogLevel, cfg.LogFormat)
	metrics := observability.NewMetrics()

	client := erddap.NewClient(cfg.ERDDAPURL, cfg.QueryTimeout, metrics, logger)
	src := erddap.NewCachedSource(client, cfg.CacheSize, metrics)

	// Kafka publishing is feature-flagged via TCSST_KAFKA_BROKERS.
	var sink pipeline.Sink
	if cfg.KafkaEnabled() {
		writer := kafkaadapter.NewWriter(cfg.KafkaBrokers, cfg.KafkaTopic, logger)
		defer writer.Close()
		sink = writer
		logger.Info("kafka publishing enabled", "topic", cfg.KafkaTopic, "brokers", cfg.KafkaBrokers)
	} else {
		logger.Info("kafka publishing disabled")
	}

	opts := domain.SamplerOptions{
		Concurrency:  cfg.SampleConcurrency,
		QueryTimeout: cfg.QueryTimeout,
	}
	extractor := pipeline.New(src, spec, opts, cfg.OutputDirName, sink, logger, metrics)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := extractor.Run(ctx, path); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
