package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Config holds all tool settings, populated from TCSST_* environment
// variables.
type Config struct {
	LogLevel  string `split_words:"true" default:"info"`
	LogFormat string `split_words:"true" default:"text"`

	// Raster source settings.
	ERDDAPURL         string        `envconfig:"ERDDAP_URL" default:"https://coastwatch.pfeg.noaa.gov/erddap/griddap"`
	QueryTimeout      time.Duration `split_words:"true" default:"30s"`
	SampleConcurrency int           `split_words:"true" default:"4"`
	CacheSize         int           `split_words:"true" default:"4096"`

	// Output directory name, created as a sibling of the input directory.
	OutputDirName string `split_words:"true" default:"t_data"`

	// Optional Kafka sink for enriched fixes; enabled when brokers are set.
	KafkaBrokers []string `split_words:"true"`
	KafkaTopic   string   `split_words:"true" default:"enriched-track-fixes"`
}

// KafkaEnabled reports whether the enriched-fix sink is configured.
func (c *Config) KafkaEnabled() bool { return len(c.KafkaBrokers) > 0 }

// Load reads configuration from environment variables, applying defaults
// where unset.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("tcsst", &cfg); err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	if cfg.ERDDAPURL == "" {
		return nil, errors.New("TCSST_ERDDAP_URL is required")
	}
	if cfg.QueryTimeout <= 0 {
		return nil, errors.New("TCSST_QUERY_TIMEOUT must be positive")
	}
	if cfg.SampleConcurrency < 1 {
		return nil, errors.New("TCSST_SAMPLE_CONCURRENCY must be at least 1")
	}
	if cfg.CacheSize < 1 {
		return nil, errors.New("TCSST_CACHE_SIZE must be at least 1")
	}
	if cfg.OutputDirName == "" {
		return nil, errors.New("TCSST_OUTPUT_DIR_NAME is required")
	}
	if cfg.KafkaEnabled() && cfg.KafkaTopic == "" {
		return nil, errors.New("TCSST_KAFKA_TOPIC is required when TCSST_KAFKA_BROKERS is set")
	}

	return &cfg, nil
}
