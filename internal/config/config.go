// Package config holds the hwk settings.
package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/balkashynov/hwk/internal/fetcher"
	"github.com/balkashynov/hwk/internal/logging"
)

// Config is the full hwk configuration.
type Config struct {
	DB      DBConfig       `koanf:"db"`
	Log     logging.Config `koanf:"log"`
	Fetch   fetcher.Config `koanf:"fetch"`
	Extract ExtractConfig  `koanf:"extract"`
}

// DBConfig locates the SQLite file. An empty path means ~/.hwk/hwk.db.
type DBConfig struct {
	Path string `koanf:"path"`
}

// ExtractConfig tunes the assignment extractor.
type ExtractConfig struct {
	MinConfidence      float64 `koanf:"min_confidence"`
	DuplicateThreshold float64 `koanf:"duplicate_threshold"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Log:   logging.NewDefaultConfig(),
		Fetch: fetcher.NewDefaultConfig(),
		Extract: ExtractConfig{
			MinConfidence:      0.3,
			DuplicateThreshold: 0.7,
		},
	}
}

// Validate rejects values the rest of hwk cannot work with.
func (c *Config) Validate() error {
	var errs []error

	if err := c.Log.Validate(); err != nil {
		errs = append(errs, err)
	}
	if c.Fetch.Timeout <= 0 || c.Fetch.Timeout > 5*time.Minute {
		errs = append(errs, fmt.Errorf("fetch.timeout must be between 0 and 5m, got %s", c.Fetch.Timeout))
	}
	if c.Fetch.MaxBytes <= 0 {
		errs = append(errs, fmt.Errorf("fetch.max_bytes must be positive, got %d", c.Fetch.MaxBytes))
	}
	if c.Extract.MinConfidence < 0 || c.Extract.MinConfidence >= 1 {
		errs = append(errs, fmt.Errorf("extract.min_confidence must be in [0, 1), got %v", c.Extract.MinConfidence))
	}
	if c.Extract.DuplicateThreshold <= 0 || c.Extract.DuplicateThreshold > 1 {
		errs = append(errs, fmt.Errorf("extract.duplicate_threshold must be in (0, 1], got %v", c.Extract.DuplicateThreshold))
	}

	return errors.Join(errs...)
}
