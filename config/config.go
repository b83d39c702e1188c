// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package config loads the service-level settings for the sarsim CLI:
// where the elevation cache lives, the terrain cell resolution, how many
// workers to run per simulation, and the log level.
package config

import (
	"path/filepath"

	"github.com/spf13/viper"
)

// Services holds the external-collaborator configuration for a sarsim run.
type Services struct {
	Elevation ElevationConfig `mapstructure:"elevation" yaml:"elevation"`
	Workers   int             `mapstructure:"workers" yaml:"workers"`
	LogLevel  string          `mapstructure:"log_level" yaml:"log_level"`
}

// ElevationConfig configures the elevation provider and its on-disk cache.
type ElevationConfig struct {
	// CacheDir, if non-empty, wraps the elevation provider with a
	// providers.FileElevationCache rooted here.
	CacheDir string `mapstructure:"cache_dir" yaml:"cache_dir"`

	// ResolutionM overrides the default terrain cell resolution.
	ResolutionM float64 `mapstructure:"resolution_m" yaml:"resolution_m"`
}

// Default returns the built-in configuration used when no file is given.
func Default() Services {
	return Services{
		Elevation: ElevationConfig{ResolutionM: 30},
		Workers:   0,
		LogLevel:  "info",
	}
}

// Load reads Services from a YAML file at path. Keys absent from the file
// keep their Default() values.
func Load(path string) (Services, error) {
	vp := viper.New()
	vp.SetConfigFile(path)
	vp.SetConfigType("yaml")
	vp.AddConfigPath(filepath.Dir(path))

	cfg := Default()
	if err := vp.ReadInConfig(); err != nil {
		return cfg, err
	}
	if err := vp.Unmarshal(&cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}
