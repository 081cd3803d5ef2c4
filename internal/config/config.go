// Package config provides configuration loading for the solemesh CLI.
// It layers values from a YAML file over calibrated defaults; flags layer
// over both in the driver.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/solemesh/solemesh/internal/pipeline"
	"github.com/solemesh/solemesh/internal/regions"
)

// Config is the YAML parameter surface. Every pipeline knob is
// resolution/scale-dependent and therefore configurable per dataset.
type Config struct {
	Pipeline struct {
		// KernelRadius is the disk structuring element radius in pixels.
		KernelRadius int `yaml:"kernelRadius"`

		// TrimMargin is the per-side border trim in pixels.
		TrimMargin int `yaml:"trimMargin"`

		// SpeckSize is the noise-removal window span in pixels.
		SpeckSize int `yaml:"speckSize"`

		// ContentThreshold is the auto-crop content cutoff (0-255).
		ContentThreshold uint8 `yaml:"contentThreshold"`

		// MinFillRatio and MaxExtent parameterize the suspect classifier.
		MinFillRatio float64 `yaml:"minFillRatio"`
		MaxExtent    int     `yaml:"maxExtent"`

		// Connectivity is 4 or 8.
		Connectivity int `yaml:"connectivity"`

		// SplitHalves cuts the scan into two impressions when true.
		SplitHalves bool `yaml:"splitHalves"`

		// InvertInput flips intensity for dark-on-light scans.
		InvertInput bool `yaml:"invertInput"`
	} `yaml:"pipeline"`

	Input struct {
		// QuarterTurns is the fixed orientation correction applied on
		// load, in counter-clockwise quarter turns.
		QuarterTurns int `yaml:"quarterTurns"`
	} `yaml:"input"`

	Output struct {
		// Dir receives the per-scan JSON artifacts; empty means next to
		// each input file.
		Dir string `yaml:"dir"`

		// DebugDir receives per-stage PNG dumps when set.
		DebugDir string `yaml:"debugDir"`
	} `yaml:"output"`
}

// Default returns the configuration matching pipeline.DefaultParams().
func Default() *Config {
	cfg := &Config{}
	p := pipeline.DefaultParams()
	cfg.Pipeline.KernelRadius = p.KernelRadius
	cfg.Pipeline.TrimMargin = p.TrimMargin
	cfg.Pipeline.SpeckSize = p.SpeckSize
	cfg.Pipeline.ContentThreshold = p.ContentThreshold
	cfg.Pipeline.MinFillRatio = p.Thresholds.MinFillRatio
	cfg.Pipeline.MaxExtent = p.Thresholds.MaxExtent
	cfg.Pipeline.Connectivity = int(p.Connectivity)
	cfg.Pipeline.SplitHalves = p.SplitHalves
	cfg.Input.QuarterTurns = 1
	return cfg
}

// Load reads a YAML config file and layers it over the defaults. A missing
// path (empty string) returns the defaults unchanged.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	return cfg, nil
}

// Params converts the configuration into validated pipeline parameters.
func (c *Config) Params() (pipeline.Params, error) {
	p := pipeline.DefaultParams()
	p.KernelRadius = c.Pipeline.KernelRadius
	p.TrimMargin = c.Pipeline.TrimMargin
	p.SpeckSize = c.Pipeline.SpeckSize
	p.ContentThreshold = c.Pipeline.ContentThreshold
	p.Thresholds = regions.Thresholds{
		MinFillRatio: c.Pipeline.MinFillRatio,
		MaxExtent:    c.Pipeline.MaxExtent,
	}
	p.Connectivity = regions.Connectivity(c.Pipeline.Connectivity)
	p.SplitHalves = c.Pipeline.SplitHalves
	p.InvertInput = c.Pipeline.InvertInput
	if err := p.Validate(); err != nil {
		return pipeline.Params{}, err
	}
	return p, nil
}
