// Package config provides configuration loading and management.
package config

import (
	"fmt"
	"os"

	"github.com/user/gifpipe/pkg/gifwriter"
	"gopkg.in/yaml.v3"
)

// Config represents the full configuration for a GIF export.
type Config struct {
	// Encoder chain
	Program  string `yaml:"program"`  // ffmpeg or imagemagick
	Optimize string `yaml:"optimize"` // none, optimizeplus, OptimizeTransparency

	// GIF parameters
	FPS     float64 `yaml:"fps"` // 0 = clip native rate
	Loop    int     `yaml:"loop"`
	Dispose int     `yaml:"dispose"` // 1 = keep previous frame, 2 = restore background
	Fuzz    int     `yaml:"fuzz"`    // percent
	Colors  int     `yaml:"colors"`  // 0 = no palette cap
	NoMask  bool    `yaml:"no_mask"`

	// Export strategy
	TempFiles bool `yaml:"temp_files"`

	// Binary paths (fall back to env and PATH discovery)
	FFmpegPath      string `yaml:"ffmpeg_path"`
	ImageMagickPath string `yaml:"imagemagick_path"`

	// Logging
	LogLevel string `yaml:"log_level"`
}

// Defaults returns a Config with default values.
func Defaults() Config {
	return Config{
		Program:  "imagemagick",
		Optimize: "OptimizeTransparency",
		Dispose:  2,
		Fuzz:     1,
		LogLevel: "info",
	}
}

// LoadFromFile loads configuration from a YAML file, starting from the
// defaults.
func LoadFromFile(path string) (Config, error) {
	cfg := Defaults()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

// ToOptions converts the configuration into export options, validating
// the enumerated fields.
func (c Config) ToOptions() (gifwriter.Options, error) {
	program, err := gifwriter.ParseProgram(c.Program)
	if err != nil {
		return gifwriter.Options{}, err
	}
	optimize, err := gifwriter.ParseOptimize(c.Optimize)
	if err != nil {
		return gifwriter.Options{}, err
	}
	if c.Dispose != 0 && c.Dispose != 1 && c.Dispose != 2 {
		return gifwriter.Options{}, fmt.Errorf("invalid dispose code %d (want 1 or 2)", c.Dispose)
	}
	return gifwriter.Options{
		Program:    program,
		Optimize:   optimize,
		FPS:        c.FPS,
		Loop:       c.Loop,
		Dispose:    gifwriter.Disposal(c.Dispose),
		Fuzz:       c.Fuzz,
		Colors:     c.Colors,
		WithMask:   !c.NoMask,
		FFmpegPath: c.FFmpegPath,
		MagickPath: c.ImageMagickPath,
	}, nil
}
