// Package config handles tubetrail configuration loading and management.
package config

import (
	"fmt"

	"github.com/Faultbox/tubetrail/internal/tube"
)

// Config holds all settings.
type Config struct {
	Tube    tube.Config   `yaml:"tube"`
	Feed    FeedConfig    `yaml:"feed"`
	Motion  MotionConfig  `yaml:"motion"`
	Viewer  ViewerConfig  `yaml:"viewer"`
	Logging LoggingConfig `yaml:"logging"`
}

// FeedConfig controls how samples are recorded and meshes regenerated.
type FeedConfig struct {
	MinDistance float32 `yaml:"min_distance"` // Movement needed before a new sample
	Workers     int     `yaml:"workers"`      // Ring workers, 0 = GOMAXPROCS
	MaxVertices int     `yaml:"max_vertices"` // Upper bound on mesh size
}

// MotionConfig describes the path followed by the reference point.
type MotionConfig struct {
	Path      string  `yaml:"path"`   // helix, lissajous or line
	Speed     float32 `yaml:"speed"`  // Path time units per second
	Radius    float32 `yaml:"radius"` // Helix radius / Lissajous amplitude
	Pitch     float32 `yaml:"pitch"`  // Helix rise per turn
	FrameRate int     `yaml:"frame_rate"`
}

// ViewerConfig holds window and rendering settings for tubeview.
type ViewerConfig struct {
	Width      int  `yaml:"width"`
	Height     int  `yaml:"height"`
	Fullscreen bool `yaml:"fullscreen"`
	VSync      bool `yaml:"vsync"`
	Wireframe  bool `yaml:"wireframe"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Tube: tube.DefaultConfig(),
		Feed: FeedConfig{
			MinDistance: tube.DefaultMinDistance,
			Workers:     0,
			MaxVertices: tube.DefaultMaxVertices,
		},
		Motion: MotionConfig{
			Path:      "helix",
			Speed:     1.0,
			Radius:    4.0,
			Pitch:     2.0,
			FrameRate: 60,
		},
		Viewer: ViewerConfig{
			Width:      1280,
			Height:     720,
			Fullscreen: false,
			VSync:      true,
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}

// Validate checks settings that would make mesh generation fail.
func (c *Config) Validate() error {
	if err := c.Tube.Validate(); err != nil {
		return fmt.Errorf("tube: %w", err)
	}
	if c.Feed.MinDistance < 0 {
		return fmt.Errorf("feed: min_distance %v < 0", c.Feed.MinDistance)
	}
	if c.Motion.FrameRate <= 0 {
		return fmt.Errorf("motion: frame_rate %d <= 0", c.Motion.FrameRate)
	}
	return nil
}

// GeneratorOptions returns the tube.Generator options for the feed settings.
func (c *Config) GeneratorOptions() []tube.Option {
	return []tube.Option{
		tube.WithWorkers(c.Feed.Workers),
		tube.WithMaxVertices(c.Feed.MaxVertices),
	}
}
