package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Faultbox/tubetrail/internal/tube"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	// Tube defaults
	if cfg.Tube.CapStyle != tube.CapOpen {
		t.Errorf("expected open caps, got %v", cfg.Tube.CapStyle)
	}
	if cfg.Tube.CapSampleCount != 6 {
		t.Errorf("expected 6 cap samples, got %d", cfg.Tube.CapSampleCount)
	}
	if cfg.Tube.RingSegmentCount != 5 {
		t.Errorf("expected 5 ring segments, got %d", cfg.Tube.RingSegmentCount)
	}
	if cfg.Tube.CapExtent != 0.5 {
		t.Errorf("expected cap extent 0.5, got %f", cfg.Tube.CapExtent)
	}

	// Feed defaults
	if cfg.Feed.MinDistance != 0.15 {
		t.Errorf("expected min distance 0.15, got %f", cfg.Feed.MinDistance)
	}

	// Viewer defaults
	if cfg.Viewer.Width != 1280 || cfg.Viewer.Height != 720 {
		t.Errorf("expected 1280x720, got %dx%d", cfg.Viewer.Width, cfg.Viewer.Height)
	}
	if !cfg.Viewer.VSync {
		t.Error("expected vsync to be true by default")
	}

	// Logging defaults
	if cfg.Logging.Level != "info" {
		t.Errorf("expected log level 'info', got %s", cfg.Logging.Level)
	}

	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should be valid: %v", err)
	}
}

func TestLoadFromFile(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	yamlContent := `
tube:
  cap_style: capsule
  cap_sample_count: 8
  ring_segment_count: 17
  cap_extent: 0.75

feed:
  min_distance: 0.3
  workers: 4

motion:
  path: lissajous
  speed: 2.5

logging:
  level: "debug"
  log_file: "tube.log"
`

	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg := Default()
	if err := loadFromFile(cfg, configPath); err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	want := tube.Config{CapStyle: tube.CapCapsule, CapSampleCount: 8, RingSegmentCount: 17, CapExtent: 0.75}
	if cfg.Tube != want {
		t.Errorf("tube config: got %+v, want %+v", cfg.Tube, want)
	}
	if cfg.Feed.MinDistance != 0.3 {
		t.Errorf("expected min distance 0.3, got %f", cfg.Feed.MinDistance)
	}
	if cfg.Feed.Workers != 4 {
		t.Errorf("expected 4 workers, got %d", cfg.Feed.Workers)
	}
	if cfg.Feed.MaxVertices != tube.DefaultMaxVertices {
		t.Errorf("unset max_vertices should keep default, got %d", cfg.Feed.MaxVertices)
	}
	if cfg.Motion.Path != "lissajous" || cfg.Motion.Speed != 2.5 {
		t.Errorf("motion: got %+v", cfg.Motion)
	}
	if cfg.Motion.Radius != 4 {
		t.Errorf("unset motion radius should keep default, got %f", cfg.Motion.Radius)
	}
	if cfg.Logging.Level != "debug" || cfg.Logging.LogFile != "tube.log" {
		t.Errorf("logging: got %+v", cfg.Logging)
	}
}

func TestLoadFromFileInvalid(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"syntax", "tube:\n  ring_segment_count: not a number\n  invalid syntax here\n"},
		{"unknown cap style", "tube:\n  cap_style: pointy\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			configPath := filepath.Join(t.TempDir(), "invalid.yaml")
			if err := os.WriteFile(configPath, []byte(tt.yaml), 0644); err != nil {
				t.Fatalf("failed to write test config: %v", err)
			}

			if err := loadFromFile(Default(), configPath); err == nil {
				t.Error("expected error loading invalid YAML, got nil")
			}
		})
	}
}

func TestLoadFromFileMissing(t *testing.T) {
	if err := loadFromFile(Default(), "/nonexistent/path/config.yaml"); err == nil {
		t.Error("expected error loading missing file, got nil")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"ring segments", func(c *Config) { c.Tube.RingSegmentCount = 1 }},
		{"cap samples", func(c *Config) { c.Tube.CapSampleCount = 0 }},
		{"min distance", func(c *Config) { c.Feed.MinDistance = -1 }},
		{"frame rate", func(c *Config) { c.Motion.FrameRate = 0 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}

func TestSaveToRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")

	cfg := Default()
	cfg.Tube.CapStyle = tube.CapFlat
	cfg.Tube.RingSegmentCount = 12
	if err := cfg.SaveTo(path); err != nil {
		t.Fatalf("SaveTo: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read saved config: %v", err)
	}
	if !strings.Contains(string(data), "cap_style: flat") {
		t.Errorf("cap style should be saved by name:\n%s", data)
	}

	loaded := Default()
	if err := loadFromFile(loaded, path); err != nil {
		t.Fatalf("reload: %v", err)
	}
	if loaded.Tube != cfg.Tube {
		t.Errorf("round trip: got %+v, want %+v", loaded.Tube, cfg.Tube)
	}
}

func TestConfigDir(t *testing.T) {
	dir := ConfigDir()
	if dir == "" {
		t.Error("ConfigDir returned empty string")
	}
	if !filepath.IsAbs(dir) {
		t.Errorf("ConfigDir should return absolute path, got %s", dir)
	}
}

func TestApplyFlags(t *testing.T) {
	tests := []struct {
		name     string
		setup    func()
		verify   func(*testing.T, *Config)
		teardown func()
	}{
		{
			name:  "debug flag",
			setup: func() { *flagDebug = true },
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Logging.Level != "debug" {
					t.Errorf("expected log level 'debug', got %s", cfg.Logging.Level)
				}
			},
			teardown: func() { *flagDebug = false },
		},
		{
			name: "tube flags",
			setup: func() {
				*flagCap = "capsule"
				*flagRings = 24
				*flagCapSamples = 3
			},
			verify: func(t *testing.T, cfg *Config) {
				want := tube.Config{CapStyle: tube.CapCapsule, CapSampleCount: 3, RingSegmentCount: 24, CapExtent: 0.5}
				if cfg.Tube != want {
					t.Errorf("tube: got %+v, want %+v", cfg.Tube, want)
				}
			},
			teardown: func() {
				*flagCap = ""
				*flagRings = 0
				*flagCapSamples = 0
			},
		},
		{
			name: "window flags",
			setup: func() {
				*flagWidth = 2560
				*flagHeight = 1440
			},
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Viewer.Width != 2560 || cfg.Viewer.Height != 1440 {
					t.Errorf("expected 2560x1440, got %dx%d", cfg.Viewer.Width, cfg.Viewer.Height)
				}
			},
			teardown: func() {
				*flagWidth = 0
				*flagHeight = 0
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setup()
			defer tt.teardown()

			cfg := Default()
			if err := applyFlags(cfg); err != nil {
				t.Fatalf("applyFlags: %v", err)
			}
			tt.verify(t, cfg)
		})
	}
}

func TestApplyFlagsBadCap(t *testing.T) {
	*flagCap = "pointy"
	defer func() { *flagCap = "" }()

	if err := applyFlags(Default()); err == nil {
		t.Error("expected error for unknown cap style")
	}
}

func TestLoadPriority(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.yaml")
	yamlContent := `
tube:
  ring_segment_count: 9
  cap_style: flat
`
	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	*flagConfig = configPath
	*flagRings = 33
	defer func() {
		*flagConfig = ""
		*flagRings = 0
	}()

	cfg, err := Load()
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	// Ring count from the flag, cap style from the file
	if cfg.Tube.RingSegmentCount != 33 {
		t.Errorf("expected 33 ring segments from flag, got %d", cfg.Tube.RingSegmentCount)
	}
	if cfg.Tube.CapStyle != tube.CapFlat {
		t.Errorf("expected flat caps from file, got %v", cfg.Tube.CapStyle)
	}
}
