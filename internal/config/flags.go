package config

import (
	"flag"

	"github.com/Faultbox/tubetrail/internal/tube"
)

var (
	flagConfig     = flag.String("config", "", "Path to config file")
	flagDebug      = flag.Bool("debug", false, "Enable debug logging")
	flagCap        = flag.String("cap", "", "Cap style: open, flat or capsule")
	flagRings      = flag.Int("rings", 0, "Vertices per ring (including the seam)")
	flagCapSamples = flag.Int("cap-samples", 0, "Cap points per end for capsule caps")
	flagPath       = flag.String("path", "", "Motion path: helix, lissajous or line")
	flagWidth      = flag.Int("width", 0, "Window width")
	flagHeight     = flag.Int("height", 0, "Window height")
)

// ParseFlags parses command-line flags. Call this early in main().
func ParseFlags() {
	flag.Parse()
}

// Args returns the non-flag command-line arguments.
func Args() []string {
	return flag.Args()
}

// ConfigPath returns the explicit config path if provided via --config flag.
func ConfigPath() string {
	return *flagConfig
}

// applyFlags applies CLI flag overrides to the config.
func applyFlags(cfg *Config) error {
	if *flagDebug {
		cfg.Logging.Level = "debug"
	}
	if *flagCap != "" {
		style, err := tube.ParseCapStyle(*flagCap)
		if err != nil {
			return err
		}
		cfg.Tube.CapStyle = style
	}
	if *flagRings > 0 {
		cfg.Tube.RingSegmentCount = *flagRings
	}
	if *flagCapSamples > 0 {
		cfg.Tube.CapSampleCount = *flagCapSamples
	}
	if *flagPath != "" {
		cfg.Motion.Path = *flagPath
	}
	if *flagWidth > 0 {
		cfg.Viewer.Width = *flagWidth
	}
	if *flagHeight > 0 {
		cfg.Viewer.Height = *flagHeight
	}
	return nil
}
