// Package main is the entry point for the tubeview trail viewer.
package main

import (
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/Faultbox/tubetrail/internal/config"
	"github.com/Faultbox/tubetrail/internal/logger"
	"github.com/Faultbox/tubetrail/internal/viewer"
)

func main() {
	config.ParseFlags()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}

	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("=== tubeview ===",
		zap.Stringer("cap_style", cfg.Tube.CapStyle),
		zap.Int("ring_segments", cfg.Tube.RingSegmentCount),
		zap.String("path", cfg.Motion.Path),
	)
	logger.Info("keys: 1/2/3 cap style, +/- ring size, W wireframe, Space pause, R reset, Esc quit")

	v, err := viewer.New(cfg)
	if err != nil {
		logger.Error("failed to create viewer", zap.Error(err))
		os.Exit(1)
	}
	defer v.Close()

	if err := v.Run(); err != nil {
		logger.Error("viewer error", zap.Error(err))
		os.Exit(1)
	}

	logger.Info("viewer closed normally")
}
