// tubegen is a headless CLI that records a tube trail along a motion path
// and exports or reports the resulting mesh.
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/Faultbox/tubetrail/internal/config"
	"github.com/Faultbox/tubetrail/internal/export"
	"github.com/Faultbox/tubetrail/internal/logger"
	"github.com/Faultbox/tubetrail/internal/motion"
	"github.com/Faultbox/tubetrail/internal/tube"
)

func main() {
	config.ParseFlags()
	args := config.Args()
	if len(args) < 1 {
		printUsage()
		os.Exit(1)
	}

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

	command := args[0]
	rest := args[1:]

	switch command {
	case "obj":
		err = cmdOBJ(cfg, rest)
	case "stats":
		err = cmdStats(cfg, rest)
	case "config":
		err = cmdConfig(cfg, rest)
	case "help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		logger.Sync()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`tubegen - record a tube trail along a motion path

Usage:
  tubegen [flags] <command> [options]

Commands:
  obj [-frames N] <out.obj|->   Record N frames and write the mesh as OBJ
  stats [-frames N]             Record N frames and print mesh statistics
  config [path]                 Write the effective config as YAML

Flags:
  -config <file>   Config file (default ./tubetrail.yaml)
  -cap <style>     open, flat or capsule
  -rings <n>       Vertices per ring
  -cap-samples <n> Capsule points per end
  -path <name>     helix, lissajous or line
  -debug           Debug logging

Examples:
  tubegen -cap capsule -rings 16 obj trail.obj
  tubegen -path lissajous stats -frames 600`)
}

// record drives a trail for the given number of frames at the configured
// frame rate and returns the uploaded mesh.
func record(cfg *config.Config, frames int) (*export.Mesh, *tube.Trail, error) {
	path, err := motion.PathFromConfig(cfg.Motion)
	if err != nil {
		return nil, nil, err
	}

	opts := append(cfg.GeneratorOptions(), tube.WithLogger(logger.Named("generator")))
	gen, err := tube.New(cfg.Tube, opts...)
	if err != nil {
		return nil, nil, err
	}
	defer gen.Close()

	mesh := &export.Mesh{}
	trail := tube.NewTrail(gen, mesh,
		tube.WithMinDistance(cfg.Feed.MinDistance),
		tube.WithTrailLogger(logger.Named("trail")),
	)

	sampler := motion.NewSampler(path, cfg.Motion.Speed)
	dt := 1 / float32(cfg.Motion.FrameRate)
	if _, err := trail.AddSample(sampler.Position()); err != nil {
		return nil, nil, err
	}
	for range frames {
		if _, err := trail.AddSample(sampler.Step(dt)); err != nil {
			return nil, nil, err
		}
	}
	return mesh, trail, nil
}

func cmdOBJ(cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("obj", flag.ExitOnError)
	frames := fs.Int("frames", 300, "Frames to record")
	fs.Parse(args)

	if fs.NArg() < 1 {
		return fmt.Errorf("usage: tubegen obj [-frames N] <out.obj|->")
	}

	mesh, _, err := record(cfg, *frames)
	if err != nil {
		return err
	}

	target := fs.Arg(0)
	out := os.Stdout
	if target != "-" {
		f, err := os.Create(target)
		if err != nil {
			return err
		}
		defer f.Close()
		out = f
	}

	if err := mesh.WriteOBJ(out, "trail"); err != nil {
		return fmt.Errorf("writing %s: %w", target, err)
	}
	logger.Info("mesh written",
		zap.String("path", target),
		zap.Int("vertices", len(mesh.Vertices)),
		zap.Int("triangles", len(mesh.Indices)/3),
	)
	return nil
}

func cmdStats(cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("stats", flag.ExitOnError)
	frames := fs.Int("frames", 300, "Frames to record")
	fs.Parse(args)

	start := time.Now()
	mesh, trail, err := record(cfg, *frames)
	if err != nil {
		return err
	}
	elapsed := time.Since(start)

	fmt.Printf("Path:       %s\n", cfg.Motion.Path)
	fmt.Printf("Cap style:  %s\n", cfg.Tube.CapStyle)
	fmt.Printf("Ring size:  %d\n", cfg.Tube.RingSegmentCount)
	fmt.Printf("Frames:     %d\n", *frames)
	fmt.Printf("Samples:    %d\n", trail.Len())
	fmt.Printf("Uploads:    %d\n", mesh.Uploads)
	fmt.Printf("Vertices:   %d\n", len(mesh.Vertices))
	fmt.Printf("Triangles:  %d\n", len(mesh.Indices)/3)
	fmt.Printf("Time:       %v (%.3f ms/upload)\n", elapsed, perUpload(elapsed, mesh.Uploads))
	return nil
}

func perUpload(d time.Duration, uploads int) float64 {
	if uploads == 0 {
		return 0
	}
	return float64(d.Microseconds()) / 1000 / float64(uploads)
}

func cmdConfig(cfg *config.Config, args []string) error {
	if len(args) == 0 {
		return cfg.Save()
	}
	return cfg.SaveTo(args[0])
}
