// Package motion moves the reference point that a tube trail follows.
package motion

import (
	"fmt"

	"github.com/chewxy/math32"

	"github.com/Faultbox/tubetrail/internal/config"
	"github.com/Faultbox/tubetrail/pkg/math"
)

// Path is a position as a function of time.
type Path interface {
	At(t float32) math.Vec3
}

// Helix winds around the Y axis, rising Pitch per turn.
type Helix struct {
	Radius float32
	Pitch  float32
}

// At returns the helix position after t radians of rotation.
func (h Helix) At(t float32) math.Vec3 {
	sin, cos := math32.Sincos(t)
	return math.Vec3{
		X: h.Radius * cos,
		Y: h.Pitch * t / (2 * math32.Pi),
		Z: h.Radius * sin,
	}
}

// Lissajous traces a closed 3D Lissajous knot.
type Lissajous struct {
	Amplitude float32
	A, B, C   float32 // Frequencies per axis
}

// At returns the curve position at t.
func (l Lissajous) At(t float32) math.Vec3 {
	return math.Vec3{
		X: l.Amplitude * math32.Sin(l.A*t+math32.Pi/2),
		Y: l.Amplitude * math32.Sin(l.B*t),
		Z: l.Amplitude * math32.Sin(l.C*t+math32.Pi/4),
	}
}

// Line moves at constant velocity from Origin.
type Line struct {
	Origin    math.Vec3
	Direction math.Vec3
}

// At returns Origin + Direction*t.
func (l Line) At(t float32) math.Vec3 {
	return l.Origin.Add(l.Direction.Scale(t))
}

// PathFromConfig builds the path named in cfg.
func PathFromConfig(cfg config.MotionConfig) (Path, error) {
	switch cfg.Path {
	case "helix":
		return Helix{Radius: cfg.Radius, Pitch: cfg.Pitch}, nil
	case "lissajous":
		return Lissajous{Amplitude: cfg.Radius, A: 3, B: 2, C: 5}, nil
	case "line":
		return Line{Direction: math.Vec3{X: 1, Y: 0.25, Z: 0.5}}, nil
	default:
		return nil, fmt.Errorf("unknown motion path %q", cfg.Path)
	}
}

// Sampler advances along a path one frame at a time, like a transform that
// is read once per frame.
type Sampler struct {
	path  Path
	speed float32
	t     float32
}

// NewSampler starts at time 0 on path, moving speed time units per second.
func NewSampler(path Path, speed float32) *Sampler {
	return &Sampler{path: path, speed: speed}
}

// Position returns the current position.
func (s *Sampler) Position() math.Vec3 {
	return s.path.At(s.t)
}

// Step advances by dt seconds and returns the new position.
func (s *Sampler) Step(dt float32) math.Vec3 {
	s.t += dt * s.speed
	return s.Position()
}

// Time returns the current path time.
func (s *Sampler) Time() float32 {
	return s.t
}

// Reset returns to time 0.
func (s *Sampler) Reset() {
	s.t = 0
}
