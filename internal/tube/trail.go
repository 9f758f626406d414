package tube

import (
	"fmt"
	"slices"
	"sync"

	"go.uber.org/zap"

	"github.com/Faultbox/tubetrail/pkg/math"
)

const (
	// DefaultMinDistance is how far the point must move before a new sample
	// is recorded.
	DefaultMinDistance = 0.15
	// SampleRadius is the radius given to every recorded sample.
	SampleRadius = 1.0
)

// Trail records the path of a moving point and keeps a RenderTarget updated
// with the tube along it. It is safe for concurrent use.
type Trail struct {
	mu          sync.Mutex
	gen         *Generator
	target      RenderTarget
	minDistance float32
	raw         []Sample
	log         *zap.Logger
}

// TrailOption configures a Trail.
type TrailOption func(*Trail)

// WithMinDistance sets the distance threshold for recording samples.
func WithMinDistance(d float32) TrailOption {
	return func(t *Trail) {
		t.minDistance = d
	}
}

// WithTrailLogger sets the trail logger.
func WithTrailLogger(l *zap.Logger) TrailOption {
	return func(t *Trail) {
		if l != nil {
			t.log = l
		}
	}
}

// NewTrail creates a trail that regenerates with gen and uploads to target.
func NewTrail(gen *Generator, target RenderTarget, opts ...TrailOption) *Trail {
	t := &Trail{
		gen:         gen,
		target:      target,
		minDistance: DefaultMinDistance,
		log:         zap.NewNop(),
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// AddSample records pos if it is the first point or lies farther than the
// minimum distance from the last recorded one. Once more than two samples
// exist every recorded sample regenerates the mesh. It reports whether pos
// was recorded.
func (t *Trail) AddSample(pos math.Vec3) (bool, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if n := len(t.raw); n > 0 && pos.Distance(t.raw[n-1].Position) <= t.minDistance {
		return false, nil
	}
	t.raw = append(t.raw, Sample{Position: pos, Radius: SampleRadius})

	if len(t.raw) < MinSamples {
		return true, nil
	}
	return true, t.regenerate()
}

// Regenerate rebuilds and uploads the mesh from the recorded samples.
func (t *Trail) Regenerate() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if len(t.raw) < MinSamples {
		return nil
	}
	return t.regenerate()
}

// SetConfig changes the tube shape and regenerates the mesh.
func (t *Trail) SetConfig(cfg Config) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if err := t.gen.SetConfig(cfg); err != nil {
		return err
	}
	if len(t.raw) < MinSamples {
		return nil
	}
	return t.regenerate()
}

// Config returns the generator configuration.
func (t *Trail) Config() Config {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.gen.Config()
}

func (t *Trail) regenerate() error {
	buf, err := t.gen.Generate(t.raw)
	if err != nil {
		return fmt.Errorf("regenerating trail: %w", err)
	}
	Upload(t.target, buf)
	t.log.Debug("trail uploaded",
		zap.Int("samples", len(t.raw)),
		zap.Int("triangles", buf.TriangleCount()),
	)
	return nil
}

// Reset forgets every sample and clears the target.
func (t *Trail) Reset() {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.raw = t.raw[:0]
	t.target.Clear()
}

// Len returns the number of recorded samples.
func (t *Trail) Len() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.raw)
}

// Samples returns a copy of the recorded samples.
func (t *Trail) Samples() []Sample {
	t.mu.Lock()
	defer t.mu.Unlock()
	return slices.Clone(t.raw)
}
