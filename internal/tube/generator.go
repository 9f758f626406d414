package tube

import (
	"fmt"
	gomath "math"
	"runtime"
	"slices"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/Faultbox/tubetrail/pkg/math"
)

// MinSamples is the fewest raw samples Generate turns into a mesh.
const MinSamples = 3

// DefaultMaxVertices caps the vertex count of a single mesh.
const DefaultMaxVertices = 1 << 24

// Generator turns raw samples into mesh buffers. It owns the ring template
// for its configuration.
//
// A Generator is not safe for concurrent use; Trail serializes access.
type Generator struct {
	cfg         Config
	ring        RingTemplate
	workers     int
	maxVertices int
	log         *zap.Logger
}

// Option configures a Generator.
type Option func(*Generator)

// WithLogger sets the logger used for regeneration diagnostics.
func WithLogger(l *zap.Logger) Option {
	return func(g *Generator) {
		if l != nil {
			g.log = l
		}
	}
}

// WithWorkers sets how many goroutines compute rings. Values below 1 mean
// GOMAXPROCS.
func WithWorkers(n int) Option {
	return func(g *Generator) {
		g.workers = n
	}
}

// WithMaxVertices limits the vertex count of a generated mesh. Values below 1
// leave only the uint32 index range as the limit.
func WithMaxVertices(n int) Option {
	return func(g *Generator) {
		g.maxVertices = n
	}
}

// New creates a Generator for cfg.
func New(cfg Config, opts ...Option) (*Generator, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	g := &Generator{
		cfg:         cfg,
		maxVertices: DefaultMaxVertices,
		log:         zap.NewNop(),
	}
	for _, opt := range opts {
		opt(g)
	}
	if g.workers < 1 {
		g.workers = runtime.GOMAXPROCS(0)
	}

	g.ring = BuildRingTemplate(cfg.RingSegmentCount)
	g.log.Debug("tube generator created",
		zap.Stringer("cap_style", cfg.CapStyle),
		zap.Int("ring_segments", cfg.RingSegmentCount),
		zap.Int("workers", g.workers),
	)
	return g, nil
}

// Config returns the current configuration.
func (g *Generator) Config() Config {
	return g.cfg
}

// RingTemplate returns a copy of the ring template.
func (g *Generator) RingTemplate() RingTemplate {
	return slices.Clone(g.ring)
}

// SetConfig replaces the configuration. The ring template is rebuilt only
// when the ring segment count changes.
func (g *Generator) SetConfig(cfg Config) error {
	if g.ring == nil {
		return ErrClosed
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	if cfg.RingSegmentCount != len(g.ring) {
		g.ring = BuildRingTemplate(cfg.RingSegmentCount)
		g.log.Debug("ring template rebuilt", zap.Int("ring_segments", cfg.RingSegmentCount))
	}
	g.cfg = cfg
	return nil
}

// Close releases the ring template. Generate and SetConfig fail afterwards.
func (g *Generator) Close() {
	g.ring = nil
}

// Generate builds mesh buffers for raw. With fewer than MinSamples samples it
// returns empty buffers and no error. The returned buffers belong to the
// caller.
func (g *Generator) Generate(raw []Sample) (MeshBuffers, error) {
	if g.ring == nil {
		return MeshBuffers{}, ErrClosed
	}
	if len(raw) < MinSamples {
		return MeshBuffers{}, nil
	}

	start := time.Now()

	scratch := samplePool.Get().(*[]Sample)
	defer func() {
		*scratch = (*scratch)[:0]
		samplePool.Put(scratch)
	}()
	samples := expandInto(*scratch, raw, g.cfg)
	*scratch = samples

	vertexCount, indexCount, err := bufferSizes(len(samples), len(g.ring), g.maxVertices)
	if err != nil {
		return MeshBuffers{}, fmt.Errorf("generating %d samples: %w", len(samples), err)
	}

	out := MeshBuffers{
		Vertices: make([]math.Vec3, vertexCount),
		Normals:  make([]math.Vec3, vertexCount),
		UVs:      make([]math.Vec2, vertexCount),
		Indices:  make([]uint32, indexCount),
	}
	g.computeRings(samples, &out)

	g.log.Debug("tube regenerated",
		zap.Int("raw_samples", len(raw)),
		zap.Int("samples", len(samples)),
		zap.Int("vertices", vertexCount),
		zap.Int("indices", indexCount),
		zap.Duration("took", time.Since(start)),
	)
	return out, nil
}

// computeRings runs ComputeRing for every sample on the worker pool and
// returns once all rings are written.
func (g *Generator) computeRings(samples []Sample, out *MeshBuffers) {
	n := len(samples)
	workers := min(g.workers, n)
	if workers <= 1 {
		for i := range n {
			ComputeRing(i, samples, g.ring, out)
		}
		return
	}

	chunk := (n + workers - 1) / workers
	var wg sync.WaitGroup
	for lo := 0; lo < n; lo += chunk {
		hi := min(lo+chunk, n)
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := lo; i < hi; i++ {
				ComputeRing(i, samples, g.ring, out)
			}
		}()
	}
	wg.Wait()
}

// bufferSizes returns the vertex and index counts for n samples of r ring
// vertices, or ErrMeshTooLarge when they cannot be addressed.
func bufferSizes(n, r, maxVertices int) (vertices, indices int, err error) {
	v := uint64(n) * uint64(r)
	if v > gomath.MaxUint32 || v > uint64(gomath.MaxInt) {
		return 0, 0, fmt.Errorf("%w: %d vertices exceed the index range", ErrMeshTooLarge, v)
	}
	if maxVertices > 0 && v > uint64(maxVertices) {
		return 0, 0, fmt.Errorf("%w: %d vertices, limit %d", ErrMeshTooLarge, v, maxVertices)
	}
	idx := 6 * uint64(r-1) * uint64(n-1)
	if idx > uint64(gomath.MaxInt) {
		return 0, 0, fmt.Errorf("%w: %d indices", ErrMeshTooLarge, idx)
	}
	return int(v), int(idx), nil
}
