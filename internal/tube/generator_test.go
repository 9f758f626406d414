package tube

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/Faultbox/tubetrail/pkg/math"
)

// wavyPath returns n samples along a gently curving path.
func wavyPath(n int) []Sample {
	s := make([]Sample, n)
	for i := range s {
		f := float32(i)
		s[i] = Sample{
			Position: math.Vec3{X: f * 0.3, Y: 0.2 * f * f / float32(n), Z: f * 0.5},
			Radius:   1,
		}
	}
	return s
}

func newGenerator(t *testing.T, cfg Config, opts ...Option) *Generator {
	t.Helper()
	g, err := New(cfg, opts...)
	require.NoError(t, err)
	t.Cleanup(g.Close)
	return g
}

func TestGenerateBufferSizes(t *testing.T) {
	tests := []struct {
		name    string
		style   CapStyle
		caps    int
		rings   int
		raw     int
		samples int
	}{
		{"open", CapOpen, 6, 4, 3, 3},
		{"open many", CapOpen, 6, 12, 40, 40},
		{"flat", CapFlat, 6, 5, 10, 12},
		{"capsule", CapCapsule, 6, 5, 10, 22},
		{"capsule single cap point", CapCapsule, 1, 2, 3, 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Config{CapStyle: tt.style, CapSampleCount: tt.caps, RingSegmentCount: tt.rings, CapExtent: 0.5}
			g := newGenerator(t, cfg)

			buf, err := g.Generate(wavyPath(tt.raw))
			require.NoError(t, err)

			n, r := tt.samples, tt.rings
			assert.Len(t, buf.Vertices, n*r)
			assert.Len(t, buf.Normals, n*r)
			assert.Len(t, buf.UVs, n*r)
			assert.Len(t, buf.Indices, 6*(r-1)*(n-1))
			for _, idx := range buf.Indices {
				assert.Less(t, int(idx), n*r)
			}
		})
	}
}

func TestGenerateStraightTube(t *testing.T) {
	cfg := Config{CapStyle: CapOpen, CapSampleCount: 1, RingSegmentCount: 4, CapExtent: 0}
	g := newGenerator(t, cfg)

	buf, err := g.Generate(straightLine(3))
	require.NoError(t, err)

	assert.Len(t, buf.Vertices, 12)
	assert.Len(t, buf.Indices, 36)
	assert.Equal(t, 12, buf.TriangleCount())
	for _, v := range buf.Vertices[4:8] {
		assert.InDelta(t, 1, v.Distance(math.Vec3{Z: 1}), 1e-6)
	}
}

func TestGenerateTooFewSamples(t *testing.T) {
	g := newGenerator(t, DefaultConfig())

	for n := range MinSamples {
		buf, err := g.Generate(straightLine(n))
		require.NoError(t, err)
		assert.True(t, buf.Empty())
		assert.Nil(t, buf.Indices)
	}
}

func TestGenerateIdempotent(t *testing.T) {
	cfg := Config{CapStyle: CapCapsule, CapSampleCount: 6, RingSegmentCount: 9, CapExtent: 0.5}
	g := newGenerator(t, cfg)
	raw := wavyPath(50)

	first, err := g.Generate(raw)
	require.NoError(t, err)
	second, err := g.Generate(raw)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestGenerateWorkerCountIndependent(t *testing.T) {
	cfg := Config{CapStyle: CapFlat, CapSampleCount: 1, RingSegmentCount: 7, CapExtent: 0}
	raw := wavyPath(97)

	serial, err := newGenerator(t, cfg, WithWorkers(1)).Generate(raw)
	require.NoError(t, err)
	parallel, err := newGenerator(t, cfg, WithWorkers(8)).Generate(raw)
	require.NoError(t, err)

	assert.Equal(t, serial, parallel)
}

func TestGenerateMeshTooLarge(t *testing.T) {
	cfg := Config{CapStyle: CapOpen, CapSampleCount: 1, RingSegmentCount: 10, CapExtent: 0}
	g := newGenerator(t, cfg, WithMaxVertices(100))

	_, err := g.Generate(straightLine(10))
	require.NoError(t, err)

	buf, err := g.Generate(straightLine(11))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrMeshTooLarge))
	assert.True(t, buf.Empty())
}

func TestBufferSizesIndexRange(t *testing.T) {
	_, _, err := bufferSizes(1<<20, 1<<13, 0)
	assert.ErrorIs(t, err, ErrMeshTooLarge)

	v, idx, err := bufferSizes(3, 4, 0)
	require.NoError(t, err)
	assert.Equal(t, 12, v)
	assert.Equal(t, 36, idx)
}

func TestNewInvalidConfig(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
	}{
		{"ring too small", Config{CapStyle: CapOpen, CapSampleCount: 1, RingSegmentCount: 1}},
		{"no cap samples", Config{CapStyle: CapCapsule, CapSampleCount: 0, RingSegmentCount: 4}},
		{"unknown style", Config{CapStyle: CapStyle(7), CapSampleCount: 1, RingSegmentCount: 4}},
		{"negative extent", Config{CapStyle: CapCapsule, CapSampleCount: 2, RingSegmentCount: 4, CapExtent: -1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g, err := New(tt.cfg)
			assert.Nil(t, g)
			assert.ErrorIs(t, err, ErrInvalidConfig)
		})
	}
}

func TestSetConfig(t *testing.T) {
	g := newGenerator(t, DefaultConfig(), WithLogger(zap.NewNop()))
	raw := straightLine(5)

	cfg := g.Config()
	cfg.RingSegmentCount = 9
	cfg.CapStyle = CapFlat
	require.NoError(t, g.SetConfig(cfg))
	assert.Len(t, g.RingTemplate(), 9)

	buf, err := g.Generate(raw)
	require.NoError(t, err)
	assert.Len(t, buf.Vertices, 7*9)

	bad := cfg
	bad.RingSegmentCount = 0
	assert.ErrorIs(t, g.SetConfig(bad), ErrInvalidConfig)
	assert.Equal(t, cfg, g.Config(), "a rejected config leaves the old one in place")
}

func TestGeneratorClose(t *testing.T) {
	g, err := New(DefaultConfig())
	require.NoError(t, err)
	g.Close()

	_, err = g.Generate(straightLine(4))
	assert.ErrorIs(t, err, ErrClosed)
	assert.ErrorIs(t, g.SetConfig(DefaultConfig()), ErrClosed)
}

func TestCapStyleText(t *testing.T) {
	for _, style := range []CapStyle{CapOpen, CapFlat, CapCapsule} {
		text, err := style.MarshalText()
		require.NoError(t, err)

		var got CapStyle
		require.NoError(t, got.UnmarshalText(text))
		assert.Equal(t, style, got)
	}

	got, err := ParseCapStyle("Capsule")
	require.NoError(t, err)
	assert.Equal(t, CapCapsule, got)

	_, err = ParseCapStyle("round")
	assert.ErrorIs(t, err, ErrInvalidConfig)
	assert.Equal(t, "CapStyle(9)", CapStyle(9).String())
}
