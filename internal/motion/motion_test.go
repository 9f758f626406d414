package motion

import (
	"testing"

	"github.com/chewxy/math32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Faultbox/tubetrail/internal/config"
	"github.com/Faultbox/tubetrail/pkg/math"
)

func TestHelix(t *testing.T) {
	h := Helix{Radius: 2, Pitch: 3}

	assert.True(t, h.At(0).ApproxEqual(math.Vec3{X: 2}, 1e-6))
	assert.True(t, h.At(2*math32.Pi).ApproxEqual(math.Vec3{X: 2, Y: 3}, 1e-5))

	for _, tm := range []float32{0.1, 1, 4, 9} {
		p := h.At(tm)
		assert.InDelta(t, 2, math32.Sqrt(p.X*p.X+p.Z*p.Z), 1e-5)
	}
}

func TestLine(t *testing.T) {
	l := Line{Origin: math.Vec3{X: 1}, Direction: math.Vec3{Z: 2}}
	assert.Equal(t, math.Vec3{X: 1, Z: 5}, l.At(2.5))
}

func TestPathFromConfig(t *testing.T) {
	cfg := config.Default().Motion

	for _, name := range []string{"helix", "lissajous", "line"} {
		cfg.Path = name
		p, err := PathFromConfig(cfg)
		require.NoError(t, err, name)
		assert.NotNil(t, p)
	}

	cfg.Path = "spiral"
	_, err := PathFromConfig(cfg)
	assert.Error(t, err)
}

func TestSamplerStep(t *testing.T) {
	s := NewSampler(Line{Direction: math.Vec3{X: 1}}, 2)

	assert.Equal(t, math.Vec3{}, s.Position())
	assert.Equal(t, math.Vec3{X: 1}, s.Step(0.5))
	assert.Equal(t, math.Vec3{X: 2}, s.Step(0.5))
	assert.Equal(t, float32(2), s.Time())

	s.Reset()
	assert.Equal(t, math.Vec3{}, s.Position())
}
