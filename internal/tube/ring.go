package tube

import (
	"github.com/chewxy/math32"

	"github.com/Faultbox/tubetrail/pkg/math"
)

// RingTemplate holds unit-circle offsets in the local XY plane, one per ring
// vertex. The first and last points coincide so the ring closes at a seam
// with its own UVs.
type RingTemplate []math.Vec3

// BuildRingTemplate returns the ring for segments vertices. Point i sits at
// angle i*2π/(segments-1). It returns nil for fewer than 2 segments.
func BuildRingTemplate(segments int) RingTemplate {
	if segments < 2 {
		return nil
	}
	ring := make(RingTemplate, segments)
	step := 2 * math32.Pi / float32(segments-1)
	for i := range segments - 1 {
		sin, cos := math32.Sincos(float32(i) * step)
		ring[i] = math.Vec3{X: cos, Y: sin}
	}
	// The last point is a full turn; float rounding would leave a crack.
	ring[segments-1] = ring[0]
	return ring
}
