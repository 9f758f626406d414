package tube

import (
	"sync"

	"github.com/chewxy/math32"
)

// flatCapOffset is how far the closing point of a flat cap sits past the end.
const flatCapOffset = 0.01

var samplePool = sync.Pool{
	New: func() any {
		s := make([]Sample, 0, 256)
		return &s
	},
}

// Expand returns the raw samples with cap points added for cfg.CapStyle.
// It returns nil when there are fewer than 2 raw samples, since the cap
// direction is undefined.
func Expand(raw []Sample, cfg Config) []Sample {
	return expandInto(nil, raw, cfg)
}

// expandInto appends the augmented samples to dst[:0] and returns it.
func expandInto(dst []Sample, raw []Sample, cfg Config) []Sample {
	if len(raw) < 2 {
		return nil
	}

	n := len(raw)
	total := n + cfg.CapPadding()
	if cap(dst) < total {
		dst = make([]Sample, total)
	}
	dst = dst[:total]

	switch cfg.CapStyle {
	case CapFlat:
		copy(dst[1:], raw)
		dst[0] = flatCapPoint(raw[0], raw[1])
		dst[total-1] = flatCapPoint(raw[n-1], raw[n-2])
	case CapCapsule:
		c := cfg.CapSampleCount
		copy(dst[c:], raw)
		// Head cap runs from the tip inward, tail cap from the body outward.
		for i := range c {
			dst[c-1-i] = capsulePoint(raw[0], raw[1], i, c, cfg.CapExtent)
			dst[n+c+i] = capsulePoint(raw[n-1], raw[n-2], i, c, cfg.CapExtent)
		}
	default:
		copy(dst, raw)
	}
	return dst
}

// flatCapPoint returns the zero-radius point just beyond end, away from inner.
func flatCapPoint(end, inner Sample) Sample {
	dir := end.Position.Sub(inner.Position).Normalize()
	return Sample{
		Position: end.Position.Add(dir.Scale(flatCapOffset)),
		Radius:   0,
	}
}

// capsulePoint returns the i-th of count dome points beyond end.
func capsulePoint(end, inner Sample, i, count int, extent float32) Sample {
	var t float32
	if count > 1 {
		t = float32(i) / float32(count-1)
	}
	dir := end.Position.Sub(inner.Position).Normalize()
	return Sample{
		Position: end.Position.Add(dir.Scale(easeOutQuint(t) * extent)),
		Radius:   end.Radius * (1 - t),
	}
}

// easeOutQuint starts fast and settles slowly, so dome points bunch up
// toward the tip where the radius changes fastest.
func easeOutQuint(t float32) float32 {
	return 1 - math32.Pow(1-t, 5)
}
