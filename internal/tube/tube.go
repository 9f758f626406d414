// Package tube builds triangulated tube meshes around a centerline of samples.
//
// A Generator expands the raw samples with end-cap points, then computes one
// ring of vertices per sample in parallel and stitches neighbouring rings with
// triangles. A Trail feeds a Generator from a moving point and uploads every
// regenerated mesh to a RenderTarget.
package tube

import (
	"errors"
	"fmt"
	"strings"

	"github.com/chewxy/math32"

	"github.com/Faultbox/tubetrail/pkg/math"
)

var (
	// ErrInvalidConfig is returned for configurations that cannot produce a mesh.
	ErrInvalidConfig = errors.New("invalid tube config")
	// ErrMeshTooLarge is returned when the output buffers cannot be allocated.
	ErrMeshTooLarge = errors.New("mesh too large")
	// ErrClosed is returned by a Generator after Close.
	ErrClosed = errors.New("generator closed")
)

// Sample is one centerline point of the tube.
type Sample struct {
	Position math.Vec3
	Radius   float32
}

// CapStyle selects how the ends of the tube are closed.
type CapStyle int

const (
	// CapOpen leaves both ends open.
	CapOpen CapStyle = iota
	// CapFlat closes each end with a near-flat zero-radius ring.
	CapFlat
	// CapCapsule closes each end with a rounded dome.
	CapCapsule
)

var capStyleNames = [...]string{
	CapOpen:    "open",
	CapFlat:    "flat",
	CapCapsule: "capsule",
}

// String returns the lower-case name of the cap style.
func (c CapStyle) String() string {
	if c.Valid() {
		return capStyleNames[c]
	}
	return fmt.Sprintf("CapStyle(%d)", int(c))
}

// Valid reports whether c is a known cap style.
func (c CapStyle) Valid() bool {
	return c >= CapOpen && c <= CapCapsule
}

// MarshalText implements encoding.TextMarshaler.
func (c CapStyle) MarshalText() ([]byte, error) {
	if !c.Valid() {
		return nil, fmt.Errorf("%w: unknown cap style %d", ErrInvalidConfig, int(c))
	}
	return []byte(capStyleNames[c]), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (c *CapStyle) UnmarshalText(text []byte) error {
	style, err := ParseCapStyle(string(text))
	if err != nil {
		return err
	}
	*c = style
	return nil
}

// ParseCapStyle parses a cap style name, ignoring case.
func ParseCapStyle(name string) (CapStyle, error) {
	for i, n := range capStyleNames {
		if strings.EqualFold(name, n) {
			return CapStyle(i), nil
		}
	}
	return CapOpen, fmt.Errorf("%w: unknown cap style %q", ErrInvalidConfig, name)
}

// Config holds the tube shape parameters.
type Config struct {
	CapStyle         CapStyle `yaml:"cap_style"`
	CapSampleCount   int      `yaml:"cap_sample_count"`   // Cap points per end (capsule only)
	RingSegmentCount int      `yaml:"ring_segment_count"` // Vertices per ring, seam included
	CapExtent        float32  `yaml:"cap_extent"`         // How far the capsule dome protrudes
}

// DefaultConfig returns the default tube shape.
func DefaultConfig() Config {
	return Config{
		CapStyle:         CapOpen,
		CapSampleCount:   6,
		RingSegmentCount: 5,
		CapExtent:        0.5,
	}
}

// Validate checks that the configuration can produce a mesh.
func (c Config) Validate() error {
	if !c.CapStyle.Valid() {
		return fmt.Errorf("%w: unknown cap style %d", ErrInvalidConfig, int(c.CapStyle))
	}
	if c.RingSegmentCount < 2 {
		return fmt.Errorf("%w: ring_segment_count %d < 2", ErrInvalidConfig, c.RingSegmentCount)
	}
	if c.CapSampleCount < 1 {
		return fmt.Errorf("%w: cap_sample_count %d < 1", ErrInvalidConfig, c.CapSampleCount)
	}
	if c.CapExtent < 0 || math32.IsNaN(c.CapExtent) || math32.IsInf(c.CapExtent, 0) {
		return fmt.Errorf("%w: cap_extent %v", ErrInvalidConfig, c.CapExtent)
	}
	return nil
}

// CapPadding returns how many samples Expand adds for this configuration.
func (c Config) CapPadding() int {
	switch c.CapStyle {
	case CapFlat:
		return 2
	case CapCapsule:
		return 2 * c.CapSampleCount
	default:
		return 0
	}
}

// MeshBuffers holds generated mesh data ready for upload.
// Vertices, Normals and UVs are parallel arrays.
type MeshBuffers struct {
	Vertices []math.Vec3
	Normals  []math.Vec3
	UVs      []math.Vec2
	Indices  []uint32
}

// Empty reports whether the buffers hold no geometry.
func (m MeshBuffers) Empty() bool {
	return len(m.Vertices) == 0
}

// TriangleCount returns the number of triangles described by Indices.
func (m MeshBuffers) TriangleCount() int {
	return len(m.Indices) / 3
}
