package tube

import (
	"github.com/Faultbox/tubetrail/pkg/math"
)

// ComputeRing fills the ring of vertices, normals and UVs for samples[index]
// and, unless index is the last sample, the triangles joining it to the next
// ring.
//
// It writes only the slots belonging to index, so calls for different
// indices may run concurrently on the same out. out must be sized for
// len(samples) rings of len(ring) vertices. With fewer than 2 samples there
// is no tangent and ComputeRing does nothing.
func ComputeRing(index int, samples []Sample, ring RingTemplate, out *MeshBuffers) {
	n := len(samples)
	r := len(ring)
	if n < 2 || r < 2 || index < 0 || index >= n {
		return
	}

	p := samples[index]
	last := index == n-1

	// The last ring reuses the incoming segment direction.
	var dir math.Vec3
	if last {
		dir = p.Position.Sub(samples[index-1].Position)
	} else {
		dir = samples[index+1].Position.Sub(p.Position)
	}
	rot := math.LookRotationSafe(dir, math.Up3)

	u := float32(index) / float32(n-1)
	base := index * r
	for i, c := range ring {
		normal := rot.Rotate(c)
		out.Vertices[base+i] = p.Position.Add(normal.Scale(p.Radius))
		out.Normals[base+i] = normal
		out.UVs[base+i] = math.Vec2{X: u, Y: float32(i) / float32(r-1)}
	}

	if last {
		return
	}

	tris := out.Indices[6*(r-1)*index:]
	cur := uint32(base)
	next := uint32(base + r)
	for i := range uint32(r - 1) {
		k := 6 * i
		tris[k+0] = cur + i
		tris[k+1] = cur + i + 1
		tris[k+2] = next + i
		tris[k+3] = next + i
		tris[k+4] = cur + i + 1
		tris[k+5] = next + i + 1
	}
}
