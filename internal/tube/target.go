package tube

import (
	"github.com/Faultbox/tubetrail/pkg/math"
)

// Topology describes how indices form primitives.
type Topology int

const (
	// TopologyTriangles treats every three indices as a triangle.
	TopologyTriangles Topology = iota
)

// RenderTarget receives generated meshes. It is implemented by the host that
// displays or stores the mesh; the tube package never owns or frees it.
type RenderTarget interface {
	Clear()
	SetVertices(vertices []math.Vec3)
	SetNormals(normals []math.Vec3)
	SetUVs(channel int, uvs []math.Vec2)
	SetIndices(indices []uint32, topology Topology)
}

// Upload clears target and hands it the buffers.
func Upload(target RenderTarget, buf MeshBuffers) {
	target.Clear()
	if buf.Empty() {
		return
	}
	target.SetVertices(buf.Vertices)
	target.SetNormals(buf.Normals)
	target.SetUVs(0, buf.UVs)
	target.SetIndices(buf.Indices, TopologyTriangles)
}
