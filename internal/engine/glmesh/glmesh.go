// Package glmesh uploads tube meshes to OpenGL buffers.
package glmesh

import (
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"

	"github.com/Faultbox/tubetrail/internal/tube"
	"github.com/Faultbox/tubetrail/pkg/math"
)

// Attribute locations used by the tube shader.
const (
	AttribPosition = 0
	AttribNormal   = 1
	AttribUV       = 2
)

// Mesh is a tube.RenderTarget backed by a VAO with one buffer per attribute
// and an element buffer. It must be used on the GL thread.
type Mesh struct {
	vao        uint32
	positions  uint32
	normals    uint32
	uvs        uint32
	ebo        uint32
	indexCount int32
}

var _ tube.RenderTarget = (*Mesh)(nil)

// New creates the GL objects for an empty mesh.
func New() *Mesh {
	m := &Mesh{}
	gl.GenVertexArrays(1, &m.vao)
	gl.GenBuffers(1, &m.positions)
	gl.GenBuffers(1, &m.normals)
	gl.GenBuffers(1, &m.uvs)
	gl.GenBuffers(1, &m.ebo)

	gl.BindVertexArray(m.vao)
	bindAttrib(m.positions, AttribPosition, 3)
	bindAttrib(m.normals, AttribNormal, 3)
	bindAttrib(m.uvs, AttribUV, 2)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, m.ebo)
	gl.BindVertexArray(0)
	return m
}

func bindAttrib(buffer, location uint32, size int32) {
	gl.BindBuffer(gl.ARRAY_BUFFER, buffer)
	gl.EnableVertexAttribArray(location)
	gl.VertexAttribPointerWithOffset(location, size, gl.FLOAT, false, 0, 0)
}

// Clear implements tube.RenderTarget.
func (m *Mesh) Clear() {
	m.indexCount = 0
}

// SetVertices implements tube.RenderTarget.
func (m *Mesh) SetVertices(vertices []math.Vec3) {
	upload(gl.ARRAY_BUFFER, m.positions, len(vertices)*int(unsafe.Sizeof(math.Vec3{})), unsafe.Pointer(unsafe.SliceData(vertices)))
}

// SetNormals implements tube.RenderTarget.
func (m *Mesh) SetNormals(normals []math.Vec3) {
	upload(gl.ARRAY_BUFFER, m.normals, len(normals)*int(unsafe.Sizeof(math.Vec3{})), unsafe.Pointer(unsafe.SliceData(normals)))
}

// SetUVs implements tube.RenderTarget. Only channel 0 is bound.
func (m *Mesh) SetUVs(channel int, uvs []math.Vec2) {
	if channel != 0 {
		return
	}
	upload(gl.ARRAY_BUFFER, m.uvs, len(uvs)*int(unsafe.Sizeof(math.Vec2{})), unsafe.Pointer(unsafe.SliceData(uvs)))
}

// SetIndices implements tube.RenderTarget.
func (m *Mesh) SetIndices(indices []uint32, topology tube.Topology) {
	if topology != tube.TopologyTriangles {
		return
	}
	gl.BindVertexArray(m.vao)
	upload(gl.ELEMENT_ARRAY_BUFFER, m.ebo, len(indices)*4, unsafe.Pointer(unsafe.SliceData(indices)))
	gl.BindVertexArray(0)
	m.indexCount = int32(len(indices))
}

func upload(target, buffer uint32, size int, data unsafe.Pointer) {
	if size == 0 {
		return
	}
	gl.BindBuffer(target, buffer)
	gl.BufferData(target, size, data, gl.DYNAMIC_DRAW)
}

// IndexCount returns the number of indices drawn.
func (m *Mesh) IndexCount() int32 {
	return m.indexCount
}

// Draw renders the mesh with the current program.
func (m *Mesh) Draw() {
	if m.indexCount == 0 {
		return
	}
	gl.BindVertexArray(m.vao)
	gl.DrawElementsWithOffset(gl.TRIANGLES, m.indexCount, gl.UNSIGNED_INT, 0)
	gl.BindVertexArray(0)
}

// Delete frees the GL objects.
func (m *Mesh) Delete() {
	buffers := []uint32{m.positions, m.normals, m.uvs, m.ebo}
	gl.DeleteBuffers(int32(len(buffers)), &buffers[0])
	gl.DeleteVertexArrays(1, &m.vao)
	*m = Mesh{}
}
