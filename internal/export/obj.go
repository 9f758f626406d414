// Package export stores generated tube meshes and writes them to files.
package export

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"slices"

	"github.com/Faultbox/tubetrail/internal/tube"
	"github.com/Faultbox/tubetrail/pkg/math"
)

// ErrEmptyMesh is returned when there is nothing to write.
var ErrEmptyMesh = errors.New("mesh has no geometry")

// Mesh is an in-memory tube.RenderTarget. It copies what it receives so the
// data stays valid after the next regeneration.
type Mesh struct {
	Vertices []math.Vec3
	Normals  []math.Vec3
	UVs      []math.Vec2
	Indices  []uint32
	Uploads  int // Number of times Clear was called
}

var _ tube.RenderTarget = (*Mesh)(nil)

// Clear implements tube.RenderTarget.
func (m *Mesh) Clear() {
	m.Vertices = m.Vertices[:0]
	m.Normals = m.Normals[:0]
	m.UVs = m.UVs[:0]
	m.Indices = m.Indices[:0]
	m.Uploads++
}

// SetVertices implements tube.RenderTarget.
func (m *Mesh) SetVertices(vertices []math.Vec3) {
	m.Vertices = append(m.Vertices[:0], vertices...)
}

// SetNormals implements tube.RenderTarget.
func (m *Mesh) SetNormals(normals []math.Vec3) {
	m.Normals = append(m.Normals[:0], normals...)
}

// SetUVs implements tube.RenderTarget. Only channel 0 is kept.
func (m *Mesh) SetUVs(channel int, uvs []math.Vec2) {
	if channel != 0 {
		return
	}
	m.UVs = append(m.UVs[:0], uvs...)
}

// SetIndices implements tube.RenderTarget.
func (m *Mesh) SetIndices(indices []uint32, topology tube.Topology) {
	if topology != tube.TopologyTriangles {
		return
	}
	m.Indices = append(m.Indices[:0], indices...)
}

// Buffers returns a copy of the stored mesh.
func (m *Mesh) Buffers() tube.MeshBuffers {
	return tube.MeshBuffers{
		Vertices: slices.Clone(m.Vertices),
		Normals:  slices.Clone(m.Normals),
		UVs:      slices.Clone(m.UVs),
		Indices:  slices.Clone(m.Indices),
	}
}

// WriteOBJ writes the mesh as a Wavefront OBJ stream with positions,
// texture coordinates and normals.
func (m *Mesh) WriteOBJ(w io.Writer, name string) error {
	return WriteOBJ(w, name, m.Buffers())
}

// WriteOBJ writes buf as a Wavefront OBJ stream.
func WriteOBJ(w io.Writer, name string, buf tube.MeshBuffers) error {
	if buf.Empty() {
		return ErrEmptyMesh
	}
	if len(buf.Normals) != len(buf.Vertices) || len(buf.UVs) != len(buf.Vertices) {
		return fmt.Errorf("mismatched buffers: %d vertices, %d normals, %d uvs",
			len(buf.Vertices), len(buf.Normals), len(buf.UVs))
	}

	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "# tubetrail mesh: %d vertices, %d triangles\n", len(buf.Vertices), buf.TriangleCount())
	if name != "" {
		fmt.Fprintf(bw, "o %s\n", name)
	}
	for _, v := range buf.Vertices {
		fmt.Fprintf(bw, "v %g %g %g\n", v.X, v.Y, v.Z)
	}
	for _, uv := range buf.UVs {
		fmt.Fprintf(bw, "vt %g %g\n", uv.X, uv.Y)
	}
	for _, n := range buf.Normals {
		fmt.Fprintf(bw, "vn %g %g %g\n", n.X, n.Y, n.Z)
	}
	// OBJ indices are 1-based; position, UV and normal share the index.
	for i := 0; i+2 < len(buf.Indices); i += 3 {
		a, b, c := buf.Indices[i]+1, buf.Indices[i+1]+1, buf.Indices[i+2]+1
		fmt.Fprintf(bw, "f %d/%d/%d %d/%d/%d %d/%d/%d\n", a, a, a, b, b, b, c, c, c)
	}
	return bw.Flush()
}
