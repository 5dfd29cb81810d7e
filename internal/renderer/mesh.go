// internal/renderer/mesh.go
//
// GPU-side mirror of a mesh region. Regions deform every frame from
// physics and morph targets, so positions live in a dynamic buffer that
// Sync re-uploads; the simulation side never touches GL state.
package renderer

import (
	"github.com/go-gl/gl/v4.1-core/gl"

	"github.com/normanking/animrig/internal/mesh"
)

const floatsPerVertex = 6 // position + normal

// Mesh holds the GL objects for one region
type Mesh struct {
	vao uint32
	vbo uint32
	ebo uint32

	vertexCount int
	indexCount  int32
	mode        uint32

	scratch []float32
}

// NewMesh uploads a region's geometry. Regions with triangle indices
// draw as surfaces; strand regions without them draw their constraint
// topology as line segments.
func NewMesh(region *mesh.Region) *Mesh {
	m := &Mesh{
		vertexCount: len(region.Vertices),
		mode:        gl.TRIANGLES,
	}

	indices := region.Indices
	if len(indices) == 0 {
		m.mode = gl.LINES
		indices = make([]uint32, 0, len(region.Topology)*2)
		for _, pair := range region.Topology {
			indices = append(indices, uint32(pair[0]), uint32(pair[1]))
		}
	}
	m.indexCount = int32(len(indices))

	m.scratch = make([]float32, m.vertexCount*floatsPerVertex)
	m.fillScratch(region)

	gl.GenVertexArrays(1, &m.vao)
	gl.BindVertexArray(m.vao)

	gl.GenBuffers(1, &m.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, m.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(m.scratch)*4, gl.Ptr(m.scratch), gl.DYNAMIC_DRAW)

	stride := int32(floatsPerVertex * 4)
	gl.VertexAttribPointerWithOffset(0, 3, gl.FLOAT, false, stride, 0)
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointerWithOffset(1, 3, gl.FLOAT, false, stride, 3*4)
	gl.EnableVertexAttribArray(1)

	if m.indexCount > 0 {
		gl.GenBuffers(1, &m.ebo)
		gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, m.ebo)
		gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(indices)*4, gl.Ptr(indices), gl.STATIC_DRAW)
	}

	gl.BindVertexArray(0)

	return m
}

func (m *Mesh) fillScratch(region *mesh.Region) {
	for i := 0; i < m.vertexCount && i < len(region.Vertices); i++ {
		pos := region.PositionAt(i)
		normal := region.Vertices[i].Normal

		base := i * floatsPerVertex
		m.scratch[base+0] = pos.X()
		m.scratch[base+1] = pos.Y()
		m.scratch[base+2] = pos.Z()
		m.scratch[base+3] = normal.X()
		m.scratch[base+4] = normal.Y()
		m.scratch[base+5] = normal.Z()
	}
}

// Sync re-uploads the region's current deformed positions.
func (m *Mesh) Sync(region *mesh.Region) {
	m.fillScratch(region)
	gl.BindBuffer(gl.ARRAY_BUFFER, m.vbo)
	gl.BufferSubData(gl.ARRAY_BUFFER, 0, len(m.scratch)*4, gl.Ptr(m.scratch))
}

// Draw issues the draw call for this mesh
func (m *Mesh) Draw() {
	if m.indexCount == 0 {
		return
	}
	gl.BindVertexArray(m.vao)
	gl.DrawElementsWithOffset(m.mode, m.indexCount, gl.UNSIGNED_INT, 0)
	gl.BindVertexArray(0)
}

// Triangles reports how many triangles a Draw call emits
func (m *Mesh) Triangles() int {
	if m.mode != gl.TRIANGLES {
		return 0
	}
	return int(m.indexCount / 3)
}

// Delete releases the GL objects
func (m *Mesh) Delete() {
	gl.DeleteVertexArrays(1, &m.vao)
	gl.DeleteBuffers(1, &m.vbo)
	if m.ebo != 0 {
		gl.DeleteBuffers(1, &m.ebo)
	}
}
