// Package mesh provides the triangle mesh model and the closed-mesh
// volume/centroid integrator used by the hydrostatic solver.
package mesh

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"
)

// Mesh is an immutable triangle mesh in local coordinates.
// Construction normalizes both storage layouts (indexed and flat vertex
// triples) into a single vertex buffer plus index buffer, so readers never
// branch on the input layout.
type Mesh struct {
	verts  []mgl64.Vec3
	tris   []uint32 // 3 indices per triangle
	bounds AABB
}

// New builds a mesh from a flat position array (x,y,z per vertex) and an
// optional index array. A nil index consumes vertices in consecutive triples.
func New(positions []float64, indices []uint32) (*Mesh, error) {
	if len(positions)%3 != 0 {
		return nil, fmt.Errorf("mesh: position count %d is not a multiple of 3", len(positions))
	}

	verts := make([]mgl64.Vec3, len(positions)/3)
	for i := range verts {
		verts[i] = mgl64.Vec3{positions[i*3], positions[i*3+1], positions[i*3+2]}
	}

	return FromVecs(verts, indices)
}

// FromVecs builds a mesh from vertex positions and an optional index array.
func FromVecs(verts []mgl64.Vec3, indices []uint32) (*Mesh, error) {
	var tris []uint32
	if indices == nil {
		if len(verts)%3 != 0 {
			return nil, fmt.Errorf("mesh: unindexed vertex count %d is not a multiple of 3", len(verts))
		}
		tris = make([]uint32, len(verts))
		for i := range tris {
			tris[i] = uint32(i)
		}
	} else {
		if len(indices)%3 != 0 {
			return nil, fmt.Errorf("mesh: index count %d is not a multiple of 3", len(indices))
		}
		tris = make([]uint32, len(indices))
		for i, idx := range indices {
			if int(idx) >= len(verts) {
				return nil, fmt.Errorf("mesh: index %d out of range (%d vertices)", idx, len(verts))
			}
			tris[i] = idx
		}
	}

	m := &Mesh{verts: verts, tris: tris}
	m.bounds = computeBounds(verts)

	return m, nil
}

func computeBounds(verts []mgl64.Vec3) AABB {
	if len(verts) == 0 {
		return AABB{}
	}

	bounds := AABB{Min: verts[0], Max: verts[0]}
	for _, v := range verts[1:] {
		bounds = bounds.Extend(v)
	}

	return bounds
}

// VertexCount returns the number of vertices.
func (m *Mesh) VertexCount() int {
	return len(m.verts)
}

// TriangleCount returns the number of triangles.
func (m *Mesh) TriangleCount() int {
	return len(m.tris) / 3
}

// Triangle returns the three corners of triangle i in local space.
func (m *Mesh) Triangle(i int) (p1, p2, p3 mgl64.Vec3) {
	return m.verts[m.tris[i*3]], m.verts[m.tris[i*3+1]], m.verts[m.tris[i*3+2]]
}

// Vertices returns the vertex buffer. Callers must not modify it.
func (m *Mesh) Vertices() []mgl64.Vec3 {
	return m.verts
}

// Indices returns the normalized index buffer, 3 entries per triangle.
// Callers must not modify it.
func (m *Mesh) Indices() []uint32 {
	return m.tris
}

// Bounds returns the local-space bounding box, computed at construction.
func (m *Mesh) Bounds() AABB {
	return m.bounds
}
