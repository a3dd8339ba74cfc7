package mesh

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Box returns a closed box mesh centered at the origin with the given full
// extents and outward-facing winding.
func Box(sx, sy, sz float64) *Mesh {
	hx, hy, hz := sx/2, sy/2, sz/2

	verts := []mgl64.Vec3{
		{-hx, -hy, -hz},
		{+hx, -hy, -hz},
		{-hx, +hy, -hz},
		{+hx, +hy, -hz},
		{-hx, -hy, +hz},
		{+hx, -hy, +hz},
		{-hx, +hy, +hz},
		{+hx, +hy, +hz},
	}

	indices := []uint32{
		4, 5, 7, 4, 7, 6, // +z
		0, 2, 3, 0, 3, 1, // -z
		1, 3, 7, 1, 7, 5, // +x
		0, 4, 6, 0, 6, 2, // -x
		2, 6, 7, 2, 7, 3, // +y
		0, 1, 5, 0, 5, 4, // -y
	}

	m, _ := FromVecs(verts, indices)
	return m
}

// Cube returns a closed cube mesh of the given side, centered at the origin.
func Cube(side float64) *Mesh {
	return Box(side, side, side)
}

// Sphere returns a closed latitude/longitude sphere mesh centered at the
// origin with outward-facing winding. segments is the slice count around the
// z axis, rings the stack count from pole to pole; both must be at least 3.
func Sphere(radius float64, segments, rings int) *Mesh {
	segments = max(segments, 3)
	rings = max(rings, 3)

	// Poles are single shared vertices so the mesh stays watertight.
	verts := make([]mgl64.Vec3, 0, (rings-1)*segments+2)
	verts = append(verts, mgl64.Vec3{0, 0, radius})
	for i := 1; i < rings; i++ {
		theta := math.Pi * float64(i) / float64(rings)
		sin, cos := math.Sincos(theta)
		for j := 0; j < segments; j++ {
			phi := 2 * math.Pi * float64(j) / float64(segments)
			verts = append(verts, mgl64.Vec3{
				radius * sin * math.Cos(phi),
				radius * sin * math.Sin(phi),
				radius * cos,
			})
		}
	}
	verts = append(verts, mgl64.Vec3{0, 0, -radius})

	north := uint32(0)
	south := uint32(len(verts) - 1)
	ring := func(i, j int) uint32 {
		return uint32(1 + (i-1)*segments + j%segments)
	}

	var indices []uint32
	for j := 0; j < segments; j++ {
		indices = append(indices, north, ring(1, j), ring(1, j+1))
	}
	for i := 1; i < rings-1; i++ {
		for j := 0; j < segments; j++ {
			p00, p01 := ring(i, j), ring(i, j+1)
			p10, p11 := ring(i+1, j), ring(i+1, j+1)
			indices = append(indices, p00, p10, p11, p00, p11, p01)
		}
	}
	for j := 0; j < segments; j++ {
		indices = append(indices, ring(rings-1, j), south, ring(rings-1, j+1))
	}

	m, _ := FromVecs(verts, indices)
	return m
}
