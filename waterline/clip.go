// Package waterline clips a transformed mesh against the fluid surface at
// world z = 0 and integrates the submerged volume and its centroid.
package waterline

import (
	"math"

	"github.com/akmonengine/hydrostat/mesh"
	"github.com/go-gl/mathgl/mgl64"
)

// Epsilon is the submerged volume below which the result is reported as zero,
// with the centroid defaulting to the origin.
const Epsilon = 1e-5

// point selects a corner of a clipped sub-triangle: an original triangle
// corner when Edge < 0, otherwise the waterline crossing on the edge from
// corner Corner to corner Edge. The tables below are expressed in these
// slot references so the winding of every sub-case is visible in one place.
type point struct {
	Corner int8
	Edge   int8
}

func corner(i int8) point      { return point{Corner: i, Edge: -1} }
func crossing(a, b int8) point { return point{Corner: a, Edge: b} }

// oneUnder maps the index of the single submerged corner to the clipped
// triangle. Each above-surface corner is replaced by the crossing on the edge
// connecting it to the submerged corner, which preserves the original winding.
var oneUnder = [3][3]point{
	0: {corner(0), crossing(0, 1), crossing(0, 2)},
	1: {crossing(0, 1), corner(1), crossing(1, 2)},
	2: {crossing(2, 0), crossing(1, 2), corner(2)},
}

// twoUnder maps the index of the single above-surface corner to the two
// triangles covering the submerged quadrilateral, again winding-preserving.
var twoUnder = [3][2][3]point{
	0: {
		{crossing(0, 1), corner(1), corner(2)},
		{crossing(0, 1), corner(2), crossing(2, 0)},
	},
	1: {
		{corner(0), crossing(0, 1), crossing(1, 2)},
		{corner(0), crossing(1, 2), corner(2)},
	},
	2: {
		{corner(0), corner(1), crossing(1, 2)},
		{corner(0), crossing(1, 2), crossing(2, 0)},
	},
}

// soleBit maps a one-bit corner mask to the corner index.
var soleBit = [5]int{1: 0, 2: 1, 4: 2}

// Clipper integrates the submerged portion of meshes. It keeps a scratch
// buffer of world-space vertices so repeated clips of same-sized meshes do
// not allocate; the zero value is ready to use.
type Clipper struct {
	world []mgl64.Vec3
}

// Clip transforms the mesh to world space and returns the volume of the
// portion below z = 0 together with its world-space centroid. A result below
// Epsilon reports zero volume and a zero centroid.
//
// Volumes accumulate as signed tetrahedra against the world origin, the same
// integral as mesh.Integrate but in world space, so the result is exact for
// any pose of a closed, consistently wound mesh.
func (c *Clipper) Clip(m *mesh.Mesh, transform mesh.Transform) (float64, mgl64.Vec3) {
	verts := m.Vertices()
	if cap(c.world) < len(verts) {
		c.world = make([]mgl64.Vec3, len(verts))
	}
	c.world = c.world[:len(verts)]

	minZ := math.Inf(1)
	for i, v := range verts {
		w := transform.Apply(v)
		c.world[i] = w
		minZ = math.Min(minZ, w.Z())
	}
	if minZ >= 0 {
		return 0, mgl64.Vec3{}
	}

	var volume float64
	var moment mgl64.Vec3

	indices := m.Indices()
	for t := 0; t < len(indices); t += 3 {
		tri := [3]mgl64.Vec3{
			c.world[indices[t]],
			c.world[indices[t+1]],
			c.world[indices[t+2]],
		}

		underMask := 0
		for k, p := range tri {
			if p.Z() < 0 {
				underMask |= 1 << k
			}
		}

		switch underMask {
		case 0:
			// Fully above the surface.
		case 7:
			volume, moment = accumulate(tri[0], tri[1], tri[2], volume, moment)
		case 1, 2, 4:
			volume, moment = clipTriangle(&tri, &oneUnder[soleBit[underMask]], volume, moment)
		default:
			above := soleBit[7^underMask]
			volume, moment = clipTriangle(&tri, &twoUnder[above][0], volume, moment)
			volume, moment = clipTriangle(&tri, &twoUnder[above][1], volume, moment)
		}
	}

	if math.Abs(volume) < Epsilon {
		return 0, mgl64.Vec3{}
	}

	// Dividing by the signed volume keeps the centroid sign-correct for
	// either winding direction.
	return math.Abs(volume), moment.Mul(1 / volume)
}

// Clip is a one-shot convenience wrapper around a fresh Clipper.
func Clip(m *mesh.Mesh, transform mesh.Transform) (float64, mgl64.Vec3) {
	var c Clipper
	return c.Clip(m, transform)
}

func clipTriangle(tri *[3]mgl64.Vec3, points *[3]point, volume float64, moment mgl64.Vec3) (float64, mgl64.Vec3) {
	return accumulate(resolve(tri, points[0]), resolve(tri, points[1]), resolve(tri, points[2]), volume, moment)
}

func resolve(tri *[3]mgl64.Vec3, p point) mgl64.Vec3 {
	if p.Edge < 0 {
		return tri[p.Corner]
	}
	return intersect(tri[p.Corner], tri[p.Edge])
}

// intersect returns the point where the edge p1->p2 crosses the surface.
// The z component is forced to exactly zero.
func intersect(p1, p2 mgl64.Vec3) mgl64.Vec3 {
	t := -p1.Z() / (p2.Z() - p1.Z())
	q := p1.Add(p2.Sub(p1).Mul(t))

	return mgl64.Vec3{q.X(), q.Y(), 0}
}

// accumulate adds the signed tetrahedron (origin, p1, p2, p3) to the running
// volume and first moment.
func accumulate(p1, p2, p3 mgl64.Vec3, volume float64, moment mgl64.Vec3) (float64, mgl64.Vec3) {
	v := p1.Dot(p2.Cross(p3)) / 6.0

	return volume + v, moment.Add(p1.Add(p2).Add(p3).Mul(v / 4.0))
}
