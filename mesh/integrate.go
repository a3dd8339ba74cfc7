package mesh

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Epsilon is the volume below which a mesh is treated as degenerate.
// A degenerate mesh has no meaningful centroid, so the origin is reported
// instead of dividing by a near-zero volume.
const Epsilon = 1e-5

// Volumetrics holds the enclosed volume and volume centroid of a closed mesh.
type Volumetrics struct {
	Volume   float64
	Centroid mgl64.Vec3
}

// Integrate computes the enclosed volume and centroid of a closed,
// consistently wound mesh in local space.
//
// Each triangle forms a signed tetrahedron with the origin; by the divergence
// theorem the signed volumes sum to the enclosed volume regardless of where
// the mesh sits relative to the origin. The centroid is the volume-weighted
// average of the tetrahedron centroids. The sign of the sum only reflects the
// winding direction, so the absolute value is reported.
//
// An open mesh silently produces a wrong result; no watertightness check is
// performed.
func Integrate(m *Mesh) Volumetrics {
	var volume float64
	var moment mgl64.Vec3

	for i := 0; i < m.TriangleCount(); i++ {
		p1, p2, p3 := m.Triangle(i)
		volume, moment = accumulateTetrahedron(p1, p2, p3, volume, moment)
	}

	if math.Abs(volume) < Epsilon {
		return Volumetrics{}
	}

	return Volumetrics{
		Volume:   math.Abs(volume),
		Centroid: moment.Mul(1 / volume),
	}
}

// accumulateTetrahedron adds the signed volume and first moment of the
// tetrahedron (origin, p1, p2, p3) to the running sums. The tetrahedron
// centroid is (p1+p2+p3)/4 since the fourth corner is the origin.
func accumulateTetrahedron(p1, p2, p3 mgl64.Vec3, volume float64, moment mgl64.Vec3) (float64, mgl64.Vec3) {
	v := p1.Dot(p2.Cross(p3)) / 6.0

	return volume + v, moment.Add(p1.Add(p2).Add(p3).Mul(v / 4.0))
}
