package hydrostat

import (
	"github.com/akmonengine/hydrostat/mesh"
	"github.com/go-gl/mathgl/mgl64"
)

// LoadID identifies a load on a body. IDs are assigned at AddLoad and stay
// stable until the load is removed.
type LoadID uint64

// Load is a rigid external point or mesh load attached to a body. Position
// is local, relative to the base mesh origin. Rotation and Mesh are
// optional; when a mesh is present, its own centroid (rotated into the
// body frame) shifts the moment arm away from Position.
type Load struct {
	Mass     float64
	Position mgl64.Vec3
	Rotation mgl64.Quat
	Mesh     *mesh.Mesh
}

// centerOfMass returns the local point the load's mass acts through.
func (l Load) centerOfMass() mgl64.Vec3 {
	if l.Mesh == nil {
		return l.Position
	}

	rotation := l.Rotation
	if rotation == (mgl64.Quat{}) {
		rotation = mgl64.QuatIdent()
	}

	return l.Position.Add(rotation.Rotate(mesh.Integrate(l.Mesh).Centroid))
}
