package hydrostat

import (
	"math"

	"github.com/akmonengine/hydrostat/mesh"
	"github.com/akmonengine/hydrostat/waterline"
	"github.com/go-gl/mathgl/mgl64"
)

// Settle detection thresholds. A body counts as settled once the net
// vertical force (as a fraction of its weight) and the horizontal COG/COB
// offset have both stayed below threshold for settleDelayTicks consecutive
// ticks.
const (
	settleForceTolerance  = 1e-3
	settleOffsetTolerance = 1e-3
	settleDelayTicks      = 30
)

// fullImmersionRatio is the submerged/total volume ratio above which a body
// counts as fully submerged, allowing for clipping tolerance.
const fullImmersionRatio = 0.999

// Body is one floating object: a base mesh with a material density, an
// anchor position, a set of external loads, and the solver pose that
// persists across ticks. All mutation happens on the tick-owner side; the
// solver only ever sees a consistent snapshot for a whole tick.
type Body struct {
	// Id is caller-defined, used to identify the body in events
	Id any

	// Anchor is the world position of the mesh origin at rest pose. The
	// solver owns the vertical offset on top of it.
	Anchor mgl64.Vec3

	mesh     *mesh.Mesh
	props    Properties
	pose     Pose
	loads    map[LoadID]Load
	nextLoad LoadID

	clipper waterline.Clipper

	result    Result
	hasResult bool

	IsSettled   bool
	settleTicks int
}

// NewBody creates a body for the given mesh and material density. A nil
// mesh is allowed; the body is skipped each tick until one attaches.
func NewBody(m *mesh.Mesh, density float64) *Body {
	b := &Body{
		loads: make(map[LoadID]Load),
	}
	b.props.Density = density
	if m != nil {
		b.SetMesh(m)
	}

	return b
}

// SetMesh replaces the base mesh and resets the pose: pose state is keyed
// to mesh identity, so a new object never inherits the previous one's
// equilibrium.
func (b *Body) SetMesh(m *mesh.Mesh) {
	b.mesh = m
	b.pose = Pose{}
	b.result = Result{}
	b.hasResult = false
	if m != nil {
		b.props = ComputeProperties(m, b.props.Density)
	}
	b.disturb()
}

// SetDensity changes the material density and recomputes the derived
// properties.
func (b *Body) SetDensity(density float64) {
	b.props.Density = density
	if b.mesh != nil {
		b.props = ComputeProperties(b.mesh, density)
	}
	b.disturb()
}

// Mesh returns the current base mesh, nil if none is attached.
func (b *Body) Mesh() *mesh.Mesh {
	return b.mesh
}

// Properties returns the derived base properties (loads excluded).
func (b *Body) Properties() Properties {
	return b.props
}

// Pose returns the current solver pose.
func (b *Body) Pose() Pose {
	return b.pose
}

// Result returns the snapshot from the last completed tick, false if the
// body has not been stepped with a valid mesh yet.
func (b *Body) Result() (Result, bool) {
	return b.result, b.hasResult
}

// AddLoad attaches a load and returns its stable id.
func (b *Body) AddLoad(load Load) LoadID {
	b.nextLoad++
	b.loads[b.nextLoad] = load
	b.disturb()

	return b.nextLoad
}

// RemoveLoad detaches the load with the given id, reporting whether it
// existed.
func (b *Body) RemoveLoad(id LoadID) bool {
	if _, ok := b.loads[id]; !ok {
		return false
	}
	delete(b.loads, id)
	b.disturb()

	return true
}

// Load returns the load with the given id.
func (b *Body) Load(id LoadID) (Load, bool) {
	load, ok := b.loads[id]
	return load, ok
}

// Loads returns a snapshot of the current load set, in no particular order.
func (b *Body) Loads() []Load {
	loads := make([]Load, 0, len(b.loads))
	for _, load := range b.loads {
		loads = append(loads, load)
	}

	return loads
}

// disturb resets settle tracking after any change that can move the
// equilibrium.
func (b *Body) disturb() {
	b.IsSettled = false
	b.settleTicks = 0
}

// step runs one solver tick. The load snapshot is taken once so mid-tick
// mutation by listeners of a previous body cannot tear this body's view.
func (b *Body) step(env Environment) {
	result, ok := Step(&b.pose, &b.clipper, b.mesh, b.Anchor, b.props, b.Loads(), env)
	if !ok {
		return
	}

	b.result = result
	b.hasResult = true
	b.trySettle(env)
}

// trySettle counts consecutive ticks within the equilibrium thresholds,
// mirroring the way a dynamics engine puts slow bodies to sleep.
func (b *Body) trySettle(env Environment) {
	weight := b.result.TotalMass * env.Gravity
	buoyancy := b.result.SubmergedVolume * env.FluidDensity * env.Gravity

	balanced := math.Abs(buoyancy-weight) < settleForceTolerance*weight
	upright := math.Abs(b.result.CenterOfGravity.X()-b.result.CenterOfBuoyancy.X()) < settleOffsetTolerance &&
		math.Abs(b.result.CenterOfGravity.Y()-b.result.CenterOfBuoyancy.Y()) < settleOffsetTolerance

	if balanced && upright {
		b.settleTicks++
		if b.settleTicks >= settleDelayTicks {
			b.IsSettled = true
		}
	} else {
		b.disturb()
	}
}

// immersionState classifies how deep the body currently sits.
func (b *Body) immersionState() immersion {
	if !b.hasResult || b.result.SubmergedVolume <= 0 {
		return immersionNone
	}
	if b.props.Volume > 0 && b.result.SubmergedVolume >= fullImmersionRatio*b.props.Volume {
		return immersionFull
	}

	return immersionPartial
}
