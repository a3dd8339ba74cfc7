// Package hydrostat computes real-time hydrostatic equilibrium for closed
// triangle meshes: each tick the solver balances buoyancy against weight and
// rights the horizontal offset between the center of gravity and the center
// of buoyancy, refining a heave/pitch/roll pose until the object floats.
package hydrostat

import (
	"github.com/akmonengine/hydrostat/mesh"
	"github.com/akmonengine/hydrostat/waterline"
	"github.com/go-gl/mathgl/mgl64"
)

// Solver tuning constants. These encode a convergence-rate/stability
// tradeoff, not fluid dynamics: the gains scale force and offset into
// per-iteration pose steps, the clamps bound each step so extreme magnitudes
// (e.g. unit-scale mismatches) degrade into slow convergence instead of a
// runaway, and the damping factors slow the controller below its raw gain.
// The clamp values assume meter-scale meshes.
const (
	// InnerIterations is the number of solver passes per tick. Several
	// passes per rendered frame accelerate convergence without a full
	// implicit solve.
	InnerIterations = 5

	HeaveGain    = 1e-5
	MaxHeaveStep = 0.5

	RightingGain    = 0.05
	MaxRightingStep = 0.05

	TranslationDamping = 0.5
	RotationDamping    = 0.5
)

// Pose is the solver state for one floating object: vertical displacement
// and the two righting angles, persisting across ticks. The zero value is
// the rest pose.
type Pose struct {
	Z  float64 // heave along world z, meters
	RX float64 // pitch about local x, radians
	RY float64 // roll about local y, radians
}

// Transform composes the pose with the object's anchor position. The same
// composition (rotate about local x, then local y, then translate) is used
// both for clipping and for moving the center of gravity to world space, so
// the two stay consistent.
func (p Pose) Transform(anchor mgl64.Vec3) mesh.Transform {
	rotation := mgl64.QuatRotate(p.RX, mgl64.Vec3{1, 0, 0}).
		Mul(mgl64.QuatRotate(p.RY, mgl64.Vec3{0, 1, 0}))

	return mesh.Transform{
		Position: mgl64.Vec3{anchor.X(), anchor.Y(), anchor.Z() + p.Z},
		Rotation: rotation,
	}
}

// Environment holds the fluid scalars shared by every body in a world.
type Environment struct {
	FluidDensity float64 // kg/m³
	Gravity      float64 // m/s²
}

// Seawater returns the default environment: seawater density under standard
// gravity.
func Seawater() Environment {
	return Environment{FluidDensity: 1025, Gravity: 9.81}
}

// Properties are the derived physical properties of a base mesh at a given
// material density.
type Properties struct {
	Mass            float64
	Density         float64
	Volume          float64
	CenterOfGravity mgl64.Vec3 // local space
}

// ComputeProperties integrates the mesh and derives mass from the material
// density. It is recomputed whenever the mesh or density changes.
func ComputeProperties(m *mesh.Mesh, density float64) Properties {
	vol := mesh.Integrate(m)

	return Properties{
		Mass:            vol.Volume * density,
		Density:         density,
		Volume:          vol.Volume,
		CenterOfGravity: vol.Centroid,
	}
}

// Result is the snapshot emitted once per tick.
type Result struct {
	Displacement float64
	Pitch        float64
	Roll         float64

	SubmergedVolume  float64
	CenterOfBuoyancy mgl64.Vec3 // world space
	TotalMass        float64
	CenterOfGravity  mgl64.Vec3 // world space, loads included
}

// Step advances the pose toward hydrostatic equilibrium by InnerIterations
// passes and reports the resulting snapshot. It mutates pose in place and
// returns false without touching it when the mesh is absent or degenerate,
// or when the combined mass is not positive.
//
// Each pass clips the mesh at the current pose, steps heave by the clamped
// net vertical force, and steps pitch/roll by the clamped horizontal offset
// between the combined center of gravity and the center of buoyancy. The
// sign conventions are load-bearing: a positive y offset (COG ahead of COB)
// decreases pitch, a positive x offset increases roll; inverting either
// drives the object away from equilibrium.
func Step(pose *Pose, clipper *waterline.Clipper, m *mesh.Mesh, anchor mgl64.Vec3, base Properties, loads []Load, env Environment) (Result, bool) {
	if m == nil || base.Volume < mesh.Epsilon {
		return Result{}, false
	}

	totalMass := base.Mass
	weighted := base.CenterOfGravity.Mul(base.Mass)
	for _, load := range loads {
		totalMass += load.Mass
		weighted = weighted.Add(load.centerOfMass().Mul(load.Mass))
	}
	if totalMass <= 0 {
		return Result{}, false
	}
	cogLocal := weighted.Mul(1 / totalMass)

	weight := totalMass * env.Gravity

	var result Result
	for i := 0; i < InnerIterations; i++ {
		transform := pose.Transform(anchor)

		submerged, cob := clipper.Clip(m, transform)

		buoyancy := submerged * env.FluidDensity * env.Gravity
		step := mgl64.Clamp((buoyancy-weight)*HeaveGain, -MaxHeaveStep, MaxHeaveStep)
		pose.Z += step * TranslationDamping

		cogWorld := transform.Apply(cogLocal)

		// No submerged volume means no buoyant force and therefore no
		// righting moment.
		if submerged > 0 {
			dx := cogWorld.X() - cob.X()
			dy := cogWorld.Y() - cob.Y()
			pose.RX -= mgl64.Clamp(dy*RightingGain, -MaxRightingStep, MaxRightingStep) * RotationDamping
			pose.RY += mgl64.Clamp(dx*RightingGain, -MaxRightingStep, MaxRightingStep) * RotationDamping
		}

		if i == InnerIterations-1 {
			result = Result{
				Displacement:     pose.Z,
				Pitch:            pose.RX,
				Roll:             pose.RY,
				SubmergedVolume:  submerged,
				CenterOfBuoyancy: cob,
				TotalMass:        totalMass,
				CenterOfGravity:  cogWorld,
			}
		}
	}

	return result, true
}
