package hydrostat

import (
	"math"
	"testing"

	"github.com/akmonengine/hydrostat/mesh"
	"github.com/akmonengine/hydrostat/waterline"
	"github.com/go-gl/mathgl/mgl64"
)

func floatEqual(a, b, tolerance float64) bool {
	return math.Abs(a-b) < tolerance
}

func poseFinite(p Pose) bool {
	return !math.IsNaN(p.Z) && !math.IsInf(p.Z, 0) &&
		!math.IsNaN(p.RX) && !math.IsInf(p.RX, 0) &&
		!math.IsNaN(p.RY) && !math.IsInf(p.RY, 0)
}

// runTicks steps the solver the given number of ticks and returns the last
// result.
func runTicks(t *testing.T, pose *Pose, m *mesh.Mesh, props Properties, loads []Load, env Environment, ticks int) Result {
	t.Helper()

	var clipper waterline.Clipper
	var last Result
	for i := 0; i < ticks; i++ {
		result, ok := Step(pose, &clipper, m, mgl64.Vec3{}, props, loads, env)
		if !ok {
			t.Fatal("Step() skipped a tick with a valid mesh")
		}
		if !poseFinite(*pose) {
			t.Fatalf("pose became non-finite at tick %d: %+v", i, *pose)
		}
		last = result
	}

	return last
}

func TestStepConvergesToFloatingEquilibrium(t *testing.T) {
	env := Seawater()

	tests := []struct {
		name    string
		density float64
	}{
		{"half fluid density", env.FluidDensity / 2},
		{"light hull", 200},
		{"neutral density", env.FluidDensity},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cube := mesh.Cube(2)
			props := ComputeProperties(cube, tt.density)

			var pose Pose
			result := runTicks(t, &pose, cube, props, nil, env, 400)

			// At equilibrium the displaced fluid mass carries the weight.
			displaced := result.SubmergedVolume * env.FluidDensity
			if !floatEqual(displaced, result.TotalMass, result.TotalMass*0.01) {
				t.Errorf("displaced mass = %v, want ~%v", displaced, result.TotalMass)
			}

			// A cube of side 2 has waterplane area 4, so it floats with
			// draft mass/(fluid*4) measured from its bottom face at -1.
			wantZ := 1 - props.Mass/(env.FluidDensity*4)
			if !floatEqual(result.Displacement, wantZ, 0.02) {
				t.Errorf("displacement = %v, want ~%v", result.Displacement, wantZ)
			}

			// The upright cube is symmetric: COG and COB stay aligned.
			if !floatEqual(result.CenterOfGravity.X(), result.CenterOfBuoyancy.X(), 1e-3) ||
				!floatEqual(result.CenterOfGravity.Y(), result.CenterOfBuoyancy.Y(), 1e-3) {
				t.Errorf("COG %v and COB %v not horizontally aligned", result.CenterOfGravity, result.CenterOfBuoyancy)
			}
		})
	}
}

func TestStepSinksMonotonicallyWhenDenserThanFluid(t *testing.T) {
	env := Seawater()
	cube := mesh.Cube(2)
	props := ComputeProperties(cube, 3000)

	var pose Pose
	var clipper waterline.Clipper

	previousZ := math.Inf(1)
	var last Result
	for i := 0; i < 300; i++ {
		result, ok := Step(&pose, &clipper, cube, mgl64.Vec3{}, props, nil, env)
		if !ok {
			t.Fatal("Step() skipped a tick")
		}
		if !poseFinite(pose) {
			t.Fatalf("pose became non-finite at tick %d: %+v", i, pose)
		}
		if pose.Z >= previousZ {
			t.Fatalf("tick %d: z = %v did not decrease from %v", i, pose.Z, previousZ)
		}
		previousZ = pose.Z
		last = result
	}

	// Submerged volume saturates near the total mesh volume while the body
	// keeps sinking.
	if !floatEqual(last.SubmergedVolume, props.Volume, props.Volume*0.001) {
		t.Errorf("submerged volume = %v, want ~%v", last.SubmergedVolume, props.Volume)
	}
}

func TestStepRightsOffCenterLoad(t *testing.T) {
	env := Seawater()

	// A wide flat barge has a large metacentric height, so the upright
	// equilibrium under an off-center load is stable and small-angle.
	barge := mesh.Box(4, 4, 1)
	props := ComputeProperties(barge, 400)

	load := Load{Mass: 200, Position: mgl64.Vec3{0.5, 0, 0.25}}

	var pose Pose
	result := runTicks(t, &pose, barge, props, []Load{load}, env, 600)

	// A +x load heels the body toward +x: positive roll.
	if result.Roll <= 0 {
		t.Errorf("roll = %v, want > 0", result.Roll)
	}
	if !floatEqual(result.Pitch, 0, 1e-6) {
		t.Errorf("pitch = %v, want 0 for a load on the x axis", result.Pitch)
	}

	// The righting loop drives the horizontal COG/COB offset to zero.
	if !floatEqual(result.CenterOfGravity.X(), result.CenterOfBuoyancy.X(), 5e-3) {
		t.Errorf("COG x = %v, COB x = %v, want aligned", result.CenterOfGravity.X(), result.CenterOfBuoyancy.X())
	}

	// Extra mass also deepens the draft.
	displaced := result.SubmergedVolume * env.FluidDensity
	if !floatEqual(displaced, result.TotalMass, result.TotalMass*0.01) {
		t.Errorf("displaced mass = %v, want ~%v", displaced, result.TotalMass)
	}
}

func TestStepLoadRemovalRestoresEquilibrium(t *testing.T) {
	env := Seawater()
	cube := mesh.Cube(2)
	props := ComputeProperties(cube, 150)

	var reference Pose
	runTicks(t, &reference, cube, props, nil, env, 500)

	// Same body, but carry a load for a while and then drop it.
	var pose Pose
	load := []Load{{Mass: 400, Position: mgl64.Vec3{0.3, -0.2, -0.3}}}
	runTicks(t, &pose, cube, props, load, env, 100)
	runTicks(t, &pose, cube, props, nil, env, 500)

	if !floatEqual(pose.Z, reference.Z, 0.01) {
		t.Errorf("z after load removal = %v, want ~%v", pose.Z, reference.Z)
	}
	if !floatEqual(pose.RX, reference.RX, 0.01) || !floatEqual(pose.RY, reference.RY, 0.01) {
		t.Errorf("angles after load removal = (%v, %v), want ~(%v, %v)", pose.RX, pose.RY, reference.RX, reference.RY)
	}
}

func TestStepSkipsDegenerateInput(t *testing.T) {
	env := Seawater()
	var clipper waterline.Clipper

	flat, err := mesh.New([]float64{5, 5, 5, 6, 5, 5, 5, 6, 5}, []uint32{0, 1, 2, 0, 2, 1})
	if err != nil {
		t.Fatalf("New() unexpected error: %v", err)
	}

	tests := []struct {
		name  string
		mesh  *mesh.Mesh
		props Properties
	}{
		{"nil mesh", nil, Properties{Mass: 10, Volume: 1}},
		{"zero volume mesh", flat, ComputeProperties(flat, 500)},
		{"zero total mass", mesh.Cube(2), Properties{Volume: 8}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pose := Pose{Z: 1, RX: 2, RY: 3}
			_, ok := Step(&pose, &clipper, tt.mesh, mgl64.Vec3{}, tt.props, nil, env)
			if ok {
				t.Fatal("Step() = true, want skipped tick")
			}
			if pose != (Pose{Z: 1, RX: 2, RY: 3}) {
				t.Errorf("Step() mutated pose on a skipped tick: %+v", pose)
			}
		})
	}
}

func TestStepMeshLoadShiftsMomentArm(t *testing.T) {
	// A load carrying its own mesh acts through that mesh's centroid, not
	// the bare attachment point.
	ballast := mesh.Cube(1) // centroid at origin, so attach offsets dominate

	withMesh := Load{Mass: 100, Position: mgl64.Vec3{0.25, 0, 0}, Mesh: ballast}
	pointLoad := Load{Mass: 100, Position: mgl64.Vec3{0.25, 0, 0}}

	got, want := withMesh.centerOfMass(), pointLoad.centerOfMass()
	if !floatEqual(got.X(), want.X(), 1e-12) ||
		!floatEqual(got.Y(), want.Y(), 1e-12) ||
		!floatEqual(got.Z(), want.Z(), 1e-12) {
		t.Errorf("centerOfMass() = %v, want %v", got, want)
	}

	// Rotating an off-center ballast mesh moves the acting point.
	offsetBallast := mesh.Cube(1)
	verts := make([]mgl64.Vec3, offsetBallast.VertexCount())
	for i, v := range offsetBallast.Vertices() {
		verts[i] = v.Add(mgl64.Vec3{1, 0, 0})
	}
	shifted, err := mesh.FromVecs(verts, offsetBallast.Indices())
	if err != nil {
		t.Fatalf("FromVecs() unexpected error: %v", err)
	}

	rotated := Load{
		Mass:     100,
		Position: mgl64.Vec3{0, 0, 0},
		Rotation: mgl64.QuatRotate(math.Pi/2, mgl64.Vec3{0, 0, 1}),
		Mesh:     shifted,
	}
	acting := rotated.centerOfMass()
	if !floatEqual(acting.X(), 0, 1e-9) || !floatEqual(acting.Y(), 1, 1e-9) {
		t.Errorf("centerOfMass() = %v, want (0,1,0)", acting)
	}
}

func TestPoseTransformComposition(t *testing.T) {
	pose := Pose{Z: -0.5, RX: math.Pi / 2}
	transform := pose.Transform(mgl64.Vec3{1, 2, 3})

	// Local +y maps to +z under a quarter pitch, then translates.
	got := transform.Apply(mgl64.Vec3{0, 1, 0})
	want := mgl64.Vec3{1, 2, 3.5}
	if !floatEqual(got.X(), want.X(), 1e-9) ||
		!floatEqual(got.Y(), want.Y(), 1e-9) ||
		!floatEqual(got.Z(), want.Z(), 1e-9) {
		t.Errorf("Apply((0,1,0)) = %v, want %v", got, want)
	}
}
