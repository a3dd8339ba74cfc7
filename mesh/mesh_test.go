package mesh

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

// Helper functions
func vec3Equal(a, b mgl64.Vec3, tolerance float64) bool {
	return math.Abs(a.X()-b.X()) < tolerance &&
		math.Abs(a.Y()-b.Y()) < tolerance &&
		math.Abs(a.Z()-b.Z()) < tolerance
}

func floatEqual(a, b, tolerance float64) bool {
	return math.Abs(a-b) < tolerance
}

func TestNewValidation(t *testing.T) {
	tests := []struct {
		name      string
		positions []float64
		indices   []uint32
		wantErr   bool
	}{
		{
			name:      "flat triangle",
			positions: []float64{0, 0, 0, 1, 0, 0, 0, 1, 0},
		},
		{
			name:      "indexed triangle",
			positions: []float64{0, 0, 0, 1, 0, 0, 0, 1, 0},
			indices:   []uint32{0, 1, 2},
		},
		{
			name:      "position count not multiple of 3",
			positions: []float64{0, 0, 0, 1},
			wantErr:   true,
		},
		{
			name:      "flat vertex count not multiple of 3",
			positions: []float64{0, 0, 0, 1, 0, 0, 0, 1, 0, 2, 2, 2},
			wantErr:   true,
		},
		{
			name:      "index count not multiple of 3",
			positions: []float64{0, 0, 0, 1, 0, 0, 0, 1, 0},
			indices:   []uint32{0, 1},
			wantErr:   true,
		},
		{
			name:      "index out of range",
			positions: []float64{0, 0, 0, 1, 0, 0, 0, 1, 0},
			indices:   []uint32{0, 1, 3},
			wantErr:   true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := New(tt.positions, tt.indices)
			if tt.wantErr {
				if err == nil {
					t.Fatal("New() expected an error, got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("New() unexpected error: %v", err)
			}
			if m.TriangleCount() != 1 {
				t.Errorf("TriangleCount() = %d, want 1", m.TriangleCount())
			}
		})
	}
}

func TestFlatInputGetsIdentityIndex(t *testing.T) {
	m, err := New([]float64{
		0, 0, 0, 1, 0, 0, 0, 1, 0,
		0, 0, 1, 1, 0, 1, 0, 1, 1,
	}, nil)
	if err != nil {
		t.Fatalf("New() unexpected error: %v", err)
	}

	if m.TriangleCount() != 2 {
		t.Fatalf("TriangleCount() = %d, want 2", m.TriangleCount())
	}
	for i, idx := range m.Indices() {
		if idx != uint32(i) {
			t.Errorf("Indices()[%d] = %d, want %d", i, idx, i)
		}
	}

	p1, p2, p3 := m.Triangle(1)
	if !vec3Equal(p1, mgl64.Vec3{0, 0, 1}, 1e-12) ||
		!vec3Equal(p2, mgl64.Vec3{1, 0, 1}, 1e-12) ||
		!vec3Equal(p3, mgl64.Vec3{0, 1, 1}, 1e-12) {
		t.Errorf("Triangle(1) = %v %v %v", p1, p2, p3)
	}
}

func TestBounds(t *testing.T) {
	m := Box(2, 4, 6)

	bounds := m.Bounds()
	if !vec3Equal(bounds.Min, mgl64.Vec3{-1, -2, -3}, 1e-12) {
		t.Errorf("Bounds().Min = %v, want (-1,-2,-3)", bounds.Min)
	}
	if !vec3Equal(bounds.Max, mgl64.Vec3{1, 2, 3}, 1e-12) {
		t.Errorf("Bounds().Max = %v, want (1,2,3)", bounds.Max)
	}

	if !bounds.ContainsPoint(mgl64.Vec3{0, 0, 0}) {
		t.Error("ContainsPoint(origin) = false, want true")
	}
	if bounds.ContainsPoint(mgl64.Vec3{0, 0, 4}) {
		t.Error("ContainsPoint((0,0,4)) = true, want false")
	}
}

func TestAABBTransformed(t *testing.T) {
	bounds := AABB{Min: mgl64.Vec3{-1, -1, -1}, Max: mgl64.Vec3{1, 1, 1}}

	// Quarter turn about z swaps x/y extents; a unit cube maps onto itself.
	transform := Transform{
		Position: mgl64.Vec3{10, 0, 0},
		Rotation: mgl64.QuatRotate(math.Pi/2, mgl64.Vec3{0, 0, 1}),
	}
	moved := bounds.Transformed(transform)

	if !vec3Equal(moved.Min, mgl64.Vec3{9, -1, -1}, 1e-9) {
		t.Errorf("Transformed().Min = %v, want (9,-1,-1)", moved.Min)
	}
	if !vec3Equal(moved.Max, mgl64.Vec3{11, 1, 1}, 1e-9) {
		t.Errorf("Transformed().Max = %v, want (11,1,1)", moved.Max)
	}
}

func TestTransformApply(t *testing.T) {
	transform := Transform{
		Position: mgl64.Vec3{1, 2, 3},
		Rotation: mgl64.QuatRotate(math.Pi/2, mgl64.Vec3{0, 0, 1}),
	}

	// (1,0,0) rotates onto (0,1,0), then translates.
	got := transform.Apply(mgl64.Vec3{1, 0, 0})
	if !vec3Equal(got, mgl64.Vec3{1, 3, 3}, 1e-9) {
		t.Errorf("Apply((1,0,0)) = %v, want (1,3,3)", got)
	}

	identity := NewTransform()
	got = identity.Apply(mgl64.Vec3{4, 5, 6})
	if !vec3Equal(got, mgl64.Vec3{4, 5, 6}, 1e-12) {
		t.Errorf("identity Apply((4,5,6)) = %v", got)
	}
}
