package math

import (
	"math"
	"testing"
)

func TestIdentity(t *testing.T) {
	m := Identity()
	// Diagonal should be 1
	if m[0] != 1 || m[5] != 1 || m[10] != 1 || m[15] != 1 {
		t.Error("Identity diagonal should be 1")
	}
	// Off-diagonal should be 0
	if m[1] != 0 || m[4] != 0 {
		t.Error("Identity off-diagonal should be 0")
	}
}

func TestMulIdentity(t *testing.T) {
	m := Translate(1, 2, 3)
	result := m.Mul(Identity())

	for i := 0; i < 16; i++ {
		if result[i] != m[i] {
			t.Errorf("M * I should equal M, element %d: got %f, want %f", i, result[i], m[i])
		}
	}
}

func TestTransformVec3(t *testing.T) {
	m := Translate(10, 20, 30)
	got := m.TransformVec3(Vec3{1, 2, 3})
	if got != (Vec3{11, 22, 33}) {
		t.Errorf("TransformVec3: got %v, want (11, 22, 33)", got)
	}
}

func TestModel(t *testing.T) {
	m := Model(Vec3{5, 0, -5}, Vec3{10, 4, 2})

	// Unit cube corner (0.5, 0.5, 0.5) lands on the box's max corner.
	got := m.TransformVec3(Vec3{0.5, 0.5, 0.5})
	want := Vec3{10, 2, -4}
	if got != want {
		t.Errorf("Model corner: got %v, want %v", got, want)
	}
}

func TestPerspective(t *testing.T) {
	m := Perspective(float32(math.Pi/4), 1, 0.1, 100)

	if m[15] != 0 {
		t.Errorf("Perspective [15] should be 0, got %f", m[15])
	}
	if m[11] != -1 {
		t.Errorf("Perspective [11] should be -1, got %f", m[11])
	}
}

func TestLookAtMovesEyeToOrigin(t *testing.T) {
	view := LookAt(Vec3{100, 0, 0}, Vec3{}, Vec3{0, 1, 0})

	if got := view.TransformVec3(Vec3{100, 0, 0}); got.Length() > 1e-4 {
		t.Errorf("eye in view space: got %v, want origin", got)
	}
	// The target lies straight ahead, down -Z.
	got := view.TransformVec3(Vec3{})
	if abs(got.X) > 1e-4 || abs(got.Y) > 1e-4 || abs(got.Z+100) > 1e-3 {
		t.Errorf("target in view space: got %v, want (0, 0, -100)", got)
	}
}

func TestPerspectiveDepthRange(t *testing.T) {
	m := Perspective(float32(math.Pi/4), 1, 1, 1000)

	near := m.TransformVec3(Vec3{0, 0, -1})
	far := m.TransformVec3(Vec3{0, 0, -1000})
	if abs(near.Z+1) > 1e-4 {
		t.Errorf("near plane NDC z = %f, want -1", near.Z)
	}
	if abs(far.Z-1) > 1e-3 {
		t.Errorf("far plane NDC z = %f, want 1", far.Z)
	}
}

func TestInverseOfViewProjection(t *testing.T) {
	proj := Perspective(float32(math.Pi/4), 1.5, 1, 1000)
	view := LookAt(Vec3{40, 30, 60}, Vec3{}, Vec3{0, 1, 0})
	viewProj := proj.Mul(view)

	p := Vec3{3, -2, 7}
	back := viewProj.Inverse().TransformVec3(viewProj.TransformVec3(p))
	if back.Distance(p) > 1e-2 {
		t.Errorf("round trip through inverse: got %v, want %v", back, p)
	}
}

func TestMulVec4(t *testing.T) {
	got := Scale(2, 3, 4).MulVec4(Vec4{1, 1, 1, 1})
	if got != (Vec4{2, 3, 4, 1}) {
		t.Errorf("MulVec4: got %v", got)
	}
}

func TestInverseRoundTrip(t *testing.T) {
	m := Translate(3, -4, 5).Mul(Scale(2, 2, 2))
	result := m.Mul(m.Inverse())
	id := Identity()
	for i := range result {
		if abs(result[i]-id[i]) > 1e-5 {
			t.Fatalf("M * M^-1 element %d = %f, want %f", i, result[i], id[i])
		}
	}
}

func TestInverseSingular(t *testing.T) {
	if got := (Mat4{}).Inverse(); got != Identity() {
		t.Errorf("singular inverse should be identity, got %v", got)
	}
}

func TestUnprojectFarPlane(t *testing.T) {
	proj := Perspective(float32(math.Pi/4), 1, 1, 1000)
	view := LookAt(Vec3{100, 0, 0}, Vec3{}, Vec3{0, 1, 0})
	inv := proj.Mul(view).Inverse()

	// Screen center at depth 1 sits on the far plane along the view axis.
	p := inv.Unproject(Vec3{0, 0, 1})
	if abs(p.X-(100-1000)) > 0.5 || abs(p.Y) > 0.01 || abs(p.Z) > 0.01 {
		t.Errorf("Unproject center: got %v, want (-900, 0, 0)", p)
	}
}

func abs(x float32) float32 {
	if x < 0 {
		return -x
	}
	return x
}
