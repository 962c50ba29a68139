package math

import "testing"

func TestMulIdentity(t *testing.T) {
	m := Perspective(1, 1.5, 0.1, 100)
	got := m.Mul(Identity())
	if got != m {
		t.Errorf("M * I = %v, want %v", got, m)
	}
}

func TestLookAtMovesEyeToOrigin(t *testing.T) {
	eye := Vec3{3, 4, 5}
	view := LookAt(eye, Vec3{}, Up)
	p := view.MulVec4(Vec4{eye.X, eye.Y, eye.Z, 1})
	for i := 0; i < 3; i++ {
		if !approx(p[i], 0) {
			t.Fatalf("view * eye = %v, want origin", p)
		}
	}
}

func TestLookAtCenterOnNegativeZ(t *testing.T) {
	view := LookAt(Vec3{0, 0, 10}, Vec3{}, Up)
	p := view.MulVec4(Vec4{0, 0, 0, 1})
	if !approx(p[0], 0) || !approx(p[1], 0) || !approx(p[2], -10) {
		t.Errorf("view * center = %v, want (0, 0, -10)", p)
	}
}

func TestProjectCenterOfView(t *testing.T) {
	view := LookAt(Vec3{0, 5, 10}, Vec3{}, Up)
	proj := Perspective(Pi/3, 16.0/9.0, 0.1, 1000)
	ndc, ok := proj.Mul(view).Project(Vec3{})
	if !ok {
		t.Fatal("Project() reported point behind viewer")
	}
	if !approx(ndc.X, 0) || !approx(ndc.Y, 0) {
		t.Errorf("Project(center) = %v, want screen centre", ndc)
	}

	if _, ok := proj.Mul(view).Project(Vec3{0, 5, 20}); ok {
		t.Error("Project() of point behind the eye should fail")
	}
}

func TestInverseRoundTrip(t *testing.T) {
	view := LookAt(Vec3{2, 6, -8}, Vec3{0, 1, 0}, Up)
	proj := Perspective(1.2, 16.0/9.0, 0.1, 500)
	vp := proj.Mul(view)

	got := vp.Mul(vp.Inverse())
	want := Identity()
	for i := range got {
		if d := got[i] - want[i]; d > 1e-3 || d < -1e-3 {
			t.Fatalf("M * M^-1 [%d] = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestInverseSingular(t *testing.T) {
	var zero Mat4
	if zero.Inverse() != Identity() {
		t.Error("Inverse() of a singular matrix should be identity")
	}
}
