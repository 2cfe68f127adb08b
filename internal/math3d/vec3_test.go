package math3d

import "testing"

func almostEqual(a, b, eps float64) bool {
	d := a - b
	if d < 0 {
		d = -d
	}
	return d <= eps
}

func TestVec3Normalize(t *testing.T) {
	v := V3(3, 0, 4)
	n := v.Normalize()
	if !almostEqual(n.Magnitude(), 1, 1e-9) {
		t.Fatalf("expected unit magnitude, got %v", n.Magnitude())
	}
}

func TestVec3NormalizeZeroPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic normalizing zero vector")
		}
	}()
	Zero3.Normalize()
}

func TestVec3CrossAnticommutative(t *testing.T) {
	a := V3(1, 2, 3)
	b := V3(4, -1, 2)
	c1 := a.Cross(b)
	c2 := b.Cross(a).Negate()
	if !almostEqual(c1.X, c2.X, 1e-9) || !almostEqual(c1.Y, c2.Y, 1e-9) || !almostEqual(c1.Z, c2.Z, 1e-9) {
		t.Fatalf("a x b != -(b x a): %+v vs %+v", c1, c2)
	}
}

func TestVec3CrossOrthogonalToInputs(t *testing.T) {
	a := V3(1, 2, 3)
	b := V3(4, -1, 2)
	c := a.Cross(b)
	if !almostEqual(a.Dot(c), 0, 1e-9) {
		t.Fatalf("a . (a x b) should be ~0, got %v", a.Dot(c))
	}
	if !almostEqual(b.Dot(c), 0, 1e-9) {
		t.Fatalf("b . (a x b) should be ~0, got %v", b.Dot(c))
	}
}

func TestVec3Abs(t *testing.T) {
	v := V3(-1, 2, -3).Abs()
	if v.X != 1 || v.Y != 2 || v.Z != 3 {
		t.Fatalf("unexpected abs result: %+v", v)
	}
}
