package math

import (
	"math"
	"testing"
)

const quatEps = 1e-9

func TestQuatIdentity(t *testing.T) {
	q := QuatIdentity()
	if q.X != 0 || q.Y != 0 || q.Z != 0 || q.W != 1 {
		t.Errorf("Identity quaternion should be (0,0,0,1), got (%v,%v,%v,%v)", q.X, q.Y, q.Z, q.W)
	}
}

func TestQuatFromAxisAngle(t *testing.T) {
	q := QuatFromAxisAngle(AxisY, math.Pi/2)

	if math.Abs(q.W-math.Cos(math.Pi/4)) > quatEps {
		t.Errorf("QuatFromAxisAngle W: expected %v, got %v", math.Cos(math.Pi/4), q.W)
	}
	if math.Abs(q.Y-math.Sin(math.Pi/4)) > quatEps {
		t.Errorf("QuatFromAxisAngle Y: expected %v, got %v", math.Sin(math.Pi/4), q.Y)
	}
}

func TestQuatRotate(t *testing.T) {
	tests := []struct {
		name  string
		axis  Vec3
		angle float64
		in    Vec3
		want  Vec3
	}{
		{"identity", AxisY, 0, Vec3{1, 2, 3}, Vec3{1, 2, 3}},
		{"y quarter turn", AxisY, math.Pi / 2, AxisX, Vec3{0, 0, -1}},
		{"x quarter turn", AxisX, math.Pi / 2, AxisY, AxisZ},
		{"z half turn", AxisZ, math.Pi, AxisX, Vec3{-1, 0, 0}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := QuatFromAxisAngle(tt.axis, tt.angle).Rotate(tt.in)
			if !got.ApproxEqual(tt.want, quatEps) {
				t.Errorf("Rotate(%v) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestQuatMulComposes(t *testing.T) {
	// Two quarter turns about Y equal one half turn.
	quarter := QuatFromAxisAngle(AxisY, math.Pi/2)
	half := QuatFromAxisAngle(AxisY, math.Pi)

	got := quarter.Mul(quarter).Rotate(AxisX)
	want := half.Rotate(AxisX)
	if !got.ApproxEqual(want, quatEps) {
		t.Errorf("quarter*quarter rotates X to %v, want %v", got, want)
	}
}

func TestQuatNormalize(t *testing.T) {
	n := Quat{X: 1, Y: 2, Z: 3, W: 4}.Normalize()
	length := math.Sqrt(n.X*n.X + n.Y*n.Y + n.Z*n.Z + n.W*n.W)
	if math.Abs(length-1) > quatEps {
		t.Errorf("Normalized quaternion length should be 1, got %v", length)
	}
	if (Quat{}).Normalize() != QuatIdentity() {
		t.Error("degenerate quaternion should normalize to identity")
	}
}
