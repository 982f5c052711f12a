package vmath

import (
	"testing"

	"github.com/chewxy/math32"
	"github.com/stretchr/testify/assert"
)

func TestNearlyEqual(t *testing.T) {
	tests := []struct {
		name string
		a, b float32
		want bool
	}{
		{"identical", 1.5, 1.5, true},
		{"tiny absolute near zero", 0, 5e-7, true},
		{"absolute near zero", 0, 1e-5, false},
		{"relative large", 1000, 1000.0005, true},
		{"relative large differs", 1000, 1000.01, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NearlyEqual(tt.a, tt.b, Epsilon))
		})
	}
}

func TestRelChangeAndFraction(t *testing.T) {
	assert.InDelta(t, 0.5, RelChange(2, 3), 1e-6)
	assert.InDelta(t, 0.5, RelChange(2, 1), 1e-6)
	assert.InDelta(t, 3, RelChange(0, 3), 1e-6)
	assert.InDelta(t, -0.5, Fraction(2, 1), 1e-6)
	assert.Equal(t, float32(0), Fraction(0, 1))
}

func TestQuatFromUnitVectors(t *testing.T) {
	targets := []Vec3{
		{1, 0, 0},
		{0, 0, 1},
		{0, -1, 0},
		{0, 1, 0},
		V3Normalize(Vec3{1, 2, 3}),
	}

	for _, to := range targets {
		q := QuatFromUnitVectors(UnitY, to)
		got := QuatRotate(q, UnitY)
		assert.True(t, V3NearlyEqual(got, to, 1e-5), "rotating +Y onto %v gave %v", to, got)
	}
}

func TestQuatAlongAxisZero(t *testing.T) {
	assert.Equal(t, QuatIdentity, QuatAlongAxis(Vec3{}))
}

func TestV3Angle(t *testing.T) {
	assert.InDelta(t, math32.Pi/2, V3Angle(Vec3{1, 0, 0}, Vec3{0, 1, 0}), 1e-6)
	assert.Equal(t, float32(0), V3Angle(Vec3{}, Vec3{0, 1, 0}))
}

func TestCameraProjectCenter(t *testing.T) {
	cam := NewCamera(90, 0, 2, 45)

	p := cam.Project(Vec3{}, 80, 24)
	assert.True(t, p.Visible)
	assert.InDelta(t, 40, p.X, 1e-4)
	assert.InDelta(t, 12, p.Y, 1e-4)
	assert.InDelta(t, 2, p.Depth, 1e-5)

	// Points behind the eye are culled
	behind := cam.Project(V3Scale(cam.Eye(), 2), 80, 24)
	assert.False(t, behind.Visible)
}

func TestCameraProjectUpIsUp(t *testing.T) {
	cam := NewCamera(90, 0, 2, 45)
	top := cam.Project(Vec3{0, 0.5, 0}, 80, 24)
	assert.Less(t, top.Y, float32(12))
}
