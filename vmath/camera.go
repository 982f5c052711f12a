package vmath

import (
	"github.com/chewxy/math32"
)

// Camera orbits the origin: Pitch is measured from +Y, Yaw around +Y, both in radians
type Camera struct {
	Yaw      float32
	Pitch    float32
	Distance float32
	FOV      float32
}

// Projection is a point mapped into terminal cell space
type Projection struct {
	X, Y    float32 // Cell column and row
	Depth   float32 // Distance along the view direction
	Scale   float32 // Rows per world unit at this depth
	Visible bool
}

// CellAspect is the height/width ratio of a terminal cell
const CellAspect = 2.0

const nearPlane = 0.05

// NewCamera builds a camera from degrees
func NewCamera(pitchDeg, yawDeg, distance, fovDeg float32) *Camera {
	if distance <= 0 {
		distance = 2
	}
	if fovDeg <= 0 || fovDeg >= 180 {
		fovDeg = 45
	}
	return &Camera{
		Yaw:      yawDeg * DegToRad,
		Pitch:    pitchDeg * DegToRad,
		Distance: distance,
		FOV:      fovDeg * DegToRad,
	}
}

// Eye returns the camera position
func (c *Camera) Eye() Vec3 {
	sp := math32.Sin(c.Pitch)
	return Vec3{
		c.Distance * math32.Cos(c.Yaw) * sp,
		c.Distance * math32.Cos(c.Pitch),
		c.Distance * math32.Sin(c.Yaw) * sp,
	}
}

// basis returns right, up and forward unit vectors
func (c *Camera) basis() (right, up, forward Vec3) {
	forward = V3Normalize(V3Scale(c.Eye(), -1))
	// Derived from yaw so it stays defined when looking straight down +Y
	right = Vec3{math32.Sin(c.Yaw), 0, -math32.Cos(c.Yaw)}
	up = V3Cross(right, forward)
	return right, up, forward
}

// Project maps world point p into a width x height cell grid
func (c *Camera) Project(p Vec3, width, height int) Projection {
	right, up, forward := c.basis()
	rel := V3Sub(p, c.Eye())
	depth := V3Dot(rel, forward)
	if depth < nearPlane {
		return Projection{Depth: depth}
	}

	f := 1 / math32.Tan(c.FOV/2)
	half := float32(height) / 2
	scale := f * half / depth

	return Projection{
		X:       float32(width)/2 + V3Dot(rel, right)*scale*CellAspect,
		Y:       half - V3Dot(rel, up)*scale,
		Depth:   depth,
		Scale:   scale,
		Visible: true,
	}
}

// SetPreset points the camera at pitch/yaw given in degrees
func (c *Camera) SetPreset(pitchDeg, yawDeg float32) {
	c.Pitch = pitchDeg * DegToRad
	c.Yaw = yawDeg * DegToRad
}

// Rotate adds deg degrees of yaw
func (c *Camera) Rotate(deg float32) {
	c.Yaw = math32.Mod(c.Yaw+deg*DegToRad, 2*math32.Pi)
}
