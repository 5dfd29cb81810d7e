// internal/renderer/camera.go
//
// Camera with perspective projection framed for character viewing
package renderer

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// Camera represents a 3D camera
type Camera struct {
	Position mgl32.Vec3
	Target   mgl32.Vec3
	Up       mgl32.Vec3

	// Projection parameters
	FOV         float32
	AspectRatio float32
	NearPlane   float32
	FarPlane    float32

	// Cached matrices
	viewMatrix       mgl32.Mat4
	projectionMatrix mgl32.Mat4
	dirty            bool
}

// NewCamera creates a new camera
func NewCamera(position, target, up mgl32.Vec3, fov, aspect, near, far float32) *Camera {
	c := &Camera{
		Position:    position,
		Target:      target,
		Up:          up,
		FOV:         fov,
		AspectRatio: aspect,
		NearPlane:   near,
		FarPlane:    far,
		dirty:       true,
	}
	c.updateMatrices()
	return c
}

// NewPortraitCamera frames the head and shoulders of a standing
// character whose head sits around y=1.65.
func NewPortraitCamera(aspect float32) *Camera {
	return NewCamera(
		mgl32.Vec3{0, 1.55, 1.6},
		mgl32.Vec3{0, 1.5, 0},
		mgl32.Vec3{0, 1, 0},
		30.0,
		aspect,
		0.1, 20.0,
	)
}

// ViewMatrix returns the view matrix
func (c *Camera) ViewMatrix() mgl32.Mat4 {
	if c.dirty {
		c.updateMatrices()
	}
	return c.viewMatrix
}

// ProjectionMatrix returns the projection matrix
func (c *Camera) ProjectionMatrix() mgl32.Mat4 {
	if c.dirty {
		c.updateMatrices()
	}
	return c.projectionMatrix
}

func (c *Camera) updateMatrices() {
	c.viewMatrix = mgl32.LookAtV(c.Position, c.Target, c.Up)
	c.projectionMatrix = mgl32.Perspective(
		mgl32.DegToRad(c.FOV),
		c.AspectRatio,
		c.NearPlane,
		c.FarPlane,
	)
	c.dirty = false
}

// SetPosition updates camera position
func (c *Camera) SetPosition(pos mgl32.Vec3) {
	c.Position = pos
	c.dirty = true
}

// SetTarget updates camera target
func (c *Camera) SetTarget(target mgl32.Vec3) {
	c.Target = target
	c.dirty = true
}

// SetAspectRatio updates aspect ratio
func (c *Camera) SetAspectRatio(aspect float32) {
	c.AspectRatio = aspect
	c.dirty = true
}

// Orbit rotates the camera around the target
func (c *Camera) Orbit(deltaYaw, deltaPitch float32) {
	yawRad := float64(mgl32.DegToRad(deltaYaw))
	pitchRad := float64(mgl32.DegToRad(deltaPitch))

	relPos := c.Position.Sub(c.Target)
	distance := relPos.Len()

	theta := math.Atan2(float64(relPos.X()), float64(relPos.Z()))
	phi := math.Acos(float64(relPos.Y()) / float64(distance))

	theta += yawRad
	phi += pitchRad

	// Clamp pitch to avoid gimbal lock
	phi = math.Max(0.1, math.Min(math.Pi-0.1, phi))

	newPos := mgl32.Vec3{
		float32(math.Sin(phi) * math.Sin(theta)),
		float32(math.Cos(phi)),
		float32(math.Sin(phi) * math.Cos(theta)),
	}.Mul(distance)

	c.Position = c.Target.Add(newPos)
	c.dirty = true
}

// Zoom moves camera toward/away from target
func (c *Camera) Zoom(delta float32) {
	direction := c.Target.Sub(c.Position).Normalize()
	c.Position = c.Position.Add(direction.Mul(delta))

	if c.Position.Sub(c.Target).Len() < 0.1 {
		c.Position = c.Target.Add(direction.Mul(-0.1))
	}

	c.dirty = true
}
