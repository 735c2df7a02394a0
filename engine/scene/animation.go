package scene

import (
	"github.com/Carmen-Shannon/oxy-cube/common"
)

// Rotation accumulates a model rotation about +Y at a fixed angular velocity.
// The angle grows without bound; the rotation matrix is periodic so no wrapping is applied.
type Rotation struct {
	angle    float32
	velocity float32
}

// NewRotation creates a rotation starting at angle zero.
//
// Parameters:
//   - velocity: angular velocity in radians per second
//
// Returns:
//   - *Rotation: the accumulator
func NewRotation(velocity float32) *Rotation {
	return &Rotation{velocity: velocity}
}

// Advance adds velocity × dt to the angle and returns the new angle.
//
// Parameters:
//   - dt: elapsed seconds since the previous frame
//
// Returns:
//   - float32: the accumulated angle in radians
func (r *Rotation) Advance(dt float32) float32 {
	r.angle += r.velocity * dt
	return r.angle
}

// Angle returns the accumulated angle in radians.
func (r *Rotation) Angle() float32 {
	return r.angle
}

// Velocity returns the angular velocity in radians per second.
func (r *Rotation) Velocity() float32 {
	return r.velocity
}

// ModelMatrix returns the rotation for the current angle.
//
// Returns:
//   - common.Mat4: the model transform
func (r *Rotation) ModelMatrix() common.Mat4 {
	var m common.Mat4
	common.RotationY(m[:], r.angle)
	return m
}
