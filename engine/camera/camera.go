package camera

import (
	"github.com/chewxy/math32"

	"github.com/Carmen-Shannon/oxy-cube/common"
)

// cameraImpl is the implementation of the Camera interface.
// It holds the fixed projection parameters and the orbit controller that positions the eye.
type cameraImpl struct {
	up [3]float32

	fov  float32
	near float32
	far  float32

	controller OrbitController
}

// Camera builds view and projection transforms from an orbit controller and fixed
// projection parameters. Matrices are recomputed on every call; there is no cached
// state, so identical inputs always produce bit-identical results.
type Camera interface {
	// Up returns the camera's up vector.
	//
	// Returns:
	//   - x, y, z: the up vector components
	Up() (x, y, z float32)

	// Fov returns the vertical field of view in radians.
	//
	// Returns:
	//   - float32: the field of view
	Fov() float32

	// Near returns the near clipping plane distance.
	//
	// Returns:
	//   - float32: the near plane
	Near() float32

	// Far returns the far clipping plane distance.
	//
	// Returns:
	//   - float32: the far plane
	Far() float32

	// Controller returns the orbit controller that owns the eye position.
	//
	// Returns:
	//   - OrbitController: the attached controller
	Controller() OrbitController

	// ViewMatrix computes the look-at transform from the controller's eye towards the origin.
	//
	// Returns:
	//   - common.Mat4: the view matrix
	ViewMatrix() common.Mat4

	// ProjectionMatrix computes the perspective transform for the given aspect ratio.
	//
	// Parameters:
	//   - aspect: surface width divided by height
	//
	// Returns:
	//   - common.Mat4: the projection matrix
	ProjectionMatrix(aspect float32) common.Mat4

	// ViewProjectionMatrix composes the view transform followed by the projection.
	// With column vectors this is proj * view; the resulting bytes equal a row-major
	// view * proj in the row-vector convention.
	//
	// Parameters:
	//   - aspect: surface width divided by height
	//
	// Returns:
	//   - common.Mat4: the combined world-to-clip transform
	ViewProjectionMatrix(aspect float32) common.Mat4
}

var _ Camera = &cameraImpl{}

// NewCamera creates a camera with a π/4 field of view, near plane 0.1, far plane 100
// and +Y up. A default orbit controller is attached unless one is supplied.
//
// Parameters:
//   - options: variadic list of CameraBuilderOption functions to configure the camera
//
// Returns:
//   - Camera: the newly created camera
func NewCamera(options ...CameraBuilderOption) Camera {
	c := &cameraImpl{
		up:   [3]float32{0, 1, 0},
		fov:  math32.Pi / 4,
		near: 0.1,
		far:  100.0,
	}
	for _, option := range options {
		option(c)
	}
	if c.controller == nil {
		c.controller = NewOrbitController()
	}
	return c
}

func (c *cameraImpl) Up() (x, y, z float32) {
	return c.up[0], c.up[1], c.up[2]
}

func (c *cameraImpl) Fov() float32 {
	return c.fov
}

func (c *cameraImpl) Near() float32 {
	return c.near
}

func (c *cameraImpl) Far() float32 {
	return c.far
}

func (c *cameraImpl) Controller() OrbitController {
	return c.controller
}

func (c *cameraImpl) ViewMatrix() common.Mat4 {
	var view common.Mat4
	ex, ey, ez := c.controller.Position()
	common.LookAt(view[:], ex, ey, ez, 0, 0, 0, c.up[0], c.up[1], c.up[2])
	return view
}

func (c *cameraImpl) ProjectionMatrix(aspect float32) common.Mat4 {
	var proj common.Mat4
	if aspect <= 0 {
		aspect = 1
	}
	common.Perspective(proj[:], c.fov, aspect, c.near, c.far)
	return proj
}

func (c *cameraImpl) ViewProjectionMatrix(aspect float32) common.Mat4 {
	view := c.ViewMatrix()
	proj := c.ProjectionMatrix(aspect)

	var vp common.Mat4
	common.Mul4(vp[:], proj[:], view[:])
	return vp
}
