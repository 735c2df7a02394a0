package camera

import (
	"github.com/chewxy/math32"

	"github.com/Carmen-Shannon/oxy-cube/common"
)

// orbitControllerImpl is the implementation of the OrbitController interface.
// The eye sits on a sphere around the origin described by an azimuth around +Y and
// a polar angle measured down from +Y. All state is owned by the render loop goroutine.
type orbitControllerImpl struct {
	azimuth  float32 // φ, radians around +Y, measured from +Z towards +X
	polar    float32 // θ, radians from +Y
	distance float32 // orbit radius
	step     float32 // angular step per key press
	epsilon  float32 // polar clamp margin, keeps θ in [ε, π-ε]
}

// OrbitController holds the orbit angles and distance of a camera and maps discrete
// key-down events onto fixed angular steps. There is no smoothing, inertia or key-up
// handling; held keys rely on the host's key repeat for continuous motion.
type OrbitController interface {
	// Azimuth returns the azimuth angle φ in radians.
	//
	// Returns:
	//   - float32: the current azimuth
	Azimuth() float32

	// Polar returns the polar angle θ in radians, always within [ε, π-ε].
	//
	// Returns:
	//   - float32: the current polar angle
	Polar() float32

	// Distance returns the orbit radius.
	//
	// Returns:
	//   - float32: the current distance from the origin
	Distance() float32

	// Epsilon returns the margin that keeps the polar angle away from the poles.
	//
	// Returns:
	//   - float32: the clamp margin in radians
	Epsilon() float32

	// Step returns the angular step applied per key press.
	//
	// Returns:
	//   - float32: the step in radians
	Step() float32

	// Position returns the eye position derived from the current angles and distance.
	//
	// Returns:
	//   - x, y, z: eye position in world space
	Position() (x, y, z float32)

	// OrbitLeft decreases the azimuth by one step.
	OrbitLeft()

	// OrbitRight increases the azimuth by one step.
	OrbitRight()

	// OrbitUp moves the eye towards +Y by decreasing the polar angle one step, clamped.
	OrbitUp()

	// OrbitDown moves the eye towards -Y by increasing the polar angle one step, clamped.
	OrbitDown()

	// HandleKeyDown applies the arrow key bindings to the orbit.
	//
	// Parameters:
	//   - key: the key code, see common.KeyLeft and friends
	//
	// Returns:
	//   - bool: true if the key was consumed
	HandleKeyDown(key int) bool

	// SetAzimuth sets the azimuth angle directly.
	//
	// Parameters:
	//   - azimuth: the new azimuth in radians
	SetAzimuth(azimuth float32)

	// SetPolar sets the polar angle, clamped to [ε, π-ε].
	//
	// Parameters:
	//   - polar: the new polar angle in radians
	SetPolar(polar float32)
}

var _ OrbitController = &orbitControllerImpl{}

// NewOrbitController creates an orbit controller starting on the equator at azimuth 0,
// distance 3, stepping 0.1 radians per key press with a 0.1 radian polar margin.
//
// Parameters:
//   - options: variadic list of OrbitControllerOption functions to configure the controller
//
// Returns:
//   - OrbitController: the newly created controller
func NewOrbitController(options ...OrbitControllerOption) OrbitController {
	oc := &orbitControllerImpl{
		azimuth:  0,
		polar:    math32.Pi / 2,
		distance: 3,
		step:     0.1,
		epsilon:  0.1,
	}
	for _, option := range options {
		option(oc)
	}
	oc.polar = oc.clampPolar(oc.polar)
	return oc
}

func (oc *orbitControllerImpl) clampPolar(polar float32) float32 {
	return common.Clamp(polar, oc.epsilon, math32.Pi-oc.epsilon)
}

func (oc *orbitControllerImpl) Azimuth() float32 {
	return oc.azimuth
}

func (oc *orbitControllerImpl) Polar() float32 {
	return oc.polar
}

func (oc *orbitControllerImpl) Distance() float32 {
	return oc.distance
}

func (oc *orbitControllerImpl) Epsilon() float32 {
	return oc.epsilon
}

func (oc *orbitControllerImpl) Step() float32 {
	return oc.step
}

func (oc *orbitControllerImpl) Position() (x, y, z float32) {
	return common.SphericalToCartesian(oc.distance, oc.polar, oc.azimuth)
}

func (oc *orbitControllerImpl) OrbitLeft() {
	oc.azimuth -= oc.step
}

func (oc *orbitControllerImpl) OrbitRight() {
	oc.azimuth += oc.step
}

func (oc *orbitControllerImpl) OrbitUp() {
	oc.polar = oc.clampPolar(oc.polar - oc.step)
}

func (oc *orbitControllerImpl) OrbitDown() {
	oc.polar = oc.clampPolar(oc.polar + oc.step)
}

func (oc *orbitControllerImpl) HandleKeyDown(key int) bool {
	switch key {
	case common.KeyLeft:
		oc.OrbitLeft()
	case common.KeyRight:
		oc.OrbitRight()
	case common.KeyUp:
		oc.OrbitUp()
	case common.KeyDown:
		oc.OrbitDown()
	default:
		return false
	}
	return true
}

func (oc *orbitControllerImpl) SetAzimuth(azimuth float32) {
	oc.azimuth = azimuth
}

func (oc *orbitControllerImpl) SetPolar(polar float32) {
	oc.polar = oc.clampPolar(polar)
}
