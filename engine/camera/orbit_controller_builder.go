package camera

// OrbitControllerOption configures an orbit controller during construction.
type OrbitControllerOption func(*orbitControllerImpl)

// WithAzimuth sets the initial azimuth angle.
//
// Parameters:
//   - azimuth: the azimuth in radians
//
// Returns:
//   - OrbitControllerOption: a function that sets the azimuth
func WithAzimuth(azimuth float32) OrbitControllerOption {
	return func(oc *orbitControllerImpl) {
		oc.azimuth = azimuth
	}
}

// WithPolar sets the initial polar angle. It is clamped once all options are applied.
//
// Parameters:
//   - polar: the polar angle in radians
//
// Returns:
//   - OrbitControllerOption: a function that sets the polar angle
func WithPolar(polar float32) OrbitControllerOption {
	return func(oc *orbitControllerImpl) {
		oc.polar = polar
	}
}

// WithDistance sets the orbit radius. Non-positive values are ignored.
//
// Parameters:
//   - distance: the orbit radius
//
// Returns:
//   - OrbitControllerOption: a function that sets the radius
func WithDistance(distance float32) OrbitControllerOption {
	return func(oc *orbitControllerImpl) {
		if distance > 0 {
			oc.distance = distance
		}
	}
}

// WithStep sets the angular step applied per key press.
//
// Parameters:
//   - step: the step in radians
//
// Returns:
//   - OrbitControllerOption: a function that sets the step
func WithStep(step float32) OrbitControllerOption {
	return func(oc *orbitControllerImpl) {
		oc.step = step
	}
}

// WithEpsilon sets the polar clamp margin.
//
// Parameters:
//   - epsilon: the margin in radians, kept away from both poles
//
// Returns:
//   - OrbitControllerOption: a function that sets the margin
func WithEpsilon(epsilon float32) OrbitControllerOption {
	return func(oc *orbitControllerImpl) {
		oc.epsilon = epsilon
	}
}
