package pipeline

// StateBuilderOption is a functional option used to configure a State during construction.
type StateBuilderOption func(*state)

// WithTopology sets the primitive topology.
//
// Parameters:
//   - topology: the primitive topology to use
//
// Returns:
//   - StateBuilderOption: a function that sets the topology
func WithTopology(topology Topology) StateBuilderOption {
	return func(s *state) {
		s.topology = topology
	}
}

// WithCullMode sets the face culling mode.
//
// Parameters:
//   - cullMode: the cull mode to use
//
// Returns:
//   - StateBuilderOption: a function that sets the cull mode
func WithCullMode(cullMode CullMode) StateBuilderOption {
	return func(s *state) {
		s.cullMode = cullMode
	}
}

// WithFrontFace sets the front-facing winding order.
//
// Parameters:
//   - frontFace: the winding that counts as front-facing
//
// Returns:
//   - StateBuilderOption: a function that sets the front face
func WithFrontFace(frontFace FrontFace) StateBuilderOption {
	return func(s *state) {
		s.frontFace = frontFace
	}
}
