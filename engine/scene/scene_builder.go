package scene

import "github.com/Carmen-Shannon/oxy-cube/engine/renderer/pipeline"

// SceneBuilderOption configures a scene during construction.
type SceneBuilderOption func(*sceneImpl)

// WithClearColor overrides the scene's clear colour.
//
// Parameters:
//   - color: the RGBA clear colour
//
// Returns:
//   - SceneBuilderOption: a function that sets the clear colour
func WithClearColor(color [4]float32) SceneBuilderOption {
	return func(s *sceneImpl) {
		s.clearColor = color
	}
}

// WithAngularVelocity overrides the model rotation speed.
//
// Parameters:
//   - velocity: radians per second about +Y
//
// Returns:
//   - SceneBuilderOption: a function that sets the angular velocity
func WithAngularVelocity(velocity float32) SceneBuilderOption {
	return func(s *sceneImpl) {
		s.rotation = NewRotation(velocity)
	}
}

// WithShaderSources replaces the WGSL sources of both stages.
//
// Parameters:
//   - vertex: the vertex stage source
//   - fragment: the fragment stage source
//
// Returns:
//   - SceneBuilderOption: a function that sets the shader sources
func WithShaderSources(vertex, fragment string) SceneBuilderOption {
	return func(s *sceneImpl) {
		s.vertexSource = vertex
		s.fragmentSource = fragment
	}
}

// WithPipelineState replaces the primitive and rasterizer state.
//
// Parameters:
//   - state: the pipeline state
//
// Returns:
//   - SceneBuilderOption: a function that sets the pipeline state
func WithPipelineState(state pipeline.State) SceneBuilderOption {
	return func(s *sceneImpl) {
		s.state = state
	}
}
