package scene

import (
	"fmt"

	"github.com/Carmen-Shannon/oxy-cube/engine/renderer/pipeline"
	"github.com/Carmen-Shannon/oxy-cube/engine/renderer/shader"
)

// Built-in scene names.
const (
	NameClear    = "clear"
	NameTriangle = "triangle"
	NameCube     = "cube"
)

var (
	// clearOnlyColor is the clear colour of the clear-only scene.
	clearOnlyColor = [4]float32{0.25, 0.25, 1.0, 1.0}

	// geometryClearColor is the clear colour behind the triangle and cube.
	geometryClearColor = [4]float32{0.0, 0.15, 0.3, 1.0}
)

// sceneImpl is the implementation of the Scene interface.
type sceneImpl struct {
	name           string
	geometry       *Geometry
	clearColor     [4]float32
	baseClearColor [4]float32
	vertexSource   string
	fragmentSource string
	state          pipeline.State
	rotation       *Rotation
}

// Scene is the static description of what is drawn each frame: geometry, shaders,
// pipeline state, clear colour and the model rotation. A scene without geometry only
// clears and presents.
type Scene interface {
	// Name returns the scene's identifier.
	Name() string

	// Geometry returns the static geometry, nil for a clear-only scene.
	//
	// Returns:
	//   - *Geometry: vertices and indices to upload once
	Geometry() *Geometry

	// ClearColor returns the RGBA colour the backbuffer is cleared to each frame.
	ClearColor() [4]float32

	// DefaultClearColor returns the scene's built-in clear colour, ignoring any override.
	DefaultClearColor() [4]float32

	// SetClearColor replaces the clear colour.
	//
	// Parameters:
	//   - color: the RGBA colour
	SetClearColor(color [4]float32)

	// VertexSource returns the WGSL source of the vertex stage.
	VertexSource() string

	// FragmentSource returns the WGSL source of the fragment stage.
	FragmentSource() string

	// VertexLayout returns the input layout table of the scene's vertex record.
	VertexLayout() shader.InputLayoutDescriptor

	// PipelineState returns the primitive and rasterizer state.
	PipelineState() pipeline.State

	// Rotation returns the model rotation accumulator.
	Rotation() *Rotation
}

var _ Scene = &sceneImpl{}

// New creates a built-in scene by name.
//
// Parameters:
//   - name: one of NameClear, NameTriangle or NameCube
//   - options: variadic list of SceneBuilderOption functions applied after the defaults
//
// Returns:
//   - Scene: the scene
//   - error: if the name is unknown
func New(name string, options ...SceneBuilderOption) (Scene, error) {
	s := &sceneImpl{
		name:           name,
		vertexSource:   shader.ColoredVertexSource,
		fragmentSource: shader.ColoredFragmentSource,
		state:          pipeline.NewState(),
		clearColor:     geometryClearColor,
	}

	velocity := float32(0)
	switch name {
	case NameClear:
		s.clearColor = clearOnlyColor
	case NameTriangle:
		s.geometry = TriangleGeometry()
	case NameCube:
		s.geometry = CubeGeometry()
		velocity = 0.5
	default:
		return nil, fmt.Errorf("scene: unknown scene %q", name)
	}
	s.rotation = NewRotation(velocity)
	s.baseClearColor = s.clearColor

	for _, option := range options {
		option(s)
	}
	return s, nil
}

func (s *sceneImpl) Name() string {
	return s.name
}

func (s *sceneImpl) Geometry() *Geometry {
	return s.geometry
}

func (s *sceneImpl) ClearColor() [4]float32 {
	return s.clearColor
}

func (s *sceneImpl) DefaultClearColor() [4]float32 {
	return s.baseClearColor
}

func (s *sceneImpl) SetClearColor(color [4]float32) {
	s.clearColor = color
}

func (s *sceneImpl) VertexSource() string {
	return s.vertexSource
}

func (s *sceneImpl) FragmentSource() string {
	return s.fragmentSource
}

func (s *sceneImpl) VertexLayout() shader.InputLayoutDescriptor {
	return VertexLayout()
}

func (s *sceneImpl) PipelineState() pipeline.State {
	return s.state
}

func (s *sceneImpl) Rotation() *Rotation {
	return s.rotation
}
