package pipeline

import "fmt"

// Topology identifies how vertices are assembled into primitives.
type Topology int

const (
	// TopologyTriangleList assembles every three indices into an independent triangle.
	TopologyTriangleList Topology = iota

	// TopologyTriangleStrip assembles each index with the previous two into a triangle.
	TopologyTriangleStrip

	// TopologyLineList assembles every two indices into a line segment.
	TopologyLineList

	// TopologyPointList draws each index as a point.
	TopologyPointList
)

// CullMode selects which triangle faces are discarded during rasterization.
type CullMode int

const (
	// CullModeBack discards back-facing triangles.
	CullModeBack CullMode = iota

	// CullModeFront discards front-facing triangles.
	CullModeFront

	// CullModeNone draws both faces.
	CullModeNone
)

// FrontFace selects the winding order that makes a triangle front-facing.
type FrontFace int

const (
	// FrontFaceCCW treats counter-clockwise triangles (in screen space) as front-facing.
	FrontFaceCCW FrontFace = iota

	// FrontFaceCW treats clockwise triangles as front-facing.
	FrontFaceCW
)

// state is the implementation of the State interface.
// It holds the fixed pipeline configuration bound alongside shaders and buffers.
type state struct {
	topology  Topology
	cullMode  CullMode
	frontFace FrontFace
}

// State describes the primitive assembly and rasterizer configuration of a draw.
// It is immutable once built. Backends that compile whole pipeline objects combine
// Key with their shader and layout identities to cache the compiled result.
type State interface {
	// Key returns a stable identifier for this configuration, used for caching and lookups.
	//
	// Returns:
	//   - string: the key, equal for equal configurations
	Key() string

	// Topology returns the primitive topology.
	//
	// Returns:
	//   - Topology: the primitive topology of this state
	Topology() Topology

	// CullMode returns the face culling mode.
	//
	// Returns:
	//   - CullMode: the cull mode of this state
	CullMode() CullMode

	// FrontFace returns the winding that counts as front-facing.
	//
	// Returns:
	//   - FrontFace: the front face winding of this state
	FrontFace() FrontFace
}

var _ State = &state{}

// NewState creates a pipeline state. The defaults are a triangle list with
// counter-clockwise front faces and back-face culling.
//
// Parameters:
//   - opts: a variadic list of StateBuilderOption functions to configure the state
//
// Returns:
//   - State: the configured pipeline state
func NewState(opts ...StateBuilderOption) State {
	s := &state{
		topology:  TopologyTriangleList,
		cullMode:  CullModeBack,
		frontFace: FrontFaceCCW,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *state) Key() string {
	return fmt.Sprintf("topo%d_cull%d_front%d", s.topology, s.cullMode, s.frontFace)
}

func (s *state) Topology() Topology {
	return s.topology
}

func (s *state) CullMode() CullMode {
	return s.cullMode
}

func (s *state) FrontFace() FrontFace {
	return s.frontFace
}
