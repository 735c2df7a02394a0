package shader

import (
	"fmt"
)

// ShaderType identifies the pipeline stage a shader runs in.
type ShaderType int

const (
	// ShaderTypeVertex is the vertex shader type, used for vertex processing in render pipelines.
	ShaderTypeVertex ShaderType = iota

	// ShaderTypeFragment is the fragment (pixel) shader type, used in pair with a vertex shader.
	ShaderTypeFragment
)

// String returns the stage name.
func (t ShaderType) String() string {
	switch t {
	case ShaderTypeVertex:
		return "vertex"
	case ShaderTypeFragment:
		return "fragment"
	default:
		return fmt.Sprintf("ShaderType(%d)", int(t))
	}
}

// VertexInput is one reflected vertex shader input.
type VertexInput struct {
	// Location is the @location index of the input.
	Location uint32
	// Name is the field or parameter name, used as the semantic name.
	Name string
	// Type is the WGSL type, e.g. "vec3<f32>".
	Type string
}

// UniformBinding is one reflected var<uniform> declaration.
type UniformBinding struct {
	Group   uint32
	Binding uint32
	Name    string
	Type    string
	// Size is the byte size of the bound type, 0 when it could not be resolved.
	Size uint64
}

// shader is the implementation of the Shader interface.
// It holds the source and everything reflected from it at construction.
type shader struct {
	key          string
	source       string
	shaderType   ShaderType
	entryPoint   string
	vertexInputs []VertexInput
	uniforms     []UniformBinding
}

// Shader is a parsed WGSL shader stage. Reflection happens once in NewShader; the
// GPU-side module is created separately by a device, which keeps this type free of
// any GPU dependency.
type Shader interface {
	// Key retrieves the unique identifier for this shader, used for labels and lookups.
	//
	// Returns:
	//   - string: the shader's unique key
	Key() string

	// Source retrieves the WGSL shader source code.
	//
	// Returns:
	//   - string: the WGSL source code of the shader
	Source() string

	// ShaderType returns the stage of the shader.
	//
	// Returns:
	//   - ShaderType: ShaderTypeVertex or ShaderTypeFragment
	ShaderType() ShaderType

	// EntryPoint returns the entry point name for this shader.
	//
	// Returns:
	//   - string: the entry point name (e.g. "vs_main")
	EntryPoint() string

	// VertexInputs returns the input signature of a vertex shader sorted by location.
	// Fragment shaders return nil.
	//
	// Returns:
	//   - []VertexInput: reflected inputs, builtins excluded
	VertexInputs() []VertexInput

	// Uniforms returns the uniform buffer bindings declared by the shader sorted by group then binding.
	//
	// Returns:
	//   - []UniformBinding: reflected uniform declarations
	Uniforms() []UniformBinding

	// Uniform looks up a uniform binding by group and binding index.
	//
	// Parameters:
	//   - group: the bind group index
	//   - binding: the binding index within the group
	//
	// Returns:
	//   - UniformBinding: the binding, zero value if absent
	//   - bool: true if the binding exists
	Uniform(group, binding uint32) (UniformBinding, bool)
}

var _ Shader = &shader{}

// NewShader parses WGSL source for the given stage.
//
// Parameters:
//   - key: unique identifier used as the shader's label
//   - shaderType: the stage whose entry point is reflected
//   - source: WGSL source text
//
// Returns:
//   - Shader: the parsed shader
//   - error: ErrNoEntryPoint if the stage has no entry point, ErrUnsupportedType for unsized inputs
func NewShader(key string, shaderType ShaderType, source string) (Shader, error) {
	s := &shader{
		key:        key,
		source:     source,
		shaderType: shaderType,
	}

	s.entryPoint = parseEntryPoint(source, shaderType)
	if s.entryPoint == "" {
		return nil, fmt.Errorf("%w: %s shader %q", ErrNoEntryPoint, shaderType, key)
	}

	if shaderType == ShaderTypeVertex {
		inputs, err := parseVertexInputs(source, s.entryPoint)
		if err != nil {
			return nil, fmt.Errorf("shader %q: %w", key, err)
		}
		s.vertexInputs = inputs
	}
	s.uniforms = parseUniformBindings(source)

	return s, nil
}

func (s *shader) Key() string {
	return s.key
}

func (s *shader) Source() string {
	return s.source
}

func (s *shader) ShaderType() ShaderType {
	return s.shaderType
}

func (s *shader) EntryPoint() string {
	return s.entryPoint
}

func (s *shader) VertexInputs() []VertexInput {
	return s.vertexInputs
}

func (s *shader) Uniforms() []UniformBinding {
	return s.uniforms
}

func (s *shader) Uniform(group, binding uint32) (UniformBinding, bool) {
	for _, u := range s.uniforms {
		if u.Group == group && u.Binding == binding {
			return u, true
		}
	}
	return UniformBinding{}, false
}
