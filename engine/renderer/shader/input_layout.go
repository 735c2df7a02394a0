package shader

import (
	"fmt"
	"slices"
)

// VertexFormat is the memory format of one vertex attribute in a vertex buffer.
type VertexFormat int

const (
	VertexFormatUndefined VertexFormat = iota
	VertexFormatFloat32
	VertexFormatFloat32x2
	VertexFormatFloat32x3
	VertexFormatFloat32x4
	VertexFormatUnorm8x4
	VertexFormatUint32
	VertexFormatSint32
)

var vertexFormatInfo = map[VertexFormat]struct {
	name string
	size uint64
}{
	VertexFormatFloat32:   {"float32", 4},
	VertexFormatFloat32x2: {"float32x2", 8},
	VertexFormatFloat32x3: {"float32x3", 12},
	VertexFormatFloat32x4: {"float32x4", 16},
	VertexFormatUnorm8x4:  {"unorm8x4", 4},
	VertexFormatUint32:    {"uint32", 4},
	VertexFormatSint32:    {"sint32", 4},
}

// Size returns the byte size of one attribute in this format, 0 if undefined.
func (f VertexFormat) Size() uint64 {
	return vertexFormatInfo[f].size
}

// String returns the WebGPU-style name of the format.
func (f VertexFormat) String() string {
	if info, ok := vertexFormatInfo[f]; ok {
		return info.name
	}
	return fmt.Sprintf("VertexFormat(%d)", int(f))
}

// wgslAttributeFormats maps WGSL vertex input types to the buffer formats that can feed them.
// Normalized formats widen to float vectors; vec4<f32> also accepts packed unorm8x4 colour.
var wgslAttributeFormats = map[string][]VertexFormat{
	"f32":       {VertexFormatFloat32},
	"vec2<f32>": {VertexFormatFloat32x2},
	"vec2f":     {VertexFormatFloat32x2},
	"vec3<f32>": {VertexFormatFloat32x3},
	"vec3f":     {VertexFormatFloat32x3},
	"vec4<f32>": {VertexFormatFloat32x4, VertexFormatUnorm8x4},
	"vec4f":     {VertexFormatFloat32x4, VertexFormatUnorm8x4},
	"u32":       {VertexFormatUint32},
	"i32":       {VertexFormatSint32},
}

// InputElement describes one attribute of an interleaved vertex buffer.
type InputElement struct {
	// Semantic names the attribute, e.g. "position"; informational only.
	Semantic string
	// Location is the shader @location the attribute feeds.
	Location uint32
	// Format is the in-memory format of the attribute.
	Format VertexFormat
	// Offset is the byte offset of the attribute inside one vertex.
	Offset uint64
}

// InputLayoutDescriptor is the explicit per-field format and offset table of a vertex record.
type InputLayoutDescriptor struct {
	// Stride is the byte size of one vertex record.
	Stride   uint64
	Elements []InputElement
}

// ValidateInputLayout checks an input layout against a vertex shader's input signature.
// Every shader input must be fed by exactly one element with a compatible format, and every
// element must lie inside the stride. Elements for locations the shader does not read are
// rejected as well, since they indicate a table that drifted from the shader.
//
// Parameters:
//   - inputs: the reflected vertex shader inputs
//   - layout: the explicit element table
//
// Returns:
//   - error: wrapping ErrInputLayoutMismatch describing the first problem found
func ValidateInputLayout(inputs []VertexInput, layout InputLayoutDescriptor) error {
	mismatch := func(format string, args ...any) error {
		return fmt.Errorf("%w: %s", ErrInputLayoutMismatch, fmt.Sprintf(format, args...))
	}

	if layout.Stride == 0 {
		return mismatch("stride is zero")
	}

	byLocation := make(map[uint32]InputElement, len(layout.Elements))
	for _, el := range layout.Elements {
		if _, dup := byLocation[el.Location]; dup {
			return mismatch("location %d is described twice", el.Location)
		}
		size := el.Format.Size()
		if size == 0 {
			return mismatch("element %q has undefined format", el.Semantic)
		}
		if el.Offset+size > layout.Stride {
			return mismatch("element %q at offset %d size %d overruns stride %d", el.Semantic, el.Offset, size, layout.Stride)
		}
		byLocation[el.Location] = el
	}

	for _, in := range inputs {
		el, ok := byLocation[in.Location]
		if !ok {
			return mismatch("shader input %q at location %d has no element", in.Name, in.Location)
		}
		if !slices.Contains(wgslAttributeFormats[in.Type], el.Format) {
			return mismatch("shader input %q is %s but element %q is %s", in.Name, in.Type, el.Semantic, el.Format)
		}
		delete(byLocation, in.Location)
	}
	for loc, el := range byLocation {
		return mismatch("element %q at location %d is not read by the shader", el.Semantic, loc)
	}

	return nil
}
