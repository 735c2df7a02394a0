package scene

import (
	"encoding/binary"
	"math"
	"unsafe"

	"github.com/Carmen-Shannon/oxy-cube/engine/renderer/shader"
)

// Vertex is the GPU layout of a single coloured vertex.
// Size: 16 bytes, position at offset 0 and packed RGBA8 colour at offset 12.
// The colour's alpha channel is carried but ignored by the shader.
type Vertex struct {
	Position [3]float32 // offset  0: position in model space (12 bytes)
	Color    [4]uint8   // offset 12: RGBA colour, unorm8x4 (4 bytes)
}

// Size returns the size of the Vertex struct in bytes.
//
// Returns:
//   - int: the size of the struct in bytes.
func (v *Vertex) Size() int {
	return int(unsafe.Sizeof(*v))
}

// Marshal serializes the vertex into a little-endian byte buffer suitable for GPU upload.
//
// Returns:
//   - []byte: 16-byte buffer ready for GPU upload.
func (v *Vertex) Marshal() []byte {
	buf := make([]byte, 16)
	binary.LittleEndian.PutUint32(buf[0:4], math.Float32bits(v.Position[0]))
	binary.LittleEndian.PutUint32(buf[4:8], math.Float32bits(v.Position[1]))
	binary.LittleEndian.PutUint32(buf[8:12], math.Float32bits(v.Position[2]))
	copy(buf[12:16], v.Color[:])
	return buf
}

// VertexLayout returns the input layout table for Vertex. Offsets come from the struct
// itself so the table cannot drift from the memory layout.
//
// Returns:
//   - shader.InputLayoutDescriptor: stride and per-field formats and offsets
func VertexLayout() shader.InputLayoutDescriptor {
	var v Vertex
	return shader.InputLayoutDescriptor{
		Stride: uint64(unsafe.Sizeof(v)),
		Elements: []shader.InputElement{
			{Semantic: "position", Location: 0, Format: shader.VertexFormatFloat32x3, Offset: uint64(unsafe.Offsetof(v.Position))},
			{Semantic: "color", Location: 1, Format: shader.VertexFormatUnorm8x4, Offset: uint64(unsafe.Offsetof(v.Color))},
		},
	}
}
