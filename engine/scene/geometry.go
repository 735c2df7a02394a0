package scene

import (
	"encoding/binary"
)

// Geometry is a static indexed triangle list.
// Triangles wind counter-clockwise when seen from their front side.
type Geometry struct {
	Vertices []Vertex
	Indices  []uint16
}

// VertexBytes serializes all vertices for upload.
//
// Returns:
//   - []byte: the packed vertex data
func (g *Geometry) VertexBytes() []byte {
	buf := make([]byte, 0, len(g.Vertices)*16)
	for i := range g.Vertices {
		buf = append(buf, g.Vertices[i].Marshal()...)
	}
	return buf
}

// IndexBytes serializes all indices as little-endian uint16 values for upload.
// The result is padded to a multiple of 4 bytes, as WebGPU requires for buffer sizes.
//
// Returns:
//   - []byte: the packed index data
func (g *Geometry) IndexBytes() []byte {
	size := len(g.Indices) * 2
	buf := make([]byte, size+size%4)
	for i, idx := range g.Indices {
		binary.LittleEndian.PutUint16(buf[i*2:], idx)
	}
	return buf
}

// IndexCount returns the number of indices to draw.
func (g *Geometry) IndexCount() uint32 {
	return uint32(len(g.Indices))
}

// TriangleCount returns the number of triangles in the list.
func (g *Geometry) TriangleCount() int {
	return len(g.Indices) / 3
}

// CubeGeometry returns a unit cube centred on the origin with one colour per corner.
//
// Returns:
//   - *Geometry: 8 vertices and 36 indices
func CubeGeometry() *Geometry {
	return &Geometry{
		Vertices: []Vertex{
			{Position: [3]float32{-0.5, -0.5, -0.5}, Color: [4]uint8{0x00, 0x00, 0xFF, 0xFF}},
			{Position: [3]float32{0.5, -0.5, -0.5}, Color: [4]uint8{0x00, 0xFF, 0x00, 0xFF}},
			{Position: [3]float32{0.5, 0.5, -0.5}, Color: [4]uint8{0xFF, 0x00, 0x00, 0xFF}},
			{Position: [3]float32{-0.5, 0.5, -0.5}, Color: [4]uint8{0x00, 0xFF, 0xFF, 0xFF}},
			{Position: [3]float32{-0.5, -0.5, 0.5}, Color: [4]uint8{0xFF, 0x00, 0xFF, 0xFF}},
			{Position: [3]float32{0.5, -0.5, 0.5}, Color: [4]uint8{0xFF, 0xFF, 0x00, 0xFF}},
			{Position: [3]float32{0.5, 0.5, 0.5}, Color: [4]uint8{0xFF, 0xFF, 0xFF, 0xFF}},
			{Position: [3]float32{-0.5, 0.5, 0.5}, Color: [4]uint8{0x00, 0x00, 0x00, 0xFF}},
		},
		Indices: []uint16{
			0, 2, 1, 0, 3, 2, // -Z
			4, 5, 6, 4, 6, 7, // +Z
			0, 4, 7, 0, 7, 3, // -X
			1, 2, 6, 1, 6, 5, // +X
			3, 7, 6, 3, 6, 2, // +Y
			0, 1, 5, 0, 5, 4, // -Y
		},
	}
}

// TriangleGeometry returns a single triangle in the XY plane facing +Z.
//
// Returns:
//   - *Geometry: 3 vertices and 3 indices
func TriangleGeometry() *Geometry {
	return &Geometry{
		Vertices: []Vertex{
			{Position: [3]float32{0.0, 0.5, 0.0}, Color: [4]uint8{0xFF, 0x00, 0x00, 0xFF}},
			{Position: [3]float32{-0.5, -0.5, 0.0}, Color: [4]uint8{0x00, 0x00, 0xFF, 0xFF}},
			{Position: [3]float32{0.5, -0.5, 0.0}, Color: [4]uint8{0x00, 0xFF, 0x00, 0xFF}},
		},
		Indices: []uint16{0, 1, 2},
	}
}
