package shader

import _ "embed"

// ColoredVertexSource is the vertex stage shared by every built-in scene.
// It reads a position and an RGBA8 colour and expects the model matrix at
// @group(0) @binding(0) and the view-projection matrix at @group(0) @binding(1).
//
//go:embed wgsl/colored_vertex.wgsl
var ColoredVertexSource string

// ColoredFragmentSource outputs the interpolated vertex colour.
//
//go:embed wgsl/colored_fragment.wgsl
var ColoredFragmentSource string
