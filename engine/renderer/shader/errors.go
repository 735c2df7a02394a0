package shader

import "errors"

var (
	// ErrNoEntryPoint is returned when the source lacks an entry point for the requested stage.
	ErrNoEntryPoint = errors.New("shader: no entry point for stage")

	// ErrInputLayoutMismatch is returned when an input layout does not satisfy a vertex shader's input signature.
	ErrInputLayoutMismatch = errors.New("shader: input layout does not match vertex shader inputs")

	// ErrUnsupportedType is returned when a vertex input or uniform uses a WGSL type the parser cannot size.
	ErrUnsupportedType = errors.New("shader: unsupported WGSL type")
)
