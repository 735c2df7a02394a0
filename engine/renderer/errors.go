package renderer

import "errors"

var (
	// ErrAlreadyInitialized is returned by Init on a renderer that is already initialized.
	ErrAlreadyInitialized = errors.New("renderer: already initialized")

	// ErrNotInitialized is returned by operations that need a device before Init succeeded.
	ErrNotInitialized = errors.New("renderer: not initialized")

	// ErrViewAlive is returned when the backbuffer view is recreated while one still exists.
	ErrViewAlive = errors.New("renderer: backbuffer view still alive")

	// ErrInvalidSize is returned by Init for a non-positive surface size.
	ErrInvalidSize = errors.New("renderer: invalid surface size")

	// ErrUniformLayout is returned when a shader's uniform declarations do not match the uniform buffers.
	ErrUniformLayout = errors.New("renderer: shader uniforms do not match uniform buffers")
)
