package engine

import "errors"

var (
	// ErrNoWindow is returned by NewEngine when no window was supplied.
	ErrNoWindow = errors.New("engine: no window")

	// ErrNoRenderer is returned by NewEngine when no renderer was supplied.
	ErrNoRenderer = errors.New("engine: no renderer")
)
