package config

import "errors"

var (
	// ErrInvalidConfig is returned by Validate for any out-of-range or unknown setting.
	ErrInvalidConfig = errors.New("config: invalid configuration")

	// ErrWatcherClosed is returned when operating on a closed Watcher.
	ErrWatcherClosed = errors.New("config: watcher closed")
)
