package config

// WatcherBuilderOption is a functional option for configuring a Watcher.
type WatcherBuilderOption func(*Watcher)

// WithOverlay sets a function applied to every reloaded config before it is validated and
// published, such as re-applying command line flags over the file.
//
// Parameters:
//   - overlay: mutates the freshly loaded config
//
// Returns:
//   - WatcherBuilderOption: option function to apply
func WithOverlay(overlay func(*Config)) WatcherBuilderOption {
	return func(w *Watcher) {
		w.overlay = overlay
	}
}
