package renderer

import (
	"fmt"
	"strings"

	"github.com/Carmen-Shannon/oxy-cube/engine/renderer/gpu"
)

// PresentMode controls how rendered frames are presented to the display surface.
type PresentMode int

const (
	// PresentModeVSync waits for the next vertical blank before presenting, capping frame rate
	// to the monitor's refresh rate. Eliminates tearing.
	PresentModeVSync PresentMode = iota

	// PresentModeUncapped presents frames immediately without waiting for vertical blank.
	// May cause screen tearing but provides the lowest latency.
	PresentModeUncapped
)

// ParsePresentMode maps a configuration name to a PresentMode.
//
// Parameters:
//   - name: "vsync" or "uncapped"
//
// Returns:
//   - PresentMode: the mode
//   - error: for any other name
func ParsePresentMode(name string) (PresentMode, error) {
	switch strings.ToLower(name) {
	case "vsync":
		return PresentModeVSync, nil
	case "uncapped":
		return PresentModeUncapped, nil
	default:
		return PresentModeVSync, fmt.Errorf("renderer: unknown present mode %q", name)
	}
}

// DefaultSkipAdapters names the software rasterizers that are never selected.
var DefaultSkipAdapters = []string{"Microsoft Basic Render Driver", "llvmpipe", "SwiftShader"}

// SelectAdapter returns the first adapter that is neither a software rasterizer nor on the
// skip list. Skip entries match case-insensitively anywhere in the adapter name.
//
// Parameters:
//   - adapters: adapters in enumeration order
//   - skip: adapter name fragments to reject
//
// Returns:
//   - gpu.AdapterInfo: the selected adapter
//   - error: wrapping gpu.ErrNoHardwareAdapter when nothing qualifies
func SelectAdapter(adapters []gpu.AdapterInfo, skip []string) (gpu.AdapterInfo, error) {
	for _, a := range adapters {
		if a.Software || adapterSkipped(a.Name, skip) {
			continue
		}
		return a, nil
	}
	return gpu.AdapterInfo{}, fmt.Errorf("%w: %d adapters enumerated, all skipped", gpu.ErrNoHardwareAdapter, len(adapters))
}

func adapterSkipped(name string, skip []string) bool {
	lower := strings.ToLower(name)
	for _, s := range skip {
		if s != "" && strings.Contains(lower, strings.ToLower(s)) {
			return true
		}
	}
	return false
}
