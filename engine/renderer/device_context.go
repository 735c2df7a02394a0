package renderer

import (
	"fmt"

	"github.com/Carmen-Shannon/oxy-cube/engine/renderer/gpu"
	"github.com/charmbracelet/log"
)

// deviceContext pairs the device with its immediate context.
type deviceContext struct {
	device  gpu.Device
	context gpu.Context
	debug   bool
}

func newDeviceContext(backend gpu.Backend, adapter gpu.AdapterInfo, debug bool) (*deviceContext, error) {
	device, err := backend.CreateDevice(adapter, gpu.DeviceDescriptor{
		Label:        "oxy-cube device",
		FeatureLevel: gpu.FeatureLevelDefault,
		Debug:        debug,
	})
	if err != nil {
		return nil, fmt.Errorf("renderer: create device on %q: %w", adapter.Name, err)
	}
	return &deviceContext{
		device:  device,
		context: device.ImmediateContext(),
		debug:   debug,
	}, nil
}

// release clears and releases the context, reports leaks in debug mode, then releases the device.
func (dc *deviceContext) release(logger *log.Logger) {
	dc.context.ClearState()
	dc.context.Release()

	if dc.debug {
		leaks := 0
		for _, o := range dc.device.LiveObjects() {
			if o.Kind == gpu.KindDevice {
				continue
			}
			leaks++
			logger.Warn("live object at device release", "kind", o.Kind, "label", o.Label, "id", o.ID)
		}
		if leaks == 0 {
			logger.Debug("no live objects at device release")
		}
	}

	dc.device.Release()
}
