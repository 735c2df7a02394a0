package wgpubackend

import (
	"testing"

	"github.com/Carmen-Shannon/oxy-cube/engine/renderer/gpu"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestSwapchain builds a swapchain with no native surface. Only paths that stay off the
// surface may be exercised with it.
func newTestSwapchain() *swapchain {
	d := &device{tracker: gpu.NewTracker()}
	s := &swapchain{
		ObjectBase: gpu.NewObjectBase(d.tracker, gpu.KindSwapchain, "swapchain"),
		device:     d,
		desc:       gpu.SwapchainDescriptor{Width: 800, Height: 600, BufferCount: 2},
	}
	d.swapchain = s
	return s
}

func TestSwapchainBackbufferReferences(t *testing.T) {
	s := newTestSwapchain()

	tex, err := s.Buffer(0)
	require.NoError(t, err)
	assert.Equal(t, 800, tex.Width())
	assert.Equal(t, 600, tex.Height())
	assert.Equal(t, 1, s.refs)

	err = s.ResizeBuffers(0, 1024, 768, gpu.FormatUnknown)
	assert.ErrorIs(t, err, gpu.ErrBackbufferReferenced)
	assert.Equal(t, 800, s.Desc().Width, "a refused resize keeps the old size")

	tex.Release()
	tex.Release()
	assert.Equal(t, 0, s.refs)

	_, err = s.Buffer(1)
	assert.ErrorIs(t, err, gpu.ErrInvalidDescriptor)
	assert.Equal(t, 0, s.refs)
}

func TestSwapchainResizeRejectsEmptySize(t *testing.T) {
	s := newTestSwapchain()
	assert.ErrorIs(t, s.ResizeBuffers(0, 0, 600, gpu.FormatUnknown), gpu.ErrInvalidDescriptor)
	assert.ErrorIs(t, s.ResizeBuffers(0, 800, -1, gpu.FormatUnknown), gpu.ErrInvalidDescriptor)
}

func TestSwapchainReleaseWithoutFrame(t *testing.T) {
	s := newTestSwapchain()
	s.Release()
	s.Release()
	assert.True(t, s.Released())
	assert.Nil(t, s.frameView)
	assert.Nil(t, s.frameTexture)
}

func TestRenderTargetViewReleasesReference(t *testing.T) {
	s := newTestSwapchain()
	s.refs = 1
	v := &renderTargetView{
		ObjectBase: gpu.NewObjectBase(s.device.tracker, gpu.KindRenderTargetView, "backbuffer view"),
		swapchain:  s,
	}
	v.Release()
	v.Release()
	assert.Equal(t, 0, s.refs)
}
