package gpu

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTrackerTrackUntrack(t *testing.T) {
	tr := NewTracker()
	dev := tr.Track(KindDevice, "device")
	buf := tr.Track(KindBuffer, "vertices")
	view := tr.Track(KindRenderTargetView, "backbuffer")

	require.Equal(t, 3, tr.Len())
	assert.Equal(t, 1, tr.Count(KindBuffer))
	assert.Equal(t, 0, tr.Count(KindShader))

	live := tr.Live()
	require.Len(t, live, 3)
	assert.Equal(t, []uuid.UUID{dev, buf, view}, []uuid.UUID{live[0].ID, live[1].ID, live[2].ID})
	assert.Equal(t, "vertices", live[1].Label)

	assert.True(t, tr.Untrack(buf))
	assert.False(t, tr.Untrack(buf))
	assert.Equal(t, 0, tr.Count(KindBuffer))

	live = tr.Live()
	require.Len(t, live, 2)
	assert.Equal(t, dev, live[0].ID)
	assert.Equal(t, view, live[1].ID)
}

func TestObjectBaseMarkReleased(t *testing.T) {
	tr := NewTracker()
	b := NewObjectBase(tr, KindShader, "vs")

	assert.Equal(t, KindShader, b.Kind())
	assert.Equal(t, "vs", b.Label())
	assert.Equal(t, 1, tr.Count(KindShader))
	assert.False(t, b.Released())

	assert.True(t, b.MarkReleased())
	assert.True(t, b.Released())
	assert.Equal(t, 0, tr.Len())
	assert.False(t, b.MarkReleased())
}

func TestObjectBaseWithoutTracker(t *testing.T) {
	b := NewObjectBase(nil, KindBuffer, "untracked")
	assert.NotEqual(t, uuid.Nil, b.ID())
	assert.True(t, b.MarkReleased())
}

func TestLiveObjectString(t *testing.T) {
	tr := NewTracker()
	tr.Track(KindSwapchain, "main")
	s := tr.Live()[0].String()
	assert.Contains(t, s, "swapchain")
	assert.Contains(t, s, `"main"`)
}
