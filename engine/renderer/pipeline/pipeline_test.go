package pipeline

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewStateDefaults(t *testing.T) {
	s := NewState()
	assert.Equal(t, TopologyTriangleList, s.Topology())
	assert.Equal(t, CullModeBack, s.CullMode())
	assert.Equal(t, FrontFaceCCW, s.FrontFace())
}

func TestStateKey(t *testing.T) {
	a := NewState()
	b := NewState(WithTopology(TopologyTriangleList), WithCullMode(CullModeBack), WithFrontFace(FrontFaceCCW))
	c := NewState(WithCullMode(CullModeNone))
	d := NewState(WithFrontFace(FrontFaceCW), WithTopology(TopologyLineList))

	assert.Equal(t, a.Key(), b.Key())
	assert.NotEqual(t, a.Key(), c.Key())
	assert.NotEqual(t, c.Key(), d.Key())
}
