package camera

import (
	"testing"

	"github.com/chewxy/math32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Carmen-Shannon/oxy-cube/common"
)

func TestPolarClampHoldsForAnyKeySequence(t *testing.T) {
	oc := NewOrbitController()
	eps := oc.Epsilon()

	for i := 0; i < 1000; i++ {
		require.True(t, oc.HandleKeyDown(common.KeyUp))
		require.GreaterOrEqual(t, oc.Polar(), eps)
	}
	assert.Equal(t, eps, oc.Polar(), "repeated up converges to the lower clamp")

	for i := 0; i < 1000; i++ {
		oc.HandleKeyDown(common.KeyDown)
		require.LessOrEqual(t, oc.Polar(), math32.Pi-eps)
	}
	assert.Equal(t, math32.Pi-eps, oc.Polar(), "repeated down converges to the upper clamp")
}

func TestKeyBindings(t *testing.T) {
	tests := []struct {
		name        string
		key         int
		wantAzimuth float32
		wantPolar   float32
		consumed    bool
	}{
		{"left", common.KeyLeft, -0.1, math32.Pi / 2, true},
		{"right", common.KeyRight, 0.1, math32.Pi / 2, true},
		{"up", common.KeyUp, 0, math32.Pi/2 - 0.1, true},
		{"down", common.KeyDown, 0, math32.Pi/2 + 0.1, true},
		{"escape is ignored", common.KeyEsc, 0, math32.Pi / 2, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			oc := NewOrbitController()
			assert.Equal(t, tt.consumed, oc.HandleKeyDown(tt.key))
			assert.InDelta(t, tt.wantAzimuth, oc.Azimuth(), 1e-6)
			assert.InDelta(t, tt.wantPolar, oc.Polar(), 1e-6)
		})
	}
}

func TestEyeAfterOneRightStep(t *testing.T) {
	oc := NewOrbitController(WithAzimuth(0), WithPolar(math32.Pi/2), WithDistance(3))
	x, _, _ := oc.Position()
	assert.InDelta(t, 0, x, 1e-6)

	oc.HandleKeyDown(common.KeyRight)
	x, y, z := oc.Position()
	assert.InDelta(t, 0.2996, x, 1e-4)
	assert.InDelta(t, 0, y, 1e-5)
	assert.InDelta(t, 3*math32.Cos(0.1), z, 1e-5)
}

func TestBuilderClampsInitialPolar(t *testing.T) {
	eps := float32(0.2)
	oc := NewOrbitController(WithPolar(-1), WithEpsilon(eps))
	assert.Equal(t, eps, oc.Polar())

	oc.SetPolar(10)
	assert.Equal(t, math32.Pi-eps, oc.Polar())

	assert.Equal(t, float32(3), NewOrbitController(WithDistance(-5)).Distance())
}

func TestViewProjectionIsDeterministic(t *testing.T) {
	cam := NewCamera(WithController(NewOrbitController(WithAzimuth(0.7), WithPolar(1.1), WithDistance(4))))

	first := cam.ViewProjectionMatrix(800.0 / 600.0)
	for i := 0; i < 100; i++ {
		assert.Equal(t, first, cam.ViewProjectionMatrix(800.0/600.0))
	}
}

func TestViewProjectionComposesViewThenProjection(t *testing.T) {
	cam := NewCamera()
	aspect := float32(4.0 / 3.0)

	view := cam.ViewMatrix()
	proj := cam.ProjectionMatrix(aspect)
	var want common.Mat4
	common.Mul4(want[:], proj[:], view[:])
	assert.Equal(t, want, cam.ViewProjectionMatrix(aspect))

	// the origin lands in the middle of the screen at positive depth
	vp := cam.ViewProjectionMatrix(aspect)
	clipX, clipY, clipZ, clipW := vp[12], vp[13], vp[14], vp[15]
	assert.InDelta(t, 0, clipX/clipW, 1e-5)
	assert.InDelta(t, 0, clipY/clipW, 1e-5)
	assert.Greater(t, clipZ/clipW, float32(0))
	assert.Less(t, clipZ/clipW, float32(1))
}

func TestCameraDefaults(t *testing.T) {
	cam := NewCamera()
	assert.Equal(t, float32(math32.Pi/4), cam.Fov())
	assert.Equal(t, float32(0.1), cam.Near())
	assert.Equal(t, float32(100), cam.Far())
	x, y, z := cam.Up()
	assert.Equal(t, [3]float32{0, 1, 0}, [3]float32{x, y, z})
	require.NotNil(t, cam.Controller())
}
