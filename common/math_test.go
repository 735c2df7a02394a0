package common

import (
	"testing"

	"github.com/chewxy/math32"
	"github.com/stretchr/testify/assert"
)

const tolerance = 1e-5

// transform applies a column-major matrix to a point with w = 1.
func transform(m Mat4, x, y, z float32) (float32, float32, float32, float32) {
	return m[0]*x + m[4]*y + m[8]*z + m[12],
		m[1]*x + m[5]*y + m[9]*z + m[13],
		m[2]*x + m[6]*y + m[10]*z + m[14],
		m[3]*x + m[7]*y + m[11]*z + m[15]
}

func TestMul4Identity(t *testing.T) {
	var a Mat4
	for i := range a {
		a[i] = float32(i + 1)
	}
	id := IdentityMat4()

	var out Mat4
	Mul4(out[:], a[:], id[:])
	assert.Equal(t, a, out)

	Mul4(out[:], id[:], a[:])
	assert.Equal(t, a, out)
}

func TestMul4AppliesRightOperandFirst(t *testing.T) {
	var rot, trans, out Mat4
	RotationY(rot[:], math32.Pi/2)
	Identity(trans[:])
	trans[12] = 1 // translate +X

	// out = rot * trans: translate first, then rotate +X onto -Z
	Mul4(out[:], rot[:], trans[:])
	x, y, z, w := transform(out, 0, 0, 0)
	assert.InDelta(t, 0, x, tolerance)
	assert.InDelta(t, 0, y, tolerance)
	assert.InDelta(t, -1, z, tolerance)
	assert.InDelta(t, 1, w, tolerance)
}

func TestRotationY(t *testing.T) {
	var m Mat4
	RotationY(m[:], math32.Pi/2)

	x, y, z, _ := transform(m, 0, 0, 1)
	assert.InDelta(t, 1, x, tolerance)
	assert.InDelta(t, 0, y, tolerance)
	assert.InDelta(t, 0, z, tolerance)

	RotationY(m[:], 0)
	assert.Equal(t, IdentityMat4(), m)
}

func TestLookAtMovesEyeToOrigin(t *testing.T) {
	var view Mat4
	LookAt(view[:], 0, 0, 3, 0, 0, 0, 0, 1, 0)

	x, y, z, _ := transform(view, 0, 0, 3)
	assert.InDelta(t, 0, x, tolerance)
	assert.InDelta(t, 0, y, tolerance)
	assert.InDelta(t, 0, z, tolerance)

	// the target ends up straight ahead, down -Z in a right-handed view space
	x, y, z, _ = transform(view, 0, 0, 0)
	assert.InDelta(t, 0, x, tolerance)
	assert.InDelta(t, 0, y, tolerance)
	assert.InDelta(t, -3, z, tolerance)
}

func TestPerspectiveDepthRange(t *testing.T) {
	var proj Mat4
	near, far := float32(0.1), float32(100)
	Perspective(proj[:], math32.Pi/4, 4.0/3.0, near, far)

	tests := []struct {
		name  string
		viewZ float32
		want  float32
	}{
		{"near plane maps to zero", -near, 0},
		{"far plane maps to one", -far, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, z, w := transform(proj, 0, 0, tt.viewZ)
			assert.InDelta(t, tt.want, z/w, 1e-4)
		})
	}
}

func TestSphericalToCartesian(t *testing.T) {
	tests := []struct {
		name                string
		radius, polar, azim float32
		wantX, wantY, wantZ float32
	}{
		{"equator at zero azimuth", 3, math32.Pi / 2, 0, 0, 0, 3},
		{"equator quarter turn", 3, math32.Pi / 2, math32.Pi / 2, 3, 0, 0},
		{"north pole", 2, 0, 1, 0, 2, 0},
		{"one step right", 3, math32.Pi / 2, 0.1, 3 * math32.Sin(0.1), 0, 3 * math32.Cos(0.1)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			x, y, z := SphericalToCartesian(tt.radius, tt.polar, tt.azim)
			assert.InDelta(t, tt.wantX, x, tolerance)
			assert.InDelta(t, tt.wantY, y, tolerance)
			assert.InDelta(t, tt.wantZ, z, tolerance)
		})
	}
}

func TestClamp(t *testing.T) {
	assert.Equal(t, float32(0.1), Clamp(float32(-4), 0.1, 3))
	assert.Equal(t, float32(3), Clamp(float32(9), 0.1, 3))
	assert.Equal(t, 2, Clamp(2, 1, 3))
}

func TestBytesViews(t *testing.T) {
	m := IdentityMat4()
	assert.Len(t, m.Bytes(), 64)
	assert.Equal(t, []byte{0, 0, 0x80, 0x3f}, m.Bytes()[:4])
}
