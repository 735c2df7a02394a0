package gpu

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type stubBuffer struct {
	ObjectBase
	desc BufferDescriptor
}

func (b *stubBuffer) Release()               { b.MarkReleased() }
func (b *stubBuffer) Desc() BufferDescriptor { return b.desc }

func TestValidateBufferDescriptor(t *testing.T) {
	data16 := make([]byte, 16)
	data64 := make([]byte, 64)

	tests := []struct {
		name    string
		desc    BufferDescriptor
		initial []byte
		wantErr bool
	}{
		{"immutable vertex", BufferDescriptor{Size: 16, Usage: UsageImmutable, Bind: BindVertexBuffer}, data16, false},
		{"immutable without data", BufferDescriptor{Size: 16, Usage: UsageImmutable, Bind: BindVertexBuffer}, nil, true},
		{"immutable short data", BufferDescriptor{Size: 64, Usage: UsageImmutable, Bind: BindIndexBuffer}, data16, true},
		{"default uniform", BufferDescriptor{Size: 64, Usage: UsageDefault, Bind: BindUniformBuffer}, nil, false},
		{"dynamic uniform", BufferDescriptor{Size: 64, Usage: UsageDynamic, Bind: BindUniformBuffer}, nil, false},
		{"dynamic vertex", BufferDescriptor{Size: 64, Usage: UsageDynamic, Bind: BindVertexBuffer}, nil, true},
		{"zero size", BufferDescriptor{Size: 0, Usage: UsageDefault, Bind: BindUniformBuffer}, nil, true},
		{"unaligned size", BufferDescriptor{Size: 6, Usage: UsageDefault, Bind: BindIndexBuffer}, nil, true},
		{"unaligned uniform", BufferDescriptor{Size: 20, Usage: UsageDefault, Bind: BindUniformBuffer}, nil, true},
		{"no bind flags", BufferDescriptor{Size: 16, Usage: UsageDefault}, nil, true},
		{"oversized data", BufferDescriptor{Size: 16, Usage: UsageDefault, Bind: BindVertexBuffer}, data64, true},
		{"unknown usage", BufferDescriptor{Size: 16, Usage: Usage(9), Bind: BindVertexBuffer}, nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateBufferDescriptor(tt.desc, tt.initial)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidDescriptor)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestCheckUpdatableAndMappable(t *testing.T) {
	def := &stubBuffer{desc: BufferDescriptor{Label: "model", Size: 64, Usage: UsageDefault, Bind: BindUniformBuffer}}
	dyn := &stubBuffer{desc: BufferDescriptor{Label: "view-proj", Size: 64, Usage: UsageDynamic, Bind: BindUniformBuffer}}
	imm := &stubBuffer{desc: BufferDescriptor{Label: "vertices", Size: 64, Usage: UsageImmutable, Bind: BindVertexBuffer}}

	assert.NoError(t, CheckUpdatable(def, make([]byte, 64)))
	assert.ErrorIs(t, CheckUpdatable(def, make([]byte, 32)), ErrInvalidDescriptor)
	assert.ErrorIs(t, CheckUpdatable(dyn, make([]byte, 64)), ErrUsageMismatch)
	assert.ErrorIs(t, CheckUpdatable(imm, make([]byte, 64)), ErrUsageMismatch)

	assert.NoError(t, CheckMappable(dyn))
	assert.ErrorIs(t, CheckMappable(def), ErrUsageMismatch)
	assert.ErrorIs(t, CheckMappable(imm), ErrUsageMismatch)
}

func TestBindFlagsHas(t *testing.T) {
	f := BindVertexBuffer | BindUniformBuffer
	assert.True(t, f.Has(BindVertexBuffer))
	assert.True(t, f.Has(BindVertexBuffer|BindUniformBuffer))
	assert.False(t, f.Has(BindIndexBuffer))
}

func TestEnumStrings(t *testing.T) {
	assert.Equal(t, "dynamic", UsageDynamic.String())
	assert.Equal(t, "Usage(7)", Usage(7).String())
	assert.Equal(t, "bgra8unorm", FormatBGRA8Unorm.String())
	assert.Equal(t, uint64(2), IndexFormatUint16.Size())
	assert.Equal(t, uint64(4), IndexFormatUint32.Size())
}

func TestShaderCompileErrorMessage(t *testing.T) {
	err := &ShaderCompileError{Label: "colored_vertex", Diagnostics: "error: expected ';'"}
	assert.Contains(t, err.Error(), "colored_vertex")
	assert.Contains(t, err.Error(), "expected ';'")
}
