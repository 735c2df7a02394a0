package gpu

import "fmt"

// ValidateBufferDescriptor checks a buffer descriptor and its initial contents.
// Backends call it before creating native buffers so every implementation rejects
// the same inputs.
//
// Parameters:
//   - desc: the descriptor to check
//   - initial: the initial contents passed to CreateBuffer
//
// Returns:
//   - error: wrapping ErrInvalidDescriptor describing the problem
func ValidateBufferDescriptor(desc BufferDescriptor, initial []byte) error {
	invalid := func(format string, args ...any) error {
		return fmt.Errorf("%w: buffer %q: %s", ErrInvalidDescriptor, desc.Label, fmt.Sprintf(format, args...))
	}

	if desc.Size == 0 {
		return invalid("size is zero")
	}
	if desc.Size%4 != 0 {
		return invalid("size %d is not a multiple of 4", desc.Size)
	}
	if desc.Bind == 0 {
		return invalid("no bind flags")
	}
	if desc.Bind.Has(BindUniformBuffer) && desc.Size%16 != 0 {
		return invalid("uniform size %d is not a multiple of 16", desc.Size)
	}
	if uint64(len(initial)) > desc.Size {
		return invalid("initial data of %d bytes exceeds size %d", len(initial), desc.Size)
	}

	switch desc.Usage {
	case UsageImmutable:
		if uint64(len(initial)) != desc.Size {
			return invalid("immutable buffer needs %d bytes of initial data, got %d", desc.Size, len(initial))
		}
	case UsageDefault:
	case UsageDynamic:
		if desc.Bind != BindUniformBuffer {
			return invalid("dynamic buffers must be uniform-only")
		}
	default:
		return invalid("unknown usage %s", desc.Usage)
	}
	return nil
}

// CheckUpdatable reports whether UpdateSubresource may write data into buf.
//
// Parameters:
//   - buf: the destination buffer
//   - data: the new contents
//
// Returns:
//   - error: wrapping ErrUsageMismatch or ErrInvalidDescriptor
func CheckUpdatable(buf Buffer, data []byte) error {
	desc := buf.Desc()
	if desc.Usage != UsageDefault {
		return fmt.Errorf("%w: UpdateSubresource on %s buffer %q", ErrUsageMismatch, desc.Usage, desc.Label)
	}
	if uint64(len(data)) != desc.Size {
		return fmt.Errorf("%w: buffer %q expects %d bytes, got %d", ErrInvalidDescriptor, desc.Label, desc.Size, len(data))
	}
	return nil
}

// CheckMappable reports whether Map may be called on buf.
//
// Parameters:
//   - buf: the buffer to map
//
// Returns:
//   - error: wrapping ErrUsageMismatch for non-dynamic buffers
func CheckMappable(buf Buffer) error {
	desc := buf.Desc()
	if desc.Usage != UsageDynamic {
		return fmt.Errorf("%w: Map on %s buffer %q", ErrUsageMismatch, desc.Usage, desc.Label)
	}
	return nil
}
