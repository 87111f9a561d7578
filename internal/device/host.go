package device

import "fmt"

// HostMemory is a plain CPU allocation backed by a byte slice. The slice may
// be owned by this package (Alloc) or borrowed from the caller (Bytes); either
// way lifetime stays with whoever allocated it.
type HostMemory struct {
	data []byte
}

// Alloc returns a fresh zeroed host allocation of byteLen bytes.
func Alloc(byteLen int) *HostMemory {
	return &HostMemory{data: make([]byte, byteLen)}
}

// Bytes wraps a caller-owned byte slice as host memory without copying.
// Writes through a copy land directly in p.
func Bytes(p []byte) *HostMemory {
	return &HostMemory{data: p}
}

// Device returns the domain the allocation lives in.
func (m *HostMemory) Device() Device { return CPU }

// ByteLen returns the allocation size in bytes.
func (m *HostMemory) ByteLen() int { return len(m.data) }

// Data returns the backing byte slice.
func (m *HostMemory) Data() []byte { return m.data }

// HostContext is the synchronous host-to-host copy context. It has no stream:
// CopyBytes returns once the bytes are in place and Wait is a no-op.
type HostContext struct{}

// NewHost creates a host context.
func NewHost() *HostContext { return &HostContext{} }

// Device returns the domain this context executes on.
func (c *HostContext) Device() Device { return CPU }

// CopyBytes copies n bytes between two host allocations. Transfers touching
// any other domain need an accelerator context and fail here.
func (c *HostContext) CopyBytes(dst Memory, dstOff int, src Memory, srcOff, n int) error {
	d, dok := dst.(*HostMemory)
	s, sok := src.(*HostMemory)
	if !dok || !sok {
		return fmt.Errorf("host: unsupported transfer %s to %s: %w", src.Device(), dst.Device(), ErrDevice)
	}
	return hostCopy(d, dstOff, s, srcOff, n)
}

// Wait is a no-op: host copies are complete when CopyBytes returns.
func (c *HostContext) Wait() error { return nil }

// hostCopy is the shared host-to-host transfer used by every context that can
// service plain CPU memory.
func hostCopy(dst *HostMemory, dstOff int, src *HostMemory, srcOff, n int) error {
	if n < 0 {
		return fmt.Errorf("host: negative length %d: %w", n, ErrDevice)
	}
	if srcOff < 0 || srcOff+n > len(src.data) {
		return fmt.Errorf("host: source range [%d:%d) outside %d bytes: %w", srcOff, srcOff+n, len(src.data), ErrDevice)
	}
	if dstOff < 0 || dstOff+n > len(dst.data) {
		return fmt.Errorf("host: destination range [%d:%d) outside %d bytes: %w", dstOff, dstOff+n, len(dst.data), ErrDevice)
	}
	copy(dst.data[dstOff:dstOff+n], src.data[srcOff:srcOff+n])
	return nil
}
