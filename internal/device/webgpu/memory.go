package webgpu

import (
	"github.com/born-ml/strided/internal/device"
	"github.com/go-webgpu/webgpu/wgpu"
)

// Verify that Memory implements device.Memory.
var _ device.Memory = (*Memory)(nil)

// deviceBufferUsage is the usage every pooled device allocation carries:
// copyable in both directions and bindable as storage for compute users.
const deviceBufferUsage = wgpu.BufferUsageStorage | wgpu.BufferUsageCopySrc | wgpu.BufferUsageCopyDst

// Memory is a GPU allocation: a WebGPU buffer and its byte length. It is a
// handle, not an owner; free it through the context that allocated it.
type Memory struct {
	buf  *wgpu.Buffer
	size int
}

// Device returns the domain the allocation lives in.
func (m *Memory) Device() device.Device { return device.WebGPU }

// ByteLen returns the allocation size in bytes.
func (m *Memory) ByteLen() int { return m.size }

// Alloc returns a device allocation of byteLen bytes, reusing a pooled
// buffer when one fits. Contents are unspecified until written.
func (c *Context) Alloc(byteLen int) *Memory {
	//nolint:gosec // G115: byteLen is a non-negative allocation size
	buf := c.pool.Acquire(uint64(byteLen), deviceBufferUsage)
	return &Memory{buf: buf, size: byteLen}
}

// Free returns a device allocation to the pool. The Memory must not be used
// afterwards; in-flight copies touching it must be waited on first.
func (c *Context) Free(m *Memory) {
	if m.buf == nil {
		return
	}
	//nolint:gosec // G115: size is a non-negative allocation size
	c.pool.Release(m.buf, uint64(m.size), deviceBufferUsage)
	m.buf = nil
	m.size = 0
}
