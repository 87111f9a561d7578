// Package webgpu implements the accelerator copy context on WebGPU using
// go-webgpu (github.com/go-webgpu/webgpu) for zero-CGO bindings.
//
// One Context owns one device and its queue; the queue is the ordered stream.
// CopyBytes never blocks: transfers are recorded as command buffers (with
// staging buffers bridging the host side) and submitted together, so they
// execute in enqueue order. Wait submits everything outstanding, drains the
// queue through a mappable fence, and only then lands device-to-host reads in
// their host destinations.
//
// WebGPU requires buffer-copy offsets and sizes to be multiples of 4 bytes.
// Transfers touching device memory that violate this are rejected at enqueue
// time; with sub-4-byte element types, keep innermost extents and view
// offsets 4-element aligned.
package webgpu

import (
	"fmt"
	"sync"
	"unsafe"

	"github.com/born-ml/strided/internal/device"
	"github.com/go-webgpu/webgpu/wgpu"
)

// Verify that Context implements device.Context.
var _ device.Context = (*Context)(nil)

// readback is a device-to-host transfer waiting for Wait: the staging buffer
// holds the bytes once the queue drains, dst is where they must land.
type readback struct {
	staging *wgpu.Buffer
	dst     *device.HostMemory
	dstOff  int
	n       int
}

// Context is the stream-ordered accelerator copy context.
type Context struct {
	instance *wgpu.Instance
	adapter  *wgpu.Adapter
	dev      *wgpu.Device
	queue    *wgpu.Queue

	adapterInfo *wgpu.AdapterInfoGo
	pool        *BufferPool
	fenceSrc    *wgpu.Buffer

	mu        sync.Mutex
	pending   []*wgpu.CommandBuffer
	staging   []*wgpu.Buffer // upload stagings retired at Wait
	readbacks []readback
}

// New creates a WebGPU context on the highest-performance available adapter.
// Returns an error if WebGPU is not available or initialization fails.
func New() (ctx *Context, err error) {
	// Recover from panic if the wgpu_native library is not found.
	defer func() {
		if r := recover(); r != nil {
			ctx = nil
			err = fmt.Errorf("webgpu: native library not available: %v", r)
		}
	}()

	instance, instErr := wgpu.CreateInstance(nil)
	if instErr != nil {
		return nil, fmt.Errorf("webgpu: failed to create instance: %w", instErr)
	}
	adapter, adapterErr := instance.RequestAdapter(&wgpu.RequestAdapterOptions{
		PowerPreference: wgpu.PowerPreferenceHighPerformance,
	})
	if adapterErr != nil {
		instance.Release()
		return nil, fmt.Errorf("webgpu: failed to request adapter: %w", adapterErr)
	}

	adapterInfo, _ := adapter.GetInfo()

	dev, devErr := adapter.RequestDevice(nil)
	if devErr != nil {
		adapter.Release()
		instance.Release()
		return nil, fmt.Errorf("webgpu: failed to request device: %w", devErr)
	}

	queue := dev.GetQueue()
	if queue == nil {
		dev.Release()
		adapter.Release()
		instance.Release()
		return nil, fmt.Errorf("webgpu: failed to get queue")
	}

	return &Context{
		instance:    instance,
		adapter:     adapter,
		dev:         dev,
		queue:       queue,
		adapterInfo: adapterInfo,
		pool:        NewBufferPool(dev),
		fenceSrc: dev.CreateBuffer(&wgpu.BufferDescriptor{
			Usage: wgpu.BufferUsageCopySrc,
			Size:  4,
		}),
	}, nil
}

// IsAvailable checks if WebGPU can be initialized on this system.
func IsAvailable() (available bool) {
	defer func() {
		if r := recover(); r != nil {
			available = false
		}
	}()

	instance, instErr := wgpu.CreateInstance(nil)
	if instErr != nil {
		return false
	}
	defer instance.Release()

	adapter, err := instance.RequestAdapter(nil)
	if err != nil {
		return false
	}
	adapter.Release()
	return true
}

// Device returns the domain this context executes on.
func (c *Context) Device() device.Device { return device.WebGPU }

// Name returns the context name with adapter details when known.
func (c *Context) Name() string {
	if c.adapterInfo != nil {
		return fmt.Sprintf("WebGPU (%s %s)", c.adapterInfo.Device, c.adapterInfo.Vendor)
	}
	return "WebGPU"
}

// AdapterInfo returns information about the GPU adapter.
func (c *Context) AdapterInfo() *wgpu.AdapterInfoGo { return c.adapterInfo }

// PoolStats reports buffer-pool activity for this context.
func (c *Context) PoolStats() (allocated, released, hits, misses uint64, pooled int) {
	return c.pool.Stats()
}

// CopyBytes enqueues a transfer between any pair of domains touching this
// device; plain host-to-host is serviced synchronously. The destination is
// observable only after Wait.
func (c *Context) CopyBytes(dst device.Memory, dstOff int, src device.Memory, srcOff, n int) error {
	if n < 0 {
		return fmt.Errorf("webgpu: negative length %d: %w", n, device.ErrDevice)
	}
	if n == 0 {
		return nil
	}
	if err := checkRange("source", srcOff, n, src.ByteLen()); err != nil {
		return err
	}
	if err := checkRange("destination", dstOff, n, dst.ByteLen()); err != nil {
		return err
	}

	switch s := src.(type) {
	case *device.HostMemory:
		switch d := dst.(type) {
		case *device.HostMemory:
			copy(d.Data()[dstOff:dstOff+n], s.Data()[srcOff:srcOff+n])
			return nil
		case *Memory:
			if err := checkAligned(dstOff, srcOff, n); err != nil {
				return err
			}
			return c.copyHostToDevice(d, dstOff, s.Data()[srcOff:srcOff+n])
		}
	case *Memory:
		if err := checkAligned(dstOff, srcOff, n); err != nil {
			return err
		}
		switch d := dst.(type) {
		case *device.HostMemory:
			return c.copyDeviceToHost(d, dstOff, s, srcOff, n)
		case *Memory:
			return c.copyDeviceToDevice(d, dstOff, s, srcOff, n)
		}
	}
	return fmt.Errorf("webgpu: unsupported transfer %s to %s: %w", src.Device(), dst.Device(), device.ErrDevice)
}

// copyHostToDevice stages the host bytes in a mapped-at-creation buffer and
// records a stream-ordered buffer copy into the destination.
func (c *Context) copyHostToDevice(dst *Memory, dstOff int, data []byte) error {
	size := uint64(len(data))
	staging := c.dev.CreateBuffer(&wgpu.BufferDescriptor{
		Usage:            wgpu.BufferUsageCopySrc,
		Size:             size,
		MappedAtCreation: wgpu.True,
	})

	mapped := staging.GetMappedRange(0, size)
	//nolint:gosec // unsafe.Slice for zero-copy conversion from unsafe.Pointer
	copy(unsafe.Slice((*byte)(mapped), size), data)
	staging.Unmap()

	encoder := c.dev.CreateCommandEncoder(nil)
	//nolint:gosec // G115: offsets validated non-negative by checkRange
	encoder.CopyBufferToBuffer(staging, 0, dst.buf, uint64(dstOff), size)
	cmd := encoder.Finish(nil)

	c.mu.Lock()
	c.pending = append(c.pending, cmd)
	c.staging = append(c.staging, staging)
	c.mu.Unlock()
	return nil
}

// copyDeviceToHost records a stream-ordered copy into a MapRead staging
// buffer; the bytes reach dst when Wait resolves the readback.
func (c *Context) copyDeviceToHost(dst *device.HostMemory, dstOff int, src *Memory, srcOff, n int) error {
	//nolint:gosec // G115: n validated non-negative above
	size := uint64(n)
	staging := c.dev.CreateBuffer(&wgpu.BufferDescriptor{
		Usage: wgpu.BufferUsageMapRead | wgpu.BufferUsageCopyDst,
		Size:  size,
	})

	encoder := c.dev.CreateCommandEncoder(nil)
	//nolint:gosec // G115: offsets validated non-negative by checkRange
	encoder.CopyBufferToBuffer(src.buf, uint64(srcOff), staging, 0, size)
	cmd := encoder.Finish(nil)

	c.mu.Lock()
	c.pending = append(c.pending, cmd)
	c.readbacks = append(c.readbacks, readback{staging: staging, dst: dst, dstOff: dstOff, n: n})
	c.mu.Unlock()
	return nil
}

// copyDeviceToDevice records a stream-ordered buffer-to-buffer copy.
func (c *Context) copyDeviceToDevice(dst *Memory, dstOff int, src *Memory, srcOff, n int) error {
	encoder := c.dev.CreateCommandEncoder(nil)
	//nolint:gosec // G115: offsets and length validated non-negative by checkRange
	encoder.CopyBufferToBuffer(src.buf, uint64(srcOff), dst.buf, uint64(dstOff), uint64(n))
	cmd := encoder.Finish(nil)

	c.mu.Lock()
	c.pending = append(c.pending, cmd)
	c.mu.Unlock()
	return nil
}

// Wait submits all pending command buffers, blocks until the queue drains,
// then lands queued device-to-host reads in their host destinations in
// enqueue order and retires staging buffers.
func (c *Context) Wait() error {
	c.mu.Lock()
	pending := c.pending
	staging := c.staging
	readbacks := c.readbacks
	c.pending = nil
	c.staging = nil
	c.readbacks = nil
	c.mu.Unlock()

	if len(pending) == 0 && len(readbacks) == 0 {
		return nil
	}
	if len(pending) > 0 {
		c.queue.Submit(pending...)
	}

	err := c.fence()
	if err == nil {
		err = resolveReadbacks(c.dev, readbacks)
	} else {
		for _, rb := range readbacks {
			rb.staging.Release()
		}
	}
	for _, s := range staging {
		s.Release()
	}
	return err
}

// fence submits a stream-ordered copy into a mappable buffer and blocks on
// mapping it; the map completes only after all previously submitted work has
// retired.
func (c *Context) fence() error {
	f := c.dev.CreateBuffer(&wgpu.BufferDescriptor{
		Usage: wgpu.BufferUsageMapRead | wgpu.BufferUsageCopyDst,
		Size:  4,
	})
	defer f.Release()

	encoder := c.dev.CreateCommandEncoder(nil)
	encoder.CopyBufferToBuffer(c.fenceSrc, 0, f, 0, 4)
	c.queue.Submit(encoder.Finish(nil))

	if err := f.MapAsync(c.dev, wgpu.MapModeRead, 0, 4); err != nil {
		return fmt.Errorf("webgpu: fence map failed: %v: %w", err, device.ErrDevice)
	}
	f.Unmap()
	return nil
}

// resolveReadbacks maps each drained staging buffer and copies its bytes into
// the host destination.
func resolveReadbacks(dev *wgpu.Device, readbacks []readback) error {
	var firstErr error
	for _, rb := range readbacks {
		//nolint:gosec // G115: n validated non-negative at enqueue time
		size := uint64(rb.n)
		if err := rb.staging.MapAsync(dev, wgpu.MapModeRead, 0, size); err != nil {
			if firstErr == nil {
				firstErr = fmt.Errorf("webgpu: readback map failed: %v: %w", err, device.ErrDevice)
			}
			rb.staging.Release()
			continue
		}
		mapped := rb.staging.GetMappedRange(0, size)
		//nolint:gosec // unsafe.Slice for zero-copy conversion from unsafe.Pointer
		copy(rb.dst.Data()[rb.dstOff:rb.dstOff+rb.n], unsafe.Slice((*byte)(mapped), size))
		rb.staging.Unmap()
		rb.staging.Release()
	}
	return firstErr
}

// Release tears down the context. Outstanding unsubmitted copies are dropped;
// call Wait first if their results matter.
func (c *Context) Release() {
	c.mu.Lock()
	for _, s := range c.staging {
		s.Release()
	}
	for _, rb := range c.readbacks {
		rb.staging.Release()
	}
	c.pending = nil
	c.staging = nil
	c.readbacks = nil
	c.mu.Unlock()

	if c.pool != nil {
		c.pool.Clear()
		c.pool = nil
	}
	if c.fenceSrc != nil {
		c.fenceSrc.Release()
		c.fenceSrc = nil
	}
	if c.queue != nil {
		c.queue.Release()
		c.queue = nil
	}
	if c.dev != nil {
		c.dev.Release()
		c.dev = nil
	}
	if c.adapter != nil {
		c.adapter.Release()
		c.adapter = nil
	}
	if c.instance != nil {
		c.instance.Release()
		c.instance = nil
	}
}

func checkRange(side string, off, n, byteLen int) error {
	if off < 0 || off+n > byteLen {
		return fmt.Errorf("webgpu: %s range [%d:%d) outside %d bytes: %w", side, off, off+n, byteLen, device.ErrDevice)
	}
	return nil
}

// checkAligned enforces the WebGPU copyBufferToBuffer rule that offsets and
// sizes are multiples of 4 bytes. Host-to-host transfers are exempt.
func checkAligned(dstOff, srcOff, n int) error {
	if dstOff%4 != 0 || srcOff%4 != 0 || n%4 != 0 {
		return fmt.Errorf("webgpu: unaligned transfer (dst offset %d, src offset %d, %d bytes): offsets and sizes must be multiples of 4: %w",
			dstOff, srcOff, n, device.ErrDevice)
	}
	return nil
}
