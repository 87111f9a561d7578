package webgpu

import (
	"sync"

	"github.com/go-webgpu/webgpu/wgpu"
)

// Size categories for pooled buffers.
const (
	smallThreshold  = 4 * 1024    // 4KB
	mediumThreshold = 1024 * 1024 // 1MB
	maxPooled       = 100         // max buffers retained per category
)

type pooledBuffer struct {
	buffer *wgpu.Buffer
	size   uint64
	usage  wgpu.BufferUsage
}

// BufferPool reuses GPU buffers to cut allocation overhead. Freed buffers are
// retained by size category and handed back to later allocations that fit.
type BufferPool struct {
	device *wgpu.Device

	mu    sync.Mutex
	pools [3][]*pooledBuffer // indexed by size category

	allocated uint64
	released  uint64
	hits      uint64
	misses    uint64
}

// NewBufferPool creates an empty pool for the given device.
func NewBufferPool(device *wgpu.Device) *BufferPool {
	return &BufferPool{device: device}
}

// Acquire returns a pooled buffer of at least size bytes with a superset of
// the requested usage, or creates a fresh one.
func (p *BufferPool) Acquire(size uint64, usage wgpu.BufferUsage) *wgpu.Buffer {
	p.mu.Lock()
	defer p.mu.Unlock()

	cat := categorize(size)
	for i, pb := range p.pools[cat] {
		if pb.size >= size && pb.usage&usage == usage {
			p.pools[cat] = append(p.pools[cat][:i], p.pools[cat][i+1:]...)
			p.hits++
			return pb.buffer
		}
	}

	p.misses++
	p.allocated++
	return p.device.CreateBuffer(&wgpu.BufferDescriptor{
		Usage: usage,
		Size:  size,
	})
}

// Release returns a buffer to the pool, or drops it if the category is full.
func (p *BufferPool) Release(buffer *wgpu.Buffer, size uint64, usage wgpu.BufferUsage) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.released++
	cat := categorize(size)
	if len(p.pools[cat]) >= maxPooled {
		buffer.Release()
		return
	}
	p.pools[cat] = append(p.pools[cat], &pooledBuffer{buffer: buffer, size: size, usage: usage})
}

// Clear releases every retained buffer. Called when the context is released.
func (p *BufferPool) Clear() {
	p.mu.Lock()
	defer p.mu.Unlock()

	for cat := range p.pools {
		for _, pb := range p.pools[cat] {
			pb.buffer.Release()
		}
		p.pools[cat] = nil
	}
}

// Stats reports pool activity: fresh allocations, releases back to the pool,
// pool hits and misses, and the number of currently retained buffers.
func (p *BufferPool) Stats() (allocated, released, hits, misses uint64, pooled int) {
	p.mu.Lock()
	defer p.mu.Unlock()

	for cat := range p.pools {
		pooled += len(p.pools[cat])
	}
	return p.allocated, p.released, p.hits, p.misses, pooled
}

func categorize(size uint64) int {
	switch {
	case size < smallThreshold:
		return 0
	case size < mediumThreshold:
		return 1
	default:
		return 2
	}
}
