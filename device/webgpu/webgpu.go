// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package webgpu provides the accelerator copy context backed by WebGPU.
//
// A Context owns one GPU device and its queue; the queue is the ordered
// stream. CopyBytes enqueues and returns immediately, transfers execute in
// enqueue order, and results are observable only after Wait. Call Release
// when done to free GPU resources.
//
// Example:
//
//	if !webgpu.IsAvailable() {
//	    // fall back to the host context
//	}
//	gpu, err := webgpu.New()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer gpu.Release()
//
//	buf := gpu.Alloc(1024)
//	defer gpu.Free(buf)
//	_ = gpu.CopyBytes(buf, 0, host.Bytes(payload), 0, len(payload))
//	_ = gpu.Wait()
package webgpu

import internalwebgpu "github.com/born-ml/strided/internal/device/webgpu"

// Context is the stream-ordered accelerator copy context.
type Context = internalwebgpu.Context

// Memory is a GPU allocation owned by the context that created it.
type Memory = internalwebgpu.Memory

// New creates a WebGPU context on the highest-performance available adapter.
// Returns an error if WebGPU initialization fails (e.g., no compatible GPU).
func New() (*Context, error) {
	return internalwebgpu.New()
}

// IsAvailable checks if WebGPU is available on the current system. Useful
// for graceful fallback to the host context when no GPU is present.
func IsAvailable() bool {
	return internalwebgpu.IsAvailable()
}
