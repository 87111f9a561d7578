// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package host provides the synchronous host copy context.
//
// Host copies complete before CopyBytes returns and Wait is a no-op. A host
// context services host memory only; transfers touching accelerator memory
// need the device/webgpu context.
//
// Example:
//
//	ctx := host.New()
//	dst := host.Alloc(64)
//	err := ctx.CopyBytes(dst, 0, host.Bytes(payload), 0, len(payload))
package host

import "github.com/born-ml/strided/internal/device"

// Context is the synchronous host copy context.
type Context = device.HostContext

// Memory is a host allocation backed by a byte slice.
type Memory = device.HostMemory

// New creates a host context.
func New() *Context {
	return device.NewHost()
}

// Alloc returns a fresh zeroed host allocation of byteLen bytes.
func Alloc(byteLen int) *Memory {
	return device.Alloc(byteLen)
}

// Bytes wraps a caller-owned byte slice as host memory without copying.
func Bytes(p []byte) *Memory {
	return device.Bytes(p)
}
