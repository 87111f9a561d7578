// Package device defines where a copy executes: memory domains, the raw
// byte-copy primitive, and the synchronization contract between them.
package device

import "errors"

// ErrDevice is the sentinel for failures of the underlying copy machinery:
// unsupported domain pairs, accelerator initialization loss, stream errors.
// Concrete errors wrap it so callers can match with errors.Is.
var ErrDevice = errors.New("device: copy failed")

// Device represents the memory and execution domain of a buffer or context.
type Device int

// Supported domains.
const (
	CPU Device = iota
	WebGPU
)

// String returns a human-readable device name.
func (d Device) String() string {
	switch d {
	case CPU:
		return "CPU"
	case WebGPU:
		return "WebGPU"
	default:
		return "Unknown"
	}
}

// Memory is a caller-owned allocation in some domain. Implementations are
// non-owning handles as far as this package is concerned: contexts read from
// and write into a Memory but never allocate or free on the caller's behalf
// during a copy.
type Memory interface {
	// Device returns the domain the allocation lives in.
	Device() Device
	// ByteLen returns the allocation size in bytes.
	ByteLen() int
}

// Context services raw byte copies between memory domains.
//
// A host context copies synchronously: CopyBytes returns once the bytes have
// landed. An accelerator context enqueues: CopyBytes returns immediately,
// transfers execute in enqueue order on the context's stream, and the result
// is observable only after Wait returns. Reading a destination written by an
// accelerator context without an intervening Wait is a data race.
//
// A context is only required to service domain pairs it knows about; anything
// else fails with an error wrapping ErrDevice.
type Context interface {
	// Device returns the domain this context executes on.
	Device() Device

	// CopyBytes moves n bytes from src at byte offset srcOff into dst at
	// byte offset dstOff.
	CopyBytes(dst Memory, dstOff int, src Memory, srcOff, n int) error

	// Wait blocks until every copy previously enqueued on this context has
	// completed. A no-op for synchronous contexts.
	Wait() error
}
