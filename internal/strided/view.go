package strided

import (
	"unsafe"

	"github.com/born-ml/strided/internal/device"
)

// Elem is the constraint for copyable element types: fixed-size values that
// can be moved as raw bytes.
type Elem interface {
	~float32 | ~float64 | ~int32 | ~int64 | ~uint8 | ~bool
}

// elemSize returns the byte size of T.
func elemSize[T Elem]() int {
	var zero T
	return int(unsafe.Sizeof(zero))
}

// View pairs a memory allocation with an element offset into it. It is a
// non-owning reference: the allocation belongs to whoever created it, and a
// View neither allocates nor frees. Copy reads and writes through views only
// within the bounds implied by the shape it is given.
type View[T Elem] struct {
	mem device.Memory
	off int // elements from the start of mem
}

// NewView creates a view of mem starting off elements in.
func NewView[T Elem](mem device.Memory, off int) View[T] {
	return View[T]{mem: mem, off: off}
}

// FromSlice wraps a caller-owned slice as a host view without copying.
// Writes through the view land directly in s.
func FromSlice[T Elem](s []T) View[T] {
	if len(s) == 0 {
		return View[T]{mem: device.Bytes(nil)}
	}
	//nolint:gosec // unsafe.Slice for zero-copy reinterpretation, length derived from len(s)
	raw := unsafe.Slice((*byte)(unsafe.Pointer(&s[0])), len(s)*elemSize[T]())
	return View[T]{mem: device.Bytes(raw)}
}

// Add returns a view advanced by n elements. This is the pointer arithmetic
// a crop caller uses to start inside a backing buffer, and a concat caller
// uses to target a slot of a shared destination.
func (v View[T]) Add(n int) View[T] {
	v.off += n
	return v
}

// Memory returns the underlying allocation.
func (v View[T]) Memory() device.Memory { return v.mem }

// Offset returns the view's element offset into its allocation.
func (v View[T]) Offset() int { return v.off }
