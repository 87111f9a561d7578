// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package strided provides the public API for the strided multi-dimensional
// memory copy primitive.
//
// Copy moves a window of elements between two views that share a shape but
// carry independent stride layouts. One algorithm covers both canonical
// callers: extracting a sub-rectangle from a larger backing buffer (crop)
// and writing several sources into disjoint regions of one destination
// (concat). The distinction lives entirely in the offsets and strides the
// caller supplies.
//
// Example:
//
//	import (
//	    "github.com/born-ml/strided/device/host"
//	    "github.com/born-ml/strided/strided"
//	)
//
//	func main() {
//	    ctx := host.New()
//
//	    src := strided.FromSlice([]int32{
//	        0, 1, 2, 0, 0,
//	        0, 3, 4, 0, 0,
//	        0, 0, 0, 0, 0,
//	    })
//	    dst := make([]int32, 4)
//
//	    // 2x2 window starting one element in: {1, 2, 3, 4}.
//	    _ = strided.Copy(ctx, src.Add(1), strided.Dim{5, 1},
//	        strided.Dim{2, 2}, strided.Dim{2, 1}, strided.FromSlice(dst))
//	}
//
// On an accelerator context copies are enqueued in stream order and the
// destination is observable only after the context's Wait returns.
package strided

import (
	"github.com/born-ml/strided/internal/device"
	"github.com/born-ml/strided/internal/strided"
)

// Dim is an ordered per-axis descriptor, used positionally as a shape
// (extents) or a stride (elements advanced per unit step).
type Dim = strided.Dim

// Elem is the constraint for copyable element types.
type Elem = strided.Elem

// View pairs a memory allocation with an element offset into it. Views are
// non-owning references into caller-owned memory.
type View[T Elem] = strided.View[T]

// Context services raw byte copies; see the device/host and device/webgpu
// packages for the two variants.
type Context = device.Context

// Error taxonomy. Match with errors.Is; see the internal definitions for
// exact semantics.
var (
	ErrInvalidArgument = strided.ErrInvalidArgument
	ErrOutOfBounds     = strided.ErrOutOfBounds
	ErrDevice          = strided.ErrDevice
)

// NewView creates a view of mem starting off elements in.
func NewView[T Elem](mem device.Memory, off int) View[T] {
	return strided.NewView[T](mem, off)
}

// FromSlice wraps a caller-owned slice as a host view without copying.
func FromSlice[T Elem](s []T) View[T] {
	return strided.FromSlice(s)
}

// RowMajorStrides returns the stride descriptor of a dense row-major buffer
// with the given shape.
func RowMajorStrides(shape Dim) Dim {
	return strided.RowMajorStrides(shape)
}

// Copy performs the strided copy of shape elements from src to dst on ctx.
// See the internal strided package for the full contract.
func Copy[T Elem, C Context](ctx C, src View[T], srcStride, shape, dstStride Dim, dst View[T]) error {
	return strided.Copy(ctx, src, srcStride, shape, dstStride, dst)
}

// Crop copies a window of the given shape at per-axis offsets out of a dense
// row-major source of srcShape into a dense row-major destination.
func Crop[T Elem, C Context](ctx C, src View[T], srcShape, offsets, shape Dim, dst View[T]) error {
	return strided.Crop(ctx, src, srcShape, offsets, shape, dst)
}

// Concat writes each dense row-major source into its slot of the dense
// concatenated destination along axis.
func Concat[T Elem, C Context](ctx C, srcs []View[T], shapes []Dim, axis int, dst View[T]) error {
	return strided.Concat(ctx, srcs, shapes, axis, dst)
}

// CopyWithAxis is the collapsed two-level strided copy over suffix element
// counts, the form concat and split callers use directly.
func CopyWithAxis[T Elem, C Context](ctx C, axis int, dst View[T], dstStrideNumel Dim, src View[T], srcStrideNumel Dim, size int) error {
	return strided.CopyWithAxis(ctx, axis, dst, dstStrideNumel, src, srcStrideNumel, size)
}
