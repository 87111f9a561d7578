package strided

import (
	"fmt"

	"github.com/born-ml/strided/internal/device"
)

// Crop copies a window out of a dense row-major source. The source has shape
// srcShape; the window has the given shape and starts at the per-axis
// offsets; the destination is a dense row-major buffer of the window's shape.
// The distinction from a plain Copy is entirely in the descriptors this
// function computes: the source keeps its backing buffer's pitch, the
// destination gets the window's own.
func Crop[T Elem, C device.Context](ctx C, src View[T], srcShape, offsets, shape Dim, dst View[T]) error {
	r := srcShape.Rank()
	if r == 0 {
		return fmt.Errorf("crop: rank zero source shape: %w", ErrInvalidArgument)
	}
	if offsets.Rank() != r || shape.Rank() != r {
		return fmt.Errorf("crop: rank mismatch: source shape %v, offsets %v, window %v: %w",
			srcShape, offsets, shape, ErrInvalidArgument)
	}
	if err := offsets.Validate(); err != nil {
		return fmt.Errorf("crop: offsets %v: %w", offsets, err)
	}
	if err := shape.Validate(); err != nil {
		return fmt.Errorf("crop: window %v: %w", shape, err)
	}
	for i := 0; i < r; i++ {
		if offsets[i]+shape[i] > srcShape[i] {
			return fmt.Errorf("crop: window %v at %v exceeds source shape %v on axis %d: %w",
				shape, offsets, srcShape, i, ErrOutOfBounds)
		}
	}

	srcStride := RowMajorStrides(srcShape)
	start := 0
	for i := 0; i < r; i++ {
		start += offsets[i] * srcStride[i]
	}
	return Copy(ctx, src.Add(start), srcStride, shape, RowMajorStrides(shape), dst)
}

// Concat writes each dense row-major source into its slot of the dense
// concatenated destination along axis. All shapes must agree on every axis
// but the concatenation axis. Sources are issued in slice order on the one
// bound context, so on a stream their completion order matches slice order.
func Concat[T Elem, C device.Context](ctx C, srcs []View[T], shapes []Dim, axis int, dst View[T]) error {
	if len(srcs) == 0 || len(srcs) != len(shapes) {
		return fmt.Errorf("concat: %d sources for %d shapes: %w", len(srcs), len(shapes), ErrInvalidArgument)
	}
	r := shapes[0].Rank()
	if r == 0 {
		return fmt.Errorf("concat: rank zero shape: %w", ErrInvalidArgument)
	}
	if axis < 0 || axis >= r {
		return fmt.Errorf("concat: axis %d outside rank %d: %w", axis, r, ErrInvalidArgument)
	}

	outShape := shapes[0].Clone()
	outShape[axis] = 0
	for i, s := range shapes {
		if s.Rank() != r {
			return fmt.Errorf("concat: source %d has rank %d, want %d: %w", i, s.Rank(), r, ErrInvalidArgument)
		}
		for a := 0; a < r; a++ {
			if a != axis && s[a] != outShape[a] {
				return fmt.Errorf("concat: source %d shape %v differs from %v on axis %d: %w",
					i, s, shapes[0], a, ErrInvalidArgument)
			}
		}
		outShape[axis] += s[axis]
	}

	dstStride := RowMajorStrides(outShape)
	along := 0
	for i, src := range srcs {
		err := Copy(ctx, src, RowMajorStrides(shapes[i]), shapes[i], dstStride, dst.Add(along*dstStride[axis]))
		if err != nil {
			return fmt.Errorf("concat: source %d: %w", i, err)
		}
		along += shapes[i][axis]
	}
	return nil
}

// CopyWithAxis is the collapsed two-level form of the strided copy that
// concat and split callers use: everything before axis folds into one outer
// loop, everything from axis down is a contiguous block. The descriptors are
// suffix element counts ("stride numels"): strideNumel[i] = product of
// extents i..R-1. Each of the strideNumel[0]/strideNumel[axis] outer slices
// transfers size contiguous elements.
func CopyWithAxis[T Elem, C device.Context](ctx C, axis int, dst View[T], dstStrideNumel Dim, src View[T], srcStrideNumel Dim, size int) error {
	r := srcStrideNumel.Rank()
	if r == 0 {
		return fmt.Errorf("copy with axis: rank zero descriptor: %w", ErrInvalidArgument)
	}
	if dstStrideNumel.Rank() != r {
		return fmt.Errorf("copy with axis: rank mismatch: source %v, destination %v: %w",
			srcStrideNumel, dstStrideNumel, ErrInvalidArgument)
	}
	if axis < 0 || axis >= r {
		return fmt.Errorf("copy with axis: axis %d outside rank %d: %w", axis, r, ErrInvalidArgument)
	}
	if err := srcStrideNumel.Validate(); err != nil {
		return fmt.Errorf("copy with axis: source %v: %w", srcStrideNumel, err)
	}
	if err := dstStrideNumel.Validate(); err != nil {
		return fmt.Errorf("copy with axis: destination %v: %w", dstStrideNumel, err)
	}
	if size < 0 {
		return fmt.Errorf("copy with axis: negative size %d: %w", size, ErrInvalidArgument)
	}
	if size == 0 || srcStrideNumel[0] == 0 || dstStrideNumel[0] == 0 {
		return nil
	}
	if srcStrideNumel[axis] == 0 || dstStrideNumel[axis] == 0 {
		return nil
	}

	before := srcStrideNumel[0] / srcStrideNumel[axis]
	if dstBefore := dstStrideNumel[0] / dstStrideNumel[axis]; before != dstBefore {
		return fmt.Errorf("copy with axis: outer extent mismatch: source %d, destination %d: %w",
			before, dstBefore, ErrInvalidArgument)
	}
	for i := 0; i < axis; i++ {
		if srcStrideNumel[i]/srcStrideNumel[axis] != dstStrideNumel[i]/dstStrideNumel[axis] {
			return fmt.Errorf("copy with axis: extent mismatch on axis %d: source %v, destination %v: %w",
				i, srcStrideNumel, dstStrideNumel, ErrInvalidArgument)
		}
	}
	// Axes after the concatenation axis must agree exactly on both sides:
	// the contiguous blocks this loop transfers assume one shared inner
	// layout, and a differing trailing pitch would land them garbled.
	for i := axis + 1; i < r; i++ {
		if srcStrideNumel[i] != dstStrideNumel[i] {
			return fmt.Errorf("copy with axis: trailing extent mismatch on axis %d: source %v, destination %v: %w",
				i, srcStrideNumel, dstStrideNumel, ErrInvalidArgument)
		}
	}

	srcAfter, dstAfter := srcStrideNumel[axis], dstStrideNumel[axis]
	es := elemSize[T]()
	if need := (src.off + (before-1)*srcAfter + size) * es; src.off < 0 || need > src.mem.ByteLen() {
		return fmt.Errorf("copy with axis: source view needs %d bytes, memory holds %d: %w",
			need, src.mem.ByteLen(), ErrOutOfBounds)
	}
	if need := (dst.off + (before-1)*dstAfter + size) * es; dst.off < 0 || need > dst.mem.ByteLen() {
		return fmt.Errorf("copy with axis: destination view needs %d bytes, memory holds %d: %w",
			need, dst.mem.ByteLen(), ErrOutOfBounds)
	}

	for i := 0; i < before; i++ {
		if err := ctx.CopyBytes(dst.mem, (dst.off+i*dstAfter)*es, src.mem, (src.off+i*srcAfter)*es, size*es); err != nil {
			return fmt.Errorf("copy with axis: %w", err)
		}
	}
	return nil
}
