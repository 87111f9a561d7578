package strided

import (
	"fmt"

	"github.com/born-ml/strided/internal/device"
)

// Copy moves a shape-sized window of elements from src to dst, advancing each
// side by its own stride descriptor. The element at multi-index (i0..iR-1) is
// read from src at offset Σ ik*srcStride[k] and written to dst at offset
// Σ ik*dstStride[k]; the innermost axis is copied as one contiguous run of
// shape[R-1] elements, so srcStride[R-1] and dstStride[R-1] only matter for
// the bounds they imply.
//
// All three descriptors must have the same rank R ≥ 1. A zero extent on any
// axis makes the call a successful no-op. Arguments are validated before any
// byte moves, so argument errors never leave a partial copy; a device failure
// mid-walk aborts and may leave the destination partially written.
//
// On a host context the copy is complete when Copy returns. On an accelerator
// context the transfers are enqueued in ascending multi-index order and the
// destination is observable only after ctx.Wait. Overlapping source and
// destination regions within one call are undefined behavior.
func Copy[T Elem, C device.Context](ctx C, src View[T], srcStride, shape, dstStride Dim, dst View[T]) error {
	r := shape.Rank()
	if r == 0 {
		return fmt.Errorf("copy: rank zero shape: %w", ErrInvalidArgument)
	}
	if srcStride.Rank() != r || dstStride.Rank() != r {
		return fmt.Errorf("copy: rank mismatch: shape %v, source stride %v, destination stride %v: %w",
			shape, srcStride, dstStride, ErrInvalidArgument)
	}
	if err := shape.Validate(); err != nil {
		return fmt.Errorf("copy: shape %v: %w", shape, err)
	}
	if err := srcStride.Validate(); err != nil {
		return fmt.Errorf("copy: source stride %v: %w", srcStride, err)
	}
	if err := dstStride.Validate(); err != nil {
		return fmt.Errorf("copy: destination stride %v: %w", dstStride, err)
	}
	if shape.NumElements() == 0 {
		return nil
	}

	es := elemSize[T]()
	if err := checkSpan(src, srcStride, shape, es, "source"); err != nil {
		return err
	}
	if err := checkSpan(dst, dstStride, shape, es, "destination"); err != nil {
		return err
	}

	return copyAxes(ctx, src.mem, src.off*es, srcStride, shape, dstStride, dst.mem, dst.off*es, es)
}

// copyAxes walks the axes outermost-first. Rank 1 is the only point where
// bytes move: one contiguous transfer through the bound context.
func copyAxes[C device.Context](ctx C, src device.Memory, srcOff int, srcStride, shape, dstStride Dim, dst device.Memory, dstOff, es int) error {
	if shape.Rank() == 1 {
		if err := ctx.CopyBytes(dst, dstOff, src, srcOff, shape[0]*es); err != nil {
			return fmt.Errorf("copy: %w", err)
		}
		return nil
	}
	for i := 0; i < shape[0]; i++ {
		err := copyAxes(ctx,
			src, srcOff+i*srcStride[0]*es, srcStride[1:],
			shape[1:],
			dstStride[1:], dst, dstOff+i*dstStride[0]*es,
			es)
		if err != nil {
			return err
		}
	}
	return nil
}

// checkSpan verifies that the farthest byte the walk can touch stays inside
// the view's allocation. The farthest element sits at index shape[i]-1 on
// every outer axis plus the full contiguous innermost run, so the required
// span is Σ_{i<R-1} (shape[i]-1)*stride[i] + shape[R-1] elements past the
// view's offset. Extents are known non-zero here.
func checkSpan[T Elem](v View[T], stride, shape Dim, es int, side string) error {
	if v.off < 0 {
		return fmt.Errorf("copy: %s view offset %d: %w", side, v.off, ErrOutOfBounds)
	}
	r := shape.Rank()
	span := shape[r-1]
	for i := 0; i < r-1; i++ {
		span += (shape[i] - 1) * stride[i]
	}
	if need := (v.off + span) * es; need > v.mem.ByteLen() {
		return fmt.Errorf("copy: %s view needs %d bytes, memory holds %d: %w",
			side, need, v.mem.ByteLen(), ErrOutOfBounds)
	}
	return nil
}
