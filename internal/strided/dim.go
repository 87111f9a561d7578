// Package strided implements the strided multi-dimensional memory copy
// primitive: moving an n-dimensional window of elements between two views
// that share a shape but carry independent stride layouts, on whatever
// device context the caller binds.
package strided

import "fmt"

// Dim is an ordered per-axis descriptor. The same type serves two roles,
// distinguished positionally: a shape (extents to copy) and a stride
// (elements to advance per unit step along an axis). Entries are always
// non-negative. Functions in this package never mutate a Dim they receive.
type Dim []int

// Rank returns the number of axes.
func (d Dim) Rank() int { return len(d) }

// NumElements returns the product of all entries; 1 for an empty Dim.
func (d Dim) NumElements() int {
	n := 1
	for _, e := range d {
		n *= e
	}
	return n
}

// Equal reports whether two descriptors have the same rank and entries.
func (d Dim) Equal(other Dim) bool {
	if len(d) != len(other) {
		return false
	}
	for i := range d {
		if d[i] != other[i] {
			return false
		}
	}
	return true
}

// Clone returns a copy of the descriptor.
func (d Dim) Clone() Dim {
	c := make(Dim, len(d))
	copy(c, d)
	return c
}

// Validate checks that every entry is non-negative.
func (d Dim) Validate() error {
	for i, e := range d {
		if e < 0 {
			return fmt.Errorf("negative entry %d at axis %d: %w", e, i, ErrInvalidArgument)
		}
	}
	return nil
}

// RowMajorStrides returns the stride descriptor of a dense row-major buffer
// with the given shape: stride[i] = product of all extents after axis i.
// This is the value a caller feeds Copy for the dense side of a crop or
// concat, while the strided side carries the true backing buffer's pitch.
func RowMajorStrides(shape Dim) Dim {
	strides := make(Dim, len(shape))
	if len(shape) == 0 {
		return strides
	}
	strides[len(shape)-1] = 1
	for i := len(shape) - 2; i >= 0; i-- {
		strides[i] = strides[i+1] * shape[i+1]
	}
	return strides
}
