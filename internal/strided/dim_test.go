package strided

import (
	"errors"
	"testing"
)

func TestDimNumElements(t *testing.T) {
	tests := []struct {
		dim  Dim
		want int
	}{
		{Dim{}, 1},
		{Dim{5}, 5},
		{Dim{2, 3}, 6},
		{Dim{2, 0, 4}, 0},
	}
	for _, tt := range tests {
		if got := tt.dim.NumElements(); got != tt.want {
			t.Errorf("%v.NumElements() = %d, want %d", tt.dim, got, tt.want)
		}
	}
}

func TestDimValidate(t *testing.T) {
	if err := (Dim{2, 0, 3}).Validate(); err != nil {
		t.Errorf("Validate(%v) = %v, want nil", Dim{2, 0, 3}, err)
	}
	err := (Dim{2, -1}).Validate()
	if !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("Validate(%v) = %v, want ErrInvalidArgument", Dim{2, -1}, err)
	}
}

func TestDimEqual(t *testing.T) {
	if !(Dim{2, 3}).Equal(Dim{2, 3}) {
		t.Error("equal descriptors reported unequal")
	}
	if (Dim{2, 3}).Equal(Dim{2, 3, 1}) {
		t.Error("different ranks reported equal")
	}
	if (Dim{2, 3}).Equal(Dim{3, 2}) {
		t.Error("different entries reported equal")
	}
}

func TestDimClone(t *testing.T) {
	d := Dim{2, 3}
	c := d.Clone()
	c[0] = 9
	if d[0] != 2 {
		t.Error("Clone shares backing storage with original")
	}
}

func TestRowMajorStrides(t *testing.T) {
	tests := []struct {
		shape Dim
		want  Dim
	}{
		{Dim{5}, Dim{1}},
		{Dim{3, 5}, Dim{5, 1}},
		{Dim{2, 3, 4}, Dim{12, 4, 1}},
		{Dim{}, Dim{}},
	}
	for _, tt := range tests {
		if got := RowMajorStrides(tt.shape); !got.Equal(tt.want) {
			t.Errorf("RowMajorStrides(%v) = %v, want %v", tt.shape, got, tt.want)
		}
	}
}

func TestViewAdd(t *testing.T) {
	v := FromSlice([]int32{1, 2, 3, 4})
	if v.Offset() != 0 {
		t.Errorf("fresh view offset = %d, want 0", v.Offset())
	}
	w := v.Add(3)
	if w.Offset() != 3 {
		t.Errorf("Add(3) offset = %d, want 3", w.Offset())
	}
	if v.Offset() != 0 {
		t.Error("Add mutated the receiver")
	}
	if v.Memory() != w.Memory() {
		t.Error("Add changed the underlying memory")
	}
}

func TestFromSliceByteLen(t *testing.T) {
	if got := FromSlice([]int32{1, 2, 3}).Memory().ByteLen(); got != 12 {
		t.Errorf("ByteLen = %d, want 12", got)
	}
	if got := FromSlice([]float64{1, 2, 3}).Memory().ByteLen(); got != 24 {
		t.Errorf("ByteLen = %d, want 24", got)
	}
	if got := FromSlice([]uint8(nil)).Memory().ByteLen(); got != 0 {
		t.Errorf("ByteLen of empty slice = %d, want 0", got)
	}
}
