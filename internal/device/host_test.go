package device

import (
	"errors"
	"testing"
)

// foreignMemory stands in for an allocation from another domain.
type foreignMemory struct{}

func (foreignMemory) Device() Device { return WebGPU }
func (foreignMemory) ByteLen() int   { return 16 }

func TestHostCopyBytes(t *testing.T) {
	ctx := NewHost()

	src := Bytes([]byte{1, 2, 3, 4, 5})
	dst := Alloc(5)

	if err := ctx.CopyBytes(dst, 1, src, 2, 3); err != nil {
		t.Fatalf("CopyBytes: %v", err)
	}
	want := []byte{0, 3, 4, 5, 0}
	for i, b := range dst.Data() {
		if b != want[i] {
			t.Errorf("dst[%d] = %d, want %d", i, b, want[i])
		}
	}
}

func TestHostCopyBytesRanges(t *testing.T) {
	ctx := NewHost()
	src := Alloc(4)
	dst := Alloc(4)

	tests := []struct {
		name           string
		dstOff, srcOff int
		n              int
	}{
		{"source overrun", 0, 2, 4},
		{"destination overrun", 2, 0, 4},
		{"negative length", 0, 0, -1},
		{"negative offset", -1, 0, 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ctx.CopyBytes(dst, tt.dstOff, src, tt.srcOff, tt.n)
			if !errors.Is(err, ErrDevice) {
				t.Errorf("CopyBytes = %v, want ErrDevice", err)
			}
		})
	}
}

func TestHostUnsupportedTransfer(t *testing.T) {
	ctx := NewHost()

	err := ctx.CopyBytes(Alloc(16), 0, foreignMemory{}, 0, 8)
	if !errors.Is(err, ErrDevice) {
		t.Errorf("CopyBytes from foreign domain = %v, want ErrDevice", err)
	}
	err = ctx.CopyBytes(foreignMemory{}, 0, Alloc(16), 0, 8)
	if !errors.Is(err, ErrDevice) {
		t.Errorf("CopyBytes to foreign domain = %v, want ErrDevice", err)
	}
}

func TestHostWait(t *testing.T) {
	if err := NewHost().Wait(); err != nil {
		t.Errorf("Wait on host context = %v, want nil", err)
	}
}

func TestAllocZeroed(t *testing.T) {
	m := Alloc(8)
	if m.ByteLen() != 8 {
		t.Fatalf("ByteLen = %d, want 8", m.ByteLen())
	}
	for i, b := range m.Data() {
		if b != 0 {
			t.Errorf("fresh allocation byte %d = %d, want 0", i, b)
		}
	}
}

func TestBytesAliases(t *testing.T) {
	p := []byte{1, 2, 3}
	m := Bytes(p)
	m.Data()[0] = 9
	if p[0] != 9 {
		t.Error("Bytes copied instead of aliasing")
	}
}

func TestDeviceString(t *testing.T) {
	tests := []struct {
		dev  Device
		want string
	}{
		{CPU, "CPU"},
		{WebGPU, "WebGPU"},
		{Device(42), "Unknown"},
	}
	for _, tt := range tests {
		if got := tt.dev.String(); got != tt.want {
			t.Errorf("%d.String() = %q, want %q", int(tt.dev), got, tt.want)
		}
	}
}
