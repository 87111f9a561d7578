package strided

import (
	"testing"

	"github.com/born-ml/strided/internal/device"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCrop_Window(t *testing.T) {
	ctx := device.NewHost()

	src := []int32{
		0, 1, 2, 0, 0,
		0, 3, 4, 0, 0,
		0, 0, 0, 0, 0,
	}
	dst := make([]int32, 4)

	err := Crop(ctx, FromSlice(src), Dim{3, 5}, Dim{0, 1}, Dim{2, 2}, FromSlice(dst))
	require.NoError(t, err)
	assert.Equal(t, []int32{1, 2, 3, 4}, dst)
}

func TestCrop_Rank3(t *testing.T) {
	ctx := device.NewHost()

	src := make([]float32, 24)
	for i := range src {
		src[i] = float32(i)
	}
	dst := make([]float32, 4)

	err := Crop(ctx, FromSlice(src), Dim{2, 3, 4}, Dim{1, 1, 2}, Dim{1, 2, 2}, FromSlice(dst))
	require.NoError(t, err)
	assert.Equal(t, []float32{18, 19, 22, 23}, dst)
}

func TestCrop_Errors(t *testing.T) {
	ctx := device.NewHost()
	src := make([]int32, 15)
	dst := make([]int32, 4)

	t.Run("window exceeds source", func(t *testing.T) {
		err := Crop(ctx, FromSlice(src), Dim{3, 5}, Dim{2, 4}, Dim{2, 2}, FromSlice(dst))
		require.ErrorIs(t, err, ErrOutOfBounds)
	})

	t.Run("rank mismatch", func(t *testing.T) {
		err := Crop(ctx, FromSlice(src), Dim{3, 5}, Dim{1}, Dim{2, 2}, FromSlice(dst))
		require.ErrorIs(t, err, ErrInvalidArgument)
	})

	t.Run("rank zero", func(t *testing.T) {
		err := Crop(ctx, FromSlice(src), Dim{}, Dim{}, Dim{}, FromSlice(dst))
		require.ErrorIs(t, err, ErrInvalidArgument)
	})
}

func TestConcat_Axis1(t *testing.T) {
	ctx := device.NewHost()

	src := []int32{
		1, 2,
		3, 4,
	}
	dst := make([]int32, 8)

	err := Concat(ctx,
		[]View[int32]{FromSlice(src), FromSlice(src)},
		[]Dim{{2, 2}, {2, 2}}, 1, FromSlice(dst))
	require.NoError(t, err)
	assert.Equal(t, []int32{
		1, 2, 1, 2,
		3, 4, 3, 4,
	}, dst)
}

func TestConcat_Axis0(t *testing.T) {
	ctx := device.NewHost()

	a := []int32{1, 2, 3, 4}
	b := []int32{5, 6}
	dst := make([]int32, 6)

	err := Concat(ctx,
		[]View[int32]{FromSlice(a), FromSlice(b)},
		[]Dim{{2, 2}, {1, 2}}, 0, FromSlice(dst))
	require.NoError(t, err)
	assert.Equal(t, []int32{1, 2, 3, 4, 5, 6}, dst)
}

func TestConcat_Deferred(t *testing.T) {
	ctx := device.NewMock()

	src := []int32{1, 2, 3, 4}
	dst := make([]int32, 8)

	err := Concat(ctx,
		[]View[int32]{FromSlice(src), FromSlice(src)},
		[]Dim{{2, 2}, {2, 2}}, 1, FromSlice(dst))
	require.NoError(t, err)
	assert.Equal(t, make([]int32, 8), dst)

	require.NoError(t, ctx.Wait())
	assert.Equal(t, []int32{1, 2, 1, 2, 3, 4, 3, 4}, dst)
}

func TestConcat_Errors(t *testing.T) {
	ctx := device.NewHost()
	src := []int32{1, 2, 3, 4}
	dst := make([]int32, 8)

	t.Run("no sources", func(t *testing.T) {
		err := Concat(ctx, nil, nil, 0, FromSlice(dst))
		require.ErrorIs(t, err, ErrInvalidArgument)
	})

	t.Run("axis out of range", func(t *testing.T) {
		err := Concat(ctx, []View[int32]{FromSlice(src)}, []Dim{{2, 2}}, 2, FromSlice(dst))
		require.ErrorIs(t, err, ErrInvalidArgument)
	})

	t.Run("off-axis mismatch", func(t *testing.T) {
		err := Concat(ctx,
			[]View[int32]{FromSlice(src), FromSlice(src)},
			[]Dim{{2, 2}, {1, 4}}, 1, FromSlice(dst))
		require.ErrorIs(t, err, ErrInvalidArgument)
	})
}

func TestCopyWithAxis_ConcatSlots(t *testing.T) {
	ctx := device.NewHost()

	src := []int32{
		1, 2,
		3, 4,
	}
	dst := make([]int32, 8)

	// Two 2x2 blocks into a 2x4 destination: stride numels {4, 2} and {8, 4}.
	require.NoError(t, CopyWithAxis(ctx, 1, FromSlice(dst), Dim{8, 4}, FromSlice(src), Dim{4, 2}, 2))
	require.NoError(t, CopyWithAxis(ctx, 1, FromSlice(dst).Add(2), Dim{8, 4}, FromSlice(src), Dim{4, 2}, 2))

	assert.Equal(t, []int32{
		1, 2, 1, 2,
		3, 4, 3, 4,
	}, dst)
}

func TestCopyWithAxis_Errors(t *testing.T) {
	ctx := device.NewHost()
	src := make([]int32, 4)
	dst := make([]int32, 8)

	t.Run("axis out of range", func(t *testing.T) {
		err := CopyWithAxis(ctx, 3, FromSlice(dst), Dim{8, 4}, FromSlice(src), Dim{4, 2}, 2)
		require.ErrorIs(t, err, ErrInvalidArgument)
	})

	t.Run("outer extent mismatch", func(t *testing.T) {
		err := CopyWithAxis(ctx, 1, FromSlice(dst), Dim{8, 2}, FromSlice(src), Dim{4, 2}, 2)
		require.ErrorIs(t, err, ErrInvalidArgument)
	})

	t.Run("trailing extent mismatch", func(t *testing.T) {
		// [2,3,4] source into a [2,3,5] destination: the inner pitch
		// differs, so the blocks cannot land contiguously.
		bigSrc := make([]int32, 24)
		bigDst := make([]int32, 30)
		err := CopyWithAxis(ctx, 1, FromSlice(bigDst), Dim{30, 15, 5}, FromSlice(bigSrc), Dim{24, 12, 4}, 12)
		require.ErrorIs(t, err, ErrInvalidArgument)
		assert.Equal(t, make([]int32, 30), bigDst, "failed call must write nothing")
	})

	t.Run("source too small", func(t *testing.T) {
		err := CopyWithAxis(ctx, 1, FromSlice(dst), Dim{8, 4}, FromSlice(src), Dim{6, 3}, 3)
		require.ErrorIs(t, err, ErrOutOfBounds)
	})

	t.Run("zero size is a no-op", func(t *testing.T) {
		require.NoError(t, CopyWithAxis(ctx, 1, FromSlice(dst), Dim{8, 4}, FromSlice(src), Dim{4, 2}, 0))
	})
}
