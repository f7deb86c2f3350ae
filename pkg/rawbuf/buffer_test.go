package rawbuf_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/memkit/memkit/pkg/rawbuf"
)

func TestNew(t *testing.T) {
	t.Run("zero capacity allocates nothing", func(t *testing.T) {
		buf, err := rawbuf.New[int](0)
		require.NoError(t, err)
		require.Equal(t, 0, buf.Capacity())
		require.Empty(t, buf.Region(0, 0), "the empty region must be addressable")
	})

	t.Run("negative capacity", func(t *testing.T) {
		_, err := rawbuf.New[int](-1)
		require.Error(t, err)
	})

	t.Run("byte size overflow", func(t *testing.T) {
		type block [1 << 20]byte
		_, err := rawbuf.New[block](math.MaxInt / 4)
		require.Error(t, err, "an unrepresentable byte size must be rejected before allocating")
	})

	t.Run("capacity is exact", func(t *testing.T) {
		buf, err := rawbuf.New[string](7)
		require.NoError(t, err)
		require.Equal(t, 7, buf.Capacity())
	})
}

func TestBuffer_At(t *testing.T) {
	buf, err := rawbuf.New[int](4)
	require.NoError(t, err)

	*buf.At(0) = 10
	*buf.At(3) = 40
	require.Equal(t, 10, *buf.At(0))
	require.Equal(t, 40, *buf.At(3))
	require.Same(t, buf.At(2), buf.At(2), "slot addresses must be stable")

	require.Panics(t, func() { buf.At(4) }, "one-past-end is not addressable as a slot")
	require.Panics(t, func() { buf.At(-1) })
}

func TestBuffer_Region(t *testing.T) {
	buf, err := rawbuf.New[int](4)
	require.NoError(t, err)

	require.Len(t, buf.Region(0, 4), 4, "the full range ending at capacity is legal")
	require.Len(t, buf.Region(4, 4), 0, "the empty one-past-end region is legal")
	require.Len(t, buf.Region(1, 3), 2)

	require.Panics(t, func() { buf.Region(0, 5) })
	require.Panics(t, func() { buf.Region(3, 2) })
	require.Panics(t, func() { buf.Region(-1, 2) })
}

func TestBuffer_Move(t *testing.T) {
	src, err := rawbuf.New[int](3)
	require.NoError(t, err)
	*src.At(1) = 99
	slot := src.At(1)

	dst := src.Move()
	require.Equal(t, 0, src.Capacity(), "the moved-from buffer must be left empty")
	require.Equal(t, 3, dst.Capacity())
	require.Same(t, slot, dst.At(1), "moving must transfer the block, not copy it")
	require.Equal(t, 99, *dst.At(1))
}

func TestBuffer_Swap(t *testing.T) {
	a, err := rawbuf.New[int](2)
	require.NoError(t, err)
	b, err := rawbuf.New[int](5)
	require.NoError(t, err)
	*a.At(0) = 1
	*b.At(0) = 2

	a.Swap(&b)
	require.Equal(t, 5, a.Capacity())
	require.Equal(t, 2, b.Capacity())
	require.Equal(t, 2, *a.At(0))
	require.Equal(t, 1, *b.At(0))
}

func TestBuffer_Release(t *testing.T) {
	buf, err := rawbuf.New[int](3)
	require.NoError(t, err)

	buf.Release()
	require.Equal(t, 0, buf.Capacity())
	buf.Release() // idempotent
	require.Equal(t, 0, buf.Capacity())
}

func TestSizeof(t *testing.T) {
	require.Equal(t, uintptr(8), rawbuf.Sizeof[int64]())
	require.Equal(t, uintptr(0), rawbuf.Sizeof[struct{}]())
}
