package vector_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/memkit/memkit/pkg/vector"
)

func TestCursor(t *testing.T) {
	v := intVector(t, 10, 20, 30)

	var got []int
	var idx []int
	cur := v.Iter()
	for cur.Next() {
		got = append(got, cur.At())
		idx = append(idx, cur.Index())
	}
	require.Equal(t, []int{10, 20, 30}, got)
	require.Equal(t, []int{0, 1, 2}, idx)
	require.False(t, cur.Next(), "an exhausted cursor stays exhausted")
}

func TestCursor_Empty(t *testing.T) {
	v := vector.New[int]()
	require.False(t, v.Iter().Next())
}

func TestCursor_RefWrites(t *testing.T) {
	v := intVector(t, 1, 2, 3)

	for cur := v.Iter(); cur.Next(); {
		*cur.Ref() *= 10
	}
	require.Equal(t, []int{10, 20, 30}, contents(v))
}

func TestAll(t *testing.T) {
	v := intVector(t, 5, 6, 7)

	var got []int
	for i, x := range v.All() {
		got = append(got, i, x)
	}
	require.Equal(t, []int{0, 5, 1, 6, 2, 7}, got)

	// Early break is honored.
	count := 0
	for range v.All() {
		count++
		break
	}
	require.Equal(t, 1, count)
}
