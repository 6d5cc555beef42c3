package bst

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRefSet(t *testing.T) {
	s := NewRefSet[int]()
	require.True(t, s.Insert(3))
	require.True(t, s.Insert(1))
	require.False(t, s.Insert(3))
	require.True(t, s.Search(1))
	require.False(t, s.Search(2))
	require.Equal(t, []int{1, 3}, s.Sorted())
	require.True(t, s.Remove(1))
	require.False(t, s.Remove(1))
	require.Equal(t, 1, s.Len())
	s.Close()
	require.Equal(t, 0, s.Len())
}
