package machine

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestStackPushPop(t *testing.T) {
	s := NewStack()
	require.NoError(t, s.Push(NewValue(1)))
	require.NoError(t, s.Push(NewValue(2)))
	require.Equal(t, 2, s.Len())

	top := s.Pop()
	require.NotNil(t, top)
	require.Equal(t, int32(2), *top)
	require.Equal(t, 1, s.Len())
}

func TestStackPopEmptyReturnsNil(t *testing.T) {
	s := NewStack()
	require.Nil(t, s.Pop())
}

func TestStackPushNilIsNoOp(t *testing.T) {
	s := NewStack()
	require.NoError(t, s.Push(nil))
	require.Equal(t, 0, s.Len())
}

func TestStackOverflow(t *testing.T) {
	s := NewStack()
	for i := 0; i < StackSize; i++ {
		require.NoError(t, s.Push(NewValue(int32(i))))
	}
	require.ErrorIs(t, s.Push(NewValue(99)), ErrStackOverflow)
}

func TestStackSnapshotTopFirst(t *testing.T) {
	s := NewStack()
	require.NoError(t, s.Push(NewValue(1)))
	require.NoError(t, s.Push(NewValue(2)))
	require.NoError(t, s.Push(NewValue(3)))
	require.Equal(t, []int32{3, 2, 1}, s.Snapshot())
}
