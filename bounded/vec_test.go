package bounded

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewVec(t *testing.T) {
	v := NewVec[int](3)

	assert.Equal(t, 0, v.Len())
	assert.Equal(t, 3, v.Cap())
	assert.False(t, v.Full())
}

func TestNewVecOf(t *testing.T) {
	v := NewVecOf(2, func() String { return NewString(8) })

	slot, err := v.Grow()
	require.NoError(t, err)
	assert.Equal(t, 8, slot.Cap(), "slots should come pre-initialized")
	require.NoError(t, slot.Set("ready"))
}

func TestVecAppend(t *testing.T) {
	v := NewVec[int](2)

	require.NoError(t, v.Append(10))
	require.NoError(t, v.Append(20))
	assert.True(t, v.Full())

	err := v.Append(30)
	require.ErrorIs(t, err, ErrFull)
	assert.Equal(t, 2, v.Len())
	assert.Equal(t, 10, v.At(0))
	assert.Equal(t, 20, v.At(1))
}

func TestVecGrow(t *testing.T) {
	v := NewVec[int](2)

	slot, err := v.Grow()
	require.NoError(t, err)
	*slot = 42
	assert.Equal(t, 1, v.Len())
	assert.Equal(t, 42, v.At(0))

	_, err = v.Grow()
	require.NoError(t, err)
	_, err = v.Grow()
	require.ErrorIs(t, err, ErrFull)
	assert.Equal(t, 2, v.Len())
}

func TestVecGrowReusesSlotContents(t *testing.T) {
	v := NewVec[int](1)

	slot, err := v.Grow()
	require.NoError(t, err)
	*slot = 99
	v.Truncate(0)

	slot, err = v.Grow()
	require.NoError(t, err)
	assert.Equal(t, 99, *slot, "Grow hands back the slot as it was last left")
}

func TestVecIndexing(t *testing.T) {
	v := NewVec[int](4)
	require.NoError(t, v.Append(7))

	*v.Ptr(0) = 8
	assert.Equal(t, 8, v.At(0))

	assert.Panics(t, func() { v.At(-1) })
	assert.Panics(t, func() { v.At(1) }, "indexing past the live range panics even within capacity")
	assert.Panics(t, func() { v.Ptr(1) })
}

func TestVecTruncate(t *testing.T) {
	v := NewVec[int](4)
	for i := 0; i < 3; i++ {
		require.NoError(t, v.Append(i))
	}

	v.Truncate(1)
	assert.Equal(t, 1, v.Len())
	assert.Equal(t, 0, v.At(0))
	assert.Equal(t, 4, v.Cap())

	assert.Panics(t, func() { v.Truncate(-1) })
	assert.Panics(t, func() { v.Truncate(2) })
}

func TestVecClear(t *testing.T) {
	v := NewVec[int](2)
	require.NoError(t, v.Append(1))

	v.Clear()
	assert.Equal(t, 0, v.Len())
	assert.Equal(t, 2, v.Cap())
	require.NoError(t, v.Append(5))
	assert.Equal(t, 5, v.At(0))
}

func TestVecSlice(t *testing.T) {
	v := NewVec[int](3)
	require.NoError(t, v.Append(1))
	require.NoError(t, v.Append(2))

	s := v.Slice()
	require.Len(t, s, 2)

	s[0] = 100
	assert.Equal(t, 100, v.At(0), "Slice is a view, not a copy")
}
