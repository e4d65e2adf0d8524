package bounded

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewBytes(t *testing.T) {
	b := NewBytes(4)

	assert.Equal(t, 0, b.Len())
	assert.Equal(t, 4, b.Cap())
	assert.False(t, b.Full())
	assert.Empty(t, b.Bytes())
}

func TestBytesSet(t *testing.T) {
	b := NewBytes(4)

	require.NoError(t, b.Set([]byte{1, 2, 3}))
	assert.Equal(t, []byte{1, 2, 3}, b.Bytes())

	require.NoError(t, b.Set([]byte{9}))
	assert.Equal(t, []byte{9}, b.Bytes(), "Set replaces, not appends")

	require.NoError(t, b.Set([]byte{1, 2, 3, 4}))
	assert.True(t, b.Full())
}

func TestBytesSetOverflowKeepsContents(t *testing.T) {
	b := NewBytes(3)
	require.NoError(t, b.Set([]byte{7, 8}))

	err := b.Set([]byte{1, 2, 3, 4})
	require.ErrorIs(t, err, ErrFull)
	assert.Equal(t, []byte{7, 8}, b.Bytes())
}

func TestBytesAppend(t *testing.T) {
	b := NewBytes(4)

	require.NoError(t, b.Append([]byte{1, 2}))
	require.NoError(t, b.Append([]byte{3}))
	assert.Equal(t, []byte{1, 2, 3}, b.Bytes())

	err := b.Append([]byte{4, 5})
	require.ErrorIs(t, err, ErrFull)
	assert.Equal(t, []byte{1, 2, 3}, b.Bytes(), "failed Append leaves contents intact")

	require.NoError(t, b.Append([]byte{4}))
	assert.True(t, b.Full())
}

func TestBytesView(t *testing.T) {
	b := NewBytes(4)
	require.NoError(t, b.Set([]byte{1, 2}))

	view := b.Bytes()
	view[0] = 100
	assert.Equal(t, []byte{100, 2}, b.Bytes(), "Bytes is a view, not a copy")
}

func TestBytesClear(t *testing.T) {
	b := NewBytes(4)
	require.NoError(t, b.Set([]byte{1, 2, 3}))

	b.Clear()
	assert.Equal(t, 0, b.Len())
	assert.Equal(t, 4, b.Cap())
	assert.Empty(t, b.Bytes())

	require.NoError(t, b.Set([]byte{5}))
	assert.Equal(t, []byte{5}, b.Bytes())
}
