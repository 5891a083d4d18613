package camera

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHandleRefcounting(t *testing.T) {
	s := NewSynthetic(8, 8, [3]byte{0, 0, 0})
	h := NewHandle(s)

	assert.NoError(t, h.Acquire())
	assert.NoError(t, h.Acquire())
	assert.Equal(t, 2, h.Refs())

	assert.NoError(t, h.Release())
	assert.Equal(t, 1, h.Refs())

	img, err := h.GrabFrame()
	assert.NoError(t, err)
	assert.Equal(t, 8*8*2, img.ByteCount)

	assert.NoError(t, h.Release())
	assert.Equal(t, 0, h.Refs())

	_, err = h.GrabFrame()
	assert.Error(t, err)
}
