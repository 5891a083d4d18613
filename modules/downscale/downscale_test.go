package downscale

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"tinkervision.dev/tv/colorspace"
	"tinkervision.dev/tv/module"
)

func TestOutputImageHeaderPassthroughAtFactorZero(t *testing.T) {
	m, err := New(1, module.TagNone)
	assert.NoError(t, err)
	assert.True(t, m.Parameters().Set("factor", 0))

	ref := colorspace.NewHeader(640, 480, colorspace.BGR888, 0)
	out := m.OutputImageHeader(ref)
	assert.Equal(t, 640, out.Width)
	assert.Equal(t, 480, out.Height)
}

func TestOutputImageHeaderHalvesAtFactorOne(t *testing.T) {
	m, err := New(1, module.TagNone)
	assert.NoError(t, err)
	assert.True(t, m.Parameters().Set("factor", 1))

	ref := colorspace.NewHeader(640, 480, colorspace.BGR888, 0)
	out := m.OutputImageHeader(ref)
	assert.Equal(t, 320, out.Width)
	assert.Equal(t, 240, out.Height)
}

func TestExecuteSubsamplesPixelsByStride(t *testing.T) {
	m, err := New(1, module.TagNone)
	assert.NoError(t, err)
	assert.True(t, m.Parameters().Set("factor", 1))

	const w, h = 4, 4
	src := make([]byte, w*h*3)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			off := (y*w + x) * 3
			src[off], src[off+1], src[off+2] = byte(x), byte(y), byte(x+y)
		}
	}
	in := colorspace.View{Header: colorspace.NewHeader(w, h, colorspace.BGR888, 0), Data: src}

	outHeader := m.OutputImageHeader(in.Header)
	out := &colorspace.Image{ImageHeader: outHeader, Data: make([]byte, outHeader.ByteCount)}

	assert.NoError(t, m.Execute(in, out))

	assert.Equal(t, 2, out.Width)
	assert.Equal(t, 2, out.Height)
	// out pixel (0,0) should equal src pixel (0,0); out pixel (1,1) should equal src pixel (2,2)
	assert.Equal(t, src[0], out.Data[0])
	srcOff := (2*w + 2) * 3
	outOff := (1*out.Width + 1) * 3
	assert.Equal(t, src[srcOff], out.Data[outOff])
}
