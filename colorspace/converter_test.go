package colorspace

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func solidYUYV(w, h int, y, u, v byte) Image {
	data := make([]byte, w*h*2)
	for i := 0; i < len(data); i += 4 {
		data[i] = y
		data[i+1] = u
		data[i+2] = y
		data[i+3] = v
	}
	return Image{ImageHeader: NewHeader(w, h, YUYV, 0), Data: data}
}

func TestConvertIdentity(t *testing.T) {
	c := NewConverter()
	src := solidYUYV(4, 4, 128, 128, 128)
	out, err := c.Convert(YUYV, src)
	assert.NoError(t, err)
	assert.Equal(t, src.Data, out.Data)
}

func TestConvertYUYVDirectToBGR(t *testing.T) {
	c := NewConverter()
	src := solidYUYV(2, 2, 200, 128, 128)
	out, err := c.Convert(BGR888, src)
	assert.NoError(t, err)
	assert.Equal(t, BGR888, out.ColorSpace)
	assert.Equal(t, 2*2*3, out.ByteCount)
}

func TestConvertUnsupported(t *testing.T) {
	c := NewConverter()
	src := Image{ImageHeader: NewHeader(2, 2, GRAY, 0), Data: make([]byte, 4)}
	_, err := c.Convert(YUYV, src)
	assert.Error(t, err)
}

func TestRGBBGRRoundTripExact(t *testing.T) {
	c := NewConverter()
	src := Image{
		ImageHeader: NewHeader(1, 1, BGR888, 0),
		Data:        []byte{10, 20, 30},
	}
	rgb, err := c.Convert(RGB888, src)
	assert.NoError(t, err)
	back, err := c.Convert(BGR888, rgb)
	assert.NoError(t, err)
	assert.Equal(t, src.Data, back.Data)
}

func TestYUVRoundTripBoundedError(t *testing.T) {
	c := NewConverter()
	src := solidYUYV(2, 2, 150, 90, 180)
	rgb, err := c.Convert(RGB888, src)
	assert.NoError(t, err)
	yv12, err := c.Convert(YV12, src)
	assert.NoError(t, err)
	backFromYV12, err := c.Convert(RGB888, yv12)
	assert.NoError(t, err)
	for i := range rgb.Data {
		diff := int(rgb.Data[i]) - int(backFromYV12.Data[i])
		if diff < 0 {
			diff = -diff
		}
		assert.LessOrEqual(t, diff, 2)
	}
}
