package imagex

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"

	"tinkervision.dev/tv/colorspace"
)

func TestToStdImageBGR(t *testing.T) {
	img := colorspace.Image{
		ImageHeader: colorspace.NewHeader(2, 1, colorspace.BGR888, 0),
		Data:        []byte{10, 20, 30, 40, 50, 60},
	}
	std, err := ToStdImage(img)
	assert.NoError(t, err)
	r, g, b, a := std.At(0, 0).RGBA()
	assert.Equal(t, uint32(30<<8|30), r)
	assert.Equal(t, uint32(20<<8|20), g)
	assert.Equal(t, uint32(10<<8|10), b)
	assert.Equal(t, uint32(0xffff), a)
}

func TestToStdImageRejectsYV12(t *testing.T) {
	img := colorspace.Image{ImageHeader: colorspace.NewHeader(2, 2, colorspace.YV12, 0), Data: make([]byte, 6)}
	_, err := ToStdImage(img)
	assert.Error(t, err)
}

func TestWriteYV12RawDumpsPlanesVerbatim(t *testing.T) {
	data := []byte{1, 2, 3, 4, 9, 9, 8, 8}
	img := colorspace.Image{ImageHeader: colorspace.NewHeader(2, 2, colorspace.YV12, 0), Data: data}
	var buf bytes.Buffer
	assert.NoError(t, WriteYV12Raw(img, &buf))
	assert.Equal(t, data, buf.Bytes())
}

func TestWriteYV12RawRejectsNonYV12(t *testing.T) {
	img := colorspace.Image{ImageHeader: colorspace.NewHeader(1, 1, colorspace.GRAY, 0), Data: []byte{1}}
	var buf bytes.Buffer
	assert.Error(t, WriteYV12Raw(img, &buf))
}
