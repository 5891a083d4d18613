package grayfilter

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"tinkervision.dev/tv/colorspace"
	"tinkervision.dev/tv/module"
)

func TestExecuteWritesLumaIntoAllThreeChannels(t *testing.T) {
	m, err := New(1, module.TagNone)
	assert.NoError(t, err)
	assert.Equal(t, "grayfilter", m.TypeName())

	// Pure blue pixel: luma = 114*255/1000 = 29
	in := colorspace.View{
		Header: colorspace.NewHeader(1, 1, colorspace.BGR888, 0),
		Data:   []byte{255, 0, 0},
	}
	out := &colorspace.Image{
		ImageHeader: colorspace.NewHeader(1, 1, colorspace.BGR888, 0),
		Data:        make([]byte, 3),
	}

	assert.NoError(t, m.Execute(in, out))
	assert.Equal(t, byte(29), out.Data[0])
	assert.Equal(t, out.Data[0], out.Data[1])
	assert.Equal(t, out.Data[0], out.Data[2])
}

func TestNewSharedRegistersDistinctTypeName(t *testing.T) {
	shared, err := NewShared(1, module.TagNone)
	assert.NoError(t, err)
	assert.Equal(t, "grayfilter-shared", shared.TypeName())
}

func TestExecuteHandlesMultiplePixels(t *testing.T) {
	m, err := New(2, module.TagNone)
	assert.NoError(t, err)

	in := colorspace.View{
		Header: colorspace.NewHeader(2, 1, colorspace.BGR888, 0),
		Data:   []byte{0, 0, 0, 255, 255, 255},
	}
	out := &colorspace.Image{
		ImageHeader: colorspace.NewHeader(2, 1, colorspace.BGR888, 0),
		Data:        make([]byte, 6),
	}

	assert.NoError(t, m.Execute(in, out))
	assert.Equal(t, byte(0), out.Data[0])
	assert.Equal(t, byte(255), out.Data[3])
}
