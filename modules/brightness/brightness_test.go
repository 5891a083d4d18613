package brightness

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"tinkervision.dev/tv/colorspace"
	"tinkervision.dev/tv/module"
)

func TestExecuteBrightensFrame(t *testing.T) {
	m, err := New(1, module.TagNone)
	assert.NoError(t, err)
	assert.True(t, m.Parameters().Set("change", 50))

	header := colorspace.NewHeader(2, 2, colorspace.BGR888, 0)
	in := colorspace.View{Header: header, Data: make([]byte, header.ByteCount)}
	for i := range in.Data {
		in.Data[i] = 50
	}
	out := &colorspace.Image{ImageHeader: header, Data: make([]byte, header.ByteCount)}

	assert.NoError(t, m.Execute(in, out))
	for _, v := range out.Data {
		assert.Greater(t, v, byte(50))
	}
}

func TestZeroChangeIsNearIdentity(t *testing.T) {
	m, err := New(1, module.TagNone)
	assert.NoError(t, err)

	header := colorspace.NewHeader(1, 1, colorspace.BGR888, 0)
	in := colorspace.View{Header: header, Data: []byte{10, 20, 30}}
	out := &colorspace.Image{ImageHeader: header, Data: make([]byte, 3)}

	assert.NoError(t, m.Execute(in, out))
	assert.Equal(t, in.Data, out.Data)
}
