package gesture

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"tinkervision.dev/tv/colorspace"
	"tinkervision.dev/tv/module"
)

func solidFrame(w, h int, b, g, r byte) colorspace.View {
	data := make([]byte, w*h*3)
	for i := 0; i < w*h; i++ {
		data[i*3], data[i*3+1], data[i*3+2] = b, g, r
	}
	return colorspace.View{Header: colorspace.NewHeader(w, h, colorspace.BGR888, 0), Data: data}
}

func paintRect(v colorspace.View, x, y, w, h int, b, g, r byte) {
	fw := v.Header.Width
	for yy := y; yy < y+h; yy++ {
		for xx := x; xx < x+w; xx++ {
			off := (yy*fw + xx) * 3
			v.Data[off], v.Data[off+1], v.Data[off+2] = b, g, r
		}
	}
}

func TestNoResultDuringWarmup(t *testing.T) {
	m, err := New(1, module.TagNone)
	assert.NoError(t, err)
	assert.True(t, m.Parameters().Set("bg-history", 2))

	frame := solidFrame(16, 16, 0, 0, 0)
	assert.NoError(t, m.Execute(frame, nil))
	assert.False(t, m.HasResult())
	assert.NoError(t, m.Execute(frame, nil))
	assert.False(t, m.HasResult())
}

func TestCentroidReportedAfterWarmup(t *testing.T) {
	m, err := New(1, module.TagNone)
	assert.NoError(t, err)
	assert.True(t, m.Parameters().Set("bg-history", 0))
	assert.True(t, m.Parameters().Set("min-hand-size", 1))

	// Skin tone: h=15 (OpenCV 0-180), s=153, v=200
	view := solidFrame(32, 32, 0, 0, 0)
	paintRect(view, 10, 10, 10, 10, 80, 140, 200)

	assert.NoError(t, m.Execute(view, nil))
	res := m.Result()
	assert.Equal(t, module.ResultPoint, res.Kind)
	assert.True(t, res.X >= 10 && res.X <= 20)
	assert.True(t, res.Y >= 10 && res.Y <= 20)
}
