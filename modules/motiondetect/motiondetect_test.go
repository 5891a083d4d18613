package motiondetect

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

func TestNoMotionDuringHistoryWarmup(t *testing.T) {
	m, err := New(1, module.TagNone)
	assert.NoError(t, err)
	assert.True(t, m.Parameters().Set("history", 3))

	frame := solidFrame(8, 8, 0, 0, 0)
	for i := 0; i < 3; i++ {
		assert.NoError(t, m.Execute(frame, nil))
		assert.False(t, m.HasResult())
	}
}

func TestMotionDetectedAfterWarmupOnChange(t *testing.T) {
	m, err := New(1, module.TagNone)
	assert.NoError(t, err)
	assert.True(t, m.Parameters().Set("history", 1))
	assert.True(t, m.Parameters().Set("min-changed-pixels", 1))

	black := solidFrame(8, 8, 0, 0, 0)
	assert.NoError(t, m.Execute(black, nil)) // seeds prev (framecounter==history)
	assert.NoError(t, m.Execute(black, nil)) // compared against prev: nothing changed

	white := solidFrame(8, 8, 255, 255, 255)
	assert.NoError(t, m.Execute(white, nil))
	assert.True(t, m.HasResult())
	assert.Equal(t, module.ResultRectangle, m.Result().Kind)
}
