package colormatch

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"tinkervision.dev/tv/colorspace"
	"tinkervision.dev/tv/module"
)

// hsvToBGR inverts bgrToHSV closely enough for test fixtures: h is in the
// OpenCV 0-180 convention, s and v in [0,255].
func hsvToBGR(h, s, v int) (b, g, r byte) {
	hh := float64(h*2) / 60.0
	ss := float64(s) / 255.0
	vv := float64(v)

	i := int(hh) % 6
	f := hh - math.Floor(hh)
	p := vv * (1 - ss)
	q := vv * (1 - f*ss)
	t := vv * (1 - (1-f)*ss)

	var rf, gf, bf float64
	switch i {
	case 0:
		rf, gf, bf = vv, t, p
	case 1:
		rf, gf, bf = q, vv, p
	case 2:
		rf, gf, bf = p, vv, t
	case 3:
		rf, gf, bf = p, q, vv
	case 4:
		rf, gf, bf = t, p, vv
	default:
		rf, gf, bf = vv, p, q
	}
	return byte(bf), byte(gf), byte(rf)
}

func solidFrame(w, h int, b, g, r byte) colorspace.View {
	data := make([]byte, w*h*3)
	for i := 0; i < w*h; i++ {
		data[i*3], data[i*3+1], data[i*3+2] = b, g, r
	}
	return colorspace.View{
		Header: colorspace.NewHeader(w, h, colorspace.BGR888, 0),
		Data:   data,
	}
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

func TestColormatchFindsTargetRectangle(t *testing.T) {
	m, err := New(1, module.TagNone)
	assert.NoError(t, err)

	assert.True(t, m.Parameters().Set("min-hue", 100))
	assert.True(t, m.Parameters().Set("max-hue", 110))

	view := solidFrame(640, 480, 0, 0, 0)
	b, g, r := hsvToBGR(105, 200, 200)
	paintRect(view, 100, 50, 100, 100, b, g, r)

	assert.NoError(t, m.Execute(view, nil))

	res := m.Result()
	assert.Equal(t, module.ResultRectangle, res.Kind)
	assert.Equal(t, int32(100), res.X)
	assert.Equal(t, int32(50), res.Y)
	assert.Equal(t, int32(100), res.W)
	assert.Equal(t, int32(100), res.H)
}

func TestColormatchNoMatchProducesNoResult(t *testing.T) {
	m, err := New(1, module.TagNone)
	assert.NoError(t, err)
	assert.True(t, m.Parameters().Set("min-hue", 20))
	assert.True(t, m.Parameters().Set("max-hue", 30))

	view := solidFrame(16, 16, 0, 0, 0)
	assert.NoError(t, m.Execute(view, nil))
	assert.False(t, m.HasResult())
}
