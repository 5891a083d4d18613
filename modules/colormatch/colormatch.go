// Package colormatch implements an Analysis module that reports the
// bounding rectangle of all pixels whose hue falls in a configurable
// [min-hue, max-hue] window; connected regions are not separated, so
// disjoint matches share one rectangle. It walks the BGR888 buffer
// directly, computing HSV hue per pixel with the standard six-sector
// formula and tracking a single bounding box rather than running full
// contour extraction — a plausible, not scientifically tuned, stand-in
// for a production color-segmentation pass.
package colormatch

import (
	"tinkervision.dev/tv/colorspace"
	"tinkervision.dev/tv/module"
)

const (
	minHueBound = 0
	maxHueBound = 180
	minSatBound = 0
	maxSatBound = 255
	minValBound = 0
	maxValBound = 255
)

// Module matches pixels by hue, reporting the bounding rectangle of every
// matching pixel as a Rectangle result.
type Module struct {
	module.Base
}

// New is the factory registered under the name "colormatch".
func New(id module.ID, tags module.Tag) (module.Module, error) {
	m := &Module{
		Base: module.NewBase(id, "colormatch", module.KindAnalysis, tags, colorspace.BGR888, false, true, module.ResultRectangle),
	}
	p := m.Parameters()
	p.RegisterNumeric("min-hue", minHueBound, maxHueBound, minHueBound)
	p.RegisterNumeric("max-hue", minHueBound, maxHueBound, maxHueBound)
	p.RegisterNumeric("min-saturation", minSatBound, maxSatBound, minSatBound)
	p.RegisterNumeric("max-saturation", minSatBound, maxSatBound, maxSatBound)
	p.RegisterNumeric("min-value", minValBound, maxValBound, minValBound)
	p.RegisterNumeric("max-value", minValBound, maxValBound, maxValBound)
	return m, nil
}

func (m *Module) Execute(in colorspace.View, out *colorspace.Image) error {
	minHue, _ := m.Parameters().Get("min-hue")
	maxHue, _ := m.Parameters().Get("max-hue")
	minSat, _ := m.Parameters().Get("min-saturation")
	maxSat, _ := m.Parameters().Get("max-saturation")
	minVal, _ := m.Parameters().Get("min-value")
	maxVal, _ := m.Parameters().Get("max-value")

	w, h := in.Header.Width, in.Header.Height
	data := in.Data

	// The hue range is circular: min-hue > max-hue wraps through 180/0.
	wraps := minHue > maxHue

	minX, minY := w, h
	maxX, maxY := -1, -1
	found := false

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			off := (y*w + x) * 3
			if off+2 >= len(data) {
				continue
			}
			b, g, r := data[off], data[off+1], data[off+2]
			hue, sat, val := bgrToHSV(b, g, r)

			inHue := hue >= int32(minHue) && hue <= int32(maxHue)
			if wraps {
				inHue = hue >= int32(minHue) || hue <= int32(maxHue)
			}
			if !inHue || sat < int32(minSat) || sat > int32(maxSat) || val < int32(minVal) || val > int32(maxVal) {
				continue
			}

			found = true
			if x < minX {
				minX = x
			}
			if y < minY {
				minY = y
			}
			if x > maxX {
				maxX = x
			}
			if y > maxY {
				maxY = y
			}
		}
	}

	if !found {
		m.SetResult(module.NoResult())
		return nil
	}
	m.SetResult(module.RectResult(int32(minX), int32(minY), int32(maxX-minX+1), int32(maxY-minY+1)))
	return nil
}

// bgrToHSV returns hue in [0,180] (OpenCV's 8-bit convention, matching the
// original's register_parameter bounds) and saturation/value in [0,255].
func bgrToHSV(b, g, r byte) (hue, sat, val int32) {
	rf, gf, bf := int32(r), int32(g), int32(b)
	max := rf
	if gf > max {
		max = gf
	}
	if bf > max {
		max = bf
	}
	min := rf
	if gf < min {
		min = gf
	}
	if bf < min {
		min = bf
	}
	val = max
	delta := max - min
	if max == 0 || delta == 0 {
		return 0, 0, val
	}
	sat = delta * 255 / max

	var h float64
	switch max {
	case rf:
		h = 60 * float64(gf-bf) / float64(delta)
	case gf:
		h = 60*float64(bf-rf)/float64(delta) + 120
	default:
		h = 60*float64(rf-gf)/float64(delta) + 240
	}
	if h < 0 {
		h += 360
	}
	hue = int32(h / 2) // fold 0-360 into OpenCV's 0-180 hue range
	return hue, sat, val
}
