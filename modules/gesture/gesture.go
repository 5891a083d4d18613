// Package gesture implements an Analysis module that reports the centroid
// of all skin-toned pixels as a Point result; regions are not separated,
// so disjoint skin-toned areas share one centroid. It exposes three
// tunables (bg-history, fg-threshold, min-hand-size) around a simple HSV
// skin-tone mask and centroid computation rather than a full
// hand-detection pipeline.
package gesture

import (
	"tinkervision.dev/tv/colorspace"
	"tinkervision.dev/tv/module"
)

// Skin tones fall roughly within this hue band under the OpenCV 0-180 hue
// convention, the same one colormatch's bgrToHSV produces.
const (
	skinMinHue = 0
	skinMaxHue = 25
	skinMinSat = 40
	skinMaxSat = 200
	skinMinVal = 60
)

type Module struct {
	module.Base

	framecounter int
}

// New is the factory registered under the name "gesture".
func New(id module.ID, tags module.Tag) (module.Module, error) {
	m := &Module{
		Base: module.NewBase(id, "gesture", module.KindAnalysis, tags, colorspace.BGR888, false, true, module.ResultPoint),
	}
	p := m.Parameters()
	p.RegisterNumeric("bg-history", 0, 300, 10)
	p.RegisterNumeric("fg-threshold", 0, 255, 30)
	p.RegisterNumeric("min-hand-size", 0, 1<<20, 200)
	return m, nil
}

func (m *Module) Execute(in colorspace.View, out *colorspace.Image) error {
	history, _ := m.Parameters().Get("bg-history")
	minSize, _ := m.Parameters().Get("min-hand-size")

	m.framecounter++
	if m.framecounter <= int(history) {
		// mirrors the original's State::Initial -> State::Detect warmup
		m.SetResult(module.NoResult())
		return nil
	}

	w, h := in.Header.Width, in.Header.Height
	data := in.Data

	var sumX, sumY int64
	count := int32(0)

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			off := (y*w + x) * 3
			if off+2 >= len(data) {
				continue
			}
			b, g, r := data[off], data[off+1], data[off+2]
			hue, sat, val := bgrToHSV(b, g, r)
			if hue < skinMinHue || hue > skinMaxHue || sat < skinMinSat || sat > skinMaxSat || val < skinMinVal {
				continue
			}
			sumX += int64(x)
			sumY += int64(y)
			count++
		}
	}

	if count < minSize {
		m.SetResult(module.NoResult())
		return nil
	}
	m.SetResult(module.PointResult(int32(sumX/int64(count)), int32(sumY/int64(count))))
	return nil
}

// bgrToHSV mirrors modules/colormatch's conversion; duplicated rather than
// imported so this package has no dependency on a sibling module package.
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

	var hf float64
	switch max {
	case rf:
		hf = 60 * float64(gf-bf) / float64(delta)
	case gf:
		hf = 60*float64(bf-rf)/float64(delta) + 120
	default:
		hf = 60*float64(rf-gf)/float64(delta) + 240
	}
	if hf < 0 {
		hf += 360
	}
	hue = int32(hf / 2)
	return hue, sat, val
}
