// Package motiondetect implements an Analysis module that reports the
// bounding rectangle of pixels that changed between consecutive frames.
// It is a plain frame-difference stand-in rather than a tuned background
// model, with three knobs: a warm-up "history" frame count, an
// "fg-threshold" on the per-pixel mean channel difference, and a
// "min-changed-pixels" threshold below which no motion is reported.
package motiondetect

import (
	"tinkervision.dev/tv/colorspace"
	"tinkervision.dev/tv/module"
)

type Module struct {
	module.Base

	prev         []byte
	framecounter int
}

// New is the factory registered under the name "motiondetect".
func New(id module.ID, tags module.Tag) (module.Module, error) {
	m := &Module{
		Base: module.NewBase(id, "motiondetect", module.KindAnalysis, tags, colorspace.BGR888, false, true, module.ResultRectangle),
	}
	p := m.Parameters()
	p.RegisterNumeric("history", 0, 300, 10)
	p.RegisterNumeric("fg-threshold", 0, 255, 30)
	p.RegisterNumeric("min-changed-pixels", 0, 1<<20, 50)
	return m, nil
}

func (m *Module) Execute(in colorspace.View, out *colorspace.Image) error {
	history, _ := m.Parameters().Get("history")
	threshold, _ := m.Parameters().Get("fg-threshold")
	minChanged, _ := m.Parameters().Get("min-changed-pixels")

	w, h := in.Header.Width, in.Header.Height
	if m.prev == nil || len(m.prev) != len(in.Data) {
		m.prev = make([]byte, len(in.Data))
		copy(m.prev, in.Data)
		m.framecounter++
		m.SetResult(module.NoResult())
		return nil
	}

	m.framecounter++
	if m.framecounter <= int(history) {
		// warming up to the background, per the original's framecounter_ >
		// history_ gate
		copy(m.prev, in.Data)
		m.SetResult(module.NoResult())
		return nil
	}

	minX, minY := w, h
	maxX, maxY := -1, -1
	changed := 0

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			off := (y*w + x) * 3
			if off+2 >= len(in.Data) {
				continue
			}
			diff := absDiff(in.Data[off], m.prev[off]) +
				absDiff(in.Data[off+1], m.prev[off+1]) +
				absDiff(in.Data[off+2], m.prev[off+2])
			if int32(diff/3) < threshold {
				continue
			}
			changed++
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
	copy(m.prev, in.Data)

	if changed < int(minChanged) {
		m.SetResult(module.NoResult())
		return nil
	}
	m.SetResult(module.RectResult(int32(minX), int32(minY), int32(maxX-minX+1), int32(maxY-minY+1)))
	return nil
}

func absDiff(a, b byte) int {
	if a > b {
		return int(a - b)
	}
	return int(b - a)
}
