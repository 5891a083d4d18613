// Package downscale implements an Fx-kind, image-producing module that
// halves width and height per configured factor step. It is the canonical
// example of a module whose OutputImageHeader differs from its input
// (module.Base's default implementation, which just echoes ref, is
// overridden here).
package downscale

import (
	"tinkervision.dev/tv/colorspace"
	"tinkervision.dev/tv/module"
)

type Module struct {
	module.Base
}

// New is the factory registered under the name "downscale". It registers a
// single "factor" parameter (0 = passthrough, N>=1 = skip by 2*N pixels
// per step, matching the original's factor_*2 stride).
func New(id module.ID, tags module.Tag) (module.Module, error) {
	m := &Module{
		Base: module.NewBase(id, "downscale", module.KindFx, tags, colorspace.BGR888, true, false, module.ResultNone),
	}
	m.Parameters().RegisterNumeric("factor", 0, 8, 1)
	return m, nil
}

func (m *Module) skip() int {
	factor, _ := m.Parameters().Get("factor")
	if factor == 0 {
		return 1
	}
	return int(factor) * 2
}

// OutputImageHeader reports the downscaled dimensions for the current
// factor; with factor 0 it echoes ref like module.Base's default.
func (m *Module) OutputImageHeader(ref colorspace.ImageHeader) colorspace.ImageHeader {
	skip := m.skip()
	return colorspace.NewHeader(ref.Width/skip, ref.Height/skip, ref.ColorSpace, ref.Timestamp)
}

func (m *Module) Execute(in colorspace.View, out *colorspace.Image) error {
	skip := m.skip()
	if skip == 1 {
		copy(out.Data, in.Data)
		return nil
	}

	srcW := in.Header.Width
	outW, outH := out.Width, out.Height
	const channels = 3
	for y := 0; y < outH; y++ {
		srcRow := y * skip
		for x := 0; x < outW; x++ {
			srcCol := x * skip
			s := (srcRow*srcW + srcCol) * channels
			d := (y*outW + x) * channels
			if s+2 >= len(in.Data) || d+2 >= len(out.Data) {
				continue
			}
			out.Data[d], out.Data[d+1], out.Data[d+2] = in.Data[s], in.Data[s+1], in.Data[s+2]
		}
	}
	return nil
}
