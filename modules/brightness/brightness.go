// Package brightness implements an Fx-kind module that adjusts a BGR888
// frame's brightness using github.com/anthonynsimon/bild/adjust for the
// one-shot pixel-wise adjustment rather than hand-rolling one.
package brightness

import (
	"image"

	"github.com/anthonynsimon/bild/adjust"

	"tinkervision.dev/tv/colorspace"
	"tinkervision.dev/tv/internal/imagex"
	"tinkervision.dev/tv/module"
)

type Module struct {
	module.Base
}

// New is the factory registered under the name "brightness". It registers
// a single "change" parameter in [-100,100], mapped to bild's [-1,1]
// fractional change.
func New(id module.ID, tags module.Tag) (module.Module, error) {
	m := &Module{
		Base: module.NewBase(id, "brightness", module.KindFx, tags, colorspace.BGR888, true, false, module.ResultNone),
	}
	m.Parameters().RegisterNumeric("change", -100, 100, 0)
	return m, nil
}

func (m *Module) Execute(in colorspace.View, out *colorspace.Image) error {
	change, _ := m.Parameters().Get("change")

	src := colorspace.Image{ImageHeader: in.Header, Data: in.Data}
	stdImg, err := imagex.ToStdImage(src)
	if err != nil {
		return err
	}

	adjusted := adjust.Brightness(stdImg, float64(change)/100.0)
	writeBGR(adjusted, out.Data)
	return nil
}

// writeBGR copies an *image.RGBA's pixels into dst as tightly packed BGR
// triples, the inverse of internal/imagex.ToStdImage's BGR888 branch.
func writeBGR(img *image.RGBA, dst []byte) {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			o := img.PixOffset(x, y)
			r, g, bl := img.Pix[o], img.Pix[o+1], img.Pix[o+2]
			d := (y*w + x) * 3
			if d+2 >= len(dst) {
				continue
			}
			dst[d], dst[d+1], dst[d+2] = bl, g, r
		}
	}
}
