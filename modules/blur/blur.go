// Package blur implements an Fx-kind module that Gaussian-blurs a BGR888
// frame using github.com/anthonynsimon/bild/blur.
package blur

import (
	"image"

	"github.com/anthonynsimon/bild/blur"

	"tinkervision.dev/tv/colorspace"
	"tinkervision.dev/tv/internal/imagex"
	"tinkervision.dev/tv/module"
)

type Module struct {
	module.Base
}

// New is the factory registered under the name "blur". It registers a
// "radius-tenths" parameter in tenths of a pixel (0-500, i.e. 0.0-50.0px),
// since Parameters only carries integers.
func New(id module.ID, tags module.Tag) (module.Module, error) {
	m := &Module{
		Base: module.NewBase(id, "blur", module.KindFx, tags, colorspace.BGR888, true, false, module.ResultNone),
	}
	m.Parameters().RegisterNumeric("radius-tenths", 0, 500, 10)
	return m, nil
}

func (m *Module) Execute(in colorspace.View, out *colorspace.Image) error {
	radiusTenths, _ := m.Parameters().Get("radius-tenths")

	src := colorspace.Image{ImageHeader: in.Header, Data: in.Data}
	stdImg, err := imagex.ToStdImage(src)
	if err != nil {
		return err
	}

	blurred := blur.Gaussian(stdImg, float64(radiusTenths)/10.0)
	writeBGR(blurred, out.Data)
	return nil
}

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
