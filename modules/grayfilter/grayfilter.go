// Package grayfilter implements an Fx-kind module that converts a BGR888
// frame to grayscale, writing the luminance value back into all three
// channels so the output stays a BGR888-shaped image other BGR-consuming
// modules can chain from, using the same luma weights as package
// colorspace's own BGR<->GRAY kernels.
//
// The conversion is shipped twice under separate names — a standalone
// buildable module and a scene-internal stage — so New and NewShared both
// exist here, identical except for the TypeName/registration identity a
// client uses to start one or the other.
package grayfilter

import (
	"tinkervision.dev/tv/colorspace"
	"tinkervision.dev/tv/module"
)

type Module struct {
	module.Base
}

func newModule(name string, id module.ID, tags module.Tag) *Module {
	return &Module{
		Base: module.NewBase(id, name, module.KindFx, tags, colorspace.BGR888, true, false, module.ResultNone),
	}
}

// New is the factory registered under the name "grayfilter".
func New(id module.ID, tags module.Tag) (module.Module, error) {
	return newModule("grayfilter", id, tags), nil
}

// NewShared is the factory registered under the name "grayfilter-shared",
// the scene-internal-stage variant of the same conversion.
func NewShared(id module.ID, tags module.Tag) (module.Module, error) {
	return newModule("grayfilter-shared", id, tags), nil
}

func (m *Module) Execute(in colorspace.View, out *colorspace.Image) error {
	w, h := in.Header.Width, in.Header.Height
	src, dst := in.Data, out.Data
	for i := 0; i < w*h; i++ {
		s := i * 3
		if s+2 >= len(src) {
			break
		}
		b, g, r := src[s], src[s+1], src[s+2]
		gray := byte((299*int(r) + 587*int(g) + 114*int(b)) / 1000)
		d := i * 3
		dst[d], dst[d+1], dst[d+2] = gray, gray, gray
	}
	return nil
}
