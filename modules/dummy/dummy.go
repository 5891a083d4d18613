// Package dummy implements a no-op Executable module: it declares no input
// colorspace, produces no image and no result, and exists purely so
// scheduler pause/resume behavior can be exercised without depending on
// any real algorithm.
package dummy

import (
	"tinkervision.dev/tv/colorspace"
	"tinkervision.dev/tv/module"
)

type Module struct {
	module.Base
	Execs int
}

// New is the factory registered under the name "dummy".
func New(id module.ID, tags module.Tag) (module.Module, error) {
	return &Module{
		Base: module.NewBase(id, "dummy", module.KindExecutable, tags, colorspace.None, false, false, module.ResultNone),
	}, nil
}

func (m *Module) Execute(in colorspace.View, out *colorspace.Image) error {
	m.Execs++
	return nil
}
