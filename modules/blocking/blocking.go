// Package blocking implements an Executable module that sleeps for a
// configurable duration on every execute pass. It exercises the Sequential
// tag's invariant: a Sequential module blocks the whole pipeline pass for
// its duration, unlike ordinary modules the scheduler may otherwise
// reorder or skip independently. The duration is exposed as a
// "milliseconds" parameter rather than hardcoded.
package blocking

import (
	"time"

	"tinkervision.dev/tv/colorspace"
	"tinkervision.dev/tv/module"
)

const defaultBlockMS = 10000

type Module struct {
	module.Base
}

// New is the factory registered under the name "blocking".
func New(id module.ID, tags module.Tag) (module.Module, error) {
	m := &Module{
		Base: module.NewBase(id, "blocking", module.KindExecutable, tags, colorspace.BGR888, false, false, module.ResultNone),
	}
	m.Parameters().RegisterNumeric("milliseconds", 0, 60000, defaultBlockMS)
	return m, nil
}

func (m *Module) Execute(in colorspace.View, out *colorspace.Image) error {
	ms, _ := m.Parameters().Get("milliseconds")
	time.Sleep(time.Duration(ms) * time.Millisecond)
	return nil
}
