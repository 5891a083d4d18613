// Package snapshot implements an Output-kind module that copies every
// frame it is handed and, on request, writes the most recent copy to disk
// under a configurable path/prefix/format. It only ever consumes BGR888
// (there is no live YV12 camera path to exercise a raw planar dump) and
// always goes through internal/imagex's codec-backed Write.
package snapshot

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"tinkervision.dev/tv/colorspace"
	"tinkervision.dev/tv/internal/imagex"
	"tinkervision.dev/tv/module"
)

// Module buffers the latest BGR888 frame and writes it to disk as
// path/prefix_N.format on request.
type Module struct {
	module.Base

	mu      sync.Mutex
	header  colorspace.ImageHeader
	data    []byte
	counter uint64
}

// New is the factory registered under the name "snapshot". It registers
// "path" (directory, defaults to the working directory), "prefix"
// (filename prefix, default "snapshot") and "format" (extension understood
// by internal/imagex, default "png").
func New(id module.ID, tags module.Tag) (module.Module, error) {
	m := &Module{
		Base: module.NewBase(id, "snapshot", module.KindOutput, tags, colorspace.BGR888, false, false, module.ResultNone),
	}
	p := m.Parameters()
	p.RegisterString("path", ".", func(v string) bool {
		info, err := os.Stat(v)
		return err == nil && info.IsDir()
	})
	p.RegisterString("prefix", "snapshot", nil)
	p.RegisterString("format", "png", func(v string) bool {
		_, err := imagex.ExtToFormat(v)
		return err == nil
	})
	return m, nil
}

func (m *Module) Execute(in colorspace.View, out *colorspace.Image) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.data == nil || len(m.data) != len(in.Data) {
		m.data = make([]byte, len(in.Data))
	}
	copy(m.data, in.Data)
	m.header = in.Header
	return nil
}

// Save writes the most recently captured frame to disk, returning the path
// it was written to. It mirrors the original's get_result, which performs
// the write lazily on demand rather than on every execute() pass.
func (m *Module) Save() (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.data == nil {
		return "", fmt.Errorf("snapshot: no frame captured yet")
	}

	path, _ := m.Parameters().GetString("path")
	prefix, _ := m.Parameters().GetString("prefix")
	format, _ := m.Parameters().GetString("format")
	m.counter++

	name := fmt.Sprintf("%s_%d.%s", prefix, m.counter, format)
	full := filepath.Join(path, name)

	img := colorspace.Image{ImageHeader: m.header, Data: m.data}
	std, err := imagex.ToStdImage(img)
	if err != nil {
		return "", err
	}
	if err := imagex.Save(std, full); err != nil {
		return "", err
	}
	return full, nil
}
