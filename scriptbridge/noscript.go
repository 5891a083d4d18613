//go:build !tv_script

package scriptbridge

import (
	"tinkervision.dev/tv/module"
	"tinkervision.dev/tv/result"
)

// Load always fails with NotImplemented in default builds; build with
// -tags tv_script to get the yaegi-backed implementation in script.go.
func Load(path string, id module.ID, tags module.Tag) (module.Module, error) {
	return nil, result.New(result.NotImplemented)
}
