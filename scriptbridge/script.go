//go:build tv_script

package scriptbridge

import (
	"reflect"

	"github.com/cogentcore/yaegi/interp"
	"github.com/cogentcore/yaegi/stdlib"

	"tinkervision.dev/tv/base/errors"
	"tinkervision.dev/tv/colorspace"
	"tinkervision.dev/tv/module"
	"tinkervision.dev/tv/result"
)

// tvSymbols exposes the packages a script-backed module needs to implement
// module.Module, in the shape yaegi's "extract" tool would otherwise
// generate for a host package: one reflect.Value per exported identifier.
var tvSymbols = map[string]map[string]reflect.Value{
	"tinkervision.dev/tv/module/module": {
		"KindNone":          reflect.ValueOf(module.KindNone),
		"KindExecutable":    reflect.ValueOf(module.KindExecutable),
		"KindFx":            reflect.ValueOf(module.KindFx),
		"KindAnalysis":      reflect.ValueOf(module.KindAnalysis),
		"KindOutput":        reflect.ValueOf(module.KindOutput),
		"TagNone":           reflect.ValueOf(module.TagNone),
		"TagExecAndRemove":  reflect.ValueOf(module.TagExecAndRemove),
		"TagExecAndDisable": reflect.ValueOf(module.TagExecAndDisable),
		"TagRemovable":      reflect.ValueOf(module.TagRemovable),
		"TagSequential":     reflect.ValueOf(module.TagSequential),
		"NewBase":           reflect.ValueOf(module.NewBase),
		"NoResult":          reflect.ValueOf(module.NoResult),
		"StringResult":      reflect.ValueOf(module.StringResult),
		"ScalarResult":      reflect.ValueOf(module.ScalarResult),
		"PointResult":       reflect.ValueOf(module.PointResult),
		"RectResult":        reflect.ValueOf(module.RectResult),
	},
	"tinkervision.dev/tv/colorspace/colorspace": {
		"None":    reflect.ValueOf(colorspace.None),
		"YUYV":    reflect.ValueOf(colorspace.YUYV),
		"YV12":    reflect.ValueOf(colorspace.YV12),
		"BGR888":  reflect.ValueOf(colorspace.BGR888),
		"RGB888":  reflect.ValueOf(colorspace.RGB888),
		"GRAY":    reflect.ValueOf(colorspace.GRAY),
		"Invalid": reflect.ValueOf(colorspace.Invalid),
	},
}

// Load interprets the Go source file at path and invokes its package-level
// New(id, tags) entrypoint, giving a scripted module the exact same
// Factory shape a compiled plug-in's Create symbol has.
func Load(path string, id module.ID, tags module.Tag) (module.Module, error) {
	i := interp.New(interp.Options{})
	if err := i.Use(stdlib.Symbols); err != nil {
		return nil, result.Wrap(result.InternalError, err)
	}
	if err := i.Use(tvSymbols); err != nil {
		return nil, result.Wrap(result.InternalError, err)
	}

	if _, err := i.EvalPath(path); err != nil {
		errors.Log(err)
		return nil, result.Wrap(result.ModuleDlopenFailed, err)
	}

	v, err := i.Eval("main.New")
	if err != nil {
		errors.Log(err)
		return nil, result.Wrap(result.ModuleDlsymFailed, err)
	}
	create, ok := v.Interface().(EntrypointFunc)
	if !ok {
		return nil, result.New(result.ModuleDlsymFailed)
	}
	return create(id, tags)
}
