package api

import (
	"tinkervision.dev/tv/module"
	"tinkervision.dev/tv/modules/blocking"
	"tinkervision.dev/tv/modules/blur"
	"tinkervision.dev/tv/modules/brightness"
	"tinkervision.dev/tv/modules/colormatch"
	"tinkervision.dev/tv/modules/downscale"
	"tinkervision.dev/tv/modules/dummy"
	"tinkervision.dev/tv/modules/gesture"
	"tinkervision.dev/tv/modules/grayfilter"
	"tinkervision.dev/tv/modules/motiondetect"
	"tinkervision.dev/tv/modules/snapshot"
)

// Builtins returns the compiled-in module factories, keyed by the name a
// client passes to module_start. Anything not listed here falls back to a
// plug-in lookup through moduleloader.
func Builtins() map[string]module.Factory {
	return map[string]module.Factory{
		"colormatch":        colormatch.New,
		"dummy":             dummy.New,
		"grayfilter":        grayfilter.New,
		"grayfilter-shared": grayfilter.NewShared,
		"downscale":         downscale.New,
		"snapshot":          snapshot.New,
		"blocking":          blocking.New,
		"motiondetect":      motiondetect.New,
		"gesture":           gesture.New,
		"brightness":        brightness.New,
		"blur":              blur.New,
	}
}
