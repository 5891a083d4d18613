package main

import (
	"tinkervision.dev/tv/api"
	"tinkervision.dev/tv/base/fsx"
	"tinkervision.dev/tv/camera"
	"tinkervision.dev/tv/colorspace"
	"tinkervision.dev/tv/config"
)

// loadConfig reads configPath if set and present, otherwise falls back to
// Default(), and ensures every configured directory exists. A --config flag
// pointing at a file that does not exist yet is treated as "use defaults"
// rather than an error, so a fresh checkout runs without first requiring a
// config file to be written by hand.
func loadConfig() (config.Config, error) {
	var cfg config.Config
	var err error
	if exists, _ := fsx.FileExists(configPath); configPath != "" && exists {
		cfg, err = config.Load(configPath)
	} else {
		cfg, err = config.Default()
	}
	if err != nil {
		return config.Config{}, err
	}
	if err := cfg.EnsureDirs(); err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}

// newSyntheticApi builds an Api around the deterministic Synthetic camera
// adapter; the runtime has no OpenCV/V4L camera binding (camera.Adapter is
// a Non-goal collaborator a real deployment supplies separately).
func newSyntheticApi(cfg config.Config) *api.Api {
	synth := camera.NewSynthetic(640, 480, [3]byte{0, 0, 0})
	cam := camera.NewHandle(synth)
	conv := colorspace.NewConverter()
	bus := colorspace.NewFrameBus(conv)
	return api.New(cfg, cam, bus, api.Builtins())
}
