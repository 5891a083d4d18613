// Package config loads and saves the runtime's TOML configuration file: the
// user/system module, script and data path prefixes, the scheduler's
// execution latency, and the camera device to open. It operates directly
// on one concrete struct via go-toml/v2's Marshal/Unmarshal rather than a
// generic decoder/encoder indirection, since this runtime has exactly one
// configuration shape to serve.
package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/mitchellh/go-homedir"
	"github.com/pelletier/go-toml/v2"

	"tinkervision.dev/tv/base/errors"
)

// defaultSystemPrefix is the install root's equivalent of the user prefix,
// overridable via TV_SYSTEM_PREFIX.
const defaultSystemPrefix = "/usr/local/share/tv"

// Config is the persisted runtime configuration.
type Config struct {
	UserModulePath   string `toml:"user_module_path"`
	SystemModulePath string `toml:"system_module_path"`
	UserScriptPath   string `toml:"user_script_path"`
	SystemScriptPath string `toml:"system_script_path"`
	UserDataPath     string `toml:"user_data_path"`
	SystemDataPath   string `toml:"system_data_path"`

	// ExecutionLatencyMS is the scheduler's target inter-pass sleep in
	// milliseconds before the 200ms idle floor is applied.
	ExecutionLatencyMS int `toml:"execution_latency_ms"`

	// CameraDevice names the device the CameraAdapter implementation
	// should open; the Synthetic adapter ignores it.
	CameraDevice string `toml:"camera_device"`
}

// ExecutionLatency returns ExecutionLatencyMS as a time.Duration.
func (c Config) ExecutionLatency() time.Duration {
	return time.Duration(c.ExecutionLatencyMS) * time.Millisecond
}

// Default builds a Config from $HOME/tv (or TV_USER_PREFIX) and
// defaultSystemPrefix (or TV_SYSTEM_PREFIX), with each holding modules/,
// scripts/ and data/ subdirectories.
func Default() (Config, error) {
	userPrefix := os.Getenv("TV_USER_PREFIX")
	if userPrefix == "" {
		home, err := homedir.Dir()
		if err != nil {
			return Config{}, errors.Log(err)
		}
		userPrefix = filepath.Join(home, "tv")
	}
	systemPrefix := os.Getenv("TV_SYSTEM_PREFIX")
	if systemPrefix == "" {
		systemPrefix = defaultSystemPrefix
	}

	return Config{
		UserModulePath:     filepath.Join(userPrefix, "modules"),
		SystemModulePath:   filepath.Join(systemPrefix, "modules"),
		UserScriptPath:     filepath.Join(userPrefix, "scripts"),
		SystemScriptPath:   filepath.Join(systemPrefix, "scripts"),
		UserDataPath:       filepath.Join(userPrefix, "data"),
		SystemDataPath:     filepath.Join(systemPrefix, "data"),
		ExecutionLatencyMS: 33,
		CameraDevice:       "/dev/video0",
	}, nil
}

// Load reads a TOML config file at path, layering its fields over Default()
// so a partial file only overrides what it sets.
func Load(path string) (Config, error) {
	cfg, err := Default()
	if err != nil {
		return Config{}, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, errors.Log(err)
	}
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return Config{}, errors.Log(err)
	}
	return cfg, nil
}

// Save writes c to path as TOML, creating parent directories as needed.
func (c Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return errors.Log(err)
	}
	data, err := toml.Marshal(c)
	if err != nil {
		return errors.Log(err)
	}
	return errors.Log(os.WriteFile(path, data, 0o644))
}

// EnsureDirs creates every path prefix this Config names, so callers can
// rely on them existing before the module loader or snapshot writer touch
// them.
func (c Config) EnsureDirs() error {
	for _, dir := range []string{
		c.UserModulePath, c.SystemModulePath,
		c.UserScriptPath, c.SystemScriptPath,
		c.UserDataPath, c.SystemDataPath,
	} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return errors.Log(err)
		}
	}
	return nil
}
