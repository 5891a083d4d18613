// Package api is the single entry surface a client process drives: every
// verb posts a closure onto the scheduler's command queue (or reads a
// collaborator's already-concurrency-safe state directly) and returns a
// result.Code, never panicking or blocking past one poll interval — a
// thin command dispatcher in front of the runtime core.
package api

import (
	"sync"

	"tinkervision.dev/tv/base/atomiccounter"
	"tinkervision.dev/tv/callbackhub"
	"tinkervision.dev/tv/camera"
	"tinkervision.dev/tv/colorspace"
	"tinkervision.dev/tv/config"
	"tinkervision.dev/tv/module"
	"tinkervision.dev/tv/moduleloader"
	"tinkervision.dev/tv/registry"
	"tinkervision.dev/tv/result"
	"tinkervision.dev/tv/scenetrees"
	"tinkervision.dev/tv/scheduler"
)

// Api wires together the collaborators a running instance needs: the
// camera handle, the module registry and scene forest the scheduler
// drives, the callback hub, the plug-in loader, and a built-in factory
// registry resolved before falling back to moduleloader.Load — built-in
// modules ship compiled in; anything else is a plug-in.
type Api struct {
	mu sync.Mutex

	cfg       config.Config
	cam       *camera.Handle
	modules   *scheduler.Modules
	scenes    *scenetrees.SceneTrees
	hub       *callbackhub.Hub
	loader    *moduleloader.Loader
	scheduler *scheduler.Scheduler

	builtins map[string]module.Factory
	idgen    atomiccounter.Counter
}

// New builds an Api around already-constructed collaborators, registering
// builtins as the factories resolved before any plug-in lookup.
func New(cfg config.Config, cam *camera.Handle, bus *colorspace.FrameBus, builtins map[string]module.Factory) *Api {
	modules := registry.New[module.ID, module.Module]()
	scenes := scenetrees.New()
	hub := callbackhub.New()
	loader := moduleloader.New(cfg.UserModulePath, cfg.SystemModulePath)
	sched := scheduler.New(cam, bus, modules, scenes, hub, cfg.ExecutionLatency())

	return &Api{
		cfg:       cfg,
		cam:       cam,
		modules:   modules,
		scenes:    scenes,
		hub:       hub,
		loader:    loader,
		scheduler: sched,
		builtins:  builtins,
	}
}

// Run acquires the camera and starts the scheduler's dedicated goroutine.
// It must be called once before any other verb that depends on a running
// pipeline.
func (a *Api) Run() error {
	if err := a.cam.Acquire(); err != nil {
		return err
	}
	a.scheduler.Run()
	return nil
}

// Start transitions the scheduler into Running.
func (a *Api) Start() error { return a.scheduler.Start() }

// Stop transitions the scheduler into Paused.
func (a *Api) Stop() error { return a.scheduler.Stop() }

// Quit latches the scheduler into Stopped, releases the camera, and
// retires every loaded plug-in handle.
func (a *Api) Quit() error {
	err := a.scheduler.Quit()
	a.loader.DestroyAll()
	return err
}

// StartIdle brings the scheduler up without requiring any module be
// registered yet, which Start already permits, so it simply defers.
func (a *Api) StartIdle() error { return a.Start() }

// SetFrameSize resizes the camera if its adapter supports it.
func (a *Api) SetFrameSize(width, height int) error {
	return a.cam.SetFrameSize(width, height)
}

// GetResolution reports the camera's current width, height and colorspace.
func (a *Api) GetResolution() (width, height int, cs colorspace.ColorSpace) {
	return a.cam.Resolution()
}

// resolveFactory looks name up in the built-in registry only; when it
// reports false, ModuleStart falls back to a compiled-plugin load through
// moduleloader: a name absent from builtins always means "external".
func (a *Api) resolveFactory(name string) (module.Factory, bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	f, ok := a.builtins[name]
	return f, ok
}

// ModuleStart instantiates name under id (allocating a fresh id if id is
// zero) and registers it with the scheduler's module registry, deferred
// until the next pass if one is in progress.
func (a *Api) ModuleStart(name string, id module.ID) (module.ID, error) {
	if id == 0 {
		id = module.ID(a.idgen.Inc())
	}

	factory, ok := a.resolveFactory(name)
	var m module.Module
	var err error
	if ok {
		m, err = factory(id, module.TagNone)
	} else {
		m, err = a.loader.Load(name, id, module.TagNone)
	}
	if err != nil {
		return 0, err
	}

	if err := a.modules.Allocate(id, m); err != nil {
		return 0, err
	}
	return id, nil
}

// ModuleRestart tears down and reconstructs the module at id under the same
// type name, preserving no parameter state (mirrors the original's
// restart, which is a destroy+create pair rather than a reset-in-place).
func (a *Api) ModuleRestart(id module.ID, name string) error {
	if err := a.ModuleRemove(id); err != nil && result.CodeOf(err, result.UnknownError) != result.UnconfiguredID {
		return err
	}
	_, err := a.ModuleStart(name, id)
	return err
}

// ModuleRemove marks id for removal from the registry, deferred until any
// in-progress pass completes, and clears its callback registration.
func (a *Api) ModuleRemove(id module.ID) error {
	if err := a.modules.Remove(id); err != nil {
		return err
	}
	a.hub.Remove(id)
	return nil
}

// RemoveAllModules removes every currently managed module.
func (a *Api) RemoveAllModules() error {
	var first error
	a.modules.Foreach(func(id module.ID, m module.Module) {
		if err := a.ModuleRemove(id); err != nil && first == nil {
			first = err
		}
	})
	return first
}

// SetParameter forwards to the module's Parameters table, reporting
// ModuleUnknown if id is not managed and ParameterOutOfRange is folded into
// Parameters.Set's clamping (the table never rejects an in-range value).
func (a *Api) SetParameter(id module.ID, name string, value int32) error {
	m, ok := a.modules.Get(id)
	if !ok {
		return result.New(result.ModuleUnknown)
	}
	if !m.Parameters().Set(name, value) {
		return result.New(result.InvalidParameter)
	}
	return nil
}

// GetParameter reads the module's current value for name.
func (a *Api) GetParameter(id module.ID, name string) (int32, error) {
	m, ok := a.modules.Get(id)
	if !ok {
		return 0, result.New(result.ModuleUnknown)
	}
	v, ok := m.Parameters().Get(name)
	if !ok {
		return 0, result.New(result.InvalidParameter)
	}
	return v, nil
}

// SetCallback registers fn against id for results of kind, refusing a
// mismatch against the module's declared result kind (fixed since
// construction, so the mismatch is caught even before the module's first
// pass).
func (a *Api) SetCallback(id module.ID, kind module.ResultKind, fn callbackhub.Callback, ctx any) error {
	m, ok := a.modules.Get(id)
	if !ok {
		return result.New(result.ModuleUnknown)
	}
	return a.hub.SetCallback(id, kind, m.DeclaredResultKind(), fn, ctx)
}

// EnableDefaultCallback registers the catch-all callback.
func (a *Api) EnableDefaultCallback(fn callbackhub.Callback, ctx any) {
	a.hub.EnableDefaultCallback(fn, ctx)
}

// DisableDefaultCallback clears the catch-all callback.
func (a *Api) DisableDefaultCallback() { a.hub.DisableDefaultCallback() }

// ModuleHandle returns the live module instance registered under id, for
// callers (e.g. the snapshot CLI command) that need to reach a concrete
// module's type-specific behavior beyond the common module.Module surface.
func (a *Api) ModuleHandle(id module.ID) (module.Module, bool) {
	return a.modules.Get(id)
}

// GetResult returns the module's most recently produced result.
func (a *Api) GetResult(id module.ID) (module.Result, error) {
	m, ok := a.modules.Get(id)
	if !ok {
		return module.Result{}, result.New(result.ModuleUnknown)
	}
	return m.Result(), nil
}

// ResultString returns the stable string form of a result code.
func (a *Api) ResultString(code result.Code) string { return code.String() }

// SceneFromModule creates a new scene rooted at root.
func (a *Api) SceneFromModule(root module.ID) (scenetrees.ID, error) {
	return a.scenes.SceneStart(root, a.modules.Managed)
}

// SceneAddModule extends scene by moduleID.
func (a *Api) SceneAddModule(scene scenetrees.ID, moduleID module.ID) error {
	return a.scenes.SceneAddModule(scene, moduleID, a.modules.Managed)
}

// SceneRemove tears a scene's path down to the nearest still-shared node.
func (a *Api) SceneRemove(scene scenetrees.ID) error {
	return a.scenes.SceneRemove(scene)
}

// EnumerateAvailableModules lists every plug-in discoverable on disk plus
// every compiled-in builtin name.
func (a *Api) EnumerateAvailableModules() []string {
	names := a.loader.ListAvailable()
	a.mu.Lock()
	for name := range a.builtins {
		names = append(names, name)
	}
	a.mu.Unlock()
	return names
}

// UserModuleLoadPath returns the configured user plug-in directory.
func (a *Api) UserModuleLoadPath() string { return a.cfg.UserModulePath }

// SystemModuleLoadPath returns the configured system plug-in directory.
func (a *Api) SystemModuleLoadPath() string { return a.cfg.SystemModulePath }

// WatchModules starts the plug-in directory watcher, invoking cb whenever a
// module file is added or removed.
func (a *Api) WatchModules(cb func(moduleloader.ChangeEvent)) (stop func(), err error) {
	return a.loader.UpdateOnChanges(cb)
}
