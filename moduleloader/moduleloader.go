// Package moduleloader discovers, loads, instantiates and unloads external
// vision modules shipped as Go plugins (build mode "plugin").
//
// Go's plugin package takes the place of a dlopen/dlsym/dlclose contract;
// symbol resolution is still case-sensitive and still fails at open time
// if a required symbol is absent, which is what ListAvailable and Load use
// to tell a real module library from a stray file. The ABI-neutral
// contract ("create(id, tags) -> module handle", "destroy(module)") maps
// onto two exported symbols, Create and Destroy, since plugin.Lookup can
// only resolve exported identifiers.
package moduleloader

import (
	"os"
	"path/filepath"
	"plugin"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"tinkervision.dev/tv/base/errors"
	"tinkervision.dev/tv/base/fsx"
	"tinkervision.dev/tv/module"
	"tinkervision.dev/tv/result"
	"tinkervision.dev/tv/scriptbridge"
)

const soExt = ".so"

// ConstructorFunc is the shape a plugin's exported Create symbol must have.
type ConstructorFunc func(id module.ID, tags module.Tag) (module.Module, error)

// DestructorFunc is the shape a plugin's exported Destroy symbol must have.
type DestructorFunc func(module.Module)

type libHandle struct {
	libname string
	plug    *plugin.Plugin
	destroy DestructorFunc
}

// Loader mirrors ModuleLoader: user-path entries shadow system-path entries
// of the same name, plugin.Open is called once per loaded module and the
// matching handle is retired once per destroyed module (Go's plugin package
// caches plugin.Open by path and never unloads a library; see Destroy), and
// the last error is a single destructive-read slot.
type Loader struct {
	mu sync.Mutex

	userPath   string
	systemPath string

	handles map[module.ID]libHandle
	lastErr result.Code
}

// New returns a Loader resolving libraries first in userPath, then in
// systemPath.
func New(userPath, systemPath string) *Loader {
	return &Loader{
		userPath:   userPath,
		systemPath: systemPath,
		handles:    make(map[module.ID]libHandle),
	}
}

// LastError returns the last error produced by a fallible Loader operation
// and resets it to OK: a destructive read.
func (l *Loader) LastError() result.Code {
	l.mu.Lock()
	defer l.mu.Unlock()
	last := l.lastErr
	l.lastErr = result.OK
	return last
}

func (l *Loader) setErr(c result.Code) {
	l.lastErr = c
}

const scriptExt = ".go"

func (l *Loader) resolve(name string) (string, bool) {
	return l.resolveExt(name, soExt)
}

func (l *Loader) resolveExt(name, ext string) (string, bool) {
	for _, dir := range []string{l.userPath, l.systemPath} {
		if dir == "" {
			continue
		}
		p := filepath.Join(dir, name+ext)
		if _, err := os.Stat(p); err == nil {
			return p, true
		}
	}
	return "", false
}

// Load resolves name to a library path, opens it, verifies both required
// symbols, and invokes Create(id, tags).
func (l *Loader) Load(name string, id module.ID, tags module.Tag) (module.Module, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	path, ok := l.resolve(name)
	if !ok {
		l.setErr(result.ModuleDlopenFailed)
		return nil, result.New(result.ModuleDlopenFailed)
	}

	plug, err := plugin.Open(path)
	if err != nil {
		errors.Log(err)
		l.setErr(result.ModuleDlopenFailed)
		return nil, result.Wrap(result.ModuleDlopenFailed, err)
	}

	createSym, err := plug.Lookup("Create")
	if err != nil {
		errors.Log(err)
		l.setErr(result.ModuleDlsymFailed)
		return nil, result.Wrap(result.ModuleDlsymFailed, err)
	}
	destroySym, err := plug.Lookup("Destroy")
	if err != nil {
		errors.Log(err)
		l.setErr(result.ModuleDlsymFailed)
		return nil, result.Wrap(result.ModuleDlsymFailed, err)
	}

	// plugin.Lookup returns the symbol's own dynamic type, not whatever
	// named type a caller has in mind: a plugin exporting
	// "func Create(id module.ID, tags module.Tag) (module.Module, error)"
	// carries that bare func type, not ConstructorFunc, even though the two
	// are identical in shape. Assert against the underlying func type and
	// wrap into the named type ourselves.
	createFn, ok := createSym.(func(module.ID, module.Tag) (module.Module, error))
	if !ok {
		l.setErr(result.ModuleDlsymFailed)
		return nil, result.New(result.ModuleDlsymFailed)
	}
	destroyFn, ok := destroySym.(func(module.Module))
	if !ok {
		l.setErr(result.ModuleDlsymFailed)
		return nil, result.New(result.ModuleDlsymFailed)
	}
	create := ConstructorFunc(createFn)
	destroy := DestructorFunc(destroyFn)

	m, err := create(id, tags)
	if err != nil {
		l.setErr(result.InternalError)
		return nil, result.Wrap(result.InternalError, err)
	}

	l.handles[id] = libHandle{libname: name, plug: plug, destroy: destroy}
	return m, nil
}

// LoadScript resolves name to a script file and interprets it instead of
// opening a compiled plug-in; see package scriptbridge. Returns
// NotImplemented unless the binary was built with -tags tv_script.
func (l *Loader) LoadScript(name string, id module.ID, tags module.Tag) (module.Module, error) {
	path, ok := l.resolveExt(name, scriptExt)
	if !ok {
		l.mu.Lock()
		l.setErr(result.ModuleDlopenFailed)
		l.mu.Unlock()
		return nil, result.New(result.ModuleDlopenFailed)
	}
	return scriptbridge.Load(path, id, tags)
}

// Destroy invokes the owning library's Destroy on m and retires the handle.
// Go's plugin package never actually unloads a .so once opened (there is no
// dlclose equivalent); ModuleDlcloseFailed is kept in the taxonomy for a
// platform that could fail this step, but on the stock runtime Destroy can
// only fail by InternalError (unknown id).
func (l *Loader) Destroy(id module.ID, m module.Module) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	h, ok := l.handles[id]
	if !ok {
		l.setErr(result.InternalError)
		return result.New(result.InternalError)
	}
	delete(l.handles, id)
	h.destroy(m)
	return nil
}

// DestroyAll retires every remaining handle without invoking each module's
// Destroy (the registry is expected to have already torn modules down);
// it exists for the api.Quit path, mirroring ModuleLoader::destroy_all.
func (l *Loader) DestroyAll() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.handles = make(map[module.ID]libHandle)
}

// ListAvailable walks the user and system module directories and returns
// the names (without extension or directory) of files that qualify as
// modules: they carry the platform shared-object extension and both
// required symbols resolve. User-path entries shadow system-path entries
// sharing a name. Invalid files are logged and skipped, never fatal.
func (l *Loader) ListAvailable() []string {
	l.mu.Lock()
	dirs := []string{l.userPath, l.systemPath}
	l.mu.Unlock()

	seen := make(map[string]bool)
	var names []string
	for _, dir := range dirs {
		if dir == "" {
			continue
		}
		for _, e := range fsx.Files(dir, soExt) {
			if e.IsDir() {
				continue
			}
			name := e.Name()[:len(e.Name())-len(soExt)]
			if seen[name] {
				continue
			}
			if !l.verifySymbols(filepath.Join(dir, e.Name())) {
				continue
			}
			seen[name] = true
			names = append(names, name)
		}
	}
	return names
}

func (l *Loader) verifySymbols(path string) bool {
	plug, err := plugin.Open(path)
	if err != nil {
		errors.Log(err)
		return false
	}
	if _, err := plug.Lookup("Create"); err != nil {
		return false
	}
	if _, err := plug.Lookup("Destroy"); err != nil {
		return false
	}
	return true
}

// ChangeEvent describes a single debounced filesystem change observed by
// UpdateOnChanges.
type ChangeEvent struct {
	Dir  string
	File string
	Op   fsnotify.Op
}

// debounceWindow coalesces bursty filesystem events into a single change
// notification over a small window (>=100ms).
const debounceWindow = 150 * time.Millisecond

// UpdateOnChanges starts a single-threaded watcher over the user and
// system module directories; on create/remove/rename events it debounces
// bursts (e.g. a partial write followed by a rename-into-place) and
// delivers one ChangeEvent per settled path to cb. The returned stop
// function tears the watcher down; grounded on core/filepicker.go's
// configWatcher/watchWatcher pair.
func (l *Loader) UpdateOnChanges(cb func(ChangeEvent)) (stop func(), err error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, result.Wrap(result.InternalError, err)
	}

	l.mu.Lock()
	dirs := []string{l.userPath, l.systemPath}
	l.mu.Unlock()
	for _, dir := range dirs {
		if dir == "" {
			continue
		}
		if err := watcher.Add(dir); err != nil {
			errors.Log(err)
		}
	}

	done := make(chan struct{})
	go func() {
		pending := make(map[string]*time.Timer)
		var mu sync.Mutex
		defer func() {
			mu.Lock()
			for _, t := range pending {
				t.Stop()
			}
			mu.Unlock()
		}()
		for {
			select {
			case <-done:
				return
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if event.Op&(fsnotify.Create|fsnotify.Remove|fsnotify.Rename) == 0 {
					continue
				}
				path := event.Name
				op := event.Op
				mu.Lock()
				if t, exists := pending[path]; exists {
					t.Stop()
				}
				pending[path] = time.AfterFunc(debounceWindow, func() {
					mu.Lock()
					delete(pending, path)
					mu.Unlock()
					cb(ChangeEvent{Dir: filepath.Dir(path), File: filepath.Base(path), Op: op})
				})
				mu.Unlock()
			case werr, ok := <-watcher.Errors:
				if !ok {
					return
				}
				errors.Log(werr)
			}
		}
	}()

	stop = func() {
		close(done)
		watcher.Close()
	}
	return stop, nil
}
