// Package scheduler owns the runtime cadence: it drains Api-posted
// commands, grabs a frame from the camera, builds the per-colorspace view
// cache, walks SceneTrees and the plain module registry, fires result
// callbacks, applies tag-driven lifecycle transitions, and sleeps before
// the next pass. A channel of queued funcs drained by a single dedicated
// goroutine gives a fixed-rate vision pipeline tick instead of a GUI event
// pump.
package scheduler

import (
	"sync"
	"time"

	"tinkervision.dev/tv/base/errors"
	"tinkervision.dev/tv/callbackhub"
	"tinkervision.dev/tv/camera"
	"tinkervision.dev/tv/colorspace"
	"tinkervision.dev/tv/module"
	"tinkervision.dev/tv/registry"
	"tinkervision.dev/tv/result"
	"tinkervision.dev/tv/scenetrees"
)

// State is one of the scheduler's three runtime states.
type State int32

const (
	Stopped State = iota
	Paused
	Running
)

func (s State) String() string {
	switch s {
	case Stopped:
		return "stopped"
	case Paused:
		return "paused"
	case Running:
		return "running"
	default:
		return "unknown"
	}
}

// commandQueueDepth bounds how many pending Api mutations may be queued
// before Post starts reporting back-pressure; postTimeout bounds how long
// Post waits for room, never blocking the caller past one poll interval
// before reporting back-pressure.
const commandQueueDepth = 64

// Modules is the subset of registry.SharedResource the scheduler drives.
type Modules = registry.SharedResource[module.ID, module.Module]

// Scheduler is the single dedicated goroutine that owns pipeline cadence;
// everything else (Api handlers, the directory watcher) reaches it only by
// posting a command.
type Scheduler struct {
	mu    sync.Mutex
	state State
	quit  bool // latched by Quit; once set, Start always fails

	cam     *camera.Handle
	bus     *colorspace.FrameBus
	modules *Modules
	scenes  *scenetrees.SceneTrees
	hub     *callbackhub.Hub

	latency     time.Duration
	postTimeout time.Duration

	commands chan func()
	done     chan struct{}
}

// New builds a Scheduler around its collaborators. latency is the
// execution_latency configuration value; a floor of 200ms is enforced
// whenever no module executed active work this pass.
func New(cam *camera.Handle, bus *colorspace.FrameBus, modules *Modules, scenes *scenetrees.SceneTrees, hub *callbackhub.Hub, latency time.Duration) *Scheduler {
	return &Scheduler{
		cam:         cam,
		bus:         bus,
		modules:     modules,
		scenes:      scenes,
		hub:         hub,
		latency:     latency,
		postTimeout: latency,
		commands:    make(chan func(), commandQueueDepth),
		done:        make(chan struct{}),
	}
}

// minIdleLatency is the floor enforced when no module is active this pass.
const minIdleLatency = 200 * time.Millisecond

// State reports the current runtime state.
func (s *Scheduler) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Post enqueues a mutation to run on the scheduler goroutine ahead of the
// next tick's command drain. It never blocks longer than one poll interval;
// past that it reports EXEC_THREAD_FAILURE rather than stalling the caller.
func (s *Scheduler) Post(cmd func()) error {
	select {
	case s.commands <- cmd:
		return nil
	case <-time.After(s.postTimeout):
		return result.New(result.ExecThreadFailure)
	}
}

// Start transitions Paused or never-yet-started Stopped into Running.
// Fails once Quit has been called, since quitting is irreversible within a
// process.
func (s *Scheduler) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.quit {
		return result.New(result.InvalidConfiguration)
	}
	s.state = Running
	return nil
}

// Stop transitions Running to Paused; commands keep draining while Paused.
func (s *Scheduler) Stop() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.quit {
		return result.New(result.InvalidConfiguration)
	}
	s.state = Paused
	return nil
}

// Quit latches the scheduler into Stopped permanently and releases the
// camera. Safe to call from any state.
func (s *Scheduler) Quit() error {
	s.mu.Lock()
	s.quit = true
	s.state = Stopped
	s.mu.Unlock()
	return s.cam.Release()
}

// Run starts the dedicated goroutine; it returns immediately. Done() is
// closed once the goroutine has observed a latched Quit and exited.
func (s *Scheduler) Run() {
	go s.loop()
}

// Done is closed once the scheduler goroutine has exited following Quit.
func (s *Scheduler) Done() <-chan struct{} {
	return s.done
}

func (s *Scheduler) loop() {
	defer close(s.done)
	for {
		s.drainCommands()

		if s.State() == Stopped && s.quitLatched() {
			return
		}
		if s.State() != Running {
			time.Sleep(minIdleLatency)
			continue
		}

		active := s.tick()
		sleep := s.latency
		if !active && sleep < minIdleLatency {
			sleep = minIdleLatency
		}
		time.Sleep(sleep)
	}
}

func (s *Scheduler) quitLatched() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.quit
}

// drainCommands runs every command currently queued, without blocking for
// more to arrive; this is step 1 of the tick and also runs while Paused so
// mutations take effect on resume.
func (s *Scheduler) drainCommands() {
	for {
		select {
		case cmd := <-s.commands:
			cmd()
		default:
			return
		}
	}
}

// tick runs one full pass and reports whether any module was active,
// which governs the idle sleep floor.
func (s *Scheduler) tick() bool {
	frame, err := s.cam.GrabFrame()
	if err != nil {
		errors.Log(err)
		return false
	}
	s.bus.BeginPass(frame)

	var sceneOrder []module.ID
	s.scenes.ExecAll(func(id module.ID) { sceneOrder = append(sceneOrder, id) })

	anyActive := false
	s.modules.ExecAll(sceneOrder, func(id module.ID, m module.Module) {
		if s.execModule(frame, id, m) {
			anyActive = true
		}
	})
	return anyActive
}

// execModule runs one module's per-pass protocol: resolve its input view
// (skipped when it declares InputColorSpace None), allocate an output image
// if it produces one, call Execute, dispatch its result, and apply any
// tag-driven lifecycle transition. It reports whether the module was active
// this pass.
func (s *Scheduler) execModule(frame colorspace.Image, id module.ID, m module.Module) bool {
	if !m.Active() {
		return false
	}

	var in colorspace.View
	if cs := m.InputColorSpace(); cs != colorspace.None {
		v, err := s.bus.View(cs)
		if err != nil {
			// A failed conversion disables the downstream module for this
			// pass only; it is retried next pass since Active() is untouched.
			errors.Log(err)
			return true
		}
		in = v
	}

	var out *colorspace.Image
	if m.OutputsImage() {
		hdr := m.OutputImageHeader(frame.ImageHeader)
		out = &colorspace.Image{ImageHeader: hdr, Data: make([]byte, hdr.ByteCount)}
	}

	if err := m.Execute(in, out); err != nil {
		errors.Log(err)
	}

	if m.HasResult() {
		s.hub.Dispatch(id, m.Result())
	}

	tags := m.Tags()
	switch {
	case tags.Has(module.TagExecAndRemove):
		_ = s.modules.Remove(id)
	case tags.Has(module.TagExecAndDisable):
		m.SetActive(false)
	}

	return true
}
