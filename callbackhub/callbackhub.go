// Package callbackhub delivers per-module results to client-registered
// callbacks. Unlike a reverse-order listener stack that calls every
// registered handler until one marks an event handled, registration here
// is a single explicit assignment per module: Hub keeps one slot per
// module id, plus one optional default slot that catches anything without
// a kind-matching specific registration.
package callbackhub

import (
	"sync"

	"tinkervision.dev/tv/module"
	"tinkervision.dev/tv/result"
)

// Callback receives a module's freshly produced result. ctx is opaque data
// supplied at registration time via SetCallback(id, kind, fn, ctx).
type Callback func(id module.ID, res module.Result, ctx any)

type entry struct {
	kind module.ResultKind
	fn   Callback
	ctx  any
}

// Hub is safe for concurrent use: SetCallback/Remove are called from Api
// handlers, Dispatch is called once per module per scheduler pass.
type Hub struct {
	mu sync.Mutex

	callbacks map[module.ID]entry

	defaultFn  Callback
	defaultCtx any
	defaultOn  bool
}

func New() *Hub {
	return &Hub{callbacks: make(map[module.ID]entry)}
}

// SetCallback registers fn to receive kind-typed results from id, replacing
// any previous registration for id. declaredKind is the Result variant id's
// module declared at construction time (module.DeclaredResultKind), fixed
// for the module's whole lifetime rather than derived from whether it has
// executed yet; a module declaring module.ResultNone (one that produces no
// result at all) is accepted unconditionally. Any other mismatch between
// declaredKind and kind is refused with CALLBACK_MISMATCH and nothing is
// registered.
func (h *Hub) SetCallback(id module.ID, kind, declaredKind module.ResultKind, fn Callback, ctx any) error {
	if declaredKind != module.ResultNone && declaredKind != kind {
		return result.New(result.CallbackMismatch)
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	h.callbacks[id] = entry{kind: kind, fn: fn, ctx: ctx}
	return nil
}

// Remove clears any callback registered for id.
func (h *Hub) Remove(id module.ID) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.callbacks, id)
}

// EnableDefaultCallback registers a catch-all callback invoked for any
// result that has no kind-matching specific registration: a mismatched
// registration still lets the result flow to the default callback when
// one is enabled.
func (h *Hub) EnableDefaultCallback(fn Callback, ctx any) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.defaultFn, h.defaultCtx, h.defaultOn = fn, ctx, true
}

// DisableDefaultCallback turns the catch-all callback off.
func (h *Hub) DisableDefaultCallback() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.defaultFn, h.defaultCtx, h.defaultOn = nil, nil, false
}

// Dispatch delivers res for id: to the specific callback if one is
// registered and its kind still matches res.Kind, otherwise to the default
// callback if enabled. A specific registration whose kind has drifted from
// the module's actual output (e.g. because the module's behavior changed
// between set_callback and the pass producing res) is treated the same way
// as no registration, not as an error: the pass itself must not fail over a
// stale callback kind.
func (h *Hub) Dispatch(id module.ID, res module.Result) {
	h.mu.Lock()
	e, ok := h.callbacks[id]
	def := h.defaultFn
	defCtx := h.defaultCtx
	defOn := h.defaultOn
	h.mu.Unlock()

	if ok && e.kind == res.Kind {
		e.fn(id, res, e.ctx)
		return
	}
	if defOn {
		def(id, res, defCtx)
	}
}
