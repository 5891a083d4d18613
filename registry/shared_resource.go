// Package registry implements SharedResource, a generic indexed container
// with per-element activation and deferred add/remove, giving the
// scheduler (the sole iterator) a consistent snapshot per pass while Api
// handlers and the directory watcher mutate it from other goroutines.
package registry

import (
	"sync"

	"tinkervision.dev/tv/result"
)

// pendingAdd is one deferred insertion. Deferred insertions are kept in
// enqueue order and deferred removals as a set; once the in-progress pass
// completes, drain applies removals, then insertions in enqueue order, then
// self-removals.
type pendingAdd[K comparable, T any] struct {
	key K
	val T
}

// SharedResource holds a key->T map the scheduler iterates and Api/watcher
// goroutines mutate. Reads during iteration observe the snapshot active at
// pass start; adds are visible starting the next pass; removes take effect
// after the current pass completes.
type SharedResource[K comparable, T any] struct {
	mu sync.Mutex

	items map[K]T

	executing     bool
	pendingAdds   []pendingAdd[K, T]
	pendingRemove map[K]bool
	selfRemove    map[K]bool // removals requested by Removable-tagged elements during exec
}

func New[K comparable, T any]() *SharedResource[K, T] {
	return &SharedResource[K, T]{
		items:         make(map[K]T),
		pendingRemove: make(map[K]bool),
		selfRemove:    make(map[K]bool),
	}
}

// Allocate inserts val under key. If key already exists, fails with
// DuplicateID. If a pass is in progress the insertion is deferred and
// guaranteed visible on the very next pass; otherwise it is applied
// immediately.
func (r *SharedResource[K, T]) Allocate(key K, val T) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.items[key]; exists {
		return result.New(result.DuplicateID)
	}
	for _, p := range r.pendingAdds {
		if p.key == key {
			return result.New(result.DuplicateID)
		}
	}

	if r.executing {
		r.pendingAdds = append(r.pendingAdds, pendingAdd[K, T]{key: key, val: val})
		return nil
	}
	r.items[key] = val
	return nil
}

// Remove removes key. If a pass is in progress the removal is deferred
// until the pass completes and the element is dropped from the map only
// after that; otherwise it is applied immediately. Removing an
// already-pending or nonexistent key returns UnconfiguredID.
func (r *SharedResource[K, T]) Remove(key K) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.removeLocked(key)
}

func (r *SharedResource[K, T]) removeLocked(key K) error {
	if _, exists := r.items[key]; !exists {
		return result.New(result.UnconfiguredID)
	}
	if r.pendingRemove[key] {
		return result.New(result.UnconfiguredID)
	}
	if !r.executing {
		delete(r.items, key)
		return nil
	}
	r.pendingRemove[key] = true
	return nil
}

// Managed reports whether key currently identifies a live, non-removal-
// pending element.
func (r *SharedResource[K, T]) Managed(key K) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, exists := r.items[key]
	return exists && !r.pendingRemove[key]
}

// Get returns a read-only copy of the element under key.
func (r *SharedResource[K, T]) Get(key K) (T, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	v, ok := r.items[key]
	return v, ok
}

// CountIf counts elements for which pred returns true.
func (r *SharedResource[K, T]) CountIf(pred func(K, T) bool) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for k, v := range r.items {
		if pred(k, v) {
			n++
		}
	}
	return n
}

// Foreach visits every element read-only, in no particular order.
func (r *SharedResource[K, T]) Foreach(fn func(K, T)) {
	r.mu.Lock()
	snapshot := make(map[K]T, len(r.items))
	for k, v := range r.items {
		snapshot[k] = v
	}
	r.mu.Unlock()
	for k, v := range snapshot {
		fn(k, v)
	}
}

// ExecOne marks an iteration in progress, invokes fn on the element under
// key if present, then drains pending mutations.
func (r *SharedResource[K, T]) ExecOne(key K, fn func(K, T)) {
	r.mu.Lock()
	r.executing = true
	v, ok := r.items[key]
	r.mu.Unlock()

	if ok {
		fn(key, v)
	}

	r.drain()
}

// ExecAll marks an iteration in progress, invokes fn on every element of
// the pass-start snapshot in the given visiting order, then drains pending
// mutations: removals first, then additions, then tag-driven self-removals
// requested by Removable elements during fn.
//
// order, if non-nil, lists keys in the exact order to visit; any snapshot
// keys missing from order are visited afterward in map order. Pass nil to
// visit in map order.
func (r *SharedResource[K, T]) ExecAll(order []K, fn func(K, T)) {
	r.mu.Lock()
	r.executing = true
	snapshot := make(map[K]T, len(r.items))
	for k, v := range r.items {
		snapshot[k] = v
	}
	r.mu.Unlock()

	visited := make(map[K]bool, len(snapshot))
	for _, k := range order {
		v, ok := snapshot[k]
		if !ok || visited[k] {
			continue
		}
		visited[k] = true
		fn(k, v)
	}
	for k, v := range snapshot {
		if visited[k] {
			continue
		}
		visited[k] = true
		fn(k, v)
	}

	r.drain()
}

// RequestSelfRemove lets a Removable-tagged element remove itself from
// within its own Execute call; applied in the tag-driven self-removal
// phase of drain.
func (r *SharedResource[K, T]) RequestSelfRemove(key K) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.selfRemove[key] = true
}

// drain applies pending removals, then additions, then self-removals, in
// that deterministic order, and clears the executing flag.
func (r *SharedResource[K, T]) drain() {
	r.mu.Lock()
	defer r.mu.Unlock()

	for k := range r.pendingRemove {
		delete(r.items, k)
	}
	r.pendingRemove = make(map[K]bool)

	for _, p := range r.pendingAdds {
		r.items[p.key] = p.val
	}
	r.pendingAdds = nil

	for k := range r.selfRemove {
		delete(r.items, k)
	}
	r.selfRemove = make(map[K]bool)

	r.executing = false
}
