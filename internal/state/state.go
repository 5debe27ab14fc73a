// Package state holds the observable per-entity state containers consumed
// by embedding UIs. Each store carries {items, selected, loading, error},
// publishes every change to its subscribers, and sequences calls into the
// domain services. Load actions record failures in state only; mutating
// actions record the failure and also return it.
package state

import (
	"sync"
)

// Snapshot is the published state of a store.
type Snapshot[T any] struct {
	Items    []T
	Selected *T
	Loading  bool
	Error    string
}

type observable[T any] struct {
	mu        sync.Mutex
	snap      Snapshot[T]
	listeners map[int]func(Snapshot[T])
	nextID    int
}

func (o *observable[T]) Snapshot() Snapshot[T] {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.snap
}

// Subscribe registers a listener, invoking it immediately with the current
// snapshot.
func (o *observable[T]) Subscribe(fn func(Snapshot[T])) (cancel func()) {
	o.mu.Lock()
	if o.listeners == nil {
		o.listeners = make(map[int]func(Snapshot[T]))
	}
	id := o.nextID
	o.nextID++
	o.listeners[id] = fn
	current := o.snap
	o.mu.Unlock()

	fn(current)

	return func() {
		o.mu.Lock()
		delete(o.listeners, id)
		o.mu.Unlock()
	}
}

// mutate applies fn to a copy of the state and publishes the result.
// Last write wins; overlapping actions are not fenced against each other.
func (o *observable[T]) mutate(fn func(*Snapshot[T])) {
	o.mu.Lock()
	snap := o.snap
	fn(&snap)
	o.snap = snap
	listeners := make([]func(Snapshot[T]), 0, len(o.listeners))
	for _, l := range o.listeners {
		listeners = append(listeners, l)
	}
	o.mu.Unlock()

	for _, l := range listeners {
		l(snap)
	}
}

func (o *observable[T]) setLoading() {
	o.mutate(func(s *Snapshot[T]) {
		s.Loading = true
		s.Error = ""
	})
}

func (o *observable[T]) setItems(items []T) {
	o.mutate(func(s *Snapshot[T]) {
		s.Items = items
		s.Loading = false
	})
}

func (o *observable[T]) fail(msg string) {
	o.mutate(func(s *Snapshot[T]) {
		s.Loading = false
		s.Error = msg
	})
}

func (o *observable[T]) ClearError() {
	o.mutate(func(s *Snapshot[T]) {
		s.Error = ""
	})
}

func (o *observable[T]) ClearSelected() {
	o.mutate(func(s *Snapshot[T]) {
		s.Selected = nil
	})
}
