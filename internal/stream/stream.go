// Package stream provides the small set of reactive primitives the search
// view model is built from: a replay-latest Behavior, a plain Signal and Map.
//
// Subscribers run synchronously on the goroutine that calls Accept or Emit,
// in subscription order. A subscriber must not block.
package stream

import (
	"log"
	"runtime/debug"
	"sync"
)

// Observable is anything that can be subscribed to.
// The returned function removes the subscription.
type Observable[T any] interface {
	Subscribe(fn func(T)) func()
}

type subscriber[T any] struct {
	id uint64
	fn func(T)
}

// registry is the subscriber list shared by Behavior and Signal
type registry[T any] struct {
	mu     sync.Mutex
	subs   []subscriber[T]
	nextID uint64
}

func (r *registry[T]) add(fn func(T)) uint64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	r.subs = append(r.subs, subscriber[T]{id: r.nextID, fn: fn})
	return r.nextID
}

func (r *registry[T]) remove(id uint64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, s := range r.subs {
		if s.id == id {
			r.subs = append(r.subs[:i:i], r.subs[i+1:]...)
			return
		}
	}
}

func (r *registry[T]) clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.subs = nil
}

func (r *registry[T]) snapshot() []subscriber[T] {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]subscriber[T], len(r.subs))
	copy(out, r.subs)
	return out
}

func (r *registry[T]) deliver(v T) {
	for _, s := range r.snapshot() {
		call(s.fn, v)
	}
}

func call[T any](fn func(T), v T) {
	defer func() {
		if rec := recover(); rec != nil {
			log.Printf("Stream: subscriber panic: %v\nStack: %s", rec, debug.Stack())
		}
	}()
	fn(v)
}

// Behavior holds a current value and replays it to every new subscriber.
// Subscribers must not call Accept or Subscribe on the same Behavior.
type Behavior[T any] struct {
	reg registry[T]

	// emit orders a replay against concurrent Accepts so no subscriber
	// ever ends on a stale value
	emit sync.Mutex

	mu    sync.RWMutex
	value T
}

// NewBehavior creates a Behavior starting at initial
func NewBehavior[T any](initial T) *Behavior[T] {
	return &Behavior[T]{value: initial}
}

// Value returns the current value
func (b *Behavior[T]) Value() T {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.value
}

// Accept stores v and delivers it to all subscribers
func (b *Behavior[T]) Accept(v T) {
	b.emit.Lock()
	defer b.emit.Unlock()

	b.mu.Lock()
	b.value = v
	b.mu.Unlock()
	b.reg.deliver(v)
}

// Subscribe delivers the current value to fn immediately, then every later one
func (b *Behavior[T]) Subscribe(fn func(T)) func() {
	b.emit.Lock()
	defer b.emit.Unlock()

	id := b.reg.add(fn)
	call(fn, b.Value())
	return func() { b.reg.remove(id) }
}

// Dispose drops all subscribers
func (b *Behavior[T]) Dispose() {
	b.reg.clear()
}

// Signal is a plain event stream; late subscribers see only future values
type Signal[T any] struct {
	reg registry[T]
}

// NewSignal creates an empty Signal
func NewSignal[T any]() *Signal[T] {
	return &Signal[T]{}
}

// Emit delivers v to current subscribers
func (s *Signal[T]) Emit(v T) {
	s.reg.deliver(v)
}

// Subscribe registers fn for future values
func (s *Signal[T]) Subscribe(fn func(T)) func() {
	id := s.reg.add(fn)
	return func() { s.reg.remove(id) }
}

// Dispose drops all subscribers
func (s *Signal[T]) Dispose() {
	s.reg.clear()
}

type mapped[T, U any] struct {
	src Observable[T]
	f   func(T) U
}

// Map derives an observable that applies f to every value of src.
// It keeps the replay semantics of src.
func Map[T, U any](src Observable[T], f func(T) U) Observable[U] {
	return mapped[T, U]{src: src, f: f}
}

func (m mapped[T, U]) Subscribe(fn func(U)) func() {
	return m.src.Subscribe(func(v T) { fn(m.f(v)) })
}
