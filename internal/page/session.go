// Package page runs one page load with loading, ready and error states.
// A session owns its load: results that settle after Unmount are dropped.
package page

import (
	"context"
	"errors"
	"fmt"
	"runtime/debug"
	"sync"

	"go.uber.org/zap"
)

var ErrUnmounted = errors.New("page: session unmounted")

// ErrNotFound is returned by loaders when the requested item does not exist
// in otherwise healthy content, e.g. an unknown product slug.
var ErrNotFound = errors.New("page: not found")

// PanicError is the load error recorded when a loader panics.
type PanicError struct {
	Value any
	Stack []byte
}

func (e *PanicError) Error() string { return fmt.Sprintf("page: loader panicked: %v", e.Value) }

type State string

const (
	StateIdle    State = "idle"
	StateLoading State = "loading"
	StateReady   State = "ready"
	StateError   State = "error"
)

// Loader produces one page view-model.
type Loader[T any] func(ctx context.Context) (T, error)

// View is a snapshot of a session.
type View[T any] struct {
	State State `json:"state"`
	Data  *T    `json:"data,omitempty"`
	Err   error `json:"-"`
	// CanRetry is set in the error state only.
	CanRetry bool `json:"canRetry"`
}

type Session[T any] struct {
	load   Loader[T]
	logger *zap.Logger

	mu        sync.Mutex
	parent    context.Context
	cancel    context.CancelFunc
	gen       uint64
	unmounted bool
	loads     int
	state     State
	data      T
	err       error
	done      chan struct{}
}

type Option func(*options)

type options struct {
	logger *zap.Logger
}

// WithLogger sets the logger for recovered loader panics. The global zap
// logger is used otherwise.
func WithLogger(l *zap.Logger) Option { return func(o *options) { o.logger = l } }

func NewSession[T any](load Loader[T], opts ...Option) *Session[T] {
	o := options{logger: zap.L()}
	for _, opt := range opts {
		opt(&o)
	}
	return &Session[T]{load: load, logger: o.logger, state: StateIdle}
}

// Mount starts the first load under ctx. Mounting twice is a no-op.
func (s *Session[T]) Mount(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.unmounted {
		return ErrUnmounted
	}
	if s.parent != nil {
		return nil
	}
	s.parent = ctx
	s.startLocked()
	return nil
}

// Retry re-invokes the loader once. It only acts in the error state and
// reports whether a new load was started.
func (s *Session[T]) Retry() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.unmounted || s.state != StateError {
		return false
	}
	s.startLocked()
	return true
}

// Unmount cancels the in-flight load. Anything it resolves afterwards is
// discarded.
func (s *Session[T]) Unmount() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.unmounted {
		return
	}
	s.unmounted = true
	s.gen++
	if s.cancel != nil {
		s.cancel()
	}
	if s.done != nil && s.state == StateLoading {
		close(s.done)
	}
}

// View returns the current snapshot.
func (s *Session[T]) View() View[T] {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.viewLocked()
}

// Wait blocks until the current load settles, the session is unmounted or
// ctx is done, then returns the snapshot.
func (s *Session[T]) Wait(ctx context.Context) View[T] {
	s.mu.Lock()
	done := s.done
	s.mu.Unlock()
	if done != nil {
		select {
		case <-done:
		case <-ctx.Done():
		}
	}
	return s.View()
}

// Loads reports how many times the loader has been invoked.
func (s *Session[T]) Loads() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loads
}

func (s *Session[T]) viewLocked() View[T] {
	v := View[T]{State: s.state}
	switch s.state {
	case StateReady:
		data := s.data
		v.Data = &data
	case StateError:
		v.Err = s.err
		v.CanRetry = !s.unmounted
	}
	return v
}

func (s *Session[T]) startLocked() {
	if s.cancel != nil {
		s.cancel()
	}
	ctx, cancel := context.WithCancel(s.parent)
	s.cancel = cancel
	s.gen++
	s.loads++
	s.state = StateLoading
	s.err = nil
	done := make(chan struct{})
	s.done = done

	go s.run(ctx, s.gen, done)
}

func (s *Session[T]) run(ctx context.Context, gen uint64, done chan struct{}) {
	v, err := s.safeLoad(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()
	if gen != s.gen || s.unmounted {
		return
	}
	// The parent went away while loading. The result belongs to nobody.
	if ctx.Err() != nil {
		s.cancel()
		close(done)
		return
	}
	s.cancel()
	if err != nil {
		var zero T
		s.state, s.data, s.err = StateError, zero, err
	} else {
		s.state, s.data, s.err = StateReady, v, nil
	}
	close(done)
}

// safeLoad runs the loader and turns a panic into a PanicError so that a
// failing page cannot take the process down.
func (s *Session[T]) safeLoad(ctx context.Context) (v T, err error) {
	defer func() {
		if p := recover(); p != nil {
			pe := &PanicError{Value: p, Stack: debug.Stack()}
			s.logger.Error("page loader panicked",
				zap.Any("error", p),
				zap.ByteString("stack", pe.Stack),
			)
			var zero T
			v, err = zero, pe
		}
	}()
	return s.load(ctx)
}
