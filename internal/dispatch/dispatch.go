// Package dispatch runs intents against store slices.
//
// Every intent follows one protocol: Begin on the slice, call the resource, then
// Succeed with the returned merge or Fail. Errors never escape the runner; they are
// logged and recorded as Failure. Overlapping intents on one slice settle by
// completion order, so the last response to arrive decides the terminal status.
package dispatch

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/forgo/runningmate/internal/store"
)

// DefaultTimeout bounds a single intent
const DefaultTimeout = 15 * time.Second

// Intent is a request to perform one resource operation on behalf of a slice.
// Do returns the merge to apply on success; a nil merge leaves data untouched.
type Intent[T any] struct {
	Name string
	Do   func(ctx context.Context) (store.Merge[T], error)
}

// Outcome is how a dispatched intent ended
type Outcome uint8

const (
	Succeeded Outcome = iota + 1
	Failed
	Cancelled
	Rejected // the slice had an unacknowledged terminal status
)

func (o Outcome) String() string {
	switch o {
	case Succeeded:
		return "succeeded"
	case Failed:
		return "failed"
	case Cancelled:
		return "cancelled"
	case Rejected:
		return "rejected"
	default:
		return "running"
	}
}

// Option configures a Runner
type Option func(*Runner)

// WithTimeout sets the per-intent timeout. Zero disables it.
func WithTimeout(d time.Duration) Option {
	return func(r *Runner) {
		r.timeout = d
	}
}

// WithLogger sets the runner logger. A nil logger keeps slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(r *Runner) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// Runner executes intents, each on its own goroutine
type Runner struct {
	timeout time.Duration
	logger  *slog.Logger
	wg      sync.WaitGroup
}

// NewRunner creates a runner
func NewRunner(opts ...Option) *Runner {
	r := &Runner{
		timeout: DefaultTimeout,
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Wait blocks until every dispatched intent has finished
func (r *Runner) Wait() {
	r.wg.Wait()
}

// Shutdown waits for outstanding intents or returns ctx.Err() first
func (r *Runner) Shutdown(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		r.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Handle tracks one dispatched intent
type Handle struct {
	done   chan struct{}
	cancel context.CancelFunc

	mu        sync.Mutex
	cancelled bool
	finished  bool
	outcome   Outcome
	err       error
}

func newHandle(cancel context.CancelFunc) *Handle {
	return &Handle{done: make(chan struct{}), cancel: cancel}
}

// Cancel withdraws the intent. A completion arriving afterwards changes nothing.
// Cancelling a finished intent has no effect.
func (h *Handle) Cancel() {
	h.mu.Lock()
	if !h.finished {
		h.cancelled = true
	}
	h.mu.Unlock()
	h.cancel()
}

// Done is closed when the intent has finished
func (h *Handle) Done() <-chan struct{} {
	return h.done
}

// Wait blocks until the intent finishes and returns its outcome
func (h *Handle) Wait() Outcome {
	<-h.done
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.outcome
}

// Err returns the error of a failed or rejected intent after Done is closed
func (h *Handle) Err() error {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.err
}

func (h *Handle) finish(outcome Outcome, err error) {
	h.mu.Lock()
	h.finished = true
	h.outcome = outcome
	h.err = err
	h.mu.Unlock()
	close(h.done)
}

// Dispatch starts in against s and returns immediately.
// The slice is Pending when Dispatch returns, unless the intent was rejected.
func Dispatch[T any](ctx context.Context, r *Runner, s *store.Slice[T], in Intent[T]) *Handle {
	log := r.logger.With(slog.String("intent", in.Name), slog.String("slice", s.Name()))

	ticket, err := s.Begin()
	if err != nil {
		h := newHandle(func() {})
		log.Warn("intent rejected", slog.String("error", err.Error()))
		h.finish(Rejected, err)
		return h
	}

	ictx, cancel := context.WithCancel(ctx)
	if r.timeout > 0 {
		ictx, cancel = withTimeout(ictx, cancel, r.timeout)
	}
	h := newHandle(cancel)

	r.wg.Add(1)
	go func() {
		defer r.wg.Done()
		defer cancel()

		merge, err := call(ictx, in)

		h.mu.Lock()
		cancelled := h.cancelled || errors.Is(ictx.Err(), context.Canceled)
		h.finished = true
		h.mu.Unlock()

		var outcome Outcome
		switch {
		case cancelled:
			s.Cancel(ticket)
			outcome = Cancelled
			err = nil
			log.Debug("intent cancelled")
		case err != nil:
			s.Fail(ticket)
			outcome = Failed
			log.Warn("intent failed", slog.String("error", err.Error()))
		default:
			s.Succeed(ticket, merge)
			outcome = Succeeded
			log.Debug("intent succeeded")
		}
		h.finish(outcome, err)
	}()

	return h
}

// Run dispatches in and waits for it to finish
func Run[T any](ctx context.Context, r *Runner, s *store.Slice[T], in Intent[T]) Outcome {
	return Dispatch(ctx, r, s, in).Wait()
}

// call invokes the intent, turning a panic into an error
func call[T any](ctx context.Context, in Intent[T]) (merge store.Merge[T], err error) {
	defer func() {
		if rec := recover(); rec != nil {
			merge = nil
			err = fmt.Errorf("intent %s panicked: %v", in.Name, rec)
		}
	}()
	if in.Do == nil {
		return nil, fmt.Errorf("intent %s has no operation", in.Name)
	}
	return in.Do(ctx)
}

func withTimeout(parent context.Context, cancelParent context.CancelFunc, d time.Duration) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithTimeout(parent, d)
	return ctx, func() {
		cancel()
		cancelParent()
	}
}
