// Package binding reacts once to each terminal status of a store slice.
//
// A Binding looks at the slice on every Sync (mount and each re-render) and on
// every change while its watch loop runs. On Success or Failure it acknowledges
// the occurrence first and only then runs the handler, so no number of
// re-renders or concurrent watchers can run a handler twice for one occurrence.
package binding

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/forgo/runningmate/internal/notify"
	"github.com/forgo/runningmate/internal/store"
)

// DefaultFailureToast is shown for every failure unless replaced
var DefaultFailureToast = notify.Error("죄송합니다. 요청에 실패하였습니다.", "")

// Handlers are the one-shot effects of a binding. Either may be nil.
// Each receives the terminal snapshot it reacts to.
type Handlers[T any] struct {
	OnSuccess func(ctx context.Context, snap store.Snapshot[T])
	OnFailure func(ctx context.Context, snap store.Snapshot[T])
}

type config struct {
	notifier     notify.Notifier
	failureToast *notify.Toast
	toastTimer   time.Duration
	logger       *slog.Logger
}

// Option configures a Binding
type Option func(*config)

// WithNotifier sets where failure toasts go
func WithNotifier(n notify.Notifier) Option {
	return func(c *config) {
		c.notifier = n
	}
}

// WithFailureToast replaces the default failure toast
func WithFailureToast(t notify.Toast) Option {
	return func(c *config) {
		c.failureToast = &t
	}
}

// WithoutFailureToast disables the failure toast
func WithoutFailureToast() Option {
	return func(c *config) {
		c.failureToast = nil
	}
}

// WithToastTimer overrides how long the failure toast stays up
func WithToastTimer(d time.Duration) Option {
	return func(c *config) {
		c.toastTimer = d
	}
}

// WithLogger sets the binding logger
func WithLogger(logger *slog.Logger) Option {
	return func(c *config) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// Binding observes one slice
type Binding[T any] struct {
	slice    *store.Slice[T]
	handlers Handlers[T]
	cfg      config

	mu      sync.Mutex
	running bool
	stopCh  chan struct{}
	wg      sync.WaitGroup
}

// New creates a binding on slice
func New[T any](slice *store.Slice[T], handlers Handlers[T], opts ...Option) *Binding[T] {
	toast := DefaultFailureToast
	cfg := config{
		failureToast: &toast,
		logger:       slog.Default(),
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.notifier == nil {
		cfg.notifier = notify.NewLogNotifier(cfg.logger)
	}
	return &Binding[T]{slice: slice, handlers: handlers, cfg: cfg}
}

// Sync inspects the current snapshot and reacts if it is terminal and not yet
// acknowledged. It returns true if this call ran the reaction.
func (b *Binding[T]) Sync(ctx context.Context) bool {
	snap := b.slice.Snapshot()
	if !snap.Status.IsTerminal() {
		return false
	}
	if !b.slice.Acknowledge(snap.Rev) {
		return false
	}

	b.cfg.logger.Debug("terminal status observed",
		slog.String("slice", b.slice.Name()),
		slog.String("status", snap.Status.String()),
	)

	switch snap.Status {
	case store.Success:
		if b.handlers.OnSuccess != nil {
			b.handlers.OnSuccess(ctx, snap)
		}
	case store.Failure:
		if b.cfg.failureToast != nil {
			toast := *b.cfg.failureToast
			if b.cfg.toastTimer > 0 {
				toast = toast.WithTimer(b.cfg.toastTimer)
			}
			b.cfg.notifier.Notify(ctx, toast)
		}
		if b.handlers.OnFailure != nil {
			b.handlers.OnFailure(ctx, snap)
		}
	}
	return true
}

// Start runs a watch loop calling Sync on every slice change until Stop is called
// or ctx is done. Starting a running binding does nothing; once ctx is done the
// binding can be started again.
func (b *Binding[T]) Start(ctx context.Context) {
	b.mu.Lock()
	if b.running {
		b.mu.Unlock()
		return
	}
	b.running = true
	b.stopCh = make(chan struct{})
	stopCh := b.stopCh
	b.mu.Unlock()

	changes, unsubscribe := b.slice.Subscribe()

	b.wg.Add(1)
	go func() {
		defer b.wg.Done()
		defer unsubscribe()

		b.Sync(ctx)
		for {
			select {
			case <-changes:
				b.Sync(ctx)
			case <-stopCh:
				return
			case <-ctx.Done():
				b.mu.Lock()
				if b.running && b.stopCh == stopCh {
					b.running = false
				}
				b.mu.Unlock()
				return
			}
		}
	}()
}

// Stop ends the watch loop and waits for it to exit
func (b *Binding[T]) Stop() {
	b.mu.Lock()
	if !b.running {
		b.mu.Unlock()
		return
	}
	b.running = false
	close(b.stopCh)
	b.mu.Unlock()

	b.wg.Wait()
}

// IsRunning returns whether the watch loop is running
func (b *Binding[T]) IsRunning() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.running
}
