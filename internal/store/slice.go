package store

import (
	"log/slog"
	"sync"
)

// Ticket identifies one tracked operation started by Begin
type Ticket struct {
	id    uint64
	epoch uint64
}

// Option configures a Slice
type Option[T any] func(*Slice[T])

// WithClone sets the function used to copy data entering the slice, so callers
// keeping a reference to the value they passed in cannot change stored snapshots.
func WithClone[T any](clone func(T) T) Option[T] {
	return func(s *Slice[T]) {
		s.clone = clone
	}
}

// WithLogger sets the slice logger. A nil logger keeps slog.Default().
func WithLogger[T any](logger *slog.Logger) Option[T] {
	return func(s *Slice[T]) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// Slice is a status-tracked partition of client state for one resource type.
// It is safe for concurrent use.
type Slice[T any] struct {
	name    string
	initial T
	clone   func(T) T
	logger  *slog.Logger

	mu       sync.Mutex
	cur      Snapshot[T]
	epoch    uint64
	next     uint64
	inflight map[uint64]struct{}
	outcome  Status // last recorded outcome while Pending, Idle if none yet

	subMu   sync.Mutex
	subs    map[int]chan struct{}
	nextSub int
}

// New creates a slice holding initial in an Idle snapshot
func New[T any](name string, initial T, opts ...Option[T]) *Slice[T] {
	s := &Slice[T]{
		name:     name,
		initial:  initial,
		clone:    func(v T) T { return v },
		logger:   slog.Default(),
		inflight: make(map[uint64]struct{}),
		subs:     make(map[int]chan struct{}),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.cur = Snapshot[T]{Status: Idle, Data: s.clone(s.initial)}
	return s
}

// Name returns the slice name
func (s *Slice[T]) Name() string {
	return s.name
}

// Snapshot returns the current snapshot
func (s *Slice[T]) Snapshot() Snapshot[T] {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cur
}

// Status returns the current status
func (s *Slice[T]) Status() Status {
	return s.Snapshot().Status
}

// Reset restores the initial snapshot and makes every outstanding ticket stale.
// Rev keeps increasing across resets.
func (s *Slice[T]) Reset() Snapshot[T] {
	s.mu.Lock()
	s.epoch++
	s.inflight = make(map[uint64]struct{})
	s.outcome = Idle
	s.cur = Snapshot[T]{Status: Idle, Data: s.clone(s.initial), Rev: s.cur.Rev + 1}
	snap := s.cur
	s.mu.Unlock()

	s.logger.Debug("slice reset", slog.String("slice", s.name))
	s.notify()
	return snap
}

// Begin starts a tracked operation. From Idle the slice moves to Pending; while
// Pending the operation joins the in-flight set without a new transition. A
// terminal status that has not been acknowledged yet rejects the operation.
func (s *Slice[T]) Begin() (Ticket, error) {
	s.mu.Lock()
	if s.cur.Status.IsTerminal() {
		s.mu.Unlock()
		return Ticket{}, ErrUnacknowledged
	}

	changed := false
	if s.cur.Status == Idle {
		s.cur = s.cur.withStatus(Pending)
		s.outcome = Idle
		changed = true
	}
	s.next++
	t := Ticket{id: s.next, epoch: s.epoch}
	s.inflight[t.id] = struct{}{}
	inflight := len(s.inflight)
	s.mu.Unlock()

	s.logger.Debug("operation started",
		slog.String("slice", s.name),
		slog.Int("in_flight", inflight),
	)
	if changed {
		s.notify()
	}
	return t, nil
}

// Succeed completes t with Success and applies merge to the data, if given.
// It returns false for stale or already completed tickets, which change nothing.
func (s *Slice[T]) Succeed(t Ticket, merge Merge[T]) bool {
	return s.complete(t, Success, merge)
}

// Fail completes t with Failure. Data is left untouched.
// It returns false for stale or already completed tickets.
func (s *Slice[T]) Fail(t Ticket) bool {
	return s.complete(t, Failure, nil)
}

// Cancel withdraws t without recording an outcome. When the last in-flight
// operation is withdrawn and none completed, the slice returns to Idle.
func (s *Slice[T]) Cancel(t Ticket) bool {
	s.mu.Lock()
	if !s.takeLocked(t) {
		s.mu.Unlock()
		return false
	}
	changed := false
	if len(s.inflight) == 0 {
		next := s.outcome
		s.outcome = Idle
		s.cur = s.cur.withStatus(next)
		changed = true
	}
	s.mu.Unlock()

	s.logger.Debug("operation cancelled", slog.String("slice", s.name))
	if changed {
		s.notify()
	}
	return true
}

func (s *Slice[T]) complete(t Ticket, outcome Status, merge Merge[T]) bool {
	s.mu.Lock()
	if !s.takeLocked(t) {
		s.mu.Unlock()
		s.logger.Debug("stale completion ignored",
			slog.String("slice", s.name),
			slog.String("status", outcome.String()),
		)
		return false
	}

	if merge != nil {
		s.cur = s.mergeLocked(merge)
	}
	s.outcome = outcome
	if len(s.inflight) == 0 {
		s.cur = s.cur.withStatus(outcome)
		s.outcome = Idle
	}
	s.mu.Unlock()

	s.notify()
	return true
}

// takeLocked removes t from the in-flight set if it is current
func (s *Slice[T]) takeLocked(t Ticket) bool {
	if t.epoch != s.epoch {
		return false
	}
	if _, ok := s.inflight[t.id]; !ok {
		return false
	}
	delete(s.inflight, t.id)
	return true
}

// mergeLocked applies merge keeping the lifecycle fields of the current snapshot
func (s *Slice[T]) mergeLocked(merge Merge[T]) Snapshot[T] {
	next := merge(s.cur)
	next.Data = s.clone(next.Data)
	next.Status = s.cur.Status
	next.Rev = s.cur.Rev
	return next
}

// Acknowledge returns the terminal occurrence rev to Idle. It returns false when
// rev is no longer the current terminal occurrence, so exactly one caller wins.
func (s *Slice[T]) Acknowledge(rev uint64) bool {
	s.mu.Lock()
	if !s.cur.Status.IsTerminal() || s.cur.Rev != rev {
		s.mu.Unlock()
		return false
	}
	s.cur = s.cur.withStatus(Idle)
	s.mu.Unlock()

	s.notify()
	return true
}

// Apply merges data or lists into the current snapshot; the status is untouched
func (s *Slice[T]) Apply(merge Merge[T]) Snapshot[T] {
	s.mu.Lock()
	s.cur = s.mergeLocked(merge)
	snap := s.cur
	s.mu.Unlock()

	s.notify()
	return snap
}

// ReplaceData overwrites all data fields; the status is untouched
func (s *Slice[T]) ReplaceData(data T) Snapshot[T] {
	return s.Apply(ReplaceData(data))
}

// Subscribe returns a channel signalled after every change and a function that
// ends the subscription. Signals coalesce: a receiver reads Snapshot for the
// latest state.
func (s *Slice[T]) Subscribe() (<-chan struct{}, func()) {
	ch := make(chan struct{}, 1)

	s.subMu.Lock()
	id := s.nextSub
	s.nextSub++
	s.subs[id] = ch
	s.subMu.Unlock()

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			s.subMu.Lock()
			delete(s.subs, id)
			s.subMu.Unlock()
		})
	}
}

func (s *Slice[T]) notify() {
	s.subMu.Lock()
	defer s.subMu.Unlock()
	for _, ch := range s.subs {
		select {
		case ch <- struct{}{}:
		default:
		}
	}
}
