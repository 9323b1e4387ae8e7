package dispatch

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/forgo/runningmate/internal/store"
)

type friends struct {
	Names []string
}

func newSlice() *store.Slice[friends] {
	return store.New("friend", friends{Names: []string{}})
}

func replace(names ...string) store.Merge[friends] {
	return store.ReplaceData(friends{Names: names})
}

func TestRun_Success_MergesPayload(t *testing.T) {
	t.Parallel()

	s := newSlice()
	out := Run(context.Background(), NewRunner(), s, Intent[friends]{
		Name: "get friends",
		Do: func(ctx context.Context) (store.Merge[friends], error) {
			return replace("runner02"), nil
		},
	})

	assert.Equal(t, Succeeded, out)
	snap := s.Snapshot()
	assert.Equal(t, store.Success, snap.Status)
	assert.Equal(t, []string{"runner02"}, snap.Data.Names)
}

func TestRun_Failure_KeepsData(t *testing.T) {
	t.Parallel()

	s := newSlice()
	s.ReplaceData(friends{Names: []string{"runner01"}})
	boom := errors.New("boom")

	h := Dispatch(context.Background(), NewRunner(), s, Intent[friends]{
		Name: "get friends",
		Do: func(ctx context.Context) (store.Merge[friends], error) {
			return replace("ignored"), boom
		},
	})

	assert.Equal(t, Failed, h.Wait())
	assert.ErrorIs(t, h.Err(), boom)
	snap := s.Snapshot()
	assert.Equal(t, store.Failure, snap.Status)
	assert.Equal(t, []string{"runner01"}, snap.Data.Names)
}

func TestDispatch_PendingBeforeTerminal(t *testing.T) {
	t.Parallel()

	s := newSlice()
	release := make(chan struct{})
	h := Dispatch(context.Background(), NewRunner(), s, Intent[friends]{
		Name: "slow",
		Do: func(ctx context.Context) (store.Merge[friends], error) {
			<-release
			return nil, nil
		},
	})

	assert.Equal(t, store.Pending, s.Status())
	close(release)
	assert.Equal(t, Succeeded, h.Wait())
	assert.Equal(t, store.Success, s.Status())
}

func gated(name string, gate <-chan struct{}, err error) Intent[friends] {
	return Intent[friends]{
		Name: name,
		Do: func(ctx context.Context) (store.Merge[friends], error) {
			<-gate
			return nil, err
		},
	}
}

func TestDispatch_OverlappingPermitAndDismiss_EndsInOneOfTheTwo(t *testing.T) {
	t.Parallel()

	for i := 0; i < 50; i++ {
		s := newSlice()
		r := NewRunner()
		gate := make(chan struct{})

		permit := Dispatch(context.Background(), r, s, gated("permit friend", gate, nil))
		dismiss := Dispatch(context.Background(), r, s, gated("dismiss friend", gate, errors.New("rejected")))
		close(gate)
		r.Wait()

		assert.Equal(t, Succeeded, permit.Wait())
		assert.Equal(t, Failed, dismiss.Wait())
		assert.Contains(t, []store.Status{store.Success, store.Failure}, s.Status())
	}
}

func TestDispatch_Overlapping_LastResponseDecides(t *testing.T) {
	t.Parallel()

	s := newSlice()
	r := NewRunner()
	permitGate := make(chan struct{})
	dismissGate := make(chan struct{})

	permit := Dispatch(context.Background(), r, s, gated("permit friend", permitGate, nil))
	dismiss := Dispatch(context.Background(), r, s, gated("dismiss friend", dismissGate, errors.New("rejected")))

	close(dismissGate)
	dismiss.Wait()
	assert.Equal(t, store.Pending, s.Status())

	close(permitGate)
	permit.Wait()
	assert.Equal(t, store.Success, s.Status())
}

func TestHandle_Cancel_CompletionIsNoop(t *testing.T) {
	t.Parallel()

	s := newSlice()
	started := make(chan struct{})
	h := Dispatch(context.Background(), NewRunner(), s, Intent[friends]{
		Name: "request friend",
		Do: func(ctx context.Context) (store.Merge[friends], error) {
			close(started)
			<-ctx.Done()
			return replace("late"), nil
		},
	})

	<-started
	h.Cancel()

	assert.Equal(t, Cancelled, h.Wait())
	assert.NoError(t, h.Err())
	assert.Equal(t, store.Idle, s.Status())
	assert.Empty(t, s.Snapshot().Data.Names)
}

func TestHandle_CancelAfterFinish_KeepsOutcome(t *testing.T) {
	t.Parallel()

	s := newSlice()
	h := Dispatch(context.Background(), NewRunner(), s, Intent[friends]{
		Name: "get friends",
		Do: func(ctx context.Context) (store.Merge[friends], error) {
			return nil, nil
		},
	})
	require.Equal(t, Succeeded, h.Wait())

	h.Cancel()
	assert.Equal(t, Succeeded, h.Wait())
	assert.Equal(t, store.Success, s.Status())
}

func TestDispatch_ParentCancelled_IsCancelled(t *testing.T) {
	t.Parallel()

	s := newSlice()
	ctx, cancel := context.WithCancel(context.Background())
	h := Dispatch(ctx, NewRunner(), s, Intent[friends]{
		Name: "get friends",
		Do: func(ctx context.Context) (store.Merge[friends], error) {
			<-ctx.Done()
			return nil, ctx.Err()
		},
	})
	cancel()

	assert.Equal(t, Cancelled, h.Wait())
	assert.Equal(t, store.Idle, s.Status())
}

func TestDispatch_Timeout_IsFailure(t *testing.T) {
	t.Parallel()

	s := newSlice()
	out := Run(context.Background(), NewRunner(WithTimeout(20*time.Millisecond)), s, Intent[friends]{
		Name: "hang",
		Do: func(ctx context.Context) (store.Merge[friends], error) {
			<-ctx.Done()
			return nil, ctx.Err()
		},
	})

	assert.Equal(t, Failed, out)
	assert.Equal(t, store.Failure, s.Status())
}

func TestDispatch_Panic_IsFailure(t *testing.T) {
	t.Parallel()

	s := newSlice()
	h := Dispatch(context.Background(), NewRunner(), s, Intent[friends]{
		Name: "explode",
		Do: func(ctx context.Context) (store.Merge[friends], error) {
			panic("bad payload")
		},
	})

	assert.Equal(t, Failed, h.Wait())
	assert.ErrorContains(t, h.Err(), "bad payload")
	assert.Equal(t, store.Failure, s.Status())
}

func TestDispatch_MissingOperation_IsFailure(t *testing.T) {
	t.Parallel()

	s := newSlice()
	assert.Equal(t, Failed, Run(context.Background(), NewRunner(), s, Intent[friends]{Name: "empty"}))
}

func TestDispatch_Unacknowledged_Rejected(t *testing.T) {
	t.Parallel()

	s := newSlice()
	r := NewRunner()
	noop := Intent[friends]{Name: "noop", Do: func(ctx context.Context) (store.Merge[friends], error) { return nil, nil }}

	require.Equal(t, Succeeded, Run(context.Background(), r, s, noop))

	h := Dispatch(context.Background(), r, s, noop)
	assert.Equal(t, Rejected, h.Wait())
	assert.ErrorIs(t, h.Err(), store.ErrUnacknowledged)
	assert.Equal(t, store.Success, s.Status())
}

func TestRunner_WaitDrainsOutstanding(t *testing.T) {
	t.Parallel()

	r := NewRunner()
	var mu sync.Mutex
	done := 0

	for i := 0; i < 5; i++ {
		s := newSlice()
		Dispatch(context.Background(), r, s, Intent[friends]{
			Name: "work",
			Do: func(ctx context.Context) (store.Merge[friends], error) {
				time.Sleep(5 * time.Millisecond)
				mu.Lock()
				done++
				mu.Unlock()
				return nil, nil
			},
		})
	}
	r.Wait()

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, 5, done)
}

func TestRunner_Shutdown_HonorsDeadline(t *testing.T) {
	t.Parallel()

	r := NewRunner()
	release := make(chan struct{})
	Dispatch(context.Background(), r, newSlice(), gated("stuck", release, nil))

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	assert.ErrorIs(t, r.Shutdown(ctx), context.DeadlineExceeded)

	close(release)
	assert.NoError(t, r.Shutdown(context.Background()))
}

func TestOutcome_String(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "succeeded", Succeeded.String())
	assert.Equal(t, "rejected", Rejected.String())
	assert.Equal(t, "running", Outcome(0).String())
}

func TestRunner_NilLogger_KeepsDefault(t *testing.T) {
	t.Parallel()

	r := NewRunner(WithLogger(nil))
	s := store.New("friend", friends{Names: []string{}}, store.WithLogger[friends](nil))

	var out Outcome
	require.NotPanics(t, func() {
		out = Run(context.Background(), r, s, Intent[friends]{
			Name: "get friends",
			Do: func(ctx context.Context) (store.Merge[friends], error) {
				return nil, errors.New("offline")
			},
		})
	})
	assert.Equal(t, Failed, out)
}
