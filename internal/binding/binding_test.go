package binding

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/forgo/runningmate/internal/notify"
	"github.com/forgo/runningmate/internal/store"
)

type crew struct {
	Name string
}

type counter struct {
	success atomic.Int32
	failure atomic.Int32
}

func (c *counter) handlers() Handlers[crew] {
	return Handlers[crew]{
		OnSuccess: func(ctx context.Context, snap store.Snapshot[crew]) { c.success.Add(1) },
		OnFailure: func(ctx context.Context, snap store.Snapshot[crew]) { c.failure.Add(1) },
	}
}

func succeed(t *testing.T, s *store.Slice[crew], data crew) {
	t.Helper()
	tk, err := s.Begin()
	require.NoError(t, err)
	require.True(t, s.Succeed(tk, store.ReplaceData(data)))
}

func fail(t *testing.T, s *store.Slice[crew]) {
	t.Helper()
	tk, err := s.Begin()
	require.NoError(t, err)
	require.True(t, s.Fail(tk))
}

func TestSync_HandlersFireOnceAcrossRerenders(t *testing.T) {
	t.Parallel()

	s := store.New("crew", crew{})
	var c counter
	rec := &notify.Recorder{}
	b := New(s, c.handlers(), WithNotifier(rec))
	ctx := context.Background()

	succeed(t, s, crew{Name: "새벽런"})
	for i := 0; i < 10; i++ {
		b.Sync(ctx)
	}
	assert.Equal(t, int32(1), c.success.Load())
	assert.Equal(t, store.Idle, s.Status())

	fail(t, s)
	for i := 0; i < 10; i++ {
		b.Sync(ctx)
	}
	assert.Equal(t, int32(1), c.failure.Load())
	assert.Equal(t, 1, rec.Len())
	assert.Equal(t, store.Idle, s.Status())
}

func TestSync_IdleAndPending_DoNothing(t *testing.T) {
	t.Parallel()

	s := store.New("crew", crew{})
	var c counter
	b := New(s, c.handlers(), WithNotifier(&notify.Recorder{}))

	assert.False(t, b.Sync(context.Background()))
	_, _ = s.Begin()
	assert.False(t, b.Sync(context.Background()))
	assert.Equal(t, store.Pending, s.Status())
	assert.Zero(t, c.success.Load()+c.failure.Load())
}

func TestSync_ConcurrentBindings_OneWinner(t *testing.T) {
	t.Parallel()

	s := store.New("crew", crew{})
	var c counter
	bindings := make([]*Binding[crew], 8)
	for i := range bindings {
		bindings[i] = New(s, c.handlers(), WithoutFailureToast())
	}

	succeed(t, s, crew{Name: "a"})

	var wg sync.WaitGroup
	for _, b := range bindings {
		wg.Add(1)
		go func(b *Binding[crew]) {
			defer wg.Done()
			b.Sync(context.Background())
		}(b)
	}
	wg.Wait()

	assert.Equal(t, int32(1), c.success.Load())
}

func TestSync_HandlerSeesTerminalSnapshot(t *testing.T) {
	t.Parallel()

	s := store.New("crew", crew{})
	var seen store.Snapshot[crew]
	b := New(s, Handlers[crew]{
		OnSuccess: func(ctx context.Context, snap store.Snapshot[crew]) { seen = snap },
	})

	succeed(t, s, crew{Name: "한강크루"})
	b.Sync(context.Background())

	assert.Equal(t, store.Success, seen.Status)
	assert.Equal(t, "한강크루", seen.Data.Name)
}

func TestSync_HandlerMayStartNextOperation(t *testing.T) {
	t.Parallel()

	s := store.New("crew", crew{})
	b := New(s, Handlers[crew]{
		OnSuccess: func(ctx context.Context, snap store.Snapshot[crew]) {
			_, err := s.Begin()
			assert.NoError(t, err, "slice is acknowledged before the handler runs")
		},
	})

	succeed(t, s, crew{})
	b.Sync(context.Background())
	assert.Equal(t, store.Pending, s.Status())
}

func TestSync_Failure_DefaultToast(t *testing.T) {
	t.Parallel()

	s := store.New("crew", crew{})
	rec := &notify.Recorder{}
	b := New(s, Handlers[crew]{}, WithNotifier(rec))

	fail(t, s)
	b.Sync(context.Background())

	toasts := rec.Toasts()
	require.Len(t, toasts, 1)
	assert.Equal(t, DefaultFailureToast, toasts[0])
	assert.Equal(t, 5*time.Second, toasts[0].Duration())
}

func TestSync_Failure_CustomToast(t *testing.T) {
	t.Parallel()

	s := store.New("crew", crew{})
	rec := &notify.Recorder{}
	custom := notify.Error("친구 정보 불러오기 실패.", "친구 정보를 불러오는데 실패하였습니다.")
	b := New(s, Handlers[crew]{}, WithNotifier(rec), WithFailureToast(custom))

	fail(t, s)
	b.Sync(context.Background())

	assert.Equal(t, []notify.Toast{custom}, rec.Toasts())
}

func TestSync_Failure_ToastTimer(t *testing.T) {
	t.Parallel()

	s := store.New("crew", crew{})
	rec := &notify.Recorder{}
	b := New(s, Handlers[crew]{}, WithNotifier(rec), WithToastTimer(2*time.Second))

	fail(t, s)
	b.Sync(context.Background())

	require.Equal(t, 1, rec.Len())
	assert.Equal(t, 2000, rec.Toasts()[0].Timer)
}

func TestStartStop_WatchLoopReacts(t *testing.T) {
	t.Parallel()

	s := store.New("crew", crew{})
	fired := make(chan string, 4)
	b := New(s, Handlers[crew]{
		OnSuccess: func(ctx context.Context, snap store.Snapshot[crew]) { fired <- snap.Data.Name },
	})

	b.Start(context.Background())
	b.Start(context.Background())
	assert.True(t, b.IsRunning())

	succeed(t, s, crew{Name: "first"})
	select {
	case name := <-fired:
		assert.Equal(t, "first", name)
	case <-time.After(2 * time.Second):
		t.Fatal("watch loop did not react")
	}

	assert.Eventually(t, func() bool { return s.Status() == store.Idle }, time.Second, 5*time.Millisecond)

	b.Stop()
	b.Stop()
	assert.False(t, b.IsRunning())

	succeed(t, s, crew{Name: "after stop"})
	assert.Equal(t, store.Success, s.Status())
	assert.Empty(t, fired)
}

func TestStart_SyncsPendingOccurrenceOnMount(t *testing.T) {
	t.Parallel()

	s := store.New("crew", crew{})
	succeed(t, s, crew{Name: "before mount"})

	fired := make(chan struct{}, 1)
	b := New(s, Handlers[crew]{
		OnSuccess: func(ctx context.Context, snap store.Snapshot[crew]) { fired <- struct{}{} },
	})
	b.Start(context.Background())
	defer b.Stop()

	select {
	case <-fired:
	case <-time.After(2 * time.Second):
		t.Fatal("mount did not sync")
	}
}

func TestNew_NilLogger_KeepsDefault(t *testing.T) {
	t.Parallel()

	s := store.New("crew", crew{})
	toasts := &notify.Recorder{}
	b := New(s, Handlers[crew]{}, WithLogger(nil), WithNotifier(toasts))

	fail(t, s)
	require.NotPanics(t, func() { assert.True(t, b.Sync(context.Background())) })
	assert.Equal(t, 1, toasts.Len())
}

func TestStart_ContextDone_AllowsRestart(t *testing.T) {
	t.Parallel()

	s := store.New("crew", crew{})
	var c counter
	b := New(s, c.handlers())

	ctx, cancel := context.WithCancel(context.Background())
	b.Start(ctx)
	require.True(t, b.IsRunning())
	cancel()
	assert.Eventually(t, func() bool { return !b.IsRunning() }, 2*time.Second, 5*time.Millisecond)

	b.Start(context.Background())
	defer b.Stop()
	assert.True(t, b.IsRunning())

	succeed(t, s, crew{Name: "after restart"})
	assert.Eventually(t, func() bool { return c.success.Load() == 1 }, 2*time.Second, 5*time.Millisecond)
}
