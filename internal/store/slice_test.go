package store

import (
	"math/rand"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type entity struct {
	ID   int
	Name string
	Tags []string
}

var members = ListKey[string]("members")

func newEntitySlice() *Slice[entity] {
	return New("entity", entity{Tags: []string{}}, WithClone(func(e entity) entity {
		e.Tags = append([]string{}, e.Tags...)
		return e
	}))
}

// view strips the revision counter so snapshots can be compared as state
type view struct {
	Status Status
	Data   entity
	Lists  []string
}

func viewOf(s Snapshot[entity]) view {
	names := s.ListNames()
	sort.Strings(names)
	return view{Status: s.Status, Data: s.Data, Lists: names}
}

// ============================================================================
// Reset
// ============================================================================

func TestReset_AlwaysYieldsInitialSnapshot(t *testing.T) {
	t.Parallel()

	s := newEntitySlice()
	want := viewOf(s.Snapshot())

	prepare := []func(){
		func() {},
		func() { s.ReplaceData(entity{ID: 9, Name: "x", Tags: []string{"a"}}) },
		func() { s.Apply(ReplaceList[entity](members, []string{"kim", "lee"})) },
		func() { _, _ = s.Begin() },
		func() {
			tk, _ := s.Begin()
			s.Succeed(tk, ReplaceData(entity{ID: 4}))
		},
		func() {
			tk, _ := s.Begin()
			s.Fail(tk)
		},
	}

	for i, p := range prepare {
		p()
		first := viewOf(s.Reset())
		second := viewOf(s.Reset())
		assert.Equal(t, want, first, "case %d", i)
		assert.Equal(t, first, second, "case %d: reset must be idempotent", i)
	}
}

func TestReset_MakesOutstandingTicketsStale(t *testing.T) {
	t.Parallel()

	s := newEntitySlice()
	tk, err := s.Begin()
	require.NoError(t, err)

	s.Reset()

	assert.False(t, s.Succeed(tk, ReplaceData(entity{ID: 1})))
	assert.Equal(t, Idle, s.Status())
	assert.Equal(t, 0, s.Snapshot().Data.ID)
}

// ============================================================================
// Transitions
// ============================================================================

type transition struct{ from, to Status }

var lifecycle = map[transition]bool{
	{Idle, Pending}:    true,
	{Pending, Success}: true,
	{Pending, Failure}: true,
	{Success, Idle}:    true,
	{Failure, Idle}:    true,
}

func runRandomSequence(t *testing.T, seed int64, steps int, withCancel bool) []transition {
	t.Helper()

	rng := rand.New(rand.NewSource(seed))
	s := newEntitySlice()
	var tickets []Ticket
	var seen []transition
	prev := s.Status()

	for i := 0; i < steps; i++ {
		ops := 4
		if withCancel {
			ops = 5
		}
		switch rng.Intn(ops) {
		case 0:
			if tk, err := s.Begin(); err == nil {
				tickets = append(tickets, tk)
			}
		case 1, 2:
			if len(tickets) > 0 {
				j := rng.Intn(len(tickets))
				if rng.Intn(2) == 0 {
					s.Succeed(tickets[j], ReplaceData(entity{ID: i}))
				} else {
					s.Fail(tickets[j])
				}
				tickets = append(tickets[:j], tickets[j+1:]...)
			}
		case 3:
			s.Acknowledge(s.Snapshot().Rev)
		case 4:
			if len(tickets) > 0 {
				j := rng.Intn(len(tickets))
				s.Cancel(tickets[j])
				tickets = append(tickets[:j], tickets[j+1:]...)
			}
		}

		cur := s.Status()
		if cur != prev {
			seen = append(seen, transition{prev, cur})
		}
		prev = cur
	}
	return seen
}

func TestTransitions_RandomIntentSequences_FollowLifecycle(t *testing.T) {
	t.Parallel()

	for seed := int64(1); seed <= 200; seed++ {
		for _, tr := range runRandomSequence(t, seed, 300, false) {
			if !lifecycle[tr] {
				t.Fatalf("seed %d: unexpected transition %s -> %s", seed, tr.from, tr.to)
			}
		}
	}
}

func TestTransitions_WithCancellation_OnlyAddsPendingToIdle(t *testing.T) {
	t.Parallel()

	for seed := int64(1); seed <= 200; seed++ {
		for _, tr := range runRandomSequence(t, seed, 300, true) {
			if !lifecycle[tr] && tr != (transition{Pending, Idle}) {
				t.Fatalf("seed %d: unexpected transition %s -> %s", seed, tr.from, tr.to)
			}
		}
	}
}

func TestBegin_WhilePending_JoinsWithoutTransition(t *testing.T) {
	t.Parallel()

	s := newEntitySlice()
	_, err := s.Begin()
	require.NoError(t, err)
	rev := s.Snapshot().Rev

	_, err = s.Begin()
	require.NoError(t, err)

	assert.Equal(t, Pending, s.Status())
	assert.Equal(t, rev, s.Snapshot().Rev, "second begin must not be observable")
}

func TestBegin_UnacknowledgedTerminal_Rejected(t *testing.T) {
	t.Parallel()

	s := newEntitySlice()
	tk, _ := s.Begin()
	s.Succeed(tk, nil)

	_, err := s.Begin()
	assert.ErrorIs(t, err, ErrUnacknowledged)

	require.True(t, s.Acknowledge(s.Snapshot().Rev))
	_, err = s.Begin()
	assert.NoError(t, err)
}

func TestComplete_LastWriterWins(t *testing.T) {
	t.Parallel()

	s := newEntitySlice()
	first, _ := s.Begin()
	second, _ := s.Begin()

	require.True(t, s.Fail(first))
	assert.Equal(t, Pending, s.Status(), "slice stays pending while an operation is in flight")

	require.True(t, s.Succeed(second, nil))
	assert.Equal(t, Success, s.Status())

	s.Acknowledge(s.Snapshot().Rev)
	first, _ = s.Begin()
	second, _ = s.Begin()
	s.Succeed(second, nil)
	s.Fail(first)
	assert.Equal(t, Failure, s.Status())
}

func TestComplete_TwiceIsNoop(t *testing.T) {
	t.Parallel()

	s := newEntitySlice()
	tk, _ := s.Begin()

	assert.True(t, s.Fail(tk))
	assert.False(t, s.Succeed(tk, ReplaceData(entity{ID: 5})))
	assert.Equal(t, Failure, s.Status())
	assert.Equal(t, 0, s.Snapshot().Data.ID)
}

func TestFail_NeverAltersData(t *testing.T) {
	t.Parallel()

	states := []entity{
		{},
		{ID: 1, Name: "crew", Tags: []string{}},
		{ID: 2, Name: "notice", Tags: []string{"a", "b"}},
	}

	for _, data := range states {
		s := newEntitySlice()
		s.ReplaceData(data)
		s.Apply(ReplaceList[entity](members, []string{"kim"}))
		before := s.Snapshot()

		tk, _ := s.Begin()
		s.Fail(tk)

		after := s.Snapshot()
		assert.Equal(t, before.Data, after.Data)
		assert.Equal(t, List(before, members), List(after, members))
		assert.Equal(t, Failure, after.Status)
	}
}

func TestSucceed_AppliesMerge(t *testing.T) {
	t.Parallel()

	s := newEntitySlice()
	tk, _ := s.Begin()

	s.Succeed(tk, Chain(
		ReplaceData(entity{ID: 7, Name: "loaded"}),
		ReplaceList[entity](members, []string{"park"}),
	))

	snap := s.Snapshot()
	assert.Equal(t, Success, snap.Status)
	assert.Equal(t, 7, snap.Data.ID)
	assert.Equal(t, []string{"park"}, List(snap, members))
}

func TestCancel_LastInFlight_ReturnsToIdle(t *testing.T) {
	t.Parallel()

	s := newEntitySlice()
	tk, _ := s.Begin()

	assert.True(t, s.Cancel(tk))
	assert.Equal(t, Idle, s.Status())
	assert.False(t, s.Succeed(tk, nil), "cancelled ticket completion is a no-op")
	assert.Equal(t, Idle, s.Status())
}

func TestCancel_AfterOtherCompleted_KeepsRecordedOutcome(t *testing.T) {
	t.Parallel()

	s := newEntitySlice()
	a, _ := s.Begin()
	b, _ := s.Begin()

	s.Succeed(a, nil)
	s.Cancel(b)

	assert.Equal(t, Success, s.Status())
}

func TestAcknowledge_OnlyCurrentTerminal(t *testing.T) {
	t.Parallel()

	s := newEntitySlice()
	assert.False(t, s.Acknowledge(s.Snapshot().Rev), "idle cannot be acknowledged")

	tk, _ := s.Begin()
	assert.False(t, s.Acknowledge(s.Snapshot().Rev), "pending cannot be acknowledged")

	s.Fail(tk)
	rev := s.Snapshot().Rev
	assert.False(t, s.Acknowledge(rev-1))
	assert.True(t, s.Acknowledge(rev))
	assert.False(t, s.Acknowledge(rev), "second acknowledge loses")
	assert.Equal(t, Idle, s.Status())
}

// ============================================================================
// Data and lists
// ============================================================================

func TestApply_LeavesStatusUntouched(t *testing.T) {
	t.Parallel()

	s := newEntitySlice()
	_, _ = s.Begin()
	rev := s.Snapshot().Rev

	snap := s.Apply(func(in Snapshot[entity]) Snapshot[entity] {
		in.Status = Success
		in.Rev = 999
		in.Data.Name = "merged"
		return in
	})

	assert.Equal(t, Pending, snap.Status)
	assert.Equal(t, rev, snap.Rev)
	assert.Equal(t, "merged", snap.Data.Name)
}

func TestList_MissingCollection_IsEmptyNotNil(t *testing.T) {
	t.Parallel()

	got := List(newEntitySlice().Snapshot(), members)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestSnapshots_AreNotMutatedByLaterChanges(t *testing.T) {
	t.Parallel()

	s := newEntitySlice()
	tags := []string{"a"}
	s.ReplaceData(entity{ID: 1, Tags: tags})
	s.Apply(ReplaceList[entity](members, []string{"kim"}))
	old := s.Snapshot()

	tags[0] = "mutated"
	s.Apply(ReplaceList[entity](members, []string{"lee", "park"}))

	assert.Equal(t, []string{"a"}, old.Data.Tags)
	assert.Equal(t, []string{"kim"}, List(old, members))
	assert.Equal(t, []string{"lee", "park"}, List(s.Snapshot(), members))
}

func TestSubscribe_SignalsChangesUntilCancelled(t *testing.T) {
	t.Parallel()

	s := newEntitySlice()
	ch, cancel := s.Subscribe()

	_, _ = s.Begin()
	select {
	case <-ch:
	default:
		t.Fatal("expected change signal")
	}

	cancel()
	cancel()
	s.ReplaceData(entity{ID: 2})
	select {
	case <-ch:
		t.Fatal("unexpected signal after cancel")
	default:
	}
}

func TestStatus_String(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "idle", Idle.String())
	assert.Equal(t, "pending", Pending.String())
	assert.Equal(t, "success", Success.String())
	assert.Equal(t, "failure", Failure.String())
	assert.Equal(t, "unknown", Status(42).String())
	assert.True(t, Failure.IsTerminal())
	assert.False(t, Pending.IsTerminal())
}

func TestWithLogger_NilKeepsDefault(t *testing.T) {
	t.Parallel()

	s := New("entity", entity{}, WithLogger[entity](nil))
	require.NotPanics(t, func() {
		tk, err := s.Begin()
		require.NoError(t, err)
		s.Succeed(tk, nil)
		s.Acknowledge(s.Snapshot().Rev)
		s.Reset()
	})
	assert.Equal(t, Idle, s.Status())
}
