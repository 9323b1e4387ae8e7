// Package store holds client-side state as status-tracked slices.
//
// A Slice owns the last-known server data for one resource type plus the request
// status of its most recent tracked operation. Every change produces a new
// Snapshot value; snapshots handed out are never mutated afterwards.
//
// # Status Lifecycle
//
// The status only moves along
//
//	Idle -> Pending -> Success | Failure -> Idle
//
// Begin moves Idle to Pending and hands out a Ticket. Succeed and Fail complete a
// ticket; the slice leaves Pending when its last in-flight ticket completes, taking
// the outcome of whichever completion arrived last. Acknowledge returns a terminal
// status to Idle. Reset restores the initial snapshot and turns every outstanding
// ticket stale.
//
// # Related Lists
//
// Named collections travel with a snapshot under typed keys:
//
//	var RequestUsers = store.ListKey[model.UserDto]("requestUsers")
//
//	users := store.List(slice.Snapshot(), RequestUsers)
package store
