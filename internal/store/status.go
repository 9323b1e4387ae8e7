package store

import "errors"

// Status is the lifecycle state of a slice's tracked operation
type Status uint8

const (
	Idle Status = iota
	Pending
	Success
	Failure
)

// String returns the status name
func (s Status) String() string {
	switch s {
	case Idle:
		return "idle"
	case Pending:
		return "pending"
	case Success:
		return "success"
	case Failure:
		return "failure"
	default:
		return "unknown"
	}
}

// IsTerminal returns true for Success and Failure
func (s Status) IsTerminal() bool {
	return s == Success || s == Failure
}

// ErrUnacknowledged is returned by Begin while a terminal status waits for its
// acknowledgement.
var ErrUnacknowledged = errors.New("terminal status not acknowledged")
