package resource

import "errors"

// Domain errors returned by services. Match them with errors.Is.
var (
	ErrCreateFailed = errors.New("create failed")
	ErrFetchFailed  = errors.New("fetch failed")
	ErrDeleteFailed = errors.New("delete failed")
	ErrUpdateFailed = errors.New("update failed")
	ErrSignInFailed = errors.New("sign in failed")
)

// Error names the operation that failed and its category.
// It carries no transport detail.
type Error struct {
	Op   string
	Kind error
}

func (e *Error) Error() string {
	return e.Op + ": " + e.Kind.Error()
}

func (e *Error) Unwrap() error {
	return e.Kind
}

func opError(op string, kind error) error {
	return &Error{Op: op, Kind: kind}
}
