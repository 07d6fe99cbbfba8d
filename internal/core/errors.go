package core

import (
	"errors"
	"fmt"
)

// ErrStationGone signals a station fetched by id that no longer exists.
// Handlers render it as a degraded fetch-error state, not a crash.
var ErrStationGone = errors.New("station no longer exists")

// ValidationError is raised before any remote call is made.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return e.Reason
}

func Invalid(reason string) error {
	return &ValidationError{Reason: reason}
}

func Invalidf(format string, args ...any) error {
	return &ValidationError{Reason: fmt.Sprintf(format, args...)}
}

func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// RemoteError wraps a failure from the persistence collaborator.
// Local state is left untouched when one is returned.
type RemoteError struct {
	Op  string
	Err error
}

func (e *RemoteError) Error() string {
	return e.Op + ": " + e.Err.Error()
}

func (e *RemoteError) Unwrap() error {
	return e.Err
}

func Remote(op string, err error) error {
	return &RemoteError{Op: op, Err: err}
}

func IsRemote(err error) bool {
	var re *RemoteError
	return errors.As(err, &re)
}
