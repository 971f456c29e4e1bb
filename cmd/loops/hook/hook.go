package hook

import (
	"errors"
)

// Hook notifies an external party around a loop cycle.
//
// Before runs ahead of the cycle and can veto it by returning an error.
// After runs once the cycle has finished, carrying its outcome.
type Hook[T any] interface {
	// Before is called before the value T is processed.
	Before(T) error

	// After is called after the value T is processed.
	After(T) error
}

var ErrHookFailed = errors.New("hook failed")
