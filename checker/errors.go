package checker

import (
	"errors"
	"fmt"
)

// ErrShapeMismatch reports that the positionally-aligned slot sequences
// extracted from a page differ in length. The extracted data cannot be
// trusted, so the run aborts instead of validating misaligned slots.
var ErrShapeMismatch = errors.New("extracted slot sequences differ in length")

// NavigationError is an infrastructure failure while driving the calendar
// view: a stabilization timeout, a missing control, a page that did not
// advance. It is fatal to the current run and distinct from a pricing
// violation; the orchestration layer decides whether to retry.
type NavigationError struct {
	Op  string
	Err error
}

func (e *NavigationError) Error() string {
	return fmt.Sprintf("navigation: %s: %v", e.Op, e.Err)
}

func (e *NavigationError) Unwrap() error { return e.Err }

func navErr(op string, err error) error {
	return &NavigationError{Op: op, Err: err}
}
