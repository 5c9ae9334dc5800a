// Package lrerr holds the structured error types raised during grammar
// validation and parse-table construction, grounded on the sentinel-plus-
// wrapping-Error pattern in the teacher's server/serr package.
package lrerr

import (
	"errors"
	"fmt"
)

var (
	// ErrMalformedGrammar is the sentinel for grammar construction
	// failures: an undeclared start symbol, a production referencing an
	// undeclared symbol, or similar. Check with errors.Is.
	ErrMalformedGrammar = errors.New("malformed grammar")

	// ErrNotLR1 is the sentinel for a table-construction conflict: two
	// distinct actions were required in the same (state, terminal) cell.
	// Check with errors.Is.
	ErrNotLR1 = errors.New("grammar is not LR(1)")
)

// Error is a message paired with the sentinel(s) it should answer true to
// under errors.Is, mirroring server/serr.Error.
type Error struct {
	msg   string
	cause []error
}

func (e Error) Error() string {
	return e.msg
}

// Unwrap exposes e's causes to the errors API.
func (e Error) Unwrap() []error {
	return e.cause
}

// Is reports whether target is one of e's causes.
func (e Error) Is(target error) bool {
	for _, c := range e.cause {
		if c == target {
			return true
		}
	}
	return false
}

// MalformedGrammar returns an error wrapping ErrMalformedGrammar with msg
// as its description.
func MalformedGrammar(msg string) error {
	return Error{msg: "malformed grammar: " + msg, cause: []error{ErrMalformedGrammar}}
}

// Conflict describes a single ACTION-table conflict: two distinct actions
// were demanded for the same (state, terminal) cell. It is informative
// only, per spec.md §7.
type Conflict struct {
	State    int
	Terminal string
	Existing string
	New      string
}

// NotLR1 returns an error wrapping ErrNotLR1, carrying c as informative
// payload for callers that want to report where the conflict occurred.
func NotLR1(c Conflict) error {
	return conflictError{
		base:     Error{msg: "grammar is not LR(1): " + conflictMessage(c), cause: []error{ErrNotLR1}},
		Conflict: c,
	}
}

type conflictError struct {
	base     Error
	Conflict Conflict
}

func (e conflictError) Error() string        { return e.base.Error() }
func (e conflictError) Unwrap() []error      { return e.base.Unwrap() }
func (e conflictError) Is(target error) bool { return e.base.Is(target) }

func conflictMessage(c Conflict) string {
	return fmt.Sprintf("state %d, terminal %q: both %s and %s apply", c.State, c.Terminal, c.Existing, c.New)
}
