// Package ccerr classifies the error kinds shared across argparse,
// storage, and dispatch so callers can branch on what went wrong without
// string-matching error messages.
package ccerr

import (
	"fmt"

	"github.com/pkg/errors"
)

// Kind identifies which of the small, fixed set of failure modes an error
// represents.
type Kind int

const (
	// UnexpectedEndOfArgs: a Separated or CanBeSeparated(Some d)
	// descriptor needed a following token and none was available.
	UnexpectedEndOfArgs Kind = iota
	// InvalidValue: a descriptor's value converter rejected the
	// candidate string.
	InvalidValue
	// StorageIOError: a wire-level failure on a storage put (or an
	// otherwise-unclassifiable storage failure).
	StorageIOError
	// DebugAssertion: a misconfigured descriptor table (unsorted or
	// duplicated entries) or a token routed to the wrong descriptor.
	// Only ever raised from debug-mode checks.
	DebugAssertion
)

func (k Kind) String() string {
	switch k {
	case UnexpectedEndOfArgs:
		return "UnexpectedEndOfArgs"
	case InvalidValue:
		return "InvalidValue"
	case StorageIOError:
		return "StorageIOError"
	case DebugAssertion:
		return "DebugAssertion"
	default:
		return "Kind(?)"
	}
}

// kindError pairs a Kind with a wrapped cause. It is never constructed
// directly by callers outside this package; use the New/Wrap helpers so
// the pkg/errors stack trace is captured at the call site.
type kindError struct {
	kind  Kind
	cause error
}

func (e *kindError) Error() string {
	if e.cause == nil {
		return e.kind.String()
	}
	return fmt.Sprintf("%s: %s", e.kind, e.cause)
}

func (e *kindError) Cause() error { return e.cause }

func (e *kindError) Unwrap() error { return e.cause }

// New creates a new error of the given kind carrying msg, with a stack
// trace attached at the call site.
func New(kind Kind, msg string) error {
	return &kindError{kind: kind, cause: errors.New(msg)}
}

// Wrap attaches a Kind to an existing error, preserving it as the Cause
// so errors.Cause / errors.As still reach the original error.
func Wrap(kind Kind, err error) error {
	if err == nil {
		return nil
	}
	return &kindError{kind: kind, cause: errors.WithStack(err)}
}

// KindOf walks the error's Cause/Unwrap chain looking for a *kindError
// and returns its Kind. The second return is false if no layer of err
// was classified.
func KindOf(err error) (Kind, bool) {
	for err != nil {
		if ke, ok := err.(*kindError); ok {
			return ke.kind, true
		}
		if cause, ok := err.(interface{ Cause() error }); ok {
			err = cause.Cause()
			continue
		}
		if wrapped, ok := err.(interface{ Unwrap() error }); ok {
			err = wrapped.Unwrap()
			continue
		}
		break
	}
	return 0, false
}

// Is reports whether err is classified as kind.
func Is(err error, kind Kind) bool {
	k, ok := KindOf(err)
	return ok && k == kind
}
