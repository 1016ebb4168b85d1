// Package apperr defines the two error categories the detection core can fail with:
// InvariantViolation (a bug — an internal consistency check failed) and EmptyInput
// (fewer than one transaction after validation).
package apperr

import "github.com/pkg/errors"

// Kind identifies which of the two core error categories an error belongs to.
type Kind string

const (
	KindInvariantViolation Kind = "InvariantViolation"
	KindEmptyInput         Kind = "EmptyInput"
)

type kindedError struct {
	kind Kind
	err  error
}

func (e *kindedError) Error() string { return e.err.Error() }
func (e *kindedError) Unwrap() error { return e.err }

// New wraps msg as an error of the given kind, with a pkg/errors stack trace attached.
func New(kind Kind, msg string) error {
	return &kindedError{kind: kind, err: errors.New(msg)}
}

// Wrap attaches kind and msg to an existing error, preserving its chain.
func Wrap(kind Kind, err error, msg string) error {
	if err == nil {
		return nil
	}
	return &kindedError{kind: kind, err: errors.Wrap(err, msg)}
}

// Is reports whether err (or anything it wraps) was produced by this package with the
// given kind.
func Is(err error, kind Kind) bool {
	for err != nil {
		if ke, ok := err.(*kindedError); ok && ke.kind == kind {
			return true
		}
		unwrapper, ok := err.(interface{ Unwrap() error })
		if !ok {
			return false
		}
		err = unwrapper.Unwrap()
	}
	return false
}

// InvariantViolation builds an InvariantViolation error.
func InvariantViolation(msg string) error {
	return New(KindInvariantViolation, msg)
}

// EmptyInput builds an EmptyInput error.
func EmptyInput(msg string) error {
	return New(KindEmptyInput, msg)
}
