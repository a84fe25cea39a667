package field

import (
	"errors"
	"fmt"
)

// Adapter failures come in two kinds. A type failure means the raw value has
// the wrong shape for the adapter (e.g. a bool passed where a string is
// expected). A value failure means the shape is right but the content is
// invalid (e.g. "abc" is not an integer). Both fail the field the same way;
// the distinction only affects the reported message.

type failureKind int

const (
	typeFailure failureKind = iota
	valueFailure
)

type adapterError struct {
	kind    failureKind
	message string
}

func (e *adapterError) Error() string { return e.message }

// TypeErrorf builds a type failure for an adapter result.
func TypeErrorf(format string, args ...any) error {
	return &adapterError{kind: typeFailure, message: fmt.Sprintf(format, args...)}
}

// ValueErrorf builds a value failure for an adapter result.
func ValueErrorf(format string, args ...any) error {
	return &adapterError{kind: valueFailure, message: fmt.Sprintf(format, args...)}
}

// IsTypeError reports whether err is an adapter type failure.
func IsTypeError(err error) bool {
	var ae *adapterError
	return errors.As(err, &ae) && ae.kind == typeFailure
}

// IsValueError reports whether err is an adapter value failure. Plain errors
// returned by adapters are treated as value failures.
func IsValueError(err error) bool {
	var ae *adapterError
	if errors.As(err, &ae) {
		return ae.kind == valueFailure
	}
	return err != nil
}
