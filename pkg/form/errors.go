package form

import (
	"errors"
	"strings"
)

// ErrorKind enumerates the validation failures the engine can report.
type ErrorKind int

const (
	// RequiredFieldIsEmpty marks a leaf whose input satisfied its isEmpty
	// predicate. The parser is not consulted.
	RequiredFieldIsEmpty ErrorKind = iota + 1
	// ValidationFailed carries the parser's rejection message.
	ValidationFailed
	// External carries an error supplied from outside the parser (for example
	// a server-side uniqueness check). Only reported when parsing succeeded.
	External
)

func (k ErrorKind) String() string {
	switch k {
	case RequiredFieldIsEmpty:
		return "required"
	case ValidationFailed:
		return "validation"
	case External:
		return "external"
	default:
		return "unknown"
	}
}

// Error is a single validation failure. Values compare with ==.
type Error struct {
	Kind   ErrorKind
	Reason string
}

// ErrRequired is the RequiredFieldIsEmpty error value.
var ErrRequired = Error{Kind: RequiredFieldIsEmpty}

// Invalid returns a ValidationFailed error with the given reason.
func Invalid(reason string) Error {
	return Error{Kind: ValidationFailed, Reason: reason}
}

// ExternalError returns an External error with the given reason.
func ExternalError(reason string) Error {
	return Error{Kind: External, Reason: reason}
}

// Error implements the error interface. Required errors render a fixed
// message; the other kinds render their reason verbatim.
func (e Error) Error() string {
	if e.Kind == RequiredFieldIsEmpty {
		return "this field is required"
	}
	return e.Reason
}

// Failure is the error slot of a Result. First is the leftmost error in
// declaration order; Others holds every remaining error, also in declaration
// order.
type Failure struct {
	First  Error
	Others []Error
}

// Errors flattens the failure into a single ordered slice.
func (f Failure) Errors() []Error {
	out := make([]Error, 0, len(f.Others)+1)
	out = append(out, f.First)
	out = append(out, f.Others...)
	return out
}

func (f Failure) Error() string {
	if len(f.Others) == 0 {
		return f.First.Error()
	}
	msgs := make([]string, 0, len(f.Others)+1)
	for _, e := range f.Errors() {
		msgs = append(msgs, e.Error())
	}
	return strings.Join(msgs, "; ")
}

// Unwrap exposes every contained Error so errors.Is and errors.As can match
// individual failures.
func (f Failure) Unwrap() []error {
	out := make([]error, 0, len(f.Others)+1)
	for _, e := range f.Errors() {
		out = append(out, e)
	}
	return out
}

// IsRequired reports whether err is, or wraps, a RequiredFieldIsEmpty error.
func IsRequired(err error) bool {
	return errors.Is(err, ErrRequired)
}
