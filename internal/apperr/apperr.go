// Package apperr carries the error taxonomy surfaced to API callers. Every
// failure that crosses a service boundary is tagged with a Kind so the HTTP
// layer can map it to a status without string matching.
package apperr

import (
	"errors"
	"fmt"
)

type Kind int

const (
	Internal Kind = iota
	Unauthorized
	InvalidArgument
	NotFound
	InvalidState
)

func (k Kind) String() string {
	switch k {
	case Unauthorized:
		return "unauthorized"
	case InvalidArgument:
		return "invalid_argument"
	case NotFound:
		return "not_found"
	case InvalidState:
		return "invalid_state"
	default:
		return "internal"
	}
}

type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

func New(kind Kind, message string) error {
	return &Error{Kind: kind, Message: message}
}

func Newf(kind Kind, format string, args ...any) error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

func Wrap(kind Kind, message string, err error) error {
	return &Error{Kind: kind, Message: message, Err: err}
}

// KindOf reports the Kind of the outermost tagged error in err's chain.
// Untagged errors are treated as Internal.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return Internal
}

func IsKind(err error, kind Kind) bool {
	return err != nil && KindOf(err) == kind
}

// MessageOf returns the human-readable message for the caller. Untagged
// errors are masked so infrastructure details do not leak to clients.
func MessageOf(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return "Something went wrong"
}
