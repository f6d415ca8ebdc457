package domain

import "errors"

// Kind classifies an error for transport-level mapping. Anything that is not
// one of these kinds is treated as an infrastructure failure and surfaced
// generically.
type Kind int

const (
	KindValidation Kind = iota + 1
	KindNotFound
	KindForbidden
	KindInvalidState
	KindUnauthorized
	KindUnavailable
)

type Error struct {
	Kind    Kind
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

func NewValidation(msg string) error   { return &Error{Kind: KindValidation, Message: msg} }
func NewNotFound(msg string) error     { return &Error{Kind: KindNotFound, Message: msg} }
func NewForbidden(msg string) error    { return &Error{Kind: KindForbidden, Message: msg} }
func NewInvalidState(msg string) error { return &Error{Kind: KindInvalidState, Message: msg} }
func NewUnauthorized(msg string) error { return &Error{Kind: KindUnauthorized, Message: msg} }
func NewUnavailable(msg string) error  { return &Error{Kind: KindUnavailable, Message: msg} }

// KindOf returns the kind carried by err, or 0 when err is not a domain error.
func KindOf(err error) Kind {
	var de *Error
	if errors.As(err, &de) {
		return de.Kind
	}
	return 0
}

func IsKind(err error, kind Kind) bool {
	return KindOf(err) == kind
}
