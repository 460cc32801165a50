package addressbook

import (
	"errors"
	"fmt"
)

// Kind classifies failures so the presentation layer can pick a message
// without inspecting error strings.
type Kind int

const (
	KindValidation Kind = iota + 1
	KindNotFound
	KindMissingArgument
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindNotFound:
		return "not_found"
	case KindMissingArgument:
		return "missing_argument"
	default:
		return "unknown"
	}
}

// Sentinels matched with errors.Is. Any *Error of the same Kind matches.
var (
	ErrValidation      = &Error{Kind: KindValidation}
	ErrNotFound        = &Error{Kind: KindNotFound}
	ErrMissingArgument = &Error{Kind: KindMissingArgument}

	// ErrPhoneNotFound is the recoverable outcome of editing or removing a
	// number the record does not hold. It is not a NotFound on the contact.
	ErrPhoneNotFound = errors.New("phone not found")
)

// Error is the typed failure returned by the address book core.
type Error struct {
	Kind  Kind
	Field string // "name", "phone", "birthday", "contact", "args"
	Value string
	Err   error
}

func (e *Error) Error() string {
	msg := e.Kind.String()
	if e.Field != "" {
		msg = e.Field + ": " + msg
	}
	if e.Value != "" {
		msg += fmt.Sprintf(" (%q)", e.Value)
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *Error) Unwrap() error { return e.Err }

// Is reports whether target is an *Error with the same Kind.
func (e *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) {
		return false
	}
	return t.Kind == e.Kind
}

// KindOf returns the Kind carried by err, or 0 when err is not an *Error.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return 0
}

func validationError(field, value string, err error) error {
	return &Error{Kind: KindValidation, Field: field, Value: value, Err: err}
}

// NotFound reports an unknown contact name.
func NotFound(name string) error {
	return &Error{Kind: KindNotFound, Field: "contact", Value: name}
}

// MissingArgument reports a command invoked with fewer tokens than it needs.
func MissingArgument(want, got int) error {
	return &Error{Kind: KindMissingArgument, Field: "args", Err: fmt.Errorf("want %d, got %d", want, got)}
}
