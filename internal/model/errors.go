package model

import (
	"errors"
	"fmt"
)

// Error kinds returned by the services. Callers match them with errors.Is;
// the wrapped message is safe to show to the visitor.
var (
	ErrValidation = errors.New("invalid input")
	ErrAuth       = errors.New("authentication failed")
	ErrNotFound   = errors.New("not found")

	// ErrUnsupportedMedia is a validation error for rejected uploads.
	ErrUnsupportedMedia = fmt.Errorf("%w: unsupported media", ErrValidation)
)

// Message returns the user-facing part of an error created with one of the
// kinds above, i.e. the text after the kind prefix.
func Message(err error) string {
	var m *messageError
	if errors.As(err, &m) {
		return m.msg
	}
	return err.Error()
}

// Errorf wraps kind with a user-facing message.
func Errorf(kind error, format string, args ...any) error {
	return &messageError{kind: kind, msg: fmt.Sprintf(format, args...)}
}

type messageError struct {
	kind error
	msg  string
}

func (e *messageError) Error() string { return e.kind.Error() + ": " + e.msg }
func (e *messageError) Unwrap() error { return e.kind }
