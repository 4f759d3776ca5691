package apperr

import "github.com/pkg/errors"

// Kind is a stable error category that handlers map to an HTTP status.
type Kind string

const (
	InvalidInput      Kind = "invalid_input"
	NotFound          Kind = "not_found"
	Forbidden         Kind = "forbidden"
	Conflict          Kind = "conflict"
	InvalidAIResponse Kind = "invalid_ai_response"
	Unexpected        Kind = "unexpected"
)

type Error struct {
	Kind Kind
	Msg  string
	Err  error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Msg + ": " + e.Err.Error()
	}
	return e.Msg
}

func (e *Error) Unwrap() error { return e.Err }

func New(kind Kind, msg string) error {
	return &Error{Kind: kind, Msg: msg}
}

func Wrap(kind Kind, err error, msg string) error {
	if err == nil {
		return nil
	}
	return &Error{Kind: kind, Msg: msg, Err: err}
}

// KindOf reports the Kind of err, walking the wrap chain.
// Errors without a Kind are treated as Unexpected.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return Unexpected
}

// Message returns the user-facing message of err. Internal errors are never
// leaked verbatim: anything without a Kind collapses to a generic message.
func Message(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Msg
	}
	return "server error"
}
