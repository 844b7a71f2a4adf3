package apperr

import (
	"errors"
	"fmt"
)

// Kind classifies a failure so the transport layer can pick a response code
// without inspecting message text.
type Kind int

const (
	// KindNotFound means a referenced aggregate does not exist or is soft-deleted.
	KindNotFound Kind = iota + 1
	// KindInvalidArgument means the input is malformed or violates a business
	// rule that can be checked before any write.
	KindInvalidArgument
	// KindIllegalState means the operation is disallowed in the aggregate's
	// current state.
	KindIllegalState
)

type Error struct {
	Kind Kind
	Msg  string
	Err  error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Msg, e.Err)
	}
	return e.Msg
}

func (e *Error) Unwrap() error { return e.Err }

// Is lets errors.Is match two apperr values by kind.
func (e *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) {
		return false
	}
	return e.Kind == t.Kind
}

func NotFound(format string, args ...any) error {
	return &Error{Kind: KindNotFound, Msg: fmt.Sprintf(format, args...)}
}

func InvalidArgument(format string, args ...any) error {
	return &Error{Kind: KindInvalidArgument, Msg: fmt.Sprintf(format, args...)}
}

func IllegalState(format string, args ...any) error {
	return &Error{Kind: KindIllegalState, Msg: fmt.Sprintf(format, args...)}
}

// KindOf returns the kind of err, or 0 if err is not an apperr.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return 0
}
