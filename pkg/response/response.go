package response

import (
	"errors"
)

// Error is a domain error that knows which HTTP status and which catalogue
// code it surfaces as.
type Error struct {
	Code      int
	ErrorCode string
	Err       error
}

func (e *Error) Error() string {
	return e.Err.Error()
}

func (e *Error) Is(target error) bool {
	var t *Error
	ok := errors.As(target, &t)
	if !ok {
		return false
	}
	return e.Code == t.Code && e.ErrorCode == t.ErrorCode && e.Err.Error() == t.Err.Error()
}

func NewError(code int, err string) error {
	return &Error{Code: code, Err: errors.New(err)}
}

func NewCodedError(code int, errorCode string, err string) error {
	return &Error{Code: code, ErrorCode: errorCode, Err: errors.New(err)}
}
