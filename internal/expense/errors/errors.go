package errors

import "errors"

// ErrExpenseNotFound is returned both when a record does not exist and when
// it belongs to another user, so a caller cannot tell the two apart.
var ErrExpenseNotFound = errors.New("expense not found")

type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string {
	return e.Msg
}

func NewValidationError(msg string) error {
	return &ValidationError{Msg: msg}
}

func IsValidationError(err error) bool {
	var validationError *ValidationError
	ok := errors.As(err, &validationError)
	return ok
}
