package utils

import (
	"errors"
	"fmt"
	"net/http"
)

// CustomError is an error that already knows its HTTP status and the
// machine-readable code sent to the client.
type CustomError struct {
	Status  int
	Code    string
	Field   string
	Message string
	Err     error
}

func (e *CustomError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("%s (%d): %s: %s", e.Code, e.Status, e.Field, e.Message)
	}
	return fmt.Sprintf("%s (%d): %s", e.Code, e.Status, e.Message)
}

func (e *CustomError) Unwrap() error { return e.Err }

// BadRequest flags one offending input field.
func BadRequest(field, message string, err error) error {
	return &CustomError{
		Status:  http.StatusBadRequest,
		Code:    "invalid_input",
		Field:   field,
		Message: message,
		Err:     err,
	}
}

// AsCustom unwraps err to a CustomError if there is one in the chain.
func AsCustom(err error) (*CustomError, bool) {
	var ce *CustomError
	if errors.As(err, &ce) {
		return ce, true
	}
	return nil, false
}
