package domain

import (
	"errors"
	"net/http"
)

// Error is a domain failure tagged with the HTTP status it maps to and an
// optional set of per-field messages. Handlers never pick status codes; they
// hand any error to the centralized responder.
type Error struct {
	Status  int
	Message string
	Fields  map[string]string
}

func (e *Error) Error() string {
	return e.Message
}

func NewError(status int, message string) *Error {
	return &Error{Status: status, Message: message}
}

func NewFieldError(status int, message string, fields map[string]string) *Error {
	return &Error{Status: status, Message: message, Fields: fields}
}

// AsError unwraps err into a *Error if it is one.
func AsError(err error) (*Error, bool) {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

var (
	ErrInvalidRole = NewError(http.StatusUnprocessableEntity, "Role must be moderator or member")
)
