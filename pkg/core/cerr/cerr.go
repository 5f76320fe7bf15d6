// Package cerr defines the core errors which know about their HTTP
// status codes, so adapters may report them without inspecting the
// use cases internals. Errors which are not wrapped by one of these
// constructors are reported as internal server errors.
package cerr

import (
	"errors"
	"fmt"
	"net/http"
)

// Error attaches an HTTP status code to the wrapped Err error.
// Only the Err message is sent to clients.
type Error struct {
	Err            error
	HTTPStatusCode int
}

func (e *Error) Unwrap() error {
	return e.Err
}

func (e *Error) Error() string {
	return fmt.Sprintf("[%d] %s", e.HTTPStatusCode, e.Err.Error())
}

// StatusCode returns the HTTP status code of the first *Error in the
// err chain, or 500 if there is no such error.
func StatusCode(err error) int {
	var ce *Error
	if errors.As(err, &ce) {
		return ce.HTTPStatusCode
	}
	return http.StatusInternalServerError
}

// BadRequest reports invalid inputs, such as a blank food type or
// mismatching path and body IDs.
func BadRequest(err error) *Error {
	return &Error{Err: err, HTTPStatusCode: http.StatusBadRequest}
}

// Authentication reports a missing or invalid bearer token.
func Authentication(err error) *Error {
	return &Error{Err: err, HTTPStatusCode: http.StatusUnauthorized}
}

// NotFound reports a missing food item.
func NotFound(err error) *Error {
	return &Error{Err: err, HTTPStatusCode: http.StatusNotFound}
}

// Conflict reports an already existing food type.
func Conflict(err error) *Error {
	return &Error{Err: err, HTTPStatusCode: http.StatusConflict}
}
