package services

import "net/http"

// Error is a failure a handler can report to the client: an HTTP status plus
// a human-readable message. Anything else bubbling out of a service is an
// internal error and is never shown verbatim.
type Error struct {
	Code int
	Msg  string
}

func (e *Error) Error() string { return e.Msg }

func NotFound(msg string) *Error  { return &Error{Code: http.StatusNotFound, Msg: msg} }
func Forbidden(msg string) *Error { return &Error{Code: http.StatusForbidden, Msg: msg} }
func Conflict(msg string) *Error  { return &Error{Code: http.StatusConflict, Msg: msg} }
func Invalid(msg string) *Error   { return &Error{Code: http.StatusBadRequest, Msg: msg} }

// Unauthenticated covers credential failures. Login uses the same message
// for unknown email and wrong password so accounts can't be enumerated.
func Unauthenticated(msg string) *Error { return &Error{Code: http.StatusUnauthorized, Msg: msg} }
