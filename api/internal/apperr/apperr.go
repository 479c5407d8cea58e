// Package apperr classifies every failure the analyze pipeline can hit so the
// HTTP layer can map it to the single {error, message} envelope the clients
// expect. Nothing is swallowed: whatever a stage returns ends up in the body.
package apperr

import (
	"errors"
	"net/http"
)

type Kind string

const (
	Validation        Kind = "validation"
	Configuration     Kind = "configuration"
	Upstream          Kind = "upstream"
	Auth              Kind = "auth"
	Generation        Kind = "generation"
	MalformedResponse Kind = "malformed_response"
)

type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

func Wrap(kind Kind, message string, err error) *Error {
	return &Error{Kind: kind, Message: message, Err: err}
}

// KindOf walks the wrap chain and returns the kind of the first *Error found,
// or "" when the error carries no classification.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return ""
}

// Body is the uniform error envelope returned for every failed request.
type Body struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// Envelope maps an error to its HTTP status and response body. Client-side
// validation failures are the only 400s; everything else is the server's
// problem and surfaces as a 500 with the failure detail in the message.
func Envelope(err error) (int, Body) {
	var e *Error
	if errors.As(err, &e) {
		switch e.Kind {
		case Validation:
			return http.StatusBadRequest, Body{Error: "Missing required data", Message: e.Message}
		case Configuration:
			return http.StatusInternalServerError, Body{Error: "Server configuration error", Message: e.Message}
		}
	}
	return http.StatusInternalServerError, Body{Error: "Analysis failed", Message: err.Error()}
}
