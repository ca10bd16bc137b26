package finna

import (
	"errors"
	"fmt"
	"net/http"
)

// Precondition failures, rejected before any request is sent
var (
	ErrEmptyQuery = errors.New("Hakusana ei voi olla tyhjä")
	ErrEmptyID    = errors.New("ID ei voi olla tyhjä")
)

// ErrorKind classifies a failed Finna request
type ErrorKind int

const (
	// KindTransport means the API could not be reached
	KindTransport ErrorKind = iota + 1
	// KindService means the API answered with an error
	KindService
)

func (k ErrorKind) String() string {
	switch k {
	case KindTransport:
		return "transport"
	case KindService:
		return "service"
	}
	return "unknown"
}

// RequestError contains http status code and message for a failed Finna request
type RequestError struct {
	Kind       ErrorKind
	StatusCode int
	Message    string
}

func (e *RequestError) Error() string {
	return e.Message
}

// IsPrecondition reports whether err is a local precondition failure
func IsPrecondition(err error) bool {
	return errors.Is(err, ErrEmptyQuery) || errors.Is(err, ErrEmptyID)
}

func transportError(status int, detail string) *RequestError {
	return &RequestError{
		Kind:       KindTransport,
		StatusCode: status,
		Message:    fmt.Sprintf("Verkkoyhteyden virhe: %s", detail),
	}
}

func serviceError(status int, message string) *RequestError {
	if message == "" {
		message = fmt.Sprintf("API-virhe: %d %s", status, http.StatusText(status))
	}
	return &RequestError{Kind: KindService, StatusCode: status, Message: message}
}
