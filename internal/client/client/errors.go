package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrUnauthorized matches an *APIError carrying HTTP 401.
	ErrUnauthorized = errors.New("unauthorized")
	// ErrNetworkUnavailable matches a *NetworkError.
	ErrNetworkUnavailable = errors.New("network unavailable")
	// ErrNotAuthenticated is returned by calls that need a session when
	// nobody is signed in. No request is made.
	ErrNotAuthenticated = errors.New("not authenticated")
)

const (
	NetworkUnavailableMessage = "We couldn't reach the servers. Please check your connection."
	UnexpectedMessage         = "Something unexpected happened."
	NotAuthenticatedMessage   = "You need to log in first."
	CancelledMessage          = "Request cancelled."
)

// APIError is a non-2xx response. Payload holds the raw body when it was
// valid JSON.
type APIError struct {
	Status  int
	Message string
	Payload json.RawMessage
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error %d: %s", e.Status, e.Message)
}

func (e *APIError) Is(target error) bool {
	return target == ErrUnauthorized && e.Status == 401
}

// NetworkError means no response was received.
type NetworkError struct {
	Err error
}

func (e *NetworkError) Error() string {
	if e.Err == nil {
		return NetworkUnavailableMessage
	}
	return fmt.Sprintf("%s: %v", NetworkUnavailableMessage, e.Err)
}

func (e *NetworkError) Unwrap() error { return e.Err }

func (e *NetworkError) Is(target error) bool { return target == ErrNetworkUnavailable }

// UnexpectedError covers everything that is neither an API nor a network
// failure, such as encode and decode failures. Op names the failed step for
// logs. Message, when set, replaces the cause's text for the user.
type UnexpectedError struct {
	Op      string
	Message string
	Err     error
}

func (e *UnexpectedError) Error() string {
	label := e.Op
	if label == "" {
		label = e.Message
	}
	switch {
	case e.Err == nil:
		return label
	case label == "":
		return e.Err.Error()
	}
	return fmt.Sprintf("%s: %v", label, e.Err)
}

func (e *UnexpectedError) Unwrap() error { return e.Err }

// ValidationError is a local input check that failed before any request.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

// Message renders err as the single line shown to the user. Errors outside
// the taxonomy show their own text.
func Message(err error) string {
	if err == nil {
		return ""
	}

	var (
		valErr *ValidationError
		apiErr *APIError
		netErr *NetworkError
		unxErr *UnexpectedError
	)
	switch {
	case errors.As(err, &valErr):
		return valErr.Message
	case errors.As(err, &unxErr):
		if unxErr.Message != "" {
			return unxErr.Message
		}
		if unxErr.Err != nil {
			return textOr(unxErr.Err.Error())
		}
		return UnexpectedMessage
	case errors.As(err, &apiErr):
		return textOr(apiErr.Message)
	case errors.As(err, &netErr):
		return NetworkUnavailableMessage
	case errors.Is(err, ErrNotAuthenticated):
		return NotAuthenticatedMessage
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return CancelledMessage
	}
	return textOr(err.Error())
}

func textOr(s string) string {
	if strings.TrimSpace(s) == "" {
		return UnexpectedMessage
	}
	return s
}
