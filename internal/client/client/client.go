package client

import "context"

// Request describes one call against the Juke API. Path is relative to the
// base URL and keeps its trailing slash. Query values that are empty are not
// sent. Body, when non-nil, is encoded as JSON. A non-empty Token is sent as
// "Authorization: Token <token>".
type Request struct {
	Method string
	Path   string
	Query  map[string]string
	Body   any
	Token  string
}

// Executor performs API requests. On success the response body, if any, is
// decoded into out; a nil out discards it. Failures are reported as
// *APIError, *NetworkError, *UnexpectedError or the caller's context error.
type Executor interface {
	Execute(ctx context.Context, req Request, out any) error
}
