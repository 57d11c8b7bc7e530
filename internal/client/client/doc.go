// Package client is the transport layer of the Juke API client.
//
// # Overview
//
// The package provides:
//  1. The Executor contract and Request type used by the domain services.
//  2. HTTPClient, the net/http implementation: JSON bodies, the
//     "Authorization: Token <token>" header, a User-Agent and an
//     X-Request-ID on every call, and one log line per call.
//  3. Local persistence bootstrap (InitDatabase, RunMigrations) wiring an
//     SQLite database and applying embedded goose migrations.
//
// # Error Handling
//
// Failures are typed: *APIError for non-2xx responses, *NetworkError when no
// response arrived, *UnexpectedError for everything else and
// *ValidationError for local input checks. A 401 APIError matches
// ErrUnauthorized and every NetworkError matches ErrNetworkUnavailable via
// errors.Is. A cancelled caller context is returned unchanged.
//
// The message of a failed response is taken from its body in this order:
// "detail", the first "non_field_errors" entry, the first entry of any other
// field's list (fields sorted by name), then the HTTP status text.
// Message renders any of these errors for display.
package client
