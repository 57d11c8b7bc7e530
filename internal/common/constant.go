// Package common holds wire constants shared by the API client and the CLI.
package common

const (
	// AuthorizationHeaderName carries the session token on authenticated calls.
	AuthorizationHeaderName = "Authorization"
	// AuthorizationScheme is the token scheme the backend expects.
	AuthorizationScheme = "Token"

	RequestIDHeaderName = "X-Request-ID"

	ContentTypeJSON = "application/json"
)

// Known app namespaces sharing one local database.
const (
	AppJuke       = "juke"
	AppShotClock  = "shotclock"
	AppTuneTrivia = "tunetrivia"
)
