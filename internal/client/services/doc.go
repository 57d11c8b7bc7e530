// Package services contains the application services of the Juke client:
// the session controller (AuthService) and the typed facades over the
// catalog and music-profile REST resources.
//
// Every authenticated call reads the token from the credential store at call
// time and fails with client.ErrNotAuthenticated, without touching the
// network, when nobody is signed in.
package services
