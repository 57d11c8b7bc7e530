// Package models defines the client-side data models of the Juke API client:
// the session snapshot, catalog and profile resources, and the wire shapes
// they are decoded from.
package models

// Snapshot is a signed-in identity. A nil *Snapshot means signed out.
type Snapshot struct {
	Username string
	Token    string
}

// Equal reports whether two snapshots hold the same identity and token.
// Two nil snapshots are equal.
func (s *Snapshot) Equal(o *Snapshot) bool {
	if s == nil || o == nil {
		return s == nil && o == nil
	}
	return s.Username == o.Username && s.Token == o.Token
}

// Clone returns a copy that does not alias s.
func (s *Snapshot) Clone() *Snapshot {
	if s == nil {
		return nil
	}
	c := *s
	return &c
}

// LoginRequest is the body of POST /api/v1/auth/api-auth-token/.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type LoginResponse struct {
	Token string `json:"token"`
}

// RegisterRequest is the body of POST /api/v1/auth/accounts/register/.
type RegisterRequest struct {
	Username        string `json:"username"`
	Email           string `json:"email"`
	Password        string `json:"password"`
	PasswordConfirm string `json:"password_confirm"`
}

type RegisterResponse struct {
	Detail string `json:"detail,omitempty"`
}

// VerifyRegistrationRequest carries the signed parameters of a registration
// confirmation link.
type VerifyRegistrationRequest struct {
	UserID    string `json:"user_id"`
	Timestamp string `json:"timestamp"`
	Signature string `json:"signature"`
}

// VerifyRegistrationResponse holds a token only when the server signs the
// account in on confirmation.
type VerifyRegistrationResponse struct {
	Token    string `json:"token,omitempty"`
	Username string `json:"username,omitempty"`
}

type ResendVerificationRequest struct {
	Email string `json:"email"`
}
