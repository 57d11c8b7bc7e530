package services

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/embario/jukeclient/internal/client/client"
	"github.com/embario/jukeclient/internal/client/credentials"
	"github.com/embario/jukeclient/internal/client/models"
	"github.com/embario/jukeclient/internal/logging"
)

const (
	pathLogin    = "/api/v1/auth/api-auth-token/"
	pathRegister = "/api/v1/auth/accounts/register/"
	pathLogout   = "/api/v1/auth/session/logout/"
	pathVerify   = "/api/v1/auth/accounts/verify-registration/"
	pathResend   = "/api/v1/auth/accounts/resend-registration/"
)

const (
	MsgUsernameRequired     = "Username is required."
	MsgPasswordRequired     = "Password is required."
	MsgEmailRequired        = "Email is required."
	MsgPasswordTooShort     = "Password must be at least 8 characters."
	MsgPasswordMismatch     = "Passwords do not match."
	MsgRegistrationDisabled = "Registration is temporarily disabled. Please try again later."
	MsgRegistered           = "Check your inbox to confirm your account."
	MsgVerificationInvalid  = "Verification link is incomplete."
	MsgVerificationResent   = "Verification email sent."

	minPasswordLength = 8
)

// CredentialStore is the persistence the session controller writes through.
// *credentials.Store implements it.
type CredentialStore interface {
	SessionReader
	Save(ctx context.Context, snap models.Snapshot) error
	Clear(ctx context.Context) error
	Subscribe(ctx context.Context) (*credentials.Subscription, error)
}

// SessionReader returns the stored snapshot, or nil when signed out.
type SessionReader interface {
	Current(ctx context.Context) (*models.Snapshot, error)
}

// IdentityScoped is per-identity state that must be reset when that
// identity logs in or out.
type IdentityScoped interface {
	Forget(ctx context.Context, username string) error
}

// TokenSource hands out the token of the signed-in identity.
type TokenSource interface {
	Token(ctx context.Context) (string, error)
}

// AuthService is the session controller.
//
// SignedOut moves to SignedIn on a successful Login and back on Logout.
// Register never signs anybody in; VerifyRegistration does when the server
// answers with a token. Overlapping logins are not deduplicated; the last
// one to finish wins.
type AuthService interface {
	TokenSource

	Login(ctx context.Context, username, password string) error
	Register(ctx context.Context, req models.RegisterRequest) (string, error)
	// VerifyRegistration confirms an account from its emailed link and
	// reports whether the confirmation signed the user in.
	VerifyRegistration(ctx context.Context, req models.VerifyRegistrationRequest) (bool, error)
	ResendVerification(ctx context.Context, email string) (string, error)
	Logout(ctx context.Context)
	CurrentSession(ctx context.Context) (*models.Snapshot, error)
	Subscribe(ctx context.Context) (*credentials.Subscription, error)
	// Cached returns the last snapshot this service wrote or read, without I/O.
	Cached() *models.Snapshot
}

type AuthOptions struct {
	RegistrationDisabled bool
	Scoped               []IdentityScoped
	Logger               logging.Logger
}

type authService struct {
	exec  client.Executor
	store CredentialStore
	opts  AuthOptions
	log   logging.Logger

	mu     sync.RWMutex
	cached *models.Snapshot
}

func NewAuthService(exec client.Executor, store CredentialStore, opts AuthOptions) AuthService {
	log := opts.Logger
	if log == nil {
		log = logging.Nop()
	}
	return &authService{
		exec:  exec,
		store: store,
		opts:  opts,
		log:   log.With("component", "auth"),
	}
}

func (a *authService) Login(ctx context.Context, username, password string) error {
	username = strings.TrimSpace(username)
	if username == "" {
		return &client.ValidationError{Message: MsgUsernameRequired}
	}
	if strings.TrimSpace(password) == "" {
		return &client.ValidationError{Message: MsgPasswordRequired}
	}

	var resp models.LoginResponse
	err := a.exec.Execute(ctx, client.Request{
		Method: http.MethodPost,
		Path:   pathLogin,
		Body:   models.LoginRequest{Username: username, Password: password},
	}, &resp)
	if err != nil {
		return fmt.Errorf("login: %w", err)
	}
	if resp.Token == "" {
		return &client.UnexpectedError{Op: "login response has no token"}
	}

	if err := a.signIn(ctx, models.Snapshot{Username: username, Token: resp.Token}); err != nil {
		return fmt.Errorf("login: %w", err)
	}
	return nil
}

func (a *authService) Register(ctx context.Context, req models.RegisterRequest) (string, error) {
	if a.opts.RegistrationDisabled {
		return "", &client.ValidationError{Message: MsgRegistrationDisabled}
	}
	req.Username = strings.TrimSpace(req.Username)
	req.Email = strings.TrimSpace(req.Email)
	switch {
	case req.Username == "":
		return "", &client.ValidationError{Message: MsgUsernameRequired}
	case req.Email == "":
		return "", &client.ValidationError{Message: MsgEmailRequired}
	case utf8.RuneCountInString(req.Password) < minPasswordLength:
		return "", &client.ValidationError{Message: MsgPasswordTooShort}
	case req.Password != req.PasswordConfirm:
		return "", &client.ValidationError{Message: MsgPasswordMismatch}
	}

	var resp models.RegisterResponse
	err := a.exec.Execute(ctx, client.Request{
		Method: http.MethodPost,
		Path:   pathRegister,
		Body:   req,
	}, &resp)
	if err != nil {
		return "", fmt.Errorf("register: %w", err)
	}

	if detail := strings.TrimSpace(resp.Detail); detail != "" {
		return detail, nil
	}
	return MsgRegistered, nil
}

func (a *authService) VerifyRegistration(ctx context.Context, req models.VerifyRegistrationRequest) (bool, error) {
	req.UserID = strings.TrimSpace(req.UserID)
	req.Timestamp = strings.TrimSpace(req.Timestamp)
	req.Signature = strings.TrimSpace(req.Signature)
	if req.UserID == "" || req.Timestamp == "" || req.Signature == "" {
		return false, &client.ValidationError{Message: MsgVerificationInvalid}
	}

	var resp models.VerifyRegistrationResponse
	err := a.exec.Execute(ctx, client.Request{
		Method: http.MethodPost,
		Path:   pathVerify,
		Body:   req,
	}, &resp)
	if err != nil {
		return false, fmt.Errorf("verify registration: %w", err)
	}

	username := strings.TrimSpace(resp.Username)
	if resp.Token == "" || username == "" {
		a.log.Info(ctx, "registration verified", "user_id", req.UserID)
		return false, nil
	}
	if err := a.signIn(ctx, models.Snapshot{Username: username, Token: resp.Token}); err != nil {
		return false, fmt.Errorf("verify registration: %w", err)
	}
	return true, nil
}

func (a *authService) ResendVerification(ctx context.Context, email string) (string, error) {
	email = strings.TrimSpace(email)
	if email == "" {
		return "", &client.ValidationError{Message: MsgEmailRequired}
	}

	var resp models.RegisterResponse
	err := a.exec.Execute(ctx, client.Request{
		Method: http.MethodPost,
		Path:   pathResend,
		Body:   models.ResendVerificationRequest{Email: email},
	}, &resp)
	if err != nil {
		return "", fmt.Errorf("resend verification: %w", err)
	}

	if detail := strings.TrimSpace(resp.Detail); detail != "" {
		return detail, nil
	}
	return MsgVerificationResent, nil
}

// Logout asks the server to end the session and then always clears the
// local record. Neither failure is returned; both are logged.
func (a *authService) Logout(ctx context.Context) {
	snap, err := a.store.Current(ctx)
	if err != nil {
		a.log.Warn(ctx, "reading session before logout failed", "error", err)
		snap = a.Cached()
	}

	if snap != nil {
		err := a.exec.Execute(ctx, client.Request{
			Method: http.MethodPost,
			Path:   pathLogout,
			Token:  snap.Token,
		}, nil)
		if err != nil {
			a.log.Warn(ctx, "remote logout failed", "username", snap.Username, "error", err)
		}
	}

	if err := a.store.Clear(ctx); err != nil {
		a.log.Error(ctx, "clearing session failed", "error", err)
		return
	}
	a.setCached(nil)

	if snap != nil {
		a.log.Info(ctx, "signed out", "username", snap.Username)
		a.forget(ctx, snap.Username)
	}
}

func (a *authService) CurrentSession(ctx context.Context) (*models.Snapshot, error) {
	snap, err := a.store.Current(ctx)
	if err != nil {
		return nil, err
	}
	a.setCached(snap)
	return snap, nil
}

func (a *authService) Subscribe(ctx context.Context) (*credentials.Subscription, error) {
	return a.store.Subscribe(ctx)
}

func (a *authService) Cached() *models.Snapshot {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.cached.Clone()
}

func (a *authService) Token(ctx context.Context) (string, error) {
	snap, err := a.CurrentSession(ctx)
	if err != nil {
		return "", err
	}
	if snap == nil {
		return "", client.ErrNotAuthenticated
	}
	return snap.Token, nil
}

// signIn persists snap, which notifies subscribers, and resets the
// identity's scoped data.
func (a *authService) signIn(ctx context.Context, snap models.Snapshot) error {
	if err := a.store.Save(ctx, snap); err != nil {
		return err
	}
	a.setCached(&snap)
	a.log.Info(ctx, "signed in", "username", snap.Username)

	a.forget(ctx, snap.Username)
	return nil
}

func (a *authService) setCached(snap *models.Snapshot) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.cached = snap.Clone()
}

func (a *authService) forget(ctx context.Context, username string) {
	for _, s := range a.opts.Scoped {
		if err := s.Forget(ctx, username); err != nil {
			a.log.Warn(ctx, "resetting identity data failed", "username", username, "error", err)
		}
	}
}
