package cli

import (
	"context"

	"github.com/embario/jukeclient/internal/client/models"
)

// Input helpers are indirections so tests can script the answers.
var (
	getSimpleText = GetSimpleText
	getPassword   = GetPassword
	getMultiline  = GetMultiline
	getList       = GetList
)

// Register prompts for the account fields and creates the account. It never
// signs the user in; the server's confirmation text is printed instead.
func (a *App) Register(ctx context.Context) error {
	username, err := getSimpleText(a.reader, "Username", a.out)
	if err != nil {
		return err
	}
	email, err := getSimpleText(a.reader, "Email", a.out)
	if err != nil {
		return err
	}
	password, err := getPassword(a.reader, "Password", a.out)
	if err != nil {
		return err
	}
	confirm, err := getPassword(a.reader, "Confirm password", a.out)
	if err != nil {
		return err
	}

	msg, err := a.auth.Register(ctx, models.RegisterRequest{
		Username:        username,
		Email:           email,
		Password:        password,
		PasswordConfirm: confirm,
	})
	if err != nil {
		return err
	}
	a.printf("%s\n", msg)
	return nil
}

// Login prompts for credentials and signs in. A previous session, if any, is
// replaced.
func (a *App) Login(ctx context.Context) error {
	username, err := getSimpleText(a.reader, "Username", a.out)
	if err != nil {
		return err
	}
	password, err := getPassword(a.reader, "Password", a.out)
	if err != nil {
		return err
	}

	if err := a.auth.Login(ctx, username, password); err != nil {
		return err
	}

	if snap := a.auth.Cached(); snap != nil {
		a.setUser(snap.Username)
		a.printf("Signed in as %s.\n", snap.Username)
	}
	return nil
}

// Logout always ends the local session, even when the server is unreachable.
func (a *App) Logout(ctx context.Context) error {
	a.debounce.Cancel()
	a.auth.Logout(ctx)
	a.setUser("")
	a.printf("Signed out.\n")
	return nil
}

func (a *App) WhoAmI(ctx context.Context) error {
	snap, err := a.auth.CurrentSession(ctx)
	if err != nil {
		return err
	}
	if snap == nil {
		a.printf("Not signed in.\n")
		return nil
	}
	a.printf("%s\n", snap.Username)
	return nil
}

// Verify confirms an account with the parameters of its emailed link:
// verify <user_id> <timestamp> <signature>.
func (a *App) Verify(ctx context.Context, args []string) error {
	if len(args) != 3 {
		a.printf("Usage: verify <user_id> <timestamp> <signature>\n")
		return nil
	}
	signedIn, err := a.auth.VerifyRegistration(ctx, models.VerifyRegistrationRequest{
		UserID:    args[0],
		Timestamp: args[1],
		Signature: args[2],
	})
	if err != nil {
		return err
	}

	if snap := a.auth.Cached(); signedIn && snap != nil {
		a.setUser(snap.Username)
		a.printf("Account verified. Signed in as %s.\n", snap.Username)
		return nil
	}
	a.printf("Account verified. You can log in now.\n")
	return nil
}

func (a *App) Resend(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Email", a.out)
	if err != nil {
		return err
	}
	msg, err := a.auth.ResendVerification(ctx, email)
	if err != nil {
		return err
	}
	a.printf("%s\n", msg)
	return nil
}
